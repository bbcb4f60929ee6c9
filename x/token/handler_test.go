package token

import (
	"context"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/bartertest"
	"github.com/iov-one/barter/bartertest/assert"
	"github.com/iov-one/barter/errors"
)

func TestTransferHandler(t *testing.T) {
	cases := map[string]struct {
		signer     func(fixture) barter.Condition
		msg        func(fixture) *TransferMsg
		wantErr    *errors.Error
		wantAlice  uint64
		wantBobMCK uint64
	}{
		"owner signed": {
			msg: func(f fixture) *TransferMsg {
				return &TransferMsg{
					Source:      AccountAddress(f.alice, "MCK"),
					Destination: AccountAddress(f.bob, "MCK"),
					Amount:      25,
				}
			},
			wantAlice:  75,
			wantBobMCK: 25,
		},
		"not signed by the owner": {
			signer: func(fixture) barter.Condition { return bartertest.NewCondition() },
			msg: func(f fixture) *TransferMsg {
				return &TransferMsg{
					Source:      AccountAddress(f.alice, "MCK"),
					Destination: AccountAddress(f.bob, "MCK"),
					Amount:      25,
				}
			},
			wantErr:   errors.ErrUnauthorized,
			wantAlice: 100,
		},
		"zero amount": {
			msg: func(f fixture) *TransferMsg {
				return &TransferMsg{
					Source:      AccountAddress(f.alice, "MCK"),
					Destination: AccountAddress(f.bob, "MCK"),
				}
			},
			wantErr:   errors.ErrAmount,
			wantAlice: 100,
		},
		"entire balance": {
			msg: func(f fixture) *TransferMsg {
				return &TransferMsg{
					Source:      AccountAddress(f.alice, "MCK"),
					Destination: AccountAddress(f.bob, "MCK"),
					Amount:      100,
				}
			},
			wantAlice:  0,
			wantBobMCK: 100,
		},
		"too much": {
			msg: func(f fixture) *TransferMsg {
				return &TransferMsg{
					Source:      AccountAddress(f.alice, "MCK"),
					Destination: AccountAddress(f.bob, "MCK"),
					Amount:      101,
				}
			},
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: 100,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			signer := f.aliceCond
			if tc.signer != nil {
				signer = tc.signer(f)
			}
			auth := &bartertest.Auth{Signer: signer}
			h := TransferHandler{auth: auth, ctrl: f.ctrl}
			tx := &bartertest.Tx{Msg: tc.msg(f)}

			cache := f.db.CacheWrap()
			_, err := h.Check(context.Background(), cache, tx)
			assert.IsErr(t, tc.wantErr, err)
			cache.Discard()

			_, err = h.Deliver(context.Background(), f.db, tx)
			assert.IsErr(t, tc.wantErr, err)

			assert.Equal(t, tc.wantAlice, f.balance(t, f.alice, "MCK"))
			assert.Equal(t, tc.wantBobMCK, f.balance(t, f.bob, "MCK"))
		})
	}
}

func TestOpenAccountHandler(t *testing.T) {
	f := newFixture(t)
	carol := bartertest.NewCondition().Address()
	h := OpenAccountHandler{ctrl: f.ctrl}

	tx := &bartertest.Tx{Msg: &OpenAccountMsg{Owner: carol, Ticker: "MCK"}}
	res, err := h.Deliver(context.Background(), f.db, tx)
	assert.Nil(t, err)
	assert.Equal(t, []byte(AccountAddress(carol, "MCK")), res.Data)
	assert.Equal(t, uint64(0), f.balance(t, carol, "MCK"))

	tx = &bartertest.Tx{Msg: &OpenAccountMsg{Owner: carol, Ticker: "XYZ"}}
	_, err = h.Check(context.Background(), f.db, tx)
	assert.IsErr(t, errors.ErrNotFound, err)

	tx = &bartertest.Tx{Msg: &OpenAccountMsg{Owner: carol, Ticker: "bad"}}
	_, err = h.Check(context.Background(), f.db, tx)
	assert.IsErr(t, errors.ErrCurrency, err)
}

func TestRegisterQuery(t *testing.T) {
	qr := barter.NewQueryRouter()
	RegisterQuery(qr)
	for _, path := range []string{"/mints", "/accounts", "/accounts/owner"} {
		if qr.Handler(path) == nil {
			t.Fatalf("no handler for %q", path)
		}
	}

	f := newFixture(t)
	models, err := qr.Handler("/accounts/owner").Query(f.db, barter.KeyQueryMod, f.bob)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(models))
}
