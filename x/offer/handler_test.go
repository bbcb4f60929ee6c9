package offer

import (
	"fmt"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/app"
	"github.com/iov-one/barter/bartertest"
	"github.com/iov-one/barter/bartertest/assert"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x/token"
	"github.com/tendermint/tendermint/libs/common"
)

func TestCreateOffer(t *testing.T) {
	cases := map[string]struct {
		signer  func(*swap) barter.Condition
		msg     func(*swap) *CreateOfferMsg
		wantErr *errors.Error
	}{
		"deposit moves to custody": {
			msg: func(s *swap) *CreateOfferMsg { return s.createMsg(40, 10) },
		},
		"whole balance": {
			msg: func(s *swap) *CreateOfferMsg { return s.createMsg(100, 1) },
		},
		"zero send amount": {
			msg:     func(s *swap) *CreateOfferMsg { return s.createMsg(0, 5) },
			wantErr: ErrZeroSendAmount,
		},
		"zero ask amount": {
			msg:     func(s *swap) *CreateOfferMsg { return s.createMsg(5, 0) },
			wantErr: ErrZeroAskAmount,
		},
		"party two is party one": {
			msg: func(s *swap) *CreateOfferMsg {
				m := s.createMsg(5, 5)
				m.PartyTwo = m.PartyOne
				return m
			},
			wantErr: ErrInvalidPartyTwo,
		},
		"balance too low": {
			msg:     func(s *swap) *CreateOfferMsg { return s.createMsg(101, 5) },
			wantErr: ErrInsufficientBalance,
		},
		"not signed by party one": {
			signer:  func(s *swap) barter.Condition { return s.bob },
			msg:     func(s *swap) *CreateOfferMsg { return s.createMsg(40, 10) },
			wantErr: errors.ErrUnauthorized,
		},
		"send account of someone else": {
			msg: func(s *swap) *CreateOfferMsg {
				m := s.createMsg(40, 10)
				m.SendAccount = s.account(s.bob, "MCK")
				return m
			},
			wantErr: errors.ErrUnauthorized,
		},
		"send account of another mint": {
			msg: func(s *swap) *CreateOfferMsg {
				m := s.createMsg(40, 10)
				m.SendAccount = s.account(s.alice, "NTK")
				return m
			},
			wantErr: errors.ErrCurrency,
		},
		"receive account of another mint": {
			msg: func(s *swap) *CreateOfferMsg {
				m := s.createMsg(40, 10)
				m.ReceiveAccount = s.account(s.alice, "MCK")
				return m
			},
			wantErr: errors.ErrCurrency,
		},
		"unknown mint": {
			msg: func(s *swap) *CreateOfferMsg {
				m := s.createMsg(40, 10)
				m.ReceiveMint = "XYZ"
				return m
			},
			wantErr: errors.ErrNotFound,
		},
		"missing send account": {
			msg: func(s *swap) *CreateOfferMsg {
				m := s.createMsg(40, 10)
				m.SendAccount = bartertest.NewCondition().Address()
				return m
			},
			wantErr: errors.ErrNotFound,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s := newSwap(t, 20)
			create, _, _ := s.handlers(s.ledger)
			signer := s.alice
			if tc.signer != nil {
				signer = tc.signer(s)
			}
			msg := tc.msg(s)
			tx := &bartertest.Tx{Msg: msg}
			before := s.balances(t)

			cache := s.db.CacheWrap()
			_, err := create.Check(s.signed(signer), cache, tx)
			assert.IsErr(t, tc.wantErr, err)
			cache.Discard()

			res, err := create.Deliver(s.signed(signer), s.db, tx)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				assert.Equal(t, before, s.balances(t))
				_, err := s.offer(t)
				assert.IsErr(t, errors.ErrNotFound, err)
				return
			}

			key := OfferAddress(s.alice.Address(), s.bob.Address())
			assert.Equal(t, []byte(key), res.Data)
			assert.Equal(t, statusTags(key, StatusOpen), res.Tags)

			assert.Equal(t, 100-msg.SendAmount, s.balance(t, s.account(s.alice, "MCK")))
			assert.Equal(t, msg.SendAmount, s.balance(t, CustodialAccount("MCK")))

			offer, err := s.offer(t)
			assert.Nil(t, err)
			assert.Equal(t, &Offer{
				PartyOne:       s.alice.Address(),
				PartyTwo:       s.bob.Address(),
				ReceiveAccount: s.account(s.alice, "NTK"),
				OfferToken:     "MCK",
				OfferAmount:    msg.SendAmount,
				AskToken:       "NTK",
				AskAmount:      msg.AskAmount,
			}, offer)
		})
	}
}

func TestCreateOfferTwiceForPair(t *testing.T) {
	s := newSwap(t, 20)
	s.create(t)

	create, _, _ := s.handlers(s.ledger)
	_, err := create.Deliver(s.signed(s.alice), s.db, &bartertest.Tx{Msg: s.createMsg(10, 10)})
	assert.IsErr(t, errors.ErrDuplicate, err)
	assert.Equal(t, [5]uint64{60, 0, 0, 20, 40}, s.balances(t))

	// the pair is ordered, bob may still offer to alice
	s.fund(t, s.bob, "MCK", 5)
	msg := &CreateOfferMsg{
		PartyOne:       s.bob.Address(),
		PartyTwo:       s.alice.Address(),
		SendAccount:    s.account(s.bob, "MCK"),
		ReceiveAccount: s.account(s.bob, "NTK"),
		SendMint:       "MCK",
		ReceiveMint:    "NTK",
		SendAmount:     5,
		AskAmount:      1,
	}
	_, err = create.Deliver(s.signed(s.bob), s.db, &bartertest.Tx{Msg: msg})
	assert.Nil(t, err)
	assert.Equal(t, uint64(45), s.balance(t, CustodialAccount("MCK")))
}

func TestCloseOffer(t *testing.T) {
	cases := map[string]struct {
		signer  func(*swap) barter.Condition
		msg     func(*swap) *CloseOfferMsg
		wantErr *errors.Error
	}{
		"party one gets the deposit back": {
			msg: func(s *swap) *CloseOfferMsg { return s.closeMsg() },
		},
		"party two cannot close": {
			signer:  func(s *swap) barter.Condition { return s.bob },
			msg:     func(s *swap) *CloseOfferMsg { return s.closeMsg() },
			wantErr: errors.ErrUnauthorized,
		},
		"party two cannot close naming itself party one": {
			signer: func(s *swap) barter.Condition { return s.bob },
			msg: func(s *swap) *CloseOfferMsg {
				m := s.closeMsg()
				m.PartyOne, m.PartyTwo = s.bob.Address(), s.alice.Address()
				m.ReceiveAccount = s.account(s.bob, "MCK")
				return m
			},
			wantErr: errors.ErrNotFound,
		},
		"wrong counterparty": {
			msg: func(s *swap) *CloseOfferMsg {
				m := s.closeMsg()
				m.PartyTwo = bartertest.NewCondition().Address()
				return m
			},
			wantErr: errors.ErrNotFound,
		},
		"refund to someone else": {
			msg: func(s *swap) *CloseOfferMsg {
				m := s.closeMsg()
				m.ReceiveAccount = s.account(s.bob, "MCK")
				return m
			},
			wantErr: errors.ErrUnauthorized,
		},
		"refund to another mint": {
			msg: func(s *swap) *CloseOfferMsg {
				m := s.closeMsg()
				m.ReceiveAccount = s.account(s.alice, "NTK")
				return m
			},
			wantErr: errors.ErrCurrency,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s := newSwap(t, 20)
			s.create(t)
			_, closeOffer, _ := s.handlers(s.ledger)
			signer := s.alice
			if tc.signer != nil {
				signer = tc.signer(s)
			}
			tx := &bartertest.Tx{Msg: tc.msg(s)}

			cache := s.db.CacheWrap()
			_, err := closeOffer.Check(s.signed(signer), cache, tx)
			assert.IsErr(t, tc.wantErr, err)
			cache.Discard()

			res, err := closeOffer.Deliver(s.signed(signer), s.db, tx)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				assert.Equal(t, [5]uint64{60, 0, 0, 20, 40}, s.balances(t))
				_, err := s.offer(t)
				assert.Nil(t, err)
				return
			}

			key := OfferAddress(s.alice.Address(), s.bob.Address())
			assert.Equal(t, statusTags(key, StatusClosed), res.Tags)
			assert.Equal(t, [5]uint64{100, 0, 0, 20, 0}, s.balances(t))
			_, err = s.offer(t)
			assert.IsErr(t, errors.ErrNotFound, err)
		})
	}
}

func TestAcceptOffer(t *testing.T) {
	cases := map[string]struct {
		bobNTK  uint64
		signer  func(*swap) barter.Condition
		msg     func(*swap) *AcceptOfferMsg
		wantErr *errors.Error
	}{
		"tokens change hands": {
			bobNTK: 20,
			msg:    func(s *swap) *AcceptOfferMsg { return s.acceptMsg() },
		},
		"exact balance": {
			bobNTK: 10,
			msg:    func(s *swap) *AcceptOfferMsg { return s.acceptMsg() },
		},
		"payer balance too low": {
			bobNTK:  5,
			msg:     func(s *swap) *AcceptOfferMsg { return s.acceptMsg() },
			wantErr: ErrInsufficientBalance,
		},
		"party one cannot accept": {
			bobNTK:  20,
			signer:  func(s *swap) barter.Condition { return s.alice },
			msg:     func(s *swap) *AcceptOfferMsg { return s.acceptMsg() },
			wantErr: errors.ErrUnauthorized,
		},
		"stranger cannot accept": {
			bobNTK: 20,
			signer: func(s *swap) barter.Condition { return bartertest.NewCondition() },
			msg: func(s *swap) *AcceptOfferMsg {
				return s.acceptMsg()
			},
			wantErr: errors.ErrUnauthorized,
		},
		"wrong offer mint": {
			bobNTK: 20,
			msg: func(s *swap) *AcceptOfferMsg {
				m := s.acceptMsg()
				m.OfferMint = "NTK"
				return m
			},
			wantErr: ErrInvalidMintAccount,
		},
		"wrong ask mint": {
			bobNTK: 20,
			msg: func(s *swap) *AcceptOfferMsg {
				m := s.acceptMsg()
				m.AskMint = "MCK"
				return m
			},
			wantErr: ErrInvalidMintAccount,
		},
		"wrong party one receive account": {
			bobNTK: 20,
			msg: func(s *swap) *AcceptOfferMsg {
				m := s.acceptMsg()
				m.PartyOneReceive = s.account(s.bob, "NTK")
				return m
			},
			wantErr: ErrIncorrectReceiveAccount,
		},
		"pay from someone else": {
			bobNTK: 20,
			msg: func(s *swap) *AcceptOfferMsg {
				m := s.acceptMsg()
				m.PartyTwoSend = s.account(s.alice, "NTK")
				return m
			},
			wantErr: errors.ErrUnauthorized,
		},
		"receive into account of another mint": {
			bobNTK: 20,
			msg: func(s *swap) *AcceptOfferMsg {
				m := s.acceptMsg()
				m.PartyTwoReceive = s.account(s.bob, "NTK")
				return m
			},
			wantErr: errors.ErrCurrency,
		},
		"no such offer": {
			bobNTK: 20,
			msg: func(s *swap) *AcceptOfferMsg {
				m := s.acceptMsg()
				m.PartyOne = bartertest.NewCondition().Address()
				return m
			},
			wantErr: errors.ErrNotFound,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s := newSwap(t, tc.bobNTK)
			s.create(t)
			_, _, accept := s.handlers(s.ledger)
			signer := s.bob
			if tc.signer != nil {
				signer = tc.signer(s)
			}
			tx := &bartertest.Tx{Msg: tc.msg(s)}
			before := s.balances(t)

			cache := s.db.CacheWrap()
			_, err := accept.Check(s.signed(signer), cache, tx)
			assert.IsErr(t, tc.wantErr, err)
			cache.Discard()

			res, err := accept.Deliver(s.signed(signer), s.db, tx)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				assert.Equal(t, before, s.balances(t))
				_, err := s.offer(t)
				assert.Nil(t, err)
				return
			}

			key := OfferAddress(s.alice.Address(), s.bob.Address())
			assert.Equal(t, statusTags(key, StatusFulfilled), res.Tags)
			assert.Equal(t, [5]uint64{60, 10, 40, tc.bobNTK - 10, 0}, s.balances(t))
			_, err = s.offer(t)
			assert.IsErr(t, errors.ErrNotFound, err)
		})
	}
}

func TestAcceptOfferIsAtomic(t *testing.T) {
	for legs := 0; legs < 2; legs++ {
		t.Run(fmt.Sprintf("%d legs succeed", legs), func(t *testing.T) {
			s := newSwap(t, 20)
			s.create(t)
			before := s.balances(t)

			ledger := &failingLedger{Controller: s.ledger, n: legs, err: errors.ErrDatabase.New("ledger down")}
			_, _, accept := s.handlers(ledger)
			_, err := accept.Deliver(s.signed(s.bob), s.db, &bartertest.Tx{Msg: s.acceptMsg()})
			assert.IsErr(t, errors.ErrDatabase, err)

			assert.Equal(t, before, s.balances(t))
			offer, err := s.offer(t)
			assert.Nil(t, err)
			assert.Equal(t, uint64(40), offer.OfferAmount)
		})
	}
}

func TestCreateOfferIsAtomic(t *testing.T) {
	s := newSwap(t, 20)
	before := s.balances(t)

	ledger := &failingLedger{Controller: s.ledger, err: errors.ErrDatabase.New("ledger down")}
	create, _, _ := s.handlers(ledger)
	_, err := create.Deliver(s.signed(s.alice), s.db, &bartertest.Tx{Msg: s.createMsg(40, 10)})
	assert.IsErr(t, errors.ErrDatabase, err)

	assert.Equal(t, before, s.balances(t))
	_, err = s.offer(t)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestSingleResolution(t *testing.T) {
	cases := map[string]struct {
		first  func(s *swap) error
		second func(s *swap) error
	}{
		"close then accept": {
			first:  func(s *swap) error { return s.deliverClose() },
			second: func(s *swap) error { return s.deliverAccept() },
		},
		"accept then close": {
			first:  func(s *swap) error { return s.deliverAccept() },
			second: func(s *swap) error { return s.deliverClose() },
		},
		"close twice": {
			first:  func(s *swap) error { return s.deliverClose() },
			second: func(s *swap) error { return s.deliverClose() },
		},
		"accept twice": {
			first:  func(s *swap) error { return s.deliverAccept() },
			second: func(s *swap) error { return s.deliverAccept() },
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s := newSwap(t, 20)
			s.create(t)
			assert.Nil(t, tc.first(s))
			after := s.balances(t)
			assert.IsErr(t, errors.ErrNotFound, tc.second(s))
			assert.Equal(t, after, s.balances(t))
		})
	}
}

func (s *swap) deliverClose() error {
	_, closeOffer, _ := s.handlers(s.ledger)
	_, err := closeOffer.Deliver(s.signed(s.alice), s.db, &bartertest.Tx{Msg: s.closeMsg()})
	return err
}

func (s *swap) deliverAccept() error {
	_, _, accept := s.handlers(s.ledger)
	_, err := accept.Deliver(s.signed(s.bob), s.db, &bartertest.Tx{Msg: s.acceptMsg()})
	return err
}

func TestConservation(t *testing.T) {
	s := newSwap(t, 20)
	total := func() (uint64, uint64) {
		b := s.balances(t)
		return b[0] + b[2] + b[4], b[1] + b[3]
	}

	steps := []struct {
		name    string
		run     func() error
		wantErr *errors.Error
	}{
		{name: "create", run: s.deliverCreate},
		{name: "close", run: s.deliverClose},
		{name: "create again", run: s.deliverCreate},
		{name: "accept", run: s.deliverAccept},
		{name: "accept again", run: s.deliverAccept, wantErr: errors.ErrNotFound},
	}
	for _, step := range steps {
		assert.IsErr(t, step.wantErr, step.run())
		mck, ntk := total()
		if mck != 100 || ntk != 20 {
			t.Fatalf("%s: supply changed to %d MCK and %d NTK", step.name, mck, ntk)
		}
	}
	assert.Equal(t, [5]uint64{60, 10, 40, 10, 0}, s.balances(t))
}

func TestCustodyOnlyMovedByTheAuthority(t *testing.T) {
	s := newSwap(t, 20)
	s.create(t)
	custody := CustodialAccount("MCK")

	for _, who := range []barter.Condition{s.alice, s.bob, bartertest.NewCondition()} {
		err := s.ledger.Transfer(s.db, 40, custody, s.account(s.alice, "MCK"), who.Address())
		assert.IsErr(t, errors.ErrUnauthorized, err)
	}

	// a transaction signed by every party cannot move the custody either
	auth := &bartertest.Auth{Signers: []barter.Condition{s.alice, s.bob}}
	r := app.NewRouter()
	token.RegisterRoutes(r, auth, s.ledger)
	msg := &token.TransferMsg{Source: custody, Destination: s.account(s.bob, "MCK"), Amount: 40}
	_, err := r.Deliver(s.signed(), s.db, &bartertest.Tx{Msg: msg})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Equal(t, uint64(40), s.balance(t, custody))
}

func TestRegisterQuery(t *testing.T) {
	s := newSwap(t, 20)
	s.create(t)

	qr := barter.NewQueryRouter()
	RegisterQuery(qr)

	cases := map[string]struct {
		path string
		data []byte
		want int
	}{
		"by address":     {path: "/offers", data: OfferAddress(s.alice.Address(), s.bob.Address()), want: 1},
		"by party one":   {path: "/offers/party_one", data: s.alice.Address(), want: 1},
		"by party two":   {path: "/offers/party_two", data: s.bob.Address(), want: 1},
		"nothing for me": {path: "/offers/party_two", data: s.alice.Address(), want: 0},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := qr.Handler(tc.path)
			if h == nil {
				t.Fatalf("no handler for %q", tc.path)
			}
			models, err := h.Query(s.db, barter.KeyQueryMod, tc.data)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, len(models))
		})
	}
}

func TestStatusTags(t *testing.T) {
	tags := statusTags([]byte{0xAB, 0x01}, StatusOpen)
	assert.Equal(t, []common.KVPair{
		{Key: []byte("offer"), Value: []byte("AB01")},
		{Key: []byte("offer-status"), Value: []byte("open")},
	}, tags)
}
