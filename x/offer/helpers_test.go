package offer

import (
	"context"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/bartertest"
	"github.com/iov-one/barter/bartertest/assert"
	"github.com/iov-one/barter/store"
	"github.com/iov-one/barter/x/token"
)

// swap is a ledger with two parties. Alice (party one) holds 100 MCK, Bob
// (party two) holds the NTK given to newSwap. Both have an empty account for
// the other mint.
type swap struct {
	db     barter.CacheableKVStore
	ledger token.Controller
	auth   *bartertest.CtxAuth
	alice  barter.Condition
	bob    barter.Condition
}

func newSwap(t testing.TB, bobNTK uint64) *swap {
	t.Helper()
	s := &swap{
		db:     store.MemStore(),
		ledger: token.NewController(),
		auth:   &bartertest.CtxAuth{Key: "auth"},
		alice:  bartertest.NewCondition(),
		bob:    bartertest.NewCondition(),
	}
	assert.Nil(t, s.ledger.CreateMint(s.db, &token.Mint{Ticker: "MCK", Decimals: 6}))
	assert.Nil(t, s.ledger.CreateMint(s.db, &token.Mint{Ticker: "NTK", Decimals: 2}))
	s.fund(t, s.alice, "MCK", 100)
	s.fund(t, s.alice, "NTK", 0)
	s.fund(t, s.bob, "NTK", bobNTK)
	s.fund(t, s.bob, "MCK", 0)
	return s
}

func (s *swap) fund(t testing.TB, owner barter.Condition, ticker string, amount uint64) {
	t.Helper()
	addr, err := s.ledger.OpenAccount(s.db, owner.Address(), ticker)
	assert.Nil(t, err)
	assert.Nil(t, s.ledger.Issue(s.db, addr, amount))
}

// signed returns a context authenticated by given signers.
func (s *swap) signed(signers ...barter.Condition) barter.Context {
	return s.auth.SetConditions(context.Background(), signers...)
}

func (s *swap) account(who barter.Condition, ticker string) barter.Address {
	return token.AccountAddress(who.Address(), ticker)
}

// balance returns the balance of given account or zero if it does not
// exist.
func (s *swap) balance(t testing.TB, addr barter.Address) uint64 {
	t.Helper()
	acc, err := s.ledger.Account(s.db, addr)
	if err != nil {
		return 0
	}
	return acc.Amount
}

// balances returns alice MCK, alice NTK, bob MCK, bob NTK and custody MCK
// balances in this order.
func (s *swap) balances(t testing.TB) [5]uint64 {
	t.Helper()
	return [5]uint64{
		s.balance(t, s.account(s.alice, "MCK")),
		s.balance(t, s.account(s.alice, "NTK")),
		s.balance(t, s.account(s.bob, "MCK")),
		s.balance(t, s.account(s.bob, "NTK")),
		s.balance(t, CustodialAccount("MCK")),
	}
}

func (s *swap) createMsg(send, ask uint64) *CreateOfferMsg {
	return &CreateOfferMsg{
		PartyOne:       s.alice.Address(),
		PartyTwo:       s.bob.Address(),
		SendAccount:    s.account(s.alice, "MCK"),
		ReceiveAccount: s.account(s.alice, "NTK"),
		SendMint:       "MCK",
		ReceiveMint:    "NTK",
		SendAmount:     send,
		AskAmount:      ask,
	}
}

func (s *swap) closeMsg() *CloseOfferMsg {
	return &CloseOfferMsg{
		PartyOne:       s.alice.Address(),
		PartyTwo:       s.bob.Address(),
		ReceiveAccount: s.account(s.alice, "MCK"),
	}
}

func (s *swap) acceptMsg() *AcceptOfferMsg {
	return &AcceptOfferMsg{
		PartyOne:        s.alice.Address(),
		PartyTwo:        s.bob.Address(),
		PartyOneReceive: s.account(s.alice, "NTK"),
		PartyTwoSend:    s.account(s.bob, "NTK"),
		PartyTwoReceive: s.account(s.bob, "MCK"),
		OfferMint:       "MCK",
		AskMint:         "NTK",
	}
}

func (s *swap) handlers(ledger Ledger) (CreateOfferHandler, CloseOfferHandler, AcceptOfferHandler) {
	b := NewBucket()
	return CreateOfferHandler{auth: s.auth, bucket: b, ledger: ledger},
		CloseOfferHandler{auth: s.auth, bucket: b, ledger: ledger},
		AcceptOfferHandler{auth: s.auth, bucket: b, ledger: ledger}
}

// create opens an offer of 40 MCK for 10 NTK from alice to bob.
func (s *swap) create(t testing.TB) {
	t.Helper()
	assert.Nil(t, s.deliverCreate())
}

func (s *swap) deliverCreate() error {
	create, _, _ := s.handlers(s.ledger)
	_, err := create.Deliver(s.signed(s.alice), s.db, &bartertest.Tx{Msg: s.createMsg(40, 10)})
	return err
}

func (s *swap) offer(t testing.TB) (*Offer, error) {
	t.Helper()
	var o Offer
	if err := NewBucket().One(s.db, OfferAddress(s.alice.Address(), s.bob.Address()), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// failingLedger fails every transfer after the first n succeeded.
type failingLedger struct {
	token.Controller
	n   int
	err error
}

func (l *failingLedger) Transfer(db barter.KVStore, amount uint64, from, to, authority barter.Address) error {
	if l.n == 0 {
		return l.err
	}
	l.n--
	return l.Controller.Transfer(db, amount, from, to, authority)
}
