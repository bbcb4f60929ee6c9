package offer

import (
	"encoding/hex"
	"strings"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
	"github.com/iov-one/barter/x"
	"github.com/iov-one/barter/x/token"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	// pay the offer cost up-front
	createOfferCost int64 = 300
	closeOfferCost  int64 = 50
	acceptOfferCost int64 = 100
)

// Tag keys appended to the deliver result of every handler.
const (
	TagOffer       = "offer"
	TagOfferStatus = "offer-status"
)

// Values of the offer status tag.
const (
	StatusOpen      = "open"
	StatusClosed    = "closed"
	StatusFulfilled = "fulfilled"
)

// Ledger is the part of the token ledger the offer handlers depend on.
// token.Controller is the implementation used by the application.
type Ledger interface {
	Mint(db barter.ReadOnlyKVStore, ticker string) (*token.Mint, error)
	Account(db barter.ReadOnlyKVStore, addr barter.Address) (*token.Account, error)
	OpenAccount(db barter.KVStore, owner barter.Address, ticker string) (barter.Address, error)
	Transfer(db barter.KVStore, amount uint64, from, to, authority barter.Address) error
}

var _ Ledger = token.Controller{}

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r barter.Registry, auth x.Authenticator, ledger Ledger) {
	bucket := NewBucket()
	r.Handle(pathCreateOfferMsg, CreateOfferHandler{auth: auth, bucket: bucket, ledger: ledger})
	r.Handle(pathCloseOfferMsg, CloseOfferHandler{auth: auth, bucket: bucket, ledger: ledger})
	r.Handle(pathAcceptOfferMsg, AcceptOfferHandler{auth: auth, bucket: bucket, ledger: ledger})
}

// RegisterQuery will register this bucket as "/offers" with the
// "/offers/party_one" and "/offers/party_two" indexes.
func RegisterQuery(qr barter.QueryRouter) {
	NewBucket().Register("offers", qr)
}

// CreateOfferHandler deposits the offered tokens into the custodial
// account and stores the offer.
type CreateOfferHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ledger Ledger
}

var _ barter.Handler = CreateOfferHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateOfferHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &barter.CheckResult{GasAllocated: createOfferCost}, nil
}

// Deliver moves the deposit and creates the offer. Both happen or none.
func (h CreateOfferHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	offer := &Offer{
		PartyOne:       msg.PartyOne,
		PartyTwo:       msg.PartyTwo,
		ReceiveAccount: msg.ReceiveAccount,
		OfferToken:     msg.SendMint,
		OfferAmount:    msg.SendAmount,
		AskToken:       msg.ReceiveMint,
		AskAmount:      msg.AskAmount,
	}
	key := offer.Key()

	err = atomically(db, func(db barter.KVStore) error {
		custody, err := h.ledger.OpenAccount(db, Authority().Address(), msg.SendMint)
		if err != nil {
			return errors.Wrap(err, "custodial account")
		}
		if err := h.ledger.Transfer(db, msg.SendAmount, msg.SendAccount, custody, msg.PartyOne); err != nil {
			return errors.Wrap(err, "deposit")
		}
		if err := h.bucket.Insert(db, key, offer); err != nil {
			return errors.Wrap(err, "cannot store offer")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	barter.GetLogger(ctx).Debug("offer created", "offer", offerTag(key),
		"offered", coin.NewCoin(offer.OfferAmount, offer.OfferToken),
		"asked", coin.NewCoin(offer.AskAmount, offer.AskToken))
	return &barter.DeliverResult{
		Data: key,
		Tags: statusTags(key, StatusOpen),
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateOfferHandler) validate(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*CreateOfferMsg, error) {
	var msg CreateOfferMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.PartyOne) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "party one signature required")
	}

	for _, ticker := range []string{msg.SendMint, msg.ReceiveMint} {
		if _, err := h.ledger.Mint(db, ticker); err != nil {
			return nil, errors.Wrapf(err, "mint %q", ticker)
		}
	}
	send, err := accountOf(db, h.ledger, msg.SendAccount, msg.PartyOne, msg.SendMint)
	if err != nil {
		return nil, errors.Wrap(err, "send account")
	}
	if send.Amount < msg.SendAmount {
		return nil, errors.Wrapf(ErrInsufficientBalance, "has %s, needs %s", send.Coin(), coin.NewCoin(msg.SendAmount, msg.SendMint))
	}
	if _, err := accountOf(db, h.ledger, msg.ReceiveAccount, msg.PartyOne, msg.ReceiveMint); err != nil {
		return nil, errors.Wrap(err, "receive account")
	}

	switch err := h.bucket.Has(db, OfferAddress(msg.PartyOne, msg.PartyTwo)); {
	case err == nil:
		return nil, errors.Wrap(errors.ErrDuplicate, "offer already open for this pair")
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	return &msg, nil
}

// CloseOfferHandler returns the deposit to party one and removes the offer.
type CloseOfferHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ledger Ledger
}

var _ barter.Handler = CloseOfferHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CloseOfferHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &barter.CheckResult{GasAllocated: closeOfferCost}, nil
}

// Deliver refunds the deposit and deletes the offer. Both happen or none.
func (h CloseOfferHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	msg, offer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	key := offer.Key()

	err = atomically(db, func(db barter.KVStore) error {
		custody := CustodialAccount(offer.OfferToken)
		if err := h.ledger.Transfer(db, offer.OfferAmount, custody, msg.ReceiveAccount, Authority().Address()); err != nil {
			return errors.Wrap(err, "refund")
		}
		if err := h.bucket.Delete(db, key); err != nil {
			return errors.Wrap(err, "cannot delete offer")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	barter.GetLogger(ctx).Debug("offer closed", "offer", offerTag(key))
	return &barter.DeliverResult{
		Data: key,
		Tags: statusTags(key, StatusClosed),
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CloseOfferHandler) validate(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*CloseOfferMsg, *Offer, error) {
	var msg CloseOfferMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.PartyOne) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "party one signature required")
	}

	var offer Offer
	if err := h.bucket.One(db, OfferAddress(msg.PartyOne, msg.PartyTwo), &offer); err != nil {
		return nil, nil, errors.Wrap(err, "offer")
	}
	if _, err := accountOf(db, h.ledger, CustodialAccount(offer.OfferToken), Authority().Address(), offer.OfferToken); err != nil {
		return nil, nil, errors.Wrap(err, "custodial account")
	}
	if _, err := accountOf(db, h.ledger, msg.ReceiveAccount, msg.PartyOne, offer.OfferToken); err != nil {
		return nil, nil, errors.Wrap(err, "receive account")
	}
	return &msg, &offer, nil
}

// AcceptOfferHandler swaps the tokens of both parties and removes the
// offer.
type AcceptOfferHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ledger Ledger
}

var _ barter.Handler = AcceptOfferHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h AcceptOfferHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &barter.CheckResult{GasAllocated: acceptOfferCost}, nil
}

// Deliver executes both legs of the swap and deletes the offer. If any step
// fails nothing is changed.
func (h AcceptOfferHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	msg, offer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	key := offer.Key()

	err = atomically(db, func(db barter.KVStore) error {
		if err := h.ledger.Transfer(db, offer.AskAmount, msg.PartyTwoSend, offer.ReceiveAccount, msg.PartyTwo); err != nil {
			return errors.Wrap(err, "payment leg")
		}
		custody := CustodialAccount(offer.OfferToken)
		if err := h.ledger.Transfer(db, offer.OfferAmount, custody, msg.PartyTwoReceive, Authority().Address()); err != nil {
			return errors.Wrap(err, "release leg")
		}
		if err := h.bucket.Delete(db, key); err != nil {
			return errors.Wrap(err, "cannot delete offer")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	barter.GetLogger(ctx).Debug("offer fulfilled", "offer", offerTag(key))
	return &barter.DeliverResult{
		Data: key,
		Tags: statusTags(key, StatusFulfilled),
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h AcceptOfferHandler) validate(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*AcceptOfferMsg, *Offer, error) {
	var msg AcceptOfferMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.PartyTwo) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "party two signature required")
	}

	var offer Offer
	if err := h.bucket.One(db, OfferAddress(msg.PartyOne, msg.PartyTwo), &offer); err != nil {
		return nil, nil, errors.Wrap(err, "offer")
	}
	if msg.OfferMint != offer.OfferToken {
		return nil, nil, errors.Wrapf(ErrInvalidMintAccount, "offer mint %q", msg.OfferMint)
	}
	if msg.AskMint != offer.AskToken {
		return nil, nil, errors.Wrapf(ErrInvalidMintAccount, "ask mint %q", msg.AskMint)
	}
	if _, err := accountOf(db, h.ledger, CustodialAccount(offer.OfferToken), Authority().Address(), offer.OfferToken); err != nil {
		return nil, nil, errors.Wrap(err, "custodial account")
	}
	if !msg.PartyOneReceive.Equals(offer.ReceiveAccount) {
		return nil, nil, errors.Wrapf(ErrIncorrectReceiveAccount, "%s", msg.PartyOneReceive)
	}
	if _, err := accountOf(db, h.ledger, msg.PartyOneReceive, offer.PartyOne, offer.AskToken); err != nil {
		return nil, nil, errors.Wrap(err, "party one receive account")
	}
	send, err := accountOf(db, h.ledger, msg.PartyTwoSend, msg.PartyTwo, offer.AskToken)
	if err != nil {
		return nil, nil, errors.Wrap(err, "party two send account")
	}
	if send.Amount < offer.AskAmount {
		return nil, nil, errors.Wrapf(ErrInsufficientBalance, "has %s, needs %s", send.Coin(), coin.NewCoin(offer.AskAmount, offer.AskToken))
	}
	if _, err := accountOf(db, h.ledger, msg.PartyTwoReceive, msg.PartyTwo, offer.OfferToken); err != nil {
		return nil, nil, errors.Wrap(err, "party two receive account")
	}
	return &msg, &offer, nil
}

// accountOf loads the token account and ensures it is owned by owner and
// holds tokens of the given mint.
func accountOf(db barter.ReadOnlyKVStore, ledger Ledger, addr, owner barter.Address, ticker string) (*token.Account, error) {
	acc, err := ledger.Account(db, addr)
	if err != nil {
		return nil, err
	}
	if !acc.Owner.Equals(owner) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "account %s is not owned by %s", addr, owner)
	}
	if acc.Ticker != ticker {
		return nil, errors.Wrapf(errors.ErrCurrency, "account %s holds %s not %s", addr, acc.Ticker, ticker)
	}
	return acc, nil
}

// atomically runs fn against a cache of db. Changes are written to db only
// if fn succeeds.
func atomically(db barter.KVStore, fn func(barter.KVStore) error) error {
	cstore, ok := db.(barter.CacheableKVStore)
	if !ok {
		return errors.Wrap(errors.ErrDatabase, "store cannot isolate changes")
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "cannot write changes")
	}
	return nil
}

func statusTags(key []byte, status string) []common.KVPair {
	return []common.KVPair{
		{Key: []byte(TagOffer), Value: []byte(offerTag(key))},
		{Key: []byte(TagOfferStatus), Value: []byte(status)},
	}
}

func offerTag(key []byte) string {
	return strings.ToUpper(hex.EncodeToString(key))
}
