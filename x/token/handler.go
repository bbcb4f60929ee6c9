package token

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x"
)

const (
	openAccountCost int64 = 100
	transferCost    int64 = 10
)

// RegisterQuery will register the mints as "/mints" and the accounts as
// "/accounts" and "/accounts/owner".
func RegisterQuery(qr barter.QueryRouter) {
	NewMintBucket().Register("mints", qr)
	NewAccountBucket().Register("accounts", qr)
}

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r barter.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathOpenAccountMsg, OpenAccountHandler{ctrl: ctrl})
	r.Handle(pathTransferMsg, TransferHandler{auth: auth, ctrl: ctrl})
}

// OpenAccountHandler creates token accounts. Anyone may open an account
// for anyone, an account grants nothing to the one who opened it.
type OpenAccountHandler struct {
	ctrl Controller
}

var _ barter.Handler = OpenAccountHandler{}

func (h OpenAccountHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &barter.CheckResult{GasAllocated: openAccountCost}, nil
}

func (h OpenAccountHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.ctrl.OpenAccount(db, msg.Owner, msg.Ticker)
	if err != nil {
		return nil, err
	}
	return &barter.DeliverResult{Data: addr}, nil
}

func (h OpenAccountHandler) validate(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*OpenAccountMsg, error) {
	var msg OpenAccountMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.Mint(db, msg.Ticker); err != nil {
		return nil, errors.Wrapf(err, "mint %q", msg.Ticker)
	}
	return &msg, nil
}

// TransferHandler moves tokens on behalf of the owner of the source
// account.
type TransferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ barter.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &barter.CheckResult{GasAllocated: transferCost}, nil
}

func (h TransferHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	msg, src, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(db, msg.Amount, msg.Source, msg.Destination, src.Owner); err != nil {
		return nil, err
	}
	return &barter.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*TransferMsg, *Account, error) {
	var msg TransferMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	src, err := h.ctrl.Account(db, msg.Source)
	if err != nil {
		return nil, nil, errors.Wrap(err, "source")
	}
	if !h.auth.HasAddress(ctx, src.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "source owner signature required")
	}
	if src.Amount < msg.Amount {
		return nil, nil, errors.Wrapf(errors.ErrInsufficientAmount, "has %s, needs %s",
			src.Coin(), coin.NewCoin(msg.Amount, src.Ticker))
	}
	return &msg, src, nil
}
