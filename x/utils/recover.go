package utils

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// Recovery turns a panic raised while processing a transaction into an
// ErrPanic error, so that a single bad transaction cannot halt the node.
// The panic is logged with the path of the message.
type Recovery struct{}

var _ barter.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx barter.Context, store barter.KVStore, tx barter.Tx, next barter.Checker) (_ *barter.CheckResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicked(ctx, tx, p)
		}
	}()
	return next.Check(ctx, store, tx)
}

func (Recovery) Deliver(ctx barter.Context, store barter.KVStore, tx barter.Tx, next barter.Deliverer) (_ *barter.DeliverResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicked(ctx, tx, p)
		}
	}()
	return next.Deliver(ctx, store, tx)
}

func panicked(ctx barter.Context, tx barter.Tx, p interface{}) error {
	path := barter.GetPath(tx)
	barter.GetLogger(ctx).Error("tx panicked", "path", path, "panic", p)
	return errors.Wrapf(errors.ErrPanic, "%s: %v", path, p)
}
