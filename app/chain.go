package app

import (
	"reflect"

	"github.com/iov-one/barter"
)

// Decorators is a stack of decorators that is still missing the final
// handler. Decorators are executed in the order they were added.
type Decorators struct {
	chain []barter.Decorator
}

/*
ChainDecorators starts a stack of decorators. WithHandler closes it and
returns a single Handler:

	app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(router)

Nil decorators are skipped, so optional ones can be passed directly.
*/
func ChainDecorators(chain ...barter.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new stack with the decorators appended. The receiver is
// not modified.
func (d Decorators) Chain(chain ...barter.Decorator) Decorators {
	next := make([]barter.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	next = append(next, withoutNil(chain)...)
	return Decorators{chain: next}
}

func withoutNil(ds []barter.Decorator) []barter.Decorator {
	var out []barter.Decorator
	for _, d := range ds {
		if d == nil {
			continue
		}
		if v := reflect.ValueOf(d); v.Kind() == reflect.Ptr && v.IsNil() {
			continue
		}
		out = append(out, d)
	}
	return out
}

// WithHandler returns a Handler that runs every decorator of the stack
// before h.
func (d Decorators) WithHandler(h barter.Handler) barter.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step is one decorator bound to the rest of the stack.
type step struct {
	d    barter.Decorator
	next barter.Handler
}

var _ barter.Handler = step{}

func (s step) Check(ctx barter.Context, store barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

func (s step) Deliver(ctx barter.Context, store barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
