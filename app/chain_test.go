package app

import (
	"context"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/bartertest"
	"github.com/iov-one/barter/bartertest/assert"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x/utils"
)

func TestChain(t *testing.T) {
	c1 := &bartertest.Decorator{}
	c2 := &bartertest.Decorator{}
	c3 := &bartertest.Decorator{}
	h := &bartertest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		c2,
		nil,
	).Chain(c3).WithHandler(h)

	ctx := context.Background()
	tx := &bartertest.Tx{Msg: &bartertest.Msg{RoutePath: "test/chain"}}

	_, err := stack.Check(ctx, nil, tx)
	assert.Nil(t, err)
	_, err = stack.Deliver(ctx, nil, tx)
	assert.Nil(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// a failing decorator stops the chain
	c2.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, nil, tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 3, c1.CallCount())
	assert.Equal(t, 3, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainRecoversPanics(t *testing.T) {
	inner := &bartertest.Decorator{}
	stack := ChainDecorators(
		utils.NewRecovery(),
		inner,
	).WithHandler(bartertest.PanicHandler{Msg: "boom"})

	tx := &bartertest.Tx{Msg: &bartertest.Msg{RoutePath: "test/chain"}}
	_, err := stack.Check(context.Background(), nil, tx)
	assert.IsErr(t, errors.ErrPanic, err)
	_, err = stack.Deliver(context.Background(), nil, tx)
	assert.IsErr(t, errors.ErrPanic, err)
	assert.Equal(t, 2, inner.CallCount())
}

func TestWithoutNil(t *testing.T) {
	var nilPtr *bartertest.Decorator
	d := &bartertest.Decorator{}

	cases := map[string]struct {
		in   []barter.Decorator
		want int
	}{
		"empty":         {in: nil, want: 0},
		"nil interface": {in: []barter.Decorator{nil, d, nil}, want: 1},
		"nil pointer":   {in: []barter.Decorator{nilPtr, d}, want: 1},
		"no nils":       {in: []barter.Decorator{d, d}, want: 2},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			in := append([]barter.Decorator(nil), tc.in...)
			got := withoutNil(tc.in)
			assert.Equal(t, tc.want, len(got))
			for _, g := range got {
				assert.Equal(t, d, g)
			}
			// The input is left untouched.
			assert.Equal(t, in, tc.in)
		})
	}
}
