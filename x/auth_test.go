package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/bartertest"
	"github.com/iov-one/barter/x"
	"github.com/stretchr/testify/assert"
)

func TestMultiAuth(t *testing.T) {
	a := bartertest.NewCondition()
	b := bartertest.NewCondition()
	c := bartertest.NewCondition()

	ctx := context.Background()
	auth := x.ChainAuth(
		&bartertest.Auth{Signers: []barter.Condition{a, b}},
		&bartertest.Auth{Signers: []barter.Condition{b, c}},
	)

	assert.Equal(t, []barter.Condition{a, b, c}, auth.GetConditions(ctx))
	assert.True(t, auth.HasAddress(ctx, c.Address()))
	assert.False(t, auth.HasAddress(ctx, bartertest.NewCondition().Address()))
}

func TestMultiAuthWithoutSigners(t *testing.T) {
	auth := x.ChainAuth(&bartertest.Auth{}, &bartertest.Auth{})
	assert.Empty(t, auth.GetConditions(context.Background()))
	assert.False(t, auth.HasAddress(context.Background(), bartertest.NewCondition().Address()))
}
