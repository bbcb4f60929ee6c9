package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/bartertest"
	"github.com/iov-one/barter/bartertest/assert"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/tendermint/tendermint/libs/log"
)

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	ctx := barter.WithLogger(context.Background(), log.NewTMLogger(log.NewSyncWriter(&buf)))
	h := bartertest.PanicHandler{Msg: "boom"}
	r := NewRecovery()
	db := store.MemStore()
	tx := &bartertest.Tx{Msg: &bartertest.Msg{RoutePath: "offer/accept"}}

	// panic if handler is called directly
	assert.Panics(t, func() { _, _ = h.Check(ctx, db, nil) })

	_, err := r.Check(ctx, db, tx, h)
	assert.IsErr(t, errors.ErrPanic, err)

	_, err = r.Deliver(ctx, db, tx, h)
	assert.IsErr(t, errors.ErrPanic, err)
	assert.Equal(t, "offer/accept: boom: panic", err.Error())

	if !bytes.Contains(buf.Bytes(), []byte("path=offer/accept")) {
		t.Fatalf("panic not logged: %s", buf.String())
	}
}
