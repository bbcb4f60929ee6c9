package utils

import (
	"context"
	"testing"

	"github.com/iov-one/barter/bartertest"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	tx := &bartertest.Tx{Msg: &bartertest.Msg{RoutePath: "token/transfer"}}
	db := store.MemStore()

	_, err := m.Deliver(context.Background(), db, tx, &bartertest.Handler{})
	assert.NoError(t, err)
	_, err = m.Deliver(context.Background(), db, tx, &bartertest.Handler{})
	assert.NoError(t, err)
	_, err = m.Check(context.Background(), db, tx, &bartertest.Handler{CheckErr: errors.ErrNotFound})
	assert.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.txs.WithLabelValues("token/transfer", "deliver", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.txs.WithLabelValues("token/transfer", "check", "3")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.txs.WithLabelValues("token/transfer", "check", "ok")))
}
