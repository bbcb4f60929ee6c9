package barter_test

import (
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/bartertest"
	"github.com/iov-one/barter/bartertest/assert"
	"github.com/iov-one/barter/errors"
)

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      barter.Tx
		dest    interface{}
		wantErr *errors.Error
	}{
		"pointer destination": {
			tx:   &bartertest.Tx{Msg: &bartertest.Msg{RoutePath: "test/msg"}},
			dest: new(*bartertest.Msg),
		},
		"value destination": {
			tx:   &bartertest.Tx{Msg: &bartertest.Msg{RoutePath: "test/msg"}},
			dest: &bartertest.Msg{},
		},
		"invalid message": {
			tx:      &bartertest.Tx{Msg: &bartertest.Msg{Err: errors.ErrMsg}},
			dest:    &bartertest.Msg{},
			wantErr: errors.ErrMsg,
		},
		"transaction error": {
			tx:      &bartertest.Tx{Err: errors.ErrState},
			dest:    &bartertest.Msg{},
			wantErr: errors.ErrState,
		},
		"wrong destination type": {
			tx:      &bartertest.Tx{Msg: &bartertest.Msg{}},
			dest:    new(int),
			wantErr: errors.ErrType,
		},
		"destination not a pointer": {
			tx:      &bartertest.Tx{Msg: &bartertest.Msg{}},
			dest:    bartertest.Msg{},
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := barter.LoadMsg(tc.tx, tc.dest)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
		})
	}
}

func TestLoadMsgCopiesTheMessage(t *testing.T) {
	tx := &bartertest.Tx{Msg: &bartertest.Msg{RoutePath: "test/msg", Serialized: []byte("x")}}
	var msg bartertest.Msg
	assert.Nil(t, barter.LoadMsg(tx, &msg))
	assert.Equal(t, "test/msg", msg.RoutePath)
	assert.Equal(t, []byte("x"), msg.Serialized)
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "test/msg", barter.GetPath(&bartertest.Tx{Msg: &bartertest.Msg{RoutePath: "test/msg"}}))
	assert.Equal(t, "(missing)", barter.GetPath(&bartertest.Tx{Err: errors.ErrState}))
	assert.Equal(t, "(missing)", barter.GetPath(&bartertest.Tx{}))
}
