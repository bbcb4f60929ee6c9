package app

import (
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
)

type failingInitializer struct{}

func (failingInitializer) FromGenesis(barter.Options, barter.GenesisParams, barter.KVStore) error {
	return errors.Wrap(errors.ErrState, "always fails")
}

func TestChainInitializers(t *testing.T) {
	Convey("Given a genesis with a kv section", t, func() {
		opts, err := parseOptions([]byte(`{"kv": {"one": "1"}}`))
		So(err, ShouldBeNil)
		kv := store.MemStore()
		params := barter.GenesisParams{ChainID: "test-chain"}

		Convey("all initializers run in order", func() {
			init := ChainInitializers(kvInitializer{}, kvInitializer{})
			So(init.FromGenesis(opts, params, kv), ShouldBeNil)
			v, err := kv.Get([]byte("one"))
			So(err, ShouldBeNil)
			So(string(v), ShouldEqual, "1")
		})

		Convey("the first failure aborts the chain", func() {
			init := ChainInitializers(failingInitializer{}, kvInitializer{})
			err := init.FromGenesis(opts, params, kv)
			So(errors.ErrState.Is(err), ShouldBeTrue)
			v, err := kv.Get([]byte("one"))
			So(err, ShouldBeNil)
			So(v, ShouldBeNil)
		})
	})

	Convey("An empty app state is rejected", t, func() {
		_, err := parseOptions(nil)
		So(errors.ErrEmpty.Is(err), ShouldBeTrue)
		_, err = parseOptions([]byte(`[1, 2]`))
		So(errors.ErrInput.Is(err), ShouldBeTrue)
	})
}

func TestSaveChainID(t *testing.T) {
	kv := store.MemStore()
	id, err := loadChainID(kv)
	assert.NoError(t, err)
	assert.Equal(t, "", id)

	assert.True(t, errors.ErrInput.Is(saveChainID(kv, "x")))
	assert.NoError(t, saveChainID(kv, "test-chain"))
	id, err = loadChainID(kv)
	assert.NoError(t, err)
	assert.Equal(t, "test-chain", id)
	assert.True(t, errors.ErrUnauthorized.Is(saveChainID(kv, "other-chain")))
}
