package app

import (
	"encoding/json"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...barter.Initializer) barter.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []barter.Initializer
}

var _ barter.Initializer = chainInitializer{}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts barter.Options, params barter.GenesisParams, kv barter.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, params, kv); err != nil {
			return err
		}
	}
	return nil
}

// parseOptions decodes the app_state section of a genesis file.
func parseOptions(data []byte) (barter.Options, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "app_state not set in genesis.json, please initialize application before launching the blockchain")
	}
	var opts barter.Options
	if err := json.Unmarshal(data, &opts); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "parse app state: %s", err)
	}
	return opts, nil
}
