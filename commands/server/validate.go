package server

import (
	"encoding/json"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
)

// ValidateGenesis loads the app_state of every given genesis file with the
// initializer. The resulting state is discarded.
func ValidateGenesis(ini barter.Initializer, genesisPaths []string) error {
	if len(genesisPaths) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no genesis file given")
	}
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini barter.Initializer, genesisPath string) error {
	doc, err := readGenesisDoc(genesisPath)
	if err != nil {
		return err
	}

	var params barter.GenesisParams
	if raw, ok := doc["chain_id"]; ok {
		if err := json.Unmarshal(raw, &params.ChainID); err != nil {
			return errors.Wrapf(errors.ErrInput, "chain_id: %s", err)
		}
	}
	var state barter.Options
	if err := json.Unmarshal(doc[appStateKey], &state); err != nil || len(state) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state not set")
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()
	if err := ini.FromGenesis(state, params, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
