/*
Package server provides the building blocks of the node commands: loading
the app state into the tendermint genesis, validating a genesis file and
serving the application over the ABCI socket.
*/
package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/barter/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const appStateKey = "app_state"

// GenOptions can parse command-line arguments to generate the default
// app_state for the genesis file. This is application-specific.
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisFile returns the path of the tendermint genesis file placed in the
// given home directory.
func GenesisFile(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitCmd will add the app_state produced by gen to the genesis file that
// was created by `tendermint init` in the same home directory.
// An existing app_state is only replaced if force is set.
func InitCmd(gen GenOptions, logger log.Logger, home string, force bool, args []string) error {
	genFile := GenesisFile(home)
	if _, err := os.Stat(genFile); err != nil {
		return errors.Wrapf(errors.ErrNotFound, "genesis file %q, run `tendermint init` first: %s", genFile, err)
	}

	doc, err := readGenesisDoc(genFile)
	if err != nil {
		return err
	}
	if state, ok := doc[appStateKey]; ok && len(state) > 0 && string(state) != "null" && !force {
		return errors.Wrap(errors.ErrState, "app_state already set, use force to overwrite")
	}

	options, err := gen(args)
	if err != nil {
		return errors.Wrap(err, "generate app state")
	}
	doc[appStateKey] = options

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "serialize genesis: %s", err)
	}
	if err := ioutil.WriteFile(genFile, out, 0600); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "write genesis: %s", err)
	}
	logger.Info("App state written to genesis file", "path", genFile)
	return nil
}

// genesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type genesisDoc map[string]json.RawMessage

func readGenesisDoc(path string) (genesisDoc, error) {
	bz, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "read genesis: %s", err)
	}
	var doc genesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "parse genesis %q: %s", path, err)
	}
	return doc, nil
}
