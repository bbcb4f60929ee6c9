package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/crypto"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x/token"
	"github.com/prometheus/client_golang/prometheus"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// DemoMints is the mint set of a development chain.
var DemoMints = []token.Mint{
	{Ticker: "BTR", Decimals: 6},
	{Ticker: "MCK", Decimals: 9},
	{Ticker: "NTK", Decimals: 2},
}

// demoBalance is the amount of every demo mint given to the rich account.
const demoBalance = 123456789

// GenInitOptions will produce the demo mint set and one rich account
// holding every demo mint, to use for dev mode.
//
// Arguments are an optional address of the rich account (bech32 or hex)
// followed by optional extra tickers. If no address is given a new key is
// generated and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var owner barter.Address
	if len(args) > 0 {
		addr, err := barter.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "rich account address")
		}
		owner = addr
	} else {
		addr, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		owner = addr
		fmt.Println(keys)
	}

	var extra []string
	if len(args) > 1 {
		extra = args[1:]
	}
	mints := append([]token.Mint{}, DemoMints...)
	for _, ticker := range extra {
		if !coin.IsCC(ticker) {
			return nil, errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", ticker)
		}
		mints = append(mints, token.Mint{Ticker: ticker})
	}

	gen := token.Genesis{Mints: mints}
	for _, m := range mints {
		gen.Accounts = append(gen.Accounts, token.GenesisAccount{
			Owner:  owner,
			Ticker: m.Ticker,
			Amount: demoBalance,
		})
	}

	raw, err := json.Marshal(gen)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "serialize token genesis: %s", err)
	}
	opts := barter.Options{"token": raw}
	return json.MarshalIndent(opts, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool, reg prometheus.Registerer) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "barter.db")
	}

	stack := Stack(reg)
	application, err := Application("barterd", stack, TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}

type output struct {
	Address barter.Address   `json:"address"`
	Pubkey  crypto.PublicKey `json:"pub_key"`
	Seed    []byte           `json:"seed"`
}

// GenerateCoinKey returns the address of a new public key,
// along with a json representation of the key.
// You can give tokens to this address and
// import the key in a client to use them
func GenerateCoinKey() (barter.Address, string, error) {
	privKey := crypto.GenPrivateKey()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{Address: addr, Pubkey: pubKey, Seed: privKey.Seed()}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrapf(errors.ErrInput, "serialize key: %s", err)
	}
	return addr, string(keys), nil
}
