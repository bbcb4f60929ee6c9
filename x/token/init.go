package token

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

const optKey = "token"

// GenesisAccount is an account with its initial balance. The account is
// stored under the address derived from the owner and the ticker.
type GenesisAccount struct {
	Owner  barter.Address `json:"owner"`
	Ticker string         `json:"ticker"`
	Amount uint64         `json:"amount"`
}

// Genesis is the "token" section of the genesis file.
type Genesis struct {
	Mints    []Mint           `json:"mints"`
	Accounts []GenesisAccount `json:"accounts"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ barter.Initializer = Initializer{}

// FromGenesis registers all mints and then opens and funds all accounts.
func (Initializer) FromGenesis(opts barter.Options, params barter.GenesisParams, kv barter.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}

	ctrl := NewController()
	for i := range gen.Mints {
		m := gen.Mints[i]
		if err := ctrl.CreateMint(kv, &m); err != nil {
			return errors.Wrapf(err, "mint #%d", i)
		}
	}
	for i, a := range gen.Accounts {
		addr, err := ctrl.OpenAccount(kv, a.Owner, a.Ticker)
		if err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		if err := ctrl.Issue(kv, addr, a.Amount); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
