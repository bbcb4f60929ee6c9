package token

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

// Controller gives access to the ledger state. It is the only way other
// extensions should move tokens.
type Controller struct {
	mints    orm.ModelBucket
	accounts orm.ModelBucket
}

// NewController returns a controller operating on the default buckets.
func NewController() Controller {
	return Controller{
		mints:    NewMintBucket(),
		accounts: NewAccountBucket(),
	}
}

// Mint returns the mint registered under given ticker.
func (c Controller) Mint(db barter.ReadOnlyKVStore, ticker string) (*Mint, error) {
	var m Mint
	if err := c.mints.One(db, []byte(ticker), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMint registers a new mint. A ticker can be registered only once.
func (c Controller) CreateMint(db barter.KVStore, m *Mint) error {
	return c.mints.Insert(db, []byte(m.Ticker), m)
}

// Account returns the account stored under given address.
func (c Controller) Account(db barter.ReadOnlyKVStore, addr barter.Address) (*Account, error) {
	var a Account
	if err := c.accounts.One(db, addr, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Balance returns the amount held by the account stored under given
// address.
func (c Controller) Balance(db barter.ReadOnlyKVStore, addr barter.Address) (uint64, error) {
	a, err := c.Account(db, addr)
	if err != nil {
		return 0, err
	}
	return a.Amount, nil
}

// OpenAccount creates the account of given owner for given mint unless it
// already exists. The address of the account is returned in both cases.
func (c Controller) OpenAccount(db barter.KVStore, owner barter.Address, ticker string) (barter.Address, error) {
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	if _, err := c.Mint(db, ticker); err != nil {
		return nil, errors.Wrapf(err, "mint %q", ticker)
	}
	addr := AccountAddress(owner, ticker)
	switch err := c.accounts.Has(db, addr); {
	case err == nil:
		return addr, nil
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	acc := &Account{Owner: owner, Ticker: ticker}
	if err := c.accounts.Put(db, addr, acc); err != nil {
		return nil, errors.Wrap(err, "cannot store account")
	}
	return addr, nil
}

// Issue creates new tokens on the account stored under given address.
func (c Controller) Issue(db barter.KVStore, addr barter.Address, amount uint64) error {
	acc, err := c.Account(db, addr)
	if err != nil {
		return err
	}
	if acc.Amount, err = coin.Add(acc.Amount, amount); err != nil {
		return err
	}
	return c.accounts.Put(db, addr, acc)
}

// Transfer moves amount of tokens between two accounts of the same mint.
// The authority must be the owner of the source account.
//
// Both accounts are validated before anything is written, so a failed
// transfer leaves the state unchanged.
func (c Controller) Transfer(db barter.KVStore, amount uint64, from, to, authority barter.Address) error {
	src, err := c.Account(db, from)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	dst, err := c.Account(db, to)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if !src.Owner.Equals(authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not the owner of %s", authority, from)
	}
	if src.Ticker != dst.Ticker {
		return errors.Wrapf(errors.ErrCurrency, "cannot transfer %s to %s account", src.Ticker, dst.Ticker)
	}

	debit, err := coin.Sub(src.Amount, amount)
	if err != nil {
		return errors.Wrapf(err, "%s balance", from)
	}
	if from.Equals(to) {
		return nil
	}
	credit, err := coin.Add(dst.Amount, amount)
	if err != nil {
		return errors.Wrapf(err, "%s balance", to)
	}

	src.Amount = debit
	dst.Amount = credit
	if err := c.accounts.Put(db, from, src); err != nil {
		return errors.Wrap(err, "cannot store source")
	}
	if err := c.accounts.Put(db, to, dst); err != nil {
		return errors.Wrap(err, "cannot store destination")
	}
	return nil
}

// AccountsOf returns all accounts of given owner.
func (c Controller) AccountsOf(db barter.ReadOnlyKVStore, owner barter.Address) ([]*Account, error) {
	var accs []*Account
	if _, err := c.accounts.ByIndex(db, "owner", owner, &accs); err != nil {
		return nil, err
	}
	return accs, nil
}
