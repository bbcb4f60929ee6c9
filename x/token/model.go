package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

// MaxDecimals limits the display precision of a mint.
const MaxDecimals = 18

// Mint describes a single kind of token.
type Mint struct {
	Ticker   string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker"`
	Decimals uint32 `protobuf:"varint,2,opt,name=decimals,proto3" json:"decimals"`
}

var _ orm.Model = (*Mint)(nil)

func (m *Mint) Reset()         { *m = Mint{} }
func (m *Mint) String() string { return proto.CompactTextString(m) }
func (*Mint) ProtoMessage()    {}

// Validate checks the ticker and the number of decimals.
func (m *Mint) Validate() error {
	var errs error
	if !coin.IsCC(m.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", m.Ticker))
	}
	if m.Decimals > MaxDecimals {
		errs = errors.AppendField(errs, "Decimals", errors.Wrapf(errors.ErrInput, "more than %d", MaxDecimals))
	}
	return errs
}

// NewMintBucket returns a bucket of mints keyed by their ticker.
func NewMintBucket() orm.ModelBucket {
	return orm.NewModelBucket("mint", &Mint{})
}

// Account holds the balance of an owner in a single mint.
type Account struct {
	Owner  barter.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/barter.Address" json:"owner,omitempty"`
	Ticker string         `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Amount uint64         `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Reset()         { *a = Account{} }
func (a *Account) String() string { return proto.CompactTextString(a) }
func (*Account) ProtoMessage()    {}

// Validate requires an owner and a valid ticker. A zero balance is valid.
func (a *Account) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", a.Owner.Validate())
	if !coin.IsCC(a.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", a.Ticker))
	}
	return errs
}

// Coin returns the balance of the account.
func (a *Account) Coin() coin.Coin {
	return coin.NewCoin(a.Amount, a.Ticker)
}

// NewAccountBucket returns a bucket of accounts keyed by their address and
// indexed by owner.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket("account", &Account{},
		orm.WithIndex("owner", accountOwner, false))
}

func accountOwner(m orm.Model) ([][]byte, error) {
	a, ok := m.(*Account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return [][]byte{a.Owner}, nil
}

// AccountAddress returns the address of the account that given owner holds
// tokens of given mint in.
func AccountAddress(owner barter.Address, ticker string) barter.Address {
	return barter.DeriveCondition("token", "account", owner, []byte(ticker)).Address()
}
