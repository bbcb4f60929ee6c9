package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
)

const (
	pathOpenAccountMsg = "token/open_account"
	pathTransferMsg    = "token/transfer"
)

// OpenAccountMsg creates the account of the owner for a mint, unless it
// already exists.
type OpenAccountMsg struct {
	Owner  barter.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/barter.Address" json:"owner,omitempty"`
	Ticker string         `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
}

var _ barter.Msg = (*OpenAccountMsg)(nil)

func (m *OpenAccountMsg) Reset()         { *m = OpenAccountMsg{} }
func (m *OpenAccountMsg) String() string { return proto.CompactTextString(m) }
func (*OpenAccountMsg) ProtoMessage()    {}

func (OpenAccountMsg) Path() string {
	return pathOpenAccountMsg
}

func (m *OpenAccountMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	if !coin.IsCC(m.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", m.Ticker))
	}
	return errs
}

// TransferMsg moves tokens between two accounts of the same mint. It must
// be signed by the owner of the source account.
type TransferMsg struct {
	Source      barter.Address `protobuf:"bytes,1,opt,name=source,proto3,casttype=github.com/iov-one/barter.Address" json:"source,omitempty"`
	Destination barter.Address `protobuf:"bytes,2,opt,name=destination,proto3,casttype=github.com/iov-one/barter.Address" json:"destination,omitempty"`
	Amount      uint64         `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

var _ barter.Msg = (*TransferMsg)(nil)

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}
