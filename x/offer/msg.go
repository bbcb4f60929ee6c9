package offer

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
)

const (
	pathCreateOfferMsg = "offer/create"
	pathCloseOfferMsg  = "offer/close"
	pathAcceptOfferMsg = "offer/accept"
)

// CreateOfferMsg deposits SendAmount of SendMint tokens and asks AskAmount
// of ReceiveMint tokens from party two in return.
type CreateOfferMsg struct {
	PartyOne barter.Address `protobuf:"bytes,1,opt,name=party_one,proto3,casttype=github.com/iov-one/barter.Address" json:"party_one,omitempty"`
	PartyTwo barter.Address `protobuf:"bytes,2,opt,name=party_two,proto3,casttype=github.com/iov-one/barter.Address" json:"party_two,omitempty"`
	// SendAccount is the token account of party one the deposit is taken
	// from.
	SendAccount barter.Address `protobuf:"bytes,3,opt,name=send_account,proto3,casttype=github.com/iov-one/barter.Address" json:"send_account,omitempty"`
	// ReceiveAccount is the token account of party one the asked tokens
	// are paid to.
	ReceiveAccount barter.Address `protobuf:"bytes,4,opt,name=receive_account,proto3,casttype=github.com/iov-one/barter.Address" json:"receive_account,omitempty"`
	SendMint       string         `protobuf:"bytes,5,opt,name=send_mint,proto3" json:"send_mint,omitempty"`
	ReceiveMint    string         `protobuf:"bytes,6,opt,name=receive_mint,proto3" json:"receive_mint,omitempty"`
	SendAmount     uint64         `protobuf:"varint,7,opt,name=send_amount,proto3" json:"send_amount,omitempty"`
	AskAmount      uint64         `protobuf:"varint,8,opt,name=ask_amount,proto3" json:"ask_amount,omitempty"`
}

var _ barter.Msg = (*CreateOfferMsg)(nil)

func (m *CreateOfferMsg) Reset()         { *m = CreateOfferMsg{} }
func (m *CreateOfferMsg) String() string { return proto.CompactTextString(m) }
func (*CreateOfferMsg) ProtoMessage()    {}

func (CreateOfferMsg) Path() string {
	return pathCreateOfferMsg
}

// Validate checks the amounts and the parties first, in this order, and
// reports the first failure only. Malformed fields are reported after.
func (m *CreateOfferMsg) Validate() error {
	switch {
	case m.SendAmount == 0:
		return ErrZeroSendAmount
	case m.AskAmount == 0:
		return ErrZeroAskAmount
	case len(m.PartyOne) != 0 && m.PartyOne.Equals(m.PartyTwo):
		return ErrInvalidPartyTwo
	}

	var errs error
	errs = errors.AppendField(errs, "PartyOne", m.PartyOne.Validate())
	errs = errors.AppendField(errs, "PartyTwo", m.PartyTwo.Validate())
	errs = errors.AppendField(errs, "SendAccount", m.SendAccount.Validate())
	errs = errors.AppendField(errs, "ReceiveAccount", m.ReceiveAccount.Validate())
	errs = errors.AppendField(errs, "SendMint", validateTicker(m.SendMint))
	errs = errors.AppendField(errs, "ReceiveMint", validateTicker(m.ReceiveMint))
	return errs
}

// CloseOfferMsg cancels an open offer and returns the deposit to
// ReceiveAccount. Only party one can close an offer.
type CloseOfferMsg struct {
	PartyOne       barter.Address `protobuf:"bytes,1,opt,name=party_one,proto3,casttype=github.com/iov-one/barter.Address" json:"party_one,omitempty"`
	PartyTwo       barter.Address `protobuf:"bytes,2,opt,name=party_two,proto3,casttype=github.com/iov-one/barter.Address" json:"party_two,omitempty"`
	ReceiveAccount barter.Address `protobuf:"bytes,3,opt,name=receive_account,proto3,casttype=github.com/iov-one/barter.Address" json:"receive_account,omitempty"`
}

var _ barter.Msg = (*CloseOfferMsg)(nil)

func (m *CloseOfferMsg) Reset()         { *m = CloseOfferMsg{} }
func (m *CloseOfferMsg) String() string { return proto.CompactTextString(m) }
func (*CloseOfferMsg) ProtoMessage()    {}

func (CloseOfferMsg) Path() string {
	return pathCloseOfferMsg
}

func (m *CloseOfferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "PartyOne", m.PartyOne.Validate())
	errs = errors.AppendField(errs, "PartyTwo", m.PartyTwo.Validate())
	errs = errors.AppendField(errs, "ReceiveAccount", m.ReceiveAccount.Validate())
	return errs
}

// AcceptOfferMsg fulfils an open offer. It must be signed by party two.
// The mints and the receive account of party one must match the offer
// terms exactly.
type AcceptOfferMsg struct {
	PartyOne        barter.Address `protobuf:"bytes,1,opt,name=party_one,proto3,casttype=github.com/iov-one/barter.Address" json:"party_one,omitempty"`
	PartyTwo        barter.Address `protobuf:"bytes,2,opt,name=party_two,proto3,casttype=github.com/iov-one/barter.Address" json:"party_two,omitempty"`
	PartyOneReceive barter.Address `protobuf:"bytes,3,opt,name=party_one_receive,proto3,casttype=github.com/iov-one/barter.Address" json:"party_one_receive,omitempty"`
	PartyTwoSend    barter.Address `protobuf:"bytes,4,opt,name=party_two_send,proto3,casttype=github.com/iov-one/barter.Address" json:"party_two_send,omitempty"`
	PartyTwoReceive barter.Address `protobuf:"bytes,5,opt,name=party_two_receive,proto3,casttype=github.com/iov-one/barter.Address" json:"party_two_receive,omitempty"`
	OfferMint       string         `protobuf:"bytes,6,opt,name=offer_mint,proto3" json:"offer_mint,omitempty"`
	AskMint         string         `protobuf:"bytes,7,opt,name=ask_mint,proto3" json:"ask_mint,omitempty"`
}

var _ barter.Msg = (*AcceptOfferMsg)(nil)

func (m *AcceptOfferMsg) Reset()         { *m = AcceptOfferMsg{} }
func (m *AcceptOfferMsg) String() string { return proto.CompactTextString(m) }
func (*AcceptOfferMsg) ProtoMessage()    {}

func (AcceptOfferMsg) Path() string {
	return pathAcceptOfferMsg
}

func (m *AcceptOfferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "PartyOne", m.PartyOne.Validate())
	errs = errors.AppendField(errs, "PartyTwo", m.PartyTwo.Validate())
	errs = errors.AppendField(errs, "PartyOneReceive", m.PartyOneReceive.Validate())
	errs = errors.AppendField(errs, "PartyTwoSend", m.PartyTwoSend.Validate())
	errs = errors.AppendField(errs, "PartyTwoReceive", m.PartyTwoReceive.Validate())
	errs = errors.AppendField(errs, "OfferMint", validateTicker(m.OfferMint))
	errs = errors.AppendField(errs, "AskMint", validateTicker(m.AskMint))
	return errs
}

func validateTicker(ticker string) error {
	if !coin.IsCC(ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", ticker)
	}
	return nil
}
