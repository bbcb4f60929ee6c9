package offer

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

// Offer holds the terms of an open swap. It is created together with the
// deposit and removed when the offer is closed or accepted.
type Offer struct {
	PartyOne barter.Address `protobuf:"bytes,1,opt,name=party_one,proto3,casttype=github.com/iov-one/barter.Address" json:"party_one,omitempty"`
	PartyTwo barter.Address `protobuf:"bytes,2,opt,name=party_two,proto3,casttype=github.com/iov-one/barter.Address" json:"party_two,omitempty"`
	// ReceiveAccount is the token account of party one that the asked
	// tokens are paid to.
	ReceiveAccount barter.Address `protobuf:"bytes,3,opt,name=receive_account,proto3,casttype=github.com/iov-one/barter.Address" json:"receive_account,omitempty"`
	OfferToken     string         `protobuf:"bytes,4,opt,name=offer_token,proto3" json:"offer_token,omitempty"`
	OfferAmount    uint64         `protobuf:"varint,5,opt,name=offer_amount,proto3" json:"offer_amount,omitempty"`
	AskToken       string         `protobuf:"bytes,6,opt,name=ask_token,proto3" json:"ask_token,omitempty"`
	AskAmount      uint64         `protobuf:"varint,7,opt,name=ask_amount,proto3" json:"ask_amount,omitempty"`
}

var _ orm.Model = (*Offer)(nil)

func (o *Offer) Reset()         { *o = Offer{} }
func (o *Offer) String() string { return proto.CompactTextString(o) }
func (*Offer) ProtoMessage()    {}

func (o *Offer) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "PartyOne", o.PartyOne.Validate())
	errs = errors.AppendField(errs, "PartyTwo", o.PartyTwo.Validate())
	errs = errors.AppendField(errs, "ReceiveAccount", o.ReceiveAccount.Validate())
	if o.PartyOne.Equals(o.PartyTwo) {
		errs = errors.AppendField(errs, "PartyTwo", ErrInvalidPartyTwo)
	}
	if !coin.IsCC(o.OfferToken) {
		errs = errors.AppendField(errs, "OfferToken", errors.Wrapf(errors.ErrCurrency, "%q", o.OfferToken))
	}
	if !coin.IsCC(o.AskToken) {
		errs = errors.AppendField(errs, "AskToken", errors.Wrapf(errors.ErrCurrency, "%q", o.AskToken))
	}
	if o.OfferAmount == 0 {
		errs = errors.AppendField(errs, "OfferAmount", ErrZeroSendAmount)
	}
	if o.AskAmount == 0 {
		errs = errors.AppendField(errs, "AskAmount", ErrZeroAskAmount)
	}
	return errs
}

// Key returns the primary key of the offer.
func (o *Offer) Key() []byte {
	return OfferAddress(o.PartyOne, o.PartyTwo)
}

// NewBucket returns the bucket of all open offers, indexed by both
// parties.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("offer", &Offer{},
		orm.WithIndex("party_one", partyOneIndex, false),
		orm.WithIndex("party_two", partyTwoIndex, false),
	)
}

func partyOneIndex(m orm.Model) ([][]byte, error) {
	o, ok := m.(*Offer)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return [][]byte{o.PartyOne}, nil
}

func partyTwoIndex(m orm.Model) ([][]byte, error) {
	o, ok := m.(*Offer)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return [][]byte{o.PartyTwo}, nil
}
