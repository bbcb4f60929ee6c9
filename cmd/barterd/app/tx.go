package app

import (
	"encoding/json"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x/offer"
	"github.com/iov-one/barter/x/sigs"
	"github.com/iov-one/barter/x/token"
)

// Tx is the transaction envelope of the chain. It carries exactly one
// message and the signatures authorizing it.
type Tx struct {
	Signatures []*sigs.StdSignature
	Msg        barter.Msg
}

// make sure tx fulfills all interfaces
var _ barter.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)
var _ proto.Message = (*Tx)(nil)

func (tx *Tx) Reset()     { *tx = Tx{} }
func (*Tx) ProtoMessage() {}

func (tx *Tx) String() string {
	w := txWire{Signatures: tx.Signatures}
	if tx.Msg != nil {
		if err := w.setMsg(tx.Msg); err != nil {
			return err.Error()
		}
	}
	return proto.CompactTextString(&w)
}

// txWire is the protobuf form of a Tx. Every supported message has its own
// field and at most one of them may be set.
type txWire struct {
	Signatures     []*sigs.StdSignature  `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	OpenAccountMsg *token.OpenAccountMsg `protobuf:"bytes,20,opt,name=open_account_msg,proto3" json:"open_account_msg,omitempty"`
	TransferMsg    *token.TransferMsg    `protobuf:"bytes,21,opt,name=transfer_msg,proto3" json:"transfer_msg,omitempty"`
	CreateOfferMsg *offer.CreateOfferMsg `protobuf:"bytes,30,opt,name=create_offer_msg,proto3" json:"create_offer_msg,omitempty"`
	CloseOfferMsg  *offer.CloseOfferMsg  `protobuf:"bytes,31,opt,name=close_offer_msg,proto3" json:"close_offer_msg,omitempty"`
	AcceptOfferMsg *offer.AcceptOfferMsg `protobuf:"bytes,32,opt,name=accept_offer_msg,proto3" json:"accept_offer_msg,omitempty"`
}

func (w *txWire) Reset()         { *w = txWire{} }
func (w *txWire) String() string { return proto.CompactTextString(w) }
func (*txWire) ProtoMessage()    {}

func (w *txWire) setMsg(msg barter.Msg) error {
	switch m := msg.(type) {
	case *token.OpenAccountMsg:
		w.OpenAccountMsg = m
	case *token.TransferMsg:
		w.TransferMsg = m
	case *offer.CreateOfferMsg:
		w.CreateOfferMsg = m
	case *offer.CloseOfferMsg:
		w.CloseOfferMsg = m
	case *offer.AcceptOfferMsg:
		w.AcceptOfferMsg = m
	default:
		return errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return nil
}

func (w *txWire) msg() (barter.Msg, error) {
	var found []barter.Msg
	if w.OpenAccountMsg != nil {
		found = append(found, w.OpenAccountMsg)
	}
	if w.TransferMsg != nil {
		found = append(found, w.TransferMsg)
	}
	if w.CreateOfferMsg != nil {
		found = append(found, w.CreateOfferMsg)
	}
	if w.CloseOfferMsg != nil {
		found = append(found, w.CloseOfferMsg)
	}
	if w.AcceptOfferMsg != nil {
		found = append(found, w.AcceptOfferMsg)
	}
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "%d messages in one transaction", len(found))
	}
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (barter.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the single message carried by the transaction.
func (tx *Tx) GetMsg() (barter.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrState, "transaction without a message")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures attached to the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign, that is the transaction without
// its signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	w := txWire{Signatures: tx.Signatures}
	if tx.Msg != nil {
		if err := w.setMsg(tx.Msg); err != nil {
			return nil, err
		}
	}
	return proto.Marshal(&w)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	var w txWire
	if err := proto.Unmarshal(raw, &w); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	msg, err := w.msg()
	if err != nil {
		return err
	}
	*tx = Tx{Signatures: w.Signatures, Msg: msg}
	return nil
}

// MarshalJSON includes the message path so that the message type can be
// told apart.
func (tx *Tx) MarshalJSON() ([]byte, error) {
	type msgJSON struct {
		Path  string     `json:"path"`
		Value barter.Msg `json:"value"`
	}
	out := struct {
		Signatures []*sigs.StdSignature `json:"signatures,omitempty"`
		Msg        *msgJSON             `json:"msg,omitempty"`
	}{Signatures: tx.Signatures}
	if tx.Msg != nil {
		out.Msg = &msgJSON{Path: tx.Msg.Path(), Value: tx.Msg}
	}
	return json.Marshal(out)
}
