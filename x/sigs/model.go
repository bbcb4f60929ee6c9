package sigs

import (
	"math"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/crypto"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

// UserData holds the public key and the next expected sequence of a signer.
type UserData struct {
	Pubkey   crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64            `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Reset()         { *u = UserData{} }
func (u *UserData) String() string { return proto.CompactTextString(u) }
func (*UserData) ProtoMessage()    {}

// Validate requires a valid public key and a non negative sequence.
func (u *UserData) Validate() error {
	if err := u.Pubkey.Validate(); err != nil {
		return errors.Field("Pubkey", err, "invalid public key")
	}
	if u.Sequence < 0 {
		return errors.Field("Sequence", ErrInvalidSequence, "negative")
	}
	return nil
}

// CheckAndIncrementSequence makes sure the sequence is what we expect,
// and increments it by one on success.
func (u *UserData) CheckAndIncrementSequence(seq int64) error {
	if u.Sequence == math.MaxInt64 {
		return errors.Wrap(errors.ErrOverflow, "sequence")
	}
	if u.Sequence != seq {
		return errors.Wrapf(ErrInvalidSequence, "mismatch %d != %d", seq, u.Sequence)
	}
	u.Sequence++
	return nil
}

// NewBucket returns the bucket of all signers, keyed by their address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("sigs", &UserData{})
}

// userFor loads the signer data or starts a new record with sequence zero.
func userFor(db barter.ReadOnlyKVStore, pubkey crypto.PublicKey) (*UserData, error) {
	var user UserData
	switch err := NewBucket().One(db, pubkey.Address(), &user); {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: pubkey}, nil
	default:
		return nil, err
	}
}
