package sigs

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/bartertest"
)

// signedTx is a transaction with a constant payload used to test signing.
type signedTx struct {
	bartertest.Tx
	payload []byte
	sigs    []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)
var _ barter.Tx = (*signedTx)(nil)

func (s *signedTx) GetSignBytes() ([]byte, error) {
	return s.payload, nil
}

func (s *signedTx) GetSignatures() []*StdSignature {
	return s.sigs
}
