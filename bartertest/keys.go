package bartertest

import (
	"crypto/sha512"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/crypto"
)

// NewKey returns a random private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivateKey()
}

// NewCondition returns the signature condition of a random key.
func NewCondition() barter.Condition {
	return NewKey().PublicKey().Condition()
}

// NewKeyFromPath returns the key derived from a master seed made of given
// phrase. The same phrase and account number always give the same key.
func NewKeyFromPath(t testing.TB, phrase string, account uint32) *crypto.PrivateKey {
	t.Helper()

	seed := sha512.Sum512([]byte(phrase))
	key, err := crypto.DeriveKey(seed[:], crypto.DerivationPath(account))
	if err != nil {
		t.Fatalf("cannot derive key %d: %s", account, err)
	}
	return key
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation.
func ParseAddress(t testing.TB, encodedAddress string) barter.Address {
	t.Helper()

	addr, err := barter.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
