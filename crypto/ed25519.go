/*
Package crypto implements the ed25519 keys used to sign transactions, and
the conditions and addresses that identify the signers on chain.
*/
package crypto

import (
	"bytes"
	"fmt"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

const (
	// ExtensionName is the condition extension of all signature
	// conditions.
	ExtensionName = "sigs"

	// CoinType is the SLIP-44 coin type used by the default derivation
	// path.
	CoinType = 234
)

// PublicKey is an ed25519 public key.
type PublicKey []byte

// Verify verifies the signature was created with this message and public key
func (p PublicKey) Verify(message, sig []byte) bool {
	if len(p) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p), message, sig)
}

// Condition encodes the public key into a permission
func (p PublicKey) Condition() barter.Condition {
	return barter.NewCondition(ExtensionName, "ed25519", p)
}

// Address is the address of the public key condition.
func (p PublicKey) Address() barter.Address {
	return p.Condition().Address()
}

// Equals returns true if both keys are the same.
func (p PublicKey) Equals(o PublicKey) bool {
	return bytes.Equal(p, o)
}

// Validate ensures the key has the right size.
func (p PublicKey) Validate() error {
	if len(p) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key size %d", len(p))
	}
	return nil
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	key ed25519.PrivateKey
}

// GenPrivateKey returns a random new private key
func GenPrivateKey() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{key: priv}
}

// PrivateKeyFromSeed will deterministically generate a private key from
// a given 32 byte seed. Use if you have a strong source of external
// randomness, or for deterministic keys in test cases.
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "seed size %d", len(seed))
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// DerivationPath returns the hardened SLIP-10 path of the n-th account.
func DerivationPath(n uint32) string {
	return fmt.Sprintf("m/44'/%d'/%d'", CoinType, n)
}

// DeriveKey deterministically derives a private key from a master seed
// using the SLIP-10 ed25519 scheme and given path.
func DeriveKey(masterSeed []byte, path string) (*PrivateKey, error) {
	k, err := derivation.DeriveForPath(path, masterSeed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive %q: %s", path, err)
	}
	return PrivateKeyFromSeed(k.Key)
}

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(p.key, message)
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() PublicKey {
	return PublicKey(p.key.Public().(ed25519.PublicKey))
}

// Seed returns the 32 byte seed the key was created from.
func (p *PrivateKey) Seed() []byte {
	return p.key.Seed()
}
