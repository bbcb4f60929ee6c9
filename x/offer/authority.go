package offer

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/x/token"
)

// AuthorityBump is the discriminant mixed into the authority derivation.
const AuthorityBump byte = 255

// Authority returns the condition that owns all custodial accounts.
func Authority() barter.Condition {
	return barter.DeriveCondition("offer", "authority", []byte{AuthorityBump})
}

// CustodialAccount returns the address of the account that holds the
// deposits of given mint.
func CustodialAccount(ticker string) barter.Address {
	return token.AccountAddress(Authority().Address(), ticker)
}

// OfferAddress returns the address the offer between two parties is stored
// under.
func OfferAddress(partyOne, partyTwo barter.Address) barter.Address {
	return barter.DeriveCondition("offer", "escrow", partyOne, partyTwo).Address()
}
