/*
Package x contains the helpers shared by all extensions. Extensions live in
its sub packages.
*/
package x

import (
	"github.com/iov-one/barter"
)

// Authenticator tells a handler which conditions signed the transaction.
// Handlers receive it in their constructor so the signature scheme can be
// replaced without touching them. x/sigs provides the implementation used
// by the chain.
type Authenticator interface {
	// GetConditions returns all conditions fulfilled by the transaction.
	GetConditions(barter.Context) []barter.Condition
	// HasAddress reports whether a fulfilled condition has this address.
	HasAddress(barter.Context, barter.Address) bool
}

// MultiAuth accepts what any of its authenticators accepts.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth combines authenticators into one.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls: impls}
}

// GetConditions returns the conditions of all authenticators, in order and
// without duplicates.
func (m MultiAuth) GetConditions(ctx barter.Context) []barter.Condition {
	var res []barter.Condition
	seen := make(map[string]bool)
	for _, impl := range m.impls {
		for _, c := range impl.GetConditions(ctx) {
			if key := string(c); !seen[key] {
				seen[key] = true
				res = append(res, c)
			}
		}
	}
	return res
}

func (m MultiAuth) HasAddress(ctx barter.Context, addr barter.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}
