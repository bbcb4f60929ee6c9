package sigs

import "github.com/iov-one/barter/errors"

var (
	// ErrInvalidSequence is returned when a signature carries a sequence
	// number different from the next one expected for its signer.
	ErrInvalidSequence = errors.Register(120, "invalid sequence number")
)
