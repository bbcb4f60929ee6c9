package offer

import "github.com/iov-one/barter/errors"

// ABCI Response Codes
// offer reserves 1010 ~ 1019.
var (
	ErrInsufficientBalance     = errors.Register(1010, "Token account does not have enough token balance to send")
	ErrZeroSendAmount          = errors.Register(1011, "Send amount for party one can not be zero")
	ErrZeroAskAmount           = errors.Register(1012, "Send amount for party two can not be zero")
	ErrInvalidPartyTwo         = errors.Register(1013, "Both parties must be different")
	ErrInvalidMintAccount      = errors.Register(1014, "Mint account passed for either (or both) of the tokens is incorrect")
	ErrIncorrectReceiveAccount = errors.Register(1015, "Receive account for party one is incorrect")
)
