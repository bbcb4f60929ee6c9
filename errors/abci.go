package errors

import (
	"fmt"
	"reflect"
)

// SuccessABCICode is the code of a successful ABCI response.
const SuccessABCICode = 0

// Errors that do not carry a registered code are reported to clients with
// this code and log, as their message may leak implementation details.
const (
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and the log of the ABCI response for err.
//
// Errors without a registered code share the internal code 1. Outside of
// debug mode their message is replaced by "internal error", and so is the
// message of a recovered panic, which keeps its ErrPanic code. In debug
// mode the log carries the full message with the stack trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode || ErrPanic.Is(err):
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

// coder is implemented by registered errors and by the multi error.
type coder interface {
	ABCICode() uint32
}

// abciCode unwraps err until an error carrying a code is found.
func abciCode(err error) uint32 {
	for !errIsNil(err) {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalABCICode
}

// errIsNil returns true if err is nil or a typed nil pointer.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}
