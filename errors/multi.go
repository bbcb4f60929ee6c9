package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If an error is a multi error, its elements are flattened into the result.
// The result is nil if no non-nil error was given, the error itself if
// exactly one error remains, or a multi error otherwise.
func Append(errs ...error) error {
	var all []error
	for _, err := range errs {
		if errIsNil(err) {
			continue
		}
		if u, ok := err.(unpacker); ok {
			all = append(all, u.Unpack()...)
		} else {
			all = append(all, err)
		}
	}

	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	default:
		return multiErr(all)
	}
}

type unpacker interface {
	Unpack() []error
}

// multiErr is a list of errors. The first error determines the ABCI code.
type multiErr []error

func (errs multiErr) Error() string {
	points := make([]string, len(errs))
	for i, err := range errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n",
		len(errs), strings.Join(points, "\n\t"))
}

func (errs multiErr) Unpack() []error {
	return errs
}

// ABCICode returns the code of the first error, so that the multi error
// follows the fail fast semantics.
func (errs multiErr) ABCICode() uint32 {
	return abciCode(errs[0])
}
