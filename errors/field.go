package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field binds err to the field of a model or a message. It returns nil if
// err is nil, so the result of a validation call can be passed directly.
//
// Use the Go name of the field, for example SendAmount, and dot notation
// for nested fields.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if errIsNil(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: fieldName, desc: description}
}

// AppendField adds the error of a field to errs. Nothing is added when
// fieldErr is nil.
//
//	errs = errors.AppendField(errs, "PartyOne", msg.PartyOne.Validate())
func AppendField(errs error, fieldName string, fieldErr error) error {
	return Append(errs, Field(fieldName, fieldErr, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.field, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
}

func (e *fieldError) Cause() error {
	return e.parent
}

func (e *fieldError) Field() string {
	return e.field
}

// FieldErrors returns every error bound to fieldName found in err. Multi
// errors are searched element by element, wrapped errors are unwrapped.
func FieldErrors(err error, fieldName string) []error {
	var found []error
	for !errIsNil(err) {
		if f, ok := err.(*fieldError); ok && f.field == fieldName {
			return append(found, err)
		}
		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				found = append(found, FieldErrors(e, fieldName)...)
			}
			return found
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return found
}
