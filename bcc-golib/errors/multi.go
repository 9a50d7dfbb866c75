package errors

import (
	"fmt"
	"strings"
)

// Errors is a non-empty list of errors collected over a pass, e.g.
// validating every record of an input instead of stopping at the
// first bad one. A nil Errors means no error occurred, so callers
// compare against nil exactly as with a plain error.
type Errors interface {
	error
	// Slice returns a copy of the underlying (non-nil) errors.
	Slice() []error
	// Len is always > 0; compare the Errors with nil to test for
	// absence.
	Len() int
}

type errorSlice []error

func (m errorSlice) Slice() []error {
	return append([]error(nil), m...)
}

func (m errorSlice) Len() int {
	return len(m)
}

func (m errorSlice) Error() string {
	var b strings.Builder
	for i, err := range m {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprint(&b, err)
	}
	return b.String()
}

// Append appends the given (possibly nil) error to the given (possibly
// nil) Errors. A nil error returns errs unchanged; an Errors value is
// flattened into the list.
func Append(errs Errors, err error) Errors {
	if err == nil {
		return errs
	}
	var list errorSlice
	if errs != nil {
		list = errorSlice(errs.(errorSlice))
	}
	if nested, ok := err.(Errors); ok {
		return errorSlice(append(list, nested.Slice()...))
	}
	return errorSlice(append(list, err))
}
