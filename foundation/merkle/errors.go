package merkle

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a leaf index does not exist in the tree.
var ErrIndexOutOfRange = errors.New("leaf index out of range")

// InvalidInputError is returned when a tree is asked to be built from input
// that has no defined root. This is a programming error on the caller side.
type InvalidInputError struct {
	Reason string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// IsInvalidInput checks if an error of type InvalidInputError exists.
func IsInvalidInput(err error) bool {
	var iie *InvalidInputError
	return errors.As(err, &iie)
}
