package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy shared by use cases and the HTTP layer.
var (
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("dates unavailable")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrPayloadTooLarge = errors.New("calendar document too large")
	ErrTransient       = errors.New("storage temporarily unavailable")
)

// ConflictError lists the dates that made a write impossible.
type ConflictError struct {
	Dates []string
}

func NewConflictError[T fmt.Stringer](dates []T) *ConflictError {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return &ConflictError{Dates: out}
}

func (e *ConflictError) Error() string {
	return "dates unavailable: " + strings.Join(e.Dates, ", ")
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Validation marks err as a caller mistake.
func Validation(err error) error {
	return Mark(err, ErrValidation)
}

func Validationf(format string, args ...any) error {
	return Mark(fmt.Errorf(format, args...), ErrValidation)
}
