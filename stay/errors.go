package stay

import (
	"errors"
	"fmt"
)

// ErrConflict marks a range that is already taken by an active booking or a
// blocked date. It is recoverable: the client should re-fetch availability.
var ErrConflict = errors.New("booking conflict: dates are not available")

// InputError collects field-level validation messages. Violations are
// reported, never silently clamped.
type InputError struct {
	fields map[string][]string
}

func newInputError() *InputError {
	return &InputError{fields: make(map[string][]string)}
}

func IsInputError(err error) *InputError {
	if err == nil {
		return nil
	}

	var inputError *InputError
	if errors.As(err, &inputError) {
		return inputError
	}

	return nil
}

func (ie *InputError) addError(field, msg string) {
	ie.fields[field] = append(ie.fields[field], msg)
}

func (ie *InputError) fieldsCount() int {
	return len(ie.fields)
}

func (ie *InputError) Error() string {
	return fmt.Sprintf("%+v", ie.fields)
}

func (ie *InputError) Fields() map[string][]string {
	return ie.fields
}

// Has reports whether the error carries a message for the given field.
func (ie *InputError) Has(field string) bool {
	_, ok := ie.fields[field]
	return ok
}
