package validation

import (
	"errors"
	"fmt"

	"github.com/iudanet/noteful/pkg/api"
)

// ErrInvalidInput matches every *Error via errors.Is
var ErrInvalidInput = errors.New("invalid input")

// Kind определяет вид ошибки валидации
type Kind string

const (
	// KindMissingField - обязательное поле отсутствует в запросе
	KindMissingField Kind = "MissingField"
	// KindInvalidType - поле присутствует, но не является строкой
	KindInvalidType Kind = "InvalidType"
	// KindTooLong - строка длиннее, чем допускает обработка поля
	KindTooLong Kind = "TooLong"
)

// Error describes the first field that failed validation
type Error struct {
	Kind     Kind
	Location string
}

// Error implements error
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Message(), e.Location)
}

// Message returns the client-facing description of the failure
func (e *Error) Message() string {
	switch e.Kind {
	case KindMissingField:
		return "Missing Field"
	case KindInvalidType:
		return "Incorrect field type: expected string"
	case KindTooLong:
		return "Field too long"
	default:
		return "Invalid Field"
	}
}

// Is makes errors.Is(err, ErrInvalidInput) true for any validation error
func (e *Error) Is(target error) bool {
	return target == ErrInvalidInput
}

// Named связывает поле запроса с его именем в JSON
type Named struct {
	Name  string
	Field api.Field
}

// Require checks presence in the given order and reports the first missing field
func Require(fields ...Named) error {
	for _, f := range fields {
		if !f.Field.Present {
			return &Error{Kind: KindMissingField, Location: f.Name}
		}
	}
	return nil
}

// Strings checks, in the given order, that every present field holds a string
func Strings(fields ...Named) error {
	for _, f := range fields {
		if f.Field.Present && !f.Field.IsString {
			return &Error{Kind: KindInvalidType, Location: f.Name}
		}
	}
	return nil
}

// RequireStrings checks that every field is present and is a string,
// reporting the first offending field
func RequireStrings(fields ...Named) error {
	for _, f := range fields {
		if !f.Field.Present {
			return &Error{Kind: KindMissingField, Location: f.Name}
		}
		if !f.Field.IsString {
			return &Error{Kind: KindInvalidType, Location: f.Name}
		}
	}
	return nil
}
