package synth

import (
	"errors"
	"fmt"

	"github.com/scl-tools/iedit-go/pkg/naming"
)

var (
	// ErrInvalidName matches every *ValidationError.
	ErrInvalidName = errors.New("invalid name")

	// ErrServerAtTarget is returned when a ServerAt reference names an
	// access point that does not exist or owns no Server.
	ErrServerAtTarget = errors.New("server-at target is not an access point with a server")

	// ErrWrongParent is returned when the parent handle is not of the element
	// type the operation builds under.
	ErrWrongParent = errors.New("wrong parent element")

	// ErrUnknownType is returned when an explicitly requested type does not
	// resolve in the catalogue.
	ErrUnknownType = errors.New("unknown type")

	// ErrIDExhausted is returned when no free id could be minted.
	ErrIDExhausted = errors.New("could not mint a unique id")

	ErrTemplate = errors.New("invalid type template")
)

// ValidationError reports a user-entered identifier that failed its rule.
type ValidationError struct {
	Field  string
	Value  string
	Result naming.Result
	Rule   naming.Rule
}

func (e *ValidationError) Error() string {
	msg := e.Result.Message(e.Rule)
	if msg == "" {
		msg = "name is required"
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, msg)
}

// Is makes errors.Is(err, ErrInvalidName) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidName
}

func validate(field, value string, rule naming.Rule, siblings []string) error {
	if r := naming.Validate(value, rule, siblings); !r.Valid() {
		return &ValidationError{Field: field, Value: value, Result: r, Rule: rule}
	}
	return nil
}
