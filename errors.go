package mongosettings

import (
	"errors"
	"fmt"
)

var (
	ErrMissingConnector   = errors.New("mongosettings: settings type does not provide a MongoConnector")
	ErrStoreUnavailable   = errors.New("mongosettings: remote store unavailable")
	ErrTypeMismatch       = errors.New("mongosettings: type mismatch")
	ErrInvalidKind        = errors.New("mongosettings: invalid field kind")
	ErrUnknownField       = errors.New("mongosettings: unknown field")
	ErrNotBound           = errors.New("mongosettings: remote field is not bound to initialized settings")
	ErrAlreadyInitialized = errors.New("mongosettings: settings already initialized")
	ErrDuplicateField     = errors.New("mongosettings: duplicate remote field name")
)

// MismatchError reports a stored value that cannot be coerced to the declared kind.
// Field is empty when the error comes from Coerce directly.
type MismatchError struct {
	Field string
	Kind  Kind
	Value any
}

func (e *MismatchError) Error() string {
	msg := fmt.Sprintf("expected a valid %s, could not parse %v as %s", e.Kind, e.Value, e.Kind)
	if e.Field == "" {
		return msg
	}
	return fmt.Sprintf("field %q: %s", e.Field, msg)
}

func (e *MismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// UnavailableError wraps an infrastructural failure of the remote store.
type UnavailableError struct {
	Field string
	Err   error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("fetch %q: remote store unavailable: %v", e.Field, e.Err)
}

func (e *UnavailableError) Unwrap() []error {
	errs := make([]error, 0, 2)
	errs = append(errs, ErrStoreUnavailable)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
