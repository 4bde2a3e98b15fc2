package prompt

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the failure class of a resolution call. Callers are
// expected to branch on the kind rather than parse message text.
type ErrorKind string

const (
	KindNotFound            ErrorKind = "not_found"
	KindMissingRequiredVars ErrorKind = "missing_required_variables"
	KindInvalidVariableType ErrorKind = "invalid_variable_type"
	KindAccessDenied        ErrorKind = "access_denied"
)

// Error is a structured resolution error: kind + message + optional detail
// payload (suggested names, missing variable names, validation messages).
type Error struct {
	Kind    ErrorKind
	Message string
	Detail  map[string]any
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds a structured error of the given kind.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message, Detail: map[string]any{}}
}

// WithDetail attaches a detail entry and returns the error for chaining.
func (e *Error) WithDetail(key string, value any) *Error {
	e.Detail[key] = value
	return e
}

// KindOf extracts the ErrorKind from err, or "" if err is not a structured
// resolution error.
func KindOf(err error) ErrorKind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// IsKind reports whether err is a structured resolution error of the kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

func notFoundError(name string, suggestions []string) *Error {
	e := NewError(KindNotFound, fmt.Sprintf("no document found for %q", name))
	if len(suggestions) > 0 {
		e.WithDetail("suggestions", suggestions)
	}
	return e
}
