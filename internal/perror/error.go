// Package perror is this module's error currency: the two-variant
// ParseError spec.md §6/§7 specifies, standing in for the teacher's
// internal/report diagnostics bag scaled down to a parser with no
// error-recovery phase (spec.md Non-goals).
package perror

import "fmt"

// Kind distinguishes the two ParseError variants.
type Kind int

const (
	// InvalidToken means the cursor sat on a token the grammar did not
	// expect at that point; Location is its byte offset.
	InvalidToken Kind = iota
	// User wraps an error raised by semantic validation during parsing
	// (e.g. a malformed account address literal) rather than by the
	// grammar itself.
	User
)

// ParseError is the sum type every parsing operation in this module
// returns on failure.
type ParseError struct {
	kind     Kind
	location int
	err      error
}

// NewInvalidToken builds an InvalidToken ParseError at the given byte
// offset.
func NewInvalidToken(location int) *ParseError {
	return &ParseError{kind: InvalidToken, location: location}
}

// NewUser wraps err as a User ParseError.
func NewUser(err error) *ParseError {
	return &ParseError{kind: User, err: err}
}

// Userf is a convenience constructor combining fmt.Errorf and NewUser.
func Userf(format string, args ...interface{}) *ParseError {
	return NewUser(fmt.Errorf(format, args...))
}

func (e *ParseError) Kind() Kind { return e.kind }

// Location is only meaningful when Kind() == InvalidToken.
func (e *ParseError) Location() int { return e.location }

func (e *ParseError) Error() string {
	switch e.kind {
	case InvalidToken:
		return fmt.Sprintf("invalid token at byte %d", e.location)
	default:
		return e.err.Error()
	}
}

// Unwrap exposes the wrapped error for a User ParseError so callers can
// use errors.Is/errors.As against it.
func (e *ParseError) Unwrap() error {
	if e.kind == User {
		return e.err
	}
	return nil
}
