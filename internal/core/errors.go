package core

import (
	"errors"
	"fmt"
)

// Sentinel errors. Operations wrap these with detail; test with errors.Is.
var (
	ErrFileUnavailable    = errors.New("file unavailable")
	ErrMalformedRecord    = errors.New("malformed record")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidMenuChoice  = errors.New("invalid menu choice")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidProduct     = errors.New("invalid product")
	ErrNotAuthorized      = errors.New("not authorized")
)

// ParseError describes one catalog line that could not be parsed.
// The line is kept verbatim so it can be reported back to the user.
type ParseError struct {
	LineNumber int // 1-based; 0 when parsed outside a file
	Line       string
	Reason     string
}

func (e *ParseError) Error() string {
	if e.LineNumber > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.LineNumber, e.Reason, e.Line)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Line)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedRecord
}

// fileUnavailable wraps an I/O failure on path so it matches ErrFileUnavailable
// while keeping the underlying os error reachable.
func fileUnavailable(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrFileUnavailable, op, path, err)
}
