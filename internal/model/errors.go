package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("user not found")
	ErrUnsupportedCurrency = errors.New("currency not supported on chain")
	ErrNoVerifiedAddress   = errors.New("recipient has no verified address")
	ErrSessionCreation     = errors.New("missing sponsored transaction")
	ErrSessionNotFound     = errors.New("session not found")
	ErrMissingHash         = errors.New("missing transaction hash")
	ErrUpdateFailed        = errors.New("failed to update payment transaction")
	ErrSessionLookup       = errors.New("session lookup failed")
	ErrInvalidMessage      = errors.New("invalid frame message")
)

// ParseError reports payment text that does not match the instruction grammar
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid format: %q", e.Input)
}

// ValidationError reports a registry rejection other than an unsupported pair.
// Message is safe to show to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
