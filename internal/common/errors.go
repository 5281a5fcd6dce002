// Package common provides shared errors and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Parsing errors.
	ErrUnparsableRecord  = errors.New("unparsable record")
	ErrInvalidDateFormat = errors.New("invalid date format")

	// Reconciliation errors.
	ErrUnmatchedLotGroup = errors.New("unmatched lot group")

	// Deduplication errors.
	ErrFalseDuplicate = errors.New("false duplicate")

	// Document-level errors. These abort the whole parse.
	ErrAccountNumberNotFound = errors.New("account number not found")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
