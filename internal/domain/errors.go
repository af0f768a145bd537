package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAuctionNotFound  = errors.New("auction not found")
	ErrBidNotFound      = errors.New("bid not found")
	ErrAuctionNotClosed = errors.New("auction is not yet closed")
	ErrNoBids           = errors.New("no bids were placed on this auction")

	// ErrTransient marks failures that leave no state behind and are safe to
	// retry: lock wait timeouts, deadlocks, dropped connections.
	ErrTransient = errors.New("transient storage error")
)

// ValidationError rejects a request before any storage access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
