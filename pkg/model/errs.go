package model // import "github.com/openscholar/contribution-processor/pkg/model"

import (
	"fmt"
)

// ValidationError indicates malformed input to a processor operation, ex.
// an empty required field, out-of-range rating, or non-positive amount
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error string for the ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %v: %v", e.Field, e.Message)
}

// NotFoundError indicates a lookup for an entity that does not exist
type NotFoundError struct {
	Entity string
	ID     string
}

// Error returns the error string for the NotFoundError
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v not found: %v", e.Entity, e.ID)
}

// DuplicateReviewError indicates a reviewer attempting a second review of
// the same contribution
type DuplicateReviewError struct {
	ContributionID string
	ReviewerID     string
}

// Error returns the error string for the DuplicateReviewError
func (e *DuplicateReviewError) Error() string {
	return fmt.Sprintf("reviewer %v has already reviewed contribution %v",
		e.ReviewerID, e.ContributionID)
}

// SelfTransferError indicates a token transfer where sender and recipient
// are the same identity
type SelfTransferError struct {
	IdentityID string
}

// Error returns the error string for the SelfTransferError
func (e *SelfTransferError) Error() string {
	return fmt.Sprintf("identity %v cannot transfer tokens to itself", e.IdentityID)
}

// InsufficientBalanceError indicates a token transfer exceeding the sender's
// derived balance
type InsufficientBalanceError struct {
	IdentityID string
	Balance    int64
	Amount     int64
}

// Error returns the error string for the InsufficientBalanceError
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("identity %v has balance %v, cannot transfer %v",
		e.IdentityID, e.Balance, e.Amount)
}
