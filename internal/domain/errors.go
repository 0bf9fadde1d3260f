package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a domain error for the transport layer.
type ErrorCode string

const (
	CodeValidation        ErrorCode = "VALIDATION_ERROR"
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeForbidden         ErrorCode = "FORBIDDEN"
	CodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	CodeInvalidRating     ErrorCode = "INVALID_RATING"
	CodeDuplicateReview   ErrorCode = "DUPLICATE_REVIEW"
	CodeConflict          ErrorCode = "CONFLICT"
)

// Error is a domain-level error carrying a stable code for clients.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError reports malformed or inconsistent input.
func NewValidationError(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(entity, id string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewForbiddenError reports an actor attempting an action it may not perform.
func NewForbiddenError(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

// NewInvalidTransitionError reports a lifecycle action not permitted from the
// booking's current status or confirmation state.
func NewInvalidTransitionError(from, action string) *Error {
	return &Error{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("action %s is not allowed from status %s", action, from),
	}
}

// NewInvalidRatingError reports a review rating outside the allowed range.
func NewInvalidRatingError(rating int) *Error {
	return &Error{Code: CodeInvalidRating, Message: fmt.Sprintf("rating must be between 1 and 5, got %d", rating)}
}

// NewDuplicateReviewError reports a second review for the same booking by the
// same reviewer.
func NewDuplicateReviewError(bookingID string) *Error {
	return &Error{Code: CodeDuplicateReview, Message: fmt.Sprintf("booking %s has already been reviewed by this user", bookingID)}
}

// NewConflictError reports a lost optimistic-locking race.
func NewConflictError(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// CodeOf returns the domain error code of err, or "" if err is not a domain error.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsNotFound reports whether err is a not-found domain error.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}
