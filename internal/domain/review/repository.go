package review

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for reviews.
type Repository interface {
	// FindByBookingAndReviewer returns the review a user left on a booking,
	// or nil if none exists.
	FindByBookingAndReviewer(ctx context.Context, bookingID, reviewerID uuid.UUID) (*Review, error)

	// FindByRevieweeID returns all reviews received by a user, newest first.
	FindByRevieweeID(ctx context.Context, revieweeID uuid.UUID) ([]*Review, error)

	// FindByBookingID returns all reviews attached to a booking.
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*Review, error)

	// Save persists a new review.
	Save(ctx context.Context, review *Review) error
}
