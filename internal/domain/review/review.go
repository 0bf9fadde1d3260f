package review

import (
	"time"

	"github.com/google/uuid"

	"github.com/petstay/service-booking/internal/domain"
)

const (
	// MinRating and MaxRating bound the allowed star rating, inclusive.
	MinRating = 1
	MaxRating = 5
)

// Review is a rating left by one participant of a completed booking about the
// other. At most one review exists per (booking, reviewer) pair; the
// application-level eligibility gate enforces this, not storage.
type Review struct {
	id                  uuid.UUID
	bookingID           uuid.UUID
	reviewerID          uuid.UUID
	revieweeID          uuid.UUID
	rating              int
	reviewText          string
	petBehaviorNotes    string
	hostExperienceNotes string
	createdAt           time.Time
}

// NewReview creates a validated review.
func NewReview(
	bookingID, reviewerID, revieweeID uuid.UUID,
	rating int,
	reviewText, petBehaviorNotes, hostExperienceNotes string,
) (*Review, error) {
	if bookingID == uuid.Nil {
		return nil, domain.NewValidationError("booking ID is required")
	}
	if reviewerID == uuid.Nil || revieweeID == uuid.Nil {
		return nil, domain.NewValidationError("reviewer and reviewee IDs are required")
	}
	if reviewerID == revieweeID {
		return nil, domain.NewValidationError("reviewer and reviewee must be different users")
	}
	if rating < MinRating || rating > MaxRating {
		return nil, domain.NewInvalidRatingError(rating)
	}

	return &Review{
		id:                  uuid.New(),
		bookingID:           bookingID,
		reviewerID:          reviewerID,
		revieweeID:          revieweeID,
		rating:              rating,
		reviewText:          reviewText,
		petBehaviorNotes:    petBehaviorNotes,
		hostExperienceNotes: hostExperienceNotes,
		createdAt:           time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Review from persistence data (no validation).
func Reconstruct(
	id, bookingID, reviewerID, revieweeID uuid.UUID,
	rating int,
	reviewText, petBehaviorNotes, hostExperienceNotes string,
	createdAt time.Time,
) *Review {
	return &Review{
		id:                  id,
		bookingID:           bookingID,
		reviewerID:          reviewerID,
		revieweeID:          revieweeID,
		rating:              rating,
		reviewText:          reviewText,
		petBehaviorNotes:    petBehaviorNotes,
		hostExperienceNotes: hostExperienceNotes,
		createdAt:           createdAt,
	}
}

// --- Getters ---

func (r *Review) ID() uuid.UUID               { return r.id }
func (r *Review) BookingID() uuid.UUID        { return r.bookingID }
func (r *Review) ReviewerID() uuid.UUID       { return r.reviewerID }
func (r *Review) RevieweeID() uuid.UUID       { return r.revieweeID }
func (r *Review) Rating() int                 { return r.rating }
func (r *Review) ReviewText() string          { return r.reviewText }
func (r *Review) PetBehaviorNotes() string    { return r.petBehaviorNotes }
func (r *Review) HostExperienceNotes() string { return r.hostExperienceNotes }
func (r *Review) CreatedAt() time.Time        { return r.createdAt }

// RatingSummary is the on-read aggregate over all reviews of one user.
type RatingSummary struct {
	AverageRating float64     `json:"average_rating"`
	TotalReviews  int         `json:"total_reviews"`
	Breakdown     map[int]int `json:"breakdown"`
}

// Summarize computes the rating aggregate for a set of reviews.
func Summarize(reviews []*Review) RatingSummary {
	summary := RatingSummary{
		Breakdown: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(reviews) == 0 {
		return summary
	}

	total := 0
	for _, r := range reviews {
		total += r.rating
		summary.Breakdown[r.rating]++
	}
	summary.TotalReviews = len(reviews)
	summary.AverageRating = float64(total) / float64(len(reviews))
	return summary
}
