package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petstay/service-booking/internal/domain"
	bookingDomain "github.com/petstay/service-booking/internal/domain/booking"
	reviewDomain "github.com/petstay/service-booking/internal/domain/review"
)

// SubmitReviewRequest holds the data needed to leave a review on a booking.
type SubmitReviewRequest struct {
	BookingID           uuid.UUID `json:"booking_id" binding:"required"`
	Rating              int       `json:"rating" binding:"required"`
	ReviewText          string    `json:"review_text"`
	PetBehaviorNotes    string    `json:"pet_behavior_notes"`
	HostExperienceNotes string    `json:"host_experience_notes"`
}

// ReviewDTO is the response representation of a review.
type ReviewDTO struct {
	ID                  uuid.UUID `json:"id"`
	BookingID           uuid.UUID `json:"booking_id"`
	ReviewerID          uuid.UUID `json:"reviewer_id"`
	RevieweeID          uuid.UUID `json:"reviewee_id"`
	Rating              int       `json:"rating"`
	ReviewText          string    `json:"review_text,omitempty"`
	PetBehaviorNotes    string    `json:"pet_behavior_notes,omitempty"`
	HostExperienceNotes string    `json:"host_experience_notes,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// ReviewEligibilityDTO is the answer to "can this user review this booking".
type ReviewEligibilityDTO struct {
	CanReview bool   `json:"can_review"`
	Reason    string `json:"reason,omitempty"`
}

// UserReviewsDTO bundles a user's received reviews with their rating aggregate.
type UserReviewsDTO struct {
	Reviews []ReviewDTO                `json:"reviews"`
	Summary reviewDomain.RatingSummary `json:"summary"`
}

// ReviewService enforces the review eligibility gate and computes the
// on-read rating aggregate.
type ReviewService struct {
	reviews  reviewDomain.Repository
	bookings bookingDomain.Repository
	logger   *zap.Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviews reviewDomain.Repository, bookings bookingDomain.Repository, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		bookings: bookings,
		logger:   logger,
	}
}

// SubmitReview leaves a review on a completed booking. The reviewer must be a
// participant, the booking must be completed, and the reviewer must not have
// reviewed this booking before. The reviewee is always the other participant.
func (s *ReviewService) SubmitReview(ctx context.Context, reviewerID uuid.UUID, req SubmitReviewRequest) (*ReviewDTO, error) {
	bk, err := s.bookings.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	revieweeID, err := bk.Counterparty(reviewerID)
	if err != nil {
		return nil, err
	}
	if bk.Status() != bookingDomain.StatusCompleted {
		return nil, domain.NewValidationError("booking must be completed before it can be reviewed")
	}

	existing, err := s.reviews.FindByBookingAndReviewer(ctx, req.BookingID, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if existing != nil {
		return nil, domain.NewDuplicateReviewError(req.BookingID.String())
	}

	rv, err := reviewDomain.NewReview(
		req.BookingID,
		reviewerID,
		revieweeID,
		req.Rating,
		req.ReviewText,
		req.PetBehaviorNotes,
		req.HostExperienceNotes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.reviews.Save(ctx, rv); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	result := toReviewDTO(rv)
	return &result, nil
}

// CanReview answers the eligibility question without side effects, so the
// client can decide whether to show the review form.
func (s *ReviewService) CanReview(ctx context.Context, bookingID, reviewerID uuid.UUID) (*ReviewEligibilityDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !bk.IsParticipant(reviewerID) {
		return &ReviewEligibilityDTO{CanReview: false, Reason: "not a participant of this booking"}, nil
	}
	if bk.Status() != bookingDomain.StatusCompleted {
		return &ReviewEligibilityDTO{CanReview: false, Reason: "booking is not completed"}, nil
	}

	existing, err := s.reviews.FindByBookingAndReviewer(ctx, bookingID, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if existing != nil {
		return &ReviewEligibilityDTO{CanReview: false, Reason: "booking already reviewed"}, nil
	}

	return &ReviewEligibilityDTO{CanReview: true}, nil
}

// GetUserReviews returns the reviews a user has received together with their
// rating aggregate. The aggregate is computed on read, never stored.
func (s *ReviewService) GetUserReviews(ctx context.Context, userID uuid.UUID) (*UserReviewsDTO, error) {
	reviews, err := s.reviews.FindByRevieweeID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	return &UserReviewsDTO{
		Reviews: toReviewDTOs(reviews),
		Summary: reviewDomain.Summarize(reviews),
	}, nil
}

// GetBookingReviews returns the reviews attached to a booking. Only
// participants may see them.
func (s *ReviewService) GetBookingReviews(ctx context.Context, bookingID, requesterID uuid.UUID) ([]ReviewDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.IsParticipant(requesterID) {
		return nil, domain.NewForbiddenError("booking does not belong to this user")
	}

	reviews, err := s.reviews.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	return toReviewDTOs(reviews), nil
}

func toReviewDTO(rv *reviewDomain.Review) ReviewDTO {
	return ReviewDTO{
		ID:                  rv.ID(),
		BookingID:           rv.BookingID(),
		ReviewerID:          rv.ReviewerID(),
		RevieweeID:          rv.RevieweeID(),
		Rating:              rv.Rating(),
		ReviewText:          rv.ReviewText(),
		PetBehaviorNotes:    rv.PetBehaviorNotes(),
		HostExperienceNotes: rv.HostExperienceNotes(),
		CreatedAt:           rv.CreatedAt(),
	}
}

func toReviewDTOs(reviews []*reviewDomain.Review) []ReviewDTO {
	dtos := make([]ReviewDTO, len(reviews))
	for i, rv := range reviews {
		dtos[i] = toReviewDTO(rv)
	}
	return dtos
}
