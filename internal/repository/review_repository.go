package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	reviewDomain "github.com/petstay/service-booking/internal/domain/review"
)

// ReviewModel is the GORM model for the reviews table.
type ReviewModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID           uuid.UUID `gorm:"type:uuid;index:idx_reviews_booking_reviewer,unique;not null"`
	ReviewerID          uuid.UUID `gorm:"type:uuid;index:idx_reviews_booking_reviewer,unique;not null"`
	RevieweeID          uuid.UUID `gorm:"type:uuid;index;not null"`
	Rating              int       `gorm:"not null"`
	ReviewText          string    `gorm:"size:2000"`
	PetBehaviorNotes    string    `gorm:"size:1000"`
	HostExperienceNotes string    `gorm:"size:1000"`
	CreatedAt           time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ReviewModel) TableName() string {
	return "reviews"
}

// GormReviewRepository is the GORM-based implementation of review.Repository.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository.
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByBookingAndReviewer returns the review a user left on a booking, or
// nil if none exists.
func (r *GormReviewRepository) FindByBookingAndReviewer(ctx context.Context, bookingID, reviewerID uuid.UUID) (*reviewDomain.Review, error) {
	var model ReviewModel
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND reviewer_id = ?", bookingID, reviewerID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return toDomainReview(&model), nil
}

// FindByRevieweeID returns all reviews received by a user, newest first.
func (r *GormReviewRepository) FindByRevieweeID(ctx context.Context, revieweeID uuid.UUID) ([]*reviewDomain.Review, error) {
	var models []ReviewModel
	if err := r.db.WithContext(ctx).
		Where("reviewee_id = ?", revieweeID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find reviews by reviewee: %w", err)
	}
	return toDomainReviews(models), nil
}

// FindByBookingID returns all reviews attached to a booking.
func (r *GormReviewRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*reviewDomain.Review, error) {
	var models []ReviewModel
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find reviews by booking: %w", err)
	}
	return toDomainReviews(models), nil
}

// Save persists a new review.
func (r *GormReviewRepository) Save(ctx context.Context, rv *reviewDomain.Review) error {
	model := &ReviewModel{
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
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save review: %w", err)
	}
	return nil
}

// --- Conversion Helpers ---

func toDomainReview(model *ReviewModel) *reviewDomain.Review {
	return reviewDomain.Reconstruct(
		model.ID,
		model.BookingID,
		model.ReviewerID,
		model.RevieweeID,
		model.Rating,
		model.ReviewText,
		model.PetBehaviorNotes,
		model.HostExperienceNotes,
		model.CreatedAt,
	)
}

func toDomainReviews(models []ReviewModel) []*reviewDomain.Review {
	reviews := make([]*reviewDomain.Review, len(models))
	for i, m := range models {
		reviews[i] = toDomainReview(&m)
	}
	return reviews
}
