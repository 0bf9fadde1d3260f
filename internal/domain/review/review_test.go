package review

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petstay/service-booking/internal/domain"
)

func TestNewReview(t *testing.T) {
	rv, err := NewReview(uuid.New(), uuid.New(), uuid.New(), 4, "great stay", "calm and friendly", "responsive host")
	require.NoError(t, err)

	assert.Equal(t, 4, rv.Rating())
	assert.Equal(t, "great stay", rv.ReviewText())
	assert.Equal(t, "calm and friendly", rv.PetBehaviorNotes())
	assert.Equal(t, "responsive host", rv.HostExperienceNotes())
}

func TestNewReview_RatingBounds(t *testing.T) {
	bookingID := uuid.New()
	reviewerID := uuid.New()
	revieweeID := uuid.New()

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := NewReview(bookingID, reviewerID, revieweeID, rating, "", "", "")
		require.Error(t, err, "rating %d", rating)
		assert.Equal(t, domain.CodeInvalidRating, domain.CodeOf(err))
	}

	for rating := MinRating; rating <= MaxRating; rating++ {
		_, err := NewReview(bookingID, reviewerID, revieweeID, rating, "", "", "")
		assert.NoError(t, err, "rating %d", rating)
	}
}

func TestNewReview_ReviewerMustDifferFromReviewee(t *testing.T) {
	userID := uuid.New()
	_, err := NewReview(uuid.New(), userID, userID, 5, "", "", "")
	require.Error(t, err)
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
}

func TestSummarize(t *testing.T) {
	revieweeID := uuid.New()
	ratings := []int{5, 5, 4, 3, 5}

	reviews := make([]*Review, len(ratings))
	for i, rating := range ratings {
		reviews[i] = Reconstruct(uuid.New(), uuid.New(), uuid.New(), revieweeID, rating, "", "", "", time.Now())
	}

	summary := Summarize(reviews)
	assert.Equal(t, 5, summary.TotalReviews)
	assert.InDelta(t, 4.4, summary.AverageRating, 0.0001)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 1, 4: 1, 5: 3}, summary.Breakdown)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, 0, summary.TotalReviews)
	assert.Zero(t, summary.AverageRating)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, summary.Breakdown)
}
