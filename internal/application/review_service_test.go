package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/petstay/service-booking/internal/domain"
	bookingDomain "github.com/petstay/service-booking/internal/domain/booking"
)

type reviewFixture struct {
	service  *ReviewService
	bookings *fakeBookingRepo
	reviews  *fakeReviewRepo
	ownerID  uuid.UUID
	hostID   uuid.UUID
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	bookings := newFakeBookingRepo()
	reviews := newFakeReviewRepo()
	return &reviewFixture{
		service:  NewReviewService(reviews, bookings, zap.NewNop()),
		bookings: bookings,
		reviews:  reviews,
		ownerID:  uuid.New(),
		hostID:   uuid.New(),
	}
}

// seedBooking stores a booking in the given status directly, with all
// confirmation flags set for completed bookings.
func (f *reviewFixture) seedBooking(t *testing.T, status bookingDomain.BookingStatus) uuid.UUID {
	t.Helper()

	completed := status == bookingDomain.StatusCompleted
	bk := bookingDomain.Reconstruct(
		uuid.New(), "BK-TEST42", f.ownerID, f.hostID, []uuid.UUID{uuid.New()},
		time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		"", "", "", false,
		status, "",
		completed, completed, completed, completed,
		1, time.Now().UTC(), time.Now().UTC(),
	)
	require.NoError(t, f.bookings.Save(context.Background(), bk))
	return bk.ID()
}

func TestSubmitReview(t *testing.T) {
	f := newReviewFixture(t)
	bookingID := f.seedBooking(t, bookingDomain.StatusCompleted)

	dto, err := f.service.SubmitReview(context.Background(), f.ownerID, SubmitReviewRequest{
		BookingID:  bookingID,
		Rating:     5,
		ReviewText: "wonderful host",
	})
	require.NoError(t, err)

	assert.Equal(t, f.ownerID, dto.ReviewerID)
	assert.Equal(t, f.hostID, dto.RevieweeID, "reviewee is always the counterparty")
	assert.Equal(t, 5, dto.Rating)
}

func TestSubmitReview_HostReviewsOwner(t *testing.T) {
	f := newReviewFixture(t)
	bookingID := f.seedBooking(t, bookingDomain.StatusCompleted)

	dto, err := f.service.SubmitReview(context.Background(), f.hostID, SubmitReviewRequest{
		BookingID: bookingID,
		Rating:    4,
	})
	require.NoError(t, err)
	assert.Equal(t, f.ownerID, dto.RevieweeID)
}

func TestSubmitReview_BookingNotCompleted(t *testing.T) {
	f := newReviewFixture(t)

	for _, status := range []bookingDomain.BookingStatus{
		bookingDomain.StatusRequested,
		bookingDomain.StatusAccepted,
		bookingDomain.StatusConfirmed,
		bookingDomain.StatusInProgress,
		bookingDomain.StatusCancelled,
	} {
		bookingID := f.seedBooking(t, status)
		_, err := f.service.SubmitReview(context.Background(), f.ownerID, SubmitReviewRequest{
			BookingID: bookingID,
			Rating:    5,
		})
		require.Error(t, err, "status %s", status)
		assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
	}
}

func TestSubmitReview_NonParticipant(t *testing.T) {
	f := newReviewFixture(t)
	bookingID := f.seedBooking(t, bookingDomain.StatusCompleted)

	_, err := f.service.SubmitReview(context.Background(), uuid.New(), SubmitReviewRequest{
		BookingID: bookingID,
		Rating:    5,
	})
	require.Error(t, err)
	assert.Equal(t, domain.CodeForbidden, domain.CodeOf(err))
}

func TestSubmitReview_Duplicate(t *testing.T) {
	f := newReviewFixture(t)
	bookingID := f.seedBooking(t, bookingDomain.StatusCompleted)

	_, err := f.service.SubmitReview(context.Background(), f.ownerID, SubmitReviewRequest{
		BookingID: bookingID,
		Rating:    5,
	})
	require.NoError(t, err)

	_, err = f.service.SubmitReview(context.Background(), f.ownerID, SubmitReviewRequest{
		BookingID: bookingID,
		Rating:    3,
	})
	require.Error(t, err)
	assert.Equal(t, domain.CodeDuplicateReview, domain.CodeOf(err))

	// The host's own review of the same booking is still allowed.
	_, err = f.service.SubmitReview(context.Background(), f.hostID, SubmitReviewRequest{
		BookingID: bookingID,
		Rating:    4,
	})
	assert.NoError(t, err)
}

func TestSubmitReview_InvalidRating(t *testing.T) {
	f := newReviewFixture(t)
	bookingID := f.seedBooking(t, bookingDomain.StatusCompleted)

	for _, rating := range []int{0, 6} {
		_, err := f.service.SubmitReview(context.Background(), f.ownerID, SubmitReviewRequest{
			BookingID: bookingID,
			Rating:    rating,
		})
		require.Error(t, err)
		assert.Equal(t, domain.CodeInvalidRating, domain.CodeOf(err))
	}
}

func TestCanReview(t *testing.T) {
	f := newReviewFixture(t)
	bookingID := f.seedBooking(t, bookingDomain.StatusCompleted)

	eligibility, err := f.service.CanReview(context.Background(), bookingID, f.ownerID)
	require.NoError(t, err)
	assert.True(t, eligibility.CanReview)

	_, err = f.service.SubmitReview(context.Background(), f.ownerID, SubmitReviewRequest{
		BookingID: bookingID,
		Rating:    5,
	})
	require.NoError(t, err)

	eligibility, err = f.service.CanReview(context.Background(), bookingID, f.ownerID)
	require.NoError(t, err)
	assert.False(t, eligibility.CanReview)
	assert.Equal(t, "booking already reviewed", eligibility.Reason)
}

func TestCanReview_NotCompleted(t *testing.T) {
	f := newReviewFixture(t)
	bookingID := f.seedBooking(t, bookingDomain.StatusInProgress)

	eligibility, err := f.service.CanReview(context.Background(), bookingID, f.ownerID)
	require.NoError(t, err)
	assert.False(t, eligibility.CanReview)
	assert.Equal(t, "booking is not completed", eligibility.Reason)
}

func TestCanReview_NonParticipant(t *testing.T) {
	f := newReviewFixture(t)
	bookingID := f.seedBooking(t, bookingDomain.StatusCompleted)

	eligibility, err := f.service.CanReview(context.Background(), bookingID, uuid.New())
	require.NoError(t, err)
	assert.False(t, eligibility.CanReview)
	assert.Equal(t, "not a participant of this booking", eligibility.Reason)
}

func TestGetUserReviews(t *testing.T) {
	f := newReviewFixture(t)

	for _, rating := range []int{5, 4, 5} {
		bookingID := f.seedBooking(t, bookingDomain.StatusCompleted)
		_, err := f.service.SubmitReview(context.Background(), f.ownerID, SubmitReviewRequest{
			BookingID: bookingID,
			Rating:    rating,
		})
		require.NoError(t, err)
	}

	result, err := f.service.GetUserReviews(context.Background(), f.hostID)
	require.NoError(t, err)

	assert.Len(t, result.Reviews, 3)
	assert.Equal(t, 3, result.Summary.TotalReviews)
	assert.InDelta(t, 14.0/3.0, result.Summary.AverageRating, 0.0001)
	assert.Equal(t, 2, result.Summary.Breakdown[5])
	assert.Equal(t, 1, result.Summary.Breakdown[4])
}
