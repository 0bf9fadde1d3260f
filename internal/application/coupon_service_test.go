package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingDomain "github.com/petstay/service-booking/internal/domain/booking"
	couponDomain "github.com/petstay/service-booking/internal/domain/coupon"
)

func seedCompletedBooking(t *testing.T, repo *fakeBookingRepo, hostID uuid.UUID, completedAt time.Time, n int) *bookingDomain.Booking {
	t.Helper()

	bk := bookingDomain.Reconstruct(
		uuid.New(), fmt.Sprintf("BK-CPN%03d", n), uuid.New(), hostID, []uuid.UUID{uuid.New()},
		completedAt.AddDate(0, 0, -4), completedAt,
		"", "", "", false,
		bookingDomain.StatusCompleted, "",
		true, true, true, true,
		5, completedAt.AddDate(0, 0, -7), completedAt,
	)
	require.NoError(t, repo.Save(context.Background(), bk))
	return bk
}

func TestGetHostCoupons(t *testing.T) {
	bookings := newFakeBookingRepo()
	service := NewCouponService(bookings, zap.NewNop())
	hostID := uuid.New()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		seedCompletedBooking(t, bookings, hostID, base.AddDate(0, 0, i), i)
	}

	coupons, err := service.GetHostCoupons(context.Background(), hostID)
	require.NoError(t, err)
	require.Len(t, coupons, 4)

	// Categories cycle with completion order.
	assert.Equal(t, couponDomain.CategoryPetFood, coupons[0].Category)
	assert.Equal(t, couponDomain.CategoryAccessories, coupons[1].Category)
	assert.Equal(t, couponDomain.CategoryGeneral, coupons[2].Category)
	assert.Equal(t, couponDomain.CategoryPetFood, coupons[3].Category)

	for i, c := range coupons {
		assert.Equal(t, base.AddDate(0, 0, i), c.EarnedAt)
		assert.Equal(t, c.EarnedAt.AddDate(0, 3, 0), c.ExpiresAt)
	}
}

func TestGetHostCoupons_IgnoresNonCompleted(t *testing.T) {
	bookings := newFakeBookingRepo()
	service := NewCouponService(bookings, zap.NewNop())
	hostID := uuid.New()

	bk := bookingDomain.Reconstruct(
		uuid.New(), "BK-OPEN01", uuid.New(), hostID, []uuid.UUID{uuid.New()},
		time.Now(), time.Now().AddDate(0, 0, 3),
		"", "", "", false,
		bookingDomain.StatusInProgress, "",
		true, true, false, false,
		3, time.Now(), time.Now(),
	)
	require.NoError(t, bookings.Save(context.Background(), bk))

	coupons, err := service.GetHostCoupons(context.Background(), hostID)
	require.NoError(t, err)
	assert.Empty(t, coupons)
}

func TestGetHostCoupons_OtherHostsExcluded(t *testing.T) {
	bookings := newFakeBookingRepo()
	service := NewCouponService(bookings, zap.NewNop())
	hostID := uuid.New()

	seedCompletedBooking(t, bookings, hostID, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 0)
	seedCompletedBooking(t, bookings, uuid.New(), time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), 1)

	coupons, err := service.GetHostCoupons(context.Background(), hostID)
	require.NoError(t, err)
	assert.Len(t, coupons, 1)
}
