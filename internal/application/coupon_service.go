package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/petstay/service-booking/internal/domain/booking"
	couponDomain "github.com/petstay/service-booking/internal/domain/coupon"
)

// CouponService derives reward coupons from a host's completed bookings.
// Coupons have no storage of their own: every call recomputes them, so only
// the random code suffix differs between reads of the same booking.
type CouponService struct {
	bookings bookingDomain.Repository
	logger   *zap.Logger
}

// NewCouponService creates a new CouponService.
func NewCouponService(bookings bookingDomain.Repository, logger *zap.Logger) *CouponService {
	return &CouponService{
		bookings: bookings,
		logger:   logger,
	}
}

// GetHostCoupons returns one coupon per completed booking of the host, in
// completion order. The category cycles with the booking's position, so the
// same booking always earns the same category and discount.
func (s *CouponService) GetHostCoupons(ctx context.Context, hostID uuid.UUID) ([]couponDomain.Coupon, error) {
	completed, err := s.bookings.FindCompletedByHostID(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("failed to load completed bookings: %w", err)
	}

	coupons := make([]couponDomain.Coupon, 0, len(completed))
	for i, bk := range completed {
		c, err := couponDomain.Derive(bk.ID(), bk.BookingNumber(), i, bk.UpdatedAt())
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, nil
}
