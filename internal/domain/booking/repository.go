package booking

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for booking aggregates.
// Bookings are never physically deleted; terminal bookings are retained for
// history, reviews and coupons.
type Repository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByNumber retrieves a booking by its human-readable booking number.
	FindByNumber(ctx context.Context, number string) (*Booking, error)

	// FindByOwnerID retrieves bookings requested by a specific owner with pagination.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// FindByHostID retrieves bookings hosted by a specific host with pagination.
	FindByHostID(ctx context.Context, hostID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// FindCompletedByHostID retrieves all of a host's completed bookings,
	// earliest completed first. Coupon derivation depends on this order.
	FindCompletedByHostID(ctx context.Context, hostID uuid.UUID) ([]*Booking, error)

	// ListAll retrieves all bookings with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error
}
