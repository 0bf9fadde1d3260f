package availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/petstay/service-booking/internal/domain"
)

// Availability is a window during which a host accepts bookings, with an
// upper bound on simultaneously hosted pets and optional blocked dates
// inside the window.
type Availability struct {
	id            uuid.UUID
	hostID        uuid.UUID
	availableFrom time.Time
	availableTo   time.Time
	maxPets       int
	blockedDates  []time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// NewAvailability creates a validated availability window.
func NewAvailability(
	hostID uuid.UUID,
	availableFrom, availableTo time.Time,
	maxPets int,
	blockedDates []time.Time,
) (*Availability, error) {
	if hostID == uuid.Nil {
		return nil, domain.NewValidationError("host ID is required")
	}
	if availableFrom.IsZero() || availableTo.IsZero() {
		return nil, domain.NewValidationError("availability dates are required")
	}
	if availableTo.Before(availableFrom) {
		return nil, domain.NewValidationError("availability end must be on or after its start")
	}
	if maxPets < 1 {
		return nil, domain.NewValidationError("max pets must be at least 1")
	}

	now := time.Now().UTC()
	return &Availability{
		id:            uuid.New(),
		hostID:        hostID,
		availableFrom: availableFrom,
		availableTo:   availableTo,
		maxPets:       maxPets,
		blockedDates:  blockedDates,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Reconstruct rebuilds an Availability from persistence data (no validation).
func Reconstruct(
	id, hostID uuid.UUID,
	availableFrom, availableTo time.Time,
	maxPets int,
	blockedDates []time.Time,
	createdAt, updatedAt time.Time,
) *Availability {
	return &Availability{
		id:            id,
		hostID:        hostID,
		availableFrom: availableFrom,
		availableTo:   availableTo,
		maxPets:       maxPets,
		blockedDates:  blockedDates,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// --- Getters ---

func (a *Availability) ID() uuid.UUID             { return a.id }
func (a *Availability) HostID() uuid.UUID         { return a.hostID }
func (a *Availability) AvailableFrom() time.Time  { return a.availableFrom }
func (a *Availability) AvailableTo() time.Time    { return a.availableTo }
func (a *Availability) MaxPets() int              { return a.maxPets }
func (a *Availability) BlockedDates() []time.Time { return a.blockedDates }
func (a *Availability) CreatedAt() time.Time      { return a.createdAt }
func (a *Availability) UpdatedAt() time.Time      { return a.updatedAt }

// IsOwnedBy checks if the window belongs to the given host.
func (a *Availability) IsOwnedBy(hostID uuid.UUID) bool {
	return a.hostID == hostID
}

// Covers reports whether the given date range falls inside the window and
// avoids all blocked dates.
func (a *Availability) Covers(from, to time.Time) bool {
	if from.Before(a.availableFrom) || to.After(a.availableTo) {
		return false
	}
	for _, blocked := range a.blockedDates {
		if !blocked.Before(from) && !blocked.After(to) {
			return false
		}
	}
	return true
}
