package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/petstay/service-booking/internal/domain"
)

const bookingNumberChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Booking is the aggregate root for a pet stay between one owner and one host.
//
// The lifecycle runs requested -> accepted -> confirmed -> in_progress ->
// completed, with cancelled reachable only via a host reject of a requested
// booking. Both physical handoffs (drop-off and pickup) are two-sided
// handshakes: the four confirmation flags record each party's half, and the
// receiving party's confirmation is gated on the dropping party's flag
// already being set. The in_progress status alone does not say which
// handshake is done; readers must inspect the flags.
type Booking struct {
	id            uuid.UUID
	bookingNumber string
	ownerID       uuid.UUID
	hostID        uuid.UUID
	petIDs        []uuid.UUID

	checkInDate  time.Time
	checkOutDate time.Time
	dropOffTime  string
	pickUpTime   string

	specialInstructions string
	emergencyPermission bool

	status          BookingStatus
	rejectionReason string

	ownerConfirmedDropoff   bool
	hostConfirmedReceiving  bool
	hostConfirmedCompletion bool
	ownerConfirmedPickup    bool

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// generateBookingNumber creates a booking number in the format "BK-XXXXXX".
func generateBookingNumber() (string, error) {
	result := make([]byte, 6)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(bookingNumberChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate booking number: %w", err)
		}
		result[i] = bookingNumberChars[n.Int64()]
	}
	return "BK-" + string(result), nil
}

// NewBooking creates a new Booking aggregate with status=requested.
func NewBooking(
	ownerID uuid.UUID,
	hostID uuid.UUID,
	petIDs []uuid.UUID,
	checkInDate time.Time,
	checkOutDate time.Time,
	dropOffTime string,
	pickUpTime string,
	specialInstructions string,
	emergencyPermission bool,
) (*Booking, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if hostID == uuid.Nil {
		return nil, domain.NewValidationError("host ID is required")
	}
	if ownerID == hostID {
		return nil, domain.NewValidationError("owner and host must be different users")
	}
	if len(petIDs) == 0 {
		return nil, domain.NewValidationError("at least one pet is required")
	}
	for _, petID := range petIDs {
		if petID == uuid.Nil {
			return nil, domain.NewValidationError("pet ID must not be empty")
		}
	}
	if checkInDate.IsZero() || checkOutDate.IsZero() {
		return nil, domain.NewValidationError("check-in and check-out dates are required")
	}
	if checkOutDate.Before(checkInDate) {
		return nil, domain.NewValidationError("check-out date must be on or after check-in date")
	}
	if err := validateTimeOfDay("drop-off time", dropOffTime); err != nil {
		return nil, err
	}
	if err := validateTimeOfDay("pick-up time", pickUpTime); err != nil {
		return nil, err
	}

	bookingNumber, err := generateBookingNumber()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Booking{
		id:                  uuid.New(),
		bookingNumber:       bookingNumber,
		ownerID:             ownerID,
		hostID:              hostID,
		petIDs:              petIDs,
		checkInDate:         checkInDate,
		checkOutDate:        checkOutDate,
		dropOffTime:         dropOffTime,
		pickUpTime:          pickUpTime,
		specialInstructions: specialInstructions,
		emergencyPermission: emergencyPermission,
		status:              StatusRequested,
		version:             1,
		createdAt:           now,
		updatedAt:           now,
	}, nil
}

// validateTimeOfDay checks an optional "HH:MM" time-of-day string.
func validateTimeOfDay(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse("15:04", value); err != nil {
		return domain.NewValidationError(fmt.Sprintf("%s must be in HH:MM format", field))
	}
	return nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	bookingNumber string,
	ownerID uuid.UUID,
	hostID uuid.UUID,
	petIDs []uuid.UUID,
	checkInDate time.Time,
	checkOutDate time.Time,
	dropOffTime string,
	pickUpTime string,
	specialInstructions string,
	emergencyPermission bool,
	status BookingStatus,
	rejectionReason string,
	ownerConfirmedDropoff bool,
	hostConfirmedReceiving bool,
	hostConfirmedCompletion bool,
	ownerConfirmedPickup bool,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                      id,
		bookingNumber:           bookingNumber,
		ownerID:                 ownerID,
		hostID:                  hostID,
		petIDs:                  petIDs,
		checkInDate:             checkInDate,
		checkOutDate:            checkOutDate,
		dropOffTime:             dropOffTime,
		pickUpTime:              pickUpTime,
		specialInstructions:     specialInstructions,
		emergencyPermission:     emergencyPermission,
		status:                  status,
		rejectionReason:         rejectionReason,
		ownerConfirmedDropoff:   ownerConfirmedDropoff,
		hostConfirmedReceiving:  hostConfirmedReceiving,
		hostConfirmedCompletion: hostConfirmedCompletion,
		ownerConfirmedPickup:    ownerConfirmedPickup,
		version:                 version,
		createdAt:               createdAt,
		updatedAt:               updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// BookingNumber returns the human-readable booking number.
func (b *Booking) BookingNumber() string { return b.bookingNumber }

// OwnerID returns the pet owner's user ID.
func (b *Booking) OwnerID() uuid.UUID { return b.ownerID }

// HostID returns the host's user ID.
func (b *Booking) HostID() uuid.UUID { return b.hostID }

// PetIDs returns the IDs of the pets covered by this booking.
func (b *Booking) PetIDs() []uuid.UUID { return b.petIDs }

// CheckInDate returns the first day of the stay.
func (b *Booking) CheckInDate() time.Time { return b.checkInDate }

// CheckOutDate returns the last day of the stay.
func (b *Booking) CheckOutDate() time.Time { return b.checkOutDate }

// DropOffTime returns the agreed drop-off time of day, or "".
func (b *Booking) DropOffTime() string { return b.dropOffTime }

// PickUpTime returns the agreed pick-up time of day, or "".
func (b *Booking) PickUpTime() string { return b.pickUpTime }

// SpecialInstructions returns the owner's care instructions.
func (b *Booking) SpecialInstructions() string { return b.specialInstructions }

// EmergencyPermission returns whether the host may seek emergency vet care.
func (b *Booking) EmergencyPermission() bool { return b.emergencyPermission }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// RejectionReason returns the host's reason when the booking was rejected.
func (b *Booking) RejectionReason() string { return b.rejectionReason }

// OwnerConfirmedDropoff returns the owner's half of the drop-off handshake.
func (b *Booking) OwnerConfirmedDropoff() bool { return b.ownerConfirmedDropoff }

// HostConfirmedReceiving returns the host's half of the drop-off handshake.
func (b *Booking) HostConfirmedReceiving() bool { return b.hostConfirmedReceiving }

// HostConfirmedCompletion returns the host's half of the pickup handshake.
func (b *Booking) HostConfirmedCompletion() bool { return b.hostConfirmedCompletion }

// OwnerConfirmedPickup returns the owner's half of the pickup handshake.
func (b *Booking) OwnerConfirmedPickup() bool { return b.ownerConfirmedPickup }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// IsParticipant reports whether the given user is the booking's owner or host.
func (b *Booking) IsParticipant(userID uuid.UUID) bool {
	return userID == b.ownerID || userID == b.hostID
}

// Counterparty returns the other participant of the booking.
func (b *Booking) Counterparty(userID uuid.UUID) (uuid.UUID, error) {
	switch userID {
	case b.ownerID:
		return b.hostID, nil
	case b.hostID:
		return b.ownerID, nil
	default:
		return uuid.Nil, domain.NewForbiddenError("user is not a participant of this booking")
	}
}

// --- Behavior ---

// Accept transitions the booking from requested to accepted. Only the host
// may accept.
func (b *Booking) Accept(actorID uuid.UUID) error {
	if actorID != b.hostID {
		return domain.NewForbiddenError("only the host may accept a booking request")
	}
	if !b.status.CanTransitionTo(StatusAccepted) {
		return domain.NewInvalidTransitionError(string(b.status), string(ActionAcceptRequest))
	}
	b.status = StatusAccepted
	b.touch()
	return nil
}

// Reject transitions the booking from requested to cancelled with a reason.
// Only the host may reject, and the reason must be non-empty.
func (b *Booking) Reject(actorID uuid.UUID, reason string) error {
	if actorID != b.hostID {
		return domain.NewForbiddenError("only the host may reject a booking request")
	}
	if !b.status.CanTransitionTo(StatusCancelled) {
		return domain.NewInvalidTransitionError(string(b.status), string(ActionRejectRequest))
	}
	if strings.TrimSpace(reason) == "" {
		return domain.NewValidationError("rejection reason is required")
	}
	b.status = StatusCancelled
	b.rejectionReason = reason
	b.touch()
	return nil
}

// Confirm transitions the booking from accepted to confirmed. Only the owner
// may confirm.
func (b *Booking) Confirm(actorID uuid.UUID) error {
	if actorID != b.ownerID {
		return domain.NewForbiddenError("only the owner may confirm a booking")
	}
	if !b.status.CanTransitionTo(StatusConfirmed) {
		return domain.NewInvalidTransitionError(string(b.status), string(ActionConfirmBooking))
	}
	b.status = StatusConfirmed
	b.touch()
	return nil
}

// ConfirmDropoff records the owner's half of the drop-off handshake and moves
// the booking to in_progress. A repeat confirmation is an idempotent no-op;
// the returned bool reports whether state actually changed.
func (b *Booking) ConfirmDropoff(actorID uuid.UUID) (bool, error) {
	if actorID != b.ownerID {
		return false, domain.NewForbiddenError("only the owner may confirm drop-off")
	}
	if b.ownerConfirmedDropoff {
		return false, nil
	}
	if b.status != StatusConfirmed {
		return false, domain.NewInvalidTransitionError(string(b.status), string(ActionConfirmDropoff))
	}
	b.ownerConfirmedDropoff = true
	b.status = StatusInProgress
	b.touch()
	return true, nil
}

// ConfirmReceiving records the host's half of the drop-off handshake. It
// requires the owner's drop-off confirmation to already be set. A repeat
// confirmation is an idempotent no-op.
func (b *Booking) ConfirmReceiving(actorID uuid.UUID) (bool, error) {
	if actorID != b.hostID {
		return false, domain.NewForbiddenError("only the host may confirm receiving")
	}
	if b.hostConfirmedReceiving {
		return false, nil
	}
	if b.status != StatusConfirmed && b.status != StatusInProgress {
		return false, domain.NewInvalidTransitionError(string(b.status), string(ActionConfirmReceiving))
	}
	if !b.ownerConfirmedDropoff {
		return false, domain.NewInvalidTransitionError(string(b.status), string(ActionConfirmReceiving))
	}
	b.hostConfirmedReceiving = true
	b.status = StatusInProgress
	b.touch()
	return true, nil
}

// ConfirmCompletion records the host's half of the pickup handshake. The
// booking stays in_progress until the owner confirms pickup. A repeat
// confirmation is an idempotent no-op.
func (b *Booking) ConfirmCompletion(actorID uuid.UUID) (bool, error) {
	if actorID != b.hostID {
		return false, domain.NewForbiddenError("only the host may confirm completion")
	}
	if b.hostConfirmedCompletion {
		return false, nil
	}
	if b.status != StatusInProgress {
		return false, domain.NewInvalidTransitionError(string(b.status), string(ActionConfirmCompletion))
	}
	b.hostConfirmedCompletion = true
	b.touch()
	return true, nil
}

// ConfirmPickup records the owner's half of the pickup handshake and completes
// the booking. It requires the host's completion confirmation to already be
// set. A repeat confirmation is an idempotent no-op.
func (b *Booking) ConfirmPickup(actorID uuid.UUID) (bool, error) {
	if actorID != b.ownerID {
		return false, domain.NewForbiddenError("only the owner may confirm pickup")
	}
	if b.ownerConfirmedPickup {
		return false, nil
	}
	if b.status != StatusInProgress {
		return false, domain.NewInvalidTransitionError(string(b.status), string(ActionConfirmPickup))
	}
	if !b.hostConfirmedCompletion {
		return false, domain.NewInvalidTransitionError(string(b.status), string(ActionConfirmPickup))
	}
	b.ownerConfirmedPickup = true
	b.status = StatusCompleted
	b.touch()
	return true, nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}

func (b *Booking) touch() {
	b.updatedAt = time.Now().UTC()
}
