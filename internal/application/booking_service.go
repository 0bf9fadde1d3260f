package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petstay/service-booking/internal/domain"
	bookingDomain "github.com/petstay/service-booking/internal/domain/booking"
	petDomain "github.com/petstay/service-booking/internal/domain/pet"
	"github.com/petstay/service-booking/internal/domain/notification"
	"github.com/petstay/service-booking/internal/events"
	"github.com/petstay/service-booking/internal/kafka"
)

// CreateBookingRequest holds the data needed to create a new booking request.
type CreateBookingRequest struct {
	HostID              uuid.UUID   `json:"host_id" binding:"required"`
	PetIDs              []uuid.UUID `json:"pet_ids" binding:"required"`
	CheckInDate         time.Time   `json:"check_in_date" binding:"required"`
	CheckOutDate        time.Time   `json:"check_out_date" binding:"required"`
	DropOffTime         string      `json:"drop_off_time"`
	PickUpTime          string      `json:"pick_up_time"`
	SpecialInstructions string      `json:"special_instructions"`
	EmergencyPermission bool        `json:"emergency_permission"`
}

// TransitionRequest is a single lifecycle action against a booking. Only the
// reject action carries a reason; every other field combination is fixed by
// the action itself.
type TransitionRequest struct {
	Action bookingDomain.Action `json:"action" binding:"required"`
	Reason string               `json:"reason"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID                  uuid.UUID   `json:"id"`
	BookingNumber       string      `json:"booking_number"`
	OwnerID             uuid.UUID   `json:"owner_id"`
	HostID              uuid.UUID   `json:"host_id"`
	PetIDs              []uuid.UUID `json:"pet_ids"`
	CheckInDate         time.Time   `json:"check_in_date"`
	CheckOutDate        time.Time   `json:"check_out_date"`
	DropOffTime         string      `json:"drop_off_time,omitempty"`
	PickUpTime          string      `json:"pick_up_time,omitempty"`
	SpecialInstructions string      `json:"special_instructions,omitempty"`
	EmergencyPermission bool        `json:"emergency_permission"`
	Status              string      `json:"status"`
	RejectionReason     string      `json:"rejection_reason,omitempty"`

	OwnerConfirmedDropoff   bool `json:"owner_confirmed_dropoff"`
	HostConfirmedReceiving  bool `json:"host_confirmed_receiving"`
	HostConfirmedCompletion bool `json:"host_confirmed_completion"`
	OwnerConfirmedPickup    bool `json:"owner_confirmed_pickup"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingService orchestrates the booking lifecycle. All mutations flow
// through CreateBooking and ApplyTransition; actor identity is always an
// explicit parameter, never ambient session state.
type BookingService struct {
	bookings bookingDomain.Repository
	pets     petDomain.Repository
	notifier notification.Emitter
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.Repository,
	pets petDomain.Repository,
	notifier notification.Emitter,
	producer *kafka.Producer,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		pets:     pets,
		notifier: notifier,
		producer: producer,
		logger:   logger,
	}
}

// CreateBooking files a new booking request by the given owner.
func (s *BookingService) CreateBooking(ctx context.Context, ownerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	if err := s.validatePets(ctx, ownerID, req.PetIDs); err != nil {
		return nil, err
	}

	bk, err := bookingDomain.NewBooking(
		ownerID,
		req.HostID,
		req.PetIDs,
		req.CheckInDate,
		req.CheckOutDate,
		req.DropOffTime,
		req.PickUpTime,
		req.SpecialInstructions,
		req.EmergencyPermission,
	)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	bookingID := bk.ID()
	s.notifier.Notify(ctx, bk.HostID(), notification.TypeNewRequest,
		"New Booking Request",
		fmt.Sprintf("You have received a new booking request %s for %d pet(s)", bk.BookingNumber(), len(bk.PetIDs())),
		&bookingID,
	)

	s.publishEvent(ctx, events.BookingRequested, bk.ID().String(), events.BookingRequestedEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		OwnerID:       bk.OwnerID(),
		HostID:        bk.HostID(),
		PetCount:      len(bk.PetIDs()),
		CheckInDate:   bk.CheckInDate(),
		CheckOutDate:  bk.CheckOutDate(),
		OccurredAt:    time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// validatePets checks that every requested pet exists, is active and belongs
// to the requesting owner.
func (s *BookingService) validatePets(ctx context.Context, ownerID uuid.UUID, petIDs []uuid.UUID) error {
	if len(petIDs) == 0 {
		return domain.NewValidationError("at least one pet is required")
	}

	pets, err := s.pets.FindByIDs(ctx, petIDs)
	if err != nil {
		return fmt.Errorf("failed to load pets: %w", err)
	}

	found := make(map[uuid.UUID]*petDomain.Pet, len(pets))
	for _, p := range pets {
		found[p.ID()] = p
	}
	for _, petID := range petIDs {
		p, ok := found[petID]
		if !ok {
			return domain.NewNotFoundError("Pet", petID.String())
		}
		if !p.IsOwnedBy(ownerID) {
			return domain.NewValidationError(fmt.Sprintf("pet %s does not belong to this owner", petID))
		}
		if !p.IsActive() {
			return domain.NewValidationError(fmt.Sprintf("pet %s is archived", petID))
		}
	}
	return nil
}

// ApplyTransition loads the booking, applies a single lifecycle action on
// behalf of the given actor, persists the result and emits side effects.
// Notification emission is best-effort and never rolls back the transition.
func (s *BookingService) ApplyTransition(ctx context.Context, bookingID, actorID uuid.UUID, req TransitionRequest) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	changed := true
	switch req.Action {
	case bookingDomain.ActionAcceptRequest:
		err = bk.Accept(actorID)
	case bookingDomain.ActionRejectRequest:
		err = bk.Reject(actorID, req.Reason)
	case bookingDomain.ActionConfirmBooking:
		err = bk.Confirm(actorID)
	case bookingDomain.ActionConfirmDropoff:
		changed, err = bk.ConfirmDropoff(actorID)
	case bookingDomain.ActionConfirmReceiving:
		changed, err = bk.ConfirmReceiving(actorID)
	case bookingDomain.ActionConfirmCompletion:
		changed, err = bk.ConfirmCompletion(actorID)
	case bookingDomain.ActionConfirmPickup:
		changed, err = bk.ConfirmPickup(actorID)
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("invalid booking action: %s", req.Action))
	}
	if err != nil {
		return nil, err
	}

	// Duplicate confirmation: nothing to persist, return current state.
	if !changed {
		result := toBookingDTO(bk)
		return &result, nil
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.emitTransitionSideEffects(ctx, bk, req.Action)

	result := toBookingDTO(bk)
	return &result, nil
}

// emitTransitionSideEffects sends the counterparty notification and the
// integration event for a transition that changed state.
func (s *BookingService) emitTransitionSideEffects(ctx context.Context, bk *bookingDomain.Booking, action bookingDomain.Action) {
	bookingID := bk.ID()
	now := time.Now().UTC()

	switch action {
	case bookingDomain.ActionAcceptRequest:
		s.notifier.Notify(ctx, bk.OwnerID(), notification.TypeRequestAccepted,
			"Booking Accepted",
			fmt.Sprintf("Your host has accepted booking request %s", bk.BookingNumber()),
			&bookingID,
		)
		s.publishEvent(ctx, events.BookingAccepted, bk.ID().String(), events.BookingAcceptedEvent{
			BookingID:     bk.ID(),
			BookingNumber: bk.BookingNumber(),
			OwnerID:       bk.OwnerID(),
			HostID:        bk.HostID(),
			OccurredAt:    now,
		})

	case bookingDomain.ActionRejectRequest:
		s.notifier.Notify(ctx, bk.OwnerID(), notification.TypeRequestRejected,
			"Booking Rejected",
			fmt.Sprintf("Your host has rejected booking request %s: %s", bk.BookingNumber(), bk.RejectionReason()),
			&bookingID,
		)
		s.publishEvent(ctx, events.BookingRejected, bk.ID().String(), events.BookingRejectedEvent{
			BookingID:     bk.ID(),
			BookingNumber: bk.BookingNumber(),
			OwnerID:       bk.OwnerID(),
			HostID:        bk.HostID(),
			Reason:        bk.RejectionReason(),
			OccurredAt:    now,
		})

	case bookingDomain.ActionConfirmBooking:
		s.publishEvent(ctx, events.BookingConfirmed, bk.ID().String(), events.BookingConfirmedEvent{
			BookingID:     bk.ID(),
			BookingNumber: bk.BookingNumber(),
			OwnerID:       bk.OwnerID(),
			HostID:        bk.HostID(),
			OccurredAt:    now,
		})

	case bookingDomain.ActionConfirmDropoff:
		s.publishEvent(ctx, events.StayStarted, bk.ID().String(), events.StayStartedEvent{
			BookingID:     bk.ID(),
			BookingNumber: bk.BookingNumber(),
			OwnerID:       bk.OwnerID(),
			HostID:        bk.HostID(),
			OccurredAt:    now,
		})

	case bookingDomain.ActionConfirmPickup:
		s.publishEvent(ctx, events.BookingCompleted, bk.ID().String(), events.BookingCompletedEvent{
			BookingID:     bk.ID(),
			BookingNumber: bk.BookingNumber(),
			OwnerID:       bk.OwnerID(),
			HostID:        bk.HostID(),
			OccurredAt:    now,
		})
	}
}

// GetBooking retrieves a single booking. Only its participants may see it.
func (s *BookingService) GetBooking(ctx context.Context, bookingID, requesterID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.IsParticipant(requesterID) {
		return nil, domain.NewForbiddenError("booking does not belong to this user")
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetOwnerBookings retrieves paginated bookings requested by an owner.
func (s *BookingService) GetOwnerBookings(ctx context.Context, ownerID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.bookings.FindByOwnerID(ctx, ownerID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// GetHostBookings retrieves paginated bookings hosted by a host.
func (s *BookingService) GetHostBookings(ctx context.Context, hostID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.bookings.FindByHostID(ctx, hostID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.bookings.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return toBookingDTOs(bookings), total, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      counts,
	}, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:                      bk.ID(),
		BookingNumber:           bk.BookingNumber(),
		OwnerID:                 bk.OwnerID(),
		HostID:                  bk.HostID(),
		PetIDs:                  bk.PetIDs(),
		CheckInDate:             bk.CheckInDate(),
		CheckOutDate:            bk.CheckOutDate(),
		DropOffTime:             bk.DropOffTime(),
		PickUpTime:              bk.PickUpTime(),
		SpecialInstructions:     bk.SpecialInstructions(),
		EmergencyPermission:     bk.EmergencyPermission(),
		Status:                  string(bk.Status()),
		RejectionReason:         bk.RejectionReason(),
		OwnerConfirmedDropoff:   bk.OwnerConfirmedDropoff(),
		HostConfirmedReceiving:  bk.HostConfirmedReceiving(),
		HostConfirmedCompletion: bk.HostConfirmedCompletion(),
		OwnerConfirmedPickup:    bk.OwnerConfirmedPickup(),
		Version:                 bk.Version(),
		CreatedAt:               bk.CreatedAt(),
		UpdatedAt:               bk.UpdatedAt(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}

func (s *BookingService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	if s.producer == nil {
		return
	}

	cloudEvent, err := kafka.NewCloudEvent("service-booking", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, events.TopicBookingEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", events.TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
