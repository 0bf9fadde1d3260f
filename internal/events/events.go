package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicBookingEvents      = "booking.events"
	TopicNotificationEvents = "notification.events"
	TopicMessagingEvents    = "messaging.events"
	TopicReminderEvents     = "reminder.events"
)

// Event types on booking.events.
const (
	BookingRequested = "booking.requested"
	BookingAccepted  = "booking.accepted"
	BookingRejected  = "booking.rejected"
	BookingConfirmed = "booking.confirmed"
	StayStarted      = "booking.stay_started"
	BookingCompleted = "booking.completed"
)

// Event types on notification.events.
const (
	NotificationCreated = "notification.created"
)

// Event types consumed from other services.
const (
	MessageSent = "message.sent"
	ReminderDue = "reminder.due"
)

// BookingRequestedEvent is published when an owner files a new booking request.
type BookingRequestedEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	OwnerID       uuid.UUID `json:"owner_id"`
	HostID        uuid.UUID `json:"host_id"`
	PetCount      int       `json:"pet_count"`
	CheckInDate   time.Time `json:"check_in_date"`
	CheckOutDate  time.Time `json:"check_out_date"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingAcceptedEvent is published when a host accepts a request.
type BookingAcceptedEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	OwnerID       uuid.UUID `json:"owner_id"`
	HostID        uuid.UUID `json:"host_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingRejectedEvent is published when a host rejects a request.
type BookingRejectedEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	OwnerID       uuid.UUID `json:"owner_id"`
	HostID        uuid.UUID `json:"host_id"`
	Reason        string    `json:"reason"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingConfirmedEvent is published when an owner confirms an accepted booking.
type BookingConfirmedEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	OwnerID       uuid.UUID `json:"owner_id"`
	HostID        uuid.UUID `json:"host_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// StayStartedEvent is published when the drop-off handshake moves a booking
// to in_progress.
type StayStartedEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	OwnerID       uuid.UUID `json:"owner_id"`
	HostID        uuid.UUID `json:"host_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingCompletedEvent is published when the pickup handshake completes a booking.
type BookingCompletedEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	OwnerID       uuid.UUID `json:"owner_id"`
	HostID        uuid.UUID `json:"host_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NotificationCreatedEvent is published for the external push/email delivery
// service whenever an in-app notification record is created.
type NotificationCreatedEvent struct {
	NotificationID uuid.UUID  `json:"notification_id"`
	UserID         uuid.UUID  `json:"user_id"`
	Type           string     `json:"type"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	BookingID      *uuid.UUID `json:"booking_id,omitempty"`
	OccurredAt     time.Time  `json:"occurred_at"`
}

// MessageSentEvent is consumed from the chat service when a participant sends
// a message on a booking thread.
type MessageSentEvent struct {
	MessageID  uuid.UUID `json:"message_id"`
	BookingID  uuid.UUID `json:"booking_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	SenderName string    `json:"sender_name"`
	Preview    string    `json:"preview"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ReminderKind distinguishes the reminder notifications the scheduler can request.
type ReminderKind string

const (
	ReminderKindBooking ReminderKind = "booking"
	ReminderKindReview  ReminderKind = "review"
)

// ReminderDueEvent is consumed from the scheduler when a booking or review
// reminder falls due for a user.
type ReminderDueEvent struct {
	UserID     uuid.UUID    `json:"user_id"`
	BookingID  uuid.UUID    `json:"booking_id"`
	Kind       ReminderKind `json:"kind"`
	OccurredAt time.Time    `json:"occurred_at"`
}
