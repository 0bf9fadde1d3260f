package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/petstay/service-booking/internal/domain"
)

// NotificationType enumerates the kinds of notifications the service creates.
type NotificationType string

const (
	TypeNewRequest      NotificationType = "new_request"
	TypeRequestAccepted NotificationType = "request_accepted"
	TypeRequestRejected NotificationType = "request_rejected"
	TypeBookingReminder NotificationType = "booking_reminder"
	TypeReviewReminder  NotificationType = "review_reminder"
	TypeMessage         NotificationType = "message"
)

// IsValid returns true if the notification type is recognized.
func (t NotificationType) IsValid() bool {
	switch t {
	case TypeNewRequest, TypeRequestAccepted, TypeRequestRejected,
		TypeBookingReminder, TypeReviewReminder, TypeMessage:
		return true
	}
	return false
}

// ParseType converts a string to a NotificationType, returning an error if invalid.
func ParseType(s string) (NotificationType, error) {
	t := NotificationType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid notification type: %s", s)
	}
	return t, nil
}

// Notification is a single in-app notification for a user. The lifecycle
// controller only ever creates notifications; after creation the read flag is
// the sole mutable field, toggled by the recipient.
type Notification struct {
	id        uuid.UUID
	userID    uuid.UUID
	notifType NotificationType
	title     string
	message   string
	bookingID *uuid.UUID
	isRead    bool
	createdAt time.Time
}

// NewNotification creates a validated notification.
func NewNotification(
	userID uuid.UUID,
	notifType NotificationType,
	title, message string,
	bookingID *uuid.UUID,
) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("recipient user ID is required")
	}
	if !notifType.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid notification type: %s", notifType))
	}
	if title == "" {
		return nil, domain.NewValidationError("notification title is required")
	}

	return &Notification{
		id:        uuid.New(),
		userID:    userID,
		notifType: notifType,
		title:     title,
		message:   message,
		bookingID: bookingID,
		createdAt: time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Notification from persistence data (no validation).
func Reconstruct(
	id, userID uuid.UUID,
	notifType NotificationType,
	title, message string,
	bookingID *uuid.UUID,
	isRead bool,
	createdAt time.Time,
) *Notification {
	return &Notification{
		id:        id,
		userID:    userID,
		notifType: notifType,
		title:     title,
		message:   message,
		bookingID: bookingID,
		isRead:    isRead,
		createdAt: createdAt,
	}
}

// --- Getters ---

func (n *Notification) ID() uuid.UUID          { return n.id }
func (n *Notification) UserID() uuid.UUID      { return n.userID }
func (n *Notification) Type() NotificationType { return n.notifType }
func (n *Notification) Title() string          { return n.title }
func (n *Notification) Message() string        { return n.message }
func (n *Notification) BookingID() *uuid.UUID  { return n.bookingID }
func (n *Notification) IsRead() bool           { return n.isRead }
func (n *Notification) CreatedAt() time.Time   { return n.createdAt }

// MarkRead flags the notification as read by its recipient.
func (n *Notification) MarkRead() {
	n.isRead = true
}
