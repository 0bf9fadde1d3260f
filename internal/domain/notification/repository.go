package notification

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for notifications.
type Repository interface {
	// FindByID retrieves a notification by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// FindByUserID returns a user's notifications, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*Notification, int64, error)

	// CountUnread returns the number of unread notifications for a user.
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)

	// Save persists a new notification.
	Save(ctx context.Context, n *Notification) error

	// MarkRead sets the read flag on a single notification.
	MarkRead(ctx context.Context, id uuid.UUID) error

	// MarkAllRead sets the read flag on all of a user's notifications.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

// Emitter creates a notification as a fire-and-forget side effect of a
// lifecycle transition. Implementations must not fail the caller: errors are
// logged and swallowed.
type Emitter interface {
	Notify(ctx context.Context, userID uuid.UUID, notifType NotificationType, title, message string, bookingID *uuid.UUID)
}
