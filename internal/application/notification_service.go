package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petstay/service-booking/internal/domain"
	notifDomain "github.com/petstay/service-booking/internal/domain/notification"
)

// NotificationDTO is the response representation of a notification.
type NotificationDTO struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	BookingID *uuid.UUID `json:"booking_id,omitempty"`
	IsRead    bool       `json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}

// NotificationService exposes a user's notification feed.
type NotificationService struct {
	notifications notifDomain.Repository
	logger        *zap.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notifications notifDomain.Repository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		logger:        logger,
	}
}

// ListNotifications returns a user's notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, userID uuid.UUID, page, limit int) (*domain.PaginatedResult[NotificationDTO], error) {
	records, total, err := s.notifications.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	dtos := make([]NotificationDTO, len(records))
	for i, n := range records {
		dtos[i] = toNotificationDTO(n)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// UnreadCount returns the number of unread notifications for a user.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead flags a notification as read. Only its recipient may do so.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	record, err := s.notifications.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if record.UserID() != userID {
		return domain.NewForbiddenError("notification does not belong to this user")
	}
	if record.IsRead() {
		return nil
	}
	return s.notifications.MarkRead(ctx, notificationID)
}

// MarkAllRead flags all of a user's notifications as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifications.MarkAllRead(ctx, userID)
}

func toNotificationDTO(n *notifDomain.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID(),
		UserID:    n.UserID(),
		Type:      string(n.Type()),
		Title:     n.Title(),
		Message:   n.Message(),
		BookingID: n.BookingID(),
		IsRead:    n.IsRead(),
		CreatedAt: n.CreatedAt(),
	}
}
