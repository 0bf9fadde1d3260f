package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petstay/service-booking/internal/domain/notification"
	"github.com/petstay/service-booking/internal/events"
	"github.com/petstay/service-booking/internal/kafka"
)

// Notifier creates in-app notification records and announces them on Kafka
// for the external push/email delivery service.
type Notifier struct {
	repo     notification.Repository
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewNotifier creates a Notifier.
func NewNotifier(repo notification.Repository, producer *kafka.Producer, logger *zap.Logger) *Notifier {
	return &Notifier{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// Create persists a notification and publishes a NotificationCreated event.
// The Kafka publish is best-effort; only the persistence error is returned.
func (n *Notifier) Create(
	ctx context.Context,
	userID uuid.UUID,
	notifType notification.NotificationType,
	title, message string,
	bookingID *uuid.UUID,
) (*notification.Notification, error) {
	record, err := notification.NewNotification(userID, notifType, title, message, bookingID)
	if err != nil {
		return nil, err
	}

	if err := n.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	evt := events.NotificationCreatedEvent{
		NotificationID: record.ID(),
		UserID:         record.UserID(),
		Type:           string(record.Type()),
		Title:          record.Title(),
		Message:        record.Message(),
		BookingID:      record.BookingID(),
		OccurredAt:     time.Now().UTC(),
	}
	cloudEvent, err := kafka.NewCloudEvent("service-booking", events.NotificationCreated, evt)
	if err != nil {
		n.logger.Error("failed to create notification event", zap.Error(err))
		return record, nil
	}
	if err := n.producer.PublishEvent(ctx, events.TopicNotificationEvents, cloudEvent); err != nil {
		n.logger.Error("failed to publish notification event",
			zap.String("notification_id", record.ID().String()),
			zap.Error(err),
		)
	}

	return record, nil
}

// Notify implements notification.Emitter. It is fire-and-forget: any error is
// logged and swallowed so a failed notification never rolls back the
// transition that triggered it.
func (n *Notifier) Notify(
	ctx context.Context,
	userID uuid.UUID,
	notifType notification.NotificationType,
	title, message string,
	bookingID *uuid.UUID,
) {
	if _, err := n.Create(ctx, userID, notifType, title, message, bookingID); err != nil {
		n.logger.Error("failed to create notification",
			zap.String("user_id", userID.String()),
			zap.String("type", string(notifType)),
			zap.Error(err),
		)
	}
}
