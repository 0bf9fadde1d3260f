package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/petstay/service-booking/internal/domain/notification"
	"github.com/petstay/service-booking/internal/kafka"
)

// notificationCreator is satisfied by notify.Notifier. A returned error leaves
// the Kafka offset uncommitted so the notification is retried.
type notificationCreator interface {
	Create(ctx context.Context, userID uuid.UUID, notifType notification.NotificationType, title, message string, bookingID *uuid.UUID) (*notification.Notification, error)
}

// ReminderEventConsumer turns scheduler reminders into in-app notifications.
type ReminderEventConsumer struct {
	consumer *kafka.Consumer
	notifier notificationCreator
	logger   *zap.Logger
}

// NewReminderEventConsumer creates a consumer on the reminder events topic.
func NewReminderEventConsumer(brokers []string, groupID string, notifier notificationCreator, logger *zap.Logger) *ReminderEventConsumer {
	return &ReminderEventConsumer{
		consumer: kafka.NewConsumer(brokers, groupID, TopicReminderEvents, logger),
		notifier: notifier,
		logger:   logger,
	}
}

// Start consumes reminder events until the context is cancelled.
func (c *ReminderEventConsumer) Start(ctx context.Context) error {
	c.logger.Info("starting reminder event consumer", zap.String("topic", TopicReminderEvents))
	return c.consumer.Consume(ctx, c.handleMessage)
}

func (c *ReminderEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Warn("skipping malformed reminder event",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return nil
	}

	if cloudEvent.Type != ReminderDue {
		return nil
	}

	var evt ReminderDueEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Warn("skipping reminder event with malformed data",
			zap.String("event_id", cloudEvent.ID),
			zap.Error(err),
		)
		return nil
	}

	var (
		notifType notification.NotificationType
		title     string
		message   string
	)
	switch evt.Kind {
	case ReminderKindBooking:
		notifType = notification.TypeBookingReminder
		title = "Upcoming Booking"
		message = "You have an upcoming booking. Check the details and prepare for drop-off."
	case ReminderKindReview:
		notifType = notification.TypeReviewReminder
		title = "Leave a Review"
		message = "Your booking is complete. Share your experience by leaving a review."
	default:
		c.logger.Warn("skipping reminder event with unknown kind",
			zap.String("event_id", cloudEvent.ID),
			zap.String("kind", string(evt.Kind)),
		)
		return nil
	}

	bookingID := evt.BookingID
	if _, err := c.notifier.Create(ctx, evt.UserID, notifType, title, message, &bookingID); err != nil {
		return fmt.Errorf("failed to create reminder notification: %w", err)
	}

	c.logger.Info("reminder notification created",
		zap.String("user_id", evt.UserID.String()),
		zap.String("kind", string(evt.Kind)),
	)
	return nil
}

// Close closes the underlying Kafka consumer.
func (c *ReminderEventConsumer) Close() error {
	return c.consumer.Close()
}
