package events

import (
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/petstay/service-booking/internal/domain/notification"
	"github.com/petstay/service-booking/internal/kafka"
)

// MessageEventConsumer turns chat messages into in-app notifications for the
// receiving booking participant.
type MessageEventConsumer struct {
	consumer *kafka.Consumer
	notifier notificationCreator
	logger   *zap.Logger
}

// NewMessageEventConsumer creates a consumer on the messaging events topic.
func NewMessageEventConsumer(brokers []string, groupID string, notifier notificationCreator, logger *zap.Logger) *MessageEventConsumer {
	return &MessageEventConsumer{
		consumer: kafka.NewConsumer(brokers, groupID, TopicMessagingEvents, logger),
		notifier: notifier,
		logger:   logger,
	}
}

// Start consumes messaging events until the context is cancelled.
func (c *MessageEventConsumer) Start(ctx context.Context) error {
	c.logger.Info("starting message event consumer", zap.String("topic", TopicMessagingEvents))
	return c.consumer.Consume(ctx, c.handleMessage)
}

func (c *MessageEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Warn("skipping malformed messaging event",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return nil
	}

	if cloudEvent.Type != MessageSent {
		return nil
	}

	var evt MessageSentEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Warn("skipping messaging event with malformed data",
			zap.String("event_id", cloudEvent.ID),
			zap.Error(err),
		)
		return nil
	}

	title := "New Message"
	message := fmt.Sprintf("%s sent you a message", evt.SenderName)
	if evt.Preview != "" {
		message = fmt.Sprintf("%s: %s", evt.SenderName, evt.Preview)
	}

	bookingID := evt.BookingID
	if _, err := c.notifier.Create(ctx, evt.ReceiverID, notification.TypeMessage, title, message, &bookingID); err != nil {
		return fmt.Errorf("failed to create message notification: %w", err)
	}

	return nil
}

// Close closes the underlying Kafka consumer.
func (c *MessageEventConsumer) Close() error {
	return c.consumer.Close()
}
