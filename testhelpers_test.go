//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/petstay/service-booking/internal/application"
	bookingDomain "github.com/petstay/service-booking/internal/domain/booking"
	bookingEvents "github.com/petstay/service-booking/internal/events"
	"github.com/petstay/service-booking/internal/kafka"
	"github.com/petstay/service-booking/internal/notify"
	"github.com/petstay/service-booking/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// bookingStack holds wired-up booking service components.
type bookingStack struct {
	Service          *application.BookingService
	Notifier         *notify.Notifier
	ReminderConsumer *bookingEvents.ReminderEventConsumer
	MessageConsumer  *bookingEvents.MessageEventConsumer
	CleanupProducer  func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	// Start PostgreSQL container with log-based wait strategy.
	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_booking",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_booking sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.BookingModel{},
		&repository.PetModel{},
		&repository.ReviewModel{},
		&repository.NotificationModel{},
		&repository.AvailabilityModel{},
	))

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	// Pre-create required topics.
	createTopics(t, kafkaBrokers,
		bookingEvents.TopicBookingEvents,
		bookingEvents.TopicNotificationEvents,
		bookingEvents.TopicReminderEvents,
		bookingEvents.TopicMessagingEvents,
	)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupBookingStack wires up the full booking service stack.
func setupBookingStack(t *testing.T, db *gorm.DB, brokers []string) *bookingStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	bookingRepo := repository.NewGormBookingRepository(db)
	petRepo := repository.NewGormPetRepository(db)
	notificationRepo := repository.NewGormNotificationRepository(db)

	producer := kafka.NewProducer(brokers, logger)
	notifier := notify.NewNotifier(notificationRepo, producer, logger)
	bookingSvc := application.NewBookingService(bookingRepo, petRepo, notifier, producer, logger)

	groupID := fmt.Sprintf("test-booking-%s", uuid.New().String()[:8])
	reminderConsumer := bookingEvents.NewReminderEventConsumer(brokers, groupID, notifier, logger)
	messageConsumer := bookingEvents.NewMessageEventConsumer(brokers, groupID+"-msg", notifier, logger)

	return &bookingStack{
		Service:          bookingSvc,
		Notifier:         notifier,
		ReminderConsumer: reminderConsumer,
		MessageConsumer:  messageConsumer,
		CleanupProducer:  func() { _ = producer.Close() },
	}
}

// seedPet inserts an active pet owned by ownerID.
func seedPet(t *testing.T, db *gorm.DB, ownerID uuid.UUID) uuid.UUID {
	t.Helper()
	now := time.Now().UTC()

	model := repository.PetModel{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      "TestPet",
		Species:   "dog",
		Breed:     "corgi",
		AgeYears:  3,
		WeightKg:  11.0,
		Status:    "active",
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed pet")
	return model.ID
}

// seedBookingInStatus inserts a booking in the given status for testing.
func seedBookingInStatus(t *testing.T, db *gorm.DB, bookingID, ownerID, hostID uuid.UUID, status bookingDomain.BookingStatus) {
	t.Helper()
	now := time.Now().UTC()

	model := repository.BookingModel{
		ID:            bookingID,
		BookingNumber: fmt.Sprintf("BK-INT%s", uuid.New().String()[:3]),
		OwnerID:       ownerID,
		HostID:        hostID,
		PetIDs:        []byte(fmt.Sprintf(`["%s"]`, uuid.New())),
		CheckInDate:   now.AddDate(0, 0, 1),
		CheckOutDate:  now.AddDate(0, 0, 5),
		Status:        string(status),
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed booking")
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType string, data interface{}) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := kafka.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := kafka.NewCloudEvent(source, eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, ce)
	require.NoError(t, err, "failed to publish event")
}

// waitForNotification polls the notifications table until a row of the given
// type exists for the user.
func waitForNotification(t *testing.T, db *gorm.DB, userID uuid.UUID, notifType string, timeout time.Duration) repository.NotificationModel {
	t.Helper()
	var result repository.NotificationModel
	require.Eventually(t, func() bool {
		var model repository.NotificationModel
		err := db.Where("user_id = ? AND type = ?", userID, notifType).First(&model).Error
		if err != nil {
			return false
		}
		result = model
		return true
	}, timeout, 200*time.Millisecond, "notification of type %s did not appear", notifType)
	return result
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
