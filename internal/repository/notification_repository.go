package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petstay/service-booking/internal/domain"
	notifDomain "github.com/petstay/service-booking/internal/domain/notification"
)

// NotificationModel is the GORM model for the notifications table.
type NotificationModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	Type      string     `gorm:"not null;size:30"`
	Title     string     `gorm:"not null;size:200"`
	Message   string     `gorm:"size:1000"`
	BookingID *uuid.UUID `gorm:"type:uuid;index"`
	IsRead    bool       `gorm:"not null;default:false;index"`
	CreatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (NotificationModel) TableName() string {
	return "notifications"
}

// GormNotificationRepository is the GORM-based implementation of
// notification.Repository.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindByID retrieves a notification by its unique identifier.
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notifDomain.Notification, error) {
	var model NotificationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Notification", id.String())
		}
		return nil, fmt.Errorf("failed to find notification by ID: %w", err)
	}
	return toDomainNotification(&model)
}

// FindByUserID returns a user's notifications, newest first, with pagination.
func (r *GormNotificationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*notifDomain.Notification, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&NotificationModel{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var models []NotificationModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find notifications: %w", err)
	}

	notifications := make([]*notifDomain.Notification, len(models))
	for i, m := range models {
		n, err := toDomainNotification(&m)
		if err != nil {
			return nil, 0, err
		}
		notifications[i] = n
	}
	return notifications, total, nil
}

// CountUnread returns the number of unread notifications for a user.
func (r *GormNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// Save persists a new notification.
func (r *GormNotificationRepository) Save(ctx context.Context, n *notifDomain.Notification) error {
	model := &NotificationModel{
		ID:        n.ID(),
		UserID:    n.UserID(),
		Type:      string(n.Type()),
		Title:     n.Title(),
		Message:   n.Message(),
		BookingID: n.BookingID(),
		IsRead:    n.IsRead(),
		CreatedAt: n.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

// MarkRead sets the read flag on a single notification.
func (r *GormNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&NotificationModel{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Notification", id.String())
	}
	return nil
}

// MarkAllRead sets the read flag on all of a user's notifications.
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Model(&NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func toDomainNotification(model *NotificationModel) (*notifDomain.Notification, error) {
	notifType, err := notifDomain.ParseType(model.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to convert notification %s: %w", model.ID, err)
	}

	return notifDomain.Reconstruct(
		model.ID,
		model.UserID,
		notifType,
		model.Title,
		model.Message,
		model.BookingID,
		model.IsRead,
		model.CreatedAt,
	), nil
}
