package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petstay/service-booking/internal/domain"
	availDomain "github.com/petstay/service-booking/internal/domain/availability"
)

// AvailabilityModel is the GORM model for the host_availability table.
type AvailabilityModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	HostID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	AvailableFrom time.Time       `gorm:"not null"`
	AvailableTo   time.Time       `gorm:"not null"`
	MaxPets       int             `gorm:"not null;default:1"`
	BlockedDates  json.RawMessage `gorm:"type:jsonb"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (AvailabilityModel) TableName() string {
	return "host_availability"
}

// GormAvailabilityRepository is the GORM-based implementation of
// availability.Repository.
type GormAvailabilityRepository struct {
	db *gorm.DB
}

// NewGormAvailabilityRepository creates a new GormAvailabilityRepository.
func NewGormAvailabilityRepository(db *gorm.DB) *GormAvailabilityRepository {
	return &GormAvailabilityRepository{db: db}
}

// FindByID retrieves an availability window by its unique identifier.
func (r *GormAvailabilityRepository) FindByID(ctx context.Context, id uuid.UUID) (*availDomain.Availability, error) {
	var model AvailabilityModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Availability", id.String())
		}
		return nil, fmt.Errorf("failed to find availability by ID: %w", err)
	}
	return toDomainAvailability(&model)
}

// FindByHostID returns all availability windows of a host, earliest first.
func (r *GormAvailabilityRepository) FindByHostID(ctx context.Context, hostID uuid.UUID) ([]*availDomain.Availability, error) {
	var models []AvailabilityModel
	if err := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("available_from ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find host availability: %w", err)
	}

	windows := make([]*availDomain.Availability, len(models))
	for i, m := range models {
		w, err := toDomainAvailability(&m)
		if err != nil {
			return nil, err
		}
		windows[i] = w
	}
	return windows, nil
}

// Save persists a new availability window.
func (r *GormAvailabilityRepository) Save(ctx context.Context, a *availDomain.Availability) error {
	model, err := toAvailabilityModel(a)
	if err != nil {
		return fmt.Errorf("failed to convert availability to model: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save availability: %w", err)
	}
	return nil
}

// Delete removes an availability window.
func (r *GormAvailabilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&AvailabilityModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete availability: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Availability", id.String())
	}
	return nil
}

// --- Conversion Helpers ---

func toAvailabilityModel(a *availDomain.Availability) (*AvailabilityModel, error) {
	blockedJSON, err := json.Marshal(a.BlockedDates())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal blocked dates: %w", err)
	}

	return &AvailabilityModel{
		ID:            a.ID(),
		HostID:        a.HostID(),
		AvailableFrom: a.AvailableFrom(),
		AvailableTo:   a.AvailableTo(),
		MaxPets:       a.MaxPets(),
		BlockedDates:  blockedJSON,
		CreatedAt:     a.CreatedAt(),
		UpdatedAt:     a.UpdatedAt(),
	}, nil
}

func toDomainAvailability(model *AvailabilityModel) (*availDomain.Availability, error) {
	var blocked []time.Time
	if len(model.BlockedDates) > 0 {
		if err := json.Unmarshal(model.BlockedDates, &blocked); err != nil {
			return nil, fmt.Errorf("failed to unmarshal blocked dates: %w", err)
		}
	}

	return availDomain.Reconstruct(
		model.ID,
		model.HostID,
		model.AvailableFrom,
		model.AvailableTo,
		model.MaxPets,
		blocked,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}
