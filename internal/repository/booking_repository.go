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
	bookingDomain "github.com/petstay/service-booking/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BookingNumber       string          `gorm:"uniqueIndex;not null;size:20"`
	OwnerID             uuid.UUID       `gorm:"type:uuid;index;not null"`
	HostID              uuid.UUID       `gorm:"type:uuid;index;not null"`
	PetIDs              json.RawMessage `gorm:"type:jsonb;not null"`
	CheckInDate         time.Time       `gorm:"not null"`
	CheckOutDate        time.Time       `gorm:"not null"`
	DropOffTime         string          `gorm:"size:5"`
	PickUpTime          string          `gorm:"size:5"`
	SpecialInstructions string          `gorm:"size:1000"`
	EmergencyPermission bool            `gorm:"not null;default:false"`
	Status              string          `gorm:"not null;size:30;index"`
	RejectionReason     string          `gorm:"size:500"`

	OwnerConfirmedDropoff   bool `gorm:"not null;default:false"`
	HostConfirmedReceiving  bool `gorm:"not null;default:false"`
	HostConfirmedCompletion bool `gorm:"not null;default:false"`
	OwnerConfirmedPickup    bool `gorm:"not null;default:false"`

	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByNumber retrieves a booking by its booking number.
func (r *GormBookingRepository) FindByNumber(ctx context.Context, number string) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("booking_number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", number)
		}
		return nil, fmt.Errorf("failed to find booking by number: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByOwnerID retrieves bookings for a specific owner with pagination.
func (r *GormBookingRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Where("owner_id = ?", ownerID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count owner bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find owner bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// FindByHostID retrieves bookings for a specific host with pagination.
func (r *GormBookingRepository) FindByHostID(ctx context.Context, hostID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Where("host_id = ?", hostID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count host bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find host bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// FindCompletedByHostID retrieves a host's completed bookings, earliest
// completed first.
func (r *GormBookingRepository) FindCompletedByHostID(ctx context.Context, hostID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("host_id = ? AND status = ?", hostID, string(bookingDomain.StatusCompleted)).
		Order("updated_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find completed host bookings: %w", err)
	}
	return toDomainBookings(models)
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model, err := toBookingModel(bk)
	if err != nil {
		return fmt.Errorf("failed to convert booking to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model, err := toBookingModel(bk)
	if err != nil {
		return fmt.Errorf("failed to convert booking to model: %w", err)
	}

	// Optimistic locking: only update if the version matches (current version - 1 since IncrementVersion was called)
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":                    model.Status,
			"rejection_reason":          model.RejectionReason,
			"owner_confirmed_dropoff":   model.OwnerConfirmedDropoff,
			"host_confirmed_receiving":  model.HostConfirmedReceiving,
			"host_confirmed_completion": model.HostConfirmedCompletion,
			"owner_confirmed_pickup":    model.OwnerConfirmedPickup,
			"version":                   model.Version,
			"updated_at":                model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}

	return nil
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) (*BookingModel, error) {
	petIDsJSON, err := json.Marshal(bk.PetIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pet IDs: %w", err)
	}

	return &BookingModel{
		ID:                      bk.ID(),
		BookingNumber:           bk.BookingNumber(),
		OwnerID:                 bk.OwnerID(),
		HostID:                  bk.HostID(),
		PetIDs:                  petIDsJSON,
		CheckInDate:             bk.CheckInDate(),
		CheckOutDate:            bk.CheckOutDate(),
		DropOffTime:             bk.DropOffTime(),
		PickUpTime:              bk.PickUpTime(),
		SpecialInstructions:     bk.SpecialInstructions(),
		EmergencyPermission:     bk.EmergencyPermission(),
		Status:                  string(bk.Status()),
		RejectionReason:         bk.RejectionReason(),
		OwnerConfirmedDropoff:   bk.OwnerConfirmedDropoff(),
		HostConfirmedReceiving:  bk.HostConfirmedReceiving(),
		HostConfirmedCompletion: bk.HostConfirmedCompletion(),
		OwnerConfirmedPickup:    bk.OwnerConfirmedPickup(),
		Version:                 bk.Version(),
		CreatedAt:               bk.CreatedAt(),
		UpdatedAt:               bk.UpdatedAt(),
	}, nil
}

func toDomainBooking(model *BookingModel) (*bookingDomain.Booking, error) {
	var petIDs []uuid.UUID
	if err := json.Unmarshal(model.PetIDs, &petIDs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pet IDs: %w", err)
	}

	return bookingDomain.Reconstruct(
		model.ID,
		model.BookingNumber,
		model.OwnerID,
		model.HostID,
		petIDs,
		model.CheckInDate,
		model.CheckOutDate,
		model.DropOffTime,
		model.PickUpTime,
		model.SpecialInstructions,
		model.EmergencyPermission,
		bookingDomain.BookingStatus(model.Status),
		model.RejectionReason,
		model.OwnerConfirmedDropoff,
		model.HostConfirmedReceiving,
		model.HostConfirmedCompletion,
		model.OwnerConfirmedPickup,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
