package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petstay/service-booking/internal/domain"
	availDomain "github.com/petstay/service-booking/internal/domain/availability"
)

// CreateAvailabilityRequest holds the data for a new host availability window.
type CreateAvailabilityRequest struct {
	AvailableFrom time.Time   `json:"available_from" binding:"required"`
	AvailableTo   time.Time   `json:"available_to" binding:"required"`
	MaxPets       int         `json:"max_pets" binding:"required"`
	BlockedDates  []time.Time `json:"blocked_dates"`
}

// AvailabilityDTO is the response representation of an availability window.
type AvailabilityDTO struct {
	ID            uuid.UUID   `json:"id"`
	HostID        uuid.UUID   `json:"host_id"`
	AvailableFrom time.Time   `json:"available_from"`
	AvailableTo   time.Time   `json:"available_to"`
	MaxPets       int         `json:"max_pets"`
	BlockedDates  []time.Time `json:"blocked_dates,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// AvailabilityService manages host availability windows.
type AvailabilityService struct {
	windows availDomain.Repository
	logger  *zap.Logger
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(windows availDomain.Repository, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{windows: windows, logger: logger}
}

// CreateAvailability opens a new availability window for the given host.
func (s *AvailabilityService) CreateAvailability(ctx context.Context, hostID uuid.UUID, req CreateAvailabilityRequest) (*AvailabilityDTO, error) {
	window, err := availDomain.NewAvailability(hostID, req.AvailableFrom, req.AvailableTo, req.MaxPets, req.BlockedDates)
	if err != nil {
		return nil, err
	}

	if err := s.windows.Save(ctx, window); err != nil {
		return nil, fmt.Errorf("failed to save availability: %w", err)
	}

	result := toAvailabilityDTO(window)
	return &result, nil
}

// GetHostAvailability returns all availability windows of a host.
func (s *AvailabilityService) GetHostAvailability(ctx context.Context, hostID uuid.UUID) ([]AvailabilityDTO, error) {
	windows, err := s.windows.FindByHostID(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}
	dtos := make([]AvailabilityDTO, len(windows))
	for i, w := range windows {
		dtos[i] = toAvailabilityDTO(w)
	}
	return dtos, nil
}

// DeleteAvailability removes a window. Only its host may delete it.
func (s *AvailabilityService) DeleteAvailability(ctx context.Context, windowID, hostID uuid.UUID) error {
	window, err := s.windows.FindByID(ctx, windowID)
	if err != nil {
		return err
	}
	if !window.IsOwnedBy(hostID) {
		return domain.NewForbiddenError("availability window does not belong to this user")
	}
	return s.windows.Delete(ctx, windowID)
}

func toAvailabilityDTO(w *availDomain.Availability) AvailabilityDTO {
	return AvailabilityDTO{
		ID:            w.ID(),
		HostID:        w.HostID(),
		AvailableFrom: w.AvailableFrom(),
		AvailableTo:   w.AvailableTo(),
		MaxPets:       w.MaxPets(),
		BlockedDates:  w.BlockedDates(),
		CreatedAt:     w.CreatedAt(),
		UpdatedAt:     w.UpdatedAt(),
	}
}
