package availability

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for host availability windows.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Availability, error)
	FindByHostID(ctx context.Context, hostID uuid.UUID) ([]*Availability, error)
	Save(ctx context.Context, a *Availability) error
	Delete(ctx context.Context, id uuid.UUID) error
}
