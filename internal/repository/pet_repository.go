package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petstay/service-booking/internal/domain"
	petDomain "github.com/petstay/service-booking/internal/domain/pet"
)

// PetModel is the GORM model for the pets table.
type PetModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID             uuid.UUID `gorm:"type:uuid;index;not null"`
	Name                string    `gorm:"not null;size:100"`
	Species             string    `gorm:"not null;size:50"`
	Breed               string    `gorm:"size:100"`
	AgeYears            int       `gorm:"not null;default:0"`
	AgeMonths           int       `gorm:"not null;default:0"`
	Gender              string    `gorm:"size:10"`
	WeightKg            float64   `gorm:"not null;default:0"`
	IsVaccinated        bool      `gorm:"not null;default:false"`
	IsNeutered          bool      `gorm:"not null;default:false"`
	FriendlyWithPets    bool      `gorm:"not null;default:false"`
	FriendlyWithHumans  bool      `gorm:"not null;default:false"`
	MedicalConditions   string    `gorm:"size:1000"`
	Medicines           string    `gorm:"size:1000"`
	FoodType            string    `gorm:"size:200"`
	FeedingSchedule     string    `gorm:"size:500"`
	WalkingSchedule     string    `gorm:"size:500"`
	SpecialInstructions string    `gorm:"size:1000"`
	PhotoURL            string    `gorm:"size:500"`
	Status              string    `gorm:"not null;size:20;index"`
	Version             int64     `gorm:"not null;default:1"`
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PetModel) TableName() string {
	return "pets"
}

// GormPetRepository is the GORM-based implementation of pet.Repository.
type GormPetRepository struct {
	db *gorm.DB
}

// NewGormPetRepository creates a new GormPetRepository.
func NewGormPetRepository(db *gorm.DB) *GormPetRepository {
	return &GormPetRepository{db: db}
}

// FindByID retrieves a pet by its unique identifier.
func (r *GormPetRepository) FindByID(ctx context.Context, id uuid.UUID) (*petDomain.Pet, error) {
	var model PetModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Pet", id.String())
		}
		return nil, fmt.Errorf("failed to find pet by ID: %w", err)
	}
	return toDomainPet(&model), nil
}

// FindByIDs retrieves all pets matching the given identifiers.
func (r *GormPetRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*petDomain.Pet, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []PetModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find pets by IDs: %w", err)
	}

	pets := make([]*petDomain.Pet, len(models))
	for i, m := range models {
		pets[i] = toDomainPet(&m)
	}
	return pets, nil
}

// FindByOwnerID retrieves all pets registered by an owner.
func (r *GormPetRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*petDomain.Pet, error) {
	var models []PetModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find owner pets: %w", err)
	}

	pets := make([]*petDomain.Pet, len(models))
	for i, m := range models {
		pets[i] = toDomainPet(&m)
	}
	return pets, nil
}

// Save persists a new pet.
func (r *GormPetRepository) Save(ctx context.Context, p *petDomain.Pet) error {
	if err := r.db.WithContext(ctx).Create(toPetModel(p)).Error; err != nil {
		return fmt.Errorf("failed to save pet: %w", err)
	}
	return nil
}

// Update persists changes to an existing pet with optimistic locking.
func (r *GormPetRepository) Update(ctx context.Context, p *petDomain.Pet) error {
	model := toPetModel(p)

	expectedVersion := p.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&PetModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":                 model.Name,
			"species":              model.Species,
			"breed":                model.Breed,
			"age_years":            model.AgeYears,
			"age_months":           model.AgeMonths,
			"gender":               model.Gender,
			"weight_kg":            model.WeightKg,
			"is_vaccinated":        model.IsVaccinated,
			"is_neutered":          model.IsNeutered,
			"friendly_with_pets":   model.FriendlyWithPets,
			"friendly_with_humans": model.FriendlyWithHumans,
			"medical_conditions":   model.MedicalConditions,
			"medicines":            model.Medicines,
			"food_type":            model.FoodType,
			"feeding_schedule":     model.FeedingSchedule,
			"walking_schedule":     model.WalkingSchedule,
			"special_instructions": model.SpecialInstructions,
			"photo_url":            model.PhotoURL,
			"status":               model.Status,
			"version":              model.Version,
			"updated_at":           model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update pet: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.NewConflictError("pet was modified by another transaction")
	}

	return nil
}

// --- Conversion Helpers ---

func toPetModel(p *petDomain.Pet) *PetModel {
	return &PetModel{
		ID:                  p.ID(),
		OwnerID:             p.OwnerID(),
		Name:                p.Name(),
		Species:             p.Species(),
		Breed:               p.Breed(),
		AgeYears:            p.AgeYears(),
		AgeMonths:           p.AgeMonths(),
		Gender:              p.Gender(),
		WeightKg:            p.WeightKg(),
		IsVaccinated:        p.IsVaccinated(),
		IsNeutered:          p.IsNeutered(),
		FriendlyWithPets:    p.FriendlyWithPets(),
		FriendlyWithHumans:  p.FriendlyWithHumans(),
		MedicalConditions:   p.MedicalConditions(),
		Medicines:           p.Medicines(),
		FoodType:            p.FoodType(),
		FeedingSchedule:     p.FeedingSchedule(),
		WalkingSchedule:     p.WalkingSchedule(),
		SpecialInstructions: p.SpecialInstructions(),
		PhotoURL:            p.PhotoURL(),
		Status:              string(p.Status()),
		Version:             p.Version(),
		CreatedAt:           p.CreatedAt(),
		UpdatedAt:           p.UpdatedAt(),
	}
}

func toDomainPet(model *PetModel) *petDomain.Pet {
	return petDomain.Reconstruct(
		model.ID,
		model.OwnerID,
		model.Name,
		model.Species,
		model.Breed,
		model.AgeYears,
		model.AgeMonths,
		model.Gender,
		model.WeightKg,
		model.IsVaccinated,
		model.IsNeutered,
		model.FriendlyWithPets,
		model.FriendlyWithHumans,
		model.MedicalConditions,
		model.Medicines,
		model.FoodType,
		model.FeedingSchedule,
		model.WalkingSchedule,
		model.SpecialInstructions,
		model.PhotoURL,
		petDomain.PetStatus(model.Status),
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
