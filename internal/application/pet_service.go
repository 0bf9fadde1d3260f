package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petstay/service-booking/internal/domain"
	petDomain "github.com/petstay/service-booking/internal/domain/pet"
)

// CreatePetRequest holds the data needed to register a pet profile.
type CreatePetRequest struct {
	Name                string  `json:"name" binding:"required"`
	Species             string  `json:"species" binding:"required"`
	Breed               string  `json:"breed"`
	AgeYears            int     `json:"age_years"`
	AgeMonths           int     `json:"age_months"`
	Gender              string  `json:"gender"`
	WeightKg            float64 `json:"weight_kg"`
	IsVaccinated        bool    `json:"is_vaccinated"`
	IsNeutered          bool    `json:"is_neutered"`
	FriendlyWithPets    bool    `json:"friendly_with_pets"`
	FriendlyWithHumans  bool    `json:"friendly_with_humans"`
	MedicalConditions   string  `json:"medical_conditions"`
	Medicines           string  `json:"medicines"`
	FoodType            string  `json:"food_type"`
	FeedingSchedule     string  `json:"feeding_schedule"`
	WalkingSchedule     string  `json:"walking_schedule"`
	SpecialInstructions string  `json:"special_instructions"`
	PhotoURL            string  `json:"photo_url"`
}

// UpdatePetRequest holds partial profile updates. Zero values leave the
// stored value unchanged; care flags are updated only when provided.
type UpdatePetRequest struct {
	Name                string  `json:"name"`
	Species             string  `json:"species"`
	Breed               string  `json:"breed"`
	AgeYears            int     `json:"age_years"`
	AgeMonths           int     `json:"age_months"`
	Gender              string  `json:"gender"`
	WeightKg            float64 `json:"weight_kg"`
	IsVaccinated        *bool   `json:"is_vaccinated"`
	IsNeutered          *bool   `json:"is_neutered"`
	FriendlyWithPets    *bool   `json:"friendly_with_pets"`
	FriendlyWithHumans  *bool   `json:"friendly_with_humans"`
	MedicalConditions   string  `json:"medical_conditions"`
	Medicines           string  `json:"medicines"`
	FoodType            string  `json:"food_type"`
	FeedingSchedule     string  `json:"feeding_schedule"`
	WalkingSchedule     string  `json:"walking_schedule"`
	SpecialInstructions string  `json:"special_instructions"`
	PhotoURL            string  `json:"photo_url"`
}

// PetDTO is the response representation of a pet profile.
type PetDTO struct {
	ID                  uuid.UUID `json:"id"`
	OwnerID             uuid.UUID `json:"owner_id"`
	Name                string    `json:"name"`
	Species             string    `json:"species"`
	Breed               string    `json:"breed,omitempty"`
	AgeYears            int       `json:"age_years"`
	AgeMonths           int       `json:"age_months"`
	Gender              string    `json:"gender,omitempty"`
	WeightKg            float64   `json:"weight_kg"`
	IsVaccinated        bool      `json:"is_vaccinated"`
	IsNeutered          bool      `json:"is_neutered"`
	FriendlyWithPets    bool      `json:"friendly_with_pets"`
	FriendlyWithHumans  bool      `json:"friendly_with_humans"`
	MedicalConditions   string    `json:"medical_conditions,omitempty"`
	Medicines           string    `json:"medicines,omitempty"`
	FoodType            string    `json:"food_type,omitempty"`
	FeedingSchedule     string    `json:"feeding_schedule,omitempty"`
	WalkingSchedule     string    `json:"walking_schedule,omitempty"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
	PhotoURL            string    `json:"photo_url,omitempty"`
	Status              string    `json:"status"`
	Version             int64     `json:"version"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// PetService manages pet profiles on behalf of their owners.
type PetService struct {
	pets   petDomain.Repository
	logger *zap.Logger
}

// NewPetService creates a new PetService.
func NewPetService(pets petDomain.Repository, logger *zap.Logger) *PetService {
	return &PetService{pets: pets, logger: logger}
}

// CreatePet registers a new pet profile for the given owner.
func (s *PetService) CreatePet(ctx context.Context, ownerID uuid.UUID, req CreatePetRequest) (*PetDTO, error) {
	p, err := petDomain.NewPet(
		ownerID,
		req.Name, req.Species, req.Breed,
		req.AgeYears, req.AgeMonths,
		req.Gender,
		req.WeightKg,
		req.IsVaccinated, req.IsNeutered, req.FriendlyWithPets, req.FriendlyWithHumans,
		req.MedicalConditions, req.Medicines, req.FoodType,
		req.FeedingSchedule, req.WalkingSchedule, req.SpecialInstructions, req.PhotoURL,
	)
	if err != nil {
		return nil, err
	}

	if err := s.pets.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save pet: %w", err)
	}

	result := toPetDTO(p)
	return &result, nil
}

// GetPet retrieves a single pet profile. Only its owner may see it.
func (s *PetService) GetPet(ctx context.Context, petID, ownerID uuid.UUID) (*PetDTO, error) {
	p, err := s.pets.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if !p.IsOwnedBy(ownerID) {
		return nil, domain.NewForbiddenError("pet does not belong to this user")
	}
	result := toPetDTO(p)
	return &result, nil
}

// GetOwnerPets returns all pet profiles registered by an owner.
func (s *PetService) GetOwnerPets(ctx context.Context, ownerID uuid.UUID) ([]PetDTO, error) {
	pets, err := s.pets.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pets: %w", err)
	}
	dtos := make([]PetDTO, len(pets))
	for i, p := range pets {
		dtos[i] = toPetDTO(p)
	}
	return dtos, nil
}

// UpdatePet applies partial updates to an owner's pet profile.
func (s *PetService) UpdatePet(ctx context.Context, petID, ownerID uuid.UUID, req UpdatePetRequest) (*PetDTO, error) {
	p, err := s.pets.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if !p.IsOwnedBy(ownerID) {
		return nil, domain.NewForbiddenError("pet does not belong to this user")
	}

	p.UpdateProfile(
		req.Name, req.Species, req.Breed,
		req.AgeYears, req.AgeMonths,
		req.Gender,
		req.WeightKg,
		req.MedicalConditions, req.Medicines, req.FoodType,
		req.FeedingSchedule, req.WalkingSchedule, req.SpecialInstructions, req.PhotoURL,
	)
	if req.IsVaccinated != nil || req.IsNeutered != nil || req.FriendlyWithPets != nil || req.FriendlyWithHumans != nil {
		p.SetCareFlags(
			boolOr(req.IsVaccinated, p.IsVaccinated()),
			boolOr(req.IsNeutered, p.IsNeutered()),
			boolOr(req.FriendlyWithPets, p.FriendlyWithPets()),
			boolOr(req.FriendlyWithHumans, p.FriendlyWithHumans()),
		)
	}

	if err := s.pets.Update(ctx, p); err != nil {
		return nil, err
	}

	result := toPetDTO(p)
	return &result, nil
}

// ArchivePet archives an owner's pet profile so it can no longer be booked.
func (s *PetService) ArchivePet(ctx context.Context, petID, ownerID uuid.UUID) error {
	p, err := s.pets.FindByID(ctx, petID)
	if err != nil {
		return err
	}
	if !p.IsOwnedBy(ownerID) {
		return domain.NewForbiddenError("pet does not belong to this user")
	}
	if !p.IsActive() {
		return nil
	}

	p.Archive()
	return s.pets.Update(ctx, p)
}

func boolOr(v *bool, fallback bool) bool {
	if v != nil {
		return *v
	}
	return fallback
}

func toPetDTO(p *petDomain.Pet) PetDTO {
	return PetDTO{
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
