package pet

import (
	"time"

	"github.com/google/uuid"

	"github.com/petstay/service-booking/internal/domain"
)

// PetStatus represents the lifecycle state of a pet profile.
type PetStatus string

const (
	PetStatusActive   PetStatus = "active"
	PetStatusArchived PetStatus = "archived"
)

// Pet is the aggregate root for a pet profile registered by an owner.
type Pet struct {
	id                  uuid.UUID
	ownerID             uuid.UUID
	name                string
	species             string
	breed               string
	ageYears            int
	ageMonths           int
	gender              string
	weightKg            float64
	isVaccinated        bool
	isNeutered          bool
	friendlyWithPets    bool
	friendlyWithHumans  bool
	medicalConditions   string
	medicines           string
	foodType            string
	feedingSchedule     string
	walkingSchedule     string
	specialInstructions string
	photoURL            string
	status              PetStatus
	version             int64
	createdAt           time.Time
	updatedAt           time.Time
}

// NewPet creates a new active pet profile with validated fields.
func NewPet(
	ownerID uuid.UUID,
	name, species, breed string,
	ageYears, ageMonths int,
	gender string,
	weightKg float64,
	isVaccinated, isNeutered, friendlyWithPets, friendlyWithHumans bool,
	medicalConditions, medicines, foodType, feedingSchedule, walkingSchedule, specialInstructions, photoURL string,
) (*Pet, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("pet name is required")
	}
	if species == "" {
		return nil, domain.NewValidationError("pet species is required")
	}
	if weightKg < 0 {
		return nil, domain.NewValidationError("pet weight must not be negative")
	}

	now := time.Now().UTC()
	return &Pet{
		id:                  uuid.New(),
		ownerID:             ownerID,
		name:                name,
		species:             species,
		breed:               breed,
		ageYears:            ageYears,
		ageMonths:           ageMonths,
		gender:              gender,
		weightKg:            weightKg,
		isVaccinated:        isVaccinated,
		isNeutered:          isNeutered,
		friendlyWithPets:    friendlyWithPets,
		friendlyWithHumans:  friendlyWithHumans,
		medicalConditions:   medicalConditions,
		medicines:           medicines,
		foodType:            foodType,
		feedingSchedule:     feedingSchedule,
		walkingSchedule:     walkingSchedule,
		specialInstructions: specialInstructions,
		photoURL:            photoURL,
		status:              PetStatusActive,
		version:             1,
		createdAt:           now,
		updatedAt:           now,
	}, nil
}

// Reconstruct rebuilds a Pet from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	name, species, breed string,
	ageYears, ageMonths int,
	gender string,
	weightKg float64,
	isVaccinated, isNeutered, friendlyWithPets, friendlyWithHumans bool,
	medicalConditions, medicines, foodType, feedingSchedule, walkingSchedule, specialInstructions, photoURL string,
	status PetStatus,
	version int64,
	createdAt, updatedAt time.Time,
) *Pet {
	return &Pet{
		id:                  id,
		ownerID:             ownerID,
		name:                name,
		species:             species,
		breed:               breed,
		ageYears:            ageYears,
		ageMonths:           ageMonths,
		gender:              gender,
		weightKg:            weightKg,
		isVaccinated:        isVaccinated,
		isNeutered:          isNeutered,
		friendlyWithPets:    friendlyWithPets,
		friendlyWithHumans:  friendlyWithHumans,
		medicalConditions:   medicalConditions,
		medicines:           medicines,
		foodType:            foodType,
		feedingSchedule:     feedingSchedule,
		walkingSchedule:     walkingSchedule,
		specialInstructions: specialInstructions,
		photoURL:            photoURL,
		status:              status,
		version:             version,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

// --- Getters ---

func (p *Pet) ID() uuid.UUID               { return p.id }
func (p *Pet) OwnerID() uuid.UUID          { return p.ownerID }
func (p *Pet) Name() string                { return p.name }
func (p *Pet) Species() string             { return p.species }
func (p *Pet) Breed() string               { return p.breed }
func (p *Pet) AgeYears() int               { return p.ageYears }
func (p *Pet) AgeMonths() int              { return p.ageMonths }
func (p *Pet) Gender() string              { return p.gender }
func (p *Pet) WeightKg() float64           { return p.weightKg }
func (p *Pet) IsVaccinated() bool          { return p.isVaccinated }
func (p *Pet) IsNeutered() bool            { return p.isNeutered }
func (p *Pet) FriendlyWithPets() bool      { return p.friendlyWithPets }
func (p *Pet) FriendlyWithHumans() bool    { return p.friendlyWithHumans }
func (p *Pet) MedicalConditions() string   { return p.medicalConditions }
func (p *Pet) Medicines() string           { return p.medicines }
func (p *Pet) FoodType() string            { return p.foodType }
func (p *Pet) FeedingSchedule() string     { return p.feedingSchedule }
func (p *Pet) WalkingSchedule() string     { return p.walkingSchedule }
func (p *Pet) SpecialInstructions() string { return p.specialInstructions }
func (p *Pet) PhotoURL() string            { return p.photoURL }
func (p *Pet) Status() PetStatus           { return p.status }
func (p *Pet) Version() int64              { return p.version }
func (p *Pet) CreatedAt() time.Time        { return p.createdAt }
func (p *Pet) UpdatedAt() time.Time        { return p.updatedAt }

// --- Behavior ---

// IsOwnedBy checks if the pet belongs to the given owner.
func (p *Pet) IsOwnedBy(ownerID uuid.UUID) bool {
	return p.ownerID == ownerID
}

// IsActive returns true if the pet profile is active.
func (p *Pet) IsActive() bool {
	return p.status == PetStatusActive
}

// UpdateProfile applies partial updates to the pet profile. Empty strings and
// non-positive numbers leave the existing value unchanged.
func (p *Pet) UpdateProfile(
	name, species, breed string,
	ageYears, ageMonths int,
	gender string,
	weightKg float64,
	medicalConditions, medicines, foodType, feedingSchedule, walkingSchedule, specialInstructions, photoURL string,
) {
	if name != "" {
		p.name = name
	}
	if species != "" {
		p.species = species
	}
	if breed != "" {
		p.breed = breed
	}
	if ageYears > 0 {
		p.ageYears = ageYears
	}
	if ageMonths > 0 {
		p.ageMonths = ageMonths
	}
	if gender != "" {
		p.gender = gender
	}
	if weightKg > 0 {
		p.weightKg = weightKg
	}
	if medicalConditions != "" {
		p.medicalConditions = medicalConditions
	}
	if medicines != "" {
		p.medicines = medicines
	}
	if foodType != "" {
		p.foodType = foodType
	}
	if feedingSchedule != "" {
		p.feedingSchedule = feedingSchedule
	}
	if walkingSchedule != "" {
		p.walkingSchedule = walkingSchedule
	}
	if specialInstructions != "" {
		p.specialInstructions = specialInstructions
	}
	if photoURL != "" {
		p.photoURL = photoURL
	}
	p.version++
	p.updatedAt = time.Now().UTC()
}

// SetCareFlags updates the boolean care attributes.
func (p *Pet) SetCareFlags(isVaccinated, isNeutered, friendlyWithPets, friendlyWithHumans bool) {
	p.isVaccinated = isVaccinated
	p.isNeutered = isNeutered
	p.friendlyWithPets = friendlyWithPets
	p.friendlyWithHumans = friendlyWithHumans
	p.version++
	p.updatedAt = time.Now().UTC()
}

// Archive marks the pet profile as archived.
func (p *Pet) Archive() {
	p.status = PetStatusArchived
	p.version++
	p.updatedAt = time.Now().UTC()
}
