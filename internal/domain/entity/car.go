package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FuelType represents the fuel a car runs on.
type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelHybrid   FuelType = "hybrid"
	FuelElectric FuelType = "electric"
	FuelLPG      FuelType = "lpg"
	FuelCNG      FuelType = "cng"
)

// IsValid reports whether the fuel type is known.
func (f FuelType) IsValid() bool {
	switch f {
	case FuelPetrol, FuelDiesel, FuelHybrid, FuelElectric, FuelLPG, FuelCNG:
		return true
	}
	return false
}

// Gearbox represents the transmission type of a car.
type Gearbox string

const (
	GearboxManual    Gearbox = "manual"
	GearboxAutomatic Gearbox = "automatic"
)

// IsValid reports whether the gearbox is known.
func (g Gearbox) IsValid() bool {
	return g == GearboxManual || g == GearboxAutomatic
}

const (
	// MinCarYear is the oldest accepted model year.
	MinCarYear = 1950
	// VINLength is the exact length of a vehicle identification number.
	VINLength = 17
)

// MaxCarYear returns the newest accepted model year for the given moment.
func MaxCarYear(now time.Time) int {
	return now.Year() + 1
}

// Car represents a vehicle owned by a user.
type Car struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Brand     string
	Model     string
	Year      int
	Fuel      FuelType
	Gearbox   Gearbox
	VIN       *string
	PhotoURL  *string
	Tags      []Tag
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCar creates a new Car owned by ownerID.
func NewCar(ownerID uuid.UUID, brand, model string, year int, fuel FuelType, gearbox Gearbox) *Car {
	now := time.Now().UTC()
	return &Car{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Brand:     brand,
		Model:     model,
		Year:      year,
		Fuel:      fuel,
		Gearbox:   gearbox,
		Tags:      []Tag{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Label returns the human readable car name, e.g. "Skoda Octavia (2019)".
func (c *Car) Label() string {
	return CarLabel(c.Brand, c.Model, c.Year)
}

// CarLabel formats a car name from its parts.
func CarLabel(brand, model string, year int) string {
	return fmt.Sprintf("%s %s (%d)", brand, model, year)
}
