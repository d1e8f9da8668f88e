package domain

import (
	"strings"

	"github.com/google/uuid"
)

type CurrentType string

const (
	CurrentTypeAC CurrentType = "AC"
	CurrentTypeDC CurrentType = "DC"
)

// ChargingStationType declares the shape every station of that type must have,
// most importantly PlugCount: stations of this type always carry exactly
// PlugCount connectors.
type ChargingStationType struct {
	ID          uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string            `json:"name" gorm:"uniqueIndex;not null"`
	PlugCount   int               `json:"plug_count" gorm:"not null"`
	Efficiency  float64           `json:"efficiency" gorm:"not null"`
	CurrentType CurrentType       `json:"current_type" gorm:"not null"`
	Stations    []ChargingStation `json:"charging_stations,omitempty" gorm:"foreignKey:TypeID"`
}

func (ChargingStationType) TableName() string { return "charging_station_types" }

// Validate performs the schema-level field checks that must pass before any
// Store round-trip.
func (t *ChargingStationType) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return NewConstraintViolation("Charging Station Type name must not be empty.")
	}
	if t.PlugCount <= 0 {
		return NewConstraintViolation("plug_count must be greater than 0.")
	}
	if t.Efficiency < 0 || t.Efficiency > 100 {
		return NewConstraintViolation("efficiency must be between 0 and 100.")
	}
	if t.CurrentType != CurrentTypeAC && t.CurrentType != CurrentTypeDC {
		return NewConstraintViolation("current_type must be either AC or DC.")
	}
	return nil
}
