package domain

import (
	"net/netip"

	"github.com/google/uuid"
)

// ChargingStation owns its connectors: create and update always replace the
// whole connector set, and deleting the station deletes them with it.
type ChargingStation struct {
	ID              uuid.UUID            `json:"id" gorm:"type:uuid;primaryKey"`
	Name            string               `json:"name" gorm:"uniqueIndex;not null"`
	DeviceID        uuid.UUID            `json:"device_id" gorm:"type:uuid;uniqueIndex;not null"`
	IPAddress       string               `json:"ip_address" gorm:"column:ip_address;uniqueIndex;not null"`
	FirmwareVersion string               `json:"firmware_version" gorm:"not null"`
	TypeID          uuid.UUID            `json:"type_id" gorm:"type:uuid;not null;index"`
	Type            *ChargingStationType `json:"type,omitempty" gorm:"foreignKey:TypeID"`
	Connectors      []Connector          `json:"connectors" gorm:"foreignKey:ChargingStationID"`
}

func (ChargingStation) TableName() string { return "charging_stations" }

func (s *ChargingStation) Validate() error {
	if _, err := netip.ParseAddr(s.IPAddress); err != nil {
		return NewConstraintViolation("Invalid IP address format.")
	}
	return nil
}

// Connector may exist unattached; ChargingStationID is a weak, nullable
// reference when the connector is created standalone. Name is unique across
// the whole system, not just per station.
type Connector struct {
	ID                uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name              string     `json:"name" gorm:"uniqueIndex;not null"`
	Priority          bool       `json:"priority" gorm:"not null;default:false"`
	ChargingStationID *uuid.UUID `json:"charging_station_id" gorm:"type:uuid;index"`
}

func (Connector) TableName() string { return "connectors" }
