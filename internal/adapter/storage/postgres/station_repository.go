package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gridvolt/stationd/internal/domain"
	"github.com/gridvolt/stationd/internal/ports"
)

type StationRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStationRepository(db *gorm.DB, log *zap.Logger) ports.ChargingStationRepository {
	return &StationRepository{
		db:  db,
		log: log,
	}
}

func (r *StationRepository) CreateWithConnectors(ctx context.Context, s *domain.ChargingStation, connectors []domain.Connector) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Connectors", "Type").Create(s).Error; err != nil {
			return err
		}
		for i := range connectors {
			connectors[i].ChargingStationID = &s.ID
		}
		if len(connectors) > 0 {
			if err := tx.Create(&connectors).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.log.Error("Failed to create charging station", zap.String("name", s.Name), zap.Error(err))
		return translateError(err)
	}
	return nil
}

func (r *StationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ChargingStation, error) {
	var s domain.ChargingStation
	err := r.db.WithContext(ctx).
		Preload("Type").
		Preload("Connectors").
		First(&s, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *StationRepository) FindAll(ctx context.Context, filter ports.StationFilter) ([]domain.ChargingStation, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.ChargingStation{}).
		Joins("JOIN charging_station_types ON charging_station_types.id = charging_stations.type_id").
		Preload("Type").
		Preload("Connectors")

	if filter.PlugCount != nil {
		query = query.Where("charging_station_types.plug_count = ?", *filter.PlugCount)
	}
	if filter.MinEfficiency != nil {
		query = query.Where("charging_station_types.efficiency >= ?", *filter.MinEfficiency)
	}
	if filter.MaxEfficiency != nil {
		query = query.Where("charging_station_types.efficiency <= ?", *filter.MaxEfficiency)
	}
	if filter.CurrentType != nil {
		query = query.Where("charging_station_types.current_type = ?", *filter.CurrentType)
	}
	if filter.FirmwareVersion != nil {
		query = query.Where("charging_stations.firmware_version = ?", *filter.FirmwareVersion)
	}

	var stations []domain.ChargingStation
	err := query.
		Offset(filter.Skip).
		Limit(filter.Limit).
		Order("charging_stations.name").
		Find(&stations).Error
	if err != nil {
		return nil, err
	}
	return stations, nil
}

// ReplaceWithConnectors runs the full-replace update as one transaction: the
// old connector set is deleted, the new one inserted, then the scalar fields
// updated. A rollback at any step restores the pre-update state.
func (r *StationRepository) ReplaceWithConnectors(ctx context.Context, s *domain.ChargingStation, connectors []domain.Connector) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Connector{}, "charging_station_id = ?", s.ID).Error; err != nil {
			return err
		}
		for i := range connectors {
			connectors[i].ChargingStationID = &s.ID
		}
		if len(connectors) > 0 {
			if err := tx.Create(&connectors).Error; err != nil {
				return err
			}
		}
		return tx.Model(&domain.ChargingStation{}).
			Where("id = ?", s.ID).
			Updates(map[string]interface{}{
				"name":             s.Name,
				"device_id":        s.DeviceID,
				"ip_address":       s.IPAddress,
				"firmware_version": s.FirmwareVersion,
				"type_id":          s.TypeID,
			}).Error
	})
	if err != nil {
		r.log.Error("Failed to update charging station", zap.String("id", s.ID.String()), zap.Error(err))
		return translateError(err)
	}
	return nil
}

// Delete cascades to the station's connectors via an explicit two-statement
// transaction rather than relying on ORM relationship sugar.
func (r *StationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Connector{}, "charging_station_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.ChargingStation{}, "id = ?", id).Error
	})
	if err != nil {
		r.log.Error("Failed to delete charging station", zap.String("id", id.String()), zap.Error(err))
		return translateError(err)
	}
	return nil
}
