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

type ConnectorRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewConnectorRepository(db *gorm.DB, log *zap.Logger) ports.ConnectorRepository {
	return &ConnectorRepository{
		db:  db,
		log: log,
	}
}

func (r *ConnectorRepository) Create(ctx context.Context, c *domain.Connector) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		r.log.Error("Failed to create connector", zap.String("name", c.Name), zap.Error(err))
		return translateError(err)
	}
	return nil
}

func (r *ConnectorRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Connector, error) {
	var c domain.Connector
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *ConnectorRepository) FindAll(ctx context.Context, filter ports.ConnectorFilter) ([]domain.Connector, error) {
	query := r.db.WithContext(ctx).Model(&domain.Connector{})

	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.ChargingStationID != nil {
		query = query.Where("charging_station_id = ?", *filter.ChargingStationID)
	}

	var connectors []domain.Connector
	err := query.
		Offset(filter.Skip).
		Limit(filter.Limit).
		Order("name").
		Find(&connectors).Error
	if err != nil {
		return nil, err
	}
	return connectors, nil
}

func (r *ConnectorRepository) Update(ctx context.Context, c *domain.Connector) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Connector{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":                c.Name,
			"priority":            c.Priority,
			"charging_station_id": c.ChargingStationID,
		}).Error
	if err != nil {
		r.log.Error("Failed to update connector", zap.String("id", c.ID.String()), zap.Error(err))
		return translateError(err)
	}
	return nil
}

func (r *ConnectorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Connector{}, "id = ?", id).Error; err != nil {
		r.log.Error("Failed to delete connector", zap.String("id", id.String()), zap.Error(err))
		return translateError(err)
	}
	return nil
}

func (r *ConnectorRepository) CountByStation(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.Connector{}).
		Where("charging_station_id = ?", stationID)
	if exclude != nil {
		query = query.Where("id <> ?", *exclude)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *ConnectorRepository) CountPriorityByStation(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.Connector{}).
		Where("charging_station_id = ? AND priority = ?", stationID, true)
	if exclude != nil {
		query = query.Where("id <> ?", *exclude)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}
