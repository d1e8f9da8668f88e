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

type StationTypeRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStationTypeRepository(db *gorm.DB, log *zap.Logger) ports.ChargingStationTypeRepository {
	return &StationTypeRepository{
		db:  db,
		log: log,
	}
}

func (r *StationTypeRepository) Create(ctx context.Context, t *domain.ChargingStationType) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		r.log.Error("Failed to create charging station type", zap.String("name", t.Name), zap.Error(err))
		return translateError(err)
	}
	return nil
}

func (r *StationTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ChargingStationType, error) {
	var t domain.ChargingStationType
	err := r.db.WithContext(ctx).Preload("Stations").First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *StationTypeRepository) FindAll(ctx context.Context, skip, limit int) ([]domain.ChargingStationType, error) {
	var types []domain.ChargingStationType
	err := r.db.WithContext(ctx).
		Preload("Stations").
		Offset(skip).
		Limit(limit).
		Order("name").
		Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *StationTypeRepository) Update(ctx context.Context, t *domain.ChargingStationType) error {
	err := r.db.WithContext(ctx).
		Model(&domain.ChargingStationType{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"name":         t.Name,
			"plug_count":   t.PlugCount,
			"efficiency":   t.Efficiency,
			"current_type": t.CurrentType,
		}).Error
	if err != nil {
		r.log.Error("Failed to update charging station type", zap.String("id", t.ID.String()), zap.Error(err))
		return translateError(err)
	}
	return nil
}

func (r *StationTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.ChargingStationType{}, "id = ?", id).Error; err != nil {
		r.log.Error("Failed to delete charging station type", zap.String("id", id.String()), zap.Error(err))
		return translateError(err)
	}
	return nil
}

func (r *StationTypeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ChargingStationType{}).Count(&count).Error
	return count, err
}

func (r *StationTypeRepository) CreateBatch(ctx context.Context, types []domain.ChargingStationType) error {
	if err := r.db.WithContext(ctx).Create(&types).Error; err != nil {
		r.log.Error("Failed to batch create charging station types", zap.Int("count", len(types)), zap.Error(err))
		return translateError(err)
	}
	return nil
}
