package stationtype

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridvolt/stationd/internal/adapter/queue"
	"github.com/gridvolt/stationd/internal/domain"
	"github.com/gridvolt/stationd/internal/observability/telemetry"
	"github.com/gridvolt/stationd/internal/ports"
)

// defaultTypes are inserted at process start when no types exist yet.
var defaultTypes = []domain.ChargingStationType{
	{Name: "Type A", PlugCount: 2, Efficiency: 88.53, CurrentType: domain.CurrentTypeAC},
	{Name: "Type B", PlugCount: 2, Efficiency: 87.57, CurrentType: domain.CurrentTypeDC},
	{Name: "Type C", PlugCount: 1, Efficiency: 93.06, CurrentType: domain.CurrentTypeAC},
	{Name: "Type D", PlugCount: 3, Efficiency: 83.14, CurrentType: domain.CurrentTypeDC},
	{Name: "Type E", PlugCount: 1, Efficiency: 87.82, CurrentType: domain.CurrentTypeAC},
}

type Service struct {
	repo ports.ChargingStationTypeRepository
	mq   queue.MessageQueue
	log  *zap.Logger
}

func NewService(repo ports.ChargingStationTypeRepository, mq queue.MessageQueue, log *zap.Logger) ports.StationTypeService {
	return &Service{
		repo: repo,
		mq:   mq,
		log:  log,
	}
}

func (s *Service) Create(ctx context.Context, t *domain.ChargingStationType) (*domain.ChargingStationType, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.ID = uuid.New()

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, s.storeErr("create", t.Name, err)
	}

	telemetry.EntityWritesTotal.WithLabelValues("charging_station_type", "create").Inc()
	s.publish("station_type.created", t)
	return t, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.ChargingStationType, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.storeErr("get", id.String(), err)
	}
	if t == nil {
		return nil, domain.NewNotFound("ChargingStationType instance not found.")
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]domain.ChargingStationType, error) {
	types, err := s.repo.FindAll(ctx, skip, limit)
	if err != nil {
		return nil, s.storeErr("list", "", err)
	}
	return types, nil
}

// Update fully replaces every field of the type.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in *domain.ChargingStationType) (*domain.ChargingStationType, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.storeErr("update", id.String(), err)
	}
	if existing == nil {
		return nil, domain.NewNotFound("ChargingStationType instance not found.")
	}

	in.ID = id
	if err := s.repo.Update(ctx, in); err != nil {
		return nil, s.storeErr("update", id.String(), err)
	}

	telemetry.EntityWritesTotal.WithLabelValues("charging_station_type", "update").Inc()
	s.publish("station_type.updated", in)
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.storeErr("delete", id.String(), err)
	}
	if existing == nil {
		return domain.NewNotFound("ChargingStationType instance not found.")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if domain.KindOf(err) == domain.ErrKindIntegrity {
			// Referenced types cannot be removed; surface the specific cause.
			return domain.NewIntegrityViolation(
				"Cannot delete this Charging Station Type. Make sure that no Charging Stations are assigned to this Type.")
		}
		return s.storeErr("delete", id.String(), err)
	}

	telemetry.EntityWritesTotal.WithLabelValues("charging_station_type", "delete").Inc()
	s.publish("station_type.deleted", existing)
	return nil
}

// Seed inserts the five default types, only when the table is empty.
func (s *Service) Seed(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return s.storeErr("seed", "", err)
	}
	if count > 0 {
		s.log.Info("Charging station types already exist. No changes made.")
		return nil
	}

	types := make([]domain.ChargingStationType, len(defaultTypes))
	copy(types, defaultTypes)
	for i := range types {
		types[i].ID = uuid.New()
	}

	if err := s.repo.CreateBatch(ctx, types); err != nil {
		return s.storeErr("seed", "", err)
	}

	s.log.Info("Database has been seeded with initial charging station types.",
		zap.Int("count", len(types)),
	)
	return nil
}

func (s *Service) storeErr(op, key string, err error) error {
	if kind := domain.KindOf(err); kind == domain.ErrKindIntegrity {
		return err
	}
	s.log.Error("Charging station type store operation failed",
		zap.String("operation", op),
		zap.String("key", key),
		zap.Error(err),
	)
	return domain.NewInternal(err)
}

func (s *Service) publish(subject string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.mq.Publish(subject, data); err != nil {
		s.log.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
