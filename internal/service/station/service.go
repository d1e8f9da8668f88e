package station

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridvolt/stationd/internal/adapter/queue"
	"github.com/gridvolt/stationd/internal/domain"
	"github.com/gridvolt/stationd/internal/observability/telemetry"
	"github.com/gridvolt/stationd/internal/ports"
	"github.com/gridvolt/stationd/internal/service/constraint"
)

type Service struct {
	repo   ports.ChargingStationRepository
	engine *constraint.Engine
	mq     queue.MessageQueue
	log    *zap.Logger
}

func NewService(repo ports.ChargingStationRepository, engine *constraint.Engine, mq queue.MessageQueue, log *zap.Logger) ports.StationService {
	return &Service{
		repo:   repo,
		engine: engine,
		mq:     mq,
		log:    log,
	}
}

// Create validates the proposed connector set against the type's plug count
// and the priority rule before any row is written, then persists the station
// and its connectors in one transaction.
func (s *Service) Create(ctx context.Context, in ports.StationInput) (*domain.ChargingStation, error) {
	station := s.fromInput(uuid.New(), in)
	if err := station.Validate(); err != nil {
		return nil, err
	}
	if err := s.engine.CheckPendingConnectors(ctx, in.TypeID, in.Connectors); err != nil {
		return nil, err
	}

	connectors := buildConnectors(in.Connectors)
	if err := s.repo.CreateWithConnectors(ctx, station, connectors); err != nil {
		return nil, s.storeErr("create", station.Name, err)
	}

	telemetry.EntityWritesTotal.WithLabelValues("charging_station", "create").Inc()
	s.publish("station.created", station)
	return s.Get(ctx, station.ID)
}

// Get re-verifies the connector-count invariant on every read; a station whose
// persisted connector count drifted from its type's plug count is reported,
// not returned.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.ChargingStation, error) {
	station, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.storeErr("get", id.String(), err)
	}
	if station == nil {
		return nil, domain.NewNotFound("ChargingStation instance not found.")
	}
	if err := s.engine.CheckStationConsistency(station); err != nil {
		return nil, err
	}
	return station, nil
}

// List is all-or-nothing: a single inconsistent station fails the whole call.
func (s *Service) List(ctx context.Context, filter ports.StationFilter) ([]domain.ChargingStation, error) {
	stations, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, s.storeErr("list", "", err)
	}
	for i := range stations {
		if err := s.engine.CheckStationConsistency(&stations[i]); err != nil {
			return nil, err
		}
	}
	return stations, nil
}

// Update is a full replace: scalar fields are overwritten and the existing
// connector set is dropped and rebuilt from the payload, all in one
// transaction so a rollback restores the pre-update state.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in ports.StationInput) (*domain.ChargingStation, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.storeErr("update", id.String(), err)
	}
	if existing == nil {
		return nil, domain.NewNotFound("ChargingStation instance not found.")
	}

	station := s.fromInput(id, in)
	if err := station.Validate(); err != nil {
		return nil, err
	}
	if err := s.engine.CheckPendingConnectors(ctx, in.TypeID, in.Connectors); err != nil {
		return nil, err
	}

	connectors := buildConnectors(in.Connectors)
	if err := s.repo.ReplaceWithConnectors(ctx, station, connectors); err != nil {
		return nil, s.storeErr("update", id.String(), err)
	}

	telemetry.EntityWritesTotal.WithLabelValues("charging_station", "update").Inc()
	s.publish("station.updated", station)
	return s.Get(ctx, id)
}

// Delete removes the station and its connectors; deletion never re-validates
// cardinality since it only reduces counts.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.storeErr("delete", id.String(), err)
	}
	if existing == nil {
		return domain.NewNotFound("ChargingStation instance not found.")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storeErr("delete", id.String(), err)
	}

	telemetry.EntityWritesTotal.WithLabelValues("charging_station", "delete").Inc()
	s.publish("station.deleted", existing)
	return nil
}

func (s *Service) fromInput(id uuid.UUID, in ports.StationInput) *domain.ChargingStation {
	station := &domain.ChargingStation{
		ID:              id,
		Name:            in.Name,
		IPAddress:       in.IPAddress,
		FirmwareVersion: in.FirmwareVersion,
		TypeID:          in.TypeID,
	}
	if in.DeviceID != nil {
		station.DeviceID = *in.DeviceID
	} else {
		station.DeviceID = uuid.New()
	}
	return station
}

func buildConnectors(specs []ports.ConnectorSpec) []domain.Connector {
	connectors := make([]domain.Connector, len(specs))
	for i, spec := range specs {
		connectors[i] = domain.Connector{
			ID:       uuid.New(),
			Name:     spec.Name,
			Priority: spec.Priority,
		}
	}
	return connectors
}

func (s *Service) storeErr(op, key string, err error) error {
	if domain.KindOf(err) == domain.ErrKindIntegrity {
		return err
	}
	s.log.Error("Charging station store operation failed",
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
