package connector

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
	repo   ports.ConnectorRepository
	engine *constraint.Engine
	mq     queue.MessageQueue
	log    *zap.Logger
}

func NewService(repo ports.ConnectorRepository, engine *constraint.Engine, mq queue.MessageQueue, log *zap.Logger) ports.ConnectorService {
	return &Service{
		repo:   repo,
		engine: engine,
		mq:     mq,
		log:    log,
	}
}

// Create persists a standalone connector. The attach-mode checks only run
// when the payload declares a station; an unattached connector is
// unconstrained.
func (s *Service) Create(ctx context.Context, in ports.ConnectorInput) (*domain.Connector, error) {
	if in.ChargingStationID != nil {
		if err := s.engine.CheckAttach(ctx, *in.ChargingStationID, in.Priority, nil); err != nil {
			return nil, err
		}
	}

	c := &domain.Connector{
		ID:                uuid.New(),
		Name:              in.Name,
		Priority:          in.Priority,
		ChargingStationID: in.ChargingStationID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, s.storeErr("create", c.Name, err)
	}

	telemetry.EntityWritesTotal.WithLabelValues("connector", "create").Inc()
	s.publish("connector.created", c)
	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Connector, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.storeErr("get", id.String(), err)
	}
	if c == nil {
		return nil, domain.NewNotFound("Connector instance not found.")
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, filter ports.ConnectorFilter) ([]domain.Connector, error) {
	connectors, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, s.storeErr("list", "", err)
	}
	return connectors, nil
}

// Update fully replaces the connector's fields. The connector under update is
// excluded from the sibling counts so it never collides with its own
// persisted row.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in ports.ConnectorInput) (*domain.Connector, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.storeErr("update", id.String(), err)
	}
	if existing == nil {
		return nil, domain.NewNotFound("Connector instance not found.")
	}

	if in.ChargingStationID != nil {
		if err := s.engine.CheckAttach(ctx, *in.ChargingStationID, in.Priority, &id); err != nil {
			return nil, err
		}
	}

	c := &domain.Connector{
		ID:                id,
		Name:              in.Name,
		Priority:          in.Priority,
		ChargingStationID: in.ChargingStationID,
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, s.storeErr("update", id.String(), err)
	}

	telemetry.EntityWritesTotal.WithLabelValues("connector", "update").Inc()
	s.publish("connector.updated", c)
	return c, nil
}

// Delete never re-validates cardinality: removing a connector can only reduce
// a station's count.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.storeErr("delete", id.String(), err)
	}
	if existing == nil {
		return domain.NewNotFound("Connector instance not found.")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storeErr("delete", id.String(), err)
	}

	telemetry.EntityWritesTotal.WithLabelValues("connector", "delete").Inc()
	s.publish("connector.deleted", existing)
	return nil
}

func (s *Service) storeErr(op, key string, err error) error {
	if domain.KindOf(err) == domain.ErrKindIntegrity {
		return err
	}
	s.log.Error("Connector store operation failed",
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
