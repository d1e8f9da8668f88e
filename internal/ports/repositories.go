package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/gridvolt/stationd/internal/domain"
)

// StationFilter narrows station lists. Every field is independently optional
// and combined with AND semantics; type-level fields are matched through the
// joined ChargingStationType.
type StationFilter struct {
	PlugCount       *int
	MinEfficiency   *float64
	MaxEfficiency   *float64
	CurrentType     *domain.CurrentType
	FirmwareVersion *string
	Skip            int
	Limit           int
}

type ConnectorFilter struct {
	Priority          *bool
	ChargingStationID *uuid.UUID
	Skip              int
	Limit             int
}

type ChargingStationTypeRepository interface {
	Create(ctx context.Context, t *domain.ChargingStationType) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ChargingStationType, error)
	FindAll(ctx context.Context, skip, limit int) ([]domain.ChargingStationType, error)
	Update(ctx context.Context, t *domain.ChargingStationType) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, types []domain.ChargingStationType) error
}

type ChargingStationRepository interface {
	// CreateWithConnectors persists the station row and its full connector set
	// in a single transaction.
	CreateWithConnectors(ctx context.Context, s *domain.ChargingStation, connectors []domain.Connector) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ChargingStation, error)
	FindAll(ctx context.Context, filter StationFilter) ([]domain.ChargingStation, error)
	// ReplaceWithConnectors deletes the station's existing connectors, inserts
	// the new set and updates the scalar fields, all in one transaction.
	ReplaceWithConnectors(ctx context.Context, s *domain.ChargingStation, connectors []domain.Connector) error
	// Delete removes the station and its connectors transactionally.
	Delete(ctx context.Context, id uuid.UUID) error
}

type ConnectorRepository interface {
	Create(ctx context.Context, c *domain.Connector) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Connector, error)
	FindAll(ctx context.Context, filter ConnectorFilter) ([]domain.Connector, error)
	Update(ctx context.Context, c *domain.Connector) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountByStation counts persisted connectors attached to a station,
	// optionally leaving one connector out of the count.
	CountByStation(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error)
	CountPriorityByStation(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, username string) error
}
