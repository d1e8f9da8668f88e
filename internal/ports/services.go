package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/gridvolt/stationd/internal/domain"
)

type StationTypeService interface {
	Create(ctx context.Context, t *domain.ChargingStationType) (*domain.ChargingStationType, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.ChargingStationType, error)
	List(ctx context.Context, skip, limit int) ([]domain.ChargingStationType, error)
	Update(ctx context.Context, id uuid.UUID, t *domain.ChargingStationType) (*domain.ChargingStationType, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Seed(ctx context.Context) error
}

// ConnectorSpec is a connector requested as part of a station create/update
// payload; the station fully owns the resulting rows.
type ConnectorSpec struct {
	Name     string `json:"name"`
	Priority bool   `json:"priority"`
}

type StationInput struct {
	Name            string          `json:"name"`
	DeviceID        *uuid.UUID      `json:"device_id"`
	IPAddress       string          `json:"ip_address"`
	FirmwareVersion string          `json:"firmware_version"`
	TypeID          uuid.UUID       `json:"type_id"`
	Connectors      []ConnectorSpec `json:"connectors"`
}

type StationService interface {
	Create(ctx context.Context, in StationInput) (*domain.ChargingStation, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.ChargingStation, error)
	List(ctx context.Context, filter StationFilter) ([]domain.ChargingStation, error)
	Update(ctx context.Context, id uuid.UUID, in StationInput) (*domain.ChargingStation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ConnectorInput struct {
	Name              string     `json:"name"`
	Priority          bool       `json:"priority"`
	ChargingStationID *uuid.UUID `json:"charging_station_id"`
}

type ConnectorService interface {
	Create(ctx context.Context, in ConnectorInput) (*domain.Connector, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Connector, error)
	List(ctx context.Context, filter ConnectorFilter) ([]domain.Connector, error)
	Update(ctx context.Context, id uuid.UUID, in ConnectorInput) (*domain.Connector, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthService interface {
	Register(ctx context.Context, in UserInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	// ValidateToken resolves the bearer credential to a username.
	ValidateToken(ctx context.Context, token string) (string, error)
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
	// UpdateUser and DeleteUser are self-service: they fail with Forbidden
	// unless currentUsername matches target.
	UpdateUser(ctx context.Context, currentUsername, target string, in UserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, currentUsername, target string) error
}
