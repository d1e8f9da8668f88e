package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/gridvolt/stationd/internal/domain"
	"github.com/gridvolt/stationd/internal/ports"
)

// MockStationTypeRepository is a mock implementation of ChargingStationTypeRepository
type MockStationTypeRepository struct {
	CreateFunc      func(ctx context.Context, t *domain.ChargingStationType) error
	FindByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.ChargingStationType, error)
	FindAllFunc     func(ctx context.Context, skip, limit int) ([]domain.ChargingStationType, error)
	UpdateFunc      func(ctx context.Context, t *domain.ChargingStationType) error
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
	CountFunc       func(ctx context.Context) (int64, error)
	CreateBatchFunc func(ctx context.Context, types []domain.ChargingStationType) error
}

func (m *MockStationTypeRepository) Create(ctx context.Context, t *domain.ChargingStationType) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *MockStationTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ChargingStationType, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStationTypeRepository) FindAll(ctx context.Context, skip, limit int) ([]domain.ChargingStationType, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, skip, limit)
	}
	return []domain.ChargingStationType{}, nil
}

func (m *MockStationTypeRepository) Update(ctx context.Context, t *domain.ChargingStationType) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *MockStationTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockStationTypeRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockStationTypeRepository) CreateBatch(ctx context.Context, types []domain.ChargingStationType) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, types)
	}
	return nil
}

// MockStationRepository is a mock implementation of ChargingStationRepository
type MockStationRepository struct {
	CreateWithConnectorsFunc  func(ctx context.Context, s *domain.ChargingStation, connectors []domain.Connector) error
	FindByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.ChargingStation, error)
	FindAllFunc               func(ctx context.Context, filter ports.StationFilter) ([]domain.ChargingStation, error)
	ReplaceWithConnectorsFunc func(ctx context.Context, s *domain.ChargingStation, connectors []domain.Connector) error
	DeleteFunc                func(ctx context.Context, id uuid.UUID) error
}

func (m *MockStationRepository) CreateWithConnectors(ctx context.Context, s *domain.ChargingStation, connectors []domain.Connector) error {
	if m.CreateWithConnectorsFunc != nil {
		return m.CreateWithConnectorsFunc(ctx, s, connectors)
	}
	return nil
}

func (m *MockStationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ChargingStation, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStationRepository) FindAll(ctx context.Context, filter ports.StationFilter) ([]domain.ChargingStation, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, filter)
	}
	return []domain.ChargingStation{}, nil
}

func (m *MockStationRepository) ReplaceWithConnectors(ctx context.Context, s *domain.ChargingStation, connectors []domain.Connector) error {
	if m.ReplaceWithConnectorsFunc != nil {
		return m.ReplaceWithConnectorsFunc(ctx, s, connectors)
	}
	return nil
}

func (m *MockStationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockConnectorRepository is a mock implementation of ConnectorRepository
type MockConnectorRepository struct {
	CreateFunc                 func(ctx context.Context, c *domain.Connector) error
	FindByIDFunc               func(ctx context.Context, id uuid.UUID) (*domain.Connector, error)
	FindAllFunc                func(ctx context.Context, filter ports.ConnectorFilter) ([]domain.Connector, error)
	UpdateFunc                 func(ctx context.Context, c *domain.Connector) error
	DeleteFunc                 func(ctx context.Context, id uuid.UUID) error
	CountByStationFunc         func(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error)
	CountPriorityByStationFunc func(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error)
}

func (m *MockConnectorRepository) Create(ctx context.Context, c *domain.Connector) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *MockConnectorRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Connector, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockConnectorRepository) FindAll(ctx context.Context, filter ports.ConnectorFilter) ([]domain.Connector, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, filter)
	}
	return []domain.Connector{}, nil
}

func (m *MockConnectorRepository) Update(ctx context.Context, c *domain.Connector) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *MockConnectorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockConnectorRepository) CountByStation(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error) {
	if m.CountByStationFunc != nil {
		return m.CountByStationFunc(ctx, stationID, exclude)
	}
	return 0, nil
}

func (m *MockConnectorRepository) CountPriorityByStation(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error) {
	if m.CountPriorityByStationFunc != nil {
		return m.CountPriorityByStationFunc(ctx, stationID, exclude)
	}
	return 0, nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc         func(ctx context.Context, u *domain.User) error
	FindByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	UpdateFunc         func(ctx context.Context, u *domain.User) error
	DeleteFunc         func(ctx context.Context, username string) error
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, username string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, username)
	}
	return nil
}
