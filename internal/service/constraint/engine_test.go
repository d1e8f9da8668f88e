package constraint

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridvolt/stationd/internal/domain"
	"github.com/gridvolt/stationd/internal/mocks"
	"github.com/gridvolt/stationd/internal/ports"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func newEngine(types *mocks.MockStationTypeRepository, stations *mocks.MockStationRepository, connectors *mocks.MockConnectorRepository) *Engine {
	return NewEngine(types, stations, connectors, newTestLogger())
}

func fixedType(plugCount int) *domain.ChargingStationType {
	return &domain.ChargingStationType{
		ID:          uuid.New(),
		Name:        "Type T",
		PlugCount:   plugCount,
		Efficiency:  90.0,
		CurrentType: domain.CurrentTypeAC,
	}
}

func TestCheckPendingConnectors_Valid(t *testing.T) {
	// Arrange
	ctx := context.Background()
	stationType := fixedType(2)

	mockTypes := &mocks.MockStationTypeRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ChargingStationType, error) {
			return stationType, nil
		},
	}
	engine := newEngine(mockTypes, &mocks.MockStationRepository{}, &mocks.MockConnectorRepository{})

	// Act
	err := engine.CheckPendingConnectors(ctx, stationType.ID, []ports.ConnectorSpec{
		{Name: "c1", Priority: true},
		{Name: "c2", Priority: false},
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCheckPendingConnectors_TwoPriorities(t *testing.T) {
	// Arrange
	ctx := context.Background()
	engine := newEngine(&mocks.MockStationTypeRepository{}, &mocks.MockStationRepository{}, &mocks.MockConnectorRepository{})

	// Act
	err := engine.CheckPendingConnectors(ctx, uuid.New(), []ports.ConnectorSpec{
		{Name: "c1", Priority: true},
		{Name: "c2", Priority: true},
	})

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "Only one connector in each Charging Station can have priority." {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if domain.KindOf(err) != domain.ErrKindConstraint {
		t.Errorf("expected constraint violation kind, got %s", domain.KindOf(err))
	}
}

func TestCheckPendingConnectors_PriorityCheckedBeforeTypeLookup(t *testing.T) {
	// Arrange
	ctx := context.Background()
	lookedUp := false
	mockTypes := &mocks.MockStationTypeRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ChargingStationType, error) {
			lookedUp = true
			return nil, nil
		},
	}
	engine := newEngine(mockTypes, &mocks.MockStationRepository{}, &mocks.MockConnectorRepository{})

	// Act
	err := engine.CheckPendingConnectors(ctx, uuid.New(), []ports.ConnectorSpec{
		{Name: "c1", Priority: true},
		{Name: "c2", Priority: true},
	})

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if lookedUp {
		t.Error("type lookup should not run when the priority rule already failed")
	}
}

func TestCheckPendingConnectors_TypeNotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockTypes := &mocks.MockStationTypeRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ChargingStationType, error) {
			return nil, nil
		},
	}
	engine := newEngine(mockTypes, &mocks.MockStationRepository{}, &mocks.MockConnectorRepository{})

	// Act
	err := engine.CheckPendingConnectors(ctx, uuid.New(), []ports.ConnectorSpec{{Name: "c1"}})

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "ChargingStationType not found." {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if domain.KindOf(err) != domain.ErrKindNotFound {
		t.Errorf("expected not found kind, got %s", domain.KindOf(err))
	}
}

func TestCheckPendingConnectors_CountMismatch(t *testing.T) {
	// Arrange
	ctx := context.Background()
	stationType := fixedType(3)
	mockTypes := &mocks.MockStationTypeRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ChargingStationType, error) {
			return stationType, nil
		},
	}
	engine := newEngine(mockTypes, &mocks.MockStationRepository{}, &mocks.MockConnectorRepository{})

	for _, specs := range [][]ports.ConnectorSpec{
		{{Name: "c1"}},
		{{Name: "c1"}, {Name: "c2"}, {Name: "c3"}, {Name: "c4"}},
		nil,
	} {
		// Act
		err := engine.CheckPendingConnectors(ctx, stationType.ID, specs)

		// Assert
		if err == nil {
			t.Fatalf("expected error for %d connectors, got nil", len(specs))
		}
		if err.Error() != "The number of connectors must equal 3." {
			t.Errorf("unexpected message: %s", err.Error())
		}
	}
}

func TestCheckPendingConnectors_RepositoryError(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockTypes := &mocks.MockStationTypeRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ChargingStationType, error) {
			return nil, errors.New("connection refused")
		},
	}
	engine := newEngine(mockTypes, &mocks.MockStationRepository{}, &mocks.MockConnectorRepository{})

	// Act
	err := engine.CheckPendingConnectors(ctx, uuid.New(), []ports.ConnectorSpec{{Name: "c1"}})

	// Assert
	if domain.KindOf(err) != domain.ErrKindInternal {
		t.Errorf("expected internal kind, got %s", domain.KindOf(err))
	}
}

func stationWithType(plugCount int) *domain.ChargingStation {
	stationType := fixedType(plugCount)
	return &domain.ChargingStation{
		ID:     uuid.New(),
		Name:   "Station S",
		TypeID: stationType.ID,
		Type:   stationType,
	}
}

func TestCheckAttach_HasRoom(t *testing.T) {
	// Arrange
	ctx := context.Background()
	station := stationWithType(2)

	mockStations := &mocks.MockStationRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ChargingStation, error) {
			return station, nil
		},
	}
	mockConnectors := &mocks.MockConnectorRepository{
		CountByStationFunc: func(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error) {
			return 1, nil
		},
	}
	engine := newEngine(&mocks.MockStationTypeRepository{}, mockStations, mockConnectors)

	// Act
	err := engine.CheckAttach(ctx, station.ID, false, nil)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCheckAttach_StationNotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockStations := &mocks.MockStationRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ChargingStation, error) {
			return nil, nil
		},
	}
	engine := newEngine(&mocks.MockStationTypeRepository{}, mockStations, &mocks.MockConnectorRepository{})

	// Act
	err := engine.CheckAttach(ctx, uuid.New(), false, nil)

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "ChargingStation not found." {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestCheckAttach_AtCapacity(t *testing.T) {
	// Arrange
	ctx := context.Background()
	station := stationWithType(2)

	mockStations := &mocks.MockStationRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ChargingStation, error) {
			return station, nil
		},
	}
	mockConnectors := &mocks.MockConnectorRepository{
		CountByStationFunc: func(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error) {
			return 2, nil
		},
	}
	engine := newEngine(&mocks.MockStationTypeRepository{}, mockStations, mockConnectors)

	// Act
	err := engine.CheckAttach(ctx, station.ID, false, nil)

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "The number of connectors cannot exceed 2." {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestCheckAttach_PrioritySiblingExists(t *testing.T) {
	// Arrange
	ctx := context.Background()
	station := stationWithType(3)

	mockStations := &mocks.MockStationRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ChargingStation, error) {
			return station, nil
		},
	}
	mockConnectors := &mocks.MockConnectorRepository{
		CountByStationFunc: func(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error) {
			return 1, nil
		},
		CountPriorityByStationFunc: func(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error) {
			return 1, nil
		},
	}
	engine := newEngine(&mocks.MockStationTypeRepository{}, mockStations, mockConnectors)

	// Act
	err := engine.CheckAttach(ctx, station.ID, true, nil)

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "This charging station already has a connector with priority." {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestCheckAttach_NoPriorityCheckWithoutWantPriority(t *testing.T) {
	// Arrange
	ctx := context.Background()
	station := stationWithType(3)
	priorityCounted := false

	mockStations := &mocks.MockStationRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ChargingStation, error) {
			return station, nil
		},
	}
	mockConnectors := &mocks.MockConnectorRepository{
		CountByStationFunc: func(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error) {
			return 1, nil
		},
		CountPriorityByStationFunc: func(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error) {
			priorityCounted = true
			return 1, nil
		},
	}
	engine := newEngine(&mocks.MockStationTypeRepository{}, mockStations, mockConnectors)

	// Act
	err := engine.CheckAttach(ctx, station.ID, false, nil)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if priorityCounted {
		t.Error("priority count should not run when the connector does not want priority")
	}
}

func TestCheckAttach_ExcludePropagatesToCounts(t *testing.T) {
	// Arrange
	ctx := context.Background()
	station := stationWithType(1)
	excluded := uuid.New()

	mockStations := &mocks.MockStationRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ChargingStation, error) {
			return station, nil
		},
	}
	mockConnectors := &mocks.MockConnectorRepository{
		CountByStationFunc: func(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error) {
			if exclude == nil || *exclude != excluded {
				t.Error("expected the excluded connector id in the attach count")
			}
			return 0, nil
		},
		CountPriorityByStationFunc: func(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error) {
			if exclude == nil || *exclude != excluded {
				t.Error("expected the excluded connector id in the priority count")
			}
			return 0, nil
		},
	}
	engine := newEngine(&mocks.MockStationTypeRepository{}, mockStations, mockConnectors)

	// Act
	err := engine.CheckAttach(ctx, station.ID, true, &excluded)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCheckStationConsistency(t *testing.T) {
	// Arrange
	engine := newEngine(&mocks.MockStationTypeRepository{}, &mocks.MockStationRepository{}, &mocks.MockConnectorRepository{})
	station := stationWithType(2)
	station.Connectors = []domain.Connector{
		{ID: uuid.New(), Name: "c1"},
		{ID: uuid.New(), Name: "c2"},
	}

	// Act
	err := engine.CheckStationConsistency(station)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Arrange: drop one connector to force drift
	station.Connectors = station.Connectors[:1]

	// Act
	err = engine.CheckStationConsistency(station)

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "This Charging Station has 1 connectors instead of 2." {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
