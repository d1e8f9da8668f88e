package connector

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridvolt/stationd/internal/domain"
	"github.com/gridvolt/stationd/internal/mocks"
	"github.com/gridvolt/stationd/internal/ports"
	"github.com/gridvolt/stationd/internal/service/constraint"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

type fixture struct {
	stations   *mocks.MockStationRepository
	connectors *mocks.MockConnectorRepository
	queue      *mocks.MockMessageQueue
	service    ports.ConnectorService
}

func newFixture() *fixture {
	f := &fixture{
		stations:   &mocks.MockStationRepository{},
		connectors: &mocks.MockConnectorRepository{},
		queue:      &mocks.MockMessageQueue{},
	}
	log := newTestLogger()
	engine := constraint.NewEngine(&mocks.MockStationTypeRepository{}, f.stations, f.connectors, log)
	f.service = NewService(f.connectors, engine, f.queue, log)
	return f
}

func stationWithCapacity(plugCount int) *domain.ChargingStation {
	stationType := &domain.ChargingStationType{
		ID:          uuid.New(),
		Name:        "Type T",
		PlugCount:   plugCount,
		Efficiency:  90.0,
		CurrentType: domain.CurrentTypeAC,
	}
	return &domain.ChargingStation{
		ID:     uuid.New(),
		Name:   "Station S",
		TypeID: stationType.ID,
		Type:   stationType,
	}
}

func TestCreate_Unattached(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture()
	f.stations.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.ChargingStation, error) {
		t.Error("an unattached connector must not trigger a station lookup")
		return nil, nil
	}

	// Act
	created, err := f.service.Create(ctx, ports.ConnectorInput{Name: "floating", Priority: true})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ChargingStationID != nil {
		t.Error("expected no station reference")
	}
	msgs := f.queue.GetPublishedMessages()
	if len(msgs) != 1 || msgs[0].Subject != "connector.created" {
		t.Errorf("expected one connector.created event, got %v", msgs)
	}
}

func TestCreate_AttachWithinCapacity(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture()
	station := stationWithCapacity(2)

	f.stations.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.ChargingStation, error) {
		return station, nil
	}
	f.connectors.CountByStationFunc = func(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error) {
		return 1, nil
	}

	// Act
	created, err := f.service.Create(ctx, ports.ConnectorInput{
		Name:              "c2",
		ChargingStationID: &station.ID,
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ChargingStationID == nil || *created.ChargingStationID != station.ID {
		t.Error("expected the connector to reference the station")
	}
}

func TestCreate_AttachAtCapacity(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture()
	station := stationWithCapacity(2)

	f.stations.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.ChargingStation, error) {
		return station, nil
	}
	f.connectors.CountByStationFunc = func(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error) {
		return 2, nil
	}
	f.connectors.CreateFunc = func(ctx context.Context, c *domain.Connector) error {
		t.Error("nothing should be persisted past a failed capacity check")
		return nil
	}

	// Act
	_, err := f.service.Create(ctx, ports.ConnectorInput{
		Name:              "c3",
		ChargingStationID: &station.ID,
	})

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "The number of connectors cannot exceed 2." {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestCreate_AttachPriorityTaken(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture()
	station := stationWithCapacity(3)

	f.stations.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.ChargingStation, error) {
		return station, nil
	}
	f.connectors.CountByStationFunc = func(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error) {
		return 1, nil
	}
	f.connectors.CountPriorityByStationFunc = func(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error) {
		return 1, nil
	}

	// Act
	_, err := f.service.Create(ctx, ports.ConnectorInput{
		Name:              "c2",
		Priority:          true,
		ChargingStationID: &station.ID,
	})

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "This charging station already has a connector with priority." {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestGet_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture()
	f.connectors.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Connector, error) {
		return nil, nil
	}

	// Act
	_, err := f.service.Get(ctx, uuid.New())

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "Connector instance not found." {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestUpdate_ExcludesOwnRow(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture()
	station := stationWithCapacity(1)
	id := uuid.New()

	f.connectors.FindByIDFunc = func(ctx context.Context, lookupID uuid.UUID) (*domain.Connector, error) {
		return &domain.Connector{ID: id, Name: "c1", ChargingStationID: &station.ID}, nil
	}
	f.stations.FindByIDFunc = func(ctx context.Context, lookupID uuid.UUID) (*domain.ChargingStation, error) {
		return station, nil
	}
	f.connectors.CountByStationFunc = func(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error) {
		if exclude == nil || *exclude != id {
			t.Error("the connector under update must be excluded from the count")
		}
		// The station is at capacity, but only with the row being updated.
		return 0, nil
	}
	f.connectors.CountPriorityByStationFunc = func(ctx context.Context, stationID uuid.UUID, exclude *uuid.UUID) (int64, error) {
		if exclude == nil || *exclude != id {
			t.Error("the connector under update must be excluded from the priority count")
		}
		return 0, nil
	}

	// Act
	updated, err := f.service.Update(ctx, id, ports.ConnectorInput{
		Name:              "c1-renamed",
		Priority:          true,
		ChargingStationID: &station.ID,
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Name != "c1-renamed" || !updated.Priority {
		t.Errorf("expected a full replace, got %+v", updated)
	}
}

func TestUpdate_DetachSkipsChecks(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture()
	id := uuid.New()
	stationID := uuid.New()

	f.connectors.FindByIDFunc = func(ctx context.Context, lookupID uuid.UUID) (*domain.Connector, error) {
		return &domain.Connector{ID: id, Name: "c1", ChargingStationID: &stationID}, nil
	}
	f.stations.FindByIDFunc = func(ctx context.Context, lookupID uuid.UUID) (*domain.ChargingStation, error) {
		t.Error("detaching must not trigger a station lookup")
		return nil, nil
	}

	// Act
	updated, err := f.service.Update(ctx, id, ports.ConnectorInput{Name: "c1"})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.ChargingStationID != nil {
		t.Error("expected the station reference to be cleared")
	}
}

func TestDelete_NoCardinalityRevalidation(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture()
	stationID := uuid.New()
	id := uuid.New()

	f.connectors.FindByIDFunc = func(ctx context.Context, lookupID uuid.UUID) (*domain.Connector, error) {
		return &domain.Connector{ID: id, Name: "c1", ChargingStationID: &stationID}, nil
	}
	f.stations.FindByIDFunc = func(ctx context.Context, lookupID uuid.UUID) (*domain.ChargingStation, error) {
		t.Error("delete must not consult the station")
		return nil, nil
	}

	// Act
	err := f.service.Delete(ctx, id)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	msgs := f.queue.GetPublishedMessages()
	if len(msgs) != 1 || msgs[0].Subject != "connector.deleted" {
		t.Errorf("expected one connector.deleted event, got %v", msgs)
	}
}
