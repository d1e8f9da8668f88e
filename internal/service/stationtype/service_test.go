package stationtype

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridvolt/stationd/internal/domain"
	"github.com/gridvolt/stationd/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func validType() *domain.ChargingStationType {
	return &domain.ChargingStationType{
		Name:        "Type X",
		PlugCount:   2,
		Efficiency:  91.5,
		CurrentType: domain.CurrentTypeAC,
	}
}

func TestCreate_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	var stored *domain.ChargingStationType
	mockRepo := &mocks.MockStationTypeRepository{
		CreateFunc: func(ctx context.Context, st *domain.ChargingStationType) error {
			stored = st
			return nil
		},
	}
	mockQueue := &mocks.MockMessageQueue{}
	service := NewService(mockRepo, mockQueue, newTestLogger())

	// Act
	created, err := service.Create(ctx, validType())

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected a generated id")
	}
	if stored == nil {
		t.Fatal("expected the type to be persisted")
	}
	msgs := mockQueue.GetPublishedMessages()
	if len(msgs) != 1 || msgs[0].Subject != "station_type.created" {
		t.Errorf("expected one station_type.created event, got %v", msgs)
	}
}

func TestCreate_ValidationFailures(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := NewService(&mocks.MockStationTypeRepository{}, &mocks.MockMessageQueue{}, newTestLogger())

	cases := []struct {
		name   string
		mutate func(*domain.ChargingStationType)
	}{
		{"empty name", func(st *domain.ChargingStationType) { st.Name = "  " }},
		{"zero plug count", func(st *domain.ChargingStationType) { st.PlugCount = 0 }},
		{"negative efficiency", func(st *domain.ChargingStationType) { st.Efficiency = -1 }},
		{"efficiency above 100", func(st *domain.ChargingStationType) { st.Efficiency = 100.5 }},
		{"bad current type", func(st *domain.ChargingStationType) { st.CurrentType = "XX" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := validType()
			tc.mutate(st)

			// Act
			_, err := service.Create(ctx, st)

			// Assert
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if domain.KindOf(err) != domain.ErrKindConstraint {
				t.Errorf("expected constraint violation kind, got %s", domain.KindOf(err))
			}
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := &mocks.MockStationTypeRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ChargingStationType, error) {
			return nil, nil
		},
	}
	service := NewService(mockRepo, &mocks.MockMessageQueue{}, newTestLogger())

	// Act
	_, err := service.Get(ctx, uuid.New())

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "ChargingStationType instance not found." {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestUpdate_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := &mocks.MockStationTypeRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ChargingStationType, error) {
			return nil, nil
		},
	}
	service := NewService(mockRepo, &mocks.MockMessageQueue{}, newTestLogger())

	// Act
	_, err := service.Update(ctx, uuid.New(), validType())

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "ChargingStationType instance not found." {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestUpdate_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	id := uuid.New()
	existing := validType()
	existing.ID = id

	var updated *domain.ChargingStationType
	mockRepo := &mocks.MockStationTypeRepository{
		FindByIDFunc: func(ctx context.Context, lookupID uuid.UUID) (*domain.ChargingStationType, error) {
			if updated != nil {
				return updated, nil
			}
			return existing, nil
		},
		UpdateFunc: func(ctx context.Context, st *domain.ChargingStationType) error {
			updated = st
			return nil
		},
	}
	mockQueue := &mocks.MockMessageQueue{}
	service := NewService(mockRepo, mockQueue, newTestLogger())

	in := validType()
	in.Name = "Type X v2"
	in.PlugCount = 3

	// Act
	result, err := service.Update(ctx, id, in)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.ID != id {
		t.Errorf("expected the path id to win, got %s", result.ID)
	}
	if result.Name != "Type X v2" || result.PlugCount != 3 {
		t.Errorf("expected a full replace, got %+v", result)
	}
}

func TestDelete_ReferencedType(t *testing.T) {
	// Arrange
	ctx := context.Background()
	existing := validType()
	existing.ID = uuid.New()

	mockRepo := &mocks.MockStationTypeRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.ChargingStationType, error) {
			return existing, nil
		},
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			return domain.NewIntegrityViolation("The provided data violates the database's integrity.")
		},
	}
	service := NewService(mockRepo, &mocks.MockMessageQueue{}, newTestLogger())

	// Act
	err := service.Delete(ctx, existing.ID)

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "Cannot delete this Charging Station Type. Make sure that no Charging Stations are assigned to this Type." {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if domain.KindOf(err) != domain.ErrKindIntegrity {
		t.Errorf("expected integrity violation kind, got %s", domain.KindOf(err))
	}
}

func TestSeed_EmptyTable(t *testing.T) {
	// Arrange
	ctx := context.Background()
	var batch []domain.ChargingStationType
	mockRepo := &mocks.MockStationTypeRepository{
		CountFunc: func(ctx context.Context) (int64, error) { return 0, nil },
		CreateBatchFunc: func(ctx context.Context, types []domain.ChargingStationType) error {
			batch = types
			return nil
		},
	}
	service := NewService(mockRepo, &mocks.MockMessageQueue{}, newTestLogger())

	// Act
	err := service.Seed(ctx)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(batch) != 5 {
		t.Fatalf("expected 5 seeded types, got %d", len(batch))
	}
	for _, st := range batch {
		if st.ID == uuid.Nil {
			t.Errorf("seeded type %s has no id", st.Name)
		}
	}
	if batch[0].Name != "Type A" || batch[0].PlugCount != 2 || batch[0].Efficiency != 88.53 {
		t.Errorf("unexpected first seed: %+v", batch[0])
	}
}

func TestSeed_NonEmptyTableUntouched(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := &mocks.MockStationTypeRepository{
		CountFunc: func(ctx context.Context) (int64, error) { return 3, nil },
		CreateBatchFunc: func(ctx context.Context, types []domain.ChargingStationType) error {
			t.Error("seed must not insert when types already exist")
			return nil
		},
	}
	service := NewService(mockRepo, &mocks.MockMessageQueue{}, newTestLogger())

	// Act
	err := service.Seed(ctx)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestList_RepositoryError(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := &mocks.MockStationTypeRepository{
		FindAllFunc: func(ctx context.Context, skip, limit int) ([]domain.ChargingStationType, error) {
			return nil, errors.New("connection refused")
		},
	}
	service := NewService(mockRepo, &mocks.MockMessageQueue{}, newTestLogger())

	// Act
	_, err := service.List(ctx, 0, 100)

	// Assert
	if domain.KindOf(err) != domain.ErrKindInternal {
		t.Errorf("expected internal kind, got %s", domain.KindOf(err))
	}
	if err.Error() != "An unexpected error occurred." {
		t.Errorf("internal errors must not leak causes, got %s", err.Error())
	}
}
