package constraint

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridvolt/stationd/internal/domain"
	"github.com/gridvolt/stationd/internal/observability/telemetry"
	"github.com/gridvolt/stationd/internal/ports"
)

// Engine evaluates the priority and cardinality rules that tie a charging
// station to its type's plug count. It holds no state of its own; every check
// is a function of its arguments and the currently persisted rows.
type Engine struct {
	types      ports.ChargingStationTypeRepository
	stations   ports.ChargingStationRepository
	connectors ports.ConnectorRepository
	log        *zap.Logger
}

func NewEngine(
	types ports.ChargingStationTypeRepository,
	stations ports.ChargingStationRepository,
	connectors ports.ConnectorRepository,
	log *zap.Logger,
) *Engine {
	return &Engine{
		types:      types,
		stations:   stations,
		connectors: connectors,
		log:        log,
	}
}

// CheckPendingConnectors validates a full connector set proposed for a station
// create or update: at most one pending connector may declare priority, and
// the set's size must equal the type's plug count exactly.
func (e *Engine) CheckPendingConnectors(ctx context.Context, typeID uuid.UUID, connectors []ports.ConnectorSpec) error {
	priorityCount := 0
	for _, c := range connectors {
		if c.Priority {
			priorityCount++
		}
	}
	if priorityCount > 1 {
		e.log.Warn("Priority constraint violated in proposed connector set",
			zap.String("type_id", typeID.String()),
			zap.Int("priority_count", priorityCount),
		)
		telemetry.ConstraintViolationsTotal.WithLabelValues("priority").Inc()
		return domain.NewConstraintViolation("Only one connector in each Charging Station can have priority.")
	}

	t, err := e.types.FindByID(ctx, typeID)
	if err != nil {
		return domain.NewInternal(err)
	}
	if t == nil {
		return domain.NewNotFound("ChargingStationType not found.")
	}
	if len(connectors) != t.PlugCount {
		e.log.Warn("Connector count does not match the type's plug count",
			zap.String("type_id", typeID.String()),
			zap.Int("proposed", len(connectors)),
			zap.Int("plug_count", t.PlugCount),
		)
		telemetry.ConstraintViolationsTotal.WithLabelValues("cardinality").Inc()
		return domain.NewConstraintViolation(fmt.Sprintf("The number of connectors must equal %d.", t.PlugCount))
	}
	return nil
}

// CheckAttach validates attaching a single connector to an existing station,
// either a fresh create or an update moving the connector there. When exclude
// is set, that connector is left out of both counts so an update does not
// collide with its own persisted row.
func (e *Engine) CheckAttach(ctx context.Context, stationID uuid.UUID, wantPriority bool, exclude *uuid.UUID) error {
	station, err := e.stations.FindByID(ctx, stationID)
	if err != nil {
		return domain.NewInternal(err)
	}
	if station == nil {
		return domain.NewNotFound("ChargingStation not found.")
	}
	if station.Type == nil {
		return domain.NewInternal(fmt.Errorf("constraint: station %s loaded without its type", stationID))
	}

	count, err := e.connectors.CountByStation(ctx, stationID, exclude)
	if err != nil {
		return domain.NewInternal(err)
	}
	if count >= int64(station.Type.PlugCount) {
		e.log.Warn("Station is already at its type's plug capacity",
			zap.String("station_id", stationID.String()),
			zap.Int64("attached", count),
			zap.Int("plug_count", station.Type.PlugCount),
		)
		telemetry.ConstraintViolationsTotal.WithLabelValues("cardinality").Inc()
		return domain.NewConstraintViolation(fmt.Sprintf("The number of connectors cannot exceed %d.", station.Type.PlugCount))
	}

	if wantPriority {
		priorityCount, err := e.connectors.CountPriorityByStation(ctx, stationID, exclude)
		if err != nil {
			return domain.NewInternal(err)
		}
		if priorityCount > 0 {
			e.log.Warn("Station already has a priority connector",
				zap.String("station_id", stationID.String()),
			)
			telemetry.ConstraintViolationsTotal.WithLabelValues("priority").Inc()
			return domain.NewConstraintViolation("This charging station already has a connector with priority.")
		}
	}
	return nil
}

// CheckStationConsistency is the read-time self-check run on every station
// fetch. It surfaces drift between the persisted connector count and the
// type's plug count instead of silently returning the station.
func (e *Engine) CheckStationConsistency(station *domain.ChargingStation) error {
	if station.Type == nil {
		return domain.NewInternal(fmt.Errorf("constraint: station %s loaded without its type", station.ID))
	}
	if len(station.Connectors) != station.Type.PlugCount {
		e.log.Warn("Station connector count drifted from its type's plug count",
			zap.String("station_id", station.ID.String()),
			zap.Int("attached", len(station.Connectors)),
			zap.Int("plug_count", station.Type.PlugCount),
		)
		telemetry.ConstraintViolationsTotal.WithLabelValues("consistency").Inc()
		return domain.NewConstraintViolation(fmt.Sprintf(
			"This Charging Station has %d connectors instead of %d.",
			len(station.Connectors), station.Type.PlugCount,
		))
	}
	return nil
}
