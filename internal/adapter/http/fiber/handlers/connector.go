package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridvolt/stationd/internal/ports"
)

type ConnectorHandler struct {
	service ports.ConnectorService
	log     *zap.Logger
}

func NewConnectorHandler(service ports.ConnectorService, log *zap.Logger) *ConnectorHandler {
	return &ConnectorHandler{
		service: service,
		log:     log,
	}
}

func (h *ConnectorHandler) Create(c *fiber.Ctx) error {
	var in ports.ConnectorInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}

	created, err := h.service.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ConnectorHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid ID format.")
	}

	conn, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(conn)
}

func (h *ConnectorHandler) List(c *fiber.Ctx) error {
	filter := ports.ConnectorFilter{
		Skip:  c.QueryInt("skip", 0),
		Limit: c.QueryInt("limit", 100),
	}

	if v := c.Query("priority"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid priority filter.")
		}
		filter.Priority = &b
	}
	if v := c.Query("charging_station_id"); v != "" {
		stationID, err := uuid.Parse(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid charging_station_id filter.")
		}
		filter.ChargingStationID = &stationID
	}

	connectors, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(connectors)
}

func (h *ConnectorHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid ID format.")
	}

	var in ports.ConnectorInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}

	updated, err := h.service.Update(c.Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *ConnectorHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid ID format.")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
