package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridvolt/stationd/internal/domain"
	"github.com/gridvolt/stationd/internal/ports"
)

type StationTypeHandler struct {
	service ports.StationTypeService
	log     *zap.Logger
}

func NewStationTypeHandler(service ports.StationTypeService, log *zap.Logger) *StationTypeHandler {
	return &StationTypeHandler{
		service: service,
		log:     log,
	}
}

func (h *StationTypeHandler) Create(c *fiber.Ctx) error {
	var t domain.ChargingStationType
	if err := c.BodyParser(&t); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}

	created, err := h.service.Create(c.Context(), &t)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *StationTypeHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid ID format.")
	}

	t, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(t)
}

func (h *StationTypeHandler) List(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)

	types, err := h.service.List(c.Context(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(types)
}

func (h *StationTypeHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid ID format.")
	}

	var t domain.ChargingStationType
	if err := c.BodyParser(&t); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}

	updated, err := h.service.Update(c.Context(), id, &t)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *StationTypeHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid ID format.")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
