package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridvolt/stationd/internal/domain"
	"github.com/gridvolt/stationd/internal/ports"
)

type StationHandler struct {
	service ports.StationService
	log     *zap.Logger
}

func NewStationHandler(service ports.StationService, log *zap.Logger) *StationHandler {
	return &StationHandler{
		service: service,
		log:     log,
	}
}

func (h *StationHandler) Create(c *fiber.Ctx) error {
	var in ports.StationInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}

	created, err := h.service.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *StationHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid ID format.")
	}

	s, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(s)
}

func (h *StationHandler) List(c *fiber.Ctx) error {
	filter, err := stationFilterFromQuery(c)
	if err != nil {
		return err
	}

	stations, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(stations)
}

func (h *StationHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid ID format.")
	}

	var in ports.StationInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}

	updated, err := h.service.Update(c.Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *StationHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid ID format.")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func stationFilterFromQuery(c *fiber.Ctx) (ports.StationFilter, error) {
	filter := ports.StationFilter{
		Skip:  c.QueryInt("skip", 0),
		Limit: c.QueryInt("limit", 100),
	}

	if v := c.Query("plug_count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, fiber.NewError(fiber.StatusBadRequest, "Invalid plug_count filter.")
		}
		filter.PlugCount = &n
	}
	if v := c.Query("min_efficiency"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, fiber.NewError(fiber.StatusBadRequest, "Invalid min_efficiency filter.")
		}
		filter.MinEfficiency = &f
	}
	if v := c.Query("max_efficiency"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, fiber.NewError(fiber.StatusBadRequest, "Invalid max_efficiency filter.")
		}
		filter.MaxEfficiency = &f
	}
	if v := c.Query("current_type"); v != "" {
		ct := domain.CurrentType(v)
		filter.CurrentType = &ct
	}
	if v := c.Query("firmware_version"); v != "" {
		filter.FirmwareVersion = &v
	}

	return filter, nil
}
