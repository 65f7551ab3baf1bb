package markets

import (
	"errors"

	"propvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/markets/cities
func (h *Handlers) Cities(c *fiber.Ctx) error {
	rows, err := h.Service.Cities(c.Context(), c.Query("state"))
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Cities fetched successfully", rows, nil)
}

// GET /api/v1/markets/zipcodes
func (h *Handlers) Zipcodes(c *fiber.Ctx) error {
	rows, err := h.Service.Zipcodes(c.Context(), c.Query("city"), c.Query("state"))
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Zipcodes fetched successfully", rows, nil)
}

// GET /api/v1/markets/states
func (h *Handlers) States(c *fiber.Ctx) error {
	rows, err := h.Service.States(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "States fetched successfully", rows, nil)
}

// GET /api/v1/markets/stats?type=city|zipcode|state
func (h *Handlers) Stats(c *fiber.Ctx) error {
	rows, err := h.Service.Stats(c.Context(), c.Query("type", "city"))
	if err != nil {
		if errors.Is(err, ErrInvalidLocationType) {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Market stats fetched successfully", rows, nil)
}
