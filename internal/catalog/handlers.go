package catalog

import (
	"errors"
	"strconv"

	"propvest-backend/internal/engine"
	"propvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// POST /api/v1/catalog/recalculate (admin)
func (h *Handlers) RecalculateAll(c *fiber.Ctx) error {
	summary, err := h.Service.RecalculateAll(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Catalog recalculated", summary, nil)
}

// POST /api/v1/catalog/recalculate/:property_id (admin)
func (h *Handlers) RecalculateOne(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("property_id"), 10, 64)
	if err != nil || id == 0 {
		return response.Error(c, "Invalid property_id", fiber.StatusBadRequest, nil)
	}
	row, err := h.Service.RecalculateOne(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, ErrPropertyNotFound) {
			return response.NotFound(c, err.Error())
		}
		// A typed calculation failure means this property's facts cannot
		// produce a valid audit; that is the caller's problem, not ours.
		if kind := failureKindOrEmpty(err); kind != "" {
			return response.Error(c, "Calculation failed", fiber.StatusUnprocessableEntity, fiber.Map{
				"kind":    kind,
				"message": err.Error(),
			})
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Property recalculated", row, nil)
}

func failureKindOrEmpty(err error) string {
	if kind := engine.FailureKind(err); kind != "internal" {
		return kind
	}
	return ""
}
