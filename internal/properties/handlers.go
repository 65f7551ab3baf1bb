package properties

import (
	"errors"
	"strconv"

	"propvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/properties
// Filters: zip_code, city, state, min_price, max_price. Sorting: sort_by
// against the whitelist. Pagination: page (default 1), limit (default 20,
// capped at 100). Pagination metadata rides in the response envelope.
func (h *Handlers) Search(c *fiber.Ctx) error {
	in := SearchInput{
		ZipCode: c.Query("zip_code"),
		City:    c.Query("city"),
		State:   c.Query("state"),
		SortBy:  c.Query("sort_by", "investment_ranking"),
		Page:    c.QueryInt("page", 1),
		Limit:   c.QueryInt("limit", defaultLimit),
	}

	var err error
	if in.MinPrice, err = parsePrice(c.Query("min_price")); err != nil {
		return response.Error(c, "Invalid min_price", fiber.StatusBadRequest, nil)
	}
	if in.MaxPrice, err = parsePrice(c.Query("max_price")); err != nil {
		return response.Error(c, "Invalid max_price", fiber.StatusBadRequest, nil)
	}

	rows, meta, err := h.Service.Search(c.Context(), in)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Properties fetched successfully", rows, meta)
}

// GET /api/v1/properties/:property_id
func (h *Handlers) GetProperty(c *fiber.Ctx) error {
	id, err := parsePropertyID(c)
	if err != nil {
		return response.Error(c, "Invalid property_id", fiber.StatusBadRequest, nil)
	}
	detail, err := h.Service.GetProperty(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPropertyNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Property fetched successfully", detail, nil)
}

// GET /api/v1/properties/:property_id/audit
func (h *Handlers) GetAudit(c *fiber.Ctx) error {
	id, err := parsePropertyID(c)
	if err != nil {
		return response.Error(c, "Invalid property_id", fiber.StatusBadRequest, nil)
	}
	trail, err := h.Service.GetAuditTrail(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrPropertyNotFound), errors.Is(err, ErrAuditNotFound):
			return response.NotFound(c, err.Error())
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Audit trail fetched successfully", trail, nil)
}

func parsePropertyID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("property_id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func parsePrice(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil, errors.New("invalid price")
	}
	return &v, nil
}
