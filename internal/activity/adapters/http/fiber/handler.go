package fiber

import (
	"context"
	"errors"
	"net/http"
	"time"

	"activity-dashboard-service/internal/activity/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type FilterOptionsUseCase interface {
	Options(ctx context.Context) (*usecase.FilterOptions, error)
}

type CacheInvalidator interface {
	Invalidate()
}

type ActivityHandler struct {
	optionsUC FilterOptionsUseCase
	cache     CacheInvalidator
}

func NewActivityHandler(optionsUC FilterOptionsUseCase, cache CacheInvalidator) *ActivityHandler {
	return &ActivityHandler{optionsUC: optionsUC, cache: cache}
}

// GetFilters godoc
// @Summary List filter options
// @Description Returns the date bounds and the distinct values of every filter dimension
// @Tags Activity
// @Produce json
// @Success 200 {object} FilterOptionsResponse
// @Failure 503 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /filters [get]
func (h *ActivityHandler) GetFilters(c *fiber.Ctx) error {
	opts, err := h.optionsUC.Options(c.UserContext())
	if err != nil {
		return WriteError(c, err)
	}

	resp := FilterOptionsResponse{
		Values: make(map[string][]string, len(opts.Values)),
		Rows:   opts.Rows,
	}
	if opts.MinDate != nil {
		resp.MinDate = opts.MinDate.Format(dateLayout)
	}
	if opts.MaxDate != nil {
		resp.MaxDate = opts.MaxDate.Format(dateLayout)
	}
	if !opts.LoadedAt.IsZero() {
		resp.LoadedAt = opts.LoadedAt.UTC().Format(time.RFC3339)
	}
	for f, vals := range opts.Values {
		resp.Values[string(f)] = vals
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// InvalidateCache godoc
// @Summary Drop the cached activity table
// @Description The next request reloads the table from the source
// @Tags Activity
// @Produce json
// @Success 200 {object} InvalidateResponse
// @Router /activity/cache/invalidate [post]
func (h *ActivityHandler) InvalidateCache(c *fiber.Ctx) error {
	h.cache.Invalidate()
	return c.Status(http.StatusOK).JSON(InvalidateResponse{Status: "invalidated"})
}

// WriteError maps the errors shared by every activity-backed endpoint:
// bad criteria, source failures and anything else as a 500.
func WriteError(c *fiber.Ctx, err error) error {
	var loadErr *usecase.LoadError
	switch {
	case errors.Is(err, ErrInvalidCriteria):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_criteria",
			Message: err.Error(),
		})
	case errors.As(err, &loadErr):
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "load_failed",
			Message: "activity source is unavailable",
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
