package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	activityhttp "activity-dashboard-service/internal/activity/adapters/http/fiber"
	activity "activity-dashboard-service/internal/activity/core/domain"
	activityusecase "activity-dashboard-service/internal/activity/core/usecase"
	"activity-dashboard-service/internal/metrics/core/domain"
	"activity-dashboard-service/internal/metrics/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type GetMetricsUseCase interface {
	Execute(ctx context.Context, in usecase.GetMetricsInput) (*domain.AggregateResult, error)
}

type GetDashboardUseCase interface {
	Execute(ctx context.Context, in activityusecase.CriteriaInput) (*domain.Dashboard, error)
	Chart(ctx context.Context, name string, in activityusecase.CriteriaInput) (*domain.Chart, error)
	Geo(ctx context.Context, in activityusecase.CriteriaInput) ([]domain.GeoPoint, error)
}

type ChartRenderer interface {
	RenderPNG(c domain.Chart) ([]byte, error)
}

type MetricsHandler struct {
	uc          GetMetricsUseCase
	dashboardUC GetDashboardUseCase
	renderer    ChartRenderer
}

func NewMetricsHandler(uc GetMetricsUseCase, dashboardUC GetDashboardUseCase, renderer ChartRenderer) *MetricsHandler {
	return &MetricsHandler{uc: uc, dashboardUC: dashboardUC, renderer: renderer}
}

// GetMetrics godoc
// @Summary Query one aggregate
// @Description Groups the filtered activity rows by a dimension and counts or sums them
// @Tags Metrics
// @Produce json
// @Param dimension query string true "date | hour | origin | locality | model | tag | concept | user_id"
// @Param op query string false "count (default) | sum"
// @Param field query string false "Numeric field summed when op=sum"
// @Param top query int false "Keep the N largest groups (categorical dimensions)"
// @Param from query string false "Start date YYYY-MM-DD"
// @Param to query string false "End date YYYY-MM-DD"
// @Param origin query []string false "Origins" collectionFormat(multi)
// @Param locality query []string false "Localities" collectionFormat(multi)
// @Param model query []string false "Models" collectionFormat(multi)
// @Param tag query []string false "Tags" collectionFormat(multi)
// @Param concept query []string false "Concepts" collectionFormat(multi)
// @Success 200 {object} AggregateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /metrics [get]
func (h *MetricsHandler) GetMetrics(c *fiber.Ctx) error {
	dimension := c.Query("dimension", "")
	if dimension == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_aggregate",
			Message: "dimension is required",
		})
	}

	top := 0
	if raw := c.Query("top", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_aggregate",
				Message: "invalid 'top' parameter",
			})
		}
		top = n
	}

	criteria, err := activityhttp.CriteriaFromQuery(c)
	if err != nil {
		return writeError(c, err)
	}

	in := usecase.GetMetricsInput{
		Criteria:  criteria,
		Dimension: activity.Field(dimension),
		Op:        domain.Operator(c.Query("op", "")),
		Field:     activity.Field(c.Query("field", "")),
		TopN:      top,
	}

	res, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(toAggregateResponse(*res))
}

// GetDashboard godoc
// @Summary Dashboard view
// @Description Returns the KPIs and every chart whose columns are present, for the given filters
// @Tags Metrics
// @Produce json
// @Param from query string false "Start date YYYY-MM-DD"
// @Param to query string false "End date YYYY-MM-DD"
// @Param origin query []string false "Origins" collectionFormat(multi)
// @Param locality query []string false "Localities" collectionFormat(multi)
// @Param model query []string false "Models" collectionFormat(multi)
// @Param tag query []string false "Tags" collectionFormat(multi)
// @Param concept query []string false "Concepts" collectionFormat(multi)
// @Success 200 {object} DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /dashboard [get]
func (h *MetricsHandler) GetDashboard(c *fiber.Ctx) error {
	criteria, err := activityhttp.CriteriaFromQuery(c)
	if err != nil {
		return writeError(c, err)
	}

	d, err := h.dashboardUC.Execute(c.UserContext(), criteria)
	if err != nil {
		return writeError(c, err)
	}

	resp := DashboardResponse{
		From:     formatDate(d.Start),
		To:       formatDate(d.End),
		RowCount: d.RowCount,
		KPIs:     make([]KPIResponse, 0, len(d.KPIs)),
		Charts:   make([]ChartResponse, 0, len(d.Charts)),
	}
	for _, k := range d.KPIs {
		resp.KPIs = append(resp.KPIs, KPIResponse{Name: k.Name, Label: k.Label, Value: k.Value})
	}
	for _, ch := range d.Charts {
		resp.Charts = append(resp.Charts, ChartResponse{
			Name:              ch.Name,
			Title:             ch.Title,
			Kind:              string(ch.Kind),
			XLabel:            ch.XLabel,
			YLabel:            ch.YLabel,
			AggregateResponse: toAggregateResponse(ch.Result),
		})
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// GetChart godoc
// @Summary Render a dashboard chart
// @Description Renders one chart of the catalogue as PNG
// @Tags Metrics
// @Produce png
// @Param name path string true "Chart name, e.g. events_by_day"
// @Param from query string false "Start date YYYY-MM-DD"
// @Param to query string false "End date YYYY-MM-DD"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /charts/{name} [get]
func (h *MetricsHandler) GetChart(c *fiber.Ctx) error {
	criteria, err := activityhttp.CriteriaFromQuery(c)
	if err != nil {
		return writeError(c, err)
	}

	ch, err := h.dashboardUC.Chart(c.UserContext(), c.Params("name"), criteria)
	if err != nil {
		return writeError(c, err)
	}
	if ch.Result.NoData() {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "no_data",
			Message: "no rows match the selected filters",
		})
	}

	png, err := h.renderer.RenderPNG(*ch)
	if err != nil {
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Status(http.StatusOK).Send(png)
}

// GetGeo godoc
// @Summary Map points
// @Description Returns the filtered rows that carry coordinates
// @Tags Metrics
// @Produce json
// @Param from query string false "Start date YYYY-MM-DD"
// @Param to query string false "End date YYYY-MM-DD"
// @Success 200 {object} GeoResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /geo [get]
func (h *MetricsHandler) GetGeo(c *fiber.Ctx) error {
	criteria, err := activityhttp.CriteriaFromQuery(c)
	if err != nil {
		return writeError(c, err)
	}

	points, err := h.dashboardUC.Geo(c.UserContext(), criteria)
	if err != nil {
		return writeError(c, err)
	}

	resp := GeoResponse{Points: make([]GeoPointResponse, 0, len(points))}
	for _, p := range points {
		resp.Points = append(resp.Points, GeoPointResponse{Latitude: p.Latitude, Longitude: p.Longitude, Label: p.Label})
	}
	return c.Status(http.StatusOK).JSON(resp)
}

func toAggregateResponse(r domain.AggregateResult) AggregateResponse {
	resp := AggregateResponse{
		Dimension: string(r.Dimension),
		Op:        string(r.Op),
		Field:     string(r.Field),
		TopN:      r.TopN,
		Total:     r.Total(),
		NoData:    r.NoData(),
		Groups:    make([]GroupResponse, 0, len(r.Groups)),
	}
	for _, g := range r.Groups {
		resp.Groups = append(resp.Groups, GroupResponse{Key: g.Key, Value: g.Value})
	}
	return resp
}

func writeError(c *fiber.Ctx, err error) error {
	var missing *usecase.MissingFieldError
	switch {
	case errors.Is(err, usecase.ErrInvalidDimension),
		errors.Is(err, usecase.ErrInvalidOperator),
		errors.Is(err, usecase.ErrSumFieldRequired),
		errors.Is(err, usecase.ErrInvalidTopN):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_aggregate",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrUnknownChart):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "unknown_chart",
			Message: err.Error(),
		})
	case errors.As(err, &missing):
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "configuration_error",
			Message: missing.Error(),
		})
	default:
		return activityhttp.WriteError(c, err)
	}
}

// formatDate leaves the bound empty when the table has no dated rows.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
