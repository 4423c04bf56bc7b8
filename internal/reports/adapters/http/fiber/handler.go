package fiber

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	activityhttp "activity-dashboard-service/internal/activity/adapters/http/fiber"
	activityusecase "activity-dashboard-service/internal/activity/core/usecase"
	metricsusecase "activity-dashboard-service/internal/metrics/core/usecase"
	"activity-dashboard-service/internal/reports/core/domain"

	"github.com/gofiber/fiber/v2"
)

type ExportUseCase interface {
	ExportTable(ctx context.Context, in activityusecase.CriteriaInput) (*domain.Export, error)
	ExportSummary(ctx context.Context, in activityusecase.CriteriaInput) (*domain.Export, error)
}

type ReportHandler struct {
	uc ExportUseCase
}

func NewReportHandler(uc ExportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// ExportTable godoc
// @Summary Download the filtered table
// @Description Spreadsheet with every filtered row and all source columns
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string false "Start date YYYY-MM-DD"
// @Param to query string false "End date YYYY-MM-DD"
// @Param origin query []string false "Origins" collectionFormat(multi)
// @Param locality query []string false "Localities" collectionFormat(multi)
// @Param model query []string false "Models" collectionFormat(multi)
// @Param tag query []string false "Tags" collectionFormat(multi)
// @Param concept query []string false "Concepts" collectionFormat(multi)
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /exports/table.xlsx [get]
func (h *ReportHandler) ExportTable(c *fiber.Ctx) error {
	return h.export(c, h.uc.ExportTable)
}

// ExportSummary godoc
// @Summary Download the summary document
// @Description One-page PDF with the KPI totals of the filtered rows
// @Tags Reports
// @Produce application/pdf
// @Param from query string false "Start date YYYY-MM-DD"
// @Param to query string false "End date YYYY-MM-DD"
// @Param origin query []string false "Origins" collectionFormat(multi)
// @Param locality query []string false "Localities" collectionFormat(multi)
// @Param model query []string false "Models" collectionFormat(multi)
// @Param tag query []string false "Tags" collectionFormat(multi)
// @Param concept query []string false "Concepts" collectionFormat(multi)
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /exports/summary.pdf [get]
func (h *ReportHandler) ExportSummary(c *fiber.Ctx) error {
	return h.export(c, h.uc.ExportSummary)
}

func (h *ReportHandler) export(c *fiber.Ctx, run func(context.Context, activityusecase.CriteriaInput) (*domain.Export, error)) error {
	criteria, err := activityhttp.CriteriaFromQuery(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := run(c.UserContext(), criteria)
	if err != nil {
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, out.Filename))
	return c.Status(http.StatusOK).Send(out.Body)
}

func writeError(c *fiber.Ctx, err error) error {
	var missing *metricsusecase.MissingFieldError
	if errors.As(err, &missing) {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "configuration_error",
			Message: missing.Error(),
		})
	}
	return activityhttp.WriteError(c, err)
}
