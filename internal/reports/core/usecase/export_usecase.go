package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/rs/zerolog"

	activity "activity-dashboard-service/internal/activity/core/domain"
	activityusecase "activity-dashboard-service/internal/activity/core/usecase"
	metricsdomain "activity-dashboard-service/internal/metrics/core/domain"
	metricsusecase "activity-dashboard-service/internal/metrics/core/usecase"
	"activity-dashboard-service/internal/platform/observability"
	"activity-dashboard-service/internal/reports/core/domain"
	"activity-dashboard-service/internal/reports/core/ports"
)

type ExportConfig struct {
	DatasetName string
	Title       string
	KPIs        []metricsdomain.KPISpec
}

type ExportUseCase struct {
	reader  ports.ActivityReaderPort
	sheets  ports.SheetEncoderPort
	summary ports.SummaryEncoderPort
	cfg     ExportConfig
	logger  zerolog.Logger
	now     func() time.Time
}

func NewExportUseCase(
	reader ports.ActivityReaderPort,
	sheets ports.SheetEncoderPort,
	summary ports.SummaryEncoderPort,
	cfg ExportConfig,
	logger zerolog.Logger,
) *ExportUseCase {
	if cfg.KPIs == nil {
		cfg.KPIs = metricsdomain.DefaultKPIs()
	}
	return &ExportUseCase{
		reader:  reader,
		sheets:  sheets,
		summary: summary,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock replaces the clock stamped on summaries.
func (uc *ExportUseCase) WithClock(now func() time.Time) *ExportUseCase {
	uc.now = now
	return uc
}

// ExportTable writes every filtered row, all columns in source order, to a
// single-sheet spreadsheet. Only the mapped date column is rewritten, as
// YYYY-MM-DD; every other cell is passed through as loaded.
func (uc *ExportUseCase) ExportTable(ctx context.Context, in activityusecase.CriteriaInput) (*domain.Export, error) {
	ft, err := uc.reader.Execute(ctx, in)
	if err != nil {
		return nil, err
	}

	sheet := domain.Sheet{
		Name:    uc.cfg.DatasetName,
		Columns: ft.Table.Columns,
		Rows:    make([][]any, 0, len(ft.Rows)),
	}
	dateCol, hasDate := ft.Table.Mapping.Resolve(ft.Table.Columns)[activity.FieldDate]
	for _, r := range ft.Rows {
		line := make([]any, len(r.Values))
		copy(line, r.Values)
		if hasDate && dateCol < len(line) {
			if t, ok := line[dateCol].(time.Time); ok {
				line[dateCol] = t.Format("2006-01-02")
			}
		}
		sheet.Rows = append(sheet.Rows, line)
	}

	body, err := uc.sheets.EncodeSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("encode sheet: %w", err)
	}
	observability.RecordExport("xlsx")
	uc.logger.Info().Int("rows", len(sheet.Rows)).Str("format", "xlsx").Msg("table exported")

	return &domain.Export{
		Filename:    fileStem(uc.cfg.DatasetName) + ".xlsx",
		ContentType: domain.ContentTypeXLSX,
		Body:        body,
	}, nil
}

// ExportSummary renders the KPI totals of the filtered rows. A KPI whose
// column is absent fails the export with *MissingFieldError.
func (uc *ExportUseCase) ExportSummary(ctx context.Context, in activityusecase.CriteriaInput) (*domain.Export, error) {
	ft, err := uc.reader.Execute(ctx, in)
	if err != nil {
		return nil, err
	}

	kpis, err := metricsusecase.Summarize(ft.Table, ft.Rows, uc.cfg.KPIs)
	if err != nil {
		return nil, err
	}

	s := domain.Summary{
		Title:       uc.cfg.Title,
		GeneratedAt: uc.now(),
		From:        ft.Criteria.Start,
		To:          ft.Criteria.End,
		RowCount:    len(ft.Rows),
		Filters:     filterLines(in),
		KPIs:        kpis,
	}

	body, err := uc.summary.EncodeSummary(s)
	if err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}
	observability.RecordExport("pdf")
	uc.logger.Info().Int("rows", s.RowCount).Str("format", "pdf").Msg("summary exported")

	return &domain.Export{
		Filename:    fileStem(uc.cfg.DatasetName) + "_summary.pdf",
		ContentType: domain.ContentTypePDF,
		Body:        body,
	}, nil
}

func filterLines(in activityusecase.CriteriaInput) []domain.FilterLine {
	out := make([]domain.FilterLine, 0, len(in.Values))
	for f, vals := range in.Values {
		if len(vals) == 0 {
			continue
		}
		out = append(out, domain.FilterLine{Field: string(f), Values: vals})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

func fileStem(name string) string {
	stem := unsafeFileChars.ReplaceAllString(name, "_")
	if stem == "" || stem == "_" {
		return "activity"
	}
	return stem
}
