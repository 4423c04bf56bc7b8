package usecase

import (
	"context"
	"errors"
	"fmt"

	activity "activity-dashboard-service/internal/activity/core/domain"
	activityusecase "activity-dashboard-service/internal/activity/core/usecase"
	"activity-dashboard-service/internal/metrics/core/domain"
	"activity-dashboard-service/internal/metrics/core/ports"
)

var ErrUnknownChart = errors.New("unknown chart")

type GetDashboardUseCase struct {
	reader ports.ActivityReaderPort
	charts []domain.ChartSpec
	kpis   []domain.KPISpec
}

func NewGetDashboardUseCase(reader ports.ActivityReaderPort, charts []domain.ChartSpec, kpis []domain.KPISpec) *GetDashboardUseCase {
	if charts == nil {
		charts = domain.DefaultCharts()
	}
	if kpis == nil {
		kpis = domain.DefaultKPIs()
	}
	return &GetDashboardUseCase{reader: reader, charts: charts, kpis: kpis}
}

// Execute filters the activity table once and derives every KPI and chart
// from the filtered rows. Charts whose columns the table lacks are left out.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, in activityusecase.CriteriaInput) (*domain.Dashboard, error) {
	ft, err := uc.reader.Execute(ctx, in)
	if err != nil {
		return nil, err
	}

	kpis, err := Summarize(ft.Table, ft.Rows, uc.kpis)
	if err != nil {
		return nil, err
	}

	d := &domain.Dashboard{
		Start:    ft.Criteria.Start,
		End:      ft.Criteria.End,
		RowCount: len(ft.Rows),
		KPIs:     kpis,
		Charts:   make([]domain.Chart, 0, len(uc.charts)),
	}

	for _, cs := range uc.charts {
		if !available(ft.Table, cs) {
			continue
		}
		res, err := Aggregate(ft.Rows, cs.Spec)
		if err != nil {
			return nil, fmt.Errorf("chart %s: %w", cs.Name, err)
		}
		d.Charts = append(d.Charts, domain.Chart{ChartSpec: cs, Result: res})
	}

	return d, nil
}

// Chart computes a single catalogue chart. A chart whose columns are absent
// yields a *MissingFieldError.
func (uc *GetDashboardUseCase) Chart(ctx context.Context, name string, in activityusecase.CriteriaInput) (*domain.Chart, error) {
	var spec *domain.ChartSpec
	for i := range uc.charts {
		if uc.charts[i].Name == name {
			spec = &uc.charts[i]
			break
		}
	}
	if spec == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}

	ft, err := uc.reader.Execute(ctx, in)
	if err != nil {
		return nil, err
	}

	for _, f := range RequiredFields(spec.Spec) {
		if !ft.Table.HasField(f) {
			return nil, &MissingFieldError{Field: f, Column: ft.Table.Mapping[f], Purpose: "chart " + name}
		}
	}

	res, err := Aggregate(ft.Rows, spec.Spec)
	if err != nil {
		return nil, err
	}
	return &domain.Chart{ChartSpec: *spec, Result: res}, nil
}

// Geo returns the filtered rows that carry both coordinates, labelled by locality.
func (uc *GetDashboardUseCase) Geo(ctx context.Context, in activityusecase.CriteriaInput) ([]domain.GeoPoint, error) {
	ft, err := uc.reader.Execute(ctx, in)
	if err != nil {
		return nil, err
	}

	points := make([]domain.GeoPoint, 0)
	if !ft.Table.HasField(activity.FieldLatitude) || !ft.Table.HasField(activity.FieldLongitude) {
		return points, nil
	}

	for _, r := range ft.Rows {
		lat, okLat := r.Number(activity.FieldLatitude)
		lon, okLon := r.Number(activity.FieldLongitude)
		if !okLat || !okLon {
			continue
		}
		label, _ := r.Category(activity.FieldLocality)
		points = append(points, domain.GeoPoint{Latitude: lat, Longitude: lon, Label: label})
	}
	return points, nil
}

// Charts lists the configured chart catalogue.
func (uc *GetDashboardUseCase) Charts() []domain.ChartSpec {
	return uc.charts
}

func available(t *activity.Table, cs domain.ChartSpec) bool {
	for _, f := range RequiredFields(cs.Spec) {
		if !t.HasField(f) {
			return false
		}
	}
	return true
}
