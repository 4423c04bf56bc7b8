package usecase

import (
	"context"

	activity "activity-dashboard-service/internal/activity/core/domain"
	activityusecase "activity-dashboard-service/internal/activity/core/usecase"
	"activity-dashboard-service/internal/metrics/core/domain"
	"activity-dashboard-service/internal/metrics/core/ports"
)

type GetMetricsInput struct {
	Criteria activityusecase.CriteriaInput

	Dimension activity.Field
	Op        domain.Operator
	Field     activity.Field // summed field, op=sum only
	TopN      int
}

type GetMetricsUseCase struct {
	reader ports.ActivityReaderPort
}

func NewGetMetricsUseCase(reader ports.ActivityReaderPort) *GetMetricsUseCase {
	return &GetMetricsUseCase{reader: reader}
}

// Execute validates the requested aggregate, filters the activity table and
// groups the surviving rows.
func (uc *GetMetricsUseCase) Execute(ctx context.Context, in GetMetricsInput) (*domain.AggregateResult, error) {
	spec := domain.AggregateSpec{
		Dimension: in.Dimension,
		Op:        in.Op,
		Field:     in.Field,
		TopN:      in.TopN,
	}
	if spec.Op == "" {
		spec.Op = domain.OpCount
	}

	if err := ValidateSpec(spec); err != nil {
		return nil, err
	}

	ft, err := uc.reader.Execute(ctx, in.Criteria)
	if err != nil {
		return nil, err
	}

	for _, f := range RequiredFields(spec) {
		if !ft.Table.HasField(f) {
			return nil, &MissingFieldError{Field: f, Column: ft.Table.Mapping[f], Purpose: "aggregate"}
		}
	}

	result, err := Aggregate(ft.Rows, spec)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
