package ports

import (
	"context"

	activityusecase "activity-dashboard-service/internal/activity/core/usecase"
)

// ActivityReaderPort yields the filtered activity rows for a user selection.
type ActivityReaderPort interface {
	Execute(ctx context.Context, in activityusecase.CriteriaInput) (*activityusecase.FilteredTable, error)
}
