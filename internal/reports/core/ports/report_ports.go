package ports

import (
	"context"

	activityusecase "activity-dashboard-service/internal/activity/core/usecase"
	"activity-dashboard-service/internal/reports/core/domain"
)

// ActivityReaderPort returns the filtered activity table.
type ActivityReaderPort interface {
	Execute(ctx context.Context, in activityusecase.CriteriaInput) (*activityusecase.FilteredTable, error)
}

type SheetEncoderPort interface {
	EncodeSheet(s domain.Sheet) ([]byte, error)
}

type SummaryEncoderPort interface {
	EncodeSummary(s domain.Summary) ([]byte, error)
}
