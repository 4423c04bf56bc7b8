package ports

import (
	"context"

	"activity-dashboard-service/internal/activity/core/domain"
)

// ActivitySourcePort reads the whole activity table from its backing store.
type ActivitySourcePort interface {
	LoadActivity(ctx context.Context) (*domain.Table, error)

	// Name identifies the source in logs, metrics and load errors.
	Name() string
}
