package usecase

import (
	"context"
	"time"

	"activity-dashboard-service/internal/activity/core/domain"
)

// TableLoader is satisfied by LoadActivityUseCase.
type TableLoader interface {
	Execute(ctx context.Context) (*domain.Table, error)
}

// FilterActivityUseCase runs the load -> filter step shared by the
// dashboard, metrics and export endpoints.
type FilterActivityUseCase struct {
	loader TableLoader
}

func NewFilterActivityUseCase(loader TableLoader) *FilterActivityUseCase {
	return &FilterActivityUseCase{loader: loader}
}

func (uc *FilterActivityUseCase) Execute(ctx context.Context, in CriteriaInput) (*FilteredTable, error) {
	t, err := uc.loader.Execute(ctx)
	if err != nil {
		return nil, err
	}

	c := ResolveCriteria(t, in)
	return &FilteredTable{
		Table:    t,
		Criteria: c,
		Rows:     Filter(t.Rows, c),
	}, nil
}

// FilterOptions describes the selectable values of the filter surface.
type FilterOptions struct {
	MinDate  *time.Time
	MaxDate  *time.Time
	Values   map[domain.Field][]string
	Rows     int
	LoadedAt time.Time
}

// Options lists the date bounds and distinct filter values of the table.
func (uc *FilterActivityUseCase) Options(ctx context.Context) (*FilterOptions, error) {
	t, err := uc.loader.Execute(ctx)
	if err != nil {
		return nil, err
	}

	opts := &FilterOptions{Values: map[domain.Field][]string{}}
	if min, max, ok := t.DateRange(); ok {
		opts.MinDate, opts.MaxDate = &min, &max
	}
	for _, f := range domain.FilterFields {
		if t.HasField(f) {
			opts.Values[f] = t.Distinct(f)
		}
	}
	opts.Rows = len(t.Rows)
	opts.LoadedAt = t.LoadedAt
	return opts, nil
}
