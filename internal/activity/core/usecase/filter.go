package usecase

import (
	"time"

	"activity-dashboard-service/internal/activity/core/domain"
)

// Filter returns the rows that satisfy every predicate of c. The input
// slice and rows are left untouched; the result shares row pointers.
func Filter(rows []*domain.ActivityRow, c domain.FilterCriteria) []*domain.ActivityRow {
	out := make([]*domain.ActivityRow, 0, len(rows))
	if c.Start.After(c.End) {
		return out
	}
	for _, r := range rows {
		if c.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// CriteriaInput is the user's raw selection. Nil bounds and empty value
// lists fall back to the table defaults.
type CriteriaInput struct {
	From   *time.Time
	To     *time.Time
	Values map[domain.Field][]string
}

// DefaultCriteria selects the full date range of t and, for every filter
// field present in t, all of its distinct non-null values.
func DefaultCriteria(t *domain.Table) domain.FilterCriteria {
	return ResolveCriteria(t, CriteriaInput{})
}

// ResolveCriteria completes in with the defaults taken from t.
func ResolveCriteria(t *domain.Table, in CriteriaInput) domain.FilterCriteria {
	min, max, _ := t.DateRange()
	if in.From != nil {
		min = *in.From
	}
	if in.To != nil {
		max = *in.To
	}

	c := domain.NewFilterCriteria(min, max)
	for _, f := range domain.FilterFields {
		if vals := in.Values[f]; len(vals) > 0 {
			c.Allow(f, vals...)
			continue
		}
		if t.HasField(f) {
			c.Allow(f, t.Distinct(f)...)
		}
	}
	return c
}

// FilteredTable bundles a table with the rows selected from it.
type FilteredTable struct {
	Table    *domain.Table
	Criteria domain.FilterCriteria
	Rows     []*domain.ActivityRow
}
