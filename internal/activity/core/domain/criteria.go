package domain

import "time"

// FilterCriteria narrows the activity table. Start and End are inclusive
// calendar dates. A field without an entry in Allowed is unconstrained.
type FilterCriteria struct {
	Start   time.Time
	End     time.Time
	Allowed map[Field]map[string]struct{}
}

func NewFilterCriteria(start, end time.Time) FilterCriteria {
	return FilterCriteria{
		Start:   *dateOf(start),
		End:     *dateOf(end),
		Allowed: map[Field]map[string]struct{}{},
	}
}

// Allow constrains f to values. Calling it with no values constrains f to
// the empty set, which excludes every row.
func (c *FilterCriteria) Allow(f Field, values ...string) {
	if c.Allowed == nil {
		c.Allowed = map[Field]map[string]struct{}{}
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	c.Allowed[f] = set
}

// Constrained reports whether f has an allowed-values set.
func (c FilterCriteria) Constrained(f Field) bool {
	_, ok := c.Allowed[f]
	return ok
}

// Matches applies every active predicate to row.
func (c FilterCriteria) Matches(row *ActivityRow) bool {
	if row.Date == nil {
		return false
	}
	if row.Date.Before(c.Start) || row.Date.After(c.End) {
		return false
	}
	for f, set := range c.Allowed {
		v, ok := row.Category(f)
		if !ok {
			return false
		}
		if _, in := set[v]; !in {
			return false
		}
	}
	return true
}
