package usecase

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	activity "activity-dashboard-service/internal/activity/core/domain"
	"activity-dashboard-service/internal/metrics/core/domain"
)

var (
	ErrInvalidDimension = errors.New("invalid dimension")
	ErrInvalidOperator  = errors.New("invalid operator")
	ErrSumFieldRequired = errors.New("sum requires a numeric field")
	ErrInvalidTopN      = errors.New("invalid top_n")
	ErrInvalidKPI       = errors.New("invalid kpi")
)

// MissingFieldError reports a field required by a KPI, chart or export
// whose column the loaded table does not carry.
type MissingFieldError struct {
	Field   activity.Field
	Column  string
	Purpose string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s requires field %s (column %q) which is not in the activity table", e.Purpose, e.Field, e.Column)
}

// ValidateSpec checks that s describes a computable aggregate.
func ValidateSpec(s domain.AggregateSpec) error {
	if !s.Dimension.IsOrdinal() && !s.Dimension.IsCategorical() {
		return fmt.Errorf("%w: %q", ErrInvalidDimension, s.Dimension)
	}
	switch s.Op {
	case domain.OpCount:
	case domain.OpSum:
		if !s.Field.IsNumeric() {
			return fmt.Errorf("%w: %q", ErrSumFieldRequired, s.Field)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOperator, s.Op)
	}
	if s.TopN < 0 {
		return ErrInvalidTopN
	}
	return nil
}

// RequiredFields lists the fields the aggregate reads.
func RequiredFields(s domain.AggregateSpec) []activity.Field {
	if s.Op == domain.OpSum {
		return []activity.Field{s.Dimension, s.Field}
	}
	return []activity.Field{s.Dimension}
}

type bucket struct {
	key   string
	rank  int64
	value float64
}

// Aggregate groups rows by s.Dimension, skipping rows where the dimension
// is null. Ordinal dimensions come back in ascending key order;
// categorical ones by descending value, cut to TopN when set.
func Aggregate(rows []*activity.ActivityRow, s domain.AggregateSpec) (domain.AggregateResult, error) {
	res := domain.AggregateResult{
		Dimension: s.Dimension,
		Op:        s.Op,
		Field:     s.Field,
		TopN:      s.TopN,
		Groups:    []domain.Group{},
	}
	if err := ValidateSpec(s); err != nil {
		return res, err
	}

	buckets := make(map[string]*bucket)
	for _, r := range rows {
		key, rank, ok := groupKey(r, s.Dimension)
		if !ok {
			continue
		}
		b, seen := buckets[key]
		if !seen {
			b = &bucket{key: key, rank: rank}
			buckets[key] = b
		}
		switch s.Op {
		case domain.OpCount:
			b.value++
		case domain.OpSum:
			if v, ok := r.Number(s.Field); ok {
				b.value += v
			}
		}
	}

	list := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		list = append(list, b)
	}

	if s.Dimension.IsOrdinal() {
		sort.Slice(list, func(i, j int) bool { return list[i].rank < list[j].rank })
	} else {
		sort.Slice(list, func(i, j int) bool {
			if list[i].value != list[j].value {
				return list[i].value > list[j].value
			}
			return list[i].key < list[j].key
		})
		if s.TopN > 0 && len(list) > s.TopN {
			list = list[:s.TopN]
		}
	}

	for _, b := range list {
		res.Groups = append(res.Groups, domain.Group{Key: b.key, Value: b.value})
	}
	return res, nil
}

func groupKey(r *activity.ActivityRow, f activity.Field) (string, int64, bool) {
	switch f {
	case activity.FieldDate:
		if r.Date == nil {
			return "", 0, false
		}
		return r.Date.Format("2006-01-02"), r.Date.Unix(), true
	case activity.FieldHour:
		if r.Hour == nil {
			return "", 0, false
		}
		return strconv.Itoa(*r.Hour), int64(*r.Hour), true
	default:
		v, ok := r.Category(f)
		return v, 0, ok
	}
}

// Summarize computes the KPI figures over rows. Sum and distinct KPIs
// need their field's column in t; otherwise a *MissingFieldError is returned.
func Summarize(t *activity.Table, rows []*activity.ActivityRow, specs []domain.KPISpec) ([]domain.KPI, error) {
	out := make([]domain.KPI, 0, len(specs))
	for _, s := range specs {
		k := domain.KPI{Name: s.Name, Label: s.Label}

		switch s.Kind {
		case domain.KPICount:
			k.Value = float64(len(rows))

		case domain.KPISum:
			if !s.Field.IsNumeric() {
				return nil, fmt.Errorf("%w: %s sums non-numeric field %q", ErrInvalidKPI, s.Name, s.Field)
			}
			if !t.HasField(s.Field) {
				return nil, &MissingFieldError{Field: s.Field, Column: t.Mapping[s.Field], Purpose: "kpi " + s.Name}
			}
			for _, r := range rows {
				if v, ok := r.Number(s.Field); ok {
					k.Value += v
				}
			}

		case domain.KPIDistinct:
			if !t.HasField(s.Field) {
				return nil, &MissingFieldError{Field: s.Field, Column: t.Mapping[s.Field], Purpose: "kpi " + s.Name}
			}
			seen := make(map[string]struct{})
			for _, r := range rows {
				if v, ok := distinctValue(r, s.Field); ok {
					seen[v] = struct{}{}
				}
			}
			k.Value = float64(len(seen))

		default:
			return nil, fmt.Errorf("%w: %s has kind %q", ErrInvalidKPI, s.Name, s.Kind)
		}

		out = append(out, k)
	}
	return out, nil
}

func distinctValue(r *activity.ActivityRow, f activity.Field) (string, bool) {
	if key, _, ok := groupKey(r, f); ok {
		return key, true
	}
	if v, ok := r.Number(f); ok {
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	return "", false
}
