package usecase_test

import (
	"errors"
	"fmt"
	"testing"

	activity "activity-dashboard-service/internal/activity/core/domain"
	"activity-dashboard-service/internal/metrics/core/domain"
	"activity-dashboard-service/internal/metrics/core/usecase"
)

func newTable(cols []string, recs ...[]any) *activity.Table {
	return activity.NewTable("temporal_amad", cols, activity.DefaultColumnMapping(), recs)
}

func exampleRows() []*activity.ActivityRow {
	return newTable([]string{"fecha", "origen"},
		[]any{"2024-01-01", "A"},
		[]any{"2024-01-02", "B"},
		[]any{"2024-01-02", "A"},
	).Rows
}

// busyTable has nulls sprinkled over every field used below.
func busyTable() *activity.Table {
	locs := []any{"Quito", "Guayaquil", "Cuenca", "Loja", "Ambato", "Manta", nil}
	var recs [][]any
	for i := 0; i < 200; i++ {
		var users any = int64(i % 5)
		if i%9 == 0 {
			users = nil
		}
		var hour any = fmt.Sprintf("%02d:00:00", (i*7)%24)
		if i%11 == 0 {
			hour = "??"
		}
		recs = append(recs, []any{
			fmt.Sprintf("2024-02-%02d", i%28+1),
			hour,
			locs[(i*i)%len(locs)],
			users,
		})
	}
	return newTable([]string{"fecha", "hora", "localidad", "Usuarios Únicos"}, recs...)
}

// ------------------------------------------------------------
// EXAMPLES
// ------------------------------------------------------------

func TestAggregate_CountByDate(t *testing.T) {
	res, err := usecase.Aggregate(exampleRows(), domain.AggregateSpec{Dimension: activity.FieldDate, Op: domain.OpCount})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.Group{{Key: "2024-01-01", Value: 1}, {Key: "2024-01-02", Value: 2}}
	if len(res.Groups) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(res.Groups))
	}
	for i := range want {
		if res.Groups[i] != want[i] {
			t.Fatalf("group %d: expected %+v, got %+v", i, want[i], res.Groups[i])
		}
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	res, err := usecase.Aggregate(nil, domain.AggregateSpec{Dimension: activity.FieldDate, Op: domain.OpCount})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.NoData() {
		t.Fatalf("expected no data, got %+v", res.Groups)
	}
	if res.Groups == nil {
		t.Fatalf("expected an empty, non-nil group list")
	}
}

func TestAggregate_HourOrderedNumerically(t *testing.T) {
	rows := newTable([]string{"fecha", "hora"},
		[]any{"2024-01-01", "10:00:00"},
		[]any{"2024-01-01", "09:00:00"},
		[]any{"2024-01-01", "25:00:00"},
		[]any{"2024-01-01", "nope"},
	).Rows

	res, err := usecase.Aggregate(rows, domain.AggregateSpec{Dimension: activity.FieldHour, Op: domain.OpCount})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	keys := []string{}
	for _, g := range res.Groups {
		keys = append(keys, g.Key)
	}
	if fmt.Sprint(keys) != "[9 10]" {
		t.Fatalf("expected [9 10], got %v", keys)
	}
}

// ------------------------------------------------------------
// PROPERTIES
// ------------------------------------------------------------

func TestAggregate_CountConservesRows(t *testing.T) {
	tbl := busyTable()
	for _, dim := range []activity.Field{activity.FieldDate, activity.FieldHour, activity.FieldLocality} {
		res, err := usecase.Aggregate(tbl.Rows, domain.AggregateSpec{Dimension: dim, Op: domain.OpCount})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", dim, err)
		}

		nonNull := 0
		for _, r := range tbl.Rows {
			switch dim {
			case activity.FieldDate:
				if r.Date != nil {
					nonNull++
				}
			case activity.FieldHour:
				if r.Hour != nil {
					nonNull++
				}
			default:
				if _, ok := r.Category(dim); ok {
					nonNull++
				}
			}
		}
		if int(res.Total()) != nonNull {
			t.Fatalf("%s: group sizes sum to %v, want %d", dim, res.Total(), nonNull)
		}
	}
}

func TestAggregate_SumMatchesRowSum(t *testing.T) {
	tbl := busyTable()
	res, err := usecase.Aggregate(tbl.Rows, domain.AggregateSpec{
		Dimension: activity.FieldHour,
		Op:        domain.OpSum,
		Field:     activity.FieldUniqueUsers,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var want float64
	for _, r := range tbl.Rows {
		if r.Hour == nil {
			continue
		}
		if v, ok := r.Number(activity.FieldUniqueUsers); ok {
			want += v
		}
	}
	if res.Total() != want {
		t.Fatalf("sum over groups %v != row sum %v", res.Total(), want)
	}
}

func TestAggregate_TopN(t *testing.T) {
	tbl := busyTable()
	full, err := usecase.Aggregate(tbl.Rows, domain.AggregateSpec{Dimension: activity.FieldLocality, Op: domain.OpCount})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top, err := usecase.Aggregate(tbl.Rows, domain.AggregateSpec{Dimension: activity.FieldLocality, Op: domain.OpCount, TopN: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(top.Groups) > 3 {
		t.Fatalf("expected at most 3 groups, got %d", len(top.Groups))
	}

	included := map[string]bool{}
	minIncluded := top.Groups[0].Value
	for _, g := range top.Groups {
		included[g.Key] = true
		if g.Value < minIncluded {
			minIncluded = g.Value
		}
	}
	for _, g := range full.Groups {
		if !included[g.Key] && g.Value > minIncluded {
			t.Fatalf("omitted group %s (%v) beats an included group (%v)", g.Key, g.Value, minIncluded)
		}
	}
	for i := 1; i < len(top.Groups); i++ {
		if top.Groups[i].Value > top.Groups[i-1].Value {
			t.Fatalf("expected descending values, got %+v", top.Groups)
		}
	}
}

func TestAggregate_DateAscending(t *testing.T) {
	res, err := usecase.Aggregate(busyTable().Rows, domain.AggregateSpec{Dimension: activity.FieldDate, Op: domain.OpCount})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(res.Groups); i++ {
		if res.Groups[i].Key <= res.Groups[i-1].Key {
			t.Fatalf("dates out of order at %d: %s then %s", i, res.Groups[i-1].Key, res.Groups[i].Key)
		}
	}
}

// ------------------------------------------------------------
// VALIDATION
// ------------------------------------------------------------

func TestAggregate_Validation(t *testing.T) {
	cases := []struct {
		name string
		spec domain.AggregateSpec
		want error
	}{
		{"numeric dimension", domain.AggregateSpec{Dimension: activity.FieldLatitude, Op: domain.OpCount}, usecase.ErrInvalidDimension},
		{"unknown dimension", domain.AggregateSpec{Dimension: "weather", Op: domain.OpCount}, usecase.ErrInvalidDimension},
		{"unknown op", domain.AggregateSpec{Dimension: activity.FieldDate, Op: "avg"}, usecase.ErrInvalidOperator},
		{"sum without field", domain.AggregateSpec{Dimension: activity.FieldDate, Op: domain.OpSum}, usecase.ErrSumFieldRequired},
		{"sum of category", domain.AggregateSpec{Dimension: activity.FieldDate, Op: domain.OpSum, Field: activity.FieldOrigin}, usecase.ErrSumFieldRequired},
		{"negative top", domain.AggregateSpec{Dimension: activity.FieldOrigin, Op: domain.OpCount, TopN: -1}, usecase.ErrInvalidTopN},
	}
	for _, tc := range cases {
		_, err := usecase.Aggregate(exampleRows(), tc.spec)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

// ------------------------------------------------------------
// KPI
// ------------------------------------------------------------

func TestSummarize(t *testing.T) {
	tbl := newTable([]string{"fecha", "numero", "total_dia"},
		[]any{"2024-01-01", "u1", int64(10)},
		[]any{"2024-01-01", "u2", nil},
		[]any{"2024-01-02", "u1", "5"},
		[]any{"2024-01-02", nil, int64(1)},
	)
	specs := []domain.KPISpec{
		{Name: "total_events", Kind: domain.KPICount},
		{Name: "total_day", Kind: domain.KPISum, Field: activity.FieldTotalDay},
		{Name: "unique_users", Kind: domain.KPIDistinct, Field: activity.FieldUserID},
	}

	kpis, err := usecase.Summarize(tbl, tbl.Rows, specs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]float64{"total_events": 4, "total_day": 16, "unique_users": 2}
	for _, k := range kpis {
		if k.Value != want[k.Name] {
			t.Fatalf("%s: expected %v, got %v", k.Name, want[k.Name], k.Value)
		}
	}
}

func TestSummarize_MissingColumnIsFatal(t *testing.T) {
	tbl := newTable([]string{"fecha"}, []any{"2024-01-01"})

	kpis, err := usecase.Summarize(tbl, tbl.Rows, []domain.KPISpec{
		{Name: "total_app", Kind: domain.KPISum, Field: activity.FieldTotalApp},
	})
	if kpis != nil {
		t.Fatalf("expected no KPIs on error")
	}
	var missing *usecase.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingFieldError, got %v", err)
	}
	if missing.Field != activity.FieldTotalApp || missing.Column != "total_app" {
		t.Fatalf("unexpected missing field: %+v", missing)
	}
}

func TestSummarize_EmptyRowsStillValid(t *testing.T) {
	tbl := newTable([]string{"fecha", "total_dia"}, []any{"2024-01-01", int64(3)})

	kpis, err := usecase.Summarize(tbl, nil, []domain.KPISpec{
		{Name: "total_day", Kind: domain.KPISum, Field: activity.FieldTotalDay},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kpis[0].Value != 0 {
		t.Fatalf("expected 0, got %v", kpis[0].Value)
	}
}
