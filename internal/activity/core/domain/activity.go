package domain

import (
	"sort"
	"time"
)

// Field is a logical column of the activity table, independent of how the
// source names it.
type Field string

const (
	FieldDate           Field = "date"
	FieldHour           Field = "hour"
	FieldOrigin         Field = "origin"
	FieldLocality       Field = "locality"
	FieldModel          Field = "model"
	FieldTag            Field = "tag"
	FieldConcept        Field = "concept"
	FieldLatitude       Field = "latitude"
	FieldLongitude      Field = "longitude"
	FieldTotalDay       Field = "total_day"
	FieldTotalApp       Field = "total_app"
	FieldTotalByConcept Field = "total_by_concept"
	FieldTotalTag       Field = "total_tag"
	FieldUserID         Field = "user_id"
	FieldUniqueUsers    Field = "unique_users"
)

// FilterFields are the categorical fields exposed as multi-select filters.
var FilterFields = []Field{FieldOrigin, FieldLocality, FieldModel, FieldTag, FieldConcept}

var categoricalFields = map[Field]bool{
	FieldOrigin:   true,
	FieldLocality: true,
	FieldModel:    true,
	FieldTag:      true,
	FieldConcept:  true,
	FieldUserID:   true,
}

var numericFields = map[Field]bool{
	FieldLatitude:       true,
	FieldLongitude:      true,
	FieldTotalDay:       true,
	FieldTotalApp:       true,
	FieldTotalByConcept: true,
	FieldTotalTag:       true,
	FieldUniqueUsers:    true,
}

func (f Field) IsCategorical() bool { return categoricalFields[f] }

func (f Field) IsNumeric() bool { return numericFields[f] }

// IsOrdinal reports whether groups keyed by f are ordered by key.
func (f Field) IsOrdinal() bool { return f == FieldDate || f == FieldHour }

func (f Field) IsKnown() bool {
	return f.IsOrdinal() || f.IsCategorical() || f.IsNumeric()
}

// ActivityRow is one record of the activity table. Rows are built once at
// load time and never mutated afterwards.
type ActivityRow struct {
	Date *time.Time // calendar date at UTC midnight
	Hour *int       // 0-23

	Categories map[Field]string
	Numbers    map[Field]float64

	// Values holds every source cell in source column order, with the date
	// and hour cells replaced by their normalised value.
	Values []any
}

// Category returns the categorical value of f; ok is false for null.
func (r *ActivityRow) Category(f Field) (string, bool) {
	v, ok := r.Categories[f]
	return v, ok
}

// Number returns the numeric value of f; ok is false for null.
func (r *ActivityRow) Number(f Field) (float64, bool) {
	v, ok := r.Numbers[f]
	return v, ok
}

// Table is the loaded activity dataset.
type Table struct {
	Name     string
	Columns  []string
	Mapping  ColumnMapping
	Rows     []*ActivityRow
	LoadedAt time.Time

	present map[Field]bool
}

// NewTable resolves which mapped fields are present in columns and builds
// one row per values slice.
func NewTable(name string, columns []string, mapping ColumnMapping, records [][]any) *Table {
	t := &Table{
		Name:    name,
		Columns: columns,
		Mapping: mapping,
		Rows:    make([]*ActivityRow, 0, len(records)),
	}
	idx := mapping.Resolve(columns)
	t.present = make(map[Field]bool, len(idx))
	for f := range idx {
		t.present[f] = true
	}
	for _, rec := range records {
		t.Rows = append(t.Rows, buildRow(idx, rec))
	}
	return t
}

// HasField reports whether the source carries the column mapped to f.
func (t *Table) HasField(f Field) bool {
	return t.present[f]
}

// DateRange returns the smallest and largest non-null dates. ok is false
// when no row has a date.
func (t *Table) DateRange() (min, max time.Time, ok bool) {
	for _, r := range t.Rows {
		if r.Date == nil {
			continue
		}
		if !ok {
			min, max, ok = *r.Date, *r.Date, true
			continue
		}
		if r.Date.Before(min) {
			min = *r.Date
		}
		if r.Date.After(max) {
			max = *r.Date
		}
	}
	return min, max, ok
}

// Distinct returns the sorted distinct non-null values of a categorical field.
func (t *Table) Distinct(f Field) []string {
	seen := make(map[string]struct{})
	for _, r := range t.Rows {
		if v, ok := r.Category(f); ok {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
