package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"01/02/2006",
}

// ParseDate converts a source cell into a calendar date at UTC midnight.
// Anything that cannot be read as a date yields nil.
func ParseDate(v any) *time.Time {
	switch x := v.(type) {
	case nil:
		return nil
	case time.Time:
		if x.IsZero() {
			return nil
		}
		return dateOf(x)
	case *time.Time:
		if x == nil {
			return nil
		}
		return ParseDate(*x)
	case []byte:
		return ParseDate(string(x))
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return dateOf(t)
			}
		}
	}
	return nil
}

func dateOf(t time.Time) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// ParseHour extracts the hour from a time-of-day cell (HH:MM:SS). Values
// that do not parse, or fall outside 0-23, yield nil.
func ParseHour(v any) *int {
	switch x := v.(type) {
	case nil:
		return nil
	case time.Time:
		h := x.Hour()
		return &h
	case time.Duration:
		if x < 0 || x >= 24*time.Hour {
			return nil
		}
		h := int(x / time.Hour)
		return &h
	case []byte:
		return ParseHour(string(x))
	case string:
		t, err := time.Parse("15:04:05", strings.TrimSpace(x))
		if err != nil {
			return nil
		}
		h := t.Hour()
		return &h
	}
	return nil
}

// ParseNumber converts a numeric cell. ok is false for null or unparseable cells.
func ParseNumber(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, false
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint64:
		f = float64(x)
	case float32:
		f = float64(x)
	case float64:
		f = x
	case bool:
		if x {
			f = 1
		}
	case []byte:
		return ParseNumber(string(x))
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = p
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// cellString renders a categorical cell. ok is false for null.
func cellString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case []byte:
		return string(x), true
	case time.Time:
		return x.Format(time.RFC3339), true
	case float64:
		if math.IsNaN(x) {
			return "", false
		}
		return strconv.FormatFloat(x, 'f', -1, 64), true
	default:
		return fmt.Sprint(x), true
	}
}

func buildRow(idx map[Field]int, rec []any) *ActivityRow {
	row := &ActivityRow{
		Categories: make(map[Field]string),
		Numbers:    make(map[Field]float64),
		Values:     make([]any, len(rec)),
	}
	for i, v := range rec {
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		row.Values[i] = v
	}

	cell := func(f Field) (any, int, bool) {
		i, ok := idx[f]
		if !ok || i >= len(rec) {
			return nil, 0, false
		}
		return row.Values[i], i, true
	}

	if v, i, ok := cell(FieldDate); ok {
		row.Date = ParseDate(v)
		if row.Date != nil {
			row.Values[i] = *row.Date
		} else {
			row.Values[i] = nil
		}
	}
	if v, i, ok := cell(FieldHour); ok {
		row.Hour = ParseHour(v)
		if row.Hour != nil {
			row.Values[i] = *row.Hour
		} else {
			row.Values[i] = nil
		}
	}
	for f := range categoricalFields {
		if v, _, ok := cell(f); ok {
			if s, ok := cellString(v); ok {
				row.Categories[f] = s
			}
		}
	}
	for f := range numericFields {
		if v, _, ok := cell(f); ok {
			if n, ok := ParseNumber(v); ok {
				row.Numbers[f] = n
			}
		}
	}
	return row
}
