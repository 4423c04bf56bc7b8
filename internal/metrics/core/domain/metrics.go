package domain

import (
	"time"

	activity "activity-dashboard-service/internal/activity/core/domain"
)

type Operator string

const (
	OpCount Operator = "count"
	OpSum   Operator = "sum"
)

// AggregateSpec describes one grouping: rows partitioned by Dimension,
// reduced by Op. Field is the summed field for OpSum. TopN > 0 truncates
// categorical results.
type AggregateSpec struct {
	Dimension activity.Field
	Op        Operator
	Field     activity.Field
	TopN      int
}

type Group struct {
	Key   string
	Value float64
}

type AggregateResult struct {
	Dimension activity.Field
	Op        Operator
	Field     activity.Field
	TopN      int
	Groups    []Group
}

// NoData reports whether the result has nothing to chart.
func (r AggregateResult) NoData() bool { return len(r.Groups) == 0 }

// Total sums the values of every group.
func (r AggregateResult) Total() float64 {
	var s float64
	for _, g := range r.Groups {
		s += g.Value
	}
	return s
}

type KPIKind string

const (
	KPICount    KPIKind = "count"
	KPISum      KPIKind = "sum"
	KPIDistinct KPIKind = "distinct"
)

type KPISpec struct {
	Name  string
	Label string
	Kind  KPIKind
	Field activity.Field // unused for KPICount
}

type KPI struct {
	Name  string
	Label string
	Value float64
}

type ChartKind string

const (
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
)

type ChartSpec struct {
	Name   string
	Title  string
	XLabel string
	YLabel string
	Kind   ChartKind
	Spec   AggregateSpec
}

type Chart struct {
	ChartSpec
	Result AggregateResult
}

// GeoPoint is one filtered row carrying coordinates.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
	Label     string
}

// Dashboard is everything a single dashboard view renders.
type Dashboard struct {
	Start    time.Time
	End      time.Time
	RowCount int
	KPIs     []KPI
	Charts   []Chart
}
