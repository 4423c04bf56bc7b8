package domain

import activity "activity-dashboard-service/internal/activity/core/domain"

// DefaultCharts is the chart set of the activity dashboard.
func DefaultCharts() []ChartSpec {
	return []ChartSpec{
		{
			Name: "events_by_day", Title: "Events per day", XLabel: "Date", YLabel: "Events", Kind: ChartLine,
			Spec: AggregateSpec{Dimension: activity.FieldDate, Op: OpCount},
		},
		{
			Name: "unique_users_by_day", Title: "Unique users per day", XLabel: "Date", YLabel: "Unique users", Kind: ChartBar,
			Spec: AggregateSpec{Dimension: activity.FieldDate, Op: OpSum, Field: activity.FieldUniqueUsers},
		},
		{
			Name: "events_by_hour", Title: "Events per hour", XLabel: "Hour of day", YLabel: "Events", Kind: ChartLine,
			Spec: AggregateSpec{Dimension: activity.FieldHour, Op: OpCount},
		},
		{
			Name: "events_by_origin", Title: "Events per origin", XLabel: "Origin", YLabel: "Total", Kind: ChartBar,
			Spec: AggregateSpec{Dimension: activity.FieldOrigin, Op: OpCount},
		},
		{
			Name: "top_localities", Title: "Top 15 localities", XLabel: "Locality", YLabel: "Events", Kind: ChartBar,
			Spec: AggregateSpec{Dimension: activity.FieldLocality, Op: OpCount, TopN: 15},
		},
		{
			Name: "top_tags", Title: "Top 10 tags", XLabel: "Tag", YLabel: "Events", Kind: ChartBar,
			Spec: AggregateSpec{Dimension: activity.FieldTag, Op: OpCount, TopN: 10},
		},
		{
			Name: "top_models", Title: "Top 10 models", XLabel: "Model", YLabel: "Events", Kind: ChartBar,
			Spec: AggregateSpec{Dimension: activity.FieldModel, Op: OpCount, TopN: 10},
		},
		{
			Name: "top_concepts", Title: "Top 10 concepts", XLabel: "Concept", YLabel: "Events", Kind: ChartBar,
			Spec: AggregateSpec{Dimension: activity.FieldConcept, Op: OpCount, TopN: 10},
		},
	}
}

// DefaultKPIs are the headline figures shown above the charts and printed
// on the summary report. They only need columns of the default schema;
// tables carrying the daily totals configure those through the KPI override
// file.
func DefaultKPIs() []KPISpec {
	return []KPISpec{
		{Name: "total_events", Label: "Total events", Kind: KPICount},
		{Name: "unique_users", Label: "Unique users", Kind: KPISum, Field: activity.FieldUniqueUsers},
	}
}
