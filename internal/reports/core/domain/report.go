package domain

import (
	"time"

	metrics "activity-dashboard-service/internal/metrics/core/domain"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// Sheet is the filtered table as it goes into the spreadsheet.
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// FilterLine is one user-selected filter printed on the summary.
type FilterLine struct {
	Field  string
	Values []string
}

// Summary is the content of the fixed-layout summary document.
type Summary struct {
	Title       string
	GeneratedAt time.Time
	From        time.Time
	To          time.Time
	RowCount    int
	Filters     []FilterLine
	KPIs        []metrics.KPI
}

// Export is an encoded download.
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}
