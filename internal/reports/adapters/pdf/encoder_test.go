package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	metrics "activity-dashboard-service/internal/metrics/core/domain"
	"activity-dashboard-service/internal/reports/adapters/pdf"
	"activity-dashboard-service/internal/reports/core/domain"
)

func TestEncodeSummary(t *testing.T) {
	out, err := pdf.NewEncoder().EncodeSummary(domain.Summary{
		Title:       "Actividad de usuarios – AMAD",
		GeneratedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		From:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		RowCount:    1250,
		Filters:     []domain.FilterLine{{Field: "locality", Values: []string{"Quito", "Cuenca"}}},
		KPIs: []metrics.KPI{
			{Name: "total_events", Label: "Total events", Value: 1250},
			{Name: "unique_users", Label: "Usuarios únicos", Value: 311},
		},
	})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestEncodeSummary_NoKPIs(t *testing.T) {
	out, err := pdf.NewEncoder().EncodeSummary(domain.Summary{Title: "Empty"})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestFormatValue(t *testing.T) {
	require.Equal(t, "0", pdf.FormatValue(0))
	require.Equal(t, "999", pdf.FormatValue(999))
	require.Equal(t, "1,250", pdf.FormatValue(1250))
	require.Equal(t, "1,234,567", pdf.FormatValue(1234567))
	require.Equal(t, "-4,000", pdf.FormatValue(-4000))
	require.Equal(t, "2.50", pdf.FormatValue(2.5))
}
