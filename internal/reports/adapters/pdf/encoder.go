package pdf

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"activity-dashboard-service/internal/reports/core/domain"
)

const (
	labelWidth = 110.0
	valueWidth = 60.0
	lineHeight = 8.0
)

type Encoder struct{}

func NewEncoder() *Encoder { return &Encoder{} }

// EncodeSummary lays out one A4 page: title, generation date, period,
// active filters and one line per KPI.
func (e *Encoder) EncodeSummary(s domain.Summary) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(s.Title, true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 12, tr(s.Title), "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, tr("Generated: "+s.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, tr(period(s.From, s.To)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, tr(fmt.Sprintf("Rows: %d", s.RowCount)), "", 1, "L", false, 0, "")
	for _, f := range s.Filters {
		doc.MultiCell(0, 6, tr(fmt.Sprintf("%s: %s", f.Field, strings.Join(f.Values, ", "))), "", "L", false)
	}
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 11)
	doc.SetFillColor(230, 230, 230)
	doc.CellFormat(labelWidth, lineHeight, "Indicator", "1", 0, "L", true, 0, "")
	doc.CellFormat(valueWidth, lineHeight, "Value", "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 11)
	for _, k := range s.KPIs {
		label := k.Label
		if label == "" {
			label = k.Name
		}
		doc.CellFormat(labelWidth, lineHeight, tr(label), "1", 0, "L", false, 0, "")
		doc.CellFormat(valueWidth, lineHeight, FormatValue(k.Value), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatValue prints whole numbers without decimals and groups thousands.
func FormatValue(v float64) string {
	if v != math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}

	digits := strconv.FormatInt(int64(math.Abs(v)), 10)
	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}

func period(from, to time.Time) string {
	if from.IsZero() || to.IsZero() {
		return "Period: no dated rows"
	}
	return fmt.Sprintf("Period: %s to %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
}
