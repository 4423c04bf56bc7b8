package chart

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"time"

	activity "activity-dashboard-service/internal/activity/core/domain"
	"activity-dashboard-service/internal/metrics/core/domain"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned for a chart without groups; there is nothing to draw.
var ErrNoData = errors.New("no data")

const (
	defaultWidth  = 1024
	defaultHeight = 480
	barWidth      = 40
	barSpacing    = 12
)

type Renderer struct {
	Width  int
	Height int
}

func NewRenderer() *Renderer {
	return &Renderer{Width: defaultWidth, Height: defaultHeight}
}

// RenderPNG draws c as a PNG. Line charts with fewer than two points are
// drawn as bars since a line needs a non-empty x range.
func (r *Renderer) RenderPNG(c domain.Chart) ([]byte, error) {
	if c.Result.NoData() {
		return nil, ErrNoData
	}

	var buf bytes.Buffer
	var err error
	if c.Kind == domain.ChartLine && len(c.Result.Groups) >= 2 {
		err = r.line(c).Render(gochart.PNG, &buf)
	} else {
		err = r.bar(c).Render(gochart.PNG, &buf)
	}
	if err != nil {
		return nil, fmt.Errorf("render chart %s: %w", c.Name, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) line(c domain.Chart) gochart.Chart {
	style := gochart.Style{
		StrokeColor: gochart.ColorBlue,
		StrokeWidth: 2,
		DotWidth:    3,
		DotColor:    gochart.ColorBlue,
	}

	ys := make([]float64, 0, len(c.Result.Groups))
	for _, g := range c.Result.Groups {
		ys = append(ys, g.Value)
	}

	var series gochart.Series
	xAxis := gochart.XAxis{Name: c.XLabel}
	if dates, ok := dateKeys(c); ok {
		series = gochart.TimeSeries{Name: c.Title, XValues: dates, YValues: ys, Style: style}
		xAxis.ValueFormatter = gochart.TimeDateValueFormatter
	} else {
		xs := make([]float64, 0, len(c.Result.Groups))
		for i, g := range c.Result.Groups {
			var x float64
			if _, err := fmt.Sscan(g.Key, &x); err != nil {
				x = float64(i)
			}
			xs = append(xs, x)
		}
		series = gochart.ContinuousSeries{Name: c.Title, XValues: xs, YValues: ys, Style: style}
	}

	return gochart.Chart{
		Title:      c.Title,
		Width:      r.Width,
		Height:     r.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      xAxis,
		YAxis:      gochart.YAxis{Name: c.YLabel, Range: yRange(ys)},
		Series:     []gochart.Series{series},
	}
}

func (r *Renderer) bar(c domain.Chart) gochart.BarChart {
	bars := make([]gochart.Value, 0, len(c.Result.Groups))
	ys := make([]float64, 0, len(c.Result.Groups))
	for _, g := range c.Result.Groups {
		bars = append(bars, gochart.Value{
			Label: g.Key,
			Value: g.Value,
			Style: gochart.Style{FillColor: drawing.ColorFromHex("4c78a8"), StrokeColor: drawing.ColorFromHex("4c78a8")},
		})
		ys = append(ys, g.Value)
	}

	width := r.Width
	if need := len(bars)*(barWidth+barSpacing) + 160; need > width {
		width = need
	}

	return gochart.BarChart{
		Title:      c.Title,
		Width:      width,
		Height:     r.Height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis:      gochart.YAxis{Name: c.YLabel, Range: yRange(ys)},
		Bars:       bars,
	}
}

// yRange pins the axis at zero and pads the top so a flat series still has
// a non-empty range.
func yRange(ys []float64) *gochart.ContinuousRange {
	max := 0.0
	for _, y := range ys {
		if !math.IsNaN(y) && y > max {
			max = y
		}
	}
	if max == 0 {
		max = 1
	}
	return &gochart.ContinuousRange{Min: 0, Max: max * 1.1}
}

func dateKeys(c domain.Chart) ([]time.Time, bool) {
	if c.Spec.Dimension != activity.FieldDate {
		return nil, false
	}
	out := make([]time.Time, 0, len(c.Result.Groups))
	for _, g := range c.Result.Groups {
		t, err := time.Parse("2006-01-02", g.Key)
		if err != nil {
			return nil, false
		}
		out = append(out, t)
	}
	return out, true
}
