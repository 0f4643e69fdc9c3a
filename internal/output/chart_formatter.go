package output

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rpgo/networth-projector/internal/domain"
)

// ChartFormatter renders net worth and debt over time as a PNG line chart.
type ChartFormatter struct{}

func (c ChartFormatter) Name() string { return "chart" }

func (c ChartFormatter) Format(p *domain.Projection) ([]byte, error) {
	if p == nil {
		return nil, errNilProjection
	}
	if len(p.Periods) < 2 {
		return nil, fmt.Errorf("need at least 2 periods to chart, got %d", len(p.Periods))
	}

	xValues := make([]time.Time, len(p.Periods))
	worthY := make([]float64, len(p.Periods))
	debtY := make([]float64, len(p.Periods))
	for i, r := range p.Periods {
		xValues[i] = r.Date
		worthY[i] = r.NetWorth.InexactFloat64()
		debtY[i] = r.Debt.InexactFloat64()
	}

	worth := chart.TimeSeries{
		Name: "Net Worth",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: worthY,
	}
	debt := chart.TimeSeries{
		Name: "Debt",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("dc2626"),
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: debtY,
	}

	title := "Net Worth Projection"
	if p.Scenario != "" {
		title = p.Scenario
	}
	graph := chart.Chart{
		Title:  title,
		Width:  1000,
		Height: 450,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("2006")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0fk", f/1000)
				}
				return ""
			},
		},
		Series: []chart.Series{worth, debt},
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
