package main

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// writeIntensityChart renders the time-averaged intensity along the screen
// column as a PNG. Positions are in model units from the centre row.
func writeIntensityChart(path, sceneName string, values []float64, cellWidth float64) error {
	if len(values) == 0 {
		return fmt.Errorf("no intensity samples")
	}
	xs := make([]float64, len(values))
	center := len(values) / 2
	for j := range xs {
		xs[j] = float64(j-center) * cellWidth
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s: screen intensity", sceneName),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name:  "position",
			Style: chart.Style{FontSize: 10.0},
		},
		YAxis: chart.YAxis{
			Name:  "intensity",
			Style: chart.Style{FontSize: 10.0},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "mean u^2",
				XValues: xs,
				YValues: values,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 255, G: 165, B: 0, A: 255}, StrokeWidth: 3.0},
			},
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("rendering chart: %w", err)
	}
	return f.Close()
}
