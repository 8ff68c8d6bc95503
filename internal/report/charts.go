package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const smaPeriod = 10

var (
	chartPadding = chart.Style{
		Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
	}
	axisStyle = chart.Style{
		StrokeColor: drawing.ColorBlack,
		FontSize:    10,
	}
	gridStyle = chart.Style{
		StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
		StrokeWidth: 1.0,
	}
)

// generateLatencyChart plots the successful probes of one target. Targets with
// fewer than two successful samples are skipped and yield an empty path.
func (g *Generator) generateLatencyChart(outputDir, target string, s *series) (string, error) {
	ts := chart.TimeSeries{
		Name: target,
		Style: chart.Style{
			StrokeColor: chart.GetDefaultColor(0),
			StrokeWidth: 2,
		},
	}
	maxMs := g.threshold
	for i, ok := range s.reachable {
		if !ok {
			continue
		}
		ts.XValues = append(ts.XValues, s.timestamps[i])
		ts.YValues = append(ts.YValues, s.latency[i])
		maxMs = max(maxMs, s.latency[i])
	}
	if len(ts.XValues) < 2 || ts.XValues[0].Equal(ts.XValues[len(ts.XValues)-1]) {
		return "", nil
	}
	if maxMs <= 0 {
		maxMs = 1
	}

	graph := chart.Chart{
		Title:      fmt.Sprintf("Latency - %s", target),
		TitleStyle: chart.Style{FontSize: 16},
		Background: chartPadding,
		Width:      1200,
		Height:     400,
		XAxis: chart.XAxis{
			Name:           "Time",
			NameStyle:      chart.Style{FontSize: 12},
			Style:          axisStyle,
			ValueFormatter: chart.TimeMinuteValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Latency (ms)",
			NameStyle:      chart.Style{FontSize: 12},
			Style:          axisStyle,
			GridMajorStyle: gridStyle,
			Range:          &chart.ContinuousRange{Min: 0, Max: maxMs * 1.1},
		},
		Series: []chart.Series{ts},
	}

	if len(ts.YValues) > smaPeriod {
		graph.Series = append(graph.Series, chart.SMASeries{
			Name: "Moving Avg",
			Style: chart.Style{
				StrokeColor:     chart.GetDefaultColor(1),
				StrokeWidth:     2,
				StrokeDashArray: []float64{5, 5},
			},
			InnerSeries: ts,
			Period:      smaPeriod,
		})
	}

	if g.threshold > 0 {
		first, last := ts.XValues[0], ts.XValues[len(ts.XValues)-1]
		graph.Series = append(graph.Series, chart.TimeSeries{
			Name: "Threshold",
			Style: chart.Style{
				StrokeColor:     drawing.ColorRed,
				StrokeWidth:     1,
				StrokeDashArray: []float64{2, 4},
			},
			XValues: []time.Time{first, last},
			YValues: []float64{g.threshold, g.threshold},
		})
	}

	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	filename := filepath.Join(outputDir, fmt.Sprintf("latency_%s.png", sanitizeFilename(target)))
	return filename, renderPNG(filename, graph)
}

// generateTimeoutChart draws the final timeout percentage of every target.
func (g *Generator) generateTimeoutChart(outputDir string) (string, error) {
	if len(g.last.Targets) == 0 {
		return "", nil
	}

	values := make([]chart.Value, 0, len(g.last.Targets))
	for _, t := range g.last.Targets {
		values = append(values, chart.Value{
			Label: t.Target,
			Value: t.TimeoutPercentage(),
		})
	}

	graph := chart.BarChart{
		Title:      "Timeout Percentage by Target",
		TitleStyle: chart.Style{FontSize: 16},
		Background: chartPadding,
		Width:      1200,
		Height:     400,
		BarWidth:   40,
		YAxis: chart.YAxis{
			Style: axisStyle,
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: values,
	}

	filename := filepath.Join(outputDir, "timeouts.png")
	return filename, renderPNG(filename, graph)
}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func renderPNG(filename string, graph renderable) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := graph.Render(chart.PNG, file); err != nil {
		file.Close()
		os.Remove(filename)
		return err
	}
	return file.Close()
}
