package report

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"ping-monitor/internal/models"
)

// series holds the latency history of one target as seen by the presenter.
type series struct {
	timestamps []time.Time
	latency    []float64
	reachable  []bool
	total      uint64
}

// Generator records every probe outcome it is shown and renders charts from
// them once the run is over.
type Generator struct {
	mu        sync.Mutex
	order     []string
	series    map[string]*series
	last      models.Snapshot
	threshold float64
}

// NewGenerator creates a chart generator. thresholdMs is drawn as a reference
// line on the latency charts.
func NewGenerator(thresholdMs float64) *Generator {
	return &Generator{
		series:    make(map[string]*series),
		threshold: thresholdMs,
	}
}

// Render implements models.Presenter. Only targets whose counters moved since
// the previous snapshot contribute a new point.
func (g *Generator) Render(snap models.Snapshot) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.last = snap
	for _, t := range snap.Targets {
		s, ok := g.series[t.Target]
		if !ok {
			s = &series{}
			g.series[t.Target] = s
			g.order = append(g.order, t.Target)
		}
		if t.Total() == s.total {
			continue
		}
		s.total = t.Total()
		s.timestamps = append(s.timestamps, snap.Timestamp)
		s.latency = append(s.latency, t.LastLatencyMs)
		s.reachable = append(s.reachable, t.LastReachable)
	}
	return nil
}

// Points returns how many samples were recorded for target.
func (g *Generator) Points(target string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s, ok := g.series[target]; ok {
		return len(s.timestamps)
	}
	return 0
}

// GenerateReport writes the charts into outputDir and returns the files written.
func (g *Generator) GenerateReport(outputDir string, logger *log.Logger) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var written []string
	for _, target := range g.order {
		path, err := g.generateLatencyChart(outputDir, target, g.series[target])
		if err != nil {
			logger.Printf("Failed to generate latency chart for %s: %v", target, err)
			continue
		}
		if path != "" {
			written = append(written, path)
		}
	}

	path, err := g.generateTimeoutChart(outputDir)
	if err != nil {
		logger.Printf("Failed to generate timeout chart: %v", err)
	} else if path != "" {
		written = append(written, path)
	}

	logger.Printf("Charts written to: %s", outputDir)
	return written, nil
}
