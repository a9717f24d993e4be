package aggregate

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/lucasjlepore/form-analyzer/pose"
)

// Aggregator runs the per-frame processor over a sequence and reduces the
// resulting series.
type Aggregator struct {
	Processor *pose.Processor
	FPS       float64
	// Workers bounds concurrent frame extraction; <= 0 uses GOMAXPROCS.
	Workers int
}

// New returns an aggregator with the given processor and capture rate.
func New(p *pose.Processor, fps float64) *Aggregator {
	if p == nil {
		p = pose.NewProcessor(pose.DefaultCalibration())
	}
	return &Aggregator{Processor: p, FPS: fps}
}

// Run processes every frame and aggregates the category's metrics.
func (a *Aggregator) Run(frames []pose.Frame, category string) (*Sequence, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to aggregate")
	}
	fps := a.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}

	processed, err := a.processFrames(frames, category)
	if err != nil {
		return nil, fmt.Errorf("process frames: %w", err)
	}

	seq := &Sequence{
		Category:        category,
		FPS:             fps,
		TotalFrames:     len(frames),
		DurationSeconds: float64(len(frames)) / fps,
		Frames:          processed,
	}

	order, series := collectSeries(processed)
	asym, asymUnits := asymmetries(processed)
	seq.Summary = Summary{
		ROM:            rangeOfMotion(order, series),
		Asymmetries:    asym,
		AsymmetryUnits: asymUnits,
		Peaks:          peakValues(processed),
		Phases:         detectPhases(processed, fps),
	}

	seq.Metrics = make([]pose.MetricValue, 0, len(order)+8)
	for _, name := range order {
		seq.Metrics = append(seq.Metrics, pose.MetricValue{
			Metric: name,
			Value:  round1(reduce(name, series[name])),
			Unit:   pose.UnitFor(name),
		})
	}
	seq.Metrics = appendDerived(seq.Metrics, seq.Summary)
	return seq, nil
}

func (a *Aggregator) processFrames(frames []pose.Frame, category string) ([]pose.FrameMetrics, error) {
	p := a.Processor
	if p == nil {
		p = pose.NewProcessor(pose.DefaultCalibration())
	}
	workers := a.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]pose.FrameMetrics, len(frames))
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range frames {
		i := i
		g.Go(func() error {
			out[i] = p.ProcessFrame(frames[i], category)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// collectSeries groups values by metric, preserving first-seen order.
func collectSeries(frames []pose.FrameMetrics) ([]string, map[string][]float64) {
	order := make([]string, 0, 16)
	series := make(map[string][]float64, 16)
	for _, f := range frames {
		for _, m := range f.Metrics {
			if _, ok := series[m.Metric]; !ok {
				order = append(order, m.Metric)
			}
			series[m.Metric] = append(series[m.Metric], m.Value)
		}
	}
	return order, series
}

func reduce(metric string, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	spec, _ := pose.Spec(metric)
	switch spec.Reduction {
	case pose.ReduceMax:
		return floats.Max(values)
	case pose.ReduceMin:
		return floats.Min(values)
	default:
		return stat.Mean(values, nil)
	}
}

func rangeOfMotion(order []string, series map[string][]float64) map[string]Range {
	out := make(map[string]Range, len(order))
	for _, name := range order {
		values := series[name]
		if len(values) == 0 {
			continue
		}
		out[name] = Range{Min: floats.Min(values), Max: floats.Max(values)}
	}
	return out
}

// asymmetries keeps, per <base>_left/<base>_right pair, the largest
// per-frame absolute difference along with the unit of the left metric.
func asymmetries(frames []pose.FrameMetrics) (map[string]float64, map[string]string) {
	out := make(map[string]float64)
	units := make(map[string]string)
	for _, f := range frames {
		for _, left := range f.Metrics {
			if !strings.Contains(left.Metric, "_left") {
				continue
			}
			right, ok := f.Lookup(strings.Replace(left.Metric, "_left", "_right", 1))
			if !ok {
				continue
			}
			base := strings.Replace(left.Metric, "_left", "", 1)
			diff := math.Abs(left.Value - right.Value)
			if prev, seen := out[base]; !seen || diff > prev {
				out[base] = diff
			}
			if _, seen := units[base]; !seen {
				units[base] = left.Unit
				if units[base] == "" {
					units[base] = pose.UnitFor(left.Metric)
				}
			}
		}
	}
	return out, units
}

func peakValues(frames []pose.FrameMetrics) map[string]Peak {
	out := make(map[string]Peak)
	for _, f := range frames {
		for _, m := range f.Metrics {
			prev, ok := out[m.Metric]
			if !ok || math.Abs(m.Value) > math.Abs(prev.Value) {
				out[m.Metric] = Peak{Value: m.Value, FrameNumber: f.FrameNumber}
			}
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
