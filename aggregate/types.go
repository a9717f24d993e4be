package aggregate

import "github.com/lucasjlepore/form-analyzer/pose"

// DefaultFPS is used when a caller does not know the capture rate.
const DefaultFPS = 30.0

// Range is the observed min/max of a metric across the sequence.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Peak is the largest-magnitude value of a metric and where it occurred.
type Peak struct {
	Value       float64 `json:"value"`
	FrameNumber int     `json:"frame_number"`
}

// PhaseSpan is one contiguous movement phase.
type PhaseSpan struct {
	StartFrame int     `json:"start_frame"`
	EndFrame   int     `json:"end_frame"`
	FrameCount int     `json:"frame_count"`
	DurationMs float64 `json:"duration_ms"`
}

// Tempo compares the eccentric and concentric phase durations.
type Tempo struct {
	EccentricMs  float64 `json:"eccentric_ms"`
	ConcentricMs float64 `json:"concentric_ms"`
	Ratio        float64 `json:"ratio"`
}

// Phases is left empty when no descent-to-ascent transition was found.
type Phases struct {
	Eccentric  *PhaseSpan `json:"eccentric,omitempty"`
	Concentric *PhaseSpan `json:"concentric,omitempty"`
	Tempo      *Tempo     `json:"tempo,omitempty"`
}

// Determined reports whether phase segmentation succeeded.
func (p Phases) Determined() bool { return p.Eccentric != nil && p.Concentric != nil }

// Summary is the sequence-level view of the per-frame metrics.
type Summary struct {
	ROM            map[string]Range   `json:"rom"`
	Asymmetries    map[string]float64 `json:"asymmetries"`
	AsymmetryUnits map[string]string  `json:"asymmetry_units,omitempty"`
	Peaks          map[string]Peak    `json:"peak_values"`
	Phases         Phases             `json:"phases"`
}

// Sequence is the aggregated result of one repetition.
type Sequence struct {
	Category        string              `json:"category"`
	FPS             float64             `json:"fps"`
	TotalFrames     int                 `json:"total_frames"`
	DurationSeconds float64             `json:"duration_seconds"`
	Frames          []pose.FrameMetrics `json:"frames"`
	Metrics         []pose.MetricValue  `json:"metrics"`
	Summary         Summary             `json:"summary"`
}

// Metric returns the aggregated value for name.
func (s *Sequence) Metric(name string) (pose.MetricValue, bool) {
	if s == nil {
		return pose.MetricValue{}, false
	}
	for _, m := range s.Metrics {
		if m.Metric == name {
			return m, true
		}
	}
	return pose.MetricValue{}, false
}
