package formnotes

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasjlepore/form-analyzer/aggregate"
	"github.com/lucasjlepore/form-analyzer/pose"
)

const movementStructureSchemaVersion = "movement_structure_v1"

// bottomToleranceDeg is how close to the deepest hip angle a frame must be
// to count as part of the bottom position.
const bottomToleranceDeg = 5.0

// MovementStructure is an LLM-oriented view of how the repetition unfolded.
type MovementStructure struct {
	SchemaVersion  string          `json:"schema_version"`
	Confidence     float64         `json:"confidence"`
	CanonicalLabel string          `json:"canonical_label"`
	Blocks         []MovementBlock `json:"blocks,omitempty"`
	BottomHipAngle float64         `json:"bottom_hip_angle,omitempty"`
	TempoRatio     float64         `json:"tempo_ratio,omitempty"`
}

// MovementBlock is one contiguous stretch of the repetition.
type MovementBlock struct {
	BlockType   string  `json:"block_type"`
	StartFrame  int     `json:"start_frame"`
	EndFrame    int     `json:"end_frame"`
	FrameCount  int     `json:"frame_count"`
	DurationMs  float64 `json:"duration_ms"`
	StartAngle  float64 `json:"start_hip_angle"`
	EndAngle    float64 `json:"end_hip_angle"`
	Description string  `json:"description"`
}

type hipSample struct {
	frame int
	angle float64
}

// InferMovementStructure splits the repetition into descent, bottom and
// ascent blocks around the deepest hip angle. Sequences without a detected
// turn get an empty, low-confidence structure.
func InferMovementStructure(seq *aggregate.Sequence) MovementStructure {
	ms := MovementStructure{
		SchemaVersion:  movementStructureSchemaVersion,
		CanonicalLabel: "unsegmented movement",
	}
	if seq == nil {
		return ms
	}
	samples := hipSamples(seq.Frames)
	if len(samples) == 0 {
		return ms
	}
	ms.Confidence = 0.3
	if !seq.Summary.Phases.Determined() {
		return ms
	}

	lowest := 0
	for i, s := range samples {
		if s.angle < samples[lowest].angle {
			lowest = i
		}
	}
	floor := samples[lowest].angle + bottomToleranceDeg
	start, end := lowest, lowest
	for start > 0 && samples[start-1].angle <= floor {
		start--
	}
	for end < len(samples)-1 && samples[end+1].angle <= floor {
		end++
	}

	fps := seq.FPS
	if fps <= 0 {
		fps = aggregate.DefaultFPS
	}
	if start > 0 {
		ms.Blocks = append(ms.Blocks, buildBlock(samples, "eccentric_descent", 0, start-1, fps, "descent to the bottom position"))
	}
	ms.Blocks = append(ms.Blocks, buildBlock(samples, "bottom_position", start, end, fps, fmt.Sprintf("within %.0f° of the deepest hip angle", bottomToleranceDeg)))
	if end < len(samples)-1 {
		ms.Blocks = append(ms.Blocks, buildBlock(samples, "concentric_ascent", end+1, len(samples)-1, fps, "return to the start position"))
	}

	ms.BottomHipAngle = samples[lowest].angle
	if t := seq.Summary.Phases.Tempo; t != nil {
		ms.TempoRatio = t.Ratio
	}
	ms.Confidence = 0.6
	if len(ms.Blocks) == 3 {
		ms.Confidence = 0.9
	}
	ms.CanonicalLabel = buildCanonicalStructureLabel(ms)
	return ms
}

func hipSamples(frames []pose.FrameMetrics) []hipSample {
	out := make([]hipSample, 0, len(frames))
	for _, f := range frames {
		m, ok := f.Lookup(pose.MetricHipAngleLeft)
		if !ok {
			m, ok = f.Lookup(pose.MetricHipAngleRight)
		}
		if ok {
			out = append(out, hipSample{frame: f.FrameNumber, angle: m.Value})
		}
	}
	return out
}

func buildBlock(samples []hipSample, blockType string, start, end int, fps float64, description string) MovementBlock {
	count := end - start + 1
	return MovementBlock{
		BlockType:   blockType,
		StartFrame:  samples[start].frame,
		EndFrame:    samples[end].frame,
		FrameCount:  count,
		DurationMs:  math.Round(float64(count)/fps*10000) / 10,
		StartAngle:  samples[start].angle,
		EndAngle:    samples[end].angle,
		Description: description,
	}
}

func buildCanonicalStructureLabel(ms MovementStructure) string {
	if len(ms.Blocks) == 0 {
		return "unsegmented movement"
	}
	parts := make([]string, 0, 4)
	for _, b := range ms.Blocks {
		switch b.BlockType {
		case "eccentric_descent":
			parts = append(parts, fmt.Sprintf("descent %s", shortDuration(b.DurationMs)))
		case "bottom_position":
			parts = append(parts, fmt.Sprintf("bottom %s at %.0f°", shortDuration(b.DurationMs), ms.BottomHipAngle))
		case "concentric_ascent":
			parts = append(parts, fmt.Sprintf("ascent %s", shortDuration(b.DurationMs)))
		}
	}
	label := strings.Join(parts, " + ")
	if ms.TempoRatio > 0 {
		label += fmt.Sprintf(" (tempo %.2f:1)", ms.TempoRatio)
	}
	return label
}

func shortDuration(ms float64) string {
	if ms <= 0 {
		return "0ms"
	}
	if ms < 1000 {
		return fmt.Sprintf("%.0fms", ms)
	}
	return fmt.Sprintf("%.1fs", ms/1000)
}
