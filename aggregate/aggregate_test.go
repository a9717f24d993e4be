package aggregate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasjlepore/form-analyzer/pose"
)

// squatFrame places the knee at hipAngle degrees from the trunk line, with
// the ankle collinear so valgus reads zero.
func squatFrame(n int, hipAngle float64) pose.Frame {
	rad := hipAngle * math.Pi / 180
	lm := map[string]pose.Landmark{}
	for _, side := range []struct {
		shoulder, hip, knee, ankle string
		x                          float64
	}{
		{pose.LeftShoulder, pose.LeftHip, pose.LeftKnee, pose.LeftAnkle, 0.45},
		{pose.RightShoulder, pose.RightHip, pose.RightKnee, pose.RightAnkle, 0.55},
	} {
		hx, hy := side.x, 0.5
		kx, ky := hx+0.2*math.Sin(rad), hy-0.2*math.Cos(rad)
		lm[side.shoulder] = pose.Point(hx, 0.2)
		lm[side.hip] = pose.Point(hx, hy)
		lm[side.knee] = pose.Point(kx, ky)
		lm[side.ankle] = pose.Point(hx+2*(kx-hx), hy+2*(ky-hy))
	}
	return pose.Frame{FrameNumber: n, TimestampMs: float64(n) * 1000 / 30, Landmarks: lm}
}

// repFrames descends linearly from 170 to bottom at index 15 and rises back
// to 170 at index 29.
func repFrames(bottom float64) []pose.Frame {
	frames := make([]pose.Frame, 30)
	for i := range frames {
		var angle float64
		if i <= 15 {
			angle = 170 - (170-bottom)*float64(i)/15
		} else {
			angle = bottom + (170-bottom)*float64(i-15)/14
		}
		frames[i] = squatFrame(i, angle)
	}
	return frames
}

func TestRunRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := New(nil, 30).Run(nil, pose.CategorySquat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no frames to aggregate")
}

func TestRunSquatRepetition(t *testing.T) {
	t.Parallel()

	seq, err := New(nil, 30).Run(repFrames(75), pose.CategorySquat)
	require.NoError(t, err)

	assert.Equal(t, 30, seq.TotalFrames)
	assert.InDelta(t, 1.0, seq.DurationSeconds, 1e-9)
	require.Len(t, seq.Frames, 30)
	for i, f := range seq.Frames {
		assert.Equal(t, i, f.FrameNumber, "frame order must follow input")
	}

	depth, ok := seq.Metric(pose.MetricHipAngleAtBottom)
	require.True(t, ok)
	assert.Equal(t, 75.0, depth.Value)
	assert.Equal(t, pose.UnitDegrees, depth.Unit)

	left, ok := seq.Metric(pose.MetricHipAngleLeft)
	require.True(t, ok)
	assert.Equal(t, 75.0, left.Value, "hip angle reduces by min")

	rom := seq.Summary.ROM[pose.MetricHipAngleLeft]
	assert.Equal(t, 75.0, rom.Min)
	assert.Equal(t, 170.0, rom.Max)

	valgus, ok := seq.Metric(pose.MetricKneeMedialDisplacement)
	require.True(t, ok)
	assert.Zero(t, valgus.Value)
}

func TestRunDetectsPhases(t *testing.T) {
	t.Parallel()

	seq, err := New(nil, 30).Run(repFrames(75), pose.CategorySquat)
	require.NoError(t, err)

	ph := seq.Summary.Phases
	require.True(t, ph.Determined())
	assert.Equal(t, 0, ph.Eccentric.StartFrame)
	assert.Equal(t, 15, ph.Eccentric.EndFrame)
	assert.Equal(t, 16, ph.Eccentric.FrameCount)
	assert.Equal(t, 16, ph.Concentric.StartFrame)
	assert.Equal(t, 29, ph.Concentric.EndFrame)
	assert.Equal(t, 14, ph.Concentric.FrameCount)
	assert.InDelta(t, 533.3, ph.Tempo.EccentricMs, 1e-9)
	assert.InDelta(t, 1.14, ph.Tempo.Ratio, 1e-9)

	ratio, ok := seq.Metric(pose.MetricEccentricConcentricRatio)
	require.True(t, ok)
	assert.Equal(t, 1.14, ratio.Value)
	assert.Equal(t, pose.UnitRatio, ratio.Unit)
}

func TestRunMonotonicSeriesLeavesPhasesUndetermined(t *testing.T) {
	t.Parallel()

	frames := make([]pose.Frame, 10)
	for i := range frames {
		frames[i] = squatFrame(i, 170-float64(i)*5)
	}
	seq, err := New(nil, 30).Run(frames, pose.CategorySquat)
	require.NoError(t, err)

	assert.False(t, seq.Summary.Phases.Determined())
	assert.Nil(t, seq.Summary.Phases.Tempo)
	_, ok := seq.Metric(pose.MetricEccentricConcentricRatio)
	assert.False(t, ok)
}

func TestRunTooFewSamplesForPhases(t *testing.T) {
	t.Parallel()

	seq, err := New(nil, 30).Run([]pose.Frame{squatFrame(0, 170), squatFrame(1, 120)}, pose.CategorySquat)
	require.NoError(t, err)
	assert.False(t, seq.Summary.Phases.Determined())
}

func TestRunAsymmetryAndDifferences(t *testing.T) {
	t.Parallel()

	frames := repFrames(90)
	// Drop the right knee 10 degrees deeper in one frame.
	skewed := squatFrame(7, 100)
	frames[7].Landmarks[pose.RightKnee] = skewed.Landmarks[pose.RightKnee]
	frames[7].Landmarks[pose.RightAnkle] = skewed.Landmarks[pose.RightAnkle]
	frames[7].Landmarks[pose.RightShoulder] = skewed.Landmarks[pose.RightShoulder]
	frames[7].Landmarks[pose.RightHip] = skewed.Landmarks[pose.RightHip]

	seq, err := New(nil, 30).Run(frames, pose.CategorySquat)
	require.NoError(t, err)

	left := frames[7]
	leftAngle := pose.ThreePointAngle(left.Landmarks[pose.LeftShoulder], left.Landmarks[pose.LeftHip], left.Landmarks[pose.LeftKnee])
	want := math.Abs(math.Round(leftAngle) - 100)
	assert.InDelta(t, want, seq.Summary.Asymmetries["hip_angle"], 1e-9)

	diff, ok := seq.Metric("hip_angle_difference")
	require.True(t, ok)
	assert.InDelta(t, want, diff.Value, 1e-9)
	assert.Equal(t, pose.UnitDegrees, diff.Unit)

	bilateral, ok := seq.Metric(pose.MetricBilateralAngleDifference)
	require.True(t, ok)
	assert.Equal(t, diff.Value, bilateral.Value)
}

func TestRunValgusKeepsWorstExcursion(t *testing.T) {
	t.Parallel()

	frames := repFrames(90)
	// Push the left knee 0.1 medially (5cm at the default calibration).
	k := frames[10].Landmarks[pose.LeftKnee]
	h := frames[10].Landmarks[pose.LeftHip]
	frames[10].Landmarks[pose.LeftAnkle] = pose.Point(h.X, k.Y+(k.Y-h.Y))
	frames[10].Landmarks[pose.LeftKnee] = pose.Point(h.X+0.1, k.Y)

	seq, err := New(nil, 30).Run(frames, pose.CategorySquat)
	require.NoError(t, err)

	left, ok := seq.Metric(pose.MetricKneeValgusLeft)
	require.True(t, ok)
	assert.InDelta(t, 5.0, left.Value, 1e-9)

	worst, ok := seq.Metric(pose.MetricKneeMedialDisplacement)
	require.True(t, ok)
	assert.Equal(t, left.Value, worst.Value)

	peak := seq.Summary.Peaks[pose.MetricKneeValgusLeft]
	assert.Equal(t, 10, peak.FrameNumber)

	asym, ok := seq.Metric("knee_valgus_cm" + pose.DifferenceSuffix)
	require.True(t, ok)
	assert.InDelta(t, 5.0, asym.Value, 1e-9)
	assert.Equal(t, pose.UnitCentimeters, asym.Unit)
}

func TestRunDerivesTrunkMetricsFromInclination(t *testing.T) {
	t.Parallel()

	frames := repFrames(90)
	// Tilt the trunk 45° forward on a single frame.
	frames[5].Landmarks[pose.LeftShoulder] = pose.Point(0.45+0.3, 0.2)

	for _, category := range []string{pose.CategoryHinge, pose.CategoryVerticalPress} {
		seq, err := New(nil, 30).Run(frames, category)
		require.NoError(t, err, category)

		trunk, ok := seq.Metric(pose.MetricTrunkInclination)
		require.True(t, ok, category)

		change, ok := seq.Metric(pose.MetricRibCageAngleChange)
		require.True(t, ok, category)
		assert.InDelta(t, 45.0, change.Value, 0.05, category)
		assert.Equal(t, pose.UnitDegrees, change.Unit, category)

		thoracic, ok := seq.Metric(pose.MetricThoracicFlexion)
		require.True(t, ok, category)
		assert.Equal(t, trunk.Value, thoracic.Value, category)
		assert.Equal(t, pose.UnitDegrees, thoracic.Unit, category)
	}
}

func TestRunMissingLandmarksOmitMetrics(t *testing.T) {
	t.Parallel()

	frames := repFrames(90)
	for i := range frames {
		delete(frames[i].Landmarks, pose.LeftAnkle)
		delete(frames[i].Landmarks, pose.RightAnkle)
	}
	seq, err := New(nil, 30).Run(frames, pose.CategorySquat)
	require.NoError(t, err)

	_, ok := seq.Metric(pose.MetricKneeMedialDisplacement)
	assert.False(t, ok)
	_, ok = seq.Metric(pose.MetricAnkleDorsiflexion)
	assert.False(t, ok)
	_, ok = seq.Metric(pose.MetricHipAngleAtBottom)
	assert.True(t, ok)
}

func TestRunWorkerCountDoesNotChangeResult(t *testing.T) {
	t.Parallel()

	serial := &Aggregator{FPS: 30, Workers: 1}
	wide := &Aggregator{FPS: 30, Workers: 8}
	a, err := serial.Run(repFrames(80), pose.CategorySquat)
	require.NoError(t, err)
	b, err := wide.Run(repFrames(80), pose.CategorySquat)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRunDefaultsFPS(t *testing.T) {
	t.Parallel()

	seq, err := New(nil, 0).Run(repFrames(90), pose.CategorySquat)
	require.NoError(t, err)
	assert.Equal(t, DefaultFPS, seq.FPS)
}
