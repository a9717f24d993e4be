package aggregate

import "github.com/lucasjlepore/form-analyzer/pose"

type depthSample struct {
	frameNumber int
	value       float64
}

// depthSeries returns the per-frame hip angle used to segment the movement,
// preferring the left side and falling back to the right in each frame.
func depthSeries(frames []pose.FrameMetrics) []depthSample {
	out := make([]depthSample, 0, len(frames))
	for _, f := range frames {
		m, ok := f.Lookup(pose.MetricHipAngleLeft)
		if !ok {
			m, ok = f.Lookup(pose.MetricHipAngleRight)
		}
		if !ok {
			continue
		}
		out = append(out, depthSample{frameNumber: f.FrameNumber, value: m.Value})
	}
	return out
}

// detectPhases splits the movement at the first descent-to-ascent turn. The
// eccentric phase runs through the turning sample, the concentric phase
// covers the rest.
func detectPhases(frames []pose.FrameMetrics, fps float64) Phases {
	s := depthSeries(frames)
	n := len(s)
	if n < 3 {
		return Phases{}
	}

	turn := -1
	for i := 1; i < n-1; i++ {
		if s[i].value-s[i-1].value < 0 && s[i+1].value-s[i].value >= 0 {
			turn = i
			break
		}
	}
	if turn < 0 {
		return Phases{}
	}

	eccCount := turn + 1
	conCount := n - eccCount
	if conCount <= 0 {
		return Phases{}
	}

	ecc := &PhaseSpan{
		StartFrame: s[0].frameNumber,
		EndFrame:   s[turn].frameNumber,
		FrameCount: eccCount,
		DurationMs: round1(float64(eccCount) / fps * 1000),
	}
	con := &PhaseSpan{
		StartFrame: s[turn+1].frameNumber,
		EndFrame:   s[n-1].frameNumber,
		FrameCount: conCount,
		DurationMs: round1(float64(conCount) / fps * 1000),
	}
	return Phases{
		Eccentric:  ecc,
		Concentric: con,
		Tempo: &Tempo{
			EccentricMs:  ecc.DurationMs,
			ConcentricMs: con.DurationMs,
			Ratio:        round2(float64(eccCount) / float64(conCount)),
		},
	}
}
