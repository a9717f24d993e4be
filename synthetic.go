package formnotes

import (
	"fmt"
	"math"

	"github.com/lucasjlepore/form-analyzer/pose"
)

// Synthetic repetition shapes.
const (
	SyntheticSquat        = "squat"
	SyntheticShallowSquat = "shallow_squat"
	SyntheticValgusSquat  = "valgus_squat"
)

type syntheticShape struct {
	top, bottom float64
	// ankleSpread pushes both ankles away from the midline, leaving the
	// knees inside the hip-ankle line. Normalized units.
	ankleSpread float64
}

var syntheticShapes = map[string]syntheticShape{
	SyntheticSquat:        {top: 170, bottom: 75},
	SyntheticShallowSquat: {top: 170, bottom: 125},
	SyntheticValgusSquat:  {top: 170, bottom: 80, ankleSpread: 0.25},
}

// SyntheticFrames builds one repetition of count frames at 30fps: a linear
// descent from the top hip angle to the bottom at frame count/2, then a
// linear ascent back. Thigh and shin stay collinear, so without ankle spread
// the knee reads no medial displacement.
func SyntheticFrames(count int, kind string) ([]pose.Frame, error) {
	shape, ok := syntheticShapes[kind]
	if !ok {
		return nil, fmt.Errorf("unknown synthetic kind %q", kind)
	}
	if count < 3 {
		return nil, fmt.Errorf("synthetic repetition needs at least 3 frames, got %d", count)
	}

	mid := count / 2
	frames := make([]pose.Frame, count)
	for i := range frames {
		var depth float64
		if i <= mid {
			depth = float64(i) / float64(mid)
		} else {
			depth = float64(count-1-i) / float64(count-1-mid)
		}
		angle := shape.top - (shape.top-shape.bottom)*depth
		frames[i] = syntheticFrame(i, angle, shape.ankleSpread)
	}
	return frames, nil
}

func syntheticFrame(n int, hipAngle, spread float64) pose.Frame {
	rad := hipAngle * math.Pi / 180
	lm := make(map[string]pose.Landmark, 12)
	// Each thigh swings away from the midline (out), mirrored between sides.
	for _, side := range []struct {
		shoulder, hip, knee, ankle, foot string
		x, out                           float64
	}{
		{pose.LeftShoulder, pose.LeftHip, pose.LeftKnee, pose.LeftAnkle, pose.LeftFootIndex, 0.45, -1},
		{pose.RightShoulder, pose.RightHip, pose.RightKnee, pose.RightAnkle, pose.RightFootIndex, 0.55, 1},
	} {
		hx, hy := side.x, 0.5
		kx, ky := hx+side.out*0.2*math.Sin(rad), hy-0.2*math.Cos(rad)
		ax, ay := hx+2*(kx-hx)+side.out*spread, hy+2*(ky-hy)
		lm[side.shoulder] = pose.Point(hx, 0.2)
		lm[side.hip] = pose.Point(hx, hy)
		lm[side.knee] = pose.Point(kx, ky)
		lm[side.ankle] = pose.Point(ax, ay)
		lm[side.foot] = pose.Point(ax+side.out*0.05, ay)
	}
	return pose.Frame{
		FrameNumber: n,
		TimestampMs: math.Round(float64(n)*1000/30*10) / 10,
		Landmarks:   lm,
	}
}
