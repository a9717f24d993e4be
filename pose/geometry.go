package pose

import "math"

const radToDeg = 180.0 / math.Pi

// Calibration converts normalized frame distances into approximate
// centimeters. It is a heuristic: the defaults assume roughly 50cm of body
// spans a 640px wide frame. It is not a camera calibration.
type Calibration struct {
	FrameWidthPx  float64 `json:"frame_width_px"`
	FrameHeightPx float64 `json:"frame_height_px"`
	CmPerPixel    float64 `json:"cm_per_pixel"`
}

// DefaultCalibration is the 640x480 frame, 50cm body-width assumption.
func DefaultCalibration() Calibration {
	return Calibration{
		FrameWidthPx:  640,
		FrameHeightPx: 480,
		CmPerPixel:    50.0 / 640.0,
	}
}

func (c Calibration) withDefaults() Calibration {
	d := DefaultCalibration()
	if c.FrameWidthPx <= 0 {
		c.FrameWidthPx = d.FrameWidthPx
	}
	if c.FrameHeightPx <= 0 {
		c.FrameHeightPx = d.FrameHeightPx
	}
	if c.CmPerPixel <= 0 {
		c.CmPerPixel = d.CmPerPixel
	}
	return c
}

// ThreePointAngle returns the angle at vertex between vertex->a and vertex->b
// in degrees. A zero-length vector yields 0.
func ThreePointAngle(a, vertex, b Landmark) float64 {
	v1x, v1y := a.X-vertex.X, a.Y-vertex.Y
	v2x, v2y := b.X-vertex.X, b.Y-vertex.Y

	mag1 := math.Hypot(v1x, v1y)
	mag2 := math.Hypot(v2x, v2y)
	if mag1 == 0 || mag2 == 0 {
		return 0
	}
	cos := (v1x*v2x + v1y*v2y) / (mag1 * mag2)
	return math.Acos(clamp(cos, -1, 1)) * radToDeg
}

// AngleFromVertical returns the angle between p1->p2 and screen-up (0,-1).
// 0 means p2 sits straight above p1, 90 means horizontal.
func AngleFromVertical(p1, p2 Landmark) float64 {
	vx, vy := p2.X-p1.X, p2.Y-p1.Y
	mag := math.Hypot(vx, vy)
	if mag == 0 {
		return 0
	}
	return math.Acos(clamp(-vy/mag, -1, 1)) * radToDeg
}

// AngleFromHorizontal returns the unsigned tilt of p1->p2 against the
// horizontal axis, folded into [0,90].
func AngleFromHorizontal(p1, p2 Landmark) float64 {
	vx, vy := p2.X-p1.X, p2.Y-p1.Y
	if vx == 0 && vy == 0 {
		return 0
	}
	deg := math.Atan2(math.Abs(vy), math.Abs(vx)) * radToDeg
	return deg
}

// MedialDisplacement returns the perpendicular distance from joint to the
// line through lineStart and lineEnd, in approximate centimeters. Distances
// are measured in pixel space so the frame aspect ratio is respected.
func MedialDisplacement(joint, lineStart, lineEnd Landmark, cal Calibration) float64 {
	cal = cal.withDefaults()

	jx, jy := joint.X*cal.FrameWidthPx, joint.Y*cal.FrameHeightPx
	sx, sy := lineStart.X*cal.FrameWidthPx, lineStart.Y*cal.FrameHeightPx
	ex, ey := lineEnd.X*cal.FrameWidthPx, lineEnd.Y*cal.FrameHeightPx

	lx, ly := ex-sx, ey-sy
	length := math.Hypot(lx, ly)
	if length == 0 {
		return math.Hypot(jx-sx, jy-sy) * cal.CmPerPixel
	}
	cross := (jx-sx)*ly - (jy-sy)*lx
	return math.Abs(cross) / length * cal.CmPerPixel
}

func midpoint(a, b Landmark) Landmark {
	return Landmark{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
