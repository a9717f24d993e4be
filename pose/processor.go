package pose

import "math"

// DefaultMinVisibility is the confidence a landmark must exceed to be used.
const DefaultMinVisibility = 0.5

// Processor turns one frame's landmarks into named metrics.
type Processor struct {
	Calibration Calibration
	// MinVisibility is exclusive; values <= 0 fall back to DefaultMinVisibility.
	MinVisibility float64
}

// NewProcessor returns a processor with the default visibility gate.
func NewProcessor(cal Calibration) *Processor {
	return &Processor{
		Calibration:   cal.withDefaults(),
		MinVisibility: DefaultMinVisibility,
	}
}

type landmarks map[string]Landmark

// metricRule computes one metric from exactly the joints it lists. A rule is
// skipped when any listed joint is missing or not confident enough.
type metricRule struct {
	metric  string
	joints  []string
	places  int
	compute func(lm landmarks, cal Calibration) float64
}

var (
	hipAngleLeft = metricRule{
		metric: MetricHipAngleLeft,
		joints: []string{LeftShoulder, LeftHip, LeftKnee},
		compute: func(lm landmarks, _ Calibration) float64 {
			return ThreePointAngle(lm[LeftShoulder], lm[LeftHip], lm[LeftKnee])
		},
	}
	hipAngleRight = metricRule{
		metric: MetricHipAngleRight,
		joints: []string{RightShoulder, RightHip, RightKnee},
		compute: func(lm landmarks, _ Calibration) float64 {
			return ThreePointAngle(lm[RightShoulder], lm[RightHip], lm[RightKnee])
		},
	}
	kneeValgusLeft = metricRule{
		metric: MetricKneeValgusLeft,
		joints: []string{LeftHip, LeftKnee, LeftAnkle},
		places: 1,
		compute: func(lm landmarks, cal Calibration) float64 {
			return MedialDisplacement(lm[LeftKnee], lm[LeftAnkle], lm[LeftHip], cal)
		},
	}
	kneeValgusRight = metricRule{
		metric: MetricKneeValgusRight,
		joints: []string{RightHip, RightKnee, RightAnkle},
		places: 1,
		compute: func(lm landmarks, cal Calibration) float64 {
			return MedialDisplacement(lm[RightKnee], lm[RightAnkle], lm[RightHip], cal)
		},
	}
	trunkInclination = metricRule{
		metric: MetricTrunkInclination,
		joints: []string{LeftShoulder, LeftHip},
		compute: func(lm landmarks, _ Calibration) float64 {
			return AngleFromVertical(lm[LeftHip], lm[LeftShoulder])
		},
	}
	// The proxy is the trunk tilt, tracked only while the hip angle is
	// measurable; the aggregator turns its range into a flexion change.
	lumbarFlexionProxy = metricRule{
		metric: MetricLumbarFlexionProxy,
		joints: []string{LeftShoulder, LeftHip, LeftKnee},
		places: 1,
		compute: func(lm landmarks, _ Calibration) float64 {
			return AngleFromVertical(lm[LeftHip], lm[LeftShoulder])
		},
	}
	// Shin tilt against the vertical: 0 standing, 25-35 in a loaded squat.
	ankleDorsiflexion = metricRule{
		metric: MetricAnkleDorsiflexion,
		joints: []string{LeftKnee, LeftAnkle},
		compute: func(lm landmarks, _ Calibration) float64 {
			return math.Max(0, AngleFromVertical(lm[LeftAnkle], lm[LeftKnee]))
		},
	}
	pelvicDrop = metricRule{
		metric: MetricPelvicDrop,
		joints: []string{LeftHip, RightHip},
		compute: func(lm landmarks, _ Calibration) float64 {
			return AngleFromHorizontal(lm[LeftHip], lm[RightHip])
		},
	}
	trunkLateralDeviation = metricRule{
		metric: MetricTrunkLateralDeviation,
		joints: []string{LeftShoulder, RightShoulder, LeftHip, RightHip},
		compute: func(lm landmarks, _ Calibration) float64 {
			return AngleFromVertical(midpoint(lm[LeftHip], lm[RightHip]), midpoint(lm[LeftShoulder], lm[RightShoulder]))
		},
	}
	// Elevation of the trunk above horizontal. Upright reads 0, a flat back reads 90.
	lumbarFlexion = metricRule{
		metric: MetricLumbarFlexion,
		joints: []string{LeftShoulder, LeftHip},
		compute: func(lm landmarks, _ Calibration) float64 {
			return math.Max(0, 90-AngleFromVertical(lm[LeftHip], lm[LeftShoulder]))
		},
	}
	hipKneeRatio = metricRule{
		metric: MetricHipKneeRatio,
		joints: []string{LeftHip, LeftKnee, LeftAnkle},
		places: 2,
		compute: func(lm landmarks, _ Calibration) float64 {
			hip := lm[LeftHip]
			above := Landmark{X: hip.X, Y: hip.Y - 0.2}
			hipAngle := ThreePointAngle(above, hip, lm[LeftKnee])
			kneeAngle := ThreePointAngle(hip, lm[LeftKnee], lm[LeftAnkle])
			if kneeAngle <= 0 {
				return 0
			}
			return hipAngle / kneeAngle
		},
	}
	elbowAngleLeft = metricRule{
		metric: MetricElbowAngleLeft,
		joints: []string{LeftShoulder, LeftElbow, LeftWrist},
		compute: func(lm landmarks, _ Calibration) float64 {
			return ThreePointAngle(lm[LeftShoulder], lm[LeftElbow], lm[LeftWrist])
		},
	}
	wristExtension = metricRule{
		metric: MetricWristExtension,
		joints: []string{LeftElbow, LeftWrist},
		compute: func(lm landmarks, _ Calibration) float64 {
			wrist := lm[LeftWrist]
			ahead := Landmark{X: wrist.X + 0.1, Y: wrist.Y}
			return math.Max(0, ThreePointAngle(lm[LeftElbow], wrist, ahead)-90)
		},
	}
	// Upper arm against the torso line, read from a camera facing the
	// lifter; a tucked elbow sits near 45°.
	elbowAbduction = metricRule{
		metric: MetricElbowAbduction,
		joints: []string{LeftHip, LeftShoulder, LeftElbow},
		compute: func(lm landmarks, _ Calibration) float64 {
			return ThreePointAngle(lm[LeftHip], lm[LeftShoulder], lm[LeftElbow])
		},
	}
	shoulderFlexion = metricRule{
		metric: MetricShoulderFlexion,
		joints: []string{LeftHip, LeftShoulder, LeftElbow},
		compute: func(lm landmarks, _ Calibration) float64 {
			return ThreePointAngle(lm[LeftHip], lm[LeftShoulder], lm[LeftElbow])
		},
	}
	lumbarExtension = metricRule{
		metric: MetricLumbarExtension,
		joints: []string{LeftShoulder, LeftHip},
		compute: func(lm landmarks, _ Calibration) float64 {
			return math.Max(0, AngleFromVertical(lm[LeftHip], lm[LeftShoulder])-90)
		},
	}
	elbowAngleContraction = metricRule{
		metric: MetricElbowAngleContraction,
		joints: []string{LeftShoulder, LeftElbow, LeftWrist},
		compute: func(lm landmarks, _ Calibration) float64 {
			return ThreePointAngle(lm[LeftShoulder], lm[LeftElbow], lm[LeftWrist])
		},
	}
	spinalDeviation = metricRule{
		metric: MetricSpinalDeviation,
		joints: []string{LeftShoulder, LeftHip},
		compute: func(lm landmarks, _ Calibration) float64 {
			return math.Abs(90 - AngleFromVertical(lm[LeftHip], lm[LeftShoulder]))
		},
	}
)

var rulesByCategory = map[string][]metricRule{
	CategorySquat: {
		hipAngleLeft, hipAngleRight,
		kneeValgusRight, kneeValgusLeft,
		trunkInclination, lumbarFlexionProxy, ankleDorsiflexion,
	},
	CategoryUnilateral: {
		hipAngleLeft, hipAngleRight,
		kneeValgusRight, kneeValgusLeft,
		trunkInclination, lumbarFlexionProxy, ankleDorsiflexion,
		pelvicDrop, trunkLateralDeviation,
	},
	CategoryHinge:           {lumbarFlexion, hipKneeRatio, hipAngleLeft, trunkInclination},
	CategoryHorizontalPress: {elbowAngleLeft, wristExtension, elbowAbduction},
	CategoryVerticalPress:   {shoulderFlexion, lumbarExtension, trunkInclination},
	CategoryPull:            {elbowAngleContraction, lumbarFlexion, trunkInclination},
	CategoryCore:            {spinalDeviation},
}

// RequiredJoints lists the joints a metric reads for the given category.
func RequiredJoints(category, metric string) []string {
	for _, r := range rulesByCategory[category] {
		if r.metric == metric {
			return append([]string(nil), r.joints...)
		}
	}
	return nil
}

// MetricsFor lists the per-frame metrics the processor can emit for a category.
func MetricsFor(category string) []string {
	rules := rulesByCategory[category]
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.metric)
	}
	return out
}

// ProcessFrame extracts the category's metrics from one frame. Metrics whose
// joints are missing or below the visibility gate are omitted.
func (p *Processor) ProcessFrame(frame Frame, category string) FrameMetrics {
	out := FrameMetrics{
		FrameNumber: frame.FrameNumber,
		TimestampMs: frame.TimestampMs,
	}
	rules := rulesByCategory[category]
	if len(rules) == 0 {
		return out
	}

	minVis := p.MinVisibility
	if minVis <= 0 {
		minVis = DefaultMinVisibility
	}
	cal := p.Calibration.withDefaults()
	lm := landmarks(frame.Landmarks)

	out.Metrics = make([]MetricValue, 0, len(rules))
	for _, r := range rules {
		if !lm.visible(r.joints, minVis) {
			continue
		}
		v := r.compute(lm, cal)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out.Metrics = append(out.Metrics, MetricValue{
			Metric: r.metric,
			Value:  roundTo(v, r.places),
			Unit:   UnitFor(r.metric),
		})
	}
	return out
}

func (lm landmarks) visible(joints []string, minVis float64) bool {
	for _, j := range joints {
		l, ok := lm[j]
		if !ok || l.Confidence() <= minVis {
			return false
		}
	}
	return true
}
