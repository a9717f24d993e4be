package aggregate

import (
	"math"

	"github.com/lucasjlepore/form-analyzer/pose"
)

// derivedMetric synthesizes a template-facing metric from the summary or
// from already-aggregated values. Rules run in table order, so a rule may
// read the output of an earlier one.
type derivedMetric struct {
	metric string
	places int
	derive func(agg map[string]float64, s Summary) (float64, bool)
}

var derivedMetrics = []derivedMetric{
	{metric: pose.MetricHipAngleAtBottom, derive: func(_ map[string]float64, s Summary) (float64, bool) {
		return romExtreme(s, false, pose.MetricHipAngleLeft, pose.MetricHipAngleRight)
	}},
	{metric: pose.MetricHipExtensionAtTop, derive: func(_ map[string]float64, s Summary) (float64, bool) {
		return romExtreme(s, true, pose.MetricHipAngleLeft, pose.MetricHipAngleRight)
	}},
	{metric: pose.MetricLumbarFlexionChange, derive: romSpan(pose.MetricLumbarFlexionProxy)},
	{metric: pose.MetricKneeMedialDisplacement, derive: func(agg map[string]float64, _ Summary) (float64, bool) {
		left, okL := agg[pose.MetricKneeValgusLeft]
		right, okR := agg[pose.MetricKneeValgusRight]
		switch {
		case okL && okR:
			return math.Max(left, right), true
		case okL:
			return left, true
		case okR:
			return right, true
		}
		return 0, false
	}},
	{metric: pose.MetricHipVsKneeRatio, places: 2, derive: renamed(pose.MetricHipKneeRatio)},
	{metric: pose.MetricElbowAngleAtChest, derive: romMin(pose.MetricElbowAngleLeft)},
	{metric: pose.MetricElbowAngleAtContraction, derive: romMin(pose.MetricElbowAngleContraction)},
	{metric: pose.MetricShoulderFlexionAtTop, derive: romMax(pose.MetricShoulderFlexion)},
	{metric: pose.MetricLumbarExtensionIncrease, derive: romSpan(pose.MetricLumbarExtension)},
	{metric: pose.MetricTrunkAngleVariation, derive: romSpan(pose.MetricTrunkInclination)},
	{metric: pose.MetricThoracicFlexion, derive: renamed(pose.MetricTrunkInclination)},
	{metric: pose.MetricRibCageAngleChange, derive: romSpan(pose.MetricTrunkInclination)},
	{metric: pose.MetricDeviationFromNeutralLine, derive: renamed(pose.MetricSpinalDeviation)},
	{metric: pose.MetricContralateralPelvicDrop, derive: renamed(pose.MetricPelvicDrop)},
	{metric: pose.MetricEccentricConcentricRatio, places: 2, derive: func(_ map[string]float64, s Summary) (float64, bool) {
		if s.Phases.Tempo == nil {
			return 0, false
		}
		return s.Phases.Tempo.Ratio, true
	}},
}

// appendDerived adds asymmetry differences and the derived table to the
// aggregated metrics.
func appendDerived(metrics []pose.MetricValue, s Summary) []pose.MetricValue {
	agg := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		agg[m.Metric] = m.Value
	}
	add := func(name string, value float64, unit string) {
		if _, exists := agg[name]; exists {
			return
		}
		agg[name] = value
		metrics = append(metrics, pose.MetricValue{Metric: name, Value: value, Unit: unit})
	}

	for _, d := range derivedMetrics {
		v, ok := d.derive(agg, s)
		if !ok {
			continue
		}
		if d.places == 2 {
			v = round2(v)
		} else {
			v = round1(v)
		}
		add(d.metric, v, pose.UnitFor(d.metric))
	}

	for _, base := range sortedKeys(s.Asymmetries) {
		unit := s.AsymmetryUnits[base]
		if unit == "" {
			unit = pose.UnitDegrees
		}
		add(base+pose.DifferenceSuffix, round1(s.Asymmetries[base]), unit)
	}
	if v, ok := agg["hip_angle"+pose.DifferenceSuffix]; ok {
		add(pose.MetricBilateralAngleDifference, v, pose.UnitDegrees)
	}
	return metrics
}

func renamed(from string) func(map[string]float64, Summary) (float64, bool) {
	return func(agg map[string]float64, _ Summary) (float64, bool) {
		v, ok := agg[from]
		return v, ok
	}
}

func romMin(from string) func(map[string]float64, Summary) (float64, bool) {
	return func(_ map[string]float64, s Summary) (float64, bool) {
		r, ok := s.ROM[from]
		return r.Min, ok
	}
}

func romMax(from string) func(map[string]float64, Summary) (float64, bool) {
	return func(_ map[string]float64, s Summary) (float64, bool) {
		r, ok := s.ROM[from]
		return r.Max, ok
	}
}

func romSpan(from string) func(map[string]float64, Summary) (float64, bool) {
	return func(_ map[string]float64, s Summary) (float64, bool) {
		r, ok := s.ROM[from]
		return r.Span(), ok
	}
}

// romExtreme returns the overall max (or min) across the ROM of several metrics.
func romExtreme(s Summary, useMax bool, names ...string) (float64, bool) {
	found := false
	var out float64
	for _, n := range names {
		r, ok := s.ROM[n]
		if !ok {
			continue
		}
		v := r.Min
		if useMax {
			v = r.Max
		}
		if !found || (useMax && v > out) || (!useMax && v < out) {
			out = v
		}
		found = true
	}
	return out, found
}
