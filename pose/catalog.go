package pose

import "strings"

// Exercise categories understood by the processor and the template registry.
const (
	CategorySquat           = "squat"
	CategoryHinge           = "hinge"
	CategoryHorizontalPress = "horizontal_press"
	CategoryVerticalPress   = "vertical_press"
	CategoryPull            = "pull"
	CategoryUnilateral      = "unilateral"
	CategoryCore            = "core"
)

// Per-frame metric names.
const (
	MetricHipAngleLeft          = "hip_angle_left"
	MetricHipAngleRight         = "hip_angle_right"
	MetricKneeValgusLeft        = "knee_valgus_left_cm"
	MetricKneeValgusRight       = "knee_valgus_right_cm"
	MetricTrunkInclination      = "trunk_inclination_degrees"
	MetricLumbarFlexionProxy    = "lumbar_flexion_proxy"
	MetricAnkleDorsiflexion     = "ankle_dorsiflexion_degrees"
	MetricPelvicDrop            = "pelvic_drop_degrees"
	MetricTrunkLateralDeviation = "trunk_lateral_deviation_degrees"
	MetricLumbarFlexion         = "lumbar_flexion_degrees"
	MetricHipKneeRatio          = "hip_knee_angle_ratio"
	MetricElbowAngleLeft        = "elbow_angle_left"
	MetricWristExtension        = "wrist_extension_degrees"
	MetricShoulderFlexion       = "shoulder_flexion_degrees"
	MetricLumbarExtension       = "lumbar_extension_degrees"
	MetricElbowAngleContraction = "elbow_angle_contraction"
	MetricSpinalDeviation       = "spinal_deviation_degrees"
	MetricElbowAbduction        = "elbow_abduction_angle"
)

// Sequence-level metric names synthesized by the aggregator.
const (
	MetricHipAngleAtBottom         = "hip_angle_at_bottom"
	MetricHipExtensionAtTop        = "hip_extension_at_top"
	MetricLumbarFlexionChange      = "lumbar_flexion_change_degrees"
	MetricKneeMedialDisplacement   = "knee_medial_displacement_cm"
	MetricBilateralAngleDifference = "bilateral_angle_difference"
	MetricEccentricConcentricRatio = "eccentric_concentric_ratio"
	MetricHipVsKneeRatio           = "hip_angle_vs_knee_angle_ratio"
	MetricElbowAngleAtChest        = "elbow_angle_at_chest"
	MetricElbowAngleAtContraction  = "elbow_angle_at_contraction"
	MetricShoulderFlexionAtTop     = "shoulder_flexion_at_top"
	MetricLumbarExtensionIncrease  = "lumbar_extension_increase_degrees"
	MetricTrunkAngleVariation      = "trunk_angle_variation_degrees"
	MetricDeviationFromNeutralLine = "deviation_from_neutral_line"
	MetricContralateralPelvicDrop  = "contralateral_pelvic_drop_degrees"
	MetricThoracicFlexion          = "thoracic_flexion_degrees"
	MetricRibCageAngleChange       = "rib_cage_angle_change"
)

// Units.
const (
	UnitDegrees     = "°"
	UnitCentimeters = "cm"
	UnitRatio       = ":1"
)

// Reduction selects how a per-frame series collapses into one value.
type Reduction string

const (
	ReduceMax  Reduction = "max"
	ReduceMin  Reduction = "min"
	ReduceMean Reduction = "mean"
)

// MetricSpec describes a metric's unit and sequence reduction.
type MetricSpec struct {
	Unit      string
	Reduction Reduction
}

// catalog is the single table binding metric identity to its reduction.
// Displacements keep the worst excursion, depth angles keep the bottom of
// the movement, everything else averages.
var catalog = map[string]MetricSpec{
	MetricHipAngleLeft:          {Unit: UnitDegrees, Reduction: ReduceMin},
	MetricHipAngleRight:         {Unit: UnitDegrees, Reduction: ReduceMin},
	MetricKneeValgusLeft:        {Unit: UnitCentimeters, Reduction: ReduceMax},
	MetricKneeValgusRight:       {Unit: UnitCentimeters, Reduction: ReduceMax},
	MetricTrunkInclination:      {Unit: UnitDegrees, Reduction: ReduceMean},
	MetricLumbarFlexionProxy:    {Unit: UnitDegrees, Reduction: ReduceMean},
	MetricAnkleDorsiflexion:     {Unit: UnitDegrees, Reduction: ReduceMean},
	MetricPelvicDrop:            {Unit: UnitDegrees, Reduction: ReduceMax},
	MetricTrunkLateralDeviation: {Unit: UnitDegrees, Reduction: ReduceMean},
	MetricLumbarFlexion:         {Unit: UnitDegrees, Reduction: ReduceMean},
	MetricHipKneeRatio:          {Unit: UnitRatio, Reduction: ReduceMean},
	MetricElbowAngleLeft:        {Unit: UnitDegrees, Reduction: ReduceMean},
	MetricWristExtension:        {Unit: UnitDegrees, Reduction: ReduceMean},
	MetricShoulderFlexion:       {Unit: UnitDegrees, Reduction: ReduceMean},
	MetricLumbarExtension:       {Unit: UnitDegrees, Reduction: ReduceMean},
	MetricElbowAngleContraction: {Unit: UnitDegrees, Reduction: ReduceMean},
	MetricSpinalDeviation:       {Unit: UnitDegrees, Reduction: ReduceMean},
	MetricElbowAbduction:        {Unit: UnitDegrees, Reduction: ReduceMax},

	MetricHipAngleAtBottom:         {Unit: UnitDegrees, Reduction: ReduceMin},
	MetricHipExtensionAtTop:        {Unit: UnitDegrees, Reduction: ReduceMax},
	MetricLumbarFlexionChange:      {Unit: UnitDegrees, Reduction: ReduceMax},
	MetricKneeMedialDisplacement:   {Unit: UnitCentimeters, Reduction: ReduceMax},
	MetricBilateralAngleDifference: {Unit: UnitDegrees, Reduction: ReduceMax},
	MetricEccentricConcentricRatio: {Unit: UnitRatio, Reduction: ReduceMean},
	MetricHipVsKneeRatio:           {Unit: UnitRatio, Reduction: ReduceMean},
	MetricElbowAngleAtChest:        {Unit: UnitDegrees, Reduction: ReduceMin},
	MetricElbowAngleAtContraction:  {Unit: UnitDegrees, Reduction: ReduceMin},
	MetricShoulderFlexionAtTop:     {Unit: UnitDegrees, Reduction: ReduceMax},
	MetricLumbarExtensionIncrease:  {Unit: UnitDegrees, Reduction: ReduceMax},
	MetricTrunkAngleVariation:      {Unit: UnitDegrees, Reduction: ReduceMax},
	MetricDeviationFromNeutralLine: {Unit: UnitDegrees, Reduction: ReduceMean},
	MetricContralateralPelvicDrop:  {Unit: UnitDegrees, Reduction: ReduceMax},
	MetricThoracicFlexion:          {Unit: UnitDegrees, Reduction: ReduceMean},
	MetricRibCageAngleChange:       {Unit: UnitDegrees, Reduction: ReduceMax},
}

// Spec returns the catalog entry for a metric. Unknown metrics average and
// carry no unit.
func Spec(metric string) (MetricSpec, bool) {
	s, ok := catalog[metric]
	if !ok {
		return MetricSpec{Reduction: ReduceMean}, false
	}
	return s, true
}

// UnitFor returns the display unit for a metric, or "" when unknown.
func UnitFor(metric string) string {
	s, _ := Spec(metric)
	return s.Unit
}

// DifferenceSuffix names the left/right asymmetry metrics, e.g. hip_angle_difference.
const DifferenceSuffix = "_difference"

// Known reports whether the processor or aggregator can ever produce metric.
func Known(metric string) bool {
	if _, ok := catalog[metric]; ok {
		return true
	}
	return strings.HasSuffix(metric, DifferenceSuffix)
}
