package classify

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasjlepore/form-analyzer/pose"
	"github.com/lucasjlepore/form-analyzer/templates"
)

func mv(metric string, value float64) pose.MetricValue {
	return pose.MetricValue{Metric: metric, Value: value, Unit: pose.UnitFor(metric)}
}

func squat() *templates.CategoryTemplate {
	return templates.Default().Template(pose.CategorySquat)
}

func find(t *testing.T, r *Result, criterion string) CriteriaClassification {
	t.Helper()
	for _, c := range r.Classifications {
		if c.Criterion == criterion {
			return c
		}
	}
	t.Fatalf("criterion %q not classified", criterion)
	return CriteriaClassification{}
}

func TestMatchLevelDepthRanges(t *testing.T) {
	t.Parallel()

	depth, ok := squat().Criterion("depth")
	require.True(t, ok)

	tests := []struct {
		value float64
		want  string
	}{
		{60, "excellent"},
		{70, "good"},
		{75, "good"},
		{90, "good"},
		{95, "acceptable"},
		{100, "acceptable"},
		{110, "warning"},
		{120, "warning"},
		{120.1, "danger"},
		{150, "danger"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, MatchLevel(tc.value, depth), "value %v", tc.value)
	}
}

func TestMatchLevelRatioRanges(t *testing.T) {
	t.Parallel()

	tempo, ok := squat().Criterion("tempo")
	require.True(t, ok)

	assert.Equal(t, "excellent", MatchLevel(1.6, tempo))
	assert.Equal(t, "acceptable", MatchLevel(1.14, tempo))
	assert.Equal(t, "acceptable", MatchLevel(1.5, tempo))
	assert.Equal(t, "warning", MatchLevel(0.9, tempo))
	assert.Equal(t, "danger", MatchLevel(0.5, tempo))
}

func TestMatchLevelFallback(t *testing.T) {
	t.Parallel()

	hinge := templates.Default().Template(pose.CategoryHinge)
	lumbar, ok := hinge.Criterion("lumbar_neutrality")
	require.True(t, ok)
	// Below every declared range and outside "> 40°".
	assert.Equal(t, "danger", MatchLevel(5, lumbar))

	descriptive := templates.Criterion{
		Name:   "x",
		Metric: "m",
		Thresholds: []templates.Threshold{
			{Level: "good", Expr: "< 10"},
			{Level: "danger", Expr: "Sem contração"},
		},
	}
	assert.Equal(t, "acceptable", MatchLevel(20, descriptive))

	custom := templates.Criterion{
		Name:   "lockout",
		Metric: "m",
		Thresholds: []templates.Threshold{
			{Level: "complete", Expr: "> 170°"},
			{Level: "incomplete", Expr: "100-160°"},
		},
	}
	assert.Equal(t, "incomplete", MatchLevel(165, custom))
}

func TestClassifySkipsMissingMetrics(t *testing.T) {
	t.Parallel()

	r := Classify([]pose.MetricValue{mv(pose.MetricHipAngleAtBottom, 75)}, squat(), "agachamento", templates.ConstraintNone)
	require.Len(t, r.Classifications, 1)

	c := r.Classifications[0]
	assert.Equal(t, "depth", c.Criterion)
	assert.Equal(t, "Profundidade", c.Label)
	assert.Equal(t, "good", c.Level)
	assert.Equal(t, "Bom", c.LevelLabel)
	assert.Equal(t, TierGood, c.Tier)
	assert.Equal(t, pose.UnitDegrees, c.Unit)
	assert.Len(t, c.Thresholds, 5)
	assert.Equal(t, 1, r.Summary.Good)
	assert.Equal(t, 10.0, r.OverallScore)
}

func TestClassifyDefaultsUnitFromCatalog(t *testing.T) {
	t.Parallel()

	r := Classify([]pose.MetricValue{{Metric: pose.MetricKneeMedialDisplacement, Value: 2}}, squat(), "", "")
	require.Len(t, r.Classifications, 1)
	assert.Equal(t, pose.UnitCentimeters, r.Classifications[0].Unit)
	assert.Equal(t, templates.ConstraintNone, r.Constraint)
}

func TestClassifySafetyDangerCapsScore(t *testing.T) {
	t.Parallel()

	metrics := []pose.MetricValue{
		mv(pose.MetricHipAngleAtBottom, 60),
		mv(pose.MetricTrunkInclination, 30),
		mv(pose.MetricAnkleDorsiflexion, 40),
		mv(pose.MetricBilateralAngleDifference, 2),
		mv(pose.MetricEccentricConcentricRatio, 2),
		mv(pose.MetricLumbarFlexionChange, 5),
		mv(pose.MetricKneeMedialDisplacement, 7),
	}
	r := Classify(metrics, squat(), "agachamento", templates.ConstraintNone)

	valgus := find(t, r, "knee_valgus")
	assert.Equal(t, TierDanger, valgus.Tier)
	assert.True(t, valgus.SafetyCritical)
	assert.True(t, r.HasDanger)
	assert.LessOrEqual(t, r.OverallScore, SafetyCap)
	assert.Equal(t, 5.0, r.OverallScore)
	assert.Equal(t, 1, r.Summary.Danger)
}

func TestClassifyWarningSafetyFlag(t *testing.T) {
	t.Parallel()

	r := Classify([]pose.MetricValue{
		mv(pose.MetricKneeMedialDisplacement, 4),
		mv(pose.MetricHipAngleAtBottom, 80),
	}, squat(), "", templates.ConstraintNone)

	assert.True(t, r.HasWarningSafety)
	assert.False(t, r.HasDanger)
	// (0.6*2 + 1*1) / 3 * 10
	assert.Equal(t, 7.3, r.OverallScore)
}

func TestClassifyIsIdempotent(t *testing.T) {
	t.Parallel()

	metrics := []pose.MetricValue{
		mv(pose.MetricHipAngleAtBottom, 105),
		mv(pose.MetricKneeMedialDisplacement, 4.2),
		mv(pose.MetricLumbarFlexionChange, 25),
	}
	tmpl := squat()
	first := Classify(metrics, tmpl, "back squat", templates.ConstraintSafetyBars)
	second := Classify(metrics, tmpl, "back squat", templates.ConstraintSafetyBars)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("classification not idempotent (-first +second):\n%s", diff)
	}
}

func TestClassifyConstraintMarksRangeCriteriaInformative(t *testing.T) {
	t.Parallel()

	metrics := []pose.MetricValue{
		mv(pose.MetricHipAngleAtBottom, 125),
		mv(pose.MetricAnkleDorsiflexion, 15),
		mv(pose.MetricKneeMedialDisplacement, 1),
		mv(pose.MetricLumbarFlexionChange, 5),
	}
	free := Classify(metrics, squat(), "", templates.ConstraintNone)
	bars := Classify(metrics, squat(), "", templates.ConstraintSafetyBars)

	for _, c := range free.Classifications {
		assert.False(t, c.InformativeOnly, c.Criterion)
	}
	assert.True(t, find(t, bars, "depth").InformativeOnly)
	assert.True(t, find(t, bars, "ankle_mobility").InformativeOnly)
	assert.False(t, find(t, bars, "knee_valgus").InformativeOnly)
	assert.False(t, find(t, bars, "lumbar_control").InformativeOnly)

	assert.Equal(t, "danger", find(t, bars, "depth").Level, "informative criteria keep their level")
	assert.Equal(t, 10.0, bars.OverallScore)
	assert.GreaterOrEqual(t, bars.OverallScore, free.OverallScore)
	assert.Equal(t, "Barras de segurança", bars.ConstraintLabel)
}

func TestConstraintNeverHidesSafetyCriteria(t *testing.T) {
	t.Parallel()

	tmpl := templates.Default().Template(pose.CategoryVerticalPress)
	require.True(t, tmpl.IsROMDependent("overhead_lockout"))
	require.True(t, tmpl.IsSafetyCritical("overhead_lockout"))

	r := Classify([]pose.MetricValue{mv(pose.MetricShoulderFlexionAtTop, 140)}, tmpl, "", templates.ConstraintRehab)
	c := find(t, r, "overhead_lockout")
	assert.False(t, c.InformativeOnly)
	assert.Equal(t, "incomplete", c.Level)
	assert.Equal(t, TierDanger, c.Tier)
	assert.LessOrEqual(t, r.OverallScore, SafetyCap)
}

func TestScoreNeutralWhenNothingScorable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NeutralScore, Score(nil))
	assert.Equal(t, NeutralScore, Score([]CriteriaClassification{{Tier: TierDanger, InformativeOnly: true}}))

	r := Classify(nil, squat(), "", templates.ConstraintNone)
	assert.Empty(t, r.Classifications)
	assert.Equal(t, NeutralScore, r.OverallScore)
}

func TestScoreBounds(t *testing.T) {
	t.Parallel()

	tiersUnderTest := []Tier{TierExcellent, TierGood, TierAcceptable, TierWarning, TierDanger}
	for _, a := range tiersUnderTest {
		for _, b := range tiersUnderTest {
			for _, safety := range []bool{false, true} {
				s := Score([]CriteriaClassification{
					{Tier: a, SafetyCritical: safety},
					{Tier: b},
				})
				assert.GreaterOrEqual(t, s, 0.0)
				assert.LessOrEqual(t, s, 10.0)
				if safety && a == TierDanger {
					assert.LessOrEqual(t, s, SafetyCap)
				}
			}
		}
	}
}

func TestTierOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TierExcellent, TierOf("complete"))
	assert.Equal(t, TierGood, TierOf("neutral"))
	assert.Equal(t, TierWarning, TierOf("partial"))
	assert.Equal(t, TierDanger, TierOf("significant"))
	assert.Equal(t, TierAcceptable, TierOf("whatever"))
	assert.True(t, TierGood.OK())
	assert.False(t, TierWarning.OK())
}

func TestSummarizeResult(t *testing.T) {
	t.Parallel()

	r := Classify([]pose.MetricValue{
		mv(pose.MetricHipAngleAtBottom, 130),
		mv(pose.MetricKneeMedialDisplacement, 4.2),
		mv(pose.MetricTrunkInclination, 20),
		mv(pose.MetricAnkleDorsiflexion, 40),
		mv(pose.MetricLumbarFlexionChange, 3),
		mv(pose.MetricBilateralAngleDifference, 1),
	}, squat(), "agachamento livre", templates.ConstraintNone)

	text := SummarizeResult(r)
	assert.True(t, strings.HasPrefix(text, "Exercício: agachamento livre\n"))
	assert.Contains(t, text, "🔴 CRÍTICO:\n  ✗ depth: 130° (perigoso)")
	assert.Contains(t, text, "🟡 ATENÇÃO:\n  ⚠ knee_valgus: 4.2cm (atenção)")
	assert.Contains(t, text, "... e 1 mais")

	c := find(t, r, "trunk_control")
	assert.Equal(t, "○ trunk_control: 20° (aceitável)", SummarizeClassification(c))
}

func TestWorstRange(t *testing.T) {
	t.Parallel()

	r := Classify([]pose.MetricValue{mv(pose.MetricHipAngleAtBottom, 130)}, squat(), "", templates.ConstraintNone)
	c := find(t, r, "depth")
	assert.Equal(t, "> 120°", c.WorstRange())
	assert.Equal(t, "100-120°", c.RangeFor("warning"))
}
