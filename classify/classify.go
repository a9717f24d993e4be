package classify

import (
	"math"

	"github.com/lucasjlepore/form-analyzer/pose"
	"github.com/lucasjlepore/form-analyzer/templates"
)

// NeutralScore is reported when no criterion could be scored.
const NeutralScore = 5.0

// SafetyCap bounds the score when a safety-critical criterion is at danger.
const SafetyCap = 5.0

var tiers = map[string]Tier{
	"excellent":    TierExcellent,
	"complete":     TierExcellent,
	"optimal":      TierExcellent,
	"good":         TierGood,
	"stable":       TierGood,
	"neutral":      TierGood,
	"controlled":   TierGood,
	"aligned":      TierGood,
	"acceptable":   TierAcceptable,
	"warning":      TierWarning,
	"partial":      TierWarning,
	"compensating": TierWarning,
	"medial":       TierWarning,
	"lateral":      TierWarning,
	"forward":      TierWarning,
	"behind":       TierWarning,
	"beyond_toe":   TierWarning,
	"danger":       TierDanger,
	"incomplete":   TierDanger,
	"unstable":     TierDanger,
	"significant":  TierDanger,
}

var tierWeights = map[Tier]float64{
	TierExcellent:  1.0,
	TierGood:       1.0,
	TierAcceptable: 1.0,
	TierWarning:    0.6,
	TierDanger:     0.0,
}

// TierOf maps a level name onto its tier. Unknown custom levels count as
// acceptable.
func TierOf(level string) Tier {
	if t, ok := tiers[level]; ok {
		return t
	}
	return TierAcceptable
}

// Weight returns the scoring weight of a tier.
func Weight(t Tier) float64 {
	return tierWeights[t]
}

// Classify matches aggregated metrics against a template. Criteria whose
// metric is absent are skipped. With an active constraint, range-of-motion
// criteria that are not safety-critical become informative and do not score.
func Classify(metrics []pose.MetricValue, tmpl *templates.CategoryTemplate, exercise string, constraint templates.Constraint) *Result {
	if constraint == "" {
		constraint = templates.ConstraintNone
	}
	res := &Result{
		Category:        tmpl.Category,
		Exercise:        exercise,
		Constraint:      constraint,
		ConstraintLabel: constraint.Label(),
		Classifications: make([]CriteriaClassification, 0, len(tmpl.Criteria)),
	}

	byName := make(map[string]pose.MetricValue, len(metrics))
	for _, m := range metrics {
		if _, dup := byName[m.Metric]; !dup {
			byName[m.Metric] = m
		}
	}

	for _, c := range tmpl.Criteria {
		m, ok := byName[c.Metric]
		if !ok {
			continue
		}
		level := MatchLevel(m.Value, c)
		tier := TierOf(level)
		safety := tmpl.IsSafetyCritical(c.Name)
		unit := m.Unit
		if unit == "" {
			unit = pose.UnitFor(c.Metric)
		}

		res.Classifications = append(res.Classifications, CriteriaClassification{
			Criterion:       c.Name,
			Label:           c.DisplayName(),
			Metric:          c.Metric,
			Value:           m.Value,
			Unit:            unit,
			Level:           level,
			LevelLabel:      templates.LevelLabel(level),
			Tier:            tier,
			SafetyCritical:  safety,
			InformativeOnly: constraint.Active() && tmpl.IsROMDependent(c.Name) && !safety,
			Thresholds:      append([]templates.Threshold(nil), c.Thresholds...),
			RAGTopics:       append([]string(nil), c.RAGTopics...),
			Note:            c.Note,
		})
		res.Summary.add(tier)
		if tier == TierDanger {
			res.HasDanger = true
		}
		if tier == TierWarning && safety {
			res.HasWarningSafety = true
		}
	}

	res.OverallScore = Score(res.Classifications)
	return res
}

// MatchLevel returns the first declared level whose range contains value.
// With no match, the danger-tier level is chosen when the value lies outside
// its parseable range; otherwise the result is acceptable.
func MatchLevel(value float64, c templates.Criterion) string {
	for _, t := range c.Thresholds {
		r, ok := templates.ParseThreshold(t.Expr)
		if ok && r.Contains(value) {
			return t.Level
		}
	}
	for i := len(c.Thresholds) - 1; i >= 0; i-- {
		t := c.Thresholds[i]
		if TierOf(t.Level) != TierDanger {
			continue
		}
		if r, ok := templates.ParseThreshold(t.Expr); ok && !r.Contains(value) {
			return t.Level
		}
		break
	}
	return string(TierAcceptable)
}

// Score computes the 0-10 weighted score over non-informative criteria.
// Safety-critical criteria weigh double and cap the score at SafetyCap when
// they reach danger.
func Score(cs []CriteriaClassification) float64 {
	var total, weighted float64
	capped := false
	for _, c := range cs {
		if c.InformativeOnly {
			continue
		}
		cw := 1.0
		if c.SafetyCritical {
			cw = 2.0
			if c.Tier == TierDanger {
				capped = true
			}
		}
		total += cw
		weighted += Weight(c.Tier) * cw
	}
	if total == 0 {
		return NeutralScore
	}
	score := math.Round(weighted/total*10*10) / 10
	score = math.Max(0, math.Min(10, score))
	if capped {
		score = math.Min(score, SafetyCap)
	}
	return score
}
