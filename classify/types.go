package classify

import "github.com/lucasjlepore/form-analyzer/templates"

// Tier is the canonical severity a level name maps to.
type Tier string

const (
	TierExcellent  Tier = "excellent"
	TierGood       Tier = "good"
	TierAcceptable Tier = "acceptable"
	TierWarning    Tier = "warning"
	TierDanger     Tier = "danger"
)

// OK reports whether the tier is acceptable or better.
func (t Tier) OK() bool {
	return t == TierExcellent || t == TierGood || t == TierAcceptable
}

// CriteriaClassification is the verdict for one criterion.
type CriteriaClassification struct {
	Criterion       string                `json:"criterion"`
	Label           string                `json:"label"`
	Metric          string                `json:"metric"`
	Value           float64               `json:"value"`
	Unit            string                `json:"unit,omitempty"`
	Level           string                `json:"classification"`
	LevelLabel      string                `json:"classification_label"`
	Tier            Tier                  `json:"tier"`
	SafetyCritical  bool                  `json:"is_safety_critical"`
	InformativeOnly bool                  `json:"informative_only"`
	Thresholds      []templates.Threshold `json:"range"`
	RAGTopics       []string              `json:"rag_topics"`
	Note            string                `json:"note,omitempty"`
}

// RangeFor returns the threshold expression of level, if declared.
func (c CriteriaClassification) RangeFor(level string) string {
	for _, t := range c.Thresholds {
		if t.Level == level {
			return t.Expr
		}
	}
	return ""
}

// WorstRange returns the expression of the last declared danger-tier level.
func (c CriteriaClassification) WorstRange() string {
	for i := len(c.Thresholds) - 1; i >= 0; i-- {
		if TierOf(c.Thresholds[i].Level) == TierDanger {
			return c.Thresholds[i].Expr
		}
	}
	return ""
}

// Summary counts classifications per tier.
type Summary struct {
	Excellent  int `json:"excellent"`
	Good       int `json:"good"`
	Acceptable int `json:"acceptable"`
	Warning    int `json:"warning"`
	Danger     int `json:"danger"`
}

func (s *Summary) add(t Tier) {
	switch t {
	case TierExcellent:
		s.Excellent++
	case TierGood:
		s.Good++
	case TierAcceptable:
		s.Acceptable++
	case TierWarning:
		s.Warning++
	case TierDanger:
		s.Danger++
	}
}

// Result is the classifier output for one analysis.
type Result struct {
	Category         string                   `json:"category"`
	Exercise         string                   `json:"exercise_type,omitempty"`
	Constraint       templates.Constraint     `json:"constraint_applied"`
	ConstraintLabel  string                   `json:"constraint_label,omitempty"`
	Classifications  []CriteriaClassification `json:"classifications"`
	OverallScore     float64                  `json:"overall_score"`
	HasDanger        bool                     `json:"has_danger"`
	HasWarningSafety bool                     `json:"has_warning_safety"`
	Summary          Summary                  `json:"summary"`
}

// ByTier returns the classifications in the given tiers, in result order.
func (r *Result) ByTier(tiers ...Tier) []CriteriaClassification {
	var out []CriteriaClassification
	for _, c := range r.Classifications {
		for _, t := range tiers {
			if c.Tier == t {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// OK returns the classifications at acceptable tier or better.
func (r *Result) OK() []CriteriaClassification {
	return r.ByTier(TierExcellent, TierGood, TierAcceptable)
}
