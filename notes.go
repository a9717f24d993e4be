package formnotes

import (
	"fmt"
	"strings"

	"github.com/lucasjlepore/form-analyzer/classify"
)

// BuildDiagnosticSummary turns an analysis into a plain-text summary for
// humans reviewing the run.
func BuildDiagnosticSummary(a *Analysis) string {
	if a == nil {
		return ""
	}

	var b strings.Builder

	label := a.Category
	if a.Template != nil {
		label = fmt.Sprintf("%s / %s", a.Template.DisplayLabel(), a.Category)
	}
	fmt.Fprintf(&b, "Exercise: %s (%s)\n", a.ExerciseName, label)
	if !a.CategoryMatched {
		fmt.Fprintf(&b, "Category: exercise not recognized, evaluated as %s\n", a.Category)
	}
	if seq := a.Sequence; seq != nil {
		fmt.Fprintf(
			&b,
			"Frames %d @ %.0f fps | Duration %.1fs | Metrics %d\n",
			seq.TotalFrames,
			seq.FPS,
			seq.DurationSeconds,
			len(seq.Metrics),
		)
	}
	if a.Constraint.Active() {
		fmt.Fprintf(&b, "Constraint: %s (range-of-motion criteria are informative only)\n", a.Constraint.Label())
	}

	if r := a.Result; r != nil {
		s := r.Summary
		fmt.Fprintf(
			&b,
			"Score %s/10 | excellent %d, good %d, acceptable %d, warning %d, danger %d\n",
			classify.FormatValue(r.OverallScore, ""),
			s.Excellent,
			s.Good,
			s.Acceptable,
			s.Warning,
			s.Danger,
		)
		if r.HasDanger {
			b.WriteString("Safety: at least one criterion in the danger zone\n")
		} else if r.HasWarningSafety {
			b.WriteString("Safety: a safety-critical criterion needs attention\n")
		}
	}

	fmt.Fprintf(&b, "Structure: %s (confidence %.2f)\n", a.Structure.CanonicalLabel, a.Structure.Confidence)
	if seq := a.Sequence; seq != nil {
		if t := seq.Summary.Phases.Tempo; t != nil {
			fmt.Fprintf(&b, "Tempo: eccentric %.0fms / concentric %.0fms (%.2f:1)\n", t.EccentricMs, t.ConcentricMs, t.Ratio)
		} else {
			b.WriteString("Tempo: phases could not be determined\n")
		}
	}

	if a.Result != nil && len(a.Result.Classifications) > 0 {
		b.WriteString("\nCriteria:\n")
		for _, c := range a.Result.Classifications {
			fmt.Fprintf(&b, "  %s\n", classify.SummarizeClassification(c))
		}
	}
	if a.Template != nil && a.Result != nil {
		var missing []string
		for _, c := range a.Template.Criteria {
			if !classified(a.Result, c.Name) {
				missing = append(missing, c.Name)
			}
		}
		if len(missing) > 0 {
			fmt.Fprintf(&b, "Not evaluated (metric unavailable): %s\n", strings.Join(missing, ", "))
		}
	}

	if len(a.Knowledge) > 0 {
		topics := make([]string, len(a.Knowledge))
		for i, e := range a.Knowledge {
			topics[i] = e.Topic
		}
		fmt.Fprintf(&b, "\nKnowledge: %s\n", strings.Join(topics, "; "))
	}

	return strings.TrimSpace(b.String())
}

func classified(r *classify.Result, criterion string) bool {
	for _, c := range r.Classifications {
		if c.Criterion == criterion {
			return true
		}
	}
	return false
}
