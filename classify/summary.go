package classify

import (
	"fmt"
	"strconv"
	"strings"
)

var tierMarks = map[Tier]struct{ mark, word string }{
	TierExcellent:  {"✓", "excelente"},
	TierGood:       {"✓", "bom"},
	TierAcceptable: {"○", "aceitável"},
	TierWarning:    {"⚠", "atenção"},
	TierDanger:     {"✗", "perigoso"},
}

// FormatValue renders a value with its unit, e.g. "4.2cm".
func FormatValue(v float64, unit string) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + unit
}

// SummarizeClassification renders one verdict as a single line.
func SummarizeClassification(c CriteriaClassification) string {
	m := tierMarks[c.Tier]
	line := fmt.Sprintf("%s %s: %s (%s)", m.mark, c.Criterion, FormatValue(c.Value, c.Unit), m.word)
	if c.InformativeOnly {
		line += " [informativo]"
	}
	return line
}

// SummarizeResult renders the result grouped by severity. At most three
// passing criteria are listed.
func SummarizeResult(r *Result) string {
	var b strings.Builder
	exercise := r.Exercise
	if exercise == "" {
		exercise = r.Category
	}
	fmt.Fprintf(&b, "Exercício: %s\n", exercise)
	fmt.Fprintf(&b, "Score Geral: %s/10\n", FormatValue(r.OverallScore, ""))
	b.WriteString("\n")

	if danger := r.ByTier(TierDanger); len(danger) > 0 {
		b.WriteString("🔴 CRÍTICO:\n")
		for _, c := range danger {
			fmt.Fprintf(&b, "  %s\n", SummarizeClassification(c))
		}
		b.WriteString("\n")
	}
	if warnings := r.ByTier(TierWarning); len(warnings) > 0 {
		b.WriteString("🟡 ATENÇÃO:\n")
		for _, c := range warnings {
			fmt.Fprintf(&b, "  %s\n", SummarizeClassification(c))
		}
		b.WriteString("\n")
	}
	if ok := r.OK(); len(ok) > 0 {
		b.WriteString("🟢 OK:\n")
		for i, c := range ok {
			if i == 3 {
				fmt.Fprintf(&b, "  ... e %d mais\n", len(ok)-3)
				break
			}
			fmt.Fprintf(&b, "  %s\n", SummarizeClassification(c))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
