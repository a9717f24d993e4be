package templates

import (
	"strings"

	"github.com/lucasjlepore/form-analyzer/pose"
)

var categoryLabels = map[string]string{
	pose.CategorySquat:           "Agachamento",
	pose.CategoryHinge:           "Levantamento Terra / Posterior",
	pose.CategoryHorizontalPress: "Supino / Press Horizontal",
	pose.CategoryVerticalPress:   "Desenvolvimento / Press Vertical",
	pose.CategoryPull:            "Remada / Puxada",
	pose.CategoryUnilateral:      "Unilateral (Afundo / Step-up)",
	pose.CategoryCore:            "Core / Estabilização",
}

var levelLabels = map[string]string{
	"excellent":    "Excelente",
	"good":         "Bom",
	"acceptable":   "Aceitável",
	"warning":      "Alerta",
	"danger":       "Perigo",
	"complete":     "Completo",
	"partial":      "Parcial",
	"incomplete":   "Incompleto",
	"controlled":   "Controlado",
	"stable":       "Estável",
	"neutral":      "Neutro",
	"optimal":      "Ótimo",
	"compensating": "Compensando",
	"significant":  "Significativo",
	"unstable":     "Instável",
	"aligned":      "Alinhado",
	"medial":       "Medial",
	"lateral":      "Lateral",
	"beyond_toe":   "Além do pé",
	"forward":      "À frente",
	"behind":       "Atrás",
}

// CategoryLabel returns the display label for a category, or the key itself.
func CategoryLabel(category string) string {
	if l, ok := categoryLabels[category]; ok {
		return l
	}
	return category
}

// LevelLabel returns the display label for a classification level.
func LevelLabel(level string) string {
	if l, ok := levelLabels[level]; ok {
		return l
	}
	return level
}

// Constraint is an equipment or condition that limits achievable range.
type Constraint string

const (
	ConstraintNone          Constraint = "none"
	ConstraintSafetyBars    Constraint = "safety_bars"
	ConstraintMachineGuided Constraint = "machine_guided"
	ConstraintSpaceLimited  Constraint = "space_limited"
	ConstraintPainLimited   Constraint = "pain_limited"
	ConstraintRehab         Constraint = "rehab"
)

var constraintLabels = map[Constraint]string{
	ConstraintNone:          "Nenhuma",
	ConstraintSafetyBars:    "Barras de segurança",
	ConstraintMachineGuided: "Máquina guiada (Smith)",
	ConstraintSpaceLimited:  "Espaço limitado",
	ConstraintPainLimited:   "Dor limitando amplitude",
	ConstraintRehab:         "Em reabilitação",
}

// Label returns the display label of the constraint.
func (c Constraint) Label() string {
	if l, ok := constraintLabels[c]; ok {
		return l
	}
	return string(c)
}

// Active reports whether the constraint limits range of motion.
func (c Constraint) Active() bool {
	return c != "" && c != ConstraintNone
}

// constraintAliases maps normalized free text to constraint tags, checked in
// order by substring.
var constraintAliases = []struct {
	needle string
	tag    Constraint
}{
	{"safety_bar", ConstraintSafetyBars},
	{"safety", ConstraintSafetyBars},
	{"barra_de_seguranca", ConstraintSafetyBars},
	{"barras_de_seguranca", ConstraintSafetyBars},
	{"pino", ConstraintSafetyBars},
	{"smith", ConstraintMachineGuided},
	{"machine", ConstraintMachineGuided},
	{"maquina", ConstraintMachineGuided},
	{"guided", ConstraintMachineGuided},
	{"guiada", ConstraintMachineGuided},
	{"space", ConstraintSpaceLimited},
	{"espaco", ConstraintSpaceLimited},
	{"pain", ConstraintPainLimited},
	{"dor", ConstraintPainLimited},
	{"rehab", ConstraintRehab},
	{"reabilitacao", ConstraintRehab},
}

// ParseConstraint maps a tag or free text ("Smith machine", "safety bars")
// to a Constraint. Empty or unrecognized text yields ConstraintNone.
func ParseConstraint(s string) Constraint {
	norm := NormalizeExerciseName(s)
	if norm == "" || norm == "none" || norm == "nenhuma" {
		return ConstraintNone
	}
	if _, ok := constraintLabels[Constraint(norm)]; ok {
		return Constraint(norm)
	}
	for _, a := range constraintAliases {
		if strings.Contains(norm, a.needle) {
			return a.tag
		}
	}
	return ConstraintNone
}
