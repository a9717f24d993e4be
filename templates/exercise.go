package templates

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/lucasjlepore/form-analyzer/pose"
)

var (
	separatorRun = regexp.MustCompile(`[-\s]+`)
	nonSlugChar  = regexp.MustCompile(`[^a-z0-9_]`)
)

// FoldAccents lowercases s and strips combining marks ("Agachamento Búlgaro"
// becomes "agachamento bulgaro").
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// NormalizeExerciseName turns a free-text exercise name into a lookup key.
func NormalizeExerciseName(name string) string {
	s := FoldAccents(strings.TrimSpace(name))
	s = separatorRun.ReplaceAllString(s, "_")
	return nonSlugChar.ReplaceAllString(s, "")
}

var exerciseCategories = map[string]string{
	"back_squat":     pose.CategorySquat,
	"front_squat":    pose.CategorySquat,
	"goblet_squat":   pose.CategorySquat,
	"overhead_squat": pose.CategorySquat,
	"hack_squat":     pose.CategorySquat,
	"leg_press":      pose.CategorySquat,
	"smith_squat":    pose.CategorySquat,

	"deadlift_conventional": pose.CategoryHinge,
	"deadlift_sumo":         pose.CategoryHinge,
	"stiff_leg_deadlift":    pose.CategoryHinge,
	"rdl":                   pose.CategoryHinge,
	"good_morning":          pose.CategoryHinge,
	"hip_thrust":            pose.CategoryHinge,

	"bench_press":    pose.CategoryHorizontalPress,
	"incline_press":  pose.CategoryHorizontalPress,
	"dumbbell_press": pose.CategoryHorizontalPress,
	"push_up":        pose.CategoryHorizontalPress,

	"overhead_press": pose.CategoryVerticalPress,
	"push_press":     pose.CategoryVerticalPress,
	"arnold_press":   pose.CategoryVerticalPress,

	"barbell_row":  pose.CategoryPull,
	"dumbbell_row": pose.CategoryPull,
	"lat_pulldown": pose.CategoryPull,
	"pull_up":      pose.CategoryPull,
	"chin_up":      pose.CategoryPull,

	"lunge_forward":         pose.CategoryUnilateral,
	"bulgarian_split_squat": pose.CategoryUnilateral,
	"step_up":               pose.CategoryUnilateral,

	"plank":      pose.CategoryCore,
	"side_plank": pose.CategoryCore,
	"dead_bug":   pose.CategoryCore,

	"agachamento":             pose.CategorySquat,
	"agachamento_com_barra":   pose.CategorySquat,
	"agachamento_barra_alta":  pose.CategorySquat,
	"agachamento_barra_baixa": pose.CategorySquat,
	"agachamento_frontal":     pose.CategorySquat,
	"agachamento_goblet":      pose.CategorySquat,
	"agachamento_overhead":    pose.CategorySquat,
	"agachamento_hack":        pose.CategorySquat,
	"agachamento_smith":       pose.CategorySquat,
	"agachamento_livre":       pose.CategorySquat,
	"agachamento_calice":      pose.CategorySquat,

	"levantamento_terra":              pose.CategoryHinge,
	"levantamento_terra_convencional": pose.CategoryHinge,
	"levantamento_terra_sumo":         pose.CategoryHinge,
	"terra_convencional":              pose.CategoryHinge,
	"terra_sumo":                      pose.CategoryHinge,
	"stiff":                           pose.CategoryHinge,
	"romeno":                          pose.CategoryHinge,
	"bom_dia":                         pose.CategoryHinge,
	"elevacao_de_quadril":             pose.CategoryHinge,
	"elevacao_pelvica":                pose.CategoryHinge,

	"supino":              pose.CategoryHorizontalPress,
	"supino_reto":         pose.CategoryHorizontalPress,
	"supino_inclinado":    pose.CategoryHorizontalPress,
	"supino_declinado":    pose.CategoryHorizontalPress,
	"supino_com_halteres": pose.CategoryHorizontalPress,
	"flexao_de_braco":     pose.CategoryHorizontalPress,
	"flexao":              pose.CategoryHorizontalPress,

	"desenvolvimento":              pose.CategoryVerticalPress,
	"desenvolvimento_com_barra":    pose.CategoryVerticalPress,
	"desenvolvimento_militar":      pose.CategoryVerticalPress,
	"press_militar":                pose.CategoryVerticalPress,
	"desenvolvimento_com_halteres": pose.CategoryVerticalPress,

	"remada":            pose.CategoryPull,
	"remada_curvada":    pose.CategoryPull,
	"remada_com_barra":  pose.CategoryPull,
	"remada_com_halter": pose.CategoryPull,
	"remada_cavaleiro":  pose.CategoryPull,
	"puxada":            pose.CategoryPull,
	"puxada_frontal":    pose.CategoryPull,
	"puxada_alta":       pose.CategoryPull,
	"barra_fixa":        pose.CategoryPull,

	"afundo":              pose.CategoryUnilateral,
	"afundo_frontal":      pose.CategoryUnilateral,
	"passada":             pose.CategoryUnilateral,
	"bulgaro":             pose.CategoryUnilateral,
	"agachamento_bulgaro": pose.CategoryUnilateral,

	"prancha":         pose.CategoryCore,
	"prancha_lateral": pose.CategoryCore,
	"abdominal":       pose.CategoryCore,
}

// ExerciseCategory resolves an exercise name (English or Portuguese, any
// case or accents) to its category. Unknown names resolve to squat.
func ExerciseCategory(name string) string {
	c, _ := LookupExerciseCategory(name)
	return c
}

// LookupExerciseCategory is ExerciseCategory that also reports whether the
// name was recognized.
func LookupExerciseCategory(name string) (string, bool) {
	if c, ok := exerciseCategories[NormalizeExerciseName(name)]; ok {
		return c, true
	}
	return DefaultCategory, false
}
