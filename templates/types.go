package templates

// Threshold is one named classification level and its range expression,
// e.g. {Level: "warning", Expr: "3-6cm"}.
type Threshold struct {
	Level string `json:"level"`
	Expr  string `json:"expr"`
}

// Criterion is one evaluated aspect of movement quality. Thresholds are
// declared best to worst; the classifier takes the first that matches.
type Criterion struct {
	Name       string      `json:"name"`
	Metric     string      `json:"metric"`
	Label      string      `json:"label"`
	Note       string      `json:"note,omitempty"`
	Thresholds []Threshold `json:"thresholds"`
	RAGTopics  []string    `json:"rag_topics"`
}

// Threshold returns the expression declared for level.
func (c Criterion) Threshold(level string) (string, bool) {
	for _, t := range c.Thresholds {
		if t.Level == level {
			return t.Expr, true
		}
	}
	return "", false
}

// DisplayName prefers the label over the criterion key.
func (c Criterion) DisplayName() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name
}

// CategoryTemplate is the static evaluation profile of one exercise category.
type CategoryTemplate struct {
	Category       string      `json:"category"`
	Label          string      `json:"label"`
	KeyJoints      []string    `json:"key_joints"`
	KeyAlignments  []string    `json:"key_alignments"`
	KeyPositions   []string    `json:"key_positions"`
	Phases         []string    `json:"phases"`
	Criteria       []Criterion `json:"criteria"`
	SafetyCritical []string    `json:"safety_critical_criteria"`
	// ROMDependent criteria become informative when an equipment
	// constraint limits the achievable range.
	ROMDependent []string `json:"rom_dependent_criteria"`
}

// Criterion looks a criterion up by name.
func (t *CategoryTemplate) Criterion(name string) (Criterion, bool) {
	for _, c := range t.Criteria {
		if c.Name == name {
			return c, true
		}
	}
	return Criterion{}, false
}

// IsSafetyCritical reports whether the named criterion caps the score.
func (t *CategoryTemplate) IsSafetyCritical(name string) bool {
	return containsString(t.SafetyCritical, name)
}

// IsROMDependent reports whether the named criterion depends on range of motion.
func (t *CategoryTemplate) IsROMDependent(name string) bool {
	return containsString(t.ROMDependent, name)
}

// DisplayLabel prefers the label over the category key.
func (t *CategoryTemplate) DisplayLabel() string {
	if t.Label != "" {
		return t.Label
	}
	return t.Category
}

func (t *CategoryTemplate) clone() *CategoryTemplate {
	out := *t
	out.KeyJoints = append([]string(nil), t.KeyJoints...)
	out.KeyAlignments = append([]string(nil), t.KeyAlignments...)
	out.KeyPositions = append([]string(nil), t.KeyPositions...)
	out.Phases = append([]string(nil), t.Phases...)
	out.SafetyCritical = append([]string(nil), t.SafetyCritical...)
	out.ROMDependent = append([]string(nil), t.ROMDependent...)
	out.Criteria = make([]Criterion, len(t.Criteria))
	for i, c := range t.Criteria {
		c.Thresholds = append([]Threshold(nil), c.Thresholds...)
		c.RAGTopics = append([]string(nil), c.RAGTopics...)
		out.Criteria[i] = c
	}
	return &out
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
