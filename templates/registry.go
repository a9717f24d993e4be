package templates

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lucasjlepore/form-analyzer/pose"
)

// DefaultCategory is used for unknown categories and exercise names.
const DefaultCategory = pose.CategorySquat

const maxRegistryFileSize = 1 * 1024 * 1024

// Registry holds validated category templates. It is immutable once built;
// Template returns copies so callers cannot alter shared state.
type Registry struct {
	order     []string
	templates map[string]*CategoryTemplate
}

// Default returns a registry with the built-in templates.
func Default() *Registry {
	r, err := NewRegistry(builtinTemplates()...)
	if err != nil {
		panic(fmt.Sprintf("built-in templates are invalid: %v", err))
	}
	return r
}

// NewRegistry validates and indexes the given templates. A later template
// replaces an earlier one with the same category.
func NewRegistry(tmpls ...*CategoryTemplate) (*Registry, error) {
	r := &Registry{templates: make(map[string]*CategoryTemplate, len(tmpls))}
	for _, t := range tmpls {
		if t == nil {
			continue
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("validate template %q: %w", t.Category, err)
		}
		if _, seen := r.templates[t.Category]; !seen {
			r.order = append(r.order, t.Category)
		}
		r.templates[t.Category] = t.clone()
	}
	if len(r.templates) == 0 {
		return nil, errors.New("registry has no templates")
	}
	return r, nil
}

// Template returns the template for category, falling back to squat when
// the category is unknown.
func (r *Registry) Template(category string) *CategoryTemplate {
	if t, ok := r.templates[category]; ok {
		return t.clone()
	}
	if t, ok := r.templates[DefaultCategory]; ok {
		return t.clone()
	}
	return r.templates[r.order[0]].clone()
}

// Lookup returns the template for category without the squat fallback.
func (r *Registry) Lookup(category string) (*CategoryTemplate, bool) {
	t, ok := r.templates[category]
	if !ok {
		return nil, false
	}
	return t.clone(), true
}

// Categories lists categories in registration order.
func (r *Registry) Categories() []string {
	return append([]string(nil), r.order...)
}

type registryFile struct {
	Templates []*CategoryTemplate `json:"templates"`
}

// LoadRegistryFile reads template overrides from a JSON file and merges them
// over the built-in templates. Whole templates are replaced by category.
func LoadRegistryFile(path string) (*Registry, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("template file must have .json extension, got %q", ext)
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat template file: %w", err)
	}
	if info.Size() > maxRegistryFileSize {
		return nil, fmt.Errorf("template file too large: %d bytes (max %d)", info.Size(), maxRegistryFileSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read template file: %w", err)
	}

	var f registryFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse template file: %w", err)
	}
	all := append(builtinTemplates(), f.Templates...)
	reg, err := NewRegistry(all...)
	if err != nil {
		return nil, fmt.Errorf("load template file: %w", err)
	}
	return reg, nil
}

// Validate checks the template invariants: named category, unique criteria
// with a metric, safety and range-of-motion lists that name real criteria,
// and no two parseable ranges of a criterion sharing more than a boundary.
func (t *CategoryTemplate) Validate() error {
	if t.Category == "" {
		return errors.New("category is required")
	}
	if len(t.Criteria) == 0 {
		return errors.New("at least one criterion is required")
	}
	seen := make(map[string]bool, len(t.Criteria))
	for _, c := range t.Criteria {
		if c.Name == "" {
			return errors.New("criterion name is required")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate criterion %q", c.Name)
		}
		seen[c.Name] = true
		if c.Metric == "" {
			return fmt.Errorf("criterion %q: metric is required", c.Name)
		}
		if err := c.validateRanges(); err != nil {
			return fmt.Errorf("criterion %q: %w", c.Name, err)
		}
	}
	for _, name := range t.SafetyCritical {
		if !seen[name] {
			return fmt.Errorf("safety-critical criterion %q is not defined", name)
		}
	}
	for _, name := range t.ROMDependent {
		if !seen[name] {
			return fmt.Errorf("range-of-motion criterion %q is not defined", name)
		}
	}
	return nil
}

func (c Criterion) validateRanges() error {
	if len(c.Thresholds) == 0 {
		return errors.New("at least one threshold is required")
	}
	type parsed struct {
		level string
		r     Range
	}
	ranges := make([]parsed, 0, len(c.Thresholds))
	levels := make(map[string]bool, len(c.Thresholds))
	for _, th := range c.Thresholds {
		if th.Level == "" {
			return errors.New("threshold level is required")
		}
		if levels[th.Level] {
			return fmt.Errorf("duplicate level %q", th.Level)
		}
		levels[th.Level] = true
		if r, ok := ParseThreshold(th.Expr); ok {
			ranges = append(ranges, parsed{level: th.Level, r: r})
		}
	}
	for i := range ranges {
		for j := i + 1; j < len(ranges); j++ {
			if ranges[i].r.overlapsInterval(ranges[j].r) {
				return fmt.Errorf("levels %q %s and %q %s overlap",
					ranges[i].level, ranges[i].r, ranges[j].level, ranges[j].r)
			}
		}
	}
	return nil
}
