package formnotes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lucasjlepore/form-analyzer/aggregate"
	"github.com/lucasjlepore/form-analyzer/classify"
	"github.com/lucasjlepore/form-analyzer/internal/logging"
	"github.com/lucasjlepore/form-analyzer/knowledge"
	"github.com/lucasjlepore/form-analyzer/pose"
	"github.com/lucasjlepore/form-analyzer/prompt"
	"github.com/lucasjlepore/form-analyzer/templates"
)

// Config controls sequence processing and which tables the analysis reads.
// Nil tables fall back to the built-in ones.
type Config struct {
	FPS              float64
	Calibration      pose.Calibration
	MinVisibility    float64
	Workers          int
	IncludeKnowledge bool
	MinimalPrompt    bool
	Registry         *templates.Registry
	Knowledge        *knowledge.Table
	Logger           logging.Logger
	// Now stamps GeneratedAt; nil uses time.Now.
	Now func() time.Time
}

// DefaultConfig returns the built-in tables with knowledge retrieval on.
func DefaultConfig() Config {
	return Config{
		FPS:              aggregate.DefaultFPS,
		Calibration:      pose.DefaultCalibration(),
		MinVisibility:    pose.DefaultMinVisibility,
		IncludeKnowledge: true,
	}
}

// Input is one recorded repetition and what the athlete says about it.
type Input struct {
	Frames       []pose.Frame
	ExerciseName string
	// Category overrides the exercise-name lookup when it names a template.
	Category string
	// Constraint is free text such as "barras de segurança" or a tag.
	Constraint string
	Video      prompt.Video
	SourcePath string
}

// Analysis is the complete result of one movement analysis.
type Analysis struct {
	ID              string                      `json:"analysis_id"`
	GeneratedAt     time.Time                   `json:"generated_at"`
	SourcePath      string                      `json:"source_path,omitempty"`
	ExerciseName    string                      `json:"exercise_name"`
	Category        string                      `json:"category"`
	CategoryMatched bool                        `json:"category_matched"`
	Constraint      templates.Constraint        `json:"constraint"`
	Template        *templates.CategoryTemplate `json:"-"`
	Sequence        *aggregate.Sequence         `json:"sequence"`
	Result          *classify.Result            `json:"result"`
	Knowledge       []knowledge.Entry           `json:"knowledge,omitempty"`
	Structure       MovementStructure           `json:"movement_structure"`
	Prompt          prompt.BuiltPrompt          `json:"prompt"`
	Notes           string                      `json:"notes"`
}

type prepared struct {
	category string
	matched  bool
	tmpl     *templates.CategoryTemplate
	seq      *aggregate.Sequence
	result   *classify.Result
}

// Analyze runs frames through extraction, aggregation, classification,
// knowledge retrieval and prompt assembly.
func Analyze(ctx context.Context, in Input, cfg Config) (*Analysis, error) {
	a := &Analysis{
		ID:           uuid.NewString(),
		GeneratedAt:  now(cfg),
		SourcePath:   in.SourcePath,
		ExerciseName: strings.TrimSpace(in.ExerciseName),
		Constraint:   templates.ParseConstraint(in.Constraint),
	}
	ctx = logging.WithAnalysisID(ctx, a.ID)

	p, err := prepare(ctx, in, cfg)
	if err != nil {
		return nil, fmt.Errorf("analyze movement: %w", err)
	}
	a.Category, a.CategoryMatched = p.category, p.matched
	a.Template, a.Sequence, a.Result = p.tmpl, p.seq, p.result
	ctx = logging.WithExercise(ctx, a.ExerciseName, a.Category)

	if cfg.IncludeKnowledge {
		a.Knowledge = knowledgeTable(cfg).Retrieve(a.Result)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyze movement: %w", err)
	}

	a.Structure = InferMovementStructure(a.Sequence)
	if cfg.MinimalPrompt {
		a.Prompt = prompt.BuildMinimal(a.Result, a.Template, a.ExerciseName)
	} else {
		a.Prompt = prompt.Build(prompt.Input{
			Result:       a.Result,
			Template:     a.Template,
			ExerciseName: a.ExerciseName,
			Knowledge:    a.Knowledge,
			Constraint:   a.Constraint,
			Video:        videoFor(in.Video, a.Sequence),
			AnalyzedAt:   a.GeneratedAt,
		})
	}
	a.Notes = BuildDiagnosticSummary(a)

	logger(cfg).Infof(ctx, "analysis complete: %d criteria, score %.1f, %d knowledge entries",
		len(a.Result.Classifications), a.Result.OverallScore, len(a.Knowledge))
	return a, nil
}

// ClassifyOnly stops after classification.
func ClassifyOnly(ctx context.Context, in Input, cfg Config) (*classify.Result, error) {
	p, err := prepare(ctx, in, cfg)
	if err != nil {
		return nil, fmt.Errorf("classify movement: %w", err)
	}
	return p.result, nil
}

func prepare(ctx context.Context, in Input, cfg Config) (*prepared, error) {
	if len(in.Frames) == 0 {
		return nil, fmt.Errorf("no frames in input")
	}
	exercise := strings.TrimSpace(in.ExerciseName)
	if exercise == "" {
		return nil, fmt.Errorf("exercise name is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reg := cfg.Registry
	if reg == nil {
		reg = templates.Default()
	}
	category, matched := resolveCategory(reg, in.Category, exercise)
	if !matched {
		logger(cfg).Warnf(ctx, "exercise %q has no known category; using %s", exercise, category)
	}
	tmpl := reg.Template(category)

	proc := pose.NewProcessor(cfg.Calibration)
	if cfg.MinVisibility > 0 {
		proc.MinVisibility = cfg.MinVisibility
	}
	agg := aggregate.New(proc, cfg.FPS)
	agg.Workers = cfg.Workers

	seq, err := agg.Run(in.Frames, tmpl.Category)
	if err != nil {
		return nil, fmt.Errorf("aggregate frames: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger(cfg).Debugf(ctx, "aggregated %d frames into %d metrics", seq.TotalFrames, len(seq.Metrics))

	result := classify.Classify(seq.Metrics, tmpl, exercise, templates.ParseConstraint(in.Constraint))
	return &prepared{
		category: tmpl.Category,
		matched:  matched,
		tmpl:     tmpl,
		seq:      seq,
		result:   result,
	}, nil
}

// resolveCategory prefers an explicit category the registry knows, then the
// exercise-name table, then the default category.
func resolveCategory(reg *templates.Registry, category, exercise string) (string, bool) {
	if c := strings.ToLower(strings.TrimSpace(category)); c != "" {
		if _, ok := reg.Lookup(c); ok {
			return c, true
		}
	}
	if c, ok := templates.LookupExerciseCategory(exercise); ok {
		if _, known := reg.Lookup(c); known {
			return c, true
		}
	}
	return templates.DefaultCategory, false
}

func videoFor(v prompt.Video, seq *aggregate.Sequence) prompt.Video {
	if v.FrameCount == 0 {
		v.FrameCount = seq.TotalFrames
	}
	if v.FPS == 0 {
		v.FPS = seq.FPS
	}
	if v.DurationSeconds == 0 {
		v.DurationSeconds = seq.DurationSeconds
	}
	return v
}

func knowledgeTable(cfg Config) *knowledge.Table {
	if cfg.Knowledge != nil {
		return cfg.Knowledge
	}
	return knowledge.DefaultTable()
}

func logger(cfg Config) logging.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return logging.Nop()
}

func now(cfg Config) time.Time {
	if cfg.Now != nil {
		return cfg.Now().UTC()
	}
	return time.Now().UTC()
}
