package formnotes

import (
	"fmt"

	"github.com/lucasjlepore/form-analyzer/internal/config"
	"github.com/lucasjlepore/form-analyzer/internal/logging"
	"github.com/lucasjlepore/form-analyzer/knowledge"
	"github.com/lucasjlepore/form-analyzer/pose"
	"github.com/lucasjlepore/form-analyzer/templates"
)

// ConfigFromSettings turns loaded settings into an analysis Config, reading
// the template override file and adding custom knowledge topics.
func ConfigFromSettings(s *config.Config, log logging.Logger) (Config, error) {
	if s == nil {
		s = config.Default()
	}
	if err := s.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate settings: %w", err)
	}

	cfg := Config{
		FPS: s.Analysis.FPS,
		Calibration: pose.Calibration{
			FrameWidthPx:  s.Calibration.FrameWidthPx,
			FrameHeightPx: s.Calibration.FrameHeightPx,
			CmPerPixel:    s.Calibration.CmPerPixel,
		},
		MinVisibility:    s.Analysis.MinVisibility,
		Workers:          s.Analysis.Workers,
		IncludeKnowledge: s.Analysis.IncludeKnowledge,
		MinimalPrompt:    s.Analysis.MinimalPrompt,
		Logger:           log,
	}

	if s.Templates.File != "" {
		reg, err := templates.LoadRegistryFile(s.Templates.File)
		if err != nil {
			return Config{}, fmt.Errorf("load templates: %w", err)
		}
		cfg.Registry = reg
	}
	if len(s.Knowledge.Topics) > 0 {
		table := knowledge.DefaultTable()
		for _, t := range s.Knowledge.Topics {
			table = table.WithTopic(t.Topic, t.Content, t.Source)
		}
		cfg.Knowledge = table
	}
	return cfg, nil
}
