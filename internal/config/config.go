package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the process-wide configuration shared by the CLIs.
type Config struct {
	LogLevel    string            `mapstructure:"log_level"`
	Analysis    AnalysisConfig    `mapstructure:"analysis"`
	Calibration CalibrationConfig `mapstructure:"calibration"`
	Templates   TemplatesConfig   `mapstructure:"templates"`
	Knowledge   KnowledgeConfig   `mapstructure:"knowledge"`
	Export      ExportConfig      `mapstructure:"export"`
}

// AnalysisConfig tunes sequence processing.
type AnalysisConfig struct {
	FPS              float64 `mapstructure:"fps"`
	MinVisibility    float64 `mapstructure:"min_visibility"`
	Workers          int     `mapstructure:"workers"`
	IncludeKnowledge bool    `mapstructure:"include_knowledge"`
	MinimalPrompt    bool    `mapstructure:"minimal_prompt"`
}

// CalibrationConfig is the pixel-to-centimeter heuristic.
type CalibrationConfig struct {
	FrameWidthPx  float64 `mapstructure:"frame_width_px"`
	FrameHeightPx float64 `mapstructure:"frame_height_px"`
	CmPerPixel    float64 `mapstructure:"cm_per_pixel"`
}

// TemplatesConfig points at an optional JSON file of template overrides.
type TemplatesConfig struct {
	File string `mapstructure:"file"`
}

// KnowledgeTopic is a custom knowledge-base entry.
type KnowledgeTopic struct {
	Topic   string `mapstructure:"topic"`
	Content string `mapstructure:"content"`
	Source  string `mapstructure:"source"`
}

// KnowledgeConfig adds custom topics on top of the built-in table.
type KnowledgeConfig struct {
	Topics []KnowledgeTopic `mapstructure:"topics"`
}

// ExportConfig controls the artifacts a pipeline run writes.
type ExportConfig struct {
	OutDir       string `mapstructure:"out_dir"`
	CopySource   bool   `mapstructure:"copy_source"`
	SeriesFormat string `mapstructure:"series_format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("analysis.fps", 30.0)
	v.SetDefault("analysis.min_visibility", 0.5)
	v.SetDefault("analysis.workers", 0)
	v.SetDefault("analysis.include_knowledge", true)
	v.SetDefault("analysis.minimal_prompt", false)
	v.SetDefault("calibration.frame_width_px", 640.0)
	v.SetDefault("calibration.frame_height_px", 480.0)
	v.SetDefault("calibration.cm_per_pixel", 50.0/640.0)
	v.SetDefault("templates.file", "")
	v.SetDefault("export.out_dir", "")
	v.SetDefault("export.copy_source", true)
	v.SetDefault("export.series_format", "parquet")
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: defaults invalid: %v", err))
	}
	return cfg
}

// Load reads a settings file, applies FORM_* environment overrides and fills
// defaults. The format follows the file extension (yaml, json, toml, ...);
// a path without one is read as YAML. An empty path skips the file.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("FORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if filepath.Ext(configPath) == "" {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}
	if c.Analysis.FPS < 0 {
		return fmt.Errorf("analysis.fps must be >= 0")
	}
	if c.Analysis.MinVisibility < 0 || c.Analysis.MinVisibility >= 1 {
		return fmt.Errorf("analysis.min_visibility must be in [0,1)")
	}
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers must be >= 0")
	}
	if c.Calibration.FrameWidthPx < 0 || c.Calibration.FrameHeightPx < 0 || c.Calibration.CmPerPixel < 0 {
		return fmt.Errorf("calibration values must be >= 0")
	}
	for i, t := range c.Knowledge.Topics {
		if strings.TrimSpace(t.Topic) == "" || strings.TrimSpace(t.Content) == "" {
			return fmt.Errorf("knowledge.topics[%d] needs topic and content", i)
		}
	}
	switch c.Export.SeriesFormat {
	case "parquet", "csv":
	default:
		return fmt.Errorf("export.series_format must be parquet or csv (got %q)", c.Export.SeriesFormat)
	}
	return nil
}
