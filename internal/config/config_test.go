package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30.0, cfg.Analysis.FPS)
	assert.Equal(t, 0.5, cfg.Analysis.MinVisibility)
	assert.True(t, cfg.Analysis.IncludeKnowledge)
	assert.Equal(t, 640.0, cfg.Calibration.FrameWidthPx)
	assert.InDelta(t, 0.078125, cfg.Calibration.CmPerPixel, 1e-9)
	assert.Equal(t, "parquet", cfg.Export.SeriesFormat)
	assert.True(t, cfg.Export.CopySource)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, "form.yaml", `
log_level: debug
analysis:
  fps: 60
  workers: 2
  minimal_prompt: true
templates:
  file: overrides.json
knowledge:
  topics:
    - topic: mobilidade tornozelo
      content: Dorsiflexão limitada
export:
  series_format: csv
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 60.0, cfg.Analysis.FPS)
	assert.Equal(t, 2, cfg.Analysis.Workers)
	assert.True(t, cfg.Analysis.MinimalPrompt)
	assert.Equal(t, 0.5, cfg.Analysis.MinVisibility, "unset keys keep defaults")
	assert.Equal(t, "overrides.json", cfg.Templates.File)
	require.Len(t, cfg.Knowledge.Topics, 1)
	assert.Equal(t, "mobilidade tornozelo", cfg.Knowledge.Topics[0].Topic)
	assert.Equal(t, "csv", cfg.Export.SeriesFormat)
}

func TestLoadFormatFollowsExtension(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"form.json", `{"log_level": "error", "analysis": {"fps": 25}, "export": {"series_format": "csv"}}`},
		{"form.toml", "log_level = \"error\"\n\n[analysis]\nfps = 25\n\n[export]\nseries_format = \"csv\"\n"},
		{"formrc", "log_level: error\nanalysis:\n  fps: 25\nexport:\n  series_format: csv\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tc.name, tc.body))
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())

			assert.Equal(t, "error", cfg.LogLevel)
			assert.Equal(t, 25.0, cfg.Analysis.FPS)
			assert.Equal(t, "csv", cfg.Export.SeriesFormat)
			assert.Equal(t, 0.5, cfg.Analysis.MinVisibility)
		})
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("FORM_ANALYSIS_FPS", "24")
	t.Setenv("FORM_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 24.0, cfg.Analysis.FPS)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config failed")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"fps", func(c *Config) { c.Analysis.FPS = -1 }, "analysis.fps"},
		{"visibility", func(c *Config) { c.Analysis.MinVisibility = 1 }, "min_visibility"},
		{"workers", func(c *Config) { c.Analysis.Workers = -2 }, "workers"},
		{"calibration", func(c *Config) { c.Calibration.CmPerPixel = -0.1 }, "calibration"},
		{"topic", func(c *Config) { c.Knowledge.Topics = []KnowledgeTopic{{Topic: "x"}} }, "knowledge.topics[0]"},
		{"series", func(c *Config) { c.Export.SeriesFormat = "xlsx" }, "series_format"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
