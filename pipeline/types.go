package pipeline

import (
	formnotes "github.com/lucasjlepore/form-analyzer"
)

// Artifact names written next to the LLM bundle.
const (
	MetricSeriesBase      = "metric_series"
	MovementStructureFile = "movement_structure.json"
	DiagnosticSummaryFile = "diagnostic_summary.txt"
)

// Options configures the form_analyze pipeline.
type Options struct {
	FramesPath   string
	OutDir       string
	ExerciseName string
	Category     string
	Constraint   string
	Format       string // parquet|csv
	Overwrite    bool
	CopySource   bool
	// Config is the analysis configuration; nil uses formnotes.DefaultConfig.
	Config *formnotes.Config
}

// Result returns generated output paths.
type Result struct {
	OutputDir             string   `json:"output_dir"`
	ManifestPath          string   `json:"manifest_path"`
	ClassificationPath    string   `json:"classification_path"`
	FrameMetricsPath      string   `json:"frame_metrics_path"`
	SystemPromptPath      string   `json:"system_prompt_path"`
	UserPromptPath        string   `json:"user_prompt_path"`
	SourceCopyPath        string   `json:"source_copy_path,omitempty"`
	MetricSeriesPath      string   `json:"metric_series_path"`
	MovementStructurePath string   `json:"movement_structure_path"`
	DiagnosticSummaryPath string   `json:"diagnostic_summary_path"`
	OverallScore          float64  `json:"overall_score"`
	Warnings              []string `json:"warnings,omitempty"`
}

// BytesOptions configures RunBytes.
type BytesOptions struct {
	SourceFileName string
	FramesData     []byte
	ExerciseName   string
	Category       string
	Constraint     string
	Format         string // parquet|csv
	CopySource     bool
	Config         *formnotes.Config
}

// BytesResult holds every artifact keyed by file name.
type BytesResult struct {
	Files        map[string][]byte
	Warnings     []string
	OverallScore float64
}

// MetricSample is one row of the long-format metric series: a single metric
// value read from a single frame.
type MetricSample struct {
	FrameIndex  int     `json:"frame_index"`
	FrameNumber int     `json:"frame_number"`
	TimestampMs float64 `json:"timestamp_ms"`
	Metric      string  `json:"metric"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit,omitempty"`
}
