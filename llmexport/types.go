package llmexport

import (
	"time"

	"github.com/lucasjlepore/form-analyzer/pose"
)

const (
	// ExportFormatVersion identifies the on-disk schema for LLM exports.
	ExportFormatVersion = "form_llm_bundle_v1"
)

// Bundle file names, relative to the output directory.
const (
	ManifestFile       = "manifest.json"
	ClassificationFile = "classification.json"
	FrameMetricsFile   = "frame_metrics.jsonl"
	SystemPromptFile   = "prompt_system.txt"
	UserPromptFile     = "prompt_user.md"
	SourceCopyFile     = "source_frames.json"
)

// ExportOptions controls export behavior.
type ExportOptions struct {
	// Overwrite allows writing into a non-empty output directory.
	Overwrite bool

	// CopySourceFile writes a byte-for-byte copy of the source frames file to the output directory.
	CopySourceFile bool
}

// ExportResult describes generated files.
type ExportResult struct {
	OutputDir          string   `json:"output_dir"`
	ManifestPath       string   `json:"manifest_path"`
	ClassificationPath string   `json:"classification_path"`
	FrameMetricsPath   string   `json:"frame_metrics_path"`
	SystemPromptPath   string   `json:"system_prompt_path"`
	UserPromptPath     string   `json:"user_prompt_path"`
	SourceCopyPath     string   `json:"source_copy_path,omitempty"`
	FrameCount         int      `json:"frame_count"`
	CriteriaCount      int      `json:"criteria_count"`
	OverallScore       float64  `json:"overall_score"`
	SourceSHA256       string   `json:"source_sha256,omitempty"`
	SourceSizeBytes    int64    `json:"source_size_bytes,omitempty"`
	Warnings           []string `json:"warnings,omitempty"`
}

// Manifest captures export metadata and pointers to exported files.
type Manifest struct {
	FormatVersion     string        `json:"format_version"`
	GeneratedAt       time.Time     `json:"generated_at"`
	AnalysisID        string        `json:"analysis_id"`
	SourceFile        string        `json:"source_file,omitempty"`
	SourceFileName    string        `json:"source_file_name,omitempty"`
	SourceSHA256      string        `json:"source_sha256,omitempty"`
	SourceSizeBytes   int64         `json:"source_size_bytes,omitempty"`
	ExerciseName      string        `json:"exercise_name"`
	Category          string        `json:"category"`
	CategoryMatched   bool          `json:"category_matched"`
	Constraint        string        `json:"constraint,omitempty"`
	FrameCount        int           `json:"frame_count"`
	MetricCount       int           `json:"metric_count"`
	CriteriaCount     int           `json:"criteria_count"`
	DangerCount       int           `json:"danger_count"`
	WarningCount      int           `json:"warning_count"`
	KnowledgeCount    int           `json:"knowledge_count"`
	OverallScore      float64       `json:"overall_score"`
	Files             ManifestFiles `json:"files"`
	Warnings          []string      `json:"warnings,omitempty"`
	SchemaDescription SchemaDetails `json:"schema_description"`
}

// ManifestFiles lists bundle members by role.
type ManifestFiles struct {
	Classification string `json:"classification"`
	FrameMetrics   string `json:"frame_metrics"`
	SystemPrompt   string `json:"prompt_system"`
	UserPrompt     string `json:"prompt_user"`
	SourceCopy     string `json:"source_copy,omitempty"`
}

// SchemaDetails documents the record shape for downstream applications.
type SchemaDetails struct {
	RecordType string   `json:"record_type"`
	Notes      []string `json:"notes"`
}

// FrameRecord is one JSONL line in frame_metrics.jsonl.
// The stream preserves input frame order.
type FrameRecord struct {
	FormatVersion  string             `json:"format_version"`
	FrameIndex     int                `json:"frame_index"`
	FrameNumber    int                `json:"frame_number"`
	TimestampMs    float64            `json:"timestamp_ms"`
	Metrics        []pose.MetricValue `json:"metrics"`
	MissingMetrics []string           `json:"missing_metrics,omitempty"`
}
