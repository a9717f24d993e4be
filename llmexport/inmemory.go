package llmexport

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	formnotes "github.com/lucasjlepore/form-analyzer"
	"github.com/lucasjlepore/form-analyzer/aggregate"
	"github.com/lucasjlepore/form-analyzer/classify"
	"github.com/lucasjlepore/form-analyzer/knowledge"
	"github.com/lucasjlepore/form-analyzer/pose"
)

// ClassificationDocument is the content of classification.json.
type ClassificationDocument struct {
	FormatVersion string                      `json:"format_version"`
	AnalysisID    string                      `json:"analysis_id"`
	ExerciseName  string                      `json:"exercise_name"`
	Category      string                      `json:"category"`
	Result        *classify.Result            `json:"result"`
	Metrics       []pose.MetricValue          `json:"sequence_metrics"`
	Summary       *aggregate.Summary          `json:"sequence_summary,omitempty"`
	Structure     formnotes.MovementStructure `json:"movement_structure"`
	Knowledge     []knowledge.Entry           `json:"knowledge,omitempty"`
	Notes         string                      `json:"notes"`
}

// Bundle is an export rendered entirely in memory, keyed by file name.
type Bundle struct {
	Manifest Manifest
	Files    map[string][]byte
	Warnings []string
}

// BuildBundle renders the same files ExportAnalysis writes to disk. source is
// the raw frames input; when non-empty its digest goes into the manifest and
// a copy is included as source_frames.json.
func BuildBundle(a *formnotes.Analysis, source []byte, sourceName string) (*Bundle, error) {
	if a == nil {
		return nil, fmt.Errorf("analysis is required")
	}

	classification, err := MarshalJSON(BuildClassificationDocument(a))
	if err != nil {
		return nil, fmt.Errorf("marshal classification: %w", err)
	}
	frames, err := MarshalFrameMetricsJSONL(BuildFrameRecords(a.Sequence))
	if err != nil {
		return nil, fmt.Errorf("marshal frame metrics: %w", err)
	}

	files := map[string][]byte{
		ClassificationFile: classification,
		FrameMetricsFile:   frames,
		SystemPromptFile:   []byte(a.Prompt.SystemPrompt),
		UserPromptFile:     []byte(a.Prompt.UserPrompt),
	}

	manifest := buildManifest(a)
	if len(source) > 0 {
		sum := sha256.Sum256(source)
		manifest.SourceFileName = filepath.Base(sourceName)
		manifest.SourceSHA256 = hex.EncodeToString(sum[:])
		manifest.SourceSizeBytes = int64(len(source))
		manifest.Files.SourceCopy = SourceCopyFile
		files[SourceCopyFile] = append([]byte(nil), source...)
	}
	manifestData, err := MarshalJSON(manifest)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	files[ManifestFile] = manifestData

	return &Bundle{
		Manifest: manifest,
		Files:    files,
		Warnings: manifest.Warnings,
	}, nil
}

// BuildClassificationDocument collects the classification and the sequence
// context it was computed from.
func BuildClassificationDocument(a *formnotes.Analysis) ClassificationDocument {
	doc := ClassificationDocument{
		FormatVersion: ExportFormatVersion,
		AnalysisID:    a.ID,
		ExerciseName:  a.ExerciseName,
		Category:      a.Category,
		Result:        a.Result,
		Structure:     a.Structure,
		Knowledge:     a.Knowledge,
		Notes:         a.Notes,
	}
	if a.Sequence != nil {
		doc.Metrics = a.Sequence.Metrics
		doc.Summary = &a.Sequence.Summary
	}
	return doc
}

// BuildFrameRecords produces one record per processed frame, listing the
// category metrics the frame could not provide.
func BuildFrameRecords(seq *aggregate.Sequence) []FrameRecord {
	if seq == nil {
		return nil
	}
	expected := pose.MetricsFor(seq.Category)
	out := make([]FrameRecord, 0, len(seq.Frames))
	for i, f := range seq.Frames {
		rec := FrameRecord{
			FormatVersion: ExportFormatVersion,
			FrameIndex:    i,
			FrameNumber:   f.FrameNumber,
			TimestampMs:   f.TimestampMs,
			Metrics:       f.Metrics,
		}
		if rec.Metrics == nil {
			rec.Metrics = []pose.MetricValue{}
		}
		for _, m := range expected {
			if _, ok := f.Lookup(m); !ok {
				rec.MissingMetrics = append(rec.MissingMetrics, m)
			}
		}
		out = append(out, rec)
	}
	return out
}

// MarshalJSON renders indented JSON with deterministic key order.
func MarshalJSON(v any) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	out = append(out, '\n')
	return out, nil
}

// MarshalFrameMetricsJSONL renders frame records as JSONL bytes.
func MarshalFrameMetricsJSONL(records []FrameRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := bufio.NewWriterSize(&buf, 1<<20)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return nil, err
		}
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildWarnings returns deterministic data-quality notes for an analysis.
func BuildWarnings(a *formnotes.Analysis) []string {
	if a == nil {
		return nil
	}
	warnings := make([]string, 0, 4)
	if !a.CategoryMatched {
		warnings = append(warnings, fmt.Sprintf("exercise %q not recognized; evaluated as %s", a.ExerciseName, a.Category))
	}

	if seq := a.Sequence; seq != nil {
		if !seq.Summary.Phases.Determined() {
			warnings = append(warnings, "movement phases not determined; tempo unavailable")
		}
		missing := make(map[string]int)
		for _, rec := range BuildFrameRecords(seq) {
			for _, m := range rec.MissingMetrics {
				missing[m]++
			}
		}
		for _, m := range pose.MetricsFor(seq.Category) {
			if n := missing[m]; n > 0 {
				warnings = append(warnings, fmt.Sprintf("%s missing in %d of %d frames (landmarks absent or below visibility)", m, n, seq.TotalFrames))
			}
		}
	}

	if a.Template != nil && a.Result != nil {
		done := make(map[string]struct{}, len(a.Result.Classifications))
		for _, c := range a.Result.Classifications {
			done[c.Criterion] = struct{}{}
		}
		for _, c := range a.Template.Criteria {
			if _, ok := done[c.Name]; ok {
				continue
			}
			if !pose.Known(c.Metric) {
				warnings = append(warnings, fmt.Sprintf("criterion %s not evaluated: metric %s is not measured from landmarks", c.Name, c.Metric))
				continue
			}
			warnings = append(warnings, fmt.Sprintf("criterion %s not evaluated: metric %s unavailable", c.Name, c.Metric))
		}
	}

	for i, w := range warnings {
		warnings[i] = strings.TrimSpace(w)
	}
	return dedupeStrings(warnings)
}

func buildManifest(a *formnotes.Analysis) Manifest {
	m := Manifest{
		FormatVersion:   ExportFormatVersion,
		GeneratedAt:     a.GeneratedAt,
		AnalysisID:      a.ID,
		SourceFile:      a.SourcePath,
		ExerciseName:    a.ExerciseName,
		Category:        a.Category,
		CategoryMatched: a.CategoryMatched,
		KnowledgeCount:  len(a.Knowledge),
		Files: ManifestFiles{
			Classification: ClassificationFile,
			FrameMetrics:   FrameMetricsFile,
			SystemPrompt:   SystemPromptFile,
			UserPrompt:     UserPromptFile,
		},
		Warnings: BuildWarnings(a),
		SchemaDescription: SchemaDetails{
			RecordType: "JSONL line-per-frame of per-frame metrics in input order",
			Notes: []string{
				"classification.json holds the scored criteria and the sequence metrics they were read from.",
				"Frames whose landmarks were missing or below the visibility gate list the absent metrics in missing_metrics.",
				"prompt_system.txt and prompt_user.md are the exact prompt pair for the report model.",
				"Scores are computed before any model call; the model must not recompute them.",
			},
		},
	}
	if a.Constraint.Active() {
		m.Constraint = string(a.Constraint)
	}
	if a.SourcePath != "" {
		m.SourceFileName = filepath.Base(a.SourcePath)
	}
	if seq := a.Sequence; seq != nil {
		m.FrameCount = seq.TotalFrames
		m.MetricCount = len(seq.Metrics)
	}
	if r := a.Result; r != nil {
		m.CriteriaCount = len(r.Classifications)
		m.DangerCount = r.Summary.Danger
		m.WarningCount = r.Summary.Warning
		m.OverallScore = r.OverallScore
	}
	return m
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
