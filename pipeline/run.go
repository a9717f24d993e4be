package pipeline

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	formnotes "github.com/lucasjlepore/form-analyzer"
	"github.com/lucasjlepore/form-analyzer/aggregate"
	"github.com/lucasjlepore/form-analyzer/llmexport"
	"github.com/lucasjlepore/form-analyzer/pose"
)

// Run executes the full form_analyze pipeline and writes all artifacts.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if strings.TrimSpace(opts.FramesPath) == "" {
		return nil, fmt.Errorf("frames path is required")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	format, err := normalizeFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	frames, err := loadFrames(opts.FramesPath)
	if err != nil {
		return nil, fmt.Errorf("load frames: %w", err)
	}

	analysis, err := formnotes.Analyze(ctx, formnotes.Input{
		Frames:       frames,
		ExerciseName: opts.ExerciseName,
		Category:     opts.Category,
		Constraint:   opts.Constraint,
		SourcePath:   opts.FramesPath,
	}, configOrDefault(opts.Config))
	if err != nil {
		return nil, err
	}

	export, err := llmexport.ExportAnalysis(analysis, opts.OutDir, llmexport.ExportOptions{
		Overwrite:      opts.Overwrite,
		CopySourceFile: opts.CopySource,
	})
	if err != nil {
		return nil, err
	}

	samples := buildMetricSamples(analysis.Sequence)
	seriesPath := filepath.Join(opts.OutDir, MetricSeriesBase+"."+format)
	switch format {
	case "csv":
		if err := writeMetricSeriesCSV(seriesPath, samples); err != nil {
			return nil, fmt.Errorf("write metric series csv: %w", err)
		}
	case "parquet":
		if err := writeMetricSeriesParquet(seriesPath, samples); err != nil {
			return nil, fmt.Errorf("write metric series parquet: %w", err)
		}
	}

	structurePath := filepath.Join(opts.OutDir, MovementStructureFile)
	if err := writeJSON(structurePath, analysis.Structure); err != nil {
		return nil, fmt.Errorf("write %s: %w", MovementStructureFile, err)
	}

	summaryPath := filepath.Join(opts.OutDir, DiagnosticSummaryFile)
	if err := os.WriteFile(summaryPath, []byte(analysis.Notes+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", DiagnosticSummaryFile, err)
	}

	return &Result{
		OutputDir:             opts.OutDir,
		ManifestPath:          export.ManifestPath,
		ClassificationPath:    export.ClassificationPath,
		FrameMetricsPath:      export.FrameMetricsPath,
		SystemPromptPath:      export.SystemPromptPath,
		UserPromptPath:        export.UserPromptPath,
		SourceCopyPath:        export.SourceCopyPath,
		MetricSeriesPath:      seriesPath,
		MovementStructurePath: structurePath,
		DiagnosticSummaryPath: summaryPath,
		OverallScore:          export.OverallScore,
		Warnings:              export.Warnings,
	}, nil
}

// RunBytes runs the pipeline without touching the filesystem.
func RunBytes(ctx context.Context, opts BytesOptions) (*BytesResult, error) {
	if len(opts.FramesData) == 0 {
		return nil, fmt.Errorf("frames data is required")
	}
	format, err := normalizeFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	frames, err := DecodeFrames(opts.FramesData)
	if err != nil {
		return nil, fmt.Errorf("decode frames: %w", err)
	}
	analysis, err := formnotes.Analyze(ctx, formnotes.Input{
		Frames:       frames,
		ExerciseName: opts.ExerciseName,
		Category:     opts.Category,
		Constraint:   opts.Constraint,
	}, configOrDefault(opts.Config))
	if err != nil {
		return nil, err
	}

	var source []byte
	if opts.CopySource {
		source = opts.FramesData
	}
	bundle, err := llmexport.BuildBundle(analysis, source, opts.SourceFileName)
	if err != nil {
		return nil, err
	}
	files := bundle.Files

	samples := buildMetricSamples(analysis.Sequence)
	var series []byte
	switch format {
	case "csv":
		series, err = marshalMetricSeriesCSV(samples)
	case "parquet":
		series, err = marshalMetricSeriesParquet(samples)
	}
	if err != nil {
		return nil, fmt.Errorf("marshal metric series %s: %w", format, err)
	}
	files[MetricSeriesBase+"."+format] = series

	structure, err := llmexport.MarshalJSON(analysis.Structure)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", MovementStructureFile, err)
	}
	files[MovementStructureFile] = structure
	files[DiagnosticSummaryFile] = []byte(analysis.Notes + "\n")

	return &BytesResult{
		Files:        files,
		Warnings:     bundle.Warnings,
		OverallScore: analysis.Result.OverallScore,
	}, nil
}

// DecodeFrames accepts either a JSON array of frames or JSONL with one frame
// per line.
func DecodeFrames(data []byte) ([]pose.Frame, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("no frames in input")
	}
	if trimmed[0] == '[' {
		var frames []pose.Frame
		if err := json.Unmarshal(trimmed, &frames); err != nil {
			return nil, fmt.Errorf("decode frame array: %w", err)
		}
		return frames, nil
	}

	var frames []pose.Frame
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var f pose.Frame
		if err := json.Unmarshal(text, &f); err != nil {
			return nil, fmt.Errorf("decode frame line %d: %w", line, err)
		}
		frames = append(frames, f)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return frames, nil
}

func loadFrames(path string) ([]pose.Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeFrames(data)
}

func normalizeFormat(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "parquet"
	}
	if format != "parquet" && format != "csv" {
		return "", fmt.Errorf("unsupported format %q (expected parquet|csv)", format)
	}
	return format, nil
}

func configOrDefault(cfg *formnotes.Config) formnotes.Config {
	if cfg == nil {
		return formnotes.DefaultConfig()
	}
	return *cfg
}

func buildMetricSamples(seq *aggregate.Sequence) []MetricSample {
	if seq == nil {
		return nil
	}
	out := make([]MetricSample, 0, len(seq.Frames)*4)
	for i, f := range seq.Frames {
		for _, m := range f.Metrics {
			out = append(out, MetricSample{
				FrameIndex:  i,
				FrameNumber: f.FrameNumber,
				TimestampMs: f.TimestampMs,
				Metric:      m.Metric,
				Value:       m.Value,
				Unit:        m.Unit,
			})
		}
	}
	return out
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var metricSeriesHeader = []string{"frame_index", "frame_number", "timestamp_ms", "metric", "value", "unit"}

func writeMetricSeriesCSV(path string, samples []MetricSample) error {
	data, err := marshalMetricSeriesCSV(samples)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func marshalMetricSeriesCSV(samples []MetricSample) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(metricSeriesHeader); err != nil {
		return nil, err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.FrameIndex),
			strconv.Itoa(s.FrameNumber),
			formatFloat(s.TimestampMs),
			s.Metric,
			formatFloat(s.Value),
			s.Unit,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
