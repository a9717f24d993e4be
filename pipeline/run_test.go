package pipeline

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	formnotes "github.com/lucasjlepore/form-analyzer"
	"github.com/lucasjlepore/form-analyzer/pose"
)

func TestRunWritesCSVSeries(t *testing.T) {
	t.Parallel()

	framesPath := writeFramesJSONL(t, formnotes.SyntheticShallowSquat)
	outDir := filepath.Join(t.TempDir(), "out")
	res, err := Run(context.Background(), Options{
		FramesPath:   framesPath,
		OutDir:       outDir,
		ExerciseName: "agachamento",
		Format:       "csv",
		CopySource:   true,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	f, err := os.Open(res.MetricSeriesPath)
	if err != nil {
		t.Fatalf("open metric series: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read metric series csv: %v", err)
	}
	for i, col := range metricSeriesHeader {
		if rows[0][i] != col {
			t.Fatalf("unexpected header column %d: got %q want %q", i, rows[0][i], col)
		}
	}
	// 30 frames, every squat metric visible in every frame.
	want := 30 * len(pose.MetricsFor(pose.CategorySquat))
	if len(rows)-1 != want {
		t.Fatalf("expected %d series rows, got %d", want, len(rows)-1)
	}

	var structure formnotes.MovementStructure
	data, err := os.ReadFile(res.MovementStructurePath)
	if err != nil {
		t.Fatalf("read movement structure: %v", err)
	}
	if err := json.Unmarshal(data, &structure); err != nil {
		t.Fatalf("unmarshal movement structure: %v", err)
	}
	if len(structure.Blocks) != 3 {
		t.Fatalf("expected 3 movement blocks, got %d", len(structure.Blocks))
	}

	summary, err := os.ReadFile(res.DiagnosticSummaryPath)
	if err != nil {
		t.Fatalf("read diagnostic summary: %v", err)
	}
	if !strings.HasPrefix(string(summary), "Exercise: agachamento") {
		t.Fatalf("unexpected summary: %q", summary)
	}
	if res.OverallScore != 8.9 {
		t.Fatalf("unexpected overall score: %v", res.OverallScore)
	}
	if res.SourceCopyPath == "" {
		t.Fatalf("expected source copy")
	}
}

func TestRunWritesParquetSeries(t *testing.T) {
	t.Parallel()

	outDir := filepath.Join(t.TempDir(), "out")
	res, err := Run(context.Background(), Options{
		FramesPath:   writeFramesJSONL(t, formnotes.SyntheticSquat),
		OutDir:       outDir,
		ExerciseName: "squat",
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if filepath.Ext(res.MetricSeriesPath) != ".parquet" {
		t.Fatalf("default format should be parquet: %s", res.MetricSeriesPath)
	}
	data, err := os.ReadFile(res.MetricSeriesPath)
	if err != nil {
		t.Fatalf("read parquet: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PAR1")) || !bytes.HasSuffix(data, []byte("PAR1")) {
		t.Fatalf("metric series is not a parquet file")
	}
}

func TestRunValidatesOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"no frames path", Options{OutDir: "x"}, "frames path is required"},
		{"no out dir", Options{FramesPath: "x"}, "output directory is required"},
		{"bad format", Options{FramesPath: "x", OutDir: "y", Format: "xml"}, `unsupported format "xml"`},
		{"missing file", Options{FramesPath: filepath.Join(t.TempDir(), "none.json"), OutDir: "y"}, "load frames"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Run(context.Background(), tc.opts)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Run() error = %v, want containing %q", err, tc.want)
			}
		})
	}
}

func TestRunBytesProducesArtifacts(t *testing.T) {
	t.Parallel()

	frames, err := formnotes.SyntheticFrames(30, formnotes.SyntheticValgusSquat)
	if err != nil {
		t.Fatalf("synthetic frames: %v", err)
	}
	data, err := json.Marshal(frames)
	if err != nil {
		t.Fatalf("marshal frames: %v", err)
	}

	res, err := RunBytes(context.Background(), BytesOptions{
		SourceFileName: "upload.json",
		FramesData:     data,
		ExerciseName:   "agachamento livre",
		Constraint:     "smith",
		Format:         "csv",
		CopySource:     true,
	})
	if err != nil {
		t.Fatalf("RunBytes() error: %v", err)
	}

	required := []string{
		"manifest.json",
		"classification.json",
		"frame_metrics.jsonl",
		"prompt_system.txt",
		"prompt_user.md",
		"metric_series.csv",
		"movement_structure.json",
		"diagnostic_summary.txt",
		"source_frames.json",
	}
	for _, name := range required {
		if _, ok := res.Files[name]; !ok {
			t.Fatalf("missing artifact %s", name)
		}
	}
	if !strings.Contains(string(res.Files["prompt_user.md"]), "## CONTEXTO DE EQUIPAMENTO") {
		t.Fatalf("constraint context missing from user prompt")
	}
}

func TestBytesResultArchive(t *testing.T) {
	t.Parallel()

	res := &BytesResult{Files: map[string][]byte{
		"manifest.json":       []byte(`{"format_version":"form_llm_bundle_v1"}`),
		"classification.json": []byte(`{}`),
		"prompt_user.md":      []byte("# Análise\n"),
	}}
	if got := strings.Join(res.FileNames(), ","); got != "classification.json,manifest.json,prompt_user.md" {
		t.Fatalf("FileNames() = %s", got)
	}

	first, err := res.Archive()
	if err != nil {
		t.Fatalf("Archive() error: %v", err)
	}
	second, err := res.Archive()
	if err != nil {
		t.Fatalf("Archive() error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("archive bytes differ between runs")
	}

	zr, err := zip.NewReader(bytes.NewReader(first), int64(len(first)))
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if len(zr.File) != 3 {
		t.Fatalf("archive entries = %d, want 3", len(zr.File))
	}
	for i, f := range zr.File {
		if f.Name != res.FileNames()[i] {
			t.Fatalf("entry %d = %s, want %s", i, f.Name, res.FileNames()[i])
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		var body bytes.Buffer
		if _, err := body.ReadFrom(rc); err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		rc.Close()
		if !bytes.Equal(body.Bytes(), res.Files[f.Name]) {
			t.Fatalf("entry %s content mismatch", f.Name)
		}
	}
}

func TestDecodeFrames(t *testing.T) {
	t.Parallel()

	array := `[{"frame_number":0,"timestamp_ms":0,"landmarks":{"left_hip":{"x":0.5,"y":0.5}}}]`
	frames, err := DecodeFrames([]byte(array))
	if err != nil || len(frames) != 1 {
		t.Fatalf("DecodeFrames(array) = %d frames, %v", len(frames), err)
	}
	if frames[0].Landmarks[pose.LeftHip].X != 0.5 {
		t.Fatalf("landmark not decoded: %+v", frames[0].Landmarks)
	}

	jsonl := "{\"frame_number\":0}\n\n{\"frame_number\":1,\"timestamp_ms\":33.3}\n"
	frames, err = DecodeFrames([]byte(jsonl))
	if err != nil || len(frames) != 2 || frames[1].TimestampMs != 33.3 {
		t.Fatalf("DecodeFrames(jsonl) = %+v, %v", frames, err)
	}

	if _, err := DecodeFrames([]byte("{\"frame_number\":0}\nnot json\n")); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line 2 decode error, got %v", err)
	}
	if _, err := DecodeFrames([]byte("  \n")); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func writeFramesJSONL(t *testing.T, kind string) string {
	t.Helper()

	frames, err := formnotes.SyntheticFrames(30, kind)
	if err != nil {
		t.Fatalf("synthetic frames: %v", err)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, f := range frames {
		if err := enc.Encode(f); err != nil {
			t.Fatalf("encode frame: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "frames.jsonl")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write frames: %v", err)
	}
	return path
}
