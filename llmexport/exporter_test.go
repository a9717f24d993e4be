package llmexport

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	formnotes "github.com/lucasjlepore/form-analyzer"
	"github.com/lucasjlepore/form-analyzer/pose"
)

func TestExportAnalysisWritesBundle(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	sourcePath := filepath.Join(tmp, "frames.json")
	frames := buildTestFrames(t)
	data, err := json.Marshal(frames)
	if err != nil {
		t.Fatalf("marshal frames: %v", err)
	}
	if err := os.WriteFile(sourcePath, data, 0o644); err != nil {
		t.Fatalf("write frames: %v", err)
	}

	a := analyze(t, frames, sourcePath)
	outDir := filepath.Join(tmp, "out")
	result, err := ExportAnalysis(a, outDir, ExportOptions{CopySourceFile: true})
	if err != nil {
		t.Fatalf("ExportAnalysis() error: %v", err)
	}

	if result.FrameCount != len(frames) {
		t.Fatalf("unexpected frame count: %d", result.FrameCount)
	}
	if result.SourceSizeBytes != int64(len(data)) {
		t.Fatalf("unexpected source size: %d", result.SourceSizeBytes)
	}
	if result.SourceCopyPath == "" {
		t.Fatalf("expected source copy path")
	}
	copied, err := os.ReadFile(result.SourceCopyPath)
	if err != nil {
		t.Fatalf("read source copy: %v", err)
	}
	if string(copied) != string(data) {
		t.Fatalf("source copy differs from input")
	}

	manifestData, err := os.ReadFile(result.ManifestPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var manifest Manifest
	if err := json.Unmarshal(manifestData, &manifest); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}
	if manifest.FormatVersion != ExportFormatVersion {
		t.Fatalf("unexpected format version: %q", manifest.FormatVersion)
	}
	if manifest.AnalysisID != a.ID {
		t.Fatalf("manifest analysis id mismatch: %q != %q", manifest.AnalysisID, a.ID)
	}
	if manifest.SourceSHA256 != result.SourceSHA256 || len(manifest.SourceSHA256) != 64 {
		t.Fatalf("unexpected source sha: %q", manifest.SourceSHA256)
	}
	if manifest.Files.SourceCopy != SourceCopyFile {
		t.Fatalf("manifest does not list source copy: %+v", manifest.Files)
	}
	if manifest.CriteriaCount != len(a.Result.Classifications) {
		t.Fatalf("manifest criteria count mismatch: %d", manifest.CriteriaCount)
	}

	framesData, err := os.ReadFile(result.FrameMetricsPath)
	if err != nil {
		t.Fatalf("read frame metrics: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(framesData)), "\n")
	if len(lines) != result.FrameCount {
		t.Fatalf("frame metrics line count mismatch: %d != %d", len(lines), result.FrameCount)
	}
	var first FrameRecord
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("unmarshal frame record: %v", err)
	}
	if first.FrameIndex != 0 || len(first.Metrics) == 0 {
		t.Fatalf("unexpected first frame record: %+v", first)
	}

	userPrompt, err := os.ReadFile(result.UserPromptPath)
	if err != nil {
		t.Fatalf("read user prompt: %v", err)
	}
	if string(userPrompt) != a.Prompt.UserPrompt {
		t.Fatalf("user prompt file differs from analysis prompt")
	}
}

func TestExportAnalysisRefusesNonEmptyDir(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(outDir, "keep.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("seed output dir: %v", err)
	}
	a := analyze(t, buildTestFrames(t), "")

	if _, err := ExportAnalysis(a, outDir, ExportOptions{}); err == nil {
		t.Fatalf("expected error for non-empty output dir")
	}
	result, err := ExportAnalysis(a, outDir, ExportOptions{Overwrite: true, CopySourceFile: true})
	if err != nil {
		t.Fatalf("ExportAnalysis(overwrite) error: %v", err)
	}
	if result.SourceCopyPath != "" {
		t.Fatalf("no source path, expected no copy, got %q", result.SourceCopyPath)
	}
}

func TestBuildBundleMatchesDiskLayout(t *testing.T) {
	t.Parallel()

	a := analyze(t, buildTestFrames(t), "")
	bundle, err := BuildBundle(a, []byte(`[]`), "upload/frames.json")
	if err != nil {
		t.Fatalf("BuildBundle() error: %v", err)
	}
	for _, name := range []string{ManifestFile, ClassificationFile, FrameMetricsFile, SystemPromptFile, UserPromptFile, SourceCopyFile} {
		if len(bundle.Files[name]) == 0 {
			t.Fatalf("bundle missing %s", name)
		}
	}
	if bundle.Manifest.SourceFileName != "frames.json" {
		t.Fatalf("unexpected source file name: %q", bundle.Manifest.SourceFileName)
	}

	var doc ClassificationDocument
	if err := json.Unmarshal(bundle.Files[ClassificationFile], &doc); err != nil {
		t.Fatalf("unmarshal classification: %v", err)
	}
	if doc.Result == nil || doc.Result.OverallScore != a.Result.OverallScore {
		t.Fatalf("classification document lost the result: %+v", doc.Result)
	}
	if doc.Structure.CanonicalLabel != a.Structure.CanonicalLabel {
		t.Fatalf("structure mismatch: %q", doc.Structure.CanonicalLabel)
	}

	if _, err := BuildBundle(nil, nil, ""); err == nil {
		t.Fatalf("expected error for nil analysis")
	}
}

func TestBuildWarningsReportsLowVisibilityFrames(t *testing.T) {
	t.Parallel()

	frames := buildTestFrames(t)
	for _, i := range []int{3, 4} {
		knee := frames[i].Landmarks[pose.LeftKnee]
		frames[i].Landmarks[pose.LeftKnee] = pose.PointWithVisibility(knee.X, knee.Y, 0.1)
	}
	a, err := formnotes.Analyze(context.Background(), formnotes.Input{
		Frames:       frames,
		ExerciseName: "unknown drill",
	}, testConfig())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	warnings := BuildWarnings(a)
	want := fmt.Sprintf("%s missing in 2 of %d frames", pose.MetricHipAngleLeft, len(frames))
	if !containsPrefix(warnings, want) {
		t.Fatalf("missing %q in warnings: %v", want, warnings)
	}
	if !containsPrefix(warnings, `exercise "unknown drill" not recognized`) {
		t.Fatalf("missing category warning: %v", warnings)
	}

	records := BuildFrameRecords(a.Sequence)
	if len(records[3].MissingMetrics) == 0 || len(records[0].MissingMetrics) != 0 {
		t.Fatalf("unexpected missing metrics: frame0=%v frame3=%v", records[0].MissingMetrics, records[3].MissingMetrics)
	}
}

func TestBuildWarningsNamesUnmeasuredCriteria(t *testing.T) {
	t.Parallel()

	a, err := formnotes.Analyze(context.Background(), formnotes.Input{
		Frames:       buildTestFrames(t),
		ExerciseName: "deadlift_conventional",
	}, testConfig())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	warnings := BuildWarnings(a)
	if !containsPrefix(warnings, "criterion bar_path not evaluated: metric horizontal_bar_deviation_cm is not measured from landmarks") {
		t.Fatalf("missing unmeasured criterion warning: %v", warnings)
	}
	if containsPrefix(warnings, "criterion thoracic_extension not evaluated") {
		t.Fatalf("thoracic_extension should be evaluated: %v", warnings)
	}
}

func TestDedupeStrings(t *testing.T) {
	t.Parallel()

	got := dedupeStrings([]string{"a", "", "b", "a"})
	if strings.Join(got, ",") != "a,b" {
		t.Fatalf("dedupeStrings() = %v", got)
	}
}

func testConfig() formnotes.Config {
	cfg := formnotes.DefaultConfig()
	cfg.Now = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) }
	return cfg
}

func analyze(t *testing.T, frames []pose.Frame, sourcePath string) *formnotes.Analysis {
	t.Helper()

	a, err := formnotes.Analyze(context.Background(), formnotes.Input{
		Frames:       frames,
		ExerciseName: "agachamento",
		SourcePath:   sourcePath,
	}, testConfig())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	return a
}

func buildTestFrames(t *testing.T) []pose.Frame {
	t.Helper()

	frames, err := formnotes.SyntheticFrames(30, formnotes.SyntheticValgusSquat)
	if err != nil {
		t.Fatalf("synthetic frames: %v", err)
	}
	return frames
}

func containsPrefix(values []string, prefix string) bool {
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			return true
		}
	}
	return false
}
