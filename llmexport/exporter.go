package llmexport

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	formnotes "github.com/lucasjlepore/form-analyzer"
)

// ExportAnalysis writes an LLM-ready bundle for a finished analysis.
// Output files:
//   - manifest.json
//   - classification.json
//   - frame_metrics.jsonl
//   - prompt_system.txt
//   - prompt_user.md
//   - source_frames.json (optional, needs a.SourcePath)
func ExportAnalysis(a *formnotes.Analysis, outputDir string, opts ExportOptions) (*ExportResult, error) {
	if a == nil {
		return nil, fmt.Errorf("analysis is required")
	}
	if strings.TrimSpace(outputDir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	manifest := buildManifest(a)
	if a.SourcePath != "" {
		data, err := os.ReadFile(a.SourcePath)
		if err != nil {
			return nil, fmt.Errorf("read source frames: %w", err)
		}
		sum := sha256.Sum256(data)
		manifest.SourceSHA256 = hex.EncodeToString(sum[:])
		manifest.SourceSizeBytes = int64(len(data))
	}

	if err := ensureOutputDir(outputDir, opts.Overwrite); err != nil {
		return nil, err
	}

	classificationPath := filepath.Join(outputDir, ClassificationFile)
	if err := writeJSON(classificationPath, BuildClassificationDocument(a)); err != nil {
		return nil, fmt.Errorf("write %s: %w", ClassificationFile, err)
	}

	records := BuildFrameRecords(a.Sequence)
	framesPath := filepath.Join(outputDir, FrameMetricsFile)
	if err := writeJSONL(framesPath, records); err != nil {
		return nil, fmt.Errorf("write %s: %w", FrameMetricsFile, err)
	}

	systemPath := filepath.Join(outputDir, SystemPromptFile)
	if err := os.WriteFile(systemPath, []byte(a.Prompt.SystemPrompt), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", SystemPromptFile, err)
	}
	userPath := filepath.Join(outputDir, UserPromptFile)
	if err := os.WriteFile(userPath, []byte(a.Prompt.UserPrompt), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", UserPromptFile, err)
	}

	sourceCopyPath := ""
	if opts.CopySourceFile && a.SourcePath != "" {
		sourceCopyPath = filepath.Join(outputDir, SourceCopyFile)
		if err := copyFile(a.SourcePath, sourceCopyPath); err != nil {
			return nil, fmt.Errorf("copy source frames file: %w", err)
		}
		manifest.Files.SourceCopy = SourceCopyFile
	}

	manifestPath := filepath.Join(outputDir, ManifestFile)
	if err := writeJSON(manifestPath, manifest); err != nil {
		return nil, fmt.Errorf("write %s: %w", ManifestFile, err)
	}

	return &ExportResult{
		OutputDir:          outputDir,
		ManifestPath:       manifestPath,
		ClassificationPath: classificationPath,
		FrameMetricsPath:   framesPath,
		SystemPromptPath:   systemPath,
		UserPromptPath:     userPath,
		SourceCopyPath:     sourceCopyPath,
		FrameCount:         len(records),
		CriteriaCount:      manifest.CriteriaCount,
		OverallScore:       manifest.OverallScore,
		SourceSHA256:       manifest.SourceSHA256,
		SourceSizeBytes:    manifest.SourceSizeBytes,
		Warnings:           manifest.Warnings,
	}, nil
}

func ensureOutputDir(path string, overwrite bool) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("read output directory: %w", err)
	}
	if len(entries) > 0 && !overwrite {
		return fmt.Errorf("output directory is not empty: %s (set overwrite=true to allow)", path)
	}
	return nil
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

func writeJSONL(path string, records []FrameRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := bufio.NewWriterSize(f, 1<<20)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return err
		}
	}
	return buf.Flush()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
