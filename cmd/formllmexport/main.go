package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	formnotes "github.com/lucasjlepore/form-analyzer"
	"github.com/lucasjlepore/form-analyzer/internal/config"
	"github.com/lucasjlepore/form-analyzer/internal/logging"
	"github.com/lucasjlepore/form-analyzer/llmexport"
	"github.com/lucasjlepore/form-analyzer/pipeline"
)

func main() {
	var (
		outDir     = flag.String("out-dir", "", "Output directory for the LLM bundle")
		exercise   = flag.String("exercise", "", "Exercise name (required)")
		constraint = flag.String("constraint", "", "Equipment constraint")
		configPath = flag.String("config", "", "Optional settings file")
		overwrite  = flag.Bool("overwrite", true, "Allow writing to non-empty output directories")
		copySource = flag.Bool("copy-source", true, "Copy the frames file into the bundle as source_frames.json")
	)

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --exercise name [flags] <path-to-frames>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 || strings.TrimSpace(*exercise) == "" {
		flag.Usage()
		os.Exit(2)
	}

	inputPath := flag.Arg(0)
	if strings.TrimSpace(*outDir) == "" {
		base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		*outDir = filepath.Join(".", "exports", base+"_"+llmexport.ExportFormatVersion)
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.NewZapLogger(settings.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	cfg, err := formnotes.ConfigFromSettings(settings, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "export failed: read frames: %v\n", err)
		os.Exit(1)
	}
	frames, err := pipeline.DecodeFrames(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}
	analysis, err := formnotes.Analyze(context.Background(), formnotes.Input{
		Frames:       frames,
		ExerciseName: *exercise,
		Constraint:   *constraint,
		SourcePath:   inputPath,
	}, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}

	result, err := llmexport.ExportAnalysis(analysis, *outDir, llmexport.ExportOptions{
		Overwrite:      *overwrite,
		CopySourceFile: *copySource,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Export complete\n")
	fmt.Printf("Output dir:     %s\n", result.OutputDir)
	fmt.Printf("Manifest:       %s\n", result.ManifestPath)
	fmt.Printf("Classification: %s\n", result.ClassificationPath)
	fmt.Printf("Frame metrics:  %s\n", result.FrameMetricsPath)
	fmt.Printf("Prompts:        %s, %s\n", result.SystemPromptPath, result.UserPromptPath)
	if result.SourceCopyPath != "" {
		fmt.Printf("Source frames:  %s\n", result.SourceCopyPath)
	}
	fmt.Printf("Frames:         %d (%d criteria, score %.1f/10)\n", result.FrameCount, result.CriteriaCount, result.OverallScore)
	for _, w := range result.Warnings {
		fmt.Printf("Warning:        %s\n", w)
	}
}
