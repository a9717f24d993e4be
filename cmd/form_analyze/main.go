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
	"github.com/lucasjlepore/form-analyzer/pipeline"
)

func main() {
	var (
		framesPath = flag.String("frames", "", "Path to pose frames (JSON array or JSONL)")
		outDir     = flag.String("out", "", "Output directory (default export.out_dir from config)")
		exercise   = flag.String("exercise", "", "Exercise name, e.g. \"agachamento livre\"")
		category   = flag.String("category", "", "Movement category override (squat, hinge, ...)")
		constraint = flag.String("constraint", "", "Equipment constraint, e.g. \"barras de segurança\"")
		format     = flag.String("format", "", "Metric series format: parquet|csv (default export.series_format)")
		configPath = flag.String("config", "", "Optional YAML/JSON/TOML settings file")
		overwrite  = flag.Bool("overwrite", true, "Allow writing into non-empty output directories")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --frames frames.jsonl --exercise agachamento --out outdir [--constraint safety_bars] [--format parquet|csv]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if strings.TrimSpace(*framesPath) == "" || strings.TrimSpace(*exercise) == "" {
		flag.Usage()
		os.Exit(2)
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "form_analyze failed: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.NewZapLogger(settings.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "form_analyze failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := formnotes.ConfigFromSettings(settings, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "form_analyze failed: %v\n", err)
		os.Exit(1)
	}
	if strings.TrimSpace(*outDir) == "" {
		*outDir = settings.Export.OutDir
	}
	if strings.TrimSpace(*outDir) == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *format == "" {
		*format = settings.Export.SeriesFormat
	}

	ctx := context.Background()
	result, err := pipeline.Run(ctx, pipeline.Options{
		FramesPath:   *framesPath,
		OutDir:       *outDir,
		ExerciseName: *exercise,
		Category:     *category,
		Constraint:   *constraint,
		Format:       *format,
		Overwrite:    *overwrite,
		CopySource:   settings.Export.CopySource,
		Config:       &cfg,
	})
	if err != nil {
		log.Errorf(ctx, "pipeline failed: %v", err)
		fmt.Fprintf(os.Stderr, "form_analyze failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("form_analyze complete (score %.1f/10)\n", result.OverallScore)
	fmt.Printf("Output dir:          %s\n", result.OutputDir)
	fmt.Printf("manifest.json:       %s\n", result.ManifestPath)
	fmt.Printf("classification:      %s\n", result.ClassificationPath)
	fmt.Printf("frame metrics:       %s\n", result.FrameMetricsPath)
	fmt.Printf("metric series:       %s\n", result.MetricSeriesPath)
	fmt.Printf("movement structure:  %s\n", result.MovementStructurePath)
	fmt.Printf("system prompt:       %s\n", result.SystemPromptPath)
	fmt.Printf("user prompt:         %s\n", result.UserPromptPath)
	fmt.Printf("diagnostic summary:  %s\n", result.DiagnosticSummaryPath)
	if result.SourceCopyPath != "" {
		fmt.Printf("source copy:         %s\n", result.SourceCopyPath)
	}
	for _, w := range result.Warnings {
		fmt.Printf("warning:             %s\n", w)
	}
}
