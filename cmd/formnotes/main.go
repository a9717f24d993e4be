package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	formnotes "github.com/lucasjlepore/form-analyzer"
	"github.com/lucasjlepore/form-analyzer/classify"
	"github.com/lucasjlepore/form-analyzer/internal/config"
	"github.com/lucasjlepore/form-analyzer/internal/logging"
	"github.com/lucasjlepore/form-analyzer/pipeline"
	"github.com/lucasjlepore/form-analyzer/pose"
)

func main() {
	var (
		exercise   = flag.String("exercise", "", "Exercise name (required)")
		category   = flag.String("category", "", "Movement category override")
		constraint = flag.String("constraint", "", "Equipment constraint, e.g. \"smith\"")
		configPath = flag.String("config", "", "Optional settings file")
		synthetic  = flag.String("synthetic", "", "Analyze a generated repetition instead of a file: squat|shallow_squat|valgus_squat")
		jsonOut    = flag.Bool("json", false, "Emit full analysis as JSON")
		showPrompt = flag.Bool("prompt", false, "Print the user prompt after the summary")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --exercise name [flags] <path-to-frames>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *exercise == "" || (flag.NArg() < 1 && *synthetic == "") {
		flag.Usage()
		os.Exit(2)
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load settings failed: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.NewZapLogger(settings.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger setup failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	cfg, err := formnotes.ConfigFromSettings(settings, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis setup failed: %v\n", err)
		os.Exit(1)
	}

	var (
		frames     []pose.Frame
		sourcePath string
	)
	if *synthetic != "" {
		frames, err = formnotes.SyntheticFrames(30, *synthetic)
	} else {
		sourcePath = flag.Arg(0)
		var data []byte
		data, err = os.ReadFile(sourcePath)
		if err == nil {
			frames, err = pipeline.DecodeFrames(data)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "read frames failed: %v\n", err)
		os.Exit(1)
	}

	analysis, err := formnotes.Analyze(context.Background(), formnotes.Input{
		Frames:       frames,
		ExerciseName: *exercise,
		Category:     *category,
		Constraint:   *constraint,
		SourcePath:   sourcePath,
	}, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(analysis); err != nil {
			fmt.Fprintf(os.Stderr, "json encode failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println(analysis.Notes)
	fmt.Println()
	fmt.Println(classify.SummarizeResult(analysis.Result))
	if *showPrompt {
		fmt.Println()
		fmt.Println(analysis.Prompt.UserPrompt)
	}
}
