//go:build js && wasm

package main

import (
	"context"
	"fmt"
	"syscall/js"

	formnotes "github.com/lucasjlepore/form-analyzer"
	"github.com/lucasjlepore/form-analyzer/internal/logging"
	"github.com/lucasjlepore/form-analyzer/pipeline"
)

func main() {
	js.Global().Set("analyzeForm", js.FuncOf(analyzeForm))
	select {}
}

// analyzeForm(framesBytes, options) runs the bundle pipeline on an uploaded
// frames file and returns {ok, zip, score, warnings, files}.
func analyzeForm(_ js.Value, args []js.Value) any {
	if len(args) < 2 {
		return errorResult("expected arguments: framesBytes(Uint8Array), options(object)")
	}
	framesArg, opts := args[0], args[1]
	if framesArg.IsUndefined() || framesArg.IsNull() || framesArg.Get("length").Int() == 0 {
		return errorResult("frames bytes are required")
	}
	frames := make([]byte, framesArg.Get("length").Int())
	if js.CopyBytesToGo(frames, framesArg) == 0 {
		return errorResult("failed to read frames from JS input")
	}

	cfg := formnotes.DefaultConfig()
	if fps := option(opts, "fps"); fps.Type() == js.TypeNumber && fps.Float() > 0 {
		cfg.FPS = fps.Float()
	}
	cfg.MinimalPrompt = option(opts, "minimal_prompt").Truthy()
	cfg.Logger = logging.Nop()

	result, err := pipeline.RunBytes(context.Background(), pipeline.BytesOptions{
		SourceFileName: stringOption(opts, "source_file_name", "frames.json"),
		FramesData:     frames,
		ExerciseName:   stringOption(opts, "exercise", ""),
		Category:       stringOption(opts, "category", ""),
		Constraint:     stringOption(opts, "constraint", ""),
		Format:         stringOption(opts, "format", "csv"),
		CopySource:     true,
		Config:         &cfg,
	})
	if err != nil {
		return errorResult(err.Error())
	}
	archive, err := result.Archive()
	if err != nil {
		return errorResult(fmt.Sprintf("create zip: %v", err))
	}
	payload := js.Global().Get("Uint8Array").New(len(archive))
	js.CopyBytesToJS(payload, archive)

	warnings := make([]any, len(result.Warnings))
	for i, w := range result.Warnings {
		warnings[i] = w
	}
	names := result.FileNames()
	files := make([]any, len(names))
	for i, n := range names {
		files[i] = n
	}
	return map[string]any{
		"ok":       true,
		"zip":      payload,
		"score":    result.OverallScore,
		"warnings": warnings,
		"files":    files,
	}
}

func errorResult(msg string) map[string]any {
	return map[string]any{"ok": false, "error": msg}
}

// option reads key from a JS options object; a missing object or key yields
// undefined.
func option(opts js.Value, key string) js.Value {
	if opts.Type() != js.TypeObject {
		return js.Undefined()
	}
	return opts.Get(key)
}

func stringOption(opts js.Value, key, fallback string) string {
	v := option(opts, key)
	if v.Type() != js.TypeString || v.String() == "" {
		return fallback
	}
	return v.String()
}
