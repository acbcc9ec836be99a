// Package subtitles generates SRT files from audio via a pretrained
// speech-recognition model. The Transcriber interface hides the model
// invocation so the skip and serialization logic stays testable.
package subtitles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrWhisperNotFound is returned before any file is processed when the
// whisper binary is absent.
var ErrWhisperNotFound = errors.New("whisper not found on PATH")

// Models are the accepted --model values.
var Models = []string{"tiny", "base", "small", "medium", "large"}

// DefaultModel balances speed and accuracy for batch runs.
const DefaultModel = "base"

// ValidModel reports whether name is a known model size.
func ValidModel(name string) bool {
	for _, m := range Models {
		if m == name {
			return true
		}
	}
	return false
}

// Transcriber turns an audio file into ordered timed segments.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) ([]Segment, error)
}

// WhisperCLI invokes the whisper command-line tool with JSON output
// and parses the segment list it writes.
type WhisperCLI struct {
	Binary   string
	Model    string
	Language string // empty means auto-detect

	runner func(ctx context.Context, name string, args ...string) error
}

func NewWhisperCLI(model, language string) *WhisperCLI {
	return &WhisperCLI{Binary: "whisper", Model: model, Language: language}
}

// WithRunner sets a custom command runner (for testing).
func (w *WhisperCLI) WithRunner(runner func(ctx context.Context, name string, args ...string) error) *WhisperCLI {
	w.runner = runner
	return w
}

// Check verifies the binary exists before the batch starts.
func (w *WhisperCLI) Check() error {
	if _, err := exec.LookPath(w.Binary); err != nil {
		return ErrWhisperNotFound
	}
	return nil
}

// Transcribe runs the model on one file. Model output goes to a
// throwaway directory; only the parsed segments survive.
func (w *WhisperCLI) Transcribe(ctx context.Context, path string) ([]Segment, error) {
	workDir, err := os.MkdirTemp("", "assetpress-whisper-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(workDir)

	if err := w.run(ctx, w.Binary, w.buildArgs(path, workDir)...); err != nil {
		return nil, fmt.Errorf("whisper: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return LoadSegments(filepath.Join(workDir, base+".json"))
}

func (w *WhisperCLI) run(ctx context.Context, name string, args ...string) error {
	if w.runner != nil {
		return w.runner(ctx, name, args...)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// buildArgs constructs the whisper command line for one file.
func (w *WhisperCLI) buildArgs(path, outputDir string) []string {
	model := w.Model
	if model == "" {
		model = DefaultModel
	}

	args := []string{
		path,
		"--model", model,
		"--task", "transcribe",
		"--output_format", "json",
		"--output_dir", outputDir,
		"--verbose", "False",
	}
	if w.Language != "" {
		args = append(args, "--language", w.Language)
	}
	return args
}

// whisperPayload is the JSON structure the whisper CLI writes.
type whisperPayload struct {
	Segments []Segment `json:"segments"`
}

// LoadSegments parses a whisper JSON output file.
func LoadSegments(jsonPath string) ([]Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var payload whisperPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse whisper json: %w", err)
	}
	return payload.Segments, nil
}
