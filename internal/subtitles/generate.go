package subtitles

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"assetpress/internal/batch"
)

// Extensions is the discovery allow-list for subtitle inputs.
var Extensions = map[string]bool{".mp3": true}

// Generator writes one .srt per audio file, next to the input or into
// OutputDir. Re-runs are idempotent: existing outputs are skipped.
type Generator struct {
	OutputDir string

	transcriber Transcriber
	log         *zap.Logger
}

func NewGenerator(outputDir string, t Transcriber, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{OutputDir: outputDir, transcriber: t, log: logger}
}

// OutputPath returns where the subtitle file for input goes.
func (g *Generator) OutputPath(input string) string {
	dir := filepath.Dir(input)
	if g.OutputDir != "" {
		dir = g.OutputDir
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, base+".srt")
}

func (g *Generator) Process(ctx context.Context, task batch.Task) batch.Outcome {
	out := batch.Outcome{Display: task.Display}

	srtPath := g.OutputPath(task.Path)
	if _, err := os.Stat(srtPath); err == nil {
		out.Status = batch.StatusSkipped
		out.Reason = fmt.Sprintf("subtitle exists: %s", filepath.Base(srtPath))
		return out
	}

	segments, err := g.transcriber.Transcribe(ctx, task.Path)
	if err != nil {
		out.Status = batch.StatusFailed
		out.Reason = err.Error()
		return out
	}
	if len(segments) == 0 {
		out.Status = batch.StatusFailed
		out.Reason = "no speech detected"
		return out
	}

	var buf bytes.Buffer
	if err := WriteSRT(&buf, segments); err != nil {
		out.Status = batch.StatusFailed
		out.Reason = fmt.Sprintf("serialize: %v", err)
		return out
	}
	if err := os.MkdirAll(filepath.Dir(srtPath), 0o755); err != nil {
		out.Status = batch.StatusFailed
		out.Reason = fmt.Sprintf("create output directory: %v", err)
		return out
	}
	if err := os.WriteFile(srtPath, buf.Bytes(), 0o644); err != nil {
		out.Status = batch.StatusFailed
		out.Reason = fmt.Sprintf("write: %v", err)
		return out
	}

	out.Status = batch.StatusOK
	out.OutputPath = srtPath
	out.BytesAfter = int64(buf.Len())
	out.Reason = fmt.Sprintf("%d segments, %d words", len(segments), WordCount(segments))

	g.log.Info("generated subtitles",
		zap.String("input", task.Path),
		zap.String("output", srtPath),
		zap.Int("segments", len(segments)),
	)
	return out
}
