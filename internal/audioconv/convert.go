package audioconv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"assetpress/internal/batch"
)

// DefaultBitrate is the target average bitrate for lossy encodes.
const DefaultBitrate = "192k"

// Extensions is the discovery allow-list for audio inputs.
var Extensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".ogg":  true,
	".m4a":  true,
	".aac":  true,
	".flac": true,
}

// Converter transcodes audio files to a target format, writing next to
// the input or into OutputDir, preserving the base filename.
type Converter struct {
	Format    Format
	Bitrate   string
	OutputDir string

	transcoder Transcoder
	log        *zap.Logger
}

func NewConverter(format Format, bitrate, outputDir string, t Transcoder, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		Format:     format,
		Bitrate:    bitrate,
		OutputDir:  outputDir,
		transcoder: t,
		log:        logger,
	}
}

// OutputPath returns where the converted copy of input goes.
func (c *Converter) OutputPath(input string) string {
	dir := filepath.Dir(input)
	if c.OutputDir != "" {
		dir = c.OutputDir
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, base+c.Format.Ext())
}

// Process converts one file. Inputs already in the target format and
// inputs whose output exists are skipped; the original is never
// modified.
func (c *Converter) Process(ctx context.Context, task batch.Task) batch.Outcome {
	out := batch.Outcome{Display: task.Display}

	if strings.EqualFold(filepath.Ext(task.Path), c.Format.Ext()) {
		out.Status = batch.StatusSkipped
		out.Reason = fmt.Sprintf("already %s", strings.ToUpper(string(c.Format)))
		return out
	}

	info, err := os.Stat(task.Path)
	if err != nil {
		return failOutcome(out, "stat: %v", err)
	}
	out.BytesBefore = info.Size()
	out.BytesAfter = info.Size()

	output := c.OutputPath(task.Path)
	if _, err := os.Stat(output); err == nil {
		out.Status = batch.StatusSkipped
		out.Reason = fmt.Sprintf("output exists: %s", filepath.Base(output))
		return out
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return failOutcome(out, "create output directory: %v", err)
	}

	if err := c.transcoder.Transcode(ctx, task.Path, output, c.Format, c.Bitrate); err != nil {
		// A failed run can leave a truncated output behind.
		_ = os.Remove(output)
		return failOutcome(out, "%v", err)
	}

	outInfo, err := os.Stat(output)
	if err != nil {
		return failOutcome(out, "stat output: %v", err)
	}

	out.Status = batch.StatusOK
	out.BytesAfter = outInfo.Size()
	out.OutputPath = output
	out.Reason = fmt.Sprintf("-> %s", filepath.Base(output))

	c.log.Info("converted audio",
		zap.String("input", task.Path),
		zap.String("output", output),
		zap.String("format", string(c.Format)),
		zap.String("bitrate", c.Bitrate),
		zap.Int64("bytes_before", out.BytesBefore),
		zap.Int64("bytes_after", out.BytesAfter),
	)
	return out
}

func failOutcome(out batch.Outcome, format string, args ...interface{}) batch.Outcome {
	out.Status = batch.StatusFailed
	out.Reason = fmt.Sprintf(format, args...)
	return out
}
