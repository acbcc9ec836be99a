// Package audioconv converts audio files to web-friendly codecs by
// shelling out to ffmpeg. The Transcoder interface keeps the batch
// logic testable without a real ffmpeg on PATH.
package audioconv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrFFmpegNotFound is returned before any file is processed when the
// ffmpeg binary is absent.
var ErrFFmpegNotFound = errors.New("ffmpeg not found on PATH")

// Format is a supported output container/codec pairing.
type Format string

const (
	FormatOGG Format = "ogg" // OGG/Vorbis, the web-deployment default.
	FormatMP4 Format = "mp4" // MP4/AAC.
	FormatAAC Format = "aac" // Raw AAC (ADTS).
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatOGG:
		return FormatOGG, nil
	case FormatMP4:
		return FormatMP4, nil
	case FormatAAC:
		return FormatAAC, nil
	}
	return "", fmt.Errorf("unsupported format %q (want ogg, mp4, or aac)", s)
}

// Ext returns the output file extension, with leading dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Codec returns the ffmpeg encoder for the format.
func (f Format) Codec() string {
	if f == FormatOGG {
		return "libvorbis"
	}
	return "aac"
}

// Transcoder converts one audio file to a target format at a bitrate.
type Transcoder interface {
	Transcode(ctx context.Context, input, output string, format Format, bitrate string) error
}

// CommandRunner executes an external command and returns its captured
// stderr alongside any error. Swapped out in tests.
type CommandRunner func(ctx context.Context, name string, args ...string) (stderr string, err error)

// FFmpeg is the production Transcoder.
type FFmpeg struct {
	Binary string
	runner CommandRunner
}

func NewFFmpeg() *FFmpeg {
	return &FFmpeg{Binary: "ffmpeg"}
}

// WithRunner sets a custom command runner (for testing).
func (f *FFmpeg) WithRunner(runner CommandRunner) *FFmpeg {
	f.runner = runner
	return f
}

// Check verifies the binary exists before the batch starts.
func (f *FFmpeg) Check() error {
	if _, err := exec.LookPath(f.Binary); err != nil {
		return ErrFFmpegNotFound
	}
	return nil
}

// Transcode runs one decode/encode pass. ffmpeg's stderr is captured
// silently and its tail folded into the returned error.
func (f *FFmpeg) Transcode(ctx context.Context, input, output string, format Format, bitrate string) error {
	args := buildArgs(input, output, format, bitrate)

	stderr, err := f.run(ctx, f.Binary, args...)
	if err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, stderrTail(stderr))
	}
	return nil
}

func (f *FFmpeg) run(ctx context.Context, name string, args ...string) (string, error) {
	if f.runner != nil {
		return f.runner(ctx, name, args...)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf
	err := cmd.Run()
	return stderrBuf.String(), err
}

// buildArgs constructs the full ffmpeg argument list for one file.
func buildArgs(input, output string, format Format, bitrate string) []string {
	args := make([]string, 0, 16)
	args = append(args,
		"-hide_banner", "-nostdin", "-y",
		"-loglevel", "error",
		"-i", input,
		"-vn",
		"-c:a", format.Codec(),
		"-b:a", bitrate,
	)
	if format == FormatMP4 {
		args = append(args, "-movflags", "+faststart")
	}
	return append(args, output)
}

// stderrTail keeps the last few lines of ffmpeg output so error
// messages stay one screen tall.
func stderrTail(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	if len(lines) > 5 {
		lines = lines[len(lines)-5:]
	}
	return strings.Join(lines, " | ")
}
