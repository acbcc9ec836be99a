package audioconv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"assetpress/internal/batch"
)

func TestParseFormat(t *testing.T) {
	for _, ok := range []string{"ogg", "OGG", "mp4", "aac"} {
		if _, err := ParseFormat(ok); err != nil {
			t.Errorf("ParseFormat(%q) = %v", ok, err)
		}
	}
	if _, err := ParseFormat("mp3"); err == nil {
		t.Error("expected error for mp3 output format")
	}
}

func TestBuildArgs(t *testing.T) {
	cases := []struct {
		format    Format
		codec     string
		faststart bool
	}{
		{FormatOGG, "libvorbis", false},
		{FormatMP4, "aac", true},
		{FormatAAC, "aac", false},
	}

	for _, tc := range cases {
		args := buildArgs("in.mp3", "out"+tc.format.Ext(), tc.format, "192k")
		joined := strings.Join(args, " ")

		if !strings.Contains(joined, "-c:a "+tc.codec) {
			t.Errorf("%s: missing codec %s in %q", tc.format, tc.codec, joined)
		}
		if !strings.Contains(joined, "-b:a 192k") {
			t.Errorf("%s: missing bitrate in %q", tc.format, joined)
		}
		if got := strings.Contains(joined, "faststart"); got != tc.faststart {
			t.Errorf("%s: faststart = %v, want %v", tc.format, got, tc.faststart)
		}
		if args[len(args)-1] != "out"+tc.format.Ext() {
			t.Errorf("%s: output path not last: %v", tc.format, args)
		}
	}
}

// fakeTranscoder writes a fixed payload to the output path.
type fakeTranscoder struct {
	payload []byte
	err     error
	calls   int
}

func (f *fakeTranscoder) Transcode(_ context.Context, _, output string, _ Format, _ string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(output, f.payload, 0o644)
}

func TestConverterProducesOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "track.mp3")
	if err := os.WriteFile(input, []byte("mp3-bytes-mp3-bytes"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	ft := &fakeTranscoder{payload: []byte("ogg-bytes")}
	c := NewConverter(FormatOGG, "192k", "", ft, nil)

	out := c.Process(context.Background(), batch.Task{Path: input, Display: "track.mp3"})
	if out.Status != batch.StatusOK {
		t.Fatalf("expected ok, got %s (%s)", out.Status, out.Reason)
	}

	want := filepath.Join(dir, "track.ogg")
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("expected output at %s: %v", want, err)
	}
	if len(data) == 0 {
		t.Fatal("output is empty")
	}
	if out.BytesAfter != int64(len(data)) {
		t.Fatalf("outcome reports %d bytes, file has %d", out.BytesAfter, len(data))
	}

	// The original must be untouched.
	orig, err := os.ReadFile(input)
	if err != nil || string(orig) != "mp3-bytes-mp3-bytes" {
		t.Fatalf("input modified: %q, %v", orig, err)
	}
}

func TestConverterOutputDir(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "voice.wav")
	if err := os.WriteFile(input, []byte("wav"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	outDir := filepath.Join(dir, "converted")
	ft := &fakeTranscoder{payload: []byte("aac")}
	c := NewConverter(FormatMP4, "256k", outDir, ft, nil)

	out := c.Process(context.Background(), batch.Task{Path: input, Display: "voice.wav"})
	if out.Status != batch.StatusOK {
		t.Fatalf("expected ok, got %s (%s)", out.Status, out.Reason)
	}
	if out.OutputPath != filepath.Join(outDir, "voice.mp4") {
		t.Fatalf("unexpected output path %s", out.OutputPath)
	}
	if _, err := os.Stat(out.OutputPath); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestConverterSkipsTargetFormatInputs(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "already.ogg")
	if err := os.WriteFile(input, []byte("ogg"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	ft := &fakeTranscoder{}
	c := NewConverter(FormatOGG, "192k", "", ft, nil)

	out := c.Process(context.Background(), batch.Task{Path: input, Display: "already.ogg"})
	if out.Status != batch.StatusSkipped {
		t.Fatalf("expected skipped, got %s (%s)", out.Status, out.Reason)
	}
	if ft.calls != 0 {
		t.Fatal("transcoder invoked for a file already in the target format")
	}
}

func TestConverterSkipsExistingOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "done.mp3")
	if err := os.WriteFile(input, []byte("mp3"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "done.ogg"), []byte("old"), 0o644); err != nil {
		t.Fatalf("write output: %v", err)
	}

	ft := &fakeTranscoder{}
	c := NewConverter(FormatOGG, "192k", "", ft, nil)

	out := c.Process(context.Background(), batch.Task{Path: input, Display: "done.mp3"})
	if out.Status != batch.StatusSkipped {
		t.Fatalf("expected skipped, got %s (%s)", out.Status, out.Reason)
	}
	if ft.calls != 0 {
		t.Fatal("transcoder invoked despite existing output")
	}
}

func TestConverterRecordsFailure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.mp3")
	if err := os.WriteFile(input, []byte("mp3"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	ft := &fakeTranscoder{err: errors.New("ffmpeg: exit status 1: Invalid data found")}
	c := NewConverter(FormatOGG, "192k", "", ft, nil)

	out := c.Process(context.Background(), batch.Task{Path: input, Display: "bad.mp3"})
	if out.Status != batch.StatusFailed {
		t.Fatalf("expected failed, got %s (%s)", out.Status, out.Reason)
	}
	if !strings.Contains(out.Reason, "Invalid data") {
		t.Fatalf("reason should carry the tool message: %q", out.Reason)
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.ogg")); !os.IsNotExist(err) {
		t.Fatal("partial output left behind after failure")
	}
}

func TestFFmpegTranscodeWrapsStderr(t *testing.T) {
	f := NewFFmpeg().WithRunner(func(_ context.Context, name string, args ...string) (string, error) {
		if name != "ffmpeg" {
			t.Fatalf("unexpected binary %s", name)
		}
		return "line1\nsome decoder error", errors.New("exit status 1")
	})

	err := f.Transcode(context.Background(), "in.mp3", "out.ogg", FormatOGG, "192k")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "some decoder error") {
		t.Fatalf("stderr tail missing from error: %v", err)
	}
}
