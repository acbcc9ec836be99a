package images

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"assetpress/internal/batch"
	"assetpress/pkg/imgutil"
)

// Resizer aligns image dimensions to multiples of 4 within a maximum,
// rewriting files in place.
type Resizer struct {
	MaxDimension int
	Quality      int
	FlipPNG      bool

	log *zap.Logger
}

func NewResizer(maxDimension, quality int, flipPNG bool, logger *zap.Logger) *Resizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resizer{
		MaxDimension: maxDimension,
		Quality:      quality,
		FlipPNG:      flipPNG,
		log:          logger,
	}
}

// Process handles one file: compute target dimensions, resize and/or
// flip when needed, and rewrite in place. Files already aligned (and
// not flipped) are reported as skipped and left untouched.
func (r *Resizer) Process(_ context.Context, task batch.Task) batch.Outcome {
	out := batch.Outcome{Display: task.Display}

	info, err := os.Stat(task.Path)
	if err != nil {
		return fail(out, "stat: %v", err)
	}
	out.BytesBefore = info.Size()

	kind, err := imgutil.SniffFile(task.Path)
	if err != nil {
		return fail(out, "read header: %v", err)
	}
	if kind == imgutil.KindUnknown {
		return fail(out, "not a PNG or JPEG (signature mismatch)")
	}

	w, h, err := decodeSize(task.Path)
	if err != nil {
		return fail(out, "decode: %v", err)
	}

	nw, nh := TargetDimensions(w, h, r.MaxDimension)
	needsResize := nw != w || nh != h
	flip := r.FlipPNG && kind == imgutil.KindPNG

	if !needsResize && !flip {
		out.Status = batch.StatusSkipped
		out.BytesAfter = out.BytesBefore
		out.Reason = fmt.Sprintf("%dx%d already aligned", w, h)
		return out
	}

	src, err := imaging.Open(task.Path)
	if err != nil {
		return fail(out, "decode: %v", err)
	}

	img := src
	if needsResize {
		img = imaging.Resize(img, nw, nh, imaging.Lanczos)
	}
	if flip {
		img = imaging.FlipV(img)
	}

	dropped := exifTagCount(task.Path)

	data, err := encode(img, imgutil.KindForPath(task.Path), r.Quality)
	if err != nil {
		return fail(out, "%v", err)
	}
	if err := replaceFile(task.Path, data); err != nil {
		return fail(out, "write: %v", err)
	}

	out.Status = batch.StatusOK
	out.BytesAfter = int64(len(data))
	out.OutputPath = task.Path
	out.Reason = fmt.Sprintf("%dx%d -> %dx%d", w, h, nw, nh)
	if dropped > 0 {
		out.Reason += fmt.Sprintf(" (%d metadata tags dropped)", dropped)
	}

	r.log.Info("resized image",
		zap.String("path", task.Path),
		zap.Int("width", nw),
		zap.Int("height", nh),
		zap.Bool("flipped", flip),
		zap.Int64("bytes_before", out.BytesBefore),
		zap.Int64("bytes_after", out.BytesAfter),
	)
	return out
}

// decodeSize reads only the image header for dimensions, avoiding a
// full decode of files that turn out to be already aligned.
func decodeSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

func fail(out batch.Outcome, format string, args ...interface{}) batch.Outcome {
	out.Status = batch.StatusFailed
	out.Reason = fmt.Sprintf(format, args...)
	return out
}
