package images

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"assetpress/internal/batch"
	"assetpress/pkg/imgutil"
)

// DefaultMinSizeMB is the threshold below which files are not worth
// recompressing.
const DefaultMinSizeMB = 2.0

// Compressor recompresses images in place: lossy for JPEG, lossless
// maximum compression for PNG. Small files and files the re-encode
// cannot shrink are left byte-for-byte untouched.
type Compressor struct {
	Quality   int
	MinSizeMB float64

	log *zap.Logger
}

func NewCompressor(quality int, minSizeMB float64, logger *zap.Logger) *Compressor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compressor{Quality: quality, MinSizeMB: minSizeMB, log: logger}
}

func (c *Compressor) Process(_ context.Context, task batch.Task) batch.Outcome {
	out := batch.Outcome{Display: task.Display}

	info, err := os.Stat(task.Path)
	if err != nil {
		return fail(out, "stat: %v", err)
	}
	out.BytesBefore = info.Size()
	out.BytesAfter = info.Size()

	sizeMB := float64(info.Size()) / (1024 * 1024)
	if sizeMB < c.MinSizeMB {
		out.Status = batch.StatusSkipped
		out.Reason = fmt.Sprintf("%.2f MB, below %.1f MB threshold", sizeMB, c.MinSizeMB)
		return out
	}

	kind, err := imgutil.SniffFile(task.Path)
	if err != nil {
		return fail(out, "read header: %v", err)
	}
	if kind == imgutil.KindUnknown {
		return fail(out, "not a PNG or JPEG (signature mismatch)")
	}

	src, err := imaging.Open(task.Path)
	if err != nil {
		return fail(out, "decode: %v", err)
	}

	target := imgutil.KindForPath(task.Path)
	img := src
	if target == imgutil.KindJPEG {
		// JPEG has no alpha channel; composite onto white first.
		img = flattenAlpha(src)
	}

	data, err := encode(img, target, c.Quality)
	if err != nil {
		return fail(out, "%v", err)
	}

	if int64(len(data)) >= info.Size() {
		out.Status = batch.StatusSkipped
		out.Reason = "no improvement, original kept"
		return out
	}

	if err := replaceFile(task.Path, data); err != nil {
		return fail(out, "write: %v", err)
	}

	out.Status = batch.StatusOK
	out.BytesAfter = int64(len(data))
	out.OutputPath = task.Path
	ratio := float64(info.Size()-out.BytesAfter) / float64(info.Size()) * 100
	out.Reason = fmt.Sprintf("%.1f%% smaller", ratio)

	c.log.Info("compressed image",
		zap.String("path", task.Path),
		zap.Int64("bytes_before", out.BytesBefore),
		zap.Int64("bytes_after", out.BytesAfter),
	)
	return out
}

// flattenAlpha composites img onto a white background when it carries
// an alpha channel; opaque images pass through unchanged.
func flattenAlpha(img image.Image) image.Image {
	if isOpaque(img) {
		return img
	}
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

func isOpaque(img image.Image) bool {
	type opaquer interface{ Opaque() bool }
	if o, ok := img.(opaquer); ok {
		return o.Opaque()
	}
	return false
}
