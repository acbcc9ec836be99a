package images

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"assetpress/pkg/imgutil"
)

// Extensions is the discovery allow-list shared by the resize and
// compress commands.
var Extensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// encode serializes img with the save parameters the original pipeline
// used: lossy JPEG at the configured quality, lossless PNG at maximum
// compression.
func encode(img image.Image, kind imgutil.Kind, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch kind {
	case imgutil.KindJPEG:
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	case imgutil.KindPNG:
		if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported image kind %q", kind)
	}
	return buf.Bytes(), nil
}

// replaceFile writes data over path through a temp file in the same
// directory so a failed write never truncates the original.
func replaceFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "assetpress-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(info.Mode()); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), path); err == nil {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
