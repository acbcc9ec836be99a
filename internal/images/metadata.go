package images

import (
	"os"

	exif "github.com/dsoprea/go-exif/v3"
)

// exifTagCount reports how many EXIF tags a file carries. Re-encoding
// drops them all, so the count is surfaced in the outcome line. Best
// effort: unreadable or EXIF-free files count as zero.
func exifTagCount(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(f, nil, true)
	if err != nil {
		return 0
	}
	return len(tags)
}
