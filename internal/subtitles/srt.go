package subtitles

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Segment is one timed unit of recognized speech.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// FormatTimestamp renders seconds as the SRT timestamp form
// HH:MM:SS,mmm.
func FormatTimestamp(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	ms := int(d.Milliseconds()) % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// WriteSRT serializes segments as numbered, blank-line separated SRT
// blocks.
func WriteSRT(w io.Writer, segments []Segment) error {
	for i, seg := range segments {
		_, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			i+1,
			FormatTimestamp(seg.Start),
			FormatTimestamp(seg.End),
			strings.TrimSpace(seg.Text),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// WordCount counts whitespace-separated words across all segments.
func WordCount(segments []Segment) int {
	n := 0
	for _, seg := range segments {
		n += len(strings.Fields(seg.Text))
	}
	return n
}
