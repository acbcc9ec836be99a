package imgutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestDetectHeader(t *testing.T) {
	cases := []struct {
		name   string
		header []byte
		want   Kind
		err    bool
	}{
		{"png", []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}, KindPNG, false},
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 0x4a, 0x46}, KindJPEG, false},
		{"text", []byte("not image"), KindUnknown, false},
		{"short", []byte{0x89, 0x50}, KindUnknown, true},
		{"empty", nil, KindUnknown, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectHeader(tc.header)
			if tc.err != (err != nil) {
				t.Fatalf("err = %v, want error %v", err, tc.err)
			}
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSniffReader(t *testing.T) {
	header := append([]byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}, []byte("rest of file")...)
	kind, err := SniffReader(bytes.NewReader(header))
	if err != nil {
		t.Fatalf("sniff: %v", err)
	}
	if kind != KindPNG {
		t.Fatalf("got %v, want png", kind)
	}
}

func TestSniffFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	data := append([]byte{0xff, 0xd8, 0xff, 0xe1}, make([]byte, 16)...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	kind, err := SniffFile(path)
	if err != nil {
		t.Fatalf("sniff: %v", err)
	}
	if kind != KindJPEG {
		t.Fatalf("got %v, want jpeg", kind)
	}

	if _, err := SniffFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestKindForPath(t *testing.T) {
	cases := map[string]Kind{
		"a.png":      KindPNG,
		"b.PNG":      KindPNG,
		"c.jpg":      KindJPEG,
		"d.JPEG":     KindJPEG,
		"e.gif":      KindUnknown,
		"noext":      KindUnknown,
		"dir/f.jpeg": KindJPEG,
	}

	for path, want := range cases {
		if got := KindForPath(path); got != want {
			t.Errorf("KindForPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindJPEG.String() != "jpeg" || KindPNG.String() != "png" || KindUnknown.String() != "unknown" {
		t.Fatal("unexpected Kind strings")
	}
}
