package tail

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

type memFile struct {
	*bytes.Reader
}

func newMemFile(data []byte) *memFile { return &memFile{bytes.NewReader(data)} }

func buildID3(tagPresent bool) []byte {
	b := make([]byte, id3Size)
	if tagPresent {
		copy(b[:3], "TAG")
	}
	return b
}

func buildFooter(size uint32) []byte {
	b := make([]byte, footerSize)
	copy(b[:12], preamble[:])
	binary.LittleEndian.PutUint32(b[12:16], size)
	return b
}

func TestLocateNoTagSmallFile(t *testing.T) {
	for _, size := range []int{0, 1, 31} {
		f := newMemFile(make([]byte, size))
		layout, err := Locate(f)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if layout.HasAPE || layout.HasID3 {
			t.Fatalf("size %d: got %+v, want no tags", size, layout)
		}
		if layout.FileSize != uint64(size) {
			t.Fatalf("size %d: FileSize = %d", size, layout.FileSize)
		}
	}
}

func TestLocateAPEOnlyNoID3(t *testing.T) {
	items := make([]byte, 50)
	footer := buildFooter(uint32(footerSize + len(items)))
	// The region is a 32-byte header placeholder, the items, and the footer.
	data := append(append(make([]byte, footerSize), items...), footer...)
	// Pad the file past id3Size so the large-file branch with no ID3 trailer
	// is the one exercised.
	padding := make([]byte, 200)
	full := append(padding, data...)

	f := newMemFile(full)
	layout, err := Locate(f)
	if err != nil {
		t.Fatal(err)
	}
	if !layout.HasAPE {
		t.Fatal("expected HasAPE = true")
	}
	if layout.HasID3 {
		t.Fatal("expected HasID3 = false")
	}
	wantStart := uint64(len(full)) - uint64(len(data))
	if layout.APEStart != wantStart {
		t.Fatalf("APEStart = %d, want %d", layout.APEStart, wantStart)
	}
	if layout.APESize != uint32(len(data)) {
		t.Fatalf("APESize = %d, want %d", layout.APESize, len(data))
	}
}

func TestLocateID3OnlyNoAPE(t *testing.T) {
	full := append(make([]byte, 300), buildID3(true)...)
	f := newMemFile(full)

	layout, err := Locate(f)
	if err != nil {
		t.Fatal(err)
	}
	if !layout.HasID3 {
		t.Fatal("expected HasID3 = true")
	}
	if layout.HasAPE {
		t.Fatal("expected HasAPE = false")
	}
	if len(layout.ID3Raw) != id3Size {
		t.Fatalf("len(ID3Raw) = %d, want %d", len(layout.ID3Raw), id3Size)
	}
}

func TestLocateAPEAndID3(t *testing.T) {
	items := make([]byte, 70)
	footer := buildFooter(uint32(footerSize + len(items)))
	ape := append(append(make([]byte, footerSize), items...), footer...)
	id3 := buildID3(true)

	full := append(make([]byte, 500), ape...)
	full = append(full, id3...)

	f := newMemFile(full)
	layout, err := Locate(f)
	if err != nil {
		t.Fatal(err)
	}
	if !layout.HasAPE || !layout.HasID3 {
		t.Fatalf("got %+v, want both tags present", layout)
	}
	wantAPEStart := uint64(len(full)) - uint64(id3Size) - uint64(len(ape))
	if layout.APEStart != wantAPEStart {
		t.Fatalf("APEStart = %d, want %d", layout.APEStart, wantAPEStart)
	}
}

func TestLocateRejectsFooterClaimingTooMuch(t *testing.T) {
	// A footer whose declared size would make the APE region larger than
	// the whole file must be ignored, not trusted.
	footer := buildFooter(0xFFFFFFF0)
	full := append(make([]byte, 100), footer...)

	f := newMemFile(full)
	layout, err := Locate(f)
	if err != nil {
		t.Fatal(err)
	}
	if layout.HasAPE {
		t.Fatalf("got HasAPE = true for an impossible footer size, want false")
	}
}

func TestLocateAcrossSizeBoundaries(t *testing.T) {
	sizes := []int{0, 1, 31, 32, 33, 63, 64, 65, 127, 128, 129, 191, 192, 193, 8191, 8192, 8193}
	for _, size := range sizes {
		f := newMemFile(make([]byte, size))
		if _, err := Locate(f); err != nil {
			t.Errorf("size %d: %v", size, err)
		}
	}
}

var _ io.ReadSeeker = (*memFile)(nil)
