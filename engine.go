package apetag

import (
	"io"
	"sort"

	"github.com/apetaglib/apetag/internal/ape"
	"github.com/apetaglib/apetag/internal/id3v1"
	"github.com/apetaglib/apetag/internal/tagerr"
	"github.com/apetaglib/apetag/internal/tail"
)

// File is what the engine needs from the caller's handle: ordinary
// sequential I/O plus the ability to seek to an arbitrary offset and
// truncate. *os.File satisfies it.
type File interface {
	io.Reader
	io.Writer
	io.Seeker
	Truncate(size int64) error
}

const id3RegionSize = 128

func locate(f File) (tail.Layout, error) {
	layout, err := tail.Locate(f)
	if err != nil {
		return tail.Layout{}, tagerr.IO(err)
	}
	return layout, nil
}

func readRegion(f File, offset int64, n int) ([]byte, error) {
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, tagerr.IO(err)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, tagerr.IO(err)
	}
	return buf, nil
}

// readAPE returns the existing APE tag and its raw bytes, or (nil, nil,
// nil) if layout reports no APE tag.
func readAPE(f File, layout tail.Layout) (*ape.Tag, []byte, error) {
	if !layout.HasAPE {
		return nil, nil, nil
	}
	if layout.APESize > ape.MaxTagSize {
		return nil, nil, tagerr.Newf(tagerr.TooLarge, "existing tag is too large: %d bytes", layout.APESize)
	}
	raw, err := readRegion(f, int64(layout.APEStart), int(layout.APESize))
	if err != nil {
		return nil, nil, err
	}
	tag, err := ape.Decode(raw)
	if err != nil {
		return nil, nil, err
	}
	return tag, raw, nil
}

// readID3 returns the existing ID3v1.1 fields and their raw 128 bytes, or
// (nil, nil, nil) if layout reports no ID3 trailer.
func readID3(f File, layout tail.Layout) (*id3v1.Fields, []byte, error) {
	if !layout.HasID3 {
		return nil, nil, nil
	}
	fields, err := id3v1.Decode(layout.ID3Raw)
	if err != nil {
		return nil, nil, err
	}
	return fields, layout.ID3Raw, nil
}

// rewriteTail performs the engine's single write+truncate: it seeks to
// where the tag region currently starts (or to end-of-file/just-before-ID3
// if no APE tag exists yet), writes newAPE followed by newID3, and
// truncates the file to exactly that length.
func rewriteTail(f File, layout tail.Layout, newAPE, newID3 []byte) error {
	var start int64
	switch {
	case layout.HasAPE:
		start = int64(layout.APEStart)
	case layout.HasID3:
		start = int64(layout.FileSize) - id3RegionSize
	default:
		start = int64(layout.FileSize)
	}

	if _, err := f.Seek(start, io.SeekStart); err != nil {
		return tagerr.IO(err)
	}
	if len(newAPE) > 0 {
		if _, err := f.Write(newAPE); err != nil {
			return tagerr.IO(err)
		}
	}
	if len(newID3) > 0 {
		if _, err := f.Write(newID3); err != nil {
			return tagerr.IO(err)
		}
	}
	if err := f.Truncate(start + int64(len(newAPE)) + int64(len(newID3))); err != nil {
		return tagerr.IO(err)
	}
	return nil
}

// mergeFields implements the default create/update callback: the union
// of existing and new fields, keyed case-insensitively, with new values
// winning on conflict, minus any field named in remove.
func mergeFields(existing, add APEFields, remove []string) APEFields {
	out := make(APEFields, len(existing)+len(add))
	for k, v := range existing {
		out[k] = v
	}
	// add's keys are processed in sorted, not map-iteration, order: if add
	// itself holds two keys that collide case-insensitively (e.g. "Title"
	// and "TITLE"), whichever is applied last wins, and map iteration order
	// is randomized in Go.
	addKeys := make([]string, 0, len(add))
	for k := range add {
		addKeys = append(addKeys, k)
	}
	sort.Strings(addKeys)
	for _, k := range addKeys {
		v := add[k]
		for existingKey := range out {
			if existingKey != k && equalFold(existingKey, k) {
				delete(out, existingKey)
			}
		}
		out[k] = v
	}
	for _, k := range remove {
		delete(out, k)
		for existingKey := range out {
			if equalFold(existingKey, k) {
				delete(out, existingKey)
			}
		}
	}
	return out
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
