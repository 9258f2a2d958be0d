// Package tail classifies the trailing bytes of a file into one of the
// three layouts an APEv2/ID3v1 bearing file can have: no tag, a bare
// ID3v1.1 trailer, or an APEv2 tag optionally followed by an ID3v1.1
// trailer. It performs no structural validation of a recognized APE
// region beyond checking its 12-byte preamble and that its declared size
// fits within the file; the rest of the checks in spec.md §4.2 belong to
// internal/ape.
package tail

import (
	"encoding/binary"
	"io"
)

// preamble is the 12-byte APEv2 recognition signature: "APETAGEX" followed
// by the little-endian version 2000.
var preamble = [12]byte{'A', 'P', 'E', 'T', 'A', 'G', 'E', 'X', 0xD0, 0x07, 0x00, 0x00}

const (
	footerSize  = 32
	id3Size     = 128
	minAPESize  = footerSize
	minFileSize = footerSize // below this, no footer candidate can exist
)

// Layout describes where the APEv2 and/or ID3v1.1 regions of a file sit,
// relative to the end of the file.
type Layout struct {
	FileSize uint64

	HasID3 bool
	ID3Raw []byte // exactly 128 bytes when HasID3, else nil

	HasAPE   bool
	APEStart uint64 // byte offset from the start of the file
	APESize  uint32 // header+items+footer, i.e. the whole on-disk region
}

// Locate seeks to the end of r, classifies the trailing bytes, and seeks
// r back to an unspecified position. Callers that need to read the
// regions described by the returned Layout must Seek explicitly first.
func Locate(r io.ReadSeeker) (Layout, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return Layout{}, err
	}

	layout := Layout{FileSize: uint64(size)}

	if size < minFileSize {
		return layout, nil
	}

	if size < id3Size {
		footer := make([]byte, footerSize)
		if err := readAt(r, size-footerSize, footer); err != nil {
			return Layout{}, err
		}
		layout.applyFooterCandidate(footer, uint64(size), 0)
		return layout, nil
	}

	block := make([]byte, id3Size)
	if err := readAt(r, size-id3Size, block); err != nil {
		return Layout{}, err
	}

	if string(block[:3]) == "TAG" {
		layout.HasID3 = true
		layout.ID3Raw = append([]byte(nil), block...)

		if size >= id3Size+footerSize {
			footer := make([]byte, footerSize)
			if err := readAt(r, size-id3Size-footerSize, footer); err != nil {
				return Layout{}, err
			}
			layout.applyFooterCandidate(footer, uint64(size), id3Size)
		}

		return layout, nil
	}

	// No ID3 block: the footer candidate is the last 32 bytes of the file,
	// which are also the last 32 bytes of the 128-byte block just read.
	layout.applyFooterCandidate(block[id3Size-footerSize:], uint64(size), 0)
	return layout, nil
}

// applyFooterCandidate recognizes footer as an APE footer by its preamble
// and, if recognized, computes the region's start and size. id3Len is
// the number of trailing ID3 bytes (0 or 128) already accounted for.
func (l *Layout) applyFooterCandidate(footer []byte, fileSize uint64, id3Len uint64) {
	if len(footer) < footerSize || string(footer[:12]) != string(preamble[:]) {
		return
	}

	size := binary.LittleEndian.Uint32(footer[12:16])
	apeSize := uint64(size) + footerSize

	if apeSize+id3Len > fileSize {
		// Footer claims a region larger than the file; not a real tag.
		return
	}

	l.HasAPE = true
	l.APESize = uint32(apeSize)
	l.APEStart = fileSize - id3Len - apeSize
}

func readAt(r io.ReadSeeker, offset int64, buf []byte) error {
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	_, err := io.ReadFull(r, buf)
	return err
}
