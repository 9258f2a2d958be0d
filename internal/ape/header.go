package ape

import (
	"encoding/binary"

	"github.com/apetaglib/apetag/internal/tagerr"
)

// Preamble is the fixed 12-byte APEv2 recognition signature: the 8-byte
// ASCII string "APETAGEX" followed by the little-endian version 2000.
var Preamble = [12]byte{'A', 'P', 'E', 'T', 'A', 'G', 'E', 'X', 0xD0, 0x07, 0x00, 0x00}

const (
	version = 2000

	// headerFooterSize is the fixed 32-byte size of a header or footer block.
	headerFooterSize = 32

	// minItemSize is the minimum possible encoded size of a single item
	// (4-byte size + 4-byte flags + 2-byte key + NUL + 0-byte value).
	minItemSize = 11

	// MaxTagSize is the default cap on a whole APE region (header+items+footer).
	MaxTagSize = 8192

	footerFlagByte = 0x80
	headerFlagByte = 0xA0
)

// headerFooter is the decoded form of either the 32-byte header or the
// 32-byte footer; their layouts are identical apart from the flag byte
// that distinguishes them.
type headerFooter struct {
	size      uint32 // bytes from end-of-header to end-of-footer
	itemCount uint32
	hasHeader bool // low-order flag bit: tag contains both header and footer
}

// parseHeaderFooter validates the preamble and flag bytes of a 32-byte
// header or footer block read from absolute file/byte offset off (used
// only for error reporting), and requires the tag/footer distinguishing
// byte to equal wantFlagByte.
func parseHeaderFooter(data []byte, off int64, wantFlagByte byte) (headerFooter, error) {
	if len(data) < headerFooterSize {
		return headerFooter{}, tagerr.Atf(tagerr.MissingHeader, off, "short header/footer: %d bytes", len(data))
	}

	if string(data[:8]) != string(Preamble[:8]) || binary.LittleEndian.Uint32(data[8:12]) != version {
		return headerFooter{}, tagerr.At(tagerr.MissingHeader, off, "preamble not recognized")
	}

	flagByte0 := data[20]
	flagByte1 := data[21]
	flagByte2 := data[22]
	flagByte3 := data[23]

	if flagByte0 > 1 {
		return headerFooter{}, tagerr.Atf(tagerr.InvalidFooterFlags, off+20, "tag flags low byte must be 0 or 1, got %#x", flagByte0)
	}
	if flagByte1 != 0 || flagByte2 != 0 {
		return headerFooter{}, tagerr.At(tagerr.InvalidFooterFlags, off+21, "tag flags middle bytes must be zero")
	}
	if flagByte3 != wantFlagByte {
		return headerFooter{}, tagerr.Atf(tagerr.InvalidFooterFlags, off+23, "bad tag flags: expected %#x, got %#x", wantFlagByte, flagByte3)
	}

	return headerFooter{
		size:      binary.LittleEndian.Uint32(data[12:16]),
		itemCount: binary.LittleEndian.Uint32(data[16:20]),
		hasHeader: flagByte0 == 1,
	}, nil
}

// encodeHeaderFooter emits a 32-byte header or footer block.
func encodeHeaderFooter(size, itemCount uint32, flagByte byte) []byte {
	buf := make([]byte, headerFooterSize)
	copy(buf[:8], Preamble[:8])
	binary.LittleEndian.PutUint32(buf[8:12], version)
	binary.LittleEndian.PutUint32(buf[12:16], size)
	binary.LittleEndian.PutUint32(buf[16:20], itemCount)
	// Byte 20 ("has header") is always emitted as 0x00: the writer always
	// produces both a header and a footer, but the original implementation
	// never sets this bit, and spec.md keeps that for bug-compatibility
	// with its test vectors (see DESIGN.md "Open Question decisions").
	buf[20] = 0x00
	buf[23] = flagByte
	return buf
}
