package id3v1

import (
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/apetaglib/apetag/internal/tagerr"
)

const (
	tagSize = 128

	titleOffset, titleLen     = 3, 30
	artistOffset, artistLen   = 33, 30
	albumOffset, albumLen     = 63, 30
	yearOffset, yearLen       = 93, 4
	commentOffset, commentLen = 97, 28
	zeroByteOffset            = 125
	trackOffset               = 126
	genreOffset               = 127
)

// Fields is the decoded content of a 128-byte ID3v1/ID3v1.1 trailer.
type Fields struct {
	Title, Artist, Album, Year, Comment string
	Track                               int    // 0 when absent, including any ID3v1.0 trailer
	Genre                               string // "" when unset or the genre byte is out of range
}

// Decode parses a 128-byte ID3v1 trailer. It recognizes the ID3v1.0/1.1
// distinction by inspecting the reserved zero byte that precedes the
// track number: when nonzero, the trailer predates the track field and
// Track is reported as 0.
func Decode(data []byte) (*Fields, error) {
	if len(data) != tagSize {
		return nil, tagerr.Newf(tagerr.BadArgument, "id3v1 tag must be exactly %d bytes, got %d", tagSize, len(data))
	}
	if string(data[:3]) != "TAG" {
		return nil, tagerr.New(tagerr.TagMissing, `missing "TAG" identifier`)
	}

	f := &Fields{}
	var err error
	if f.Title, err = decodeText(data[titleOffset : titleOffset+titleLen]); err != nil {
		return nil, err
	}
	if f.Artist, err = decodeText(data[artistOffset : artistOffset+artistLen]); err != nil {
		return nil, err
	}
	if f.Album, err = decodeText(data[albumOffset : albumOffset+albumLen]); err != nil {
		return nil, err
	}
	if f.Year, err = decodeText(data[yearOffset : yearOffset+yearLen]); err != nil {
		return nil, err
	}
	if f.Comment, err = decodeText(data[commentOffset : commentOffset+commentLen]); err != nil {
		return nil, err
	}

	if data[zeroByteOffset] == 0 {
		f.Track = int(data[trackOffset])
	}

	f.Genre = genreName(data[genreOffset])

	return f, nil
}

// Encode serializes f into a 128-byte ID3v1.1 trailer. A Track of 0
// writes the reserved zero byte as 0x00 with no track number, matching
// an absent track; the library never writes a pre-1.1 trailer.
func (f *Fields) Encode() ([]byte, error) {
	buf := make([]byte, tagSize)
	copy(buf[:3], "TAG")

	if err := encodeText(buf[titleOffset:titleOffset+titleLen], f.Title); err != nil {
		return nil, err
	}
	if err := encodeText(buf[artistOffset:artistOffset+artistLen], f.Artist); err != nil {
		return nil, err
	}
	if err := encodeText(buf[albumOffset:albumOffset+albumLen], f.Album); err != nil {
		return nil, err
	}
	if err := encodeText(buf[yearOffset:yearOffset+yearLen], f.Year); err != nil {
		return nil, err
	}
	if err := encodeText(buf[commentOffset:commentOffset+commentLen], f.Comment); err != nil {
		return nil, err
	}

	switch {
	case f.Track == 0:
		buf[trackOffset] = 0
	case f.Track < 0 || f.Track > 255:
		return nil, tagerr.Newf(tagerr.BadArgument, "track %d out of range 0-255", f.Track)
	default:
		buf[trackOffset] = byte(f.Track)
	}
	buf[zeroByteOffset] = 0

	if f.Genre == "" {
		buf[genreOffset] = noGenre
	} else if b, ok := genreByte(f.Genre); ok {
		buf[genreOffset] = b
	} else {
		return nil, tagerr.Newf(tagerr.BadArgument, "unrecognized genre %q", f.Genre)
	}

	return buf, nil
}

func decodeText(raw []byte) (string, error) {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", tagerr.IO(err)
	}
	return strings.TrimRight(string(s), "\x00"), nil
}

func encodeText(dst []byte, s string) error {
	enc, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return tagerr.Newf(tagerr.BadArgument, "value %q is not representable in Latin-1", s)
	}
	n := copy(dst, enc)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
	return nil
}
