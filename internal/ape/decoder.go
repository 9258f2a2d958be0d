package ape

import (
	"github.com/apetaglib/apetag/internal/tagerr"
)

// Decode parses a complete APEv2 region (header, items, footer) and
// returns its items as a Tag. data must be exactly the on-disk region:
// no leading or trailing bytes belonging to the file's audio data or ID3
// trailer.
func Decode(data []byte) (*Tag, error) {
	if len(data) < 2*headerFooterSize {
		return nil, tagerr.Atf(tagerr.MissingHeader, 0, "tag region too short: %d bytes", len(data))
	}

	header, err := parseHeaderFooter(data[:headerFooterSize], 0, headerFlagByte)
	if err != nil {
		return nil, err
	}

	footerOff := len(data) - headerFooterSize
	footer, err := parseHeaderFooter(data[footerOff:], int64(footerOff), footerFlagByte)
	if err != nil {
		return nil, err
	}

	if header.itemCount != footer.itemCount {
		return nil, tagerr.Newf(tagerr.SizeMismatch, "header item count %d does not match footer item count %d", header.itemCount, footer.itemCount)
	}
	if header.size != footer.size {
		return nil, tagerr.Newf(tagerr.SizeMismatch, "header size %d does not match footer size %d", header.size, footer.size)
	}

	itemsEnd := len(data) - headerFooterSize
	// spec.md's bound mirrors the original implementation's literal
	// (len-32)/11, which is looser than the true items-region capacity
	// (len-64)/11; anything it lets through that doesn't actually fit is
	// still caught below by the final curpos/itemsEnd check.
	maxItems := uint32(itemsEnd / minItemSize)
	if header.itemCount > maxItems {
		return nil, tagerr.Newf(tagerr.TooManyItems, "tag declares %d items, only %d fit", header.itemCount, maxItems)
	}

	tag := NewTag()
	curpos := headerFooterSize

	for i := uint32(0); i < header.itemCount; i++ {
		if curpos >= itemsEnd {
			return nil, tagerr.Atf(tagerr.TrailingBytes, int64(curpos), "end of tag reached with %d items left to parse", header.itemCount-i)
		}
		item, next, err := parseItem(data, curpos)
		if err != nil {
			return nil, err
		}
		if err := tag.setNoDuplicate(item); err != nil {
			return nil, err
		}
		curpos = next
	}

	if curpos != itemsEnd {
		return nil, tagerr.Atf(tagerr.TrailingBytes, int64(curpos), "%d bytes left over after parsing declared items", itemsEnd-curpos)
	}

	return tag, nil
}
