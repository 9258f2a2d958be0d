package ape

import (
	"sort"

	"github.com/apetaglib/apetag/internal/tagerr"
)

// Encode serializes the tag's items into a complete APEv2 region (header,
// items, footer), rejecting the result if it would exceed maxSize bytes.
// Items are emitted in ascending order of their encoded length, a
// convention inherited unchanged from the original implementation; it has
// no behavioral significance to a reader, only to byte-for-byte
// reproducibility of existing tags.
func (t *Tag) Encode(maxSize uint32) ([]byte, error) {
	items := t.Items()
	encoded := make([][]byte, len(items))
	for i, it := range items {
		b, err := it.encode()
		if err != nil {
			return nil, err
		}
		encoded[i] = b
	}

	sort.SliceStable(encoded, func(i, j int) bool {
		return len(encoded[i]) < len(encoded[j])
	})

	itemsTotal := 0
	for _, b := range encoded {
		itemsTotal += len(b)
	}

	size := uint32(headerFooterSize + itemsTotal)
	total := uint32(headerFooterSize) + size
	if total > maxSize {
		return nil, tagerr.Newf(tagerr.TooLarge, "tag would be %d bytes, exceeds limit of %d", total, maxSize)
	}

	numItems := uint32(len(items))
	out := make([]byte, 0, total)
	out = append(out, encodeHeaderFooter(size, numItems, headerFlagByte)...)
	for _, b := range encoded {
		out = append(out, b...)
	}
	out = append(out, encodeHeaderFooter(size, numItems, footerFlagByte)...)

	return out, nil
}
