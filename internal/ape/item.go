package ape

import (
	"encoding/binary"
	"strings"
	"unicode/utf8"

	"github.com/apetaglib/apetag/internal/tagerr"
)

// ItemType is the 2-bit APEv2 item type (spec.md §3).
type ItemType uint8

const (
	ItemUTF8 ItemType = iota
	ItemBinary
	ItemExternal
	ItemReserved
)

func (t ItemType) String() string {
	switch t {
	case ItemUTF8:
		return "utf8"
	case ItemBinary:
		return "binary"
	case ItemExternal:
		return "external"
	case ItemReserved:
		return "reserved"
	default:
		return "invalid"
	}
}

// Item is a single APEv2 tag field.
//
// For ItemUTF8/ItemExternal, Values holds the field's text values in
// order. For ItemBinary/ItemReserved, a parsed Item always holds exactly
// one element (the raw blob); when building a new Item, supplying more
// than one value concatenates them without a separator (spec.md §3).
type Item struct {
	Key      string
	Type     ItemType
	ReadOnly bool
	Values   []string
}

var forbiddenKeys = map[string]bool{"id": true, "tag": true, "oggs": true, "mp+": true}

// ValidateKey checks key against the key alphabet, length, and forbidden-name
// rules of spec.md §3/§6.
func ValidateKey(key string) error {
	if len(key) < 2 || len(key) > 255 {
		return tagerr.Newf(tagerr.InvalidKey, "key length must be 2-255, got %d", len(key))
	}
	for i := 0; i < len(key); i++ {
		if key[i] < 0x20 || key[i] > 0x7E {
			return tagerr.Newf(tagerr.InvalidKey, "key byte %#x at position %d outside 0x20-0x7E", key[i], i)
		}
	}
	if forbiddenKeys[strings.ToLower(key)] {
		return tagerr.Newf(tagerr.InvalidKey, "key %q is reserved", key)
	}
	return nil
}

// encode returns the on-disk representation of the item:
//
//	value-size(4, LE) ‖ 00 00 00 ‖ flag-byte ‖ key ‖ 00 ‖ value-bytes
func (it Item) encode() ([]byte, error) {
	if err := ValidateKey(it.Key); err != nil {
		return nil, err
	}
	if it.Type > ItemReserved {
		return nil, tagerr.Newf(tagerr.InvalidItemFlags, "invalid item type %d", it.Type)
	}

	var value []byte
	switch it.Type {
	case ItemUTF8, ItemExternal:
		for _, v := range it.Values {
			if !utf8.ValidString(v) {
				return nil, tagerr.Newf(tagerr.InvalidUTF8, "value for key %q is not valid UTF-8", it.Key)
			}
		}
		value = []byte(strings.Join(it.Values, "\x00"))
	default:
		for _, v := range it.Values {
			value = append(value, v...)
		}
	}

	flagByte := byte(it.Type) << 1
	if it.ReadOnly {
		flagByte |= 1
	}

	buf := make([]byte, 8, 8+len(it.Key)+1+len(value))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(value)))
	buf[7] = flagByte
	buf = append(buf, it.Key...)
	buf = append(buf, 0)
	buf = append(buf, value...)
	return buf, nil
}

// parseItem decodes one item from data starting at curpos, returning the
// item and the offset of the byte immediately following it.
func parseItem(data []byte, curpos int) (Item, int, error) {
	if curpos+8 > len(data) {
		return Item{}, 0, tagerr.At(tagerr.TrailingBytes, int64(curpos), "item header runs past end of tag")
	}

	rawSize := int32(binary.LittleEndian.Uint32(data[curpos : curpos+4]))
	if rawSize < 0 {
		return Item{}, 0, tagerr.Atf(tagerr.SizeMismatch, int64(curpos), "invalid item length: %d", rawSize)
	}
	valueSize := int(rawSize)

	if data[curpos+4] != 0 || data[curpos+5] != 0 || data[curpos+6] != 0 {
		return Item{}, 0, tagerr.At(tagerr.InvalidItemFlags, int64(curpos+4), "item flags bits 8-31 nonzero")
	}
	flagByte := data[curpos+7]
	if flagByte > 7 {
		return Item{}, 0, tagerr.Atf(tagerr.InvalidItemFlags, int64(curpos+7), "item flags bits 3-7 nonzero: %#x", flagByte)
	}
	itemType := ItemType(flagByte >> 1)
	readonly := flagByte&1 != 0

	keyStart := curpos + 8
	keyEnd := indexNUL(data, keyStart)
	if keyEnd < keyStart {
		return Item{}, 0, tagerr.At(tagerr.InvalidKey, int64(keyStart), "unterminated item key")
	}
	key := string(data[keyStart:keyEnd])
	if err := ValidateKey(key); err != nil {
		if te, ok := err.(*tagerr.Error); ok {
			te.Offset, te.HasOffset = int64(keyStart), true
		}
		return Item{}, 0, err
	}

	valueStart := keyEnd + 1
	next := valueStart + valueSize
	if next < valueStart || next > len(data) {
		return Item{}, 0, tagerr.Atf(tagerr.SizeMismatch, int64(curpos), "item value (%d bytes) runs past end of tag", valueSize)
	}
	raw := data[valueStart:next]

	item := Item{Key: key, Type: itemType, ReadOnly: readonly}
	switch itemType {
	case ItemUTF8, ItemExternal:
		if !utf8.Valid(raw) {
			return Item{}, 0, tagerr.At(tagerr.InvalidUTF8, int64(valueStart), "invalid UTF-8 in item value")
		}
		item.Values = strings.Split(string(raw), "\x00")
	default:
		item.Values = []string{string(raw)}
	}

	return item, next, nil
}

func indexNUL(data []byte, from int) int {
	for i := from; i < len(data); i++ {
		if data[i] == 0 {
			return i
		}
	}
	return from - 1
}
