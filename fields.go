package apetag

import (
	"sort"

	"github.com/apetaglib/apetag/internal/ape"
	"github.com/apetaglib/apetag/internal/id3v1"
)

// ItemType is the 2-bit APEv2 item type.
type ItemType = ape.ItemType

const (
	TypeUTF8     = ape.ItemUTF8
	TypeBinary   = ape.ItemBinary
	TypeExternal = ape.ItemExternal
	TypeReserved = ape.ItemReserved
)

// APEValue is one field's value, type, and flags within an APEFields map;
// the map key is the field's name.
type APEValue struct {
	Type     ItemType
	ReadOnly bool
	Values   []string
}

// APEFields is the caller-facing form of an APEv2 tag's contents: field
// name to value, in no particular order (the on-disk item order is an
// internal serialization detail).
type APEFields map[string]APEValue

// ID3Fields is the caller-facing form of an ID3v1.1 trailer's contents.
type ID3Fields = id3v1.Fields

// tagFromFields builds a Tag from fields. Keys are processed in sorted
// order rather than fields' own (randomized) map iteration order: Tag.Set
// already collapses keys that share a lowercased spelling to one item, so
// without a fixed processing order, a caller-constructed map containing
// e.g. both "Title" and "TITLE" would resolve to whichever one the Go
// runtime happened to visit last.
func tagFromFields(fields APEFields) (*ape.Tag, error) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tag := ape.NewTag()
	for _, key := range keys {
		if err := ape.ValidateKey(key); err != nil {
			return nil, err
		}
		v := fields[key]
		tag.Set(ape.Item{Key: key, Type: v.Type, ReadOnly: v.ReadOnly, Values: v.Values})
	}
	return tag, nil
}

func fieldsFromTag(tag *ape.Tag) APEFields {
	fields := make(APEFields, tag.Len())
	for _, it := range tag.Items() {
		fields[it.Key] = APEValue{Type: it.Type, ReadOnly: it.ReadOnly, Values: it.Values}
	}
	return fields
}
