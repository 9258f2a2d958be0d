package ape

import (
	"strings"

	"github.com/apetaglib/apetag/internal/tagerr"
)

// Tag is an ordered, case-insensitively-keyed collection of Items. Lookup
// and storage key on the lowercased key, but each stored Item retains its
// own original-case Key, mirroring the original implementation's
// lowercased-dict-plus-case-restore behavior.
type Tag struct {
	order []string // lowercased keys, insertion order
	items map[string]Item
}

// NewTag returns an empty Tag.
func NewTag() *Tag {
	return &Tag{items: make(map[string]Item)}
}

// Len reports the number of items in the tag.
func (t *Tag) Len() int { return len(t.order) }

// Get looks up an item by key, case-insensitively.
func (t *Tag) Get(key string) (Item, bool) {
	it, ok := t.items[strings.ToLower(key)]
	return it, ok
}

// Set adds it, or replaces the existing item sharing its lowercased key.
// Replacing an item keeps its original position in iteration order.
func (t *Tag) Set(it Item) {
	lk := strings.ToLower(it.Key)
	if _, exists := t.items[lk]; !exists {
		t.order = append(t.order, lk)
	}
	t.items[lk] = it
}

// Delete removes the item matching key, case-insensitively, and reports
// whether one was present.
func (t *Tag) Delete(key string) bool {
	lk := strings.ToLower(key)
	if _, ok := t.items[lk]; !ok {
		return false
	}
	delete(t.items, lk)
	for i, k := range t.order {
		if k == lk {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// Items returns the tag's items in insertion order, each with its Key in
// its original case.
func (t *Tag) Items() []Item {
	out := make([]Item, 0, len(t.order))
	for _, lk := range t.order {
		out = append(out, t.items[lk])
	}
	return out
}

// setNoDuplicate is Decode's variant of Set: it refuses to clobber an
// existing key, since a well-formed tag never repeats one.
func (t *Tag) setNoDuplicate(it Item) error {
	lk := strings.ToLower(it.Key)
	if _, exists := t.items[lk]; exists {
		return tagerr.Newf(tagerr.DuplicateKey, "duplicate item key %q", lk)
	}
	t.order = append(t.order, lk)
	t.items[lk] = it
	return nil
}
