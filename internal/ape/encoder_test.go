package ape

import (
	"reflect"
	"testing"

	"github.com/apetaglib/apetag/internal/tagerr"
)

func TestEncodeDecodeEmptyTag(t *testing.T) {
	tag := NewTag()
	buf, err := tag.Encode(MaxTagSize)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != 2*headerFooterSize {
		t.Fatalf("len(buf) = %d, want %d", len(buf), 2*headerFooterSize)
	}

	got, err := Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", got.Len())
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tag := NewTag()
	tag.Set(Item{Key: "Track", Type: ItemUTF8, Values: []string{"1"}})
	tag.Set(Item{Key: "Date", Type: ItemUTF8, Values: []string{"2007"}})
	tag.Set(Item{Key: "Comment", Type: ItemUTF8, Values: []string{"XXXX-0000"}})
	tag.Set(Item{Key: "Title", Type: ItemUTF8, Values: []string{"Love Cheese"}})
	tag.Set(Item{Key: "Artist", Type: ItemUTF8, Values: []string{"Test Artist"}})
	tag.Set(Item{Key: "Album", Type: ItemUTF8, Values: []string{"Test Album", "Other Album"}})

	buf, err := tag.Encode(MaxTagSize)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != tag.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), tag.Len())
	}
	for _, want := range tag.Items() {
		item, ok := got.Get(want.Key)
		if !ok {
			t.Fatalf("missing key %q after round trip", want.Key)
		}
		if !reflect.DeepEqual(item, want) {
			t.Fatalf("round trip mismatch for %q: got %+v, want %+v", want.Key, item, want)
		}
	}
}

func TestEncodeItemsSortedByLength(t *testing.T) {
	tag := NewTag()
	tag.Set(Item{Key: "LongKeyName", Type: ItemUTF8, Values: []string{"a value of some length"}})
	tag.Set(Item{Key: "Ab", Type: ItemUTF8, Values: []string{""}})

	buf, err := tag.Encode(MaxTagSize)
	if err != nil {
		t.Fatal(err)
	}

	// The shorter-encoded item ("Ab", two-char key, empty value) must appear
	// before the longer one immediately after the header.
	first, _, err := parseItem(buf, headerFooterSize)
	if err != nil {
		t.Fatal(err)
	}
	if first.Key != "Ab" {
		t.Fatalf("first item after sort = %q, want %q", first.Key, "Ab")
	}
}

func TestEncodeRejectsOversizedTag(t *testing.T) {
	tag := NewTag()
	tag.Set(Item{Key: "Big", Type: ItemBinary, Values: []string{string(make([]byte, 100))}})

	_, err := tag.Encode(64)
	te, ok := err.(*tagerr.Error)
	if !ok || te.Kind != tagerr.TooLarge {
		t.Fatalf("got %v, want TooLarge", err)
	}
}

func TestDecodeRejectsHeaderFooterSizeMismatch(t *testing.T) {
	header := encodeHeaderFooter(32, 0, headerFlagByte)
	footer := encodeHeaderFooter(64, 0, footerFlagByte) // mismatched size
	buf := append(append([]byte(nil), header...), footer...)

	_, err := Decode(buf)
	te, ok := err.(*tagerr.Error)
	if !ok || te.Kind != tagerr.SizeMismatch {
		t.Fatalf("got %v, want SizeMismatch", err)
	}
}

func TestDecodeRejectsItemCountMismatch(t *testing.T) {
	header := encodeHeaderFooter(32, 0, headerFlagByte)
	footer := encodeHeaderFooter(32, 1, footerFlagByte) // mismatched item count
	buf := append(append([]byte(nil), header...), footer...)

	_, err := Decode(buf)
	te, ok := err.(*tagerr.Error)
	if !ok || te.Kind != tagerr.SizeMismatch {
		t.Fatalf("got %v, want SizeMismatch", err)
	}
}

func TestDecodeRejectsTooManyDeclaredItems(t *testing.T) {
	header := encodeHeaderFooter(32, 100, headerFlagByte)
	footer := encodeHeaderFooter(32, 100, footerFlagByte)
	buf := append(append([]byte(nil), header...), footer...)

	_, err := Decode(buf)
	te, ok := err.(*tagerr.Error)
	if !ok || te.Kind != tagerr.TooManyItems {
		t.Fatalf("got %v, want TooManyItems", err)
	}
}

func TestDecodeRejectsDuplicateKey(t *testing.T) {
	a, err := (Item{Key: "Title", Type: ItemUTF8, Values: []string{"a"}}).encode()
	if err != nil {
		t.Fatal(err)
	}
	b, err := (Item{Key: "TITLE", Type: ItemUTF8, Values: []string{"b"}}).encode()
	if err != nil {
		t.Fatal(err)
	}

	itemsTotal := len(a) + len(b)
	size := uint32(headerFooterSize + itemsTotal)
	header := encodeHeaderFooter(size, 2, headerFlagByte)
	footer := encodeHeaderFooter(size, 2, footerFlagByte)

	buf := append(append([]byte(nil), header...), a...)
	buf = append(buf, b...)
	buf = append(buf, footer...)

	_, err = Decode(buf)
	te, ok := err.(*tagerr.Error)
	if !ok || te.Kind != tagerr.DuplicateKey {
		t.Fatalf("got %v, want DuplicateKey", err)
	}
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	tag := NewTag()
	tag.Set(Item{Key: "Title", Type: ItemUTF8, Values: []string{"a"}})
	buf, err := tag.Encode(MaxTagSize)
	if err != nil {
		t.Fatal(err)
	}
	buf = append(buf[:len(buf)-headerFooterSize], append([]byte{0, 0, 0}, buf[len(buf)-headerFooterSize:]...)...)

	_, err = Decode(buf)
	if err == nil {
		t.Fatal("expected an error decoding a tag with extra bytes stuffed before the footer")
	}
}
