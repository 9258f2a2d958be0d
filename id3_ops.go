package apetag

import "github.com/apetaglib/apetag/internal/tagerr"

// HasID3 reports whether f has an ID3v1.1 trailer.
func HasID3(f File) (bool, error) {
	layout, err := locate(f)
	if err != nil {
		return false, err
	}
	return layout.HasID3, nil
}

// GetRawID3 returns the 128 on-disk bytes of f's ID3 trailer. ok is
// false if f has no ID3 trailer.
func GetRawID3(f File) (data []byte, ok bool, err error) {
	layout, err := locate(f)
	if err != nil {
		return nil, false, err
	}
	if !layout.HasID3 {
		return nil, false, nil
	}
	return layout.ID3Raw, true, nil
}

// GetID3Fields returns the parsed contents of f's ID3 trailer. ok is
// false if f has no ID3 trailer.
func GetID3Fields(f File) (fields *ID3Fields, ok bool, err error) {
	layout, err := locate(f)
	if err != nil {
		return nil, false, err
	}
	parsed, _, err := readID3(f, layout)
	if err != nil {
		return nil, false, err
	}
	if parsed == nil {
		return nil, false, nil
	}
	return parsed, true, nil
}

// CreateID3 writes fields as f's ID3 trailer, leaving any existing APE
// tag untouched.
func CreateID3(f File, fields ID3Fields) (ID3Fields, error) {
	return writeID3(f, fields, false)
}

// UpdateID3 is like CreateID3, but fails with TagMissing if f has no
// existing ID3 trailer.
func UpdateID3(f File, fields ID3Fields) (ID3Fields, error) {
	return writeID3(f, fields, true)
}

// ReplaceID3 writes fields as f's ID3 trailer. For this codec, whose
// fields are a fixed-width fixed-field record, Replace and Create are
// equivalent: there is no partial-field merge to differ on.
func ReplaceID3(f File, fields ID3Fields) (ID3Fields, error) {
	return writeID3(f, fields, false)
}

// DeleteID3 removes f's ID3 trailer, if any, leaving any APE tag intact.
// It is a no-op, leaving the file byte-identical, when no ID3 trailer is
// present.
func DeleteID3(f File) error {
	layout, err := locate(f)
	if err != nil {
		return err
	}
	if !layout.HasID3 {
		return nil
	}
	_, oldAPERaw, err := readAPE(f, layout)
	if err != nil {
		return err
	}
	return rewriteTail(f, layout, oldAPERaw, nil)
}

// ModifyID3 reads f's existing ID3 fields (a zero-value ID3Fields if
// absent), passes them to callback, and writes back whatever callback
// returns.
func ModifyID3(f File, callback func(ID3Fields) ID3Fields) (ID3Fields, error) {
	layout, err := locate(f)
	if err != nil {
		return ID3Fields{}, err
	}
	existing, _, err := readID3(f, layout)
	if err != nil {
		return ID3Fields{}, err
	}
	var current ID3Fields
	if existing != nil {
		current = *existing
	}

	next := callback(current)
	newID3, err := next.Encode()
	if err != nil {
		return ID3Fields{}, err
	}
	_, oldAPERaw, err := readAPE(f, layout)
	if err != nil {
		return ID3Fields{}, err
	}
	if err := rewriteTail(f, layout, oldAPERaw, newID3); err != nil {
		return ID3Fields{}, err
	}
	return next, nil
}

func writeID3(f File, fields ID3Fields, mustExist bool) (ID3Fields, error) {
	layout, err := locate(f)
	if err != nil {
		return ID3Fields{}, err
	}
	if mustExist && !layout.HasID3 {
		return ID3Fields{}, tagerr.New(tagerr.TagMissing, "no ID3 tag present to update")
	}

	newID3, err := fields.Encode()
	if err != nil {
		return ID3Fields{}, err
	}
	_, oldAPERaw, err := readAPE(f, layout)
	if err != nil {
		return ID3Fields{}, err
	}
	if err := rewriteTail(f, layout, oldAPERaw, newID3); err != nil {
		return ID3Fields{}, err
	}
	return fields, nil
}
