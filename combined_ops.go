package apetag

import "github.com/apetaglib/apetag/internal/tagerr"

// RawTags holds the raw on-disk bytes of whichever of the two tags a
// file has.
type RawTags struct {
	APE    []byte
	HasAPE bool
	ID3    []byte
	HasID3 bool
}

// TagFields holds the parsed contents of whichever of the two tags a
// file has.
type TagFields struct {
	APE    APEFields
	HasAPE bool
	ID3    ID3Fields
	HasID3 bool
}

// HasTags reports whether f has an APE tag, an ID3 trailer, or both.
func HasTags(f File) (hasAPE, hasID3 bool, err error) {
	layout, err := locate(f)
	if err != nil {
		return false, false, err
	}
	return layout.HasAPE, layout.HasID3, nil
}

// GetRawTags returns the raw bytes of whichever tags f has.
func GetRawTags(f File) (RawTags, error) {
	layout, err := locate(f)
	if err != nil {
		return RawTags{}, err
	}
	var out RawTags
	if layout.HasAPE {
		raw, err := readRegion(f, int64(layout.APEStart), int(layout.APESize))
		if err != nil {
			return RawTags{}, err
		}
		out.APE, out.HasAPE = raw, true
	}
	if layout.HasID3 {
		out.ID3, out.HasID3 = layout.ID3Raw, true
	}
	return out, nil
}

// GetTagFields returns the parsed contents of whichever tags f has.
func GetTagFields(f File) (TagFields, error) {
	layout, err := locate(f)
	if err != nil {
		return TagFields{}, err
	}
	var out TagFields
	apeTag, _, err := readAPE(f, layout)
	if err != nil {
		return TagFields{}, err
	}
	if apeTag != nil {
		out.APE, out.HasAPE = fieldsFromTag(apeTag), true
	}
	id3Fields, _, err := readID3(f, layout)
	if err != nil {
		return TagFields{}, err
	}
	if id3Fields != nil {
		out.ID3, out.HasID3 = *id3Fields, true
	}
	return out, nil
}

// CreateTags merges fields into f's existing APE tag (if any), writes
// it, and replaces f's ID3 trailer with fields converted to ID3 form.
func CreateTags(f File, fields APEFields, opts ...Option) (APEFields, error) {
	return writeTags(f, fields, nil, false, opts)
}

// UpdateTags is like CreateTags, but fails with TagMissing if f has no
// existing APE tag. remove names fields to drop from the merged result.
func UpdateTags(f File, fields APEFields, remove []string, opts ...Option) (APEFields, error) {
	return writeTags(f, fields, remove, true, opts)
}

// ReplaceTags writes fields as a brand new APE tag and a matching ID3
// trailer, discarding any existing tags entirely.
func ReplaceTags(f File, fields APEFields, opts ...Option) (APEFields, error) {
	cfg := newConfig(opts)
	layout, err := locate(f)
	if err != nil {
		return nil, err
	}

	tag, err := tagFromFields(fields)
	if err != nil {
		return nil, err
	}
	newAPE, err := tag.Encode(cfg.maxAPESize)
	if err != nil {
		return nil, err
	}
	newID3, err := apeFieldsToID3Fields(fields).Encode()
	if err != nil {
		return nil, err
	}

	if err := rewriteTail(f, layout, newAPE, newID3); err != nil {
		return nil, err
	}
	return fieldsFromTag(tag), nil
}

// DeleteTags removes both f's APE tag and its ID3 trailer, if present.
// It is a no-op, leaving the file byte-identical, when neither is
// present.
func DeleteTags(f File) error {
	layout, err := locate(f)
	if err != nil {
		return err
	}
	if !layout.HasAPE && !layout.HasID3 {
		return nil
	}
	return rewriteTail(f, layout, nil, nil)
}

// ModifyTags applies apeCallback to f's existing APE fields (an empty
// APEFields if absent) and id3Callback to f's existing ID3 fields (a
// zero-value ID3Fields if absent), independently, and writes back both
// results in a single rewrite.
func ModifyTags(f File, apeCallback func(APEFields) APEFields, id3Callback func(ID3Fields) ID3Fields, opts ...Option) (APEFields, ID3Fields, error) {
	cfg := newConfig(opts)
	layout, err := locate(f)
	if err != nil {
		return nil, ID3Fields{}, err
	}

	existingAPE, _, err := readAPE(f, layout)
	if err != nil {
		return nil, ID3Fields{}, err
	}
	currentAPE := APEFields{}
	if existingAPE != nil {
		currentAPE = fieldsFromTag(existingAPE)
	}
	nextAPEFields := apeCallback(currentAPE)
	nextAPE, err := tagFromFields(nextAPEFields)
	if err != nil {
		return nil, ID3Fields{}, err
	}
	newAPE, err := nextAPE.Encode(cfg.maxAPESize)
	if err != nil {
		return nil, ID3Fields{}, err
	}

	existingID3, _, err := readID3(f, layout)
	if err != nil {
		return nil, ID3Fields{}, err
	}
	var currentID3 ID3Fields
	if existingID3 != nil {
		currentID3 = *existingID3
	}
	nextID3Fields := id3Callback(currentID3)
	newID3, err := nextID3Fields.Encode()
	if err != nil {
		return nil, ID3Fields{}, err
	}

	if err := rewriteTail(f, layout, newAPE, newID3); err != nil {
		return nil, ID3Fields{}, err
	}
	return fieldsFromTag(nextAPE), nextID3Fields, nil
}

func writeTags(f File, fields APEFields, remove []string, mustExist bool, opts []Option) (APEFields, error) {
	cfg := newConfig(opts)
	layout, err := locate(f)
	if err != nil {
		return nil, err
	}
	existing, _, err := readAPE(f, layout)
	if err != nil {
		return nil, err
	}
	if mustExist && existing == nil {
		return nil, tagerr.New(tagerr.TagMissing, "no APE tag present to update")
	}

	var merged APEFields
	if existing != nil {
		merged = mergeFields(fieldsFromTag(existing), fields, remove)
	} else {
		merged = mergeFields(APEFields{}, fields, remove)
	}

	tag, err := tagFromFields(merged)
	if err != nil {
		return nil, err
	}
	newAPE, err := tag.Encode(cfg.maxAPESize)
	if err != nil {
		return nil, err
	}
	newID3, err := apeFieldsToID3Fields(merged).Encode()
	if err != nil {
		return nil, err
	}
	if err := rewriteTail(f, layout, newAPE, newID3); err != nil {
		return nil, err
	}
	return fieldsFromTag(tag), nil
}
