package apetag

import "github.com/apetaglib/apetag/internal/tagerr"

// HasAPE reports whether f has an APEv2 tag.
func HasAPE(f File) (bool, error) {
	layout, err := locate(f)
	if err != nil {
		return false, err
	}
	return layout.HasAPE, nil
}

// GetRawAPE returns the on-disk bytes of f's APE region (header, items,
// and footer). ok is false if f has no APE tag.
func GetRawAPE(f File) (data []byte, ok bool, err error) {
	layout, err := locate(f)
	if err != nil {
		return nil, false, err
	}
	if !layout.HasAPE {
		return nil, false, nil
	}
	raw, err := readRegion(f, int64(layout.APEStart), int(layout.APESize))
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

// GetAPEFields returns the parsed contents of f's APE tag. ok is false
// if f has no APE tag.
func GetAPEFields(f File) (fields APEFields, ok bool, err error) {
	layout, err := locate(f)
	if err != nil {
		return nil, false, err
	}
	tag, _, err := readAPE(f, layout)
	if err != nil {
		return nil, false, err
	}
	if tag == nil {
		return nil, false, nil
	}
	return fieldsFromTag(tag), true, nil
}

// GetNewRawAPE builds the bytes that CreateAPE(f, fields, opts...) would
// write, without writing them.
func GetNewRawAPE(f File, fields APEFields, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	layout, err := locate(f)
	if err != nil {
		return nil, err
	}
	existing, _, err := readAPE(f, layout)
	if err != nil {
		return nil, err
	}
	merged := fields
	if existing != nil {
		merged = mergeFields(fieldsFromTag(existing), fields, nil)
	}
	tag, err := tagFromFields(merged)
	if err != nil {
		return nil, err
	}
	return tag.Encode(cfg.maxAPESize)
}

// CreateAPE merges fields into f's existing APE tag (if any) and writes
// the result, returning the tag's full contents after the merge.
func CreateAPE(f File, fields APEFields, opts ...Option) (APEFields, error) {
	return writeAPE(f, fields, nil, false, opts)
}

// UpdateAPE is like CreateAPE, but fails with TagMissing if f has no
// existing APE tag. remove names fields to drop from the merged result.
func UpdateAPE(f File, fields APEFields, remove []string, opts ...Option) (APEFields, error) {
	return writeAPE(f, fields, remove, true, opts)
}

// ReplaceAPE writes fields as a brand new APE tag, discarding any
// existing one entirely.
func ReplaceAPE(f File, fields APEFields, opts ...Option) (APEFields, error) {
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
	_, oldID3Raw, err := readID3(f, layout)
	if err != nil {
		return nil, err
	}
	if err := rewriteTail(f, layout, newAPE, oldID3Raw); err != nil {
		return nil, err
	}
	return fieldsFromTag(tag), nil
}

// DeleteAPE removes f's APE tag, if any. It is a no-op, leaving the file
// byte-identical, when no APE tag is present.
func DeleteAPE(f File) error {
	layout, err := locate(f)
	if err != nil {
		return err
	}
	if !layout.HasAPE {
		return nil
	}
	_, oldID3Raw, err := readID3(f, layout)
	if err != nil {
		return err
	}
	return rewriteTail(f, layout, nil, oldID3Raw)
}

// ModifyAPE reads f's existing APE fields (an empty APEFields if absent),
// passes them to callback, and writes back whatever callback returns.
func ModifyAPE(f File, callback func(APEFields) APEFields, opts ...Option) (APEFields, error) {
	cfg := newConfig(opts)
	layout, err := locate(f)
	if err != nil {
		return nil, err
	}
	existing, _, err := readAPE(f, layout)
	if err != nil {
		return nil, err
	}
	current := APEFields{}
	if existing != nil {
		current = fieldsFromTag(existing)
	}

	next := callback(current)
	tag, err := tagFromFields(next)
	if err != nil {
		return nil, err
	}
	newAPE, err := tag.Encode(cfg.maxAPESize)
	if err != nil {
		return nil, err
	}
	_, oldID3Raw, err := readID3(f, layout)
	if err != nil {
		return nil, err
	}
	if err := rewriteTail(f, layout, newAPE, oldID3Raw); err != nil {
		return nil, err
	}
	return fieldsFromTag(tag), nil
}

func writeAPE(f File, fields APEFields, remove []string, mustExist bool, opts []Option) (APEFields, error) {
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
	_, oldID3Raw, err := readID3(f, layout)
	if err != nil {
		return nil, err
	}
	if err := rewriteTail(f, layout, newAPE, oldID3Raw); err != nil {
		return nil, err
	}
	return fieldsFromTag(tag), nil
}
