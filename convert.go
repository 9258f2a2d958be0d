package apetag

import (
	"sort"
	"strconv"
	"strings"

	"github.com/apetaglib/apetag/internal/id3v1"
)

// apeFieldsToID3Fields derives an ID3v1.1 record from APE fields. The
// conversion is best-effort and lossy: fields with no ID3 analogue are
// discarded, and any field that fails to coerce is left at its zero
// value rather than failing the whole conversion.
func apeFieldsToID3Fields(fields APEFields) ID3Fields {
	byLower := make(map[string]APEValue, len(fields))
	for k, v := range fields {
		byLower[strings.ToLower(k)] = v
	}

	var out ID3Fields
	out.Title = joinField(byLower, "title")
	out.Artist = joinField(byLower, "artist")
	out.Album = joinField(byLower, "album")
	out.Comment = joinField(byLower, "comment")

	if v, ok := byLower["year"]; ok {
		out.Year = joinValues(v.Values)
	} else if v, ok := byLower["date"]; ok {
		out.Year = firstYear(joinValues(v.Values))
	}

	if v, ok := byLower["track"]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(joinValues(v.Values))); err == nil && n >= 0 && n <= 255 {
			out.Track = n
		}
	} else {
		var candidates []string
		for k := range byLower {
			if strings.HasPrefix(k, "track") {
				candidates = append(candidates, k)
			}
		}
		sort.Strings(candidates)
		for _, k := range candidates {
			if n, err := strconv.Atoi(strings.TrimSpace(joinValues(byLower[k].Values))); err == nil && n >= 0 && n <= 255 {
				out.Track = n
				break
			}
		}
	}

	if v, ok := byLower["genre"]; ok {
		name := joinValues(v.Values)
		if _, recognized := id3v1.LookupGenre(name); recognized {
			out.Genre = name
		}
	}

	return out
}

func joinField(byLower map[string]APEValue, key string) string {
	v, ok := byLower[key]
	if !ok {
		return ""
	}
	return joinValues(v.Values)
}

func joinValues(values []string) string {
	return strings.Join(values, ", ")
}

// firstYear extracts the first run of four ASCII digits in s, or "" if
// there is none.
func firstYear(s string) string {
	for i := 0; i+4 <= len(s); i++ {
		if isDigits(s[i : i+4]) {
			return s[i : i+4]
		}
	}
	return ""
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
