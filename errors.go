// Package apetag reads, writes, updates, and deletes APEv2 tags, with an
// optional co-resident ID3v1.1 trailer, at the tail of a seekable file.
package apetag

import "github.com/apetaglib/apetag/internal/tagerr"

// Kind classifies a TagError.
type Kind = tagerr.Kind

// TagError is the single error type this package raises. I/O errors
// surfaced from the caller's file are wrapped in a TagError with Kind
// IoFailure so callers can branch on one type.
type TagError = tagerr.Error

const (
	IoFailure          = tagerr.IoFailure
	InvalidUTF8        = tagerr.InvalidUTF8
	InvalidKey         = tagerr.InvalidKey
	InvalidItemFlags   = tagerr.InvalidItemFlags
	InvalidFooterFlags = tagerr.InvalidFooterFlags
	MissingHeader      = tagerr.MissingHeader
	SizeMismatch       = tagerr.SizeMismatch
	TooLarge           = tagerr.TooLarge
	TooManyItems       = tagerr.TooManyItems
	DuplicateKey       = tagerr.DuplicateKey
	TrailingBytes      = tagerr.TrailingBytes
	TagMissing         = tagerr.TagMissing
	BadArgument        = tagerr.BadArgument
)
