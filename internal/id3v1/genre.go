// Package id3v1 decodes and encodes the fixed 128-byte ID3v1/ID3v1.1
// trailer, following the field layout and genre table of the Winamp
// extended genre list.
package id3v1

import "strings"

// genres is the standard 148-entry ID3v1 genre table; a genre byte value
// is an index into it.
var genres = []string{
	"Blues", "Classic Rock", "Country", "Dance", "Disco", "Funk", "Grunge",
	"Hip-Hop", "Jazz", "Metal", "New Age", "Oldies", "Other", "Pop", "R & B",
	"Rap", "Reggae", "Rock", "Techno", "Industrial", "Alternative", "Ska",
	"Death Metal", "Prank", "Soundtrack", "Euro-Techno", "Ambient", "Trip-Hop",
	"Vocal", "Jazz + Funk", "Fusion", "Trance", "Classical", "Instrumental",
	"Acid", "House", "Game", "Sound Clip", "Gospel", "Noise",
	"Alternative Rock", "Bass", "Soul", "Punk", "Space", "Meditative",
	"Instrumental Pop", "Instrumental Rock", "Ethnic", "Gothic", "Darkwave",
	"Techno-Industrial", "Electronic", "Pop-Fol", "Eurodance", "Dream",
	"Southern Rock", "Comedy", "Cult", "Gangsta", "Top 40", "Christian Rap",
	"Pop/Funk", "Jungle", "Native US", "Cabaret", "New Wave", "Psychadelic",
	"Rave", "Showtunes", "Trailer", "Lo-Fi", "Tribal", "Acid Punk",
	"Acid Jazz", "Polka", "Retro", "Musical", "Rock & Roll", "Hard Rock",
	"Folk", "Folk-Rock", "National Folk", "Swing", "Fast Fusion", "Bebop",
	"Latin", "Revival", "Celtic", "Bluegrass", "Avantgarde", "Gothic Rock",
	"Progressive Rock", "Psychedelic Rock", "Symphonic Rock", "Slow Rock",
	"Big Band", "Chorus", "Easy Listening", "Acoustic", "Humour", "Speech",
	"Chanson", "Opera", "Chamber Music", "Sonata", "Symphony", "Booty Bass",
	"Primus", "Porn Groove", "Satire", "Slow Jam", "Club", "Tango", "Samba",
	"Folklore", "Ballad", "Power Ballad", "Rhytmic Soul", "Freestyle", "Duet",
	"Punk Rock", "Drum Solo", "Acapella", "Euro-House", "Dance Hall", "Goa",
	"Drum & Bass", "Club-House", "Hardcore", "Terror", "Indie", "BritPop",
	"Negerpunk", "Polsk Punk", "Beat", "Christian Gangsta Rap", "Heavy Metal",
	"Black Metal", "Crossover", "Contemporary Christian", "Christian Rock",
	"Merengue", "Salsa", "Trash Meta", "Anime", "Jpop", "Synthpop",
}

// noGenre is the byte value meaning "no genre set".
const noGenre = 0xFF

var genreIndex map[string]byte

func init() {
	genreIndex = make(map[string]byte, len(genres))
	for i, name := range genres {
		genreIndex[strings.ToLower(name)] = byte(i)
	}
}

// genreName returns the genre name for b, or "" if b is out of range.
func genreName(b byte) string {
	if int(b) >= len(genres) {
		return ""
	}
	return genres[b]
}

// genreByte looks up name (case-insensitively) in the genre table. ok is
// false if name matches no entry.
func genreByte(name string) (b byte, ok bool) {
	b, ok = genreIndex[strings.ToLower(name)]
	return b, ok
}

// LookupGenre reports whether name (case-insensitively) names a genre in
// the standard table, for callers outside this package that only need
// the membership test.
func LookupGenre(name string) (byte, bool) {
	return genreByte(name)
}
