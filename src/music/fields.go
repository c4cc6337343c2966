package music

import "strings"

// Field is a single metadata field tracked by the presence bitmask.
type Field uint16

const (
	FieldArtist Field = 1 << iota
	FieldTitle
	FieldAlbum
	FieldAlbumArtist
	FieldTrackNumber
	FieldDiscNumber
	FieldGenre
	FieldYear
	FieldCover
	FieldBPM
)

var fieldNames = []struct {
	field Field
	name  string
}{
	{FieldArtist, "artist"},
	{FieldTitle, "title"},
	{FieldAlbum, "album"},
	{FieldAlbumArtist, "albumartist"},
	{FieldTrackNumber, "track"},
	{FieldDiscNumber, "disc"},
	{FieldGenre, "genre"},
	{FieldYear, "year"},
	{FieldCover, "cover"},
	{FieldBPM, "bpm"},
}

// FieldSet is a presence bitmask over the tracked fields. A bit is set
// iff the field exists in the container and is non-empty/non-zero.
// It is computed fresh per file and never persisted.
type FieldSet uint16

// Has reports whether every field in f is present.
func (s FieldSet) Has(f Field) bool {
	return s&FieldSet(f) == FieldSet(f)
}

// Missing reports whether f is absent.
func (s FieldSet) Missing(f Field) bool {
	return !s.Has(f)
}

// Add returns s with f set.
func (s FieldSet) Add(f Field) FieldSet {
	return s | FieldSet(f)
}

// Union merges two sets.
func (s FieldSet) Union(other FieldSet) FieldSet {
	return s | other
}

func (s FieldSet) String() string {
	var names []string
	for _, fn := range fieldNames {
		if s.Has(fn.field) {
			names = append(names, fn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// MissingString lists the absent fields, for log and scan output.
func (s FieldSet) MissingString() string {
	var names []string
	for _, fn := range fieldNames {
		if s.Missing(fn.field) {
			names = append(names, fn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}
