package music

import "errors"

// ErrUnsupportedFormat reports a path that is not one of the two
// supported audio containers.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// TrackTags carries resolved field values to be written in one save.
// Zero values mean "leave the field alone": absent fields are only ever
// filled, never cleared.
type TrackTags struct {
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	TrackNumber int
	DiscNumber  int
	Genre       string
	Year        int
}

// IsZero reports whether a write would be a no-op.
func (t TrackTags) IsZero() bool {
	return t == TrackTags{}
}

// TagStore is the in-memory representation of one file's embedded
// metadata. The two container formats implement it with their own
// field vocabularies (ID3 frames vs. MP4 atoms). A store is opened,
// mutated and saved within the scope of processing a single file.
type TagStore interface {
	// Presence returns the bitmask of fields that are set and
	// non-empty/non-zero, excluding cover and tempo which have
	// dedicated accessors.
	Presence() FieldSet
	// TrackNumber returns the stored track number, false when the tag
	// is absent or unparsable.
	TrackNumber() (int, bool)
	// Tempo returns the stored beats-per-minute, false when the tag is
	// absent, unparsable or not strictly positive.
	Tempo() (int, bool)
	// HasCover reports whether at least one picture is embedded.
	HasCover() bool
	// WriteTags applies every non-zero field of tags and saves. All
	// in-memory mutations happen before the single save.
	WriteTags(tags TrackTags) error
	// WriteTempo replaces any prior tempo value and saves.
	WriteTempo(bpm int) error
	// WriteCover replaces any embedded picture with the given image
	// data and saves.
	WriteCover(data []byte, mime string) error
	// Close releases the underlying file without saving.
	Close() error
}

// StoreOpener selects and opens the format-specific TagStore for a path.
type StoreOpener interface {
	// Open returns a TagStore for the file, or an error when the path
	// is not a supported audio file.
	Open(path string) (TagStore, error)
}
