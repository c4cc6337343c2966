// Package tag implements the music.TagStore interface for the two
// supported containers: ID3v2 frames for MP3 (bogem/id3v2) and MP4
// atoms for M4A (Sorrow446/go-mp4tag).
package tag

import (
	"fmt"

	"tagfill/src/infra/files"
	"tagfill/src/music"
)

// Opener selects the format-specific store for a path.
type Opener struct{}

// NewOpener creates a new store opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open returns a TagStore for the file. Unsupported paths (missing,
// not a regular file, unknown extension) yield ErrUnsupportedFormat.
func (o *Opener) Open(path string) (music.TagStore, error) {
	switch files.DetectFormat(path) {
	case music.FormatMP3:
		return openMP3(path)
	case music.FormatM4A:
		return openM4A(path)
	default:
		return nil, fmt.Errorf("%w: %s", music.ErrUnsupportedFormat, path)
	}
}
