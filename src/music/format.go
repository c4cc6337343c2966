package music

import (
	"path/filepath"
	"strings"
)

// Format identifies the audio container of a file.
type Format int

const (
	FormatUnsupported Format = iota
	FormatMP3
	FormatM4A
)

func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "mp3"
	case FormatM4A:
		return "m4a"
	default:
		return "unsupported"
	}
}

// FormatForExtension classifies a path purely by its extension,
// case-insensitively. It does not touch the filesystem.
func FormatForExtension(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return FormatMP3
	case ".m4a":
		return FormatM4A
	default:
		return FormatUnsupported
	}
}
