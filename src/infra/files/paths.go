package files

import (
	"log/slog"
	"os"
	"strings"

	"github.com/gosimple/unidecode"

	"tagfill/src/music"
)

// ValidDir checks that the path exists and points to a directory.
// Failures are logged, never propagated.
func ValidDir(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		slog.Error("Does not exist", "path", path)
		return false
	}
	if err != nil {
		slog.Error("Cannot stat path", "path", path, "error", err)
		return false
	}
	if !info.IsDir() {
		slog.Error("Not a directory", "path", path)
		return false
	}
	return true
}

// ValidFile checks that the path exists and points to a regular file.
func ValidFile(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		slog.Error("Does not exist", "path", path)
		return false
	}
	if err != nil {
		slog.Error("Cannot stat path", "path", path, "error", err)
		return false
	}
	if !info.Mode().IsRegular() {
		slog.Error("Not a regular file", "path", path)
		return false
	}
	return true
}

// DetectFormat classifies an audio file by its extension. A path that
// is not an existing regular file is always unsupported.
func DetectFormat(path string) music.Format {
	if !ValidFile(path) {
		return music.FormatUnsupported
	}
	format := music.FormatForExtension(path)
	if format == music.FormatUnsupported {
		slog.Warn("File is not supported", "path", path)
	}
	return format
}

// RenderName builds an ASCII-safe "Artist - Title.ext" file name.
func RenderName(artist, title, ext string) string {
	name := unidecode.Unidecode(artist + " - " + title)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	return strings.TrimSpace(name) + ext
}
