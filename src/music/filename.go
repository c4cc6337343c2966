package music

import (
	"path/filepath"
	"strings"
)

// filenameSeparator splits artist from title in file names like
// "Avicii - Levels.m4a". Only the first occurrence counts, so
// "A - B - C.mp3" parses as artist "A", title "B - C".
const filenameSeparator = " - "

// ParseFilename derives (artist, title) from a file name. ok is false
// when the separator does not occur, which callers treat as "skip this
// file entirely".
func ParseFilename(name string) (artist, title string, ok bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	idx := strings.Index(base, filenameSeparator)
	if idx < 0 {
		return "", "", false
	}
	artist = strings.TrimSpace(base[:idx])
	title = strings.TrimSpace(base[idx+len(filenameSeparator):])
	return artist, title, true
}
