package tag

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"

	"tagfill/src/music"
)

// Reader inspects files with the format-agnostic dhowden/tag parser.
// It never mutates a file.
type Reader struct{}

// NewReader creates a new read-only inspector.
func NewReader() *Reader {
	return &Reader{}
}

// ReadSummary reads the current tags of a supported audio file.
func (r *Reader) ReadSummary(path string) (*music.TrackSummary, error) {
	format := music.FormatForExtension(path)
	if format == music.FormatUnsupported {
		return nil, fmt.Errorf("%w: %s", music.ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	trackNumber, _ := meta.Track()
	discNumber, _ := meta.Disc()

	return &music.TrackSummary{
		Path:        path,
		Format:      format,
		Title:       meta.Title(),
		Artist:      meta.Artist(),
		Album:       meta.Album(),
		AlbumArtist: meta.AlbumArtist(),
		Genre:       meta.Genre(),
		TrackNumber: trackNumber,
		DiscNumber:  discNumber,
		Year:        meta.Year(),
		HasCover:    meta.Picture() != nil,
		BPM:         rawBPM(meta),
	}, nil
}

// rawBPM digs the tempo out of the raw tag map; dhowden/tag has no
// accessor for it. Unparsable values count as absent.
func rawBPM(meta tag.Metadata) int {
	raw := meta.Raw()
	if raw == nil {
		return 0
	}
	for _, key := range []string{"TBPM", "tmpo"} {
		value, ok := raw[key]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			var bpm int
			if _, err := fmt.Sscanf(strings.TrimSpace(v), "%d", &bpm); err == nil && bpm > 0 {
				return bpm
			}
		case int:
			if v > 0 {
				return v
			}
		case int16:
			if v > 0 {
				return int(v)
			}
		}
	}
	return 0
}
