package tag

import (
	"fmt"
	"os"
	"strings"

	mp4tag "github.com/Sorrow446/go-mp4tag"
	"github.com/dhowden/tag"

	"tagfill/src/music"
)

// m4aStore reads and writes MP4 metadata atoms.
type m4aStore struct {
	path string
	mp4  *mp4tag.MP4
	tags *mp4tag.MP4Tags
}

func openM4A(path string) (music.TagStore, error) {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open M4A file: %w", err)
	}
	tags, err := mp4.Read()
	if err != nil {
		mp4.Close()
		return nil, fmt.Errorf("failed to read M4A tags: %w", err)
	}
	return &m4aStore{path: path, mp4: mp4, tags: tags}, nil
}

func (s *m4aStore) Presence() music.FieldSet {
	var set music.FieldSet
	if strings.TrimSpace(s.tags.Title) != "" {
		set = set.Add(music.FieldTitle)
	}
	if strings.TrimSpace(s.tags.Artist) != "" {
		set = set.Add(music.FieldArtist)
	}
	if strings.TrimSpace(s.tags.Album) != "" {
		set = set.Add(music.FieldAlbum)
	}
	if strings.TrimSpace(s.tags.AlbumArtist) != "" {
		set = set.Add(music.FieldAlbumArtist)
	}
	if s.tags.TrackNumber > 0 {
		set = set.Add(music.FieldTrackNumber)
	}
	if s.tags.DiscNumber > 0 {
		set = set.Add(music.FieldDiscNumber)
	}
	if strings.TrimSpace(s.tags.CustomGenre) != "" {
		set = set.Add(music.FieldGenre)
	}
	if s.tags.Year > 0 {
		set = set.Add(music.FieldYear)
	}
	return set
}

func (s *m4aStore) TrackNumber() (int, bool) {
	if s.tags.TrackNumber <= 0 {
		return 0, false
	}
	return int(s.tags.TrackNumber), true
}

func (s *m4aStore) Tempo() (int, bool) {
	if s.tags.BPM <= 0 {
		return 0, false
	}
	return int(s.tags.BPM), true
}

// HasCover scans the picture atom through the generic reader; go-mp4tag
// is only used for text atoms and writes.
func (s *m4aStore) HasCover() bool {
	f, err := os.Open(s.path)
	if err != nil {
		return false
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return false
	}
	return meta.Picture() != nil
}

func (s *m4aStore) WriteTags(tags music.TrackTags) error {
	out := &mp4tag.MP4Tags{
		Title:       tags.Title,
		Artist:      tags.Artist,
		Album:       tags.Album,
		AlbumArtist: tags.AlbumArtist,
		TrackNumber: int16(tags.TrackNumber),
		DiscNumber:  int16(tags.DiscNumber),
		CustomGenre: tags.Genre,
		Year:        int32(tags.Year),
	}
	if err := s.mp4.Write(out, []string{}); err != nil {
		return fmt.Errorf("failed to write M4A tags: %w", err)
	}
	return nil
}

func (s *m4aStore) WriteTempo(bpm int) error {
	if err := s.mp4.Write(&mp4tag.MP4Tags{BPM: int16(bpm)}, []string{}); err != nil {
		return fmt.Errorf("failed to write M4A tempo: %w", err)
	}
	return nil
}

func (s *m4aStore) WriteCover(data []byte, _ string) error {
	out := &mp4tag.MP4Tags{
		Pictures: []*mp4tag.MP4Picture{{Data: data}},
	}
	if err := s.mp4.Write(out, []string{}); err != nil {
		return fmt.Errorf("failed to write M4A cover: %w", err)
	}
	return nil
}

func (s *m4aStore) Close() error {
	return s.mp4.Close()
}
