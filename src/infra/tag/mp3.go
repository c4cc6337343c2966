package tag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"

	"tagfill/src/music"
)

// mp3Store reads and writes ID3v2 frames.
type mp3Store struct {
	tag *id3v2.Tag
}

func openMP3(path string) (music.TagStore, error) {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open MP3 file: %w", err)
	}
	return &mp3Store{tag: t}, nil
}

// presenceFrames maps the text frames checked by Presence to fields.
var presenceFrames = []struct {
	id    string
	field music.Field
}{
	{"TIT2", music.FieldTitle},
	{"TPE1", music.FieldArtist},
	{"TALB", music.FieldAlbum},
	{"TPE2", music.FieldAlbumArtist},
	{"TCON", music.FieldGenre},
}

func (s *mp3Store) Presence() music.FieldSet {
	var set music.FieldSet
	for _, pf := range presenceFrames {
		if strings.TrimSpace(s.textFrame(pf.id)) != "" {
			set = set.Add(pf.field)
		}
	}
	if n, ok := s.TrackNumber(); ok && n > 0 {
		set = set.Add(music.FieldTrackNumber)
	}
	if n, ok := parseLeadingInt(s.textFrame("TPOS")); ok && n > 0 {
		set = set.Add(music.FieldDiscNumber)
	}
	if s.year() > 0 {
		set = set.Add(music.FieldYear)
	}
	return set
}

// textFrame returns the text of a frame, empty when absent.
func (s *mp3Store) textFrame(id string) string {
	return s.tag.GetTextFrame(id).Text
}

// year reads TYER (v2.3, what this tool writes) and falls back to the
// v2.4 recording time frame.
func (s *mp3Store) year() int {
	for _, id := range []string{"TYER", "TDRC"} {
		text := strings.TrimSpace(s.textFrame(id))
		if len(text) >= 4 {
			if y, err := strconv.Atoi(text[:4]); err == nil && y > 0 {
				return y
			}
		}
	}
	return 0
}

func (s *mp3Store) TrackNumber() (int, bool) {
	return parseLeadingInt(s.textFrame("TRCK"))
}

func (s *mp3Store) Tempo() (int, bool) {
	text := strings.TrimSpace(s.textFrame("TBPM"))
	if text == "" {
		return 0, false
	}
	bpm, err := strconv.Atoi(text)
	if err != nil || bpm <= 0 {
		return 0, false
	}
	return bpm, true
}

func (s *mp3Store) HasCover() bool {
	return len(s.tag.GetFrames(s.tag.CommonID("Attached picture"))) > 0
}

func (s *mp3Store) WriteTags(tags music.TrackTags) error {
	if tags.Title != "" {
		s.tag.SetTitle(tags.Title)
	}
	if tags.Artist != "" {
		s.tag.SetArtist(tags.Artist)
	}
	if tags.Album != "" {
		s.tag.SetAlbum(tags.Album)
	}
	if tags.AlbumArtist != "" {
		s.tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, tags.AlbumArtist)
	}
	if tags.TrackNumber > 0 {
		s.tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, strconv.Itoa(tags.TrackNumber))
	}
	if tags.DiscNumber > 0 {
		s.tag.AddTextFrame("TPOS", id3v2.EncodingUTF8, strconv.Itoa(tags.DiscNumber))
	}
	if tags.Genre != "" {
		s.tag.SetGenre(tags.Genre)
	}
	if tags.Year > 0 {
		s.tag.AddTextFrame("TYER", id3v2.EncodingUTF8, strconv.Itoa(tags.Year))
	}
	if err := s.tag.Save(); err != nil {
		return fmt.Errorf("failed to save MP3 tags: %w", err)
	}
	return nil
}

func (s *mp3Store) WriteTempo(bpm int) error {
	// Replace any existing TBPM frames, never append duplicates.
	s.tag.DeleteFrames("TBPM")
	s.tag.AddTextFrame("TBPM", id3v2.EncodingUTF8, strconv.Itoa(bpm))
	if err := s.tag.Save(); err != nil {
		return fmt.Errorf("failed to save MP3 tempo: %w", err)
	}
	return nil
}

func (s *mp3Store) WriteCover(data []byte, mime string) error {
	s.tag.DeleteFrames(s.tag.CommonID("Attached picture"))
	s.tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    mime,
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     data,
	})
	if err := s.tag.Save(); err != nil {
		return fmt.Errorf("failed to save MP3 cover: %w", err)
	}
	return nil
}

func (s *mp3Store) Close() error {
	return s.tag.Close()
}

// parseLeadingInt reads the number before an optional "/" in values
// like "3/12". Unparsable values count as absent.
func parseLeadingInt(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	if idx := strings.Index(text, "/"); idx >= 0 {
		text = text[:idx]
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return n, true
}
