package music

import "strings"

// TrackSummary is a read-only view of a file's current tags, produced
// by the generic inspector for the scan command.
type TrackSummary struct {
	Path        string
	Format      Format
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	Genre       string
	TrackNumber int
	DiscNumber  int
	Year        int
	HasCover    bool
	BPM         int
}

// Present derives the presence bitmask from the summary values.
func (s *TrackSummary) Present() FieldSet {
	var set FieldSet
	if strings.TrimSpace(s.Title) != "" {
		set = set.Add(FieldTitle)
	}
	if strings.TrimSpace(s.Artist) != "" {
		set = set.Add(FieldArtist)
	}
	if strings.TrimSpace(s.Album) != "" {
		set = set.Add(FieldAlbum)
	}
	if strings.TrimSpace(s.AlbumArtist) != "" {
		set = set.Add(FieldAlbumArtist)
	}
	if strings.TrimSpace(s.Genre) != "" {
		set = set.Add(FieldGenre)
	}
	if s.TrackNumber > 0 {
		set = set.Add(FieldTrackNumber)
	}
	if s.DiscNumber > 0 {
		set = set.Add(FieldDiscNumber)
	}
	if s.Year > 0 {
		set = set.Add(FieldYear)
	}
	if s.HasCover {
		set = set.Add(FieldCover)
	}
	if s.BPM > 0 {
		set = set.Add(FieldBPM)
	}
	return set
}
