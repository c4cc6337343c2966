package music

import "testing"

func TestTrackSummary_PresentIsMonotonic(t *testing.T) {
	s := TrackSummary{Title: "One More Time"}
	before := s.Present()

	// Setting more fields can only set bits, never clear them.
	s.Artist = "Daft Punk"
	s.Year = 2001
	s.HasCover = true
	after := s.Present()

	if before.Union(after) != after {
		t.Errorf("presence lost bits: before %v, after %v", before, after)
	}
	if !after.Has(FieldTitle) || !after.Has(FieldArtist) || !after.Has(FieldYear) || !after.Has(FieldCover) {
		t.Errorf("expected new bits set, got %v", after)
	}
}

func TestTrackSummary_BlankAndZeroValuesCountAbsent(t *testing.T) {
	s := TrackSummary{
		Title:       "   ",
		TrackNumber: 0,
		Year:        -1,
		BPM:         0,
	}
	set := s.Present()
	if set != 0 {
		t.Errorf("whitespace and non-positive values must count absent, got %v", set)
	}
}
