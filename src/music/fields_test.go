package music

import "testing"

func TestFieldSet_HasAndMissing(t *testing.T) {
	var set FieldSet
	set = set.Add(FieldArtist).Add(FieldTitle)

	if !set.Has(FieldArtist) || !set.Has(FieldTitle) {
		t.Error("expected artist and title to be present")
	}
	if set.Has(FieldAlbum) {
		t.Error("album should not be present")
	}
	if !set.Missing(FieldBPM) {
		t.Error("bpm should be missing")
	}
}

func TestFieldSet_Union(t *testing.T) {
	a := FieldSet(0).Add(FieldArtist)
	b := FieldSet(0).Add(FieldCover).Add(FieldBPM)

	u := a.Union(b)
	for _, f := range []Field{FieldArtist, FieldCover, FieldBPM} {
		if !u.Has(f) {
			t.Errorf("expected %v in union", FieldSet(0).Add(f))
		}
	}
	if u.Has(FieldGenre) {
		t.Error("genre should not be in union")
	}
}

func TestFieldSet_StringListsNames(t *testing.T) {
	set := FieldSet(0).Add(FieldArtist).Add(FieldYear)
	got := set.String()
	if got != "artist,year" {
		t.Errorf("expected %q, got %q", "artist,year", got)
	}
	if FieldSet(0).String() != "none" {
		t.Errorf("empty set should render as none, got %q", FieldSet(0).String())
	}
}
