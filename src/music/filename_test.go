package music

import "testing"

func TestParseFilename_SplitsOnFirstSeparator(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		artist   string
		title    string
		ok       bool
	}{
		{"simple", "Daft Punk - One More Time.mp3", "Daft Punk", "One More Time", true},
		{"extra whitespace", "  Daft Punk   -   One More Time  .mp3", "Daft Punk", "One More Time", true},
		{"separator in title", "A - B - C.m4a", "A", "B - C", true},
		{"hyphen without spaces is not a separator", "Daft-Punk One.mp3", "", "", false},
		{"no separator", "track01.mp3", "", "", false},
		{"empty", "", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artist, title, ok := ParseFilename(tt.filename)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if artist != tt.artist || title != tt.title {
				t.Errorf("expected (%q, %q), got (%q, %q)", tt.artist, tt.title, artist, title)
			}
		})
	}
}

func TestParseFilename_StripsOnlyTheLastExtension(t *testing.T) {
	artist, title, ok := ParseFilename("AC - DC.live.m4a")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if artist != "AC" || title != "DC.live" {
		t.Errorf("got (%q, %q)", artist, title)
	}
}
