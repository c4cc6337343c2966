package tagging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tagfill/src/features/prompt"
	"tagfill/src/music"
)

// fakeStore exposes a configurable presence set and records writes.
type fakeStore struct {
	music.TagStore
	presence music.FieldSet
	trackNum int
	written  *[]music.TrackTags
}

func (f *fakeStore) Presence() music.FieldSet { return f.presence }

func (f *fakeStore) TrackNumber() (int, bool) {
	if f.trackNum <= 0 {
		return 0, false
	}
	return f.trackNum, true
}

func (f *fakeStore) WriteTags(tags music.TrackTags) error {
	*f.written = append(*f.written, tags)
	return nil
}

func (f *fakeStore) Close() error { return nil }

type fakeOpener struct {
	presence music.FieldSet
	trackNum int
	written  []music.TrackTags
	openErr  error
}

func (f *fakeOpener) Open(path string) (music.TagStore, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return &fakeStore{presence: f.presence, trackNum: f.trackNum, written: &f.written}, nil
}

// scriptedPrompter answers prompts in order and records the labels.
type scriptedPrompter struct {
	answers []any // string, int, or prompt.ErrCancelled to cancel
	labels  []string
}

func (p *scriptedPrompter) next(label string) any {
	p.labels = append(p.labels, label)
	if len(p.answers) == 0 {
		return nil
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a
}

func (p *scriptedPrompter) AskString(label, def string) (string, error) {
	switch a := p.next(label).(type) {
	case string:
		return a, nil
	case error:
		return def, a
	default:
		if def == "" {
			return "", prompt.ErrNoValue
		}
		return def, nil
	}
}

func (p *scriptedPrompter) AskInt(label string, def int) (int, error) {
	switch a := p.next(label).(type) {
	case int:
		return a, nil
	case error:
		return def, a
	default:
		return def, nil
	}
}

func (p *scriptedPrompter) AskBool(label string, def bool) (bool, error) {
	switch a := p.next(label).(type) {
	case bool:
		return a, nil
	case error:
		return def, a
	default:
		return def, nil
	}
}

func (p *scriptedPrompter) asked(label string) bool {
	for _, l := range p.labels {
		if l == label {
			return true
		}
	}
	return false
}

type fakeCovers struct {
	has      bool
	selected string
	added    []string
}

func (f *fakeCovers) Has(path string) bool { return f.has }

func (f *fakeCovers) Select(coverDir string) (string, bool) {
	return f.selected, f.selected != ""
}

func (f *fakeCovers) Add(audioPath, coverPath, usedDir string) {
	f.added = append(f.added, coverPath)
}

type fakeTempo struct {
	has    bool
	filled []string
}

func (f *fakeTempo) Has(path string) bool { return f.has }

func (f *fakeTempo) Fill(ctx context.Context, path string) {
	f.filled = append(f.filled, path)
}

type fixture struct {
	service  *Service
	opener   *fakeOpener
	prompter *scriptedPrompter
	covers   *fakeCovers
	tempo    *fakeTempo
}

func newFixture(presence music.FieldSet, answers ...any) *fixture {
	opener := &fakeOpener{presence: presence}
	prompter := &scriptedPrompter{answers: answers}
	covers := &fakeCovers{}
	tempo := &fakeTempo{}
	return &fixture{
		service:  NewService(opener, prompter, covers, tempo, nil),
		opener:   opener,
		prompter: prompter,
		covers:   covers,
		tempo:    tempo,
	}
}

func audioFixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

var allFields = music.FieldSet(0).
	Add(music.FieldArtist).Add(music.FieldTitle).Add(music.FieldAlbum).
	Add(music.FieldAlbumArtist).Add(music.FieldTrackNumber).Add(music.FieldDiscNumber).
	Add(music.FieldGenre).Add(music.FieldYear)

func TestTagFile_UntaggedFileWithDefaults(t *testing.T) {
	path := audioFixture(t, "Daft Punk - One More Time.mp3")
	// Album, album artist, year: defaults accepted. Genre typed in.
	f := newFixture(0, nil, nil, "House", nil)
	f.covers.selected = "/covers/discovery.jpg"

	ok := f.service.TagFile(context.Background(), path, Options{DefaultYear: 2025})
	if !ok {
		t.Fatal("expected the batch to continue")
	}

	if len(f.opener.written) != 1 {
		t.Fatalf("expected a single tag write, got %d", len(f.opener.written))
	}
	got := f.opener.written[0]
	want := music.TrackTags{
		Title:       "One More Time",
		Artist:      "Daft Punk",
		Album:       "One More Time - Single",
		AlbumArtist: "Daft Punk",
		TrackNumber: 1,
		DiscNumber:  1,
		Genre:       "House",
		Year:        2025,
	}
	if got != want {
		t.Errorf("written tags mismatch:\n got %+v\nwant %+v", got, want)
	}

	if f.prompter.asked("Track number") {
		t.Error("single with default album should not prompt for track number")
	}
	if len(f.covers.added) != 1 || f.covers.added[0] != "/covers/discovery.jpg" {
		t.Errorf("expected the picked cover to be added, got %v", f.covers.added)
	}
	if len(f.tempo.filled) != 1 {
		t.Errorf("expected a tempo fill, got %v", f.tempo.filled)
	}
}

func TestTagFile_FullyTaggedFileOnlyConfirmsAlbumArtist(t *testing.T) {
	path := audioFixture(t, "Daft Punk - One More Time.mp3")
	f := newFixture(allFields, nil, nil)
	f.opener.trackNum = 7
	f.covers.has = true
	f.tempo.has = true

	ok := f.service.TagFile(context.Background(), path, Options{DefaultYear: 2025})
	if !ok {
		t.Fatal("expected the batch to continue")
	}

	// A pre-existing album always re-triggers the album-artist branch,
	// so its confirmation and the seeded track number get written; every
	// other present field stays untouched.
	if len(f.opener.written) != 1 {
		t.Fatalf("expected one write, got %d", len(f.opener.written))
	}
	got := f.opener.written[0]
	want := music.TrackTags{AlbumArtist: "Daft Punk", TrackNumber: 7}
	if got != want {
		t.Errorf("written tags mismatch:\n got %+v\nwant %+v", got, want)
	}
	if len(f.covers.added) != 0 {
		t.Error("cover already present, none should be added")
	}
	if len(f.tempo.filled) != 0 {
		t.Error("tempo already present, none should be filled")
	}
}

func TestTagFile_ExistingAlbumTriggersAlbumArtistPrompt(t *testing.T) {
	path := audioFixture(t, "Daft Punk - One More Time.mp3")
	presence := allFields // album present, so no album prompt
	f := newFixture(presence, "Daft Punk", nil)
	f.opener.trackNum = 5
	f.covers.has = true
	f.tempo.has = true

	ok := f.service.TagFile(context.Background(), path, Options{DefaultYear: 2025})
	if !ok {
		t.Fatal("expected the batch to continue")
	}

	if f.prompter.asked("Album name") {
		t.Error("album is present and must not be prompted")
	}
	if !f.prompter.asked("Album artist") {
		t.Error("a pre-existing album always triggers the album artist prompt")
	}
	if !f.prompter.asked("Track number") {
		t.Error("stored track 5 should trigger the track prompt")
	}

	if len(f.opener.written) != 1 {
		t.Fatalf("expected one write, got %d", len(f.opener.written))
	}
	got := f.opener.written[0]
	if got.AlbumArtist != "Daft Punk" || got.TrackNumber != 5 {
		t.Errorf("expected album artist and stored track confirmed, got %+v", got)
	}
	if got.Album != "" || got.Title != "" || got.Artist != "" || got.Year != 0 || got.DiscNumber != 0 {
		t.Errorf("present fields must stay untouched, got %+v", got)
	}
}

func TestTagFile_DefaultAlbumWithPresentAlbumArtistSkipsBranch(t *testing.T) {
	path := audioFixture(t, "Daft Punk - One More Time.mp3")
	presence := music.FieldSet(0).Add(music.FieldAlbumArtist)
	// Album prompt accepts the single default, then genre and year.
	f := newFixture(presence, nil, "House", nil)
	f.covers.has = true
	f.tempo.has = true

	ok := f.service.TagFile(context.Background(), path, Options{DefaultYear: 2025})
	if !ok {
		t.Fatal("expected the batch to continue")
	}

	// Album artist present and the resolved album equals the derived
	// single default: the only case where the branch does not fire.
	if f.prompter.asked("Album artist") {
		t.Error("album artist prompt must be skipped at the boundary")
	}
	if f.prompter.asked("Track number") {
		t.Error("track number is only considered inside the album-artist branch")
	}

	if len(f.opener.written) != 1 {
		t.Fatalf("expected one write, got %d", len(f.opener.written))
	}
	got := f.opener.written[0]
	if got.AlbumArtist != "" || got.TrackNumber != 0 {
		t.Errorf("album artist and track number must stay unwritten, got %+v", got)
	}
	if got.Album != "One More Time - Single" || got.Year != 2025 {
		t.Errorf("unexpected write %+v", got)
	}
}

func TestTagFile_CustomAlbumPromptsTrackNumber(t *testing.T) {
	path := audioFixture(t, "Daft Punk - One More Time.mp3")
	f := newFixture(0, "Discovery", "Daft Punk", 3, "House", 2001)
	f.covers.has = true
	f.tempo.has = true

	ok := f.service.TagFile(context.Background(), path, Options{DefaultYear: 2025})
	if !ok {
		t.Fatal("expected the batch to continue")
	}

	if !f.prompter.asked("Track number") {
		t.Error("a non-default album should prompt for the track number")
	}
	got := f.opener.written[0]
	if got.Album != "Discovery" || got.TrackNumber != 3 || got.Year != 2001 {
		t.Errorf("unexpected write %+v", got)
	}
}

func TestTagFile_CancelledPromptStopsProcessing(t *testing.T) {
	path := audioFixture(t, "Daft Punk - One More Time.mp3")
	f := newFixture(0, prompt.ErrCancelled)

	ok := f.service.TagFile(context.Background(), path, Options{DefaultYear: 2025})
	if ok {
		t.Fatal("cancellation must stop the batch")
	}
	if len(f.opener.written) != 0 {
		t.Errorf("nothing should be written after a cancel, got %+v", f.opener.written)
	}
}

func TestTagFile_InvalidFilenameIsSkipped(t *testing.T) {
	path := audioFixture(t, "track01.mp3")
	f := newFixture(0)

	ok := f.service.TagFile(context.Background(), path, Options{DefaultYear: 2025})
	if !ok {
		t.Fatal("a skipped file must not stop the batch")
	}
	if len(f.prompter.labels) != 0 {
		t.Errorf("no prompts expected for an invalid filename, got %v", f.prompter.labels)
	}
	if len(f.opener.written) != 0 {
		t.Error("nothing should be written")
	}
}

func TestTagFile_UnsupportedFileIsSkipped(t *testing.T) {
	path := audioFixture(t, "Daft Punk - One More Time.flac")
	f := newFixture(0)
	f.opener.openErr = music.ErrUnsupportedFormat

	ok := f.service.TagFile(context.Background(), path, Options{DefaultYear: 2025})
	if !ok {
		t.Fatal("unsupported files must not stop the batch")
	}
	if len(f.prompter.labels) != 0 {
		t.Error("no prompts expected for an unsupported file")
	}
}

func TestTagFile_EmptyGenreAnswerLeavesGenreUnwritten(t *testing.T) {
	path := audioFixture(t, "Daft Punk - One More Time.mp3")
	presence := allFields &^ music.FieldSet(music.FieldGenre)
	// Album pre-exists: album-artist confirmation, then the empty genre.
	f := newFixture(presence, nil, nil)
	f.covers.has = true
	f.tempo.has = true

	ok := f.service.TagFile(context.Background(), path, Options{DefaultYear: 2025})
	if !ok {
		t.Fatal("expected the batch to continue")
	}

	for _, w := range f.opener.written {
		if w.Genre != "" {
			t.Errorf("genre should stay unwritten, got %+v", w)
		}
	}
}

func TestTagDirectory_CancellationStopsRemainingFiles(t *testing.T) {
	dir := t.TempDir()
	coverDir := filepath.Join(dir, "covers")
	if err := os.Mkdir(coverDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"A - One.mp3", "B - Two.mp3", "C - Three.mp3"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	// First file: cancel at the album prompt.
	f := newFixture(0, prompt.ErrCancelled)
	f.service.TagDirectory(context.Background(), dir, Options{CoverDir: coverDir, DefaultYear: 2025})

	if len(f.prompter.labels) != 1 {
		t.Errorf("the remaining files must not be processed, prompts: %v", f.prompter.labels)
	}
	if len(f.opener.written) != 0 {
		t.Errorf("nothing should be written, got %+v", f.opener.written)
	}
}

func TestTagDirectory_InvalidCoverDirAbortsUpFront(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "A - One.mp3"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	f := newFixture(0, nil, nil, nil, nil)
	f.service.TagDirectory(context.Background(), dir, Options{
		CoverDir:    filepath.Join(dir, "missing-covers"),
		DefaultYear: 2025,
	})

	if len(f.prompter.labels) != 0 {
		t.Errorf("no file should be processed, prompts: %v", f.prompter.labels)
	}
}
