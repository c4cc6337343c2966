// Package tagging is the metadata orchestrator: per file it computes
// the presence bitmask, derives artist/title from the filename
// convention, prompts for the gaps, writes the resolved values in one
// save and delegates cover and tempo filling.
package tagging

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"tagfill/src/features/prompt"
	"tagfill/src/infra/files"
	"tagfill/src/music"
)

// CoverFiller is the slice of the covers feature the orchestrator needs.
type CoverFiller interface {
	Has(path string) bool
	Select(coverDir string) (string, bool)
	Add(audioPath, coverPath, usedDir string)
}

// TempoFiller is the slice of the tempo feature the orchestrator needs.
type TempoFiller interface {
	Has(path string) bool
	Fill(ctx context.Context, path string)
}

// Inspector reads a file's current tags without mutating it.
type Inspector interface {
	ReadSummary(path string) (*music.TrackSummary, error)
}

// Options carries the collaborator directories for one batch.
type Options struct {
	// CoverDir is offered by the picker when a cover is missing.
	CoverDir string
	// UsedDir, when set, receives consumed cover images.
	UsedDir string
	// MoveToDir, when set, receives finished files after tagging.
	MoveToDir string
	// DefaultYear seeds the year prompt.
	DefaultYear int
	// RenameOnMove renders an ASCII-safe name for the move destination.
	RenameOnMove bool
}

// Service is the metadata orchestrator.
type Service struct {
	opener    music.StoreOpener
	prompter  prompt.Prompter
	covers    CoverFiller
	tempo     TempoFiller
	inspector Inspector
}

// NewService creates a new orchestrator.
func NewService(opener music.StoreOpener, prompter prompt.Prompter, covers CoverFiller, tempo TempoFiller, inspector Inspector) *Service {
	return &Service{
		opener:    opener,
		prompter:  prompter,
		covers:    covers,
		tempo:     tempo,
		inspector: inspector,
	}
}

// Presence computes the bitmask of fields present in the file,
// including the delegated cover and tempo checks. The error is
// non-nil only for unsupported files.
func (s *Service) Presence(path string) (music.FieldSet, error) {
	store, err := s.opener.Open(path)
	if err != nil {
		return 0, err
	}
	set := store.Presence()
	store.Close()

	if s.covers.Has(path) {
		set = set.Add(music.FieldCover)
	}
	if s.tempo.Has(path) {
		set = set.Add(music.FieldBPM)
	}
	return set, nil
}

// TagFile fills the missing metadata of one file, prompting for the
// fields that need a decision. It returns false only when the user
// cancelled, which stops the whole batch; every other failure skips
// the file and keeps the batch going.
func (s *Service) TagFile(ctx context.Context, path string, opts Options) bool {
	presence, err := s.Presence(path)
	if err != nil {
		// Path missing, not a regular file, or unsupported container.
		return true
	}

	if opts.UsedDir != "" && !files.ValidDir(opts.UsedDir) {
		return true
	}
	if opts.MoveToDir != "" && !files.ValidDir(opts.MoveToDir) {
		return true
	}

	artist, title, ok := music.ParseFilename(filepath.Base(path))
	if !ok {
		slog.Warn("Invalid filename, expected 'Artist - Title'", "path", path)
		return true
	}

	var tags music.TrackTags
	if presence.Missing(music.FieldTitle) {
		tags.Title = title
	}
	if presence.Missing(music.FieldArtist) {
		tags.Artist = artist
	}

	defaultAlbum := title + " - Single"

	// resolvedAlbum stays empty when the album tag already exists; the
	// album-artist condition below compares against it on purpose, so a
	// pre-existing album always triggers the album-artist confirmation.
	var resolvedAlbum string
	if presence.Missing(music.FieldAlbum) {
		album, err := s.prompter.AskString("Album name", defaultAlbum)
		if errors.Is(err, prompt.ErrCancelled) {
			return false
		}
		resolvedAlbum = album
		tags.Album = album
	}

	if presence.Missing(music.FieldAlbumArtist) || resolvedAlbum != defaultAlbum {
		albumArtist, err := s.prompter.AskString("Album artist", artist)
		if errors.Is(err, prompt.ErrCancelled) {
			return false
		}
		tags.AlbumArtist = albumArtist

		defaultTrack := 1
		if presence.Has(music.FieldTrackNumber) {
			if n, ok := s.storedTrackNumber(path); ok && n > 0 {
				defaultTrack = n
			}
		}
		if resolvedAlbum != defaultAlbum || defaultTrack != 1 {
			track, err := s.prompter.AskInt("Track number", defaultTrack)
			if errors.Is(err, prompt.ErrCancelled) {
				return false
			}
			tags.TrackNumber = track
		} else {
			tags.TrackNumber = 1
		}
	}

	if presence.Missing(music.FieldGenre) {
		genre, err := s.prompter.AskString("Genre", "")
		if errors.Is(err, prompt.ErrCancelled) {
			return false
		}
		tags.Genre = genre
	}

	if presence.Missing(music.FieldYear) {
		year, err := s.prompter.AskInt("Year", opts.DefaultYear)
		if errors.Is(err, prompt.ErrCancelled) {
			return false
		}
		tags.Year = year
	}

	if presence.Missing(music.FieldDiscNumber) {
		tags.DiscNumber = 1
	}

	s.writeTags(path, tags)

	if presence.Missing(music.FieldCover) {
		if coverPath, ok := s.covers.Select(opts.CoverDir); ok {
			s.covers.Add(path, coverPath, opts.UsedDir)
		}
	}

	if presence.Missing(music.FieldBPM) {
		s.tempo.Fill(ctx, path)
	}

	if opts.MoveToDir != "" {
		name := filepath.Base(path)
		if opts.RenameOnMove {
			name = files.RenderName(artist, title, filepath.Ext(path))
		}
		files.Move(path, filepath.Join(opts.MoveToDir, name))
	}

	return true
}

// TagDirectory fills every regular file directly inside dir, in
// listing order. Any invalid collaborator directory aborts the whole
// operation up front; a cancelled prompt stops the remaining files.
func (s *Service) TagDirectory(ctx context.Context, dir string, opts Options) {
	if !files.ValidDir(dir) || !files.ValidDir(opts.CoverDir) {
		return
	}
	if opts.UsedDir != "" && !files.ValidDir(opts.UsedDir) {
		return
	}
	if opts.MoveToDir != "" && !files.ValidDir(opts.MoveToDir) {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Error("Failed to list directory", "dir", dir, "error", err)
		return
	}

	log := slog.With("run", uuid.NewString())

	var found bool
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		found = true
		path := filepath.Join(dir, entry.Name())
		log.Info("Processing", "file", entry.Name())
		if !s.TagFile(ctx, path, opts) {
			log.Info("Batch cancelled, stopping")
			return
		}
	}
	if !found {
		log.Info("No audio files found", "dir", dir)
	}
}

// storedTrackNumber reads the existing track tag to seed the prompt
// default. Unparsable values count as absent.
func (s *Service) storedTrackNumber(path string) (int, bool) {
	store, err := s.opener.Open(path)
	if err != nil {
		return 0, false
	}
	defer store.Close()
	return store.TrackNumber()
}

// writeTags applies all resolved fields in a single save. Failures are
// logged and recovered; the batch continues with the next steps.
func (s *Service) writeTags(path string, tags music.TrackTags) {
	if tags.IsZero() {
		return
	}
	store, err := s.opener.Open(path)
	if err != nil {
		return
	}
	defer store.Close()

	if err := store.WriteTags(tags); err != nil {
		slog.Error("Failed to write tags", "path", path, "error", err)
		return
	}
	slog.Info("Tags written", "path", path, "fields", tags)
}
