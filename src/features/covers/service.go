// Package covers checks for and embeds cover images in the two
// container formats, and relocates consumed images so they are not
// offered again.
package covers

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tagfill/src/features/config"
	"tagfill/src/infra/files"
	"tagfill/src/music"
)

// ErrNoSelection reports that the picker was dismissed without a choice.
var ErrNoSelection = errors.New("no cover image selected")

// Picker presents a file choice scoped to a directory. The terminal
// implementation lives in infra; tests script it.
type Picker interface {
	Pick(dir string, candidates []string) (string, error)
}

// Service is the cover art manager.
type Service struct {
	opener music.StoreOpener
	picker Picker
	embed  config.Embedded
}

// NewService creates a new cover service.
func NewService(opener music.StoreOpener, picker Picker, embed config.Embedded) *Service {
	return &Service{opener: opener, picker: picker, embed: embed}
}

// SupportedImage reports whether the path is a usable cover image:
// an existing regular file with a jpg/jpeg/png extension.
func SupportedImage(path string) bool {
	if !files.ValidFile(path) {
		return false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png":
		return true
	default:
		slog.Warn("Image file type is not supported", "path", path)
		return false
	}
}

// Has reports whether the audio file already embeds a picture.
// Unsupported paths count as uncovered.
func (s *Service) Has(path string) bool {
	store, err := s.opener.Open(path)
	if err != nil {
		return false
	}
	defer store.Close()

	if !store.HasCover() {
		slog.Debug("No cover image found", "path", path)
		return false
	}
	return true
}

// Select offers the images inside coverDir and returns the chosen
// path. ok is false on cancellation, an invalid directory, no
// candidates, or an unsupported selection.
func (s *Service) Select(coverDir string) (string, bool) {
	if !files.ValidDir(coverDir) {
		return "", false
	}

	candidates := listImages(coverDir)
	if len(candidates) == 0 {
		slog.Info("No cover images available", "dir", coverDir)
		return "", false
	}

	selected, err := s.picker.Pick(coverDir, candidates)
	if err != nil {
		slog.Debug("No cover image selected", "dir", coverDir)
		return "", false
	}
	if !SupportedImage(selected) {
		return "", false
	}
	return selected, true
}

// Add embeds the cover into the audio file unless one is already
// present, then applies the used-directory relocation policy.
func (s *Service) Add(audioPath, coverPath, usedDir string) {
	if usedDir != "" && !files.ValidDir(usedDir) {
		return
	}
	if !SupportedImage(coverPath) {
		return
	}
	if s.Has(audioPath) {
		slog.Debug("Has already a cover image", "path", audioPath)
		return
	}

	data, err := os.ReadFile(coverPath)
	if err != nil {
		slog.Error("Failed to read cover image", "path", coverPath, "error", err)
		return
	}

	if s.embed.Size > 0 {
		resized, err := downscale(data, s.embed.Size, s.embed.Quality)
		if err != nil {
			slog.Warn("Failed to resize cover, embedding original", "path", coverPath, "error", err)
		} else {
			data = resized
		}
	}

	store, err := s.opener.Open(audioPath)
	if err != nil {
		return
	}
	defer store.Close()

	if err := store.WriteCover(data, mimeForPath(coverPath)); err != nil {
		slog.Error("Failed to embed cover", "path", audioPath, "error", err)
		return
	}
	slog.Info("Successfully added cover", "path", audioPath, "cover", coverPath)

	if usedDir != "" {
		s.relocateUsed(coverPath, usedDir)
	}
}

// relocateUsed moves a consumed cover into the used directory. A cover
// already there stays; a name collision leaves the cover in place with
// a warning, never overwriting.
func (s *Service) relocateUsed(coverPath, usedDir string) {
	absCoverDir, errA := filepath.Abs(filepath.Dir(coverPath))
	absUsedDir, errB := filepath.Abs(usedDir)
	if errA == nil && errB == nil && absCoverDir == absUsedDir {
		slog.Debug("Cover already located in the used directory", "path", coverPath)
		return
	}

	dest := filepath.Join(usedDir, filepath.Base(coverPath))
	if _, err := os.Stat(dest); err == nil {
		slog.Warn("Cover not moved: a file with the same name already exists", "dest", dest)
		return
	}

	files.Move(coverPath, dest)
	slog.Debug("Successfully moved cover", "dir", usedDir)
}

// FillDirectory walks dir recursively, offering a cover for every
// uncovered file.
func (s *Service) FillDirectory(ctx context.Context, dir, coverDir, usedDir string) {
	if usedDir != "" && !files.ValidDir(usedDir) {
		return
	}
	if !files.ValidDir(dir) || !files.ValidDir(coverDir) {
		return
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if s.Has(path) {
			return nil
		}
		slog.Info("Adding cover image", "path", path)
		coverPath, ok := s.Select(coverDir)
		if !ok {
			return nil
		}
		s.Add(path, coverPath, usedDir)
		return nil
	})
	if err != nil {
		slog.Warn("Directory walk stopped", "dir", dir, "error", err)
	}
}

// listImages collects the supported image files directly inside dir.
func listImages(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png":
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}
	return images
}

func mimeForPath(path string) string {
	if strings.ToLower(filepath.Ext(path)) == ".png" {
		return "image/png"
	}
	return "image/jpeg"
}
