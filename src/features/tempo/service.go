// Package tempo fills missing beats-per-minute tags. The estimation
// itself is a collaborator behind the Analyzer interface; any failure
// inside it means "no estimate", never a fatal error.
package tempo

import (
	"context"
	"io/fs"
	"log/slog"
	"math"
	"path/filepath"

	"tagfill/src/infra/files"
	"tagfill/src/music"
)

// Analyzer estimates the tempo of an audio file.
type Analyzer interface {
	EstimateTempo(ctx context.Context, path string) (float64, error)
}

// Service is the tempo feature.
type Service struct {
	opener   music.StoreOpener
	analyzer Analyzer
}

// NewService creates a new tempo service.
func NewService(opener music.StoreOpener, analyzer Analyzer) *Service {
	return &Service{opener: opener, analyzer: analyzer}
}

// Has reports whether the file already carries a usable tempo tag.
// Absent, unparsable and non-positive values all count as missing.
func (s *Service) Has(path string) bool {
	store, err := s.opener.Open(path)
	if err != nil {
		return false
	}
	defer store.Close()

	bpm, ok := store.Tempo()
	if !ok {
		slog.Debug("No BPM value found", "path", path)
		return false
	}
	return bpm > 0
}

// Estimate returns the estimated BPM, or -1.0 for unsupported files
// and on any decoding or analysis failure.
func (s *Service) Estimate(ctx context.Context, path string) float64 {
	if files.DetectFormat(path) == music.FormatUnsupported {
		return -1.0
	}

	bpm, err := s.analyzer.EstimateTempo(ctx, path)
	if err != nil {
		slog.Warn("An error occurred during BPM estimation", "path", path, "error", err)
		return -1.0
	}
	if bpm <= 0 {
		slog.Warn("Invalid BPM returned", "path", path, "bpm", bpm)
		return -1.0
	}
	slog.Info("Found BPM", "path", path, "bpm", bpm)
	return bpm
}

// Fill writes the estimated tempo unless the file already has one.
// Calling it twice estimates at most once: the second call sees the
// written tag and becomes a no-op.
func (s *Service) Fill(ctx context.Context, path string) {
	if s.Has(path) {
		slog.Debug("Has already a BPM value", "path", path)
		return
	}

	bpm := s.Estimate(ctx, path)
	if bpm <= 0 {
		return
	}

	store, err := s.opener.Open(path)
	if err != nil {
		return
	}
	defer store.Close()

	rounded := int(math.Round(bpm))
	if err := store.WriteTempo(rounded); err != nil {
		slog.Error("Failed to write BPM", "path", path, "error", err)
		return
	}
	slog.Info("Successfully added BPM", "path", path, "bpm", rounded)
}

// FillDirectory walks dir recursively and fills every file it can.
func (s *Service) FillDirectory(ctx context.Context, dir string) {
	if !files.ValidDir(dir) {
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
		s.Fill(ctx, path)
		return nil
	})
	if err != nil {
		slog.Warn("Directory walk stopped", "dir", dir, "error", err)
	}
}
