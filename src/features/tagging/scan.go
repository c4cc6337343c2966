package tagging

import (
	"io/fs"
	"log/slog"
	"path/filepath"

	"tagfill/src/infra/files"
	"tagfill/src/music"
)

// Scan walks dir recursively and reports the current metadata of every
// supported file. Nothing is written; unsupported entries are skipped.
func (s *Service) Scan(dir string) []music.TrackSummary {
	if !files.ValidDir(dir) {
		return nil
	}

	var summaries []music.TrackSummary
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if files.DetectFormat(path) == music.FormatUnsupported {
			return nil
		}
		summary, err := s.inspector.ReadSummary(path)
		if err != nil {
			slog.Warn("Failed to read tags", "path", path, "error", err)
			return nil
		}
		present := summary.Present()
		slog.Info("Scanned",
			"file", d.Name(),
			"present", present.String(),
			"missing", present.MissingString(),
		)
		summaries = append(summaries, *summary)
		return nil
	})
	if err != nil {
		slog.Warn("Directory walk stopped", "dir", dir, "error", err)
	}
	return summaries
}
