package files

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Move relocates a file. Invalid sources and src==dst (after path
// normalization) are logged no-ops. An existing destination is
// overwritten with a warning; this is the policy for audio moves, cover
// relocations guard against collisions before calling Move.
func Move(src, dst string) {
	// ValidFile already logs the specific failure.
	if !ValidFile(src) {
		return
	}

	absSrc, errSrc := filepath.Abs(src)
	absDst, errDst := filepath.Abs(dst)
	if errSrc == nil && errDst == nil && absSrc == absDst {
		slog.Info("Move source and destination are equal", "path", src)
		return
	}

	if _, err := os.Stat(dst); err == nil {
		slog.Warn("Destination already exists, file will be overwritten", "dst", dst)
	}

	if err := os.Rename(src, dst); err != nil {
		if !isCrossDeviceError(err) {
			slog.Error("Failed to move file", "src", src, "dst", dst, "error", err)
			return
		}
		// Rename cannot cross filesystems, fall back to copy+remove.
		if err := copyFile(src, dst); err != nil {
			slog.Error("Failed to copy file across devices", "src", src, "dst", dst, "error", err)
			return
		}
		if err := os.Remove(src); err != nil {
			slog.Error("Failed to remove source after copy", "src", src, "error", err)
			return
		}
	}

	slog.Debug("Successfully moved file", "dst", filepath.Dir(dst))
}

// isCrossDeviceError checks if an error is due to cross-device link (moving across filesystems).
func isCrossDeviceError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "cross-device link")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy contents: %w", err)
	}
	return out.Sync()
}
