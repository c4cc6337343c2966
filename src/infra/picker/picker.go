// Package picker is the terminal implementation of the cover picker.
package picker

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/manifoldco/promptui"

	"tagfill/src/features/covers"
)

// TerminalPicker presents an interactive selection list on the terminal.
type TerminalPicker struct{}

// NewTerminalPicker creates a new terminal picker.
func NewTerminalPicker() *TerminalPicker {
	return &TerminalPicker{}
}

// Pick lets the user choose one of the candidate files. Dismissing the
// menu (Ctrl+C, q) yields ErrNoSelection; a cover pick is optional and
// never aborts the batch.
func (p *TerminalPicker) Pick(dir string, candidates []string) (string, error) {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = filepath.Base(c)
	}

	prompt := promptui.Select{
		Label: fmt.Sprintf("Select cover image (%s)", dir),
		Items: names,
		Size:  12,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		slog.Debug("Cover selection dismissed", "dir", dir, "error", err)
		return "", covers.ErrNoSelection
	}
	return candidates[idx], nil
}
