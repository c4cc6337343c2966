package tempo

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"tagfill/src/music"
)

// settleDelay gives a freshly created file time to finish copying
// before it is opened for analysis.
const settleDelay = 2 * time.Second

// Watch fills the tempo of files created in dir until ctx is done.
// Processing stays strictly sequential: one file at a time, in event
// order.
func (s *Service) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}
	slog.Info("Watching for new audio files", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping file watcher", "dir", dir)
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if music.FormatForExtension(event.Name) == music.FormatUnsupported {
				continue
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(settleDelay):
			}
			s.Fill(ctx, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)
		}
	}
}
