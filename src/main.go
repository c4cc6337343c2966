package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tagfill/src/features/config"
	"tagfill/src/features/covers"
	"tagfill/src/features/logging"
	"tagfill/src/features/prompt"
	"tagfill/src/features/tagging"
	"tagfill/src/features/tempo"
	"tagfill/src/infra/beat"
	"tagfill/src/infra/picker"
	"tagfill/src/infra/tag"
)

type app struct {
	cfg     *config.Manager
	tagging *tagging.Service
	covers  *covers.Service
	tempo   *tempo.Service
}

func main() {
	// Load configuration
	cfgManager, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := cfgManager.Get()

	// Setup default logger with slog
	logger := logging.Setup(os.Stderr, cfg.Logger)
	slog.SetDefault(logger)

	// Create the tag stores and reader
	opener := tag.NewOpener()
	reader := tag.NewReader()

	// Create the tempo service
	decoder := beat.NewFfmpegDecoder(cfg.Tempo.FfmpegPath, cfg.Tempo.SampleRate)
	tracker := beat.NewOnsetTracker()
	analyzer := beat.NewAnalyzer(decoder, tracker, cfg.Tempo.MinBPM, cfg.Tempo.MaxBPM)
	tempoService := tempo.NewService(opener, analyzer)

	// Create the covers service
	coverPicker := picker.NewTerminalPicker()
	coversService := covers.NewService(opener, coverPicker, cfg.Covers.Embedded)

	// Create the tagging service
	prompter := prompt.NewTerminal(os.Stdin, os.Stdout)
	taggingService := tagging.NewService(opener, prompter, coversService, tempoService, reader)

	a := &app{
		cfg:     cfgManager,
		tagging: taggingService,
		covers:  coversService,
		tempo:   tempoService,
	}

	root := newRootCommand(a)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cobra.Command {
	var dir, coverDir, usedDir, moveToDir string

	root := &cobra.Command{
		Use:           "tagfill",
		Short:         "Fill missing metadata on local mp3 and m4a files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dir, "dir", "", "directory with audio files")
	root.PersistentFlags().StringVar(&coverDir, "covers", "", "directory with cover candidates (overrides config)")
	root.PersistentFlags().StringVar(&usedDir, "used", "", "directory for consumed covers (overrides config)")
	root.PersistentFlags().StringVar(&moveToDir, "move-to", "", "move finished files here (overrides config)")

	options := func() tagging.Options {
		cfg := a.cfg.Get()
		opts := tagging.Options{
			CoverDir:     cfg.Covers.SourcePath,
			UsedDir:      cfg.Covers.UsedPath,
			MoveToDir:    cfg.Tagging.MoveToPath,
			DefaultYear:  cfg.Tagging.DefaultYear,
			RenameOnMove: cfg.Tagging.RenameOnMove,
		}
		if coverDir != "" {
			opts.CoverDir = coverDir
		}
		if usedDir != "" {
			opts.UsedDir = usedDir
		}
		if moveToDir != "" {
			opts.MoveToDir = moveToDir
		}
		return opts
	}

	tags := &cobra.Command{
		Use:   "tags",
		Short: "Fill missing tags, covers and BPM interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			a.tagging.TagDirectory(ctx, dir, options())
			return nil
		},
	}

	coversCmd := &cobra.Command{
		Use:   "covers",
		Short: "Embed covers into files that have none",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			opts := options()
			a.covers.FillDirectory(ctx, dir, opts.CoverDir, opts.UsedDir)
			return nil
		},
	}

	bpm := &cobra.Command{
		Use:   "bpm",
		Short: "Estimate and write BPM for files missing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			a.tempo.FillDirectory(ctx, dir)
			return nil
		},
	}

	scan := &cobra.Command{
		Use:   "scan",
		Short: "Report present and missing fields without writing",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.tagging.Scan(dir)
			return nil
		},
	}

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Watch a directory and fill BPM on new files",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			slog.Info("Watching for new files. Press Ctrl+C to exit.", "dir", dir)
			return a.tempo.Watch(ctx, dir)
		},
	}

	root.MarkPersistentFlagRequired("dir")
	root.AddCommand(tags, coversCmd, bpm, scan, watch)
	return root
}
