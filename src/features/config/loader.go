package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML file from the given path and returns a new Manager.
// If the file doesn't exist, creates a default configuration.
func Load(path string) (*Manager, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("Config file not found, creating default configuration", "path", path)
		defaultCfg := createDefaultConfig()

		manager := NewManager(defaultCfg)
		if err := manager.Save(path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return manager, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return NewManager(&cfg), nil
}

// createDefaultConfig creates a new Config with sensible default values.
func createDefaultConfig() *Config {
	return &Config{
		Logger: Logger{
			Level:  "info",
			Format: "text",
		},
		Covers: Covers{
			SourcePath: "./covers",
			UsedPath:   "./covers/used",
			Embedded: Embedded{
				Size:    1000,
				Quality: 85,
			},
		},
		Tagging: Tagging{
			MoveToPath:   "",
			DefaultYear:  2025,
			RenameOnMove: false,
		},
		Tempo: Tempo{
			FfmpegPath: "ffmpeg",
			SampleRate: 22050,
			MinBPM:     60,
			MaxBPM:     200,
		},
	}
}

// applyDefaults fills in values a hand-edited config may have dropped.
func applyDefaults(cfg *Config) {
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = "text"
	}
	if cfg.Covers.Embedded.Quality <= 0 {
		cfg.Covers.Embedded.Quality = 85
	}
	if cfg.Tagging.DefaultYear <= 0 {
		cfg.Tagging.DefaultYear = 2025
	}
	if cfg.Tempo.FfmpegPath == "" {
		cfg.Tempo.FfmpegPath = "ffmpeg"
	}
	if cfg.Tempo.SampleRate <= 0 {
		cfg.Tempo.SampleRate = 22050
	}
	if cfg.Tempo.MinBPM <= 0 {
		cfg.Tempo.MinBPM = 60
	}
	if cfg.Tempo.MaxBPM <= cfg.Tempo.MinBPM {
		cfg.Tempo.MaxBPM = 200
	}
}
