package config

// Config holds the application configuration.
type Config struct {
	Logger  Logger  `yaml:"logger"`
	Covers  Covers  `yaml:"covers"`
	Tagging Tagging `yaml:"tagging"`
	Tempo   Tempo   `yaml:"tempo"`
}

// Logger holds the configuration for the app logging.
type Logger struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Covers holds the cover source and sink directories plus embed options.
type Covers struct {
	SourcePath string   `yaml:"sourcePath" validate:"required"`
	UsedPath   string   `yaml:"usedPath"`
	Embedded   Embedded `yaml:"embedded"`
}

// Embedded controls downscaling of images before they are embedded.
type Embedded struct {
	Size    int `yaml:"size"`
	Quality int `yaml:"quality"`
}

// Tagging holds defaults for the interactive metadata pass.
type Tagging struct {
	// MoveToPath, when set, is where finished files are relocated.
	MoveToPath string `yaml:"moveToPath"`
	// DefaultYear seeds the year prompt.
	DefaultYear int `yaml:"defaultYear"`
	// RenameOnMove renders an ASCII-safe "Artist - Title" name for the
	// destination instead of keeping the original base name.
	RenameOnMove bool `yaml:"renameOnMove"`
}

// Tempo holds the beat analysis settings.
type Tempo struct {
	FfmpegPath string  `yaml:"ffmpegPath"`
	SampleRate int     `yaml:"sampleRate" validate:"gte=0"`
	MinBPM     float64 `yaml:"minBpm"`
	MaxBPM     float64 `yaml:"maxBpm"`
}
