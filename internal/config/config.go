// Package config loads the optional assetpress.toml defaults file.
// Flags set explicitly on the command line always win; the file only
// replaces the built-in defaults, so teams can pin project-wide
// settings without wrapper scripts.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFilename is looked up in the working directory when --config
// is not given.
const DefaultFilename = "assetpress.toml"

// Images holds defaults for the resize and compress commands.
type Images struct {
	MaxDimension int     `toml:"max_dimension"`
	Quality      int     `toml:"quality"`
	MinSizeMB    float64 `toml:"min_size_mb"`
}

// Audio holds defaults for the audio command.
type Audio struct {
	Format  string `toml:"format"`
	Bitrate string `toml:"bitrate"`
}

// Subtitles holds defaults for the subtitles command.
type Subtitles struct {
	Model    string `toml:"model"`
	Language string `toml:"language"`
}

// Config is the resolved defaults file.
type Config struct {
	Images    Images    `toml:"images"`
	Audio     Audio     `toml:"audio"`
	Subtitles Subtitles `toml:"subtitles"`
}

// Default returns the built-in defaults, matching the original
// pipeline's flag defaults.
func Default() Config {
	return Config{
		Images:    Images{MaxDimension: 3840, Quality: 85, MinSizeMB: 2.0},
		Audio:     Audio{Format: "ogg", Bitrate: "192k"},
		Subtitles: Subtitles{Model: "base", Language: "en"},
	}
}

// Load reads path over the built-in defaults. An empty path means "use
// DefaultFilename if present"; a missing explicit path is an error, a
// missing implicit one is not.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFilename
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Images.Quality < 1 || c.Images.Quality > 100 {
		return fmt.Errorf("images.quality must be between 1 and 100, got %d", c.Images.Quality)
	}
	if c.Images.MaxDimension < 4 {
		return fmt.Errorf("images.max_dimension must be at least 4, got %d", c.Images.MaxDimension)
	}
	if c.Images.MinSizeMB < 0 {
		return fmt.Errorf("images.min_size_mb must be non-negative, got %g", c.Images.MinSizeMB)
	}
	return nil
}
