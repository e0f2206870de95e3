// Package config loads and saves render settings as YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// ErrInvalidConfig is returned by Validate for settings that cannot render
var ErrInvalidConfig = errors.New("invalid render config")

// RenderConfig holds every setting of a render run
type RenderConfig struct {
	Width           int     `yaml:"width"`
	AspectRatio     float64 `yaml:"aspect_ratio"`
	SamplesPerPixel int     `yaml:"samples_per_pixel"`
	MaxDepth        int     `yaml:"max_depth"`
	TileSize        int     `yaml:"tile_size"`
	NumWorkers      int     `yaml:"num_workers"` // 0 means one per CPU
	Seed            int64   `yaml:"seed"`
	Scene           string  `yaml:"scene"`  // Built-in scene name or path to a scene file
	Output          string  `yaml:"output"` // Output path; the extension picks the format
	LogLevel        string  `yaml:"log_level"`
	LogFile         string  `yaml:"log_file"` // Also log to this file when set
}

// DefaultConfig returns the settings of the classic 400px, 100 sample render
func DefaultConfig() *RenderConfig {
	return &RenderConfig{
		Width:           400,
		AspectRatio:     16.0 / 9.0,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		TileSize:        renderer.DefaultTileSize,
		NumWorkers:      0,
		Seed:            42,
		Scene:           "default",
		Output:          "image.ppm",
		LogLevel:        "info",
	}
}

// LoadConfig reads a YAML file over the defaults.
// On error the defaults are still returned so callers may carry on.
func LoadConfig(filePath string) (*RenderConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("failed to read config %s: %w", filePath, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("error parsing config %s: %w", filePath, err)
	}

	return config, nil
}

// SaveConfig writes config to filePath as YAML
func SaveConfig(config *RenderConfig, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Height derives the image height from width and aspect ratio, at least 1
func (c *RenderConfig) Height() int {
	if c.AspectRatio <= 0 {
		return 1
	}
	return max(1, int(float64(c.Width)/c.AspectRatio))
}

// Validate reports the first setting that would make rendering impossible
func (c *RenderConfig) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfig, c.Width)
	case c.AspectRatio <= 0:
		return fmt.Errorf("%w: aspect_ratio must be positive, got %g", ErrInvalidConfig, c.AspectRatio)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples_per_pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max_depth must be positive, got %d", ErrInvalidConfig, c.MaxDepth)
	case c.TileSize < 0:
		return fmt.Errorf("%w: tile_size must not be negative, got %d", ErrInvalidConfig, c.TileSize)
	case c.NumWorkers < 0:
		return fmt.Errorf("%w: num_workers must not be negative, got %d", ErrInvalidConfig, c.NumWorkers)
	case c.Output == "":
		return fmt.Errorf("%w: output path is empty", ErrInvalidConfig)
	}
	return nil
}

// SamplingConfig converts the settings into the renderer's configuration
func (c *RenderConfig) SamplingConfig() renderer.SamplingConfig {
	return renderer.SamplingConfig{
		Width:           c.Width,
		Height:          c.Height(),
		SamplesPerPixel: c.SamplesPerPixel,
		MaxDepth:        c.MaxDepth,
		TileSize:        c.TileSize,
		NumWorkers:      c.NumWorkers,
		Seed:            c.Seed,
	}
}
