package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/cyclopcam/boxcompare/pkg/geom"
	"github.com/cyclopcam/boxcompare/pkg/preview"
	"github.com/cyclopcam/boxcompare/pkg/scene"
)

const DefaultScale = 0.65
const DefaultImageDir = "fixed"
const DefaultLimit = 4

var ErrInvalidScale = errors.New("Display scale must be greater than zero")

type Config struct {
	Scale    float64                `json:"scale"`    // Display size of one image pixel
	OriginX  float64                `json:"originX"`  // Display position of the image's top-left corner
	OriginY  float64                `json:"originY"`  // Display position of the image's top-left corner
	ImageDir string                 `json:"imageDir"` // Directory where the images named in the CSV live
	Limit    int                    `json:"limit"`    // Maximum number of records to load (0 = all)
	Styles   map[scene.Style]string `json:"styles"`   // Hex color of each style

	LineWidth float64 `json:"lineWidth"` // Box outline width of preview images, in image pixels
}

// NewConfig returns a Config with default values
func NewConfig() *Config {
	cfg := &Config{
		Scale:    DefaultScale,
		ImageDir: DefaultImageDir,
		Limit:    DefaultLimit,
		Styles:   map[scene.Style]string{},

		LineWidth: preview.DefaultLineWidth,
	}
	for k, v := range scene.DefaultColors {
		cfg.Styles[k] = v
	}
	return cfg
}

// LoadConfig reads a JSON config file. Fields that are absent from the file keep their default values.
// If filename is empty, the defaults are returned.
func LoadConfig(filename string) (*Config, error) {
	cfg := NewConfig()
	if filename == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("Error loading %v: %w", filename, err)
	}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("Error loading as JSON %v: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("Invalid config %v: %w", filename, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("%w (%v)", ErrInvalidScale, c.Scale)
	}
	if c.LineWidth <= 0 {
		return fmt.Errorf("Line width must be greater than zero (%v)", c.LineWidth)
	}
	for style := range c.Styles {
		if _, ok := scene.DefaultColors[style]; !ok {
			return fmt.Errorf("Unknown style '%v'", style)
		}
	}
	return nil
}

func (c *Config) Origin() geom.Vec2 {
	return geom.Vec2{X: c.OriginX, Y: c.OriginY}
}
