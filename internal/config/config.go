// Package config loads orrery settings from a YAML file and applies
// command-line overrides on top.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/shader"
	"gopkg.in/yaml.v3"
)

// Render modes.
const (
	ModeSystem   = "system"
	ModeShowcase = "showcase"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds viewer and export settings.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`

	Mode     string `yaml:"mode"`
	Material string `yaml:"material"`
	// Mesh is an optional .obj/.glb model for the showcase planet.
	Mesh string `yaml:"mesh"`

	ShowOrbits bool    `yaml:"show_orbits"`
	ShowAxes   bool    `yaml:"show_axes"`
	Stars      int     `yaml:"stars"`
	Background Color   `yaml:"background"`
	FOV        float64 `yaml:"fov"` // degrees

	// Output is an image path, or a directory when Frames > 1.
	Output string `yaml:"output"`
	Frames int    `yaml:"frames"`
	Scale  int    `yaml:"scale"` // export upscale factor
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Width:      160,
		Height:     90,
		FPS:        30,
		Mode:       ModeSystem,
		Material:   shader.Rocky.String(),
		ShowOrbits: true,
		Stars:      500,
		Background: Color(render.ColorSpace),
		FOV:        90,
		Frames:     1,
		Scale:      1,
	}
}

// Load reads a YAML config file. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	// A relative mesh path is taken from the config file's directory.
	if cfg.Mesh != "" && !filepath.IsAbs(cfg.Mesh) {
		cfg.Mesh = filepath.Join(filepath.Dir(path), cfg.Mesh)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the file setting alone.
type Flags struct {
	Width, Height, FPS int
	Mode               string
	Material           string
	Mesh               string
	Background         string
	FOV                float64
	Stars              int
	Output             string
	Frames             int
	Scale              int
	// Orbits is nil unless the flag was given explicitly.
	Orbits *bool
}

// Resolve applies non-zero flags over the loaded settings.
func (c *Config) Resolve(flags Flags) error {
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}
	if flags.Material != "" {
		c.Material = flags.Material
	}
	if flags.Mesh != "" {
		c.Mesh = flags.Mesh
	}
	if flags.Background != "" {
		bg, err := ParseColor(flags.Background)
		if err != nil {
			return fmt.Errorf("-bg: %w", err)
		}
		c.Background = Color(bg)
	}
	if flags.FOV > 0 {
		c.FOV = flags.FOV
	}
	if flags.Stars > 0 {
		c.Stars = flags.Stars
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Orbits != nil {
		c.ShowOrbits = *flags.Orbits
	}
	return nil
}

// Validate reports the first setting that is out of range.
func (c Config) Validate() error {
	switch {
	case c.Width < 1 || c.Width > 8192:
		return fmt.Errorf("%w: width %d not in [1, 8192]", ErrInvalid, c.Width)
	case c.Height < 1 || c.Height > 8192:
		return fmt.Errorf("%w: height %d not in [1, 8192]", ErrInvalid, c.Height)
	case c.FPS < 1 || c.FPS > 240:
		return fmt.Errorf("%w: fps %d not in [1, 240]", ErrInvalid, c.FPS)
	case c.Mode != ModeSystem && c.Mode != ModeShowcase:
		return fmt.Errorf("%w: mode %q (want %s or %s)", ErrInvalid, c.Mode, ModeSystem, ModeShowcase)
	case !(c.FOV > 0 && c.FOV < 180):
		return fmt.Errorf("%w: fov %v not in (0, 180)", ErrInvalid, c.FOV)
	case c.Stars < 0:
		return fmt.Errorf("%w: stars %d is negative", ErrInvalid, c.Stars)
	case c.Frames < 1:
		return fmt.Errorf("%w: frames %d is less than 1", ErrInvalid, c.Frames)
	case c.Scale < 1 || c.Scale > 16:
		return fmt.Errorf("%w: scale %d not in [1, 16]", ErrInvalid, c.Scale)
	}

	if _, err := shader.ParseMaterial(c.Material); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Output != "" && c.Frames == 1 {
		ext := strings.ToLower(filepath.Ext(c.Output))
		if !slices.Contains(render.Formats(), ext) {
			return fmt.Errorf("%w: output %q: %w", ErrInvalid, c.Output, render.ErrUnsupportedFormat)
		}
	}
	return nil
}

// MaterialValue returns the parsed material. Call Validate first.
func (c Config) MaterialValue() shader.Material {
	m, err := shader.ParseMaterial(c.Material)
	if err != nil {
		return shader.Rocky
	}
	return m
}

// Color is an opaque RGB color written as "R,G,B" in YAML.
type Color color.RGBA

// Color returns the value as a render color.
func (c Color) Color() render.Color {
	return render.Color(c)
}

// UnmarshalYAML implements yaml.Unmarshaler for Color.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = Color(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Color.
func (c Color) MarshalYAML() (any, error) {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B), nil
}

// ParseColor parses "R,G,B" with each channel in [0, 255].
func ParseColor(s string) (render.Color, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 3 {
		return render.Color{}, fmt.Errorf("color %q: want R,G,B", s)
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return render.Color{}, fmt.Errorf("color %q: %w", s, err)
		}
		if v < 0 || v > 255 {
			return render.Color{}, fmt.Errorf("color %q: channel %d out of range", s, v)
		}
		ch[i] = uint8(v)
	}
	return render.RGB(ch[0], ch[1], ch[2]), nil
}
