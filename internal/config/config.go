// Package config loads PaintBoard settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"PaintBoard/internal/export"
	"PaintBoard/internal/paint"
	"PaintBoard/internal/state"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Canvas  CanvasConfig `toml:"canvas"`
	Brush   BrushConfig  `toml:"brush"`
	Palette []string     `toml:"palette"`
	Render  RenderConfig `toml:"render"`
	Export  ExportConfig `toml:"export"`
	Log     LogConfig    `toml:"log"`
}

// CanvasConfig sizes the drawing surface. The surface is allocated once.
type CanvasConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type BrushConfig struct {
	Sizes          []int   `toml:"sizes"`
	EraserSizes    []int   `toml:"eraser_sizes"`
	TouchTolerance float32 `toml:"touch_tolerance"`
}

type RenderConfig struct {
	Backend string `toml:"backend"` // "rasterx" or "gg"
}

type ExportConfig struct {
	Directory string `toml:"directory"`
	Format    string `toml:"format"` // "jpeg" or "pdf"
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{Width: 1080, Height: 1920},
		Brush: BrushConfig{
			Sizes:          []int{state.DefaultBrushSize, 10, 20, 35},
			EraserSizes:    []int{10, 15, 35, 50},
			TouchTolerance: state.DefaultTouchTolerance,
		},
		Palette: []string{
			"#000000", "#ffffff", "#f44336", "#e91e63", "#9c27b0", "#3f51b5",
			"#2196f3", "#009688", "#4caf50", "#ffeb3b", "#ff9800", "#795548",
		},
		Render: RenderConfig{Backend: paint.BackendRasterx},
		Export: ExportConfig{Format: "jpeg"},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height))
	}
	for _, s := range c.Brush.Sizes {
		if s <= 0 {
			errs = append(errs, fmt.Errorf("brush size %d must be positive", s))
		}
	}
	for _, s := range c.Brush.EraserSizes {
		if s <= 0 {
			errs = append(errs, fmt.Errorf("eraser size %d must be positive", s))
		}
	}
	if c.Brush.TouchTolerance < 0 {
		errs = append(errs, fmt.Errorf("touch tolerance %v must not be negative", c.Brush.TouchTolerance))
	}
	for _, hex := range c.Palette {
		if _, err := state.ParseHexColor(hex); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := paint.NewDriver(c.Render.Backend); err != nil {
		errs = append(errs, err)
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ExportFormat returns the parsed export format.
func (c *Config) ExportFormat() export.Format {
	f, _ := export.ParseFormat(c.Export.Format)
	return f
}

// ExportDir expands a leading "~" in the export directory.
func (c *Config) ExportDir() string {
	dir := c.Export.Directory
	if strings.HasPrefix(dir, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
		}
	}
	return dir
}

func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}
