// Package config loads the optional tickring.yaml used by the CLI host.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	tickerrors "github.com/go-drift/tickring/pkg/errors"
	"github.com/go-drift/tickring/pkg/graphics"
	"github.com/go-drift/tickring/pkg/widgets"
)

// FileName is the config file looked up in the working directory.
const FileName = "tickring.yaml"

// Defaults applied by Resolve when a field is absent.
const (
	DefaultDuration = 2 * time.Second
	DefaultFPS      = 30
	DefaultSize     = 200
)

// Config represents the optional tickring.yaml configuration.
type Config struct {
	Style     StyleConfig     `yaml:"style"`
	Animation AnimationConfig `yaml:"animation"`
	Canvas    CanvasConfig    `yaml:"canvas"`
}

// StyleConfig mirrors widgets.TickStyle. Colors are hex strings.
type StyleConfig struct {
	TickCount      *int     `yaml:"tick_count,omitempty"`
	StrokeWidth    *float64 `yaml:"stroke_width,omitempty"`
	TickLength     *float64 `yaml:"tick_length,omitempty"`
	CircleColor    string   `yaml:"circle_color,omitempty"`
	CompletedColor string   `yaml:"completed_color,omitempty"`
	PendingColor   string   `yaml:"pending_color,omitempty"`
	ShowTrack      bool     `yaml:"show_track,omitempty"`
}

// AnimationConfig describes the transition the CLI plays.
type AnimationConfig struct {
	From     *float64 `yaml:"from,omitempty"`
	To       *float64 `yaml:"to,omitempty"`
	Duration string   `yaml:"duration,omitempty"`
	FPS      int      `yaml:"fps,omitempty"`
}

// CanvasConfig sizes the output image.
type CanvasConfig struct {
	Size       int    `yaml:"size,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Path       string
	Style      widgets.TickStyle
	From       float64
	To         float64
	Duration   time.Duration
	FPS        int
	Size       int
	Background graphics.Color
}

// FrameInterval returns the time between frames at the configured rate.
func (r *Resolved) FrameInterval() time.Duration {
	return time.Second / time.Duration(r.FPS)
}

// LoadOptional reads tickring.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &tickerrors.TickError{
			Op:   "config.Load",
			Kind: tickerrors.KindConfig,
			Path: path,
			Err:  err,
		}
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, &tickerrors.TickError{
			Op:   "config.Load",
			Kind: tickerrors.KindParsing,
			Path: path,
			Err:  err,
		}
	}
	return cfg, nil
}

// Parse decodes YAML config data. Unknown fields are rejected and an empty
// document yields an empty Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Resolve fills defaults and validates cfg.
func Resolve(cfg *Config, path string) (*Resolved, error) {
	style := widgets.DefaultTickStyle()
	if cfg.Style.TickCount != nil {
		style.TickCount = *cfg.Style.TickCount
	}
	if cfg.Style.StrokeWidth != nil {
		style.StrokeWidth = *cfg.Style.StrokeWidth
	}
	if cfg.Style.TickLength != nil {
		style.TickLength = *cfg.Style.TickLength
	}
	style.ShowTrack = cfg.Style.ShowTrack

	colors := []struct {
		field string
		value string
		dst   *graphics.Color
	}{
		{"style.circle_color", cfg.Style.CircleColor, &style.CircleColor},
		{"style.completed_color", cfg.Style.CompletedColor, &style.CompletedTickColor},
		{"style.pending_color", cfg.Style.PendingColor, &style.PendingTickColor},
	}
	for _, c := range colors {
		if c.value == "" {
			continue
		}
		parsed, err := graphics.ParseHexColor(c.value)
		if err != nil {
			return nil, invalid(path, fmt.Errorf("%s: %w", c.field, err))
		}
		*c.dst = parsed
	}

	r := &Resolved{
		Path:       path,
		Style:      style,
		To:         1,
		Duration:   DefaultDuration,
		FPS:        DefaultFPS,
		Size:       DefaultSize,
		Background: graphics.ColorWhite,
	}
	if cfg.Animation.From != nil {
		r.From = *cfg.Animation.From
	}
	if cfg.Animation.To != nil {
		r.To = *cfg.Animation.To
	}
	if d := strings.TrimSpace(cfg.Animation.Duration); d != "" {
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return nil, invalid(path, fmt.Errorf("animation.duration: %w", err))
		}
		r.Duration = parsed
	}
	if cfg.Animation.FPS != 0 {
		if cfg.Animation.FPS < 0 {
			return nil, invalid(path, fmt.Errorf("animation.fps must be positive (got %d)", cfg.Animation.FPS))
		}
		r.FPS = cfg.Animation.FPS
	}
	if cfg.Canvas.Size != 0 {
		if cfg.Canvas.Size < 0 {
			return nil, invalid(path, fmt.Errorf("canvas.size must be positive (got %d)", cfg.Canvas.Size))
		}
		r.Size = cfg.Canvas.Size
	}
	if cfg.Canvas.Background != "" {
		bg, err := graphics.ParseHexColor(cfg.Canvas.Background)
		if err != nil {
			return nil, invalid(path, fmt.Errorf("canvas.background: %w", err))
		}
		r.Background = bg
	}
	return r, nil
}

// LoadResolved loads path, or tickring.yaml from dir when path is empty,
// and resolves it.
func LoadResolved(path, dir string) (*Resolved, error) {
	var (
		cfg *Config
		err error
	)
	if path != "" {
		cfg, err = Load(path)
	} else {
		path = filepath.Join(dir, FileName)
		cfg, err = LoadOptional(dir)
	}
	if err != nil {
		return nil, err
	}
	return Resolve(cfg, path)
}

func invalid(path string, err error) error {
	return &tickerrors.TickError{
		Op:   "config.Resolve",
		Kind: tickerrors.KindConfig,
		Path: path,
		Err:  err,
	}
}
