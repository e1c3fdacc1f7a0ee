// Package config loads the scene session configuration.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/arscene/internal/core/imagedb"
	"github.com/zeusync/arscene/internal/core/observability/log"
	"github.com/zeusync/arscene/internal/core/placement"
)

// UpdateMode selects how the runtime delivers camera frames.
type UpdateMode string

const (
	UpdateLatestCameraImage UpdateMode = "LATEST_CAMERA_IMAGE"
	UpdateBlocking          UpdateMode = "BLOCKING"
)

type FocusMode string

const (
	FocusAuto  FocusMode = "AUTO"
	FocusFixed FocusMode = "FIXED"
)

type DepthMode string

const (
	DepthAutomatic DepthMode = "AUTOMATIC"
	DepthDisabled  DepthMode = "DISABLED"
)

// Config is the full session configuration.
type Config struct {
	LogLevel string               `yaml:"log_level"`
	Model    ModelConfig          `yaml:"model"`
	Session  SessionConfig        `yaml:"session"`
	Images   []imagedb.ImageModel `yaml:"images"`
}

// ModelConfig describes the object placed on tap.
type ModelConfig struct {
	URI         string        `yaml:"uri"`
	Scale       float64       `yaml:"scale"`
	LoadTimeout time.Duration `yaml:"load_timeout"`
}

// SessionConfig mirrors the runtime's session switches.
type SessionConfig struct {
	UpdateMode UpdateMode `yaml:"update_mode"`
	FocusMode  FocusMode  `yaml:"focus_mode"`
	DepthMode  DepthMode  `yaml:"depth_mode"`
}

const defaultModelURI = "https://storage.googleapis.com/ar-answers-in-search-models/static/Tiger/model.glb"

// Default returns the stock configuration: the tiger model and the three
// bundled reference images.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Model: ModelConfig{
			URI:         defaultModelURI,
			Scale:       placement.DefaultScale,
			LoadTimeout: 30 * time.Second,
		},
		Session: SessionConfig{
			UpdateMode: UpdateLatestCameraImage,
			FocusMode:  FocusAuto,
			DepthMode:  DepthAutomatic,
		},
		Images: []imagedb.ImageModel{
			{Name: "spoons", Path: "augmentedimages/spoons.png", WidthMeters: 0.1},
			{Name: "qrcode", Path: "augmentedimages/qrcode.png", WidthMeters: 0.12},
			{Name: "wallet", Path: "augmentedimages/wallet.jpg", WidthMeters: 0.06},
		},
	}
}

// LoadYAML decodes a configuration on top of Default and validates it.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads a YAML configuration. Relative image paths are resolved
// against the file's directory.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	c, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	base := filepath.Dir(path)
	for i := range c.Images {
		if !filepath.IsAbs(c.Images[i].Path) {
			c.Images[i].Path = filepath.Join(base, c.Images[i].Path)
		}
	}
	return c, nil
}

// Level returns the parsed log level. Validate guarantees it parses.
func (c *Config) Level() log.Level {
	l, _ := log.ParseLevel(c.LogLevel)
	return l
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.Model.Validate(); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	seen := make(map[string]struct{}, len(c.Images))
	for i, img := range c.Images {
		if img.Name == "" {
			return fmt.Errorf("%w: image %d has no name", ErrInvalid, i)
		}
		if img.Path == "" {
			return fmt.Errorf("%w: image %q has no path", ErrInvalid, img.Name)
		}
		if !(img.WidthMeters > 0) {
			return fmt.Errorf("%w: image %q width_m must be positive", ErrInvalid, img.Name)
		}
		if _, dup := seen[img.Name]; dup {
			return fmt.Errorf("%w: image %q listed twice", ErrInvalid, img.Name)
		}
		seen[img.Name] = struct{}{}
	}
	return nil
}

func (m *ModelConfig) Validate() error {
	if m.URI == "" {
		return fmt.Errorf("%w: uri is required", ErrInvalid)
	}
	if !(m.Scale > 0) {
		return fmt.Errorf("%w: scale must be positive", ErrInvalid)
	}
	if m.LoadTimeout < 0 {
		return fmt.Errorf("%w: load_timeout must not be negative", ErrInvalid)
	}
	return nil
}

func (s *SessionConfig) Validate() error {
	switch s.UpdateMode {
	case UpdateLatestCameraImage, UpdateBlocking:
	default:
		return fmt.Errorf("%w: update_mode %q", ErrInvalid, s.UpdateMode)
	}
	switch s.FocusMode {
	case FocusAuto, FocusFixed:
	default:
		return fmt.Errorf("%w: focus_mode %q", ErrInvalid, s.FocusMode)
	}
	switch s.DepthMode {
	case DepthAutomatic, DepthDisabled:
	default:
		return fmt.Errorf("%w: depth_mode %q", ErrInvalid, s.DepthMode)
	}
	return nil
}
