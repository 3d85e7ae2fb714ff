// Package config holds the brush configuration and drawer settings shared by
// every placement component, plus their YAML persistence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"propbrush/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// DefaultFile is where the CLI keeps its configuration unless told otherwise.
const DefaultFile = "~/.propbrush/config.yaml"

var ErrInvalid = errors.New("invalid configuration")

// Configuration is edited by the host and read by reference by every
// placement component.
type Configuration struct {
	SurfaceMask  engine.LayerMask `yaml:"surfaceMask"`
	InstanceMask engine.LayerMask `yaml:"instanceMask"`
	InstanceTag  string           `yaml:"instanceTag"`

	BrushRadius  float32 `yaml:"brushRadius"`
	Spread       float32 `yaml:"spread"`
	SpawnCount   int     `yaml:"spawnCount"`
	AvoidOverlap bool    `yaml:"avoidOverlap"`

	AlignToNormal     bool       `yaml:"alignToNormal"`
	RandomizeRotation bool       `yaml:"randomizeRotation"`
	RotationDelta     rl.Vector3 `yaml:"rotationDelta"`
	RotationStep      float32    `yaml:"rotationStep"`

	RandomizeScale  bool    `yaml:"randomizeScale"`
	ScaleMultiplier float32 `yaml:"scaleMultiplier"`
	MinScale        float32 `yaml:"minScale"`
	MaxScale        float32 `yaml:"maxScale"`

	PositionOffset rl.Vector3 `yaml:"positionOffset"`
	SetParent      bool       `yaml:"setParent"`
	AlignProjected bool       `yaml:"alignProjected"`

	PalettePath string `yaml:"palettePath"`
	Selection   []bool `yaml:"selection,omitempty"`
}

// Settings tune the tool itself rather than what it places.
type Settings struct {
	RotationMaxSpeed       float32  `yaml:"rotationMaxSpeed"`
	ShowProjection         bool     `yaml:"showProjection"`
	ShowNormal             bool     `yaml:"showNormal"`
	NormalizeRotationDelta bool     `yaml:"normalizeRotationDelta"`
	HandleThickness        float32  `yaml:"handleThickness"`
	DrawColor              rl.Color `yaml:"drawColor"`
	EraseColor             rl.Color `yaml:"eraseColor"`
	IdleColor              rl.Color `yaml:"idleColor"`
}

// File is the on-disk layout.
type File struct {
	Brush    Configuration `yaml:"brush"`
	Settings Settings      `yaml:"settings"`
}

func Default() Configuration {
	return Configuration{
		SurfaceMask:     engine.EverythingMask,
		InstanceMask:    engine.NothingMask,
		BrushRadius:     2,
		Spread:          1,
		SpawnCount:      1,
		AvoidOverlap:    true,
		AlignToNormal:   true,
		RotationStep:    1,
		ScaleMultiplier: 1,
		MinScale:        1,
		MaxScale:        1,
		AlignProjected:  true,
	}
}

func DefaultSettings() Settings {
	return Settings{
		RotationMaxSpeed:       1,
		ShowProjection:         true,
		ShowNormal:             true,
		NormalizeRotationDelta: true,
		HandleThickness:        2,
		DrawColor:              rl.Green,
		EraseColor:             rl.Red,
		IdleColor:              rl.Yellow,
	}
}

func DefaultFileContents() File {
	return File{Brush: Default(), Settings: DefaultSettings()}
}

// Validate checks the invariants the placement engine relies on.
func (c *Configuration) Validate() error {
	if c.BrushRadius <= 0 {
		return fmt.Errorf("%w: brush radius must be > 0, got %g", ErrInvalid, c.BrushRadius)
	}
	if c.SpawnCount < 1 {
		return fmt.Errorf("%w: spawn count must be >= 1, got %d", ErrInvalid, c.SpawnCount)
	}
	if c.MinScale > c.MaxScale {
		return fmt.Errorf("%w: min scale %g exceeds max scale %g", ErrInvalid, c.MinScale, c.MaxScale)
	}
	if c.Spread < 0 {
		return fmt.Errorf("%w: spread must not be negative, got %g", ErrInvalid, c.Spread)
	}
	return nil
}

func (s *Settings) Validate() error {
	if s.RotationMaxSpeed <= 0 {
		return fmt.Errorf("%w: rotation max speed must be > 0, got %g", ErrInvalid, s.RotationMaxSpeed)
	}
	return nil
}

// ResolvePath expands a leading ~ in path.
func ResolvePath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return expanded, nil
}

// Load reads path. A missing file yields the defaults.
func Load(path string) (File, error) {
	f := DefaultFileContents()
	resolved, err := ResolvePath(path)
	if err != nil {
		return f, err
	}
	data, err := os.ReadFile(resolved)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return f, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse config: %w", err)
	}
	if err := f.Brush.Validate(); err != nil {
		return f, err
	}
	if err := f.Settings.Validate(); err != nil {
		return f, err
	}
	return f, nil
}

// Save writes f to path, creating parent directories.
func Save(path string, f File) error {
	resolved, err := ResolvePath(path)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Write encodes f as YAML to w.
func Write(w io.Writer, f File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
