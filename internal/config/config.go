package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/boxdrop/internal/physics"
)

const (
	DefaultTitle        = "boxdrop"
	DefaultWidth        = 16 * 50
	DefaultHeight       = 9 * 50
	DefaultFPS          = 60.0
	DefaultSpawnSize    = 10.0
	DefaultSpawnMass    = 10.0
	DefaultWorkers      = 1
	DefaultTheme        = "cyberpunk"
	DefaultPixelsPerDot = 4.0
)

type Config struct {
	Title        string        `yaml:"title"`
	Width        int           `yaml:"width"`
	Height       int           `yaml:"height"`
	FPS          float64       `yaml:"fps"`
	Physics      PhysicsConfig `yaml:"physics"`
	Spawn        SpawnConfig   `yaml:"spawn"`
	Workers      int           `yaml:"workers"`
	Theme        string        `yaml:"theme"`
	PixelsPerDot float32       `yaml:"pixels_per_dot"`
}

type PhysicsConfig struct {
	Gravity        float32 `yaml:"gravity"`
	Restitution    float32 `yaml:"restitution"`
	GroundFriction float32 `yaml:"ground_friction"`
}

// SpawnConfig is the shape given to bodies created with the pointer.
type SpawnConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	Mass   float32 `yaml:"mass"`
}

func DefaultConfig() *Config {
	return &Config{
		Title:  DefaultTitle,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		FPS:    DefaultFPS,
		Physics: PhysicsConfig{
			Gravity:        physics.DefaultGravity,
			Restitution:    physics.DefaultRestitution,
			GroundFriction: physics.DefaultGroundFriction,
		},
		Spawn: SpawnConfig{
			Width:  DefaultSpawnSize,
			Height: DefaultSpawnSize,
			Mass:   DefaultSpawnMass,
		},
		Workers:      DefaultWorkers,
		Theme:        DefaultTheme,
		PixelsPerDot: DefaultPixelsPerDot,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate is run once at startup. Every failure is a *physics.ArgumentError.
func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return &physics.ArgumentError{Param: "fps", Value: c.FPS, Reason: "must be positive"}
	}
	if c.Width <= 0 {
		return &physics.ArgumentError{Param: "width", Value: float64(c.Width), Reason: "must be positive"}
	}
	if c.Height <= 0 {
		return &physics.ArgumentError{Param: "height", Value: float64(c.Height), Reason: "must be positive"}
	}
	if c.Spawn.Width < 0 {
		return &physics.ArgumentError{Param: "spawn.width", Value: float64(c.Spawn.Width), Reason: "must be non-negative"}
	}
	if c.Spawn.Height < 0 {
		return &physics.ArgumentError{Param: "spawn.height", Value: float64(c.Spawn.Height), Reason: "must be non-negative"}
	}
	if c.PixelsPerDot <= 0 {
		return &physics.ArgumentError{Param: "pixels_per_dot", Value: float64(c.PixelsPerDot), Reason: "must be positive"}
	}
	return nil
}

// Dt is the fixed tick length in seconds.
func (c *Config) Dt() float32 {
	return float32(1 / c.FPS)
}

func (c *Config) Tuning() physics.Tuning {
	return physics.Tuning{
		Gravity:        c.Physics.Gravity,
		Restitution:    c.Physics.Restitution,
		GroundFriction: c.Physics.GroundFriction,
	}
}

func (c *Config) Bounds() physics.Bounds {
	return physics.NewBounds(float32(c.Width), float32(c.Height))
}

// PhysicsParams names the tuning values SetParam accepts.
var PhysicsParams = []string{"gravity", "restitution", "ground_friction"}

// SetParam sets one physics tuning value by its yaml name.
func (c *Config) SetParam(name string, v float64) error {
	switch name {
	case "gravity":
		c.Physics.Gravity = float32(v)
	case "restitution":
		c.Physics.Restitution = float32(v)
	case "ground_friction":
		c.Physics.GroundFriction = float32(v)
	default:
		return fmt.Errorf("unknown parameter %q (available: %v): %w", name, PhysicsParams, physics.ErrInvalidArgument)
	}
	return nil
}
