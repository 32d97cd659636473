package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/boxdrop/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != 800 || cfg.Height != 450 {
		t.Errorf("expected 800x450 window, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Tuning() != physics.DefaultTuning() {
		t.Errorf("expected default tuning, got %+v", cfg.Tuning())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
	if dt := cfg.Dt(); dt <= 0 || dt > 0.02 {
		t.Errorf("expected dt of 1/60, got %f", dt)
	}
	if b := cfg.Bounds(); b != physics.NewBounds(800, 450) {
		t.Errorf("unexpected bounds %+v", b)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		param  string
	}{
		{"zero fps", func(c *Config) { c.FPS = 0 }, "fps"},
		{"negative fps", func(c *Config) { c.FPS = -30 }, "fps"},
		{"zero width", func(c *Config) { c.Width = 0 }, "width"},
		{"negative height", func(c *Config) { c.Height = -1 }, "height"},
		{"negative spawn width", func(c *Config) { c.Spawn.Width = -1 }, "spawn.width"},
		{"negative spawn height", func(c *Config) { c.Spawn.Height = -1 }, "spawn.height"},
		{"zero scale", func(c *Config) { c.PixelsPerDot = 0 }, "pixels_per_dot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, physics.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			var argErr *physics.ArgumentError
			if errors.As(err, &argErr) && argErr.Param != tt.param {
				t.Errorf("expected param %s, got %s", tt.param, argErr.Param)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Spawn.Width = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero-width spawn should be valid: %v", err)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxdrop.yaml")

	cfg := DefaultConfig()
	cfg.FPS = 120
	cfg.Physics.Restitution = 0.75
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.FPS != 120 {
		t.Errorf("expected fps 120, got %f", loaded.FPS)
	}
	if loaded.Physics.Restitution != 0.75 {
		t.Errorf("expected restitution 0.75, got %f", loaded.Physics.Restitution)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "fps: 30\nphysics:\n  gravity: 162\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.FPS != 30 || cfg.Physics.Gravity != 162 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Width != DefaultWidth || cfg.Spawn.Mass != DefaultSpawnMass {
		t.Errorf("missing keys should keep defaults: %+v", cfg)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("moon")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Physics.Gravity != 162 {
		t.Errorf("expected gravity 162, got %f", cfg.Physics.Gravity)
	}
	if cfg.Width != DefaultWidth {
		t.Errorf("preset should keep window defaults, got width %d", cfg.Width)
	}

	if GetPreset("jupiter") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}

func TestSetParam(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		val  float64
		get  func() float32
	}{
		{"gravity", 162, func() float32 { return cfg.Physics.Gravity }},
		{"restitution", 0.75, func() float32 { return cfg.Physics.Restitution }},
		{"ground_friction", 0.5, func() float32 { return cfg.Physics.GroundFriction }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cfg.SetParam(tt.name, tt.val); err != nil {
				t.Fatalf("SetParam: %v", err)
			}
			if got := tt.get(); got != float32(tt.val) {
				t.Errorf("got %v, want %v", got, tt.val)
			}
		})
	}

	if err := cfg.SetParam("mass", 1); !errors.Is(err, physics.ErrInvalidArgument) {
		t.Errorf("expected invalid argument for unknown param, got %v", err)
	}
}
