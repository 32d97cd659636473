package config

import (
	"sort"

	"github.com/san-kum/boxdrop/internal/physics"
)

var Presets = map[string]PhysicsConfig{
	"earth": {
		Gravity: physics.DefaultGravity, Restitution: physics.DefaultRestitution, GroundFriction: physics.DefaultGroundFriction,
	},
	"moon": {
		Gravity: 162, Restitution: physics.DefaultRestitution, GroundFriction: physics.DefaultGroundFriction,
	},
	"bouncy": {
		Gravity: physics.DefaultGravity, Restitution: 0.8, GroundFriction: 0.98,
	},
	"ice": {
		Gravity: physics.DefaultGravity, Restitution: 0.1, GroundFriction: 1.0,
	},
	"sticky": {
		Gravity: physics.DefaultGravity, Restitution: 0.05, GroundFriction: 0.5,
	},
}

// GetPreset returns the default config with the named physics preset
// applied, or nil if there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Physics = p
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
