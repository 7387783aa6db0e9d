package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const platformerFile = "platformer.yaml"

// LoadPlatformer loads the platformer configuration.
// Search order: customPath -> ~/.numrun/configs/platformer.yaml ->
// ./configs/platformer.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides the
// keys it names.
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PlatformerConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return PlatformerConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(platformerFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", platformerFile)); err == nil {
		if cfg, err := decode(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decode(defaultPlatformerYAML)
	if err != nil {
		return DefaultPlatformerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func decode(data []byte) (PlatformerConfig, error) {
	cfg := DefaultPlatformerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c PlatformerConfig) Validate() error {
	var errs []error
	if c.Physics.Gravity <= 0 {
		errs = append(errs, errors.New("physics.gravity must be positive"))
	}
	if c.Physics.JumpForce <= 0 {
		errs = append(errs, errors.New("physics.jump_force must be positive"))
	}
	if c.Physics.Friction <= 0 || c.Physics.Friction >= 1 {
		errs = append(errs, errors.New("physics.friction must be in (0, 1)"))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if c.Player.Lives < 1 {
		errs = append(errs, errors.New("player.lives must be at least 1"))
	}
	if c.World.Goal <= c.Player.StartX {
		errs = append(errs, fmt.Errorf("world.goal %.1f must be past player.start_x %.1f", c.World.Goal, c.Player.StartX))
	}
	if c.Bonus.OffsetStep <= 0 || c.Bonus.OffsetMax <= 0 {
		errs = append(errs, errors.New("bonus offset step and max must be positive"))
	}
	if c.Bonus.FrameInterval <= 0 {
		errs = append(errs, errors.New("bonus.frame_interval must be positive"))
	}
	if c.Bonus.HoleWidth <= c.Player.Width {
		errs = append(errs, errors.New("bonus.hole_width must exceed player.width"))
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".numrun", "configs", filename)
}
