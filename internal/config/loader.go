package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// LoadFlappy loads Flappy Bird configuration.
// Search order: customPath -> ~/.arcade/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default
func LoadFlappy(customPath string) (FlappyConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("flappy.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/flappy.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultFlappyYAML)
	if err != nil {
		return DefaultFlappyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the hard-coded defaults, so partial files
// only override the keys they mention.
func Parse(data []byte) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FlappyConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg FlappyConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyFlappyPreset modifies the config based on a difficulty preset.
// Presets only change how often obstacles spawn; gap bounds are fixed.
// Normal leaves the loaded values untouched.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Obstacles.SpawnInterval += time.Second
	case DifficultyHard:
		cfg.Obstacles.SpawnInterval -= time.Second
		if cfg.Obstacles.SpawnInterval <= cfg.Obstacles.SpawnJitter {
			cfg.Obstacles.SpawnInterval = cfg.Obstacles.SpawnJitter + 500*time.Millisecond
		}
	}
}

// Validate checks that the configuration describes a playable world.
func (c FlappyConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world size must be positive", ErrInvalid)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalid)
	case c.Player.Mass <= 0:
		return fmt.Errorf("%w: player mass must be positive", ErrInvalid)
	case c.Player.Damping < 0:
		return fmt.Errorf("%w: player damping must not be negative", ErrInvalid)
	case c.Player.AnimFrames < 1 || c.Player.FrameDuration <= 0:
		return fmt.Errorf("%w: player animation needs at least one frame and a positive duration", ErrInvalid)
	case c.Physics.ScrollSpeed < 0:
		return fmt.Errorf("%w: scroll speed must not be negative", ErrInvalid)
	case c.Ground.TileWidth < c.World.Width:
		return fmt.Errorf("%w: ground tile width %.0f is narrower than the world (%.0f)", ErrInvalid, c.Ground.TileWidth, c.World.Width)
	case c.Ground.TileHeight <= 0 || c.Ground.TileHeight >= c.World.Height:
		return fmt.Errorf("%w: ground tile height must be within the world", ErrInvalid)
	case c.Obstacles.PipeWidth <= 0:
		return fmt.Errorf("%w: pipe width must be positive", ErrInvalid)
	case c.Obstacles.SpawnJitter < 0 || c.Obstacles.SpawnInterval-c.Obstacles.SpawnJitter <= 0:
		return fmt.Errorf("%w: spawn interval must stay positive after jitter", ErrInvalid)
	case c.Obstacles.GapFactor < MinGapFactor || c.Obstacles.GapRange < 0 ||
		c.Obstacles.GapFactor+c.Obstacles.GapRange > MaxGapFactor:
		return fmt.Errorf("%w: gap must stay within %.1f..%.1f player heights, got %.1f+%.1f",
			ErrInvalid, MinGapFactor, MaxGapFactor, c.Obstacles.GapFactor, c.Obstacles.GapRange)
	case c.MaxGap() >= c.AvailableHeight():
		return fmt.Errorf("%w: largest gap %.1f does not fit in available height %.1f", ErrInvalid, c.MaxGap(), c.AvailableHeight())
	case c.GameOver.BannerDuration < 0:
		return fmt.Errorf("%w: banner duration must not be negative", ErrInvalid)
	}
	return nil
}
