// Package config provides YAML-based game configuration loading and
// difficulty presets for the flappy game.
package config

import "time"

// FlappyConfig contains all configuration for the Flappy Bird game.
// Distances are world units (y grows up), speeds are per second unless noted.
type FlappyConfig struct {
	World     FlappyWorld     `yaml:"world"`
	Physics   FlappyPhysics   `yaml:"physics"`
	Player    FlappyPlayer    `yaml:"player"`
	Ground    FlappyGround    `yaml:"ground"`
	Obstacles FlappyObstacles `yaml:"obstacles"`
	GameOver  FlappyGameOver  `yaml:"game_over"`
}

// FlappyWorld defines the visible play area.
type FlappyWorld struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FlappyPhysics defines global physics parameters.
type FlappyPhysics struct {
	Gravity     float64 `yaml:"gravity"`      // Downward acceleration, units/s²
	ScrollSpeed float64 `yaml:"scroll_speed"` // Units moved left per tick (not per second)
}

// FlappyPlayer defines the player body and its animation.
type FlappyPlayer struct {
	Width         float64       `yaml:"width"`
	Height        float64       `yaml:"height"`
	Mass          float64       `yaml:"mass"`
	Damping       float64       `yaml:"damping"`
	FlapImpulse   float64       `yaml:"flap_impulse"`
	AnimFrames    int           `yaml:"anim_frames"`
	FrameDuration time.Duration `yaml:"frame_duration"`
}

// FlappyGround defines the size of one of the two looping ground tiles.
type FlappyGround struct {
	TileWidth  float64 `yaml:"tile_width"`
	TileHeight float64 `yaml:"tile_height"`
}

// Gap bounds in player heights. Every gap the spawner produces lies in
// [MinGapFactor, MaxGapFactor].
const (
	MinGapFactor = 2.5
	MaxGapFactor = 3.5
)

// FlappyObstacles defines the obstacle spawner.
// Gap size is GapFactor..GapFactor+GapRange times the player height.
type FlappyObstacles struct {
	PipeWidth     float64       `yaml:"pipe_width"`
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	SpawnJitter   time.Duration `yaml:"spawn_jitter"` // Uniform ± around SpawnInterval
	GapFactor     float64       `yaml:"gap_factor"`
	GapRange      float64       `yaml:"gap_range"`
}

// FlappyGameOver defines the game over transition.
type FlappyGameOver struct {
	BannerDuration time.Duration `yaml:"banner_duration"`
}

// AvailableHeight is the vertical space between the ground top and the world top.
func (c FlappyConfig) AvailableHeight() float64 {
	return c.World.Height - c.Ground.TileHeight
}

// MaxGap is the largest gap the spawner can produce.
func (c FlappyConfig) MaxGap() float64 {
	return c.Player.Height * (c.Obstacles.GapFactor + c.Obstacles.GapRange)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a CLI value into a preset.
// Empty string means "use config as loaded".
func ParseDifficulty(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), true
	case "":
		return "", true
	default:
		return "", false
	}
}
