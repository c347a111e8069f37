package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default Flappy Bird configuration.
// It mirrors defaults/flappy.yaml and is used if the embedded file fails to parse.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: FlappyWorld{
			Width:  400,
			Height: 300,
		},
		Physics: FlappyPhysics{
			Gravity:     1470,
			ScrollSpeed: 2,
		},
		Player: FlappyPlayer{
			Width:         30,
			Height:        20,
			Mass:          0.04,
			Damping:       0.3,
			FlapImpulse:   20,
			AnimFrames:    3,
			FrameDuration: 120 * time.Millisecond,
		},
		Ground: FlappyGround{
			TileWidth:  420,
			TileHeight: 40,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:     40,
			SpawnInterval: 4500 * time.Millisecond,
			SpawnJitter:   time.Second,
			GapFactor:     2.5,
			GapRange:      1.0,
		},
		GameOver: FlappyGameOver{
			BannerDuration: 500 * time.Millisecond,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
