package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the built-in platformer configuration.
// The embedded YAML mirrors these values.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PhysicsConfig{
			Gravity:      0.1,
			JumpForce:    2.2,
			Acceleration: 0.04,
			MaxSpeed:     0.8,
			Friction:     0.96,
			Epsilon:      0.01,
		},
		Player: PlayerConfig{
			Width:      3.5,
			Height:     10,
			StartX:     10,
			Lives:      3,
			Knockback:  10,
			Invincible: 1500 * time.Millisecond,
		},
		World: WorldConfig{
			GroundY:        12,
			Goal:           110,
			BonusRight:     100,
			PreCastleGoal:  150,
			CastleX:        130,
			CastleDoorX:    143,
			CameraLead:     40,
			BlockWidth:     4,
			BlockHeight:    8,
			PlatformWidth:  8,
			PlatformHeight: 4,
			PlatformY:      25,
			RockWidth:      6,
			RockHeight:     5,
			GemWidth:       2,
			GemHeight:      4,
		},
		Enemies: EnemyConfig{
			Width:          5,
			Height:         6,
			BaseSpeed:      0.1,
			SpeedScale:     1,
			StompTolerance: 3,
			StompBounce:    1.6,
			SpawnDelay:     3 * time.Second,
			DefeatedLinger: 800 * time.Millisecond,
		},
		Timing: TimingConfig{
			Message:           1500 * time.Millisecond,
			Banner:            2 * time.Second,
			StageAdvance:      2 * time.Second,
			LevelComplete:     3 * time.Second,
			AnswerSettle:      1500 * time.Millisecond,
			PopupDelay:        100 * time.Millisecond,
			Popup:             1500 * time.Millisecond,
			GameOverDelay:     500 * time.Millisecond,
			PerfectBonusDelay: time.Second,
			ReturnAdvance:     500 * time.Millisecond,
			PreCastleDelay:    2 * time.Second,
			CastleEnd:         2 * time.Second,
			ExtraLifeBanner:   2 * time.Second,
		},
		Scoring: ScoringConfig{
			Correct: 100,
			Stomp:   200,
			Gem:     50,
			Castle:  5000,
		},
		Bonus: BonusConfig{
			HoleX:         5,
			HoleWidth:     8,
			StartX:        5,
			Duration:      30,
			OffsetStep:    2,
			OffsetMax:     100,
			FrameInterval: 16 * time.Millisecond,
			PreCastleGems: 30,
		},
	}
}

// DefaultYAML returns the embedded default platformer YAML.
func DefaultYAML() []byte {
	return defaultPlatformerYAML
}
