// Package config provides YAML-based tuning for the platformer and the
// difficulty presets applied on top of it.
package config

import "time"

// PlatformerConfig contains every tunable of the platformer simulation.
type PlatformerConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	World   WorldConfig   `yaml:"world"`
	Enemies EnemyConfig   `yaml:"enemies"`
	Timing  TimingConfig  `yaml:"timing"`
	Scoring ScoringConfig `yaml:"scoring"`
	Bonus   BonusConfig   `yaml:"bonus"`
}

// PhysicsConfig defines per-tick motion constants.
// Units: percent of world width horizontally, viewport-height units vertically.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	JumpForce    float64 `yaml:"jump_force"`
	Acceleration float64 `yaml:"acceleration"`
	MaxSpeed     float64 `yaml:"max_speed"`
	Friction     float64 `yaml:"friction"`
	Epsilon      float64 `yaml:"epsilon"` // |vx| below this snaps to 0
}

// PlayerConfig defines the player's hitbox and hit response.
type PlayerConfig struct {
	Width      float64       `yaml:"width"`
	Height     float64       `yaml:"height"`
	StartX     float64       `yaml:"start_x"`
	Lives      int           `yaml:"lives"`
	Knockback  float64       `yaml:"knockback"`
	Invincible time.Duration `yaml:"invincible"`
}

// WorldConfig defines terrain geometry and goal positions.
type WorldConfig struct {
	GroundY        float64 `yaml:"ground_y"`
	Goal           float64 `yaml:"goal"`
	BonusRight     float64 `yaml:"bonus_right"` // right edge of the underground room
	PreCastleGoal  float64 `yaml:"pre_castle_goal"`
	CastleX        float64 `yaml:"castle_x"`
	CastleDoorX    float64 `yaml:"castle_door_x"`
	CameraLead     float64 `yaml:"camera_lead"`
	BlockWidth     float64 `yaml:"block_width"`
	BlockHeight    float64 `yaml:"block_height"`
	PlatformWidth  float64 `yaml:"platform_width"`
	PlatformHeight float64 `yaml:"platform_height"`
	PlatformY      float64 `yaml:"platform_y"`
	RockWidth      float64 `yaml:"rock_width"`
	RockHeight     float64 `yaml:"rock_height"`
	GemWidth       float64 `yaml:"gem_width"`
	GemHeight      float64 `yaml:"gem_height"`
}

// EnemyConfig defines Tortubit geometry, speed and stomp rules.
type EnemyConfig struct {
	Width          float64       `yaml:"width"`
	Height         float64       `yaml:"height"`
	BaseSpeed      float64       `yaml:"base_speed"`
	SpeedScale     float64       `yaml:"speed_scale"` // set by difficulty presets
	StompTolerance float64       `yaml:"stomp_tolerance"`
	StompBounce    float64       `yaml:"stomp_bounce"`
	SpawnDelay     time.Duration `yaml:"spawn_delay"`
	DefeatedLinger time.Duration `yaml:"defeated_linger"`
}

// TimingConfig defines the delays of the progression state machine.
type TimingConfig struct {
	Message           time.Duration `yaml:"message"`
	Banner            time.Duration `yaml:"banner"`
	StageAdvance      time.Duration `yaml:"stage_advance"`
	LevelComplete     time.Duration `yaml:"level_complete"`
	AnswerSettle      time.Duration `yaml:"answer_settle"`
	PopupDelay        time.Duration `yaml:"popup_delay"`
	Popup             time.Duration `yaml:"popup"`
	GameOverDelay     time.Duration `yaml:"game_over_delay"`
	PerfectBonusDelay time.Duration `yaml:"perfect_bonus_delay"`
	ReturnAdvance     time.Duration `yaml:"return_advance"`
	PreCastleDelay    time.Duration `yaml:"pre_castle_delay"`
	CastleEnd         time.Duration `yaml:"castle_end"`
	ExtraLifeBanner   time.Duration `yaml:"extra_life_banner"`
}

// ScoringConfig defines point awards.
type ScoringConfig struct {
	Correct int `yaml:"correct"`
	Stomp   int `yaml:"stomp"`
	Gem     int `yaml:"gem"`
	Castle  int `yaml:"castle"`
}

// BonusConfig defines the hole, the fall animation and the underground room.
type BonusConfig struct {
	HoleX         float64       `yaml:"hole_x"`
	HoleWidth     float64       `yaml:"hole_width"`
	StartX        float64       `yaml:"start_x"`
	Duration      int           `yaml:"duration"` // countdown seconds
	OffsetStep    float64       `yaml:"offset_step"`
	OffsetMax     float64       `yaml:"offset_max"`
	FrameInterval time.Duration `yaml:"frame_interval"`
	PreCastleGems int           `yaml:"pre_castle_gems"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), true
	}
	return "", false
}
