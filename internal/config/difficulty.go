package config

// presetTuning holds what a difficulty preset changes.
type presetTuning struct {
	lives      int
	speedScale float64
}

var presets = map[DifficultyPreset]presetTuning{
	DifficultyEasy:   {lives: 5, speedScale: 0.8},
	DifficultyNormal: {lives: 3, speedScale: 1.0},
	DifficultyHard:   {lives: 2, speedScale: 1.25},
}

// ApplyPreset modifies the config based on a difficulty preset.
// Unknown presets leave the config untouched.
func ApplyPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	t, ok := presets[preset]
	if !ok {
		return
	}
	cfg.Player.Lives = t.lives
	cfg.Enemies.SpeedScale = t.speedScale
}

// EnemySpeed returns the per-tick drift for a stage speed multiplier.
func (c PlatformerConfig) EnemySpeed(multiplier float64) float64 {
	scale := c.Enemies.SpeedScale
	if scale <= 0 {
		scale = 1
	}
	if multiplier <= 0 {
		multiplier = 1
	}
	return c.Enemies.BaseSpeed * multiplier * scale
}
