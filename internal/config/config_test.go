package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := decode(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not decode: %v", err)
	}
	if cfg != DefaultPlatformerConfig() {
		t.Errorf("embedded YAML differs from DefaultPlatformerConfig():\n%+v\n%+v", cfg, DefaultPlatformerConfig())
	}
}

func TestLoadPlatformerCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("physics:\n  gravity: 0.2\ntiming:\n  answer_settle: 750ms\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPlatformer(path)
	if err != nil {
		t.Fatalf("LoadPlatformer() error = %v", err)
	}
	if cfg.Physics.Gravity != 0.2 {
		t.Errorf("gravity = %v, expected 0.2", cfg.Physics.Gravity)
	}
	if cfg.Timing.AnswerSettle != 750*time.Millisecond {
		t.Errorf("answer_settle = %v, expected 750ms", cfg.Timing.AnswerSettle)
	}
	// Keys absent from the file keep their defaults
	if cfg.Physics.JumpForce != 2.2 {
		t.Errorf("jump_force = %v, expected default 2.2", cfg.Physics.JumpForce)
	}
}

func TestLoadPlatformerErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadPlatformer(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics:\n  friction: 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPlatformer(bad); err == nil {
		t.Error("expected validation error for friction >= 1")
	}

	garbage := filepath.Join(dir, "garbage.yaml")
	if err := os.WriteFile(garbage, []byte("physics: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPlatformer(garbage); err == nil {
		t.Error("expected parse error for malformed YAML")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		lives  int
		scale  float64
	}{
		{DifficultyEasy, 5, 0.8},
		{DifficultyNormal, 3, 1.0},
		{DifficultyHard, 2, 1.25},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultPlatformerConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Player.Lives != tc.lives {
				t.Errorf("lives = %d, expected %d", cfg.Player.Lives, tc.lives)
			}
			if cfg.Enemies.SpeedScale != tc.scale {
				t.Errorf("speed scale = %v, expected %v", cfg.Enemies.SpeedScale, tc.scale)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, ok)
	}
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("unknown preset should not parse")
	}
}

func TestEnemySpeed(t *testing.T) {
	cfg := DefaultPlatformerConfig()
	if got := cfg.EnemySpeed(1.6); got < 0.1599 || got > 0.1601 {
		t.Errorf("EnemySpeed(1.6) = %v, expected 0.16", got)
	}
	if got := cfg.EnemySpeed(0); got != 0.1 {
		t.Errorf("EnemySpeed(0) = %v, expected base speed", got)
	}
}
