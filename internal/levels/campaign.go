// Package levels provides the declarative stage and bonus tables of the
// campaign. The simulation reads these tables and never hardcodes layouts.
package levels

import (
	"errors"
	"fmt"
)

// ErrUnknownStage is returned when a (level, stage) pair is not in the campaign.
var ErrUnknownStage = errors.New("levels: unknown stage")

// BonusRule decides whether clearing every block of a stage opens the bonus hole.
type BonusRule string

const (
	BonusNone    BonusRule = "none"
	BonusCleared BonusRule = "cleared" // all blocks cleared
	BonusPerfect BonusRule = "perfect" // all blocks cleared without losing a life
)

// Point is a world-space position: x in percent of width, y in
// viewport-height units from the bottom.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// StageDef is the immutable template of one stage.
type StageDef struct {
	Level      int
	Number     int
	Blocks     []Point
	Platforms  []float64
	Enemies    []float64 // initial x of each Tortubit
	EnemySpeed float64   // multiplier of the base enemy speed
	Bonus      BonusRule
	ExtraLife  bool
}

// Key returns the "{level}-{stage}" key used for bonus lookups.
func (s StageDef) Key() string {
	return BonusKey(s.Level, s.Number)
}

// BonusDef describes the underground room reached from a stage.
type BonusDef struct {
	Gems  []Point
	Rocks []Point
}

// Level groups the stages of one grade.
type Level struct {
	Number int
	Name   string
	Tier   int // question difficulty tier
	Stages []StageDef
}

// Campaign is the full set of levels plus bonus rooms.
type Campaign struct {
	Levels []Level
	Bonus  map[string]BonusDef
}

// BonusKey formats a bonus lookup key.
func BonusKey(level, stage int) string {
	return fmt.Sprintf("%d-%d", level, stage)
}

// Level returns the level with the given number.
func (c *Campaign) Level(number int) (Level, bool) {
	for _, l := range c.Levels {
		if l.Number == number {
			return l, true
		}
	}
	return Level{}, false
}

// Stage returns the definition of (level, stage).
func (c *Campaign) Stage(level, stage int) (StageDef, error) {
	l, ok := c.Level(level)
	if !ok {
		return StageDef{}, fmt.Errorf("%w: level %d", ErrUnknownStage, level)
	}
	for _, s := range l.Stages {
		if s.Number == stage {
			return s, nil
		}
	}
	return StageDef{}, fmt.Errorf("%w: %s", ErrUnknownStage, BonusKey(level, stage))
}

// BonusFor returns the bonus room for (level, stage), if any.
func (c *Campaign) BonusFor(level, stage int) (BonusDef, bool) {
	b, ok := c.Bonus[BonusKey(level, stage)]
	return b, ok
}

// StageCount returns the number of stages in a level, or 0 if unknown.
func (c *Campaign) StageCount(level int) int {
	l, ok := c.Level(level)
	if !ok {
		return 0
	}
	return len(l.Stages)
}

// IsLastStage reports whether stage is the final stage of its level.
func (c *Campaign) IsLastStage(level, stage int) bool {
	n := c.StageCount(level)
	return n > 0 && stage >= n
}

// IsFinalLevel reports whether level is the last level of the campaign.
// Finishing it leads to the castle instead of a level-complete screen.
func (c *Campaign) IsFinalLevel(level int) bool {
	if len(c.Levels) == 0 {
		return false
	}
	return c.Levels[len(c.Levels)-1].Number == level
}

// Tier returns the question tier of a level, defaulting to the level number.
func (c *Campaign) Tier(level int) int {
	if l, ok := c.Level(level); ok && l.Tier > 0 {
		return l.Tier
	}
	return level
}
