package levels

import (
	"fmt"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks a campaign for structural problems:
//   - at least one level, levels and stages numbered 1..n in order
//   - known bonus rules
//   - every stage with a bonus rule has a bonus room
//   - every bonus room belongs to a stage
func Validate(c *Campaign) error {
	if len(c.Levels) == 0 {
		return ValidationError{Code: "EMPTY", Message: "campaign has no levels"}
	}

	stages := make(map[string]bool)
	for i, l := range c.Levels {
		if l.Number != i+1 {
			return ValidationError{
				Code:    "LEVEL_ORDER",
				Message: fmt.Sprintf("level at index %d is numbered %d, expected %d", i, l.Number, i+1),
			}
		}
		if len(l.Stages) == 0 {
			return ValidationError{Code: "EMPTY_LEVEL", Message: fmt.Sprintf("level %d has no stages", l.Number)}
		}
		for j, s := range l.Stages {
			if s.Number != j+1 {
				return ValidationError{
					Code:    "STAGE_ORDER",
					Message: fmt.Sprintf("level %d stage at index %d is numbered %d, expected %d", l.Number, j, s.Number, j+1),
				}
			}
			if err := validateStage(c, s); err != nil {
				return err
			}
			stages[s.Key()] = true
		}
	}

	for key := range c.Bonus {
		if !stages[key] {
			return ValidationError{Code: "ORPHAN_BONUS", Message: fmt.Sprintf("bonus room %s has no stage", key)}
		}
	}
	return nil
}

func validateStage(c *Campaign, s StageDef) error {
	switch s.Bonus {
	case BonusNone:
		return nil
	case BonusCleared, BonusPerfect:
	default:
		return ValidationError{
			Code:    "BONUS_RULE",
			Message: fmt.Sprintf("stage %s has unknown bonus rule %q", s.Key(), s.Bonus),
		}
	}
	if len(s.Blocks) == 0 {
		return ValidationError{
			Code:    "BONUS_UNREACHABLE",
			Message: fmt.Sprintf("stage %s has a bonus but no blocks to clear", s.Key()),
		}
	}
	if _, ok := c.Bonus[s.Key()]; !ok {
		return ValidationError{
			Code:    "BONUS_MISSING",
			Message: fmt.Sprintf("stage %s has bonus rule %q but no bonus room", s.Key(), s.Bonus),
		}
	}
	return nil
}
