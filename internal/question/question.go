// Package question supplies the arithmetic word problems shown when the
// player bumps a question block.
package question

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// OptionCount is the number of answer options per question.
const OptionCount = 3

// ErrNoQuestions is returned by a provider that has nothing for a tier.
var ErrNoQuestions = errors.New("question: no questions available")

// Question is one word problem with three numeric options.
type Question struct {
	Text    string
	Options [OptionCount]int
	Answer  int
	Kind    string // problem structure, empty for banked or fallback questions
}

// IsCorrect reports whether option index i holds the answer.
func (q Question) IsCorrect(i int) bool {
	return i >= 0 && i < OptionCount && q.Options[i] == q.Answer
}

// Provider returns a question for a difficulty tier (1 to 3).
// Implementations may block; callers pass a cancellable context.
type Provider interface {
	Question(ctx context.Context, tier int) (Question, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, tier int) (Question, error)

// Question calls f.
func (f ProviderFunc) Question(ctx context.Context, tier int) (Question, error) {
	return f(ctx, tier)
}

// Normalize forces Options[0] to the answer when no option holds it.
func Normalize(q Question) Question {
	if !slices.Contains(q.Options[:], q.Answer) {
		q.Options[0] = q.Answer
	}
	return q
}

// FallbackAnswer returns the fixed answer of the fallback question for a tier.
func FallbackAnswer(tier int) int {
	switch tier {
	case 2:
		return 30
	case 3:
		return 150
	default:
		return 4
	}
}

// Fallback returns the deterministic question used when a provider fails.
func Fallback(tier int) Question {
	a := FallbackAnswer(tier)
	return Question{
		Text:    fmt.Sprintf("%d + 2 = ?", a-2),
		Options: [OptionCount]int{a - 1, a, a + 2},
		Answer:  a,
	}
}
