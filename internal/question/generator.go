package question

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
)

// Range is an inclusive operand range.
type Range struct {
	Min, Max int
}

// RangeForTier returns the operand range of a difficulty tier.
func RangeForTier(tier int) Range {
	switch tier {
	case 2:
		return Range{Min: 10, Max: 99}
	case 3:
		return Range{Min: 100, Max: 999}
	default:
		return Range{Min: 1, Max: 9}
	}
}

// operands holds the two numbers shown in the text and the expected answer.
type operands struct {
	n1, n2, answer int
}

// structure is one additive problem structure: a way to pick operands and a
// sentence that uses them.
type structure struct {
	kind     string
	operands func(r *rand.Rand, rg Range) operands
	text     func(o operands, s story) string
}

// story supplies the nouns of a problem.
type story struct {
	a, b  string // names
	thing string // plural noun
}

var stories = []story{
	{"Ana", "Leo", "marbles"},
	{"Sofia", "Mateo", "stickers"},
	{"Lucia", "Diego", "apples"},
	{"Vale", "Tomas", "coins"},
	{"Emma", "Hugo", "shells"},
	{"Nora", "Pablo", "cards"},
}

func between(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

func pair(r *rand.Rand, rg Range) (int, int) {
	return between(r, rg.Min, rg.Max), between(r, rg.Min, rg.Max)
}

func sorted(a, b int) (int, int) {
	if a > b {
		return a, b
	}
	return b, a
}

var structures = []structure{
	{
		kind: "Combination 1",
		operands: func(r *rand.Rand, rg Range) operands {
			n1, n2 := pair(r, rg)
			return operands{n1, n2, n1 + n2}
		},
		text: func(o operands, s story) string {
			return fmt.Sprintf("%s has %d %s and %s has %d %s. How many %s do they have together?",
				s.a, o.n1, s.thing, s.b, o.n2, s.thing, s.thing)
		},
	},
	{
		kind: "Combination 2",
		operands: func(r *rand.Rand, rg Range) operands {
			n1, n2 := pair(r, rg)
			return operands{n1 + n2, n1, n2}
		},
		text: func(o operands, s story) string {
			return fmt.Sprintf("%s and %s have %d %s together. %s has %d. How many does %s have?",
				s.a, s.b, o.n1, s.thing, s.a, o.n2, s.b)
		},
	},
	{
		kind: "Change 1",
		operands: func(r *rand.Rand, rg Range) operands {
			n1, n2 := pair(r, rg)
			return operands{n1, n2, n1 + n2}
		},
		text: func(o operands, s story) string {
			return fmt.Sprintf("%s had %d %s. %s gave %s %d more. How many %s does %s have now?",
				s.a, o.n1, s.thing, s.b, s.a, o.n2, s.thing, s.a)
		},
	},
	{
		kind: "Change 2",
		operands: func(r *rand.Rand, rg Range) operands {
			n1 := between(r, rg.Min, rg.Max)
			n2 := between(r, rg.Min, n1)
			return operands{n1, n2, n1 - n2}
		},
		text: func(o operands, s story) string {
			return fmt.Sprintf("%s had %d %s and gave %d to %s. How many %s does %s have left?",
				s.a, o.n1, s.thing, o.n2, s.b, s.thing, s.a)
		},
	},
	{
		kind: "Change 3",
		operands: func(r *rand.Rand, rg Range) operands {
			n1, n2 := pair(r, rg)
			return operands{n1, n1 + n2, n2}
		},
		text: func(o operands, s story) string {
			return fmt.Sprintf("%s had %d %s. After %s gave some more, %s has %d. How many did %s give?",
				s.a, o.n1, s.thing, s.b, s.a, o.n2, s.b)
		},
	},
	{
		kind: "Change 6",
		operands: func(r *rand.Rand, rg Range) operands {
			n1, n2 := pair(r, rg)
			return operands{n1, n2, n1 + n2}
		},
		text: func(o operands, s story) string {
			return fmt.Sprintf("%s gave %d %s to %s and now has %d left. How many %s did %s have at first?",
				s.a, o.n1, s.thing, s.b, o.n2, s.thing, s.a)
		},
	},
	{
		kind: "Compare 1",
		operands: func(r *rand.Rand, rg Range) operands {
			larger, smaller := sorted(pair(r, rg))
			return operands{larger, smaller, larger - smaller}
		},
		text: func(o operands, s story) string {
			return fmt.Sprintf("%s has %d %s and %s has %d. How many more %s does %s have than %s?",
				s.a, o.n1, s.thing, s.b, o.n2, s.thing, s.a, s.b)
		},
	},
	{
		kind: "Compare 2",
		operands: func(r *rand.Rand, rg Range) operands {
			n1 := between(r, rg.Min+1, rg.Max)
			n2 := between(r, rg.Min, n1-1)
			return operands{n1, n2, n1 - n2}
		},
		text: func(o operands, s story) string {
			return fmt.Sprintf("%s has %d %s. %s has %d fewer than %s. How many %s does %s have?",
				s.a, o.n1, s.thing, s.b, o.n2, s.a, s.thing, s.b)
		},
	},
	{
		kind: "Compare 3",
		operands: func(r *rand.Rand, rg Range) operands {
			n1, n2 := pair(r, rg)
			return operands{n1, n2, n1 + n2}
		},
		text: func(o operands, s story) string {
			return fmt.Sprintf("%s has %d %s. %s has %d more than %s. How many %s does %s have?",
				s.a, o.n1, s.thing, s.b, o.n2, s.a, s.thing, s.b)
		},
	},
	{
		kind: "Equalize 1",
		operands: func(r *rand.Rand, rg Range) operands {
			larger, smaller := sorted(pair(r, rg))
			return operands{smaller, larger, larger - smaller}
		},
		text: func(o operands, s story) string {
			return fmt.Sprintf("%s has %d %s and %s has %d. How many more does %s need to have as many as %s?",
				s.a, o.n1, s.thing, s.b, o.n2, s.a, s.b)
		},
	},
	{
		kind: "Equalize 2",
		operands: func(r *rand.Rand, rg Range) operands {
			larger, smaller := sorted(pair(r, rg))
			return operands{larger, smaller, larger - smaller}
		},
		text: func(o operands, s story) string {
			return fmt.Sprintf("%s has %d %s and %s has %d. How many must %s give away to have as many as %s?",
				s.a, o.n1, s.thing, s.b, o.n2, s.a, s.b)
		},
	},
}

// Generator builds additive word problems locally. It is safe for
// concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Question implements Provider. It never fails unless ctx is already done.
func (g *Generator) Question(ctx context.Context, tier int) (Question, error) {
	if err := ctx.Err(); err != nil {
		return Question{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	st := structures[g.rng.Intn(len(structures))]
	o := st.operands(g.rng, RangeForTier(tier))
	s := stories[g.rng.Intn(len(stories))]

	q := Question{
		Text:    fmt.Sprintf("%s (%s)", st.text(o, s), st.kind),
		Options: g.options(o.answer, tier),
		Answer:  o.answer,
		Kind:    st.kind,
	}
	return q, nil
}

// options returns the answer plus two distinct non-negative distractors, shuffled.
func (g *Generator) options(answer, tier int) [OptionCount]int {
	spread := 3
	switch tier {
	case 2:
		spread = 10
	case 3:
		spread = 50
	}

	opts := [OptionCount]int{answer}
	seen := map[int]bool{answer: true}
	for i := 1; i < OptionCount; {
		d := between(g.rng, 1, spread)
		if g.rng.Intn(2) == 0 {
			d = -d
		}
		c := answer + d
		if c < 0 || seen[c] {
			continue
		}
		seen[c] = true
		opts[i] = c
		i++
	}

	g.rng.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	return opts
}

// Kinds lists the problem structures the generator draws from.
func Kinds() []string {
	kinds := make([]string, len(structures))
	for i, s := range structures {
		kinds[i] = s.kind
	}
	return kinds
}
