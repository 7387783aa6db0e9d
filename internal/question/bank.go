package question

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// yamlBank represents the YAML structure of a question bank file.
type yamlBank struct {
	Tiers map[int][]yamlQuestion `yaml:"tiers"`
}

type yamlQuestion struct {
	Text    string `yaml:"text"`
	Options []int  `yaml:"options"`
	Answer  int    `yaml:"answer"`
}

// Bank serves hand-written questions loaded from a YAML file.
type Bank struct {
	mu    sync.Mutex
	rng   *rand.Rand
	tiers map[int][]Question
}

// LoadBank reads a question bank file.
func LoadBank(path string, seed int64) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("question: reading bank %s: %w", path, err)
	}
	b, err := ParseBank(data, seed)
	if err != nil {
		return nil, fmt.Errorf("question: parsing bank %s: %w", path, err)
	}
	return b, nil
}

// ParseBank decodes a question bank. Entries without exactly three options
// are rejected; entries whose answer is missing from the options are
// normalized.
func ParseBank(data []byte, seed int64) (*Bank, error) {
	var yb yamlBank
	if err := yaml.Unmarshal(data, &yb); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	b := &Bank{
		rng:   rand.New(rand.NewSource(seed)),
		tiers: make(map[int][]Question, len(yb.Tiers)),
	}
	for tier, entries := range yb.Tiers {
		for i, e := range entries {
			if len(e.Options) != OptionCount {
				return nil, fmt.Errorf("tier %d entry %d: expected %d options, got %d", tier, i, OptionCount, len(e.Options))
			}
			q := Question{Text: e.Text, Answer: e.Answer}
			copy(q.Options[:], e.Options)
			b.tiers[tier] = append(b.tiers[tier], Normalize(q))
		}
	}
	return b, nil
}

// Len returns the number of questions for a tier.
func (b *Bank) Len(tier int) int {
	return len(b.tiers[tier])
}

// Question implements Provider.
func (b *Bank) Question(ctx context.Context, tier int) (Question, error) {
	if err := ctx.Err(); err != nil {
		return Question{}, err
	}
	qs := b.tiers[tier]
	if len(qs) == 0 {
		return Question{}, fmt.Errorf("%w: tier %d", ErrNoQuestions, tier)
	}

	b.mu.Lock()
	q := qs[b.rng.Intn(len(qs))]
	b.rng.Shuffle(OptionCount, func(i, j int) {
		q.Options[i], q.Options[j] = q.Options[j], q.Options[i]
	})
	b.mu.Unlock()
	return q, nil
}
