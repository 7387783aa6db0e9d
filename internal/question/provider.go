package question

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
)

// First returns a provider that asks each provider in order and returns the
// first success. It fails with the last error when all fail.
func First(providers ...Provider) Provider {
	return ProviderFunc(func(ctx context.Context, tier int) (Question, error) {
		err := ErrNoQuestions
		for _, p := range providers {
			q, perr := p.Question(ctx, tier)
			if perr == nil {
				return q, nil
			}
			err = perr
		}
		return Question{}, err
	})
}

type fallbackProvider struct {
	next    Provider
	logger  *log.Logger
	timeout time.Duration
}

// WithFallback wraps p so that it never fails: errors and timeouts yield the
// deterministic Fallback question, and answers missing from the options are
// normalized. A zero timeout means no limit beyond ctx. logger may be nil.
func WithFallback(p Provider, logger *log.Logger, timeout time.Duration) Provider {
	return &fallbackProvider{next: p, logger: logger, timeout: timeout}
}

func (f *fallbackProvider) Question(ctx context.Context, tier int) (Question, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	q, err := f.next.Question(ctx, tier)
	if err != nil {
		if f.logger != nil {
			level := log.WarnLevel
			if errors.Is(err, context.Canceled) {
				level = log.DebugLevel
			}
			f.logger.Log(level, "question provider failed, using fallback", "tier", tier, "err", err)
		}
		return Fallback(tier), nil
	}
	return Normalize(q), nil
}
