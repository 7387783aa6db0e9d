// Package audio turns named game cues into sound. The simulation only ever
// calls Sink.Play and never waits on it.
package audio

import "sync"

// Cue names a sound event.
type Cue string

const (
	CueJump            Cue = "jump"
	CueCorrectAnswer   Cue = "correct-answer"
	CueIncorrectAnswer Cue = "incorrect-answer"
	CueVictory         Cue = "victory"
	CueBonusStart      Cue = "bonus-start"
	CueGemCollected    Cue = "gem-collected"
	CueEnemyStomp      Cue = "enemy-stomp"
	CueBlockHit        Cue = "block-hit"
	CueGameOver        Cue = "game-over"
	CueStageStart      Cue = "stage-start"
)

// AllCues lists every cue the game emits.
var AllCues = []Cue{
	CueJump,
	CueCorrectAnswer,
	CueIncorrectAnswer,
	CueVictory,
	CueBonusStart,
	CueGemCollected,
	CueEnemyStomp,
	CueBlockHit,
	CueGameOver,
	CueStageStart,
}

// Sink plays cues. Play must not block.
type Sink interface {
	Play(c Cue)
}

// Nop discards every cue.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Cue) {}

// Recorder keeps every cue it receives. Useful for headless runs and tests.
type Recorder struct {
	mu   sync.Mutex
	cues []Cue
}

// Play appends c.
func (r *Recorder) Play(c Cue) {
	r.mu.Lock()
	r.cues = append(r.cues, c)
	r.mu.Unlock()
}

// Cues returns a copy of the recorded cues in order.
func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Cue, len(r.cues))
	copy(out, r.cues)
	return out
}

// Count returns how many times c was played.
func (r *Recorder) Count(c Cue) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

// Reset forgets all recorded cues.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.cues = nil
	r.mu.Unlock()
}
