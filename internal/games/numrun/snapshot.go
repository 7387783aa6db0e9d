package numrun

import (
	"slices"
	"time"

	"github.com/vovakirdan/numrun/internal/core"
)

// QuestionView is the presentation of the active question.
type QuestionView struct {
	Loading  bool // requested, not delivered yet
	Text     string
	Options  [3]int
	Answered bool
	Choice   int
	Correct  bool
}

// Snapshot is an immutable copy of everything a presenter needs for one
// frame. Slices are owned by the snapshot.
type Snapshot struct {
	Tick  uint64
	Clock time.Duration

	Level, Stage int
	Mode         Mode
	Transition   string
	Status       SimulationStatus
	Outcome      Outcome

	Player        Player
	PlayerVisible bool
	Enemies       []Enemy
	Blocks        []Block
	Platforms     []Platform
	Rocks         []RockPlatform
	Gems          []Gem
	Popups        []Popup

	Score         int
	Message       string
	Question      *QuestionView
	Help          bool
	Instructions  bool
	BonusTimeLeft int
	CameraX       float64
}

// Snapshot returns the current state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:          g.tick,
		Clock:         g.sched.now,
		Level:         g.level,
		Stage:         g.stage,
		Mode:          g.mode,
		Transition:    Transition(g.mode),
		Status:        g.status(),
		Outcome:       g.outcome,
		Player:        g.player,
		PlayerVisible: g.playerVisible(),
		Enemies:       slices.Clone(g.enemies),
		Blocks:        slices.Clone(g.blocks),
		Platforms:     slices.Clone(g.platforms),
		Rocks:         slices.Clone(g.rocks),
		Gems:          slices.Clone(g.gems),
		Popups:        slices.Clone(g.popups),
		Score:         g.score,
		Message:       g.message,
		Help:          g.help,
		Instructions:  g.instructions,
		CameraX:       g.cameraX(),
	}
	if b, ok := g.mode.(Bonus); ok {
		s.BonusTimeLeft = b.TimeLeft
	}
	if g.quiz.active() {
		v := &QuestionView{Loading: g.quiz.waiting}
		if q := g.quiz.current; q != nil {
			v.Text = q.Text
			v.Options = q.Options
			v.Answered = g.quiz.answered
			v.Choice = g.quiz.choice
			v.Correct = g.quiz.correct
		}
		s.Question = v
	}
	return s
}

func (g *Game) playerVisible() bool {
	if b, ok := g.mode.(Bonus); ok {
		return b.Phase != Falling && b.Phase != Returning
	}
	return true
}

// cameraX scrolls the long castle road; other modes fit on screen. The
// camera stops once the right boundary is in view.
func (g *Game) cameraX() float64 {
	switch g.mode.(type) {
	case PreCastleRun, FinalRun:
		lead := g.cfg.World.CameraLead
		return core.ClampF(g.player.X-lead, 0, g.rightBoundary()-lead)
	}
	return 0
}
