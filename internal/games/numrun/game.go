// Package numrun implements the math platformer: a runner who answers
// arithmetic questions by bumping blocks, stomps Tortubits, and detours
// through bonus rooms on the way to the final castle.
package numrun

import (
	"fmt"
	"time"

	"github.com/vovakirdan/numrun/internal/audio"
	"github.com/vovakirdan/numrun/internal/config"
	"github.com/vovakirdan/numrun/internal/core"
	"github.com/vovakirdan/numrun/internal/levels"
)

// ID identifies the game in the registry and in saved scores.
const ID = "numrun"

// Option configures a Game.
type Option func(*Game)

// WithConfig replaces the default tuning.
func WithConfig(cfg config.PlatformerConfig) Option {
	return func(g *Game) { g.cfg = cfg }
}

// WithSink routes sound cues to s.
func WithSink(s audio.Sink) Option {
	return func(g *Game) {
		if s != nil {
			g.sink = s
		}
	}
}

// WithLevel selects the starting level.
func WithLevel(level int) Option {
	return func(g *Game) { g.startLevel = level }
}

// Game is the platformer simulation. All methods must be called from one
// goroutine.
type Game struct {
	cfg      config.PlatformerConfig
	campaign *levels.Campaign
	sink     audio.Sink
	runtime  core.RuntimeConfig
	sched    *scheduler
	frame    time.Duration
	tick     uint64

	startLevel int
	level      int
	stage      int
	stageDef   levels.StageDef
	mode       Mode
	outcome    Outcome

	player            Player
	livesAtStageStart int
	enemies           []Enemy
	blocks            []Block
	platforms         []Platform
	rocks             []RockPlatform
	gems              []Gem
	popups            []Popup
	score             int

	message  string
	msgSeq   uint64
	popupSeq uint64

	quiz      quizState
	ticketSeq uint64

	help         bool
	instructions bool
	prevJump     bool

	// guards
	stageGen           uint64
	hitGen             uint64
	bonusPending       bool
	bonusElapsed       time.Duration
	gameOverScheduled  bool
	preCastleScheduled bool
	finalRunScheduled  bool

	events []Event
}

// New creates a game over campaign. Reset must be called before Step.
func New(campaign *levels.Campaign, opts ...Option) *Game {
	g := &Game{
		cfg:        config.DefaultPlatformerConfig(),
		campaign:   campaign,
		sink:       audio.Nop{},
		startLevel: 1,
		mode:       Overworld{},
		sched:      newScheduler(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Number Run"
}

// Reset starts a new run at stage 1 of the starting level. Pending timers
// are dropped and outstanding question tickets become stale.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime
	g.frame = time.Second / time.Duration(runtime.TickRate)
	g.sched = newScheduler()
	g.tick = 0

	g.level = g.startLevel
	if _, ok := g.campaign.Level(g.level); !ok && len(g.campaign.Levels) > 0 {
		g.level = g.campaign.Levels[0].Number
	}
	g.stage = 0
	g.outcome = OutcomeNone
	g.score = 0
	g.player = Player{Lives: g.cfg.Player.Lives}
	g.popups = nil
	g.message = ""
	g.ticketSeq++
	g.quiz = quizState{ticket: g.ticketSeq}
	g.help = false
	g.instructions = false
	g.prevJump = false
	g.hitGen++
	g.gameOverScheduled = false
	g.preCastleScheduled = false
	g.finalRunScheduled = false
	g.events = nil

	if err := g.setupStage(1); err != nil {
		g.message = fmt.Sprintf("no stage to play: %v", err)
		g.end(OutcomeGameOver)
	}
}

// Step advances the simulation by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.sched.advance(g.frame)
	g.handleActions(in)

	intent := in.Intent
	intent.Left = intent.Left || in.Has(core.ActionLeft)
	intent.Right = intent.Right || in.Has(core.ActionRight)
	jumpPressed := (intent.Jump && !g.prevJump) || in.Has(core.ActionJump)
	g.prevJump = intent.Jump

	if g.status() != Running {
		return core.StepResult{State: g.State()}
	}
	if g.tickBonusClock(); g.status() != Running {
		return core.StepResult{State: g.State()}
	}

	if g.enemiesActive() && g.updateEnemies() {
		g.hitPlayer()
	}

	if jumpPressed && g.canJump() {
		g.jump()
	}
	x, y := integrate(&g.player, intent, g.cfg.Physics)
	x, y, onGround := g.resolveTerrain(x, y)
	y, onGround = g.resolveHoleAndGround(x, y, onGround)
	x = g.clampBounds(x)

	g.player.X, g.player.Y = x, y
	g.player.OnGround = onGround

	g.checkProgression()
	if g.gemsActive() {
		g.collectGems()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) handleActions(in core.InputFrame) {
	if g.outcome != OutcomeNone {
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.Reset(g.runtime)
		}
		return
	}
	if in.Has(core.ActionHelp) {
		g.ToggleHelp()
	}
	if g.help {
		if in.Has(core.ActionConfirm) || in.Has(core.ActionBack) {
			g.help = false
		}
		return
	}
	if g.instructions && in.Has(core.ActionConfirm) {
		g.DismissInstructions()
	}
	for _, a := range []core.Action{core.ActionAnswer1, core.ActionAnswer2, core.ActionAnswer3} {
		if in.Has(a) {
			i, _ := a.AnswerIndex()
			g.Answer(i)
			break
		}
	}
}

// status derives the tick guard from the explicit state.
func (g *Game) status() SimulationStatus {
	if g.outcome != OutcomeNone {
		return Ended
	}
	if g.help || g.instructions || g.quiz.active() {
		return PausedForModal
	}
	switch m := g.mode.(type) {
	case Overworld:
		if m.StageComplete {
			return PausedForTransition
		}
	case Bonus:
		if m.Phase == Falling || m.Phase == Returning {
			return PausedForTransition
		}
	case FinalRun:
		if m.Entering {
			return PausedForTransition
		}
	}
	return Running
}

// Status returns the current simulation status.
func (g *Game) Status() SimulationStatus {
	return g.status()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := g.status()
	return core.GameState{
		Score:    g.score,
		Lives:    g.player.Lives,
		Level:    g.level,
		Stage:    g.stage,
		GameOver: st == Ended,
		Outcome:  g.outcome.String(),
		Paused:   st != Running,
	}
}

func (g *Game) cue(c audio.Cue) {
	g.sink.Play(c)
}

func (g *Game) addScore(n int) {
	g.score += n
}

func scoreText(n int) string {
	return fmt.Sprintf("+%d", n)
}

// showMessage replaces the banner; only the latest banner clears itself.
func (g *Game) showMessage(text string, d time.Duration) {
	g.msgSeq++
	id := g.msgSeq
	g.message = text
	g.sched.after(d, func() {
		if g.msgSeq == id {
			g.message = ""
		}
	})
}

func (g *Game) addPopup(x, y float64, text string, d time.Duration) {
	g.popupSeq++
	id := g.popupSeq
	g.popups = append(g.popups, Popup{ID: id, X: x, Y: y, Text: text})
	g.sched.after(d, func() {
		for i, p := range g.popups {
			if p.ID == id {
				g.popups = append(g.popups[:i], g.popups[i+1:]...)
				return
			}
		}
	})
}
