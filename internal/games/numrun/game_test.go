package numrun

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/numrun/internal/audio"
	"github.com/vovakirdan/numrun/internal/config"
	"github.com/vovakirdan/numrun/internal/core"
	"github.com/vovakirdan/numrun/internal/levels"
	"github.com/vovakirdan/numrun/internal/question"
)

const twoStageCampaign = `
levels:
  - level: 1
    name: Test
    tier: 1
    stages:
      - stage: 1
        blocks:
          - {x: 20, y: 25}
        extra_life: true
      - stage: 2
        blocks: []
`

const enemyCampaign = `
levels:
  - level: 1
    name: Test
    tier: 1
    stages:
      - stage: 1
        blocks: []
        enemies: [50]
`

const scenarioCampaign = `
levels:
  - level: 1
    name: Test
    tier: 1
    stages:
      - stage: 1
        blocks:
          - {x: 20, y: 25}
        enemies: [115]
      - stage: 2
        blocks: []
`

const finalBonusCampaign = `
levels:
  - level: 1
    name: Test
    tier: 1
    stages:
      - stage: 1
        blocks:
          - {x: 40, y: 25}
        bonus: cleared
bonus_levels:
  "1-1":
    gems: []
    rocks: []
`

func newTestGame(t *testing.T, doc string, opts ...Option) (*Game, *audio.Recorder) {
	t.Helper()
	var c *levels.Campaign
	var err error
	if doc == "" {
		c, err = levels.Default()
	} else {
		c, err = levels.Parse([]byte(doc))
	}
	if err != nil {
		t.Fatalf("campaign: %v", err)
	}
	rec := &audio.Recorder{}
	g := New(c, append([]Option{WithSink(rec)}, opts...)...)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	return g, rec
}

func input(left, right, jump bool) core.InputFrame {
	in := core.NewInputFrame()
	in.Intent = core.Intent{Left: left, Right: right, Jump: jump}
	return in
}

func action(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func steps(g *Game, n int, in core.InputFrame) {
	for range n {
		g.Step(in)
	}
}

// stepFor steps until at least d of simulation time has passed.
func stepFor(g *Game, d time.Duration, in core.InputFrame) {
	target := g.sched.now + d
	for g.sched.now < target {
		g.Step(in)
	}
}

func stepUntil(t *testing.T, g *Game, in core.InputFrame, limit int, cond func() bool) {
	t.Helper()
	for range limit {
		if cond() {
			return
		}
		g.Step(in)
	}
	if !cond() {
		t.Fatalf("condition not reached within %d ticks", limit)
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestIntegrate(t *testing.T) {
	phys := config.DefaultPlatformerConfig().Physics
	tests := []struct {
		name   string
		vx     float64
		intent core.Intent
		wantVX float64
	}{
		{"idle at rest", 0, core.Intent{}, 0},
		{"right from rest", 0, core.Intent{Right: true}, 0.04},
		{"right capped", 0.79, core.Intent{Right: true}, 0.8},
		{"left from rest", 0, core.Intent{Left: true}, -0.04},
		{"left capped", -0.8, core.Intent{Left: true}, -0.8},
		{"right wins over left", 0, core.Intent{Left: true, Right: true}, 0.04},
		{"friction", 0.5, core.Intent{}, 0.48},
		{"friction snaps to zero", 0.01, core.Intent{}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Player{X: 50, Y: 12, VX: tc.vx}
			x, y := integrate(&p, tc.intent, phys)
			if !approx(p.VX, tc.wantVX) {
				t.Errorf("vx = %v, expected %v", p.VX, tc.wantVX)
			}
			if !approx(p.VY, -0.1) {
				t.Errorf("vy = %v, expected gravity -0.1", p.VY)
			}
			if !approx(x, 50+tc.wantVX) || !approx(y, 11.9) {
				t.Errorf("position = (%v, %v)", x, y)
			}
		})
	}
}

func TestResetStartsStageOne(t *testing.T) {
	g, rec := newTestGame(t, "")

	if g.level != 1 || g.stage != 1 {
		t.Fatalf("started at %d-%d, expected 1-1", g.level, g.stage)
	}
	if g.player.Lives != 3 || g.player.X != 10 || g.player.Y != 12 {
		t.Errorf("player = %+v", g.player)
	}
	if g.message != "Stage 1-1" {
		t.Errorf("message = %q", g.message)
	}
	if g.livesAtStageStart != 3 {
		t.Errorf("livesAtStageStart = %d", g.livesAtStageStart)
	}
	if rec.Count(audio.CueStageStart) != 1 {
		t.Error("expected stage-start cue")
	}
	if g.Status() != Running {
		t.Errorf("status = %v", g.Status())
	}
	for i, b := range g.blocks {
		if b.ID != i+1 {
			t.Errorf("block %d has id %d", i, b.ID)
		}
	}
}

func TestJumpIsEdgeTriggered(t *testing.T) {
	g, rec := newTestGame(t, enemyCampaign)

	g.Step(input(false, false, true))
	if !approx(g.player.VY, 2.1) || !approx(g.player.Y, 14.1) {
		t.Fatalf("after jump vy=%v y=%v, expected 2.1 and 14.1", g.player.VY, g.player.Y)
	}
	if g.player.OnGround {
		t.Error("player should be airborne")
	}

	steps(g, 120, input(false, false, true))
	if n := rec.Count(audio.CueJump); n != 1 {
		t.Fatalf("holding jump produced %d jumps, expected 1", n)
	}
	if !g.player.OnGround {
		t.Fatal("player should have landed")
	}

	g.Step(idle())
	g.Step(input(false, false, true))
	if n := rec.Count(audio.CueJump); n != 2 {
		t.Errorf("second press produced %d jumps total, expected 2", n)
	}
}

func TestEnemyContact(t *testing.T) {
	tests := []struct {
		name      string
		y, vy     float64
		stomp     bool
		wantLives int
	}{
		{"falling onto the shell", 15, -0.5, true, 3},
		{"falling but too low", 14, -0.5, false, 2},
		{"rising into the enemy", 15, 0.5, false, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, rec := newTestGame(t, enemyCampaign)
			g.enemies = []Enemy{{ID: 1, X: 20, Speed: 0, Spawned: true}}
			g.player.X, g.player.Y, g.player.VY = 20, tc.y, tc.vy
			g.player.OnGround = false

			g.Step(idle())

			if tc.stomp {
				if len(g.enemies) != 1 || !g.enemies[0].Defeated {
					t.Fatalf("enemy should be defeated: %+v", g.enemies)
				}
				if g.score != 200 {
					t.Errorf("score = %d, expected 200", g.score)
				}
				if !approx(g.player.VY, 1.5) {
					t.Errorf("vy = %v, expected bounce 1.6 minus gravity", g.player.VY)
				}
				if rec.Count(audio.CueEnemyStomp) != 1 || len(g.popups) != 1 {
					t.Error("expected one stomp cue and one popup")
				}
			} else {
				if g.enemies[0].Defeated {
					t.Error("enemy should not be defeated")
				}
				if !g.player.Invincible || g.message != "Ouch!" {
					t.Errorf("expected hit, invincible=%v message=%q", g.player.Invincible, g.message)
				}
				if g.player.X != 10 || g.player.VX != 0 {
					t.Errorf("knockback: x=%v vx=%v", g.player.X, g.player.VX)
				}
			}
			if g.player.Lives != tc.wantLives {
				t.Errorf("lives = %d, expected %d", g.player.Lives, tc.wantLives)
			}
		})
	}
}

func TestOneHitPerTick(t *testing.T) {
	g, _ := newTestGame(t, enemyCampaign)
	g.enemies = []Enemy{
		{ID: 1, X: 20, Spawned: true},
		{ID: 2, X: 21, Spawned: true},
	}
	g.player.X = 20

	g.Step(idle())
	if g.player.Lives != 2 {
		t.Errorf("lives = %d, expected exactly one hit", g.player.Lives)
	}
}

func TestEnemyLifecycle(t *testing.T) {
	g, _ := newTestGame(t, enemyCampaign)

	steps(g, 60, idle())
	if g.enemies[0].Spawned || g.enemies[0].X != 50 {
		t.Fatalf("enemy should wait before spawning: %+v", g.enemies[0])
	}

	stepUntil(t, g, idle(), 200, func() bool { return g.enemies[0].Spawned })
	g.Step(idle())
	if g.enemies[0].X >= 50 {
		t.Fatalf("spawned enemy should walk left, x=%v", g.enemies[0].X)
	}

	g.enemies[0].Defeated = true
	g.enemies[0].DefeatedAt = g.sched.now
	stepFor(g, 700*time.Millisecond, idle())
	if len(g.enemies) != 1 {
		t.Fatal("defeated enemy removed too early")
	}
	stepFor(g, 150*time.Millisecond, idle())
	if len(g.enemies) != 0 {
		t.Fatal("defeated enemy should be gone after 800ms")
	}

	g.enemies = []Enemy{{ID: 2, X: -4.95, Speed: 0.1, Spawned: true}}
	g.Step(idle())
	if len(g.enemies) != 0 {
		t.Errorf("enemy past the left edge should be removed: %+v", g.enemies)
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		right float64
	}{
		{"overworld", Overworld{}, 110},
		{"bonus", Bonus{Phase: Underground}, 96.5},
		{"pre-castle", PreCastleRun{}, 150},
		{"final run", FinalRun{}, 146.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, _ := newTestGame(t, enemyCampaign)
			g.mode = tc.mode

			g.player.VX = 0.8
			if x := g.clampBounds(500); x != tc.right || g.player.VX != 0 {
				t.Errorf("right clamp = %v vx=%v, expected %v", x, g.player.VX, tc.right)
			}
			g.player.VX = -0.8
			if x := g.clampBounds(-3); x != 0 || g.player.VX != 0 {
				t.Errorf("left clamp = %v vx=%v", x, g.player.VX)
			}
			g.player.VX = 0.5
			if x := g.clampBounds(50); x != 50 || g.player.VX != 0.5 {
				t.Errorf("inside bounds changed: x=%v vx=%v", x, g.player.VX)
			}
		})
	}
}

func TestPlatformLandingAndSides(t *testing.T) {
	g, _ := newTestGame(t, enemyCampaign)
	g.platforms = []Platform{{ID: 1, X: 40}} // x 40..48, y 25..29

	g.player.X, g.player.Y, g.player.VY = 42, 29.5, -1
	g.player.OnGround = false
	g.Step(idle())
	if g.player.Y != 29 || !g.player.OnGround || g.player.VY != 0 {
		t.Errorf("landing: %+v", g.player)
	}

	g.player.X, g.player.Y, g.player.VX, g.player.VY = 36.4, 20, 0.2, 0
	g.player.OnGround = false
	g.Step(input(false, true, false))
	if g.player.X != 40-3.5 || g.player.VX != 0 {
		t.Errorf("side from the left: x=%v vx=%v", g.player.X, g.player.VX)
	}
}

func TestQuestionFlow(t *testing.T) {
	g, rec := newTestGame(t, twoStageCampaign)
	g.Events()
	g.player.X = 20

	stepUntil(t, g, input(false, false, true), 10, func() bool { return g.quiz.active() })
	if g.Status() != PausedForModal {
		t.Fatalf("status = %v, expected paused for the question", g.Status())
	}
	if g.player.Y != 15 || g.player.VY != 0 {
		t.Errorf("player should stop under the block: y=%v vy=%v", g.player.Y, g.player.VY)
	}

	evs := g.Events()
	if len(evs) != 1 {
		t.Fatalf("events = %v, expected one question request", evs)
	}
	req, ok := evs[0].(QuestionRequested)
	if !ok || req.BlockID != 1 || req.Tier != 1 {
		t.Fatalf("event = %#v", evs[0])
	}

	g.requestQuestion(1)
	if len(g.Events()) != 0 || rec.Count(audio.CueBlockHit) != 1 {
		t.Error("a second bump must not request another question")
	}

	if g.ReceiveQuestion(req.Ticket+1, question.Question{}) {
		t.Error("stale ticket accepted")
	}
	if !g.ReceiveQuestion(req.Ticket, question.Question{Text: "2 + 2", Options: [3]int{3, 4, 5}, Answer: 4}) {
		t.Fatal("question rejected")
	}
	if !g.Answer(1) {
		t.Fatal("answer rejected")
	}
	if g.Answer(0) {
		t.Error("second answer accepted")
	}
	if rec.Count(audio.CueCorrectAnswer) != 1 {
		t.Error("expected correct-answer cue")
	}

	stepFor(g, 1400*time.Millisecond, idle())
	if g.score != 0 {
		t.Fatal("answer applied before the settle delay")
	}
	stepUntil(t, g, idle(), 30, func() bool { return !g.quiz.active() })
	if g.score != 100 || !g.blocks[0].Cleared || g.message != "Correct!" {
		t.Errorf("score=%d cleared=%v message=%q", g.score, g.blocks[0].Cleared, g.message)
	}
	stepFor(g, 150*time.Millisecond, idle())
	if len(g.popups) != 1 || g.popups[0].Text != "+100" {
		t.Errorf("popups = %+v", g.popups)
	}
	if g.Status() != Running {
		t.Errorf("status = %v after settle", g.Status())
	}
}

func TestWrongAnswerHitsPlayer(t *testing.T) {
	g, _ := newTestGame(t, twoStageCampaign)
	g.requestQuestion(1)
	ev := g.Events()
	req := ev[len(ev)-1].(QuestionRequested)
	g.ReceiveQuestion(req.Ticket, question.Question{Options: [3]int{3, 4, 5}, Answer: 4})

	g.Step(action(core.ActionAnswer1))
	stepUntil(t, g, idle(), 120, func() bool { return !g.quiz.active() })

	if g.player.Lives != 2 || g.blocks[0].Cleared || g.score != 0 {
		t.Errorf("lives=%d cleared=%v score=%d", g.player.Lives, g.blocks[0].Cleared, g.score)
	}
}

func TestMissingAnswerIsNormalized(t *testing.T) {
	g, _ := newTestGame(t, twoStageCampaign)
	g.requestQuestion(1)
	req := g.Events()[1].(QuestionRequested)
	g.ReceiveQuestion(req.Ticket, question.Question{Options: [3]int{1, 2, 3}, Answer: 9})

	if g.quiz.current.Options[0] != 9 {
		t.Errorf("options = %v, expected answer forced into slot 0", g.quiz.current.Options)
	}
}

func TestResetInvalidatesPending(t *testing.T) {
	g, _ := newTestGame(t, twoStageCampaign)
	g.requestQuestion(1)
	req := g.Events()[1].(QuestionRequested)
	g.ReceiveQuestion(req.Ticket, question.Question{Options: [3]int{3, 4, 5}, Answer: 4})
	g.Answer(1)

	g.Reset(g.runtime)
	if g.ReceiveQuestion(req.Ticket, question.Question{Answer: 1}) {
		t.Error("ticket from the previous run accepted")
	}
	stepFor(g, 2*time.Second, idle())
	if g.score != 0 || g.blocks[0].Cleared {
		t.Error("settle timer from the previous run fired")
	}
}

func TestStageClearAdvances(t *testing.T) {
	g, rec := newTestGame(t, twoStageCampaign)
	g.blocks[0].Cleared = true
	g.player.X, g.player.VX = 109.9, 0.8

	g.Step(input(false, true, false))
	if ow, ok := g.mode.(Overworld); !ok || !ow.StageComplete {
		t.Fatalf("mode = %#v, expected completed overworld", g.mode)
	}
	if g.message != "Stage cleared!" || rec.Count(audio.CueVictory) != 1 {
		t.Errorf("message=%q victory=%d", g.message, rec.Count(audio.CueVictory))
	}
	if g.player.Lives != 4 {
		t.Errorf("lives = %d, expected an extra life", g.player.Lives)
	}
	if g.Status() != PausedForTransition {
		t.Errorf("status = %v", g.Status())
	}

	stepFor(g, 1900*time.Millisecond, input(false, true, false))
	if g.stage != 1 {
		t.Fatal("advanced too early")
	}
	stepFor(g, 200*time.Millisecond, idle())
	if g.stage != 2 || g.player.X != 10 {
		t.Errorf("stage=%d x=%v, expected stage 2 at the start", g.stage, g.player.X)
	}
	if g.livesAtStageStart != 4 {
		t.Errorf("livesAtStageStart = %d", g.livesAtStageStart)
	}
}

func TestBonusEligibility(t *testing.T) {
	tests := []struct {
		name      string
		stage     int
		loseLife  bool
		wantHole  bool
		wantDelay bool
	}{
		{"cleared rule opens at once", 3, false, true, false},
		{"perfect rule waits", 6, false, true, true},
		{"perfect rule needs every life", 6, true, false, false},
		{"no rule", 2, false, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, _ := newTestGame(t, "")
			if err := g.setupStage(tc.stage); err != nil {
				t.Fatal(err)
			}
			if tc.loseLife {
				g.player.Lives--
			}
			for i := range g.blocks {
				g.blocks[i].Cleared = true
			}

			g.Step(idle())
			if tc.wantDelay {
				if !g.bonusPending || g.message != "Perfect score!" {
					t.Fatalf("pending=%v message=%q", g.bonusPending, g.message)
				}
				stepFor(g, 1100*time.Millisecond, idle())
			}

			b, isBonus := g.mode.(Bonus)
			if isBonus != tc.wantHole {
				t.Fatalf("mode = %#v", g.mode)
			}
			if isBonus && b.Phase != HoleVisible {
				t.Errorf("phase = %v", b.Phase)
			}
		})
	}
}

func TestBonusRoundTrip(t *testing.T) {
	g, rec := newTestGame(t, "")
	if err := g.setupStage(3); err != nil {
		t.Fatal(err)
	}
	for i := range g.blocks {
		g.blocks[i].Cleared = true
	}
	g.Step(idle())
	g.player.X = 6

	g.Step(idle())
	if b, ok := g.mode.(Bonus); !ok || b.Phase != Falling {
		t.Fatalf("mode = %#v, expected falling", g.mode)
	}
	if rec.Count(audio.CueBonusStart) != 1 || g.Snapshot().PlayerVisible {
		t.Error("fall should cue bonus-start and hide the player")
	}
	if g.Status() != PausedForTransition {
		t.Errorf("status = %v", g.Status())
	}

	stepUntil(t, g, idle(), 120, func() bool { return g.instructions })
	b := g.mode.(Bonus)
	if b.Phase != Underground || b.Offset != 100 || b.TimeLeft != 30 {
		t.Fatalf("bonus = %+v", b)
	}
	def, _ := g.campaign.BonusFor(1, 3)
	if len(g.gems) != len(def.Gems) || len(g.rocks) != len(def.Rocks) {
		t.Errorf("gems=%d rocks=%d", len(g.gems), len(g.rocks))
	}
	if g.player.X != 5 || g.player.Y != 12 {
		t.Errorf("player = (%v, %v)", g.player.X, g.player.Y)
	}

	stepFor(g, 2*time.Second, idle())
	if g.mode.(Bonus).TimeLeft != 30 {
		t.Fatal("countdown ran behind the instructions")
	}

	g.Step(action(core.ActionConfirm))
	stepUntil(t, g, idle(), 31*60, func() bool { return g.mode.(Bonus).Phase == Returning })
	if g.message != "Bonus over!" {
		t.Errorf("message = %q", g.message)
	}

	stepUntil(t, g, idle(), 120, func() bool {
		_, ok := g.mode.(Overworld)
		return ok
	})
	if g.player.X != 7 {
		t.Errorf("player x = %v, expected hole x + 2", g.player.X)
	}
	stepFor(g, 600*time.Millisecond, idle())
	if g.stage != 4 {
		t.Errorf("stage = %d, expected 4 after the bonus", g.stage)
	}
}

// playBonusRoom walks into the open hole, dismisses the instructions and
// waits until the player is back in the overworld.
func playBonusRoom(t *testing.T, g *Game) {
	t.Helper()
	stepUntil(t, g, input(true, false, false), 60, func() bool {
		b, ok := g.mode.(Bonus)
		return ok && b.Phase == Falling
	})
	stepUntil(t, g, idle(), 120, func() bool { return g.instructions })
	g.Step(action(core.ActionConfirm))
	stepUntil(t, g, idle(), 31*60, func() bool { return g.mode.(Bonus).Phase == Returning })
	stepUntil(t, g, idle(), 120, func() bool {
		_, ok := g.mode.(Overworld)
		return ok
	})
}

func TestPerfectBonusEndsLevel(t *testing.T) {
	g, _ := newTestGame(t, "")
	if err := g.setupStage(6); err != nil {
		t.Fatal(err)
	}
	for i := range g.blocks {
		g.blocks[i].Cleared = true
	}
	g.Events()

	g.Step(idle())
	if g.message != "Perfect score!" {
		t.Fatalf("message = %q", g.message)
	}
	stepFor(g, 1100*time.Millisecond, idle())
	if b, ok := g.mode.(Bonus); !ok || b.Phase != HoleVisible {
		t.Fatalf("mode = %#v, expected the hole", g.mode)
	}

	playBonusRoom(t, g)
	if g.message != "Level complete!" {
		t.Errorf("message = %q", g.message)
	}
	if g.stage != 6 || g.player.X != 7 {
		t.Errorf("stage=%d x=%v, expected stage 6 at hole x + 2", g.stage, g.player.X)
	}

	stepFor(g, 2900*time.Millisecond, idle())
	if g.outcome != OutcomeNone || g.stage != 6 {
		t.Fatalf("outcome=%v stage=%d before the delay", g.outcome, g.stage)
	}
	stepFor(g, 200*time.Millisecond, idle())
	if g.outcome != OutcomeLevelComplete || !g.State().GameOver {
		t.Fatalf("outcome = %v", g.outcome)
	}

	var ended []RunEnded
	for _, ev := range g.Events() {
		if e, ok := ev.(RunEnded); ok {
			ended = append(ended, e)
		}
	}
	if len(ended) != 1 || ended[0].Stage != 6 || ended[0].Outcome != OutcomeLevelComplete {
		t.Errorf("run ended events = %+v", ended)
	}
}

func TestFinalLevelBonusLeadsToCastleRoad(t *testing.T) {
	g, _ := newTestGame(t, finalBonusCampaign)
	g.blocks[0].Cleared = true

	g.Step(idle())
	if b, ok := g.mode.(Bonus); !ok || b.Phase != HoleVisible {
		t.Fatalf("mode = %#v, expected the hole", g.mode)
	}

	playBonusRoom(t, g)
	if g.message != "Final push!" {
		t.Fatalf("message = %q", g.message)
	}
	if g.outcome != OutcomeNone {
		t.Fatalf("outcome = %v, the final level must not end the run", g.outcome)
	}

	stepUntil(t, g, idle(), 200, func() bool {
		_, ok := g.mode.(PreCastleRun)
		return ok
	})
	if g.message != "Road to the castle!" || len(g.gems) != 30 {
		t.Errorf("message=%q gems=%d", g.message, len(g.gems))
	}
	if g.stage != 1 || g.outcome != OutcomeNone {
		t.Errorf("stage=%d outcome=%v", g.stage, g.outcome)
	}
}

// TestStageScenario plays a one-block stage through input alone: bump the
// block, answer, walk to the goal.
func TestStageScenario(t *testing.T) {
	g, _ := newTestGame(t, scenarioCampaign)
	if len(g.enemies) != 1 || g.enemies[0].X != 115 || !approx(g.enemies[0].Speed, 0.1) {
		t.Fatalf("enemies = %+v", g.enemies)
	}
	var evs []Event
	evs = append(evs, g.Events()...)

	stepUntil(t, g, input(false, true, false), 120, func() bool { return g.player.X >= 17 })
	stepUntil(t, g, input(false, true, true), 60, func() bool { return g.quiz.active() })
	evs = append(evs, g.Events()...)

	var reqs []QuestionRequested
	for _, ev := range evs {
		if r, ok := ev.(QuestionRequested); ok {
			reqs = append(reqs, r)
		}
	}
	if len(reqs) != 1 {
		t.Fatalf("question requests = %d, expected exactly one", len(reqs))
	}
	if !g.ReceiveQuestion(reqs[0].Ticket, question.Question{Text: "3 + 4", Options: [3]int{6, 7, 8}, Answer: 7}) {
		t.Fatal("question rejected")
	}

	g.Step(action(core.ActionAnswer2))
	stepUntil(t, g, idle(), 120, func() bool { return !g.quiz.active() })
	if g.score != 100 || !g.blocks[0].Cleared {
		t.Fatalf("score=%d cleared=%v", g.score, g.blocks[0].Cleared)
	}

	stepUntil(t, g, input(false, true, false), 600, func() bool {
		ow, ok := g.mode.(Overworld)
		return ok && ow.StageComplete
	})
	if g.stage != 1 {
		t.Fatalf("stage = %d at the goal", g.stage)
	}
	stepFor(g, 2100*time.Millisecond, idle())
	if g.stage != 2 {
		t.Fatalf("stage = %d, expected 2 after the delay", g.stage)
	}

	evs = append(evs, g.Events()...)
	requests, started := 0, false
	for _, ev := range evs {
		switch e := ev.(type) {
		case QuestionRequested:
			requests++
		case StageStarted:
			started = started || e.Stage == 2
		}
	}
	if requests != 1 || !started {
		t.Errorf("requests=%d stage 2 started=%v", requests, started)
	}
}

func TestCameraFollowsCastleRoad(t *testing.T) {
	tests := []struct {
		x, want float64
	}{
		{10, 0},
		{40, 0},
		{60, 20},
		{150, 110},
	}
	g, _ := newTestGame(t, enemyCampaign)
	if cam := g.cameraX(); cam != 0 {
		t.Errorf("overworld camera = %v", cam)
	}
	g.mode = PreCastleRun{}
	for _, tc := range tests {
		g.player.X = tc.x
		if got := g.cameraX(); got != tc.want {
			t.Errorf("cameraX at %v = %v, expected %v", tc.x, got, tc.want)
		}
	}
}

func TestKnockbackStopsAtLeftEdge(t *testing.T) {
	g, _ := newTestGame(t, enemyCampaign)
	g.player.X, g.player.VX = 4, -0.5

	g.hitPlayer()
	if g.player.X != 0 || g.player.VX != 0 || g.player.Lives != 2 {
		t.Errorf("x=%v vx=%v lives=%d", g.player.X, g.player.VX, g.player.Lives)
	}
}

func TestGemCollection(t *testing.T) {
	g, rec := newTestGame(t, enemyCampaign)
	g.mode = PreCastleRun{}
	g.gems = []Gem{{ID: 1, X: 11, Y: 14}, {ID: 2, X: 60, Y: 14}}

	g.Step(idle())
	if len(g.gems) != 1 || g.score != 50 || rec.Count(audio.CueGemCollected) != 1 {
		t.Errorf("gems=%v score=%d", g.gems, g.score)
	}
}

func TestCastleEnding(t *testing.T) {
	g, _ := newTestGame(t, "", WithLevel(3))
	if err := g.setupStage(6); err != nil {
		t.Fatal(err)
	}
	g.player.X, g.player.VX = 109.9, 0.8
	g.Step(input(false, true, false))
	if g.message != "Final push!" {
		t.Fatalf("message = %q", g.message)
	}

	stepUntil(t, g, idle(), 200, func() bool {
		_, ok := g.mode.(PreCastleRun)
		return ok
	})
	if len(g.gems) != 30 || !approx(g.gems[1].Y, 20+math.Sin(0.5)*10) || g.gems[1].X != 24 {
		t.Fatalf("pre-castle gems: %d first=%+v", len(g.gems), g.gems[1])
	}
	if g.message != "Road to the castle!" {
		t.Errorf("message = %q", g.message)
	}

	g.player.X, g.player.VX = 149.9, 0.8
	g.Step(input(false, true, false))
	if g.message != "The final castle!" {
		t.Fatalf("message = %q", g.message)
	}
	stepUntil(t, g, idle(), 200, func() bool {
		_, ok := g.mode.(FinalRun)
		return ok
	})
	if cam := g.cameraX(); cam != 0 {
		t.Errorf("camera = %v at the start", cam)
	}

	score := g.score
	g.player.X, g.player.VX = 142.9, 0.8
	g.Step(input(false, true, false))
	if fr, ok := g.mode.(FinalRun); !ok || !fr.Entering {
		t.Fatalf("mode = %#v", g.mode)
	}
	if g.Status() != PausedForTransition {
		t.Errorf("status = %v", g.Status())
	}
	stepUntil(t, g, idle(), 200, func() bool { return g.outcome != OutcomeNone })
	if g.outcome != OutcomeGameComplete || g.score != score+5000 {
		t.Errorf("outcome=%v score=%d", g.outcome, g.score)
	}
}

func TestLevelCompleteOutcome(t *testing.T) {
	g, _ := newTestGame(t, "")
	if err := g.setupStage(5); err != nil {
		t.Fatal(err)
	}
	g.player.X, g.player.VX = 109.9, 0.8
	g.Step(input(false, true, false))
	stepUntil(t, g, idle(), 200, func() bool { return g.stage == 6 })

	g.player.X, g.player.VX = 109.9, 0.8
	g.Step(input(false, true, false))
	if g.message != "Level complete!" {
		t.Fatalf("message = %q", g.message)
	}
	stepFor(g, 2900*time.Millisecond, idle())
	if g.outcome != OutcomeNone {
		t.Fatal("ended too early")
	}
	stepFor(g, 200*time.Millisecond, idle())
	if g.outcome != OutcomeLevelComplete || !g.State().GameOver {
		t.Errorf("outcome = %v", g.outcome)
	}
}

func TestGameOverOnce(t *testing.T) {
	g, rec := newTestGame(t, enemyCampaign)
	g.Events()
	g.player.Lives = 1

	g.hitPlayer()
	g.hitPlayer()
	g.player.Invincible = false
	g.hitPlayer()

	if g.player.Lives != 0 {
		t.Fatalf("lives = %d", g.player.Lives)
	}
	if rec.Count(audio.CueGameOver) != 1 {
		t.Errorf("game-over cue played %d times", rec.Count(audio.CueGameOver))
	}

	stepFor(g, 600*time.Millisecond, idle())
	if g.Status() != Ended || g.outcome != OutcomeGameOver {
		t.Fatalf("status=%v outcome=%v", g.Status(), g.outcome)
	}
	steps(g, 60, idle())

	ended := 0
	for _, ev := range g.Events() {
		if _, ok := ev.(RunEnded); ok {
			ended++
		}
	}
	if ended != 1 {
		t.Errorf("RunEnded emitted %d times", ended)
	}

	g.Step(action(core.ActionRestart))
	if g.Status() == Ended || g.player.Lives != 3 {
		t.Errorf("restart: status=%v lives=%d", g.Status(), g.player.Lives)
	}
}

func TestHelpPauses(t *testing.T) {
	g, _ := newTestGame(t, enemyCampaign)
	g.Step(action(core.ActionHelp))
	if g.Status() != PausedForModal {
		t.Fatalf("status = %v", g.Status())
	}
	x := g.player.X
	steps(g, 10, input(false, true, false))
	if g.player.X != x {
		t.Error("player moved behind the help overlay")
	}
	g.Step(action(core.ActionHelp))
	if g.Status() != Running {
		t.Errorf("status = %v", g.Status())
	}
}

func TestTransitionNames(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{Overworld{}, "none"},
		{Bonus{Phase: HoleVisible}, "holeVisible"},
		{Bonus{Phase: Falling}, "falling"},
		{Bonus{Phase: Underground}, "complete"},
		{Bonus{Phase: Returning}, "returning"},
		{FinalRun{}, "none"},
	}
	for _, tc := range tests {
		if got := Transition(tc.mode); got != tc.want {
			t.Errorf("Transition(%#v) = %q, expected %q", tc.mode, got, tc.want)
		}
	}
}
