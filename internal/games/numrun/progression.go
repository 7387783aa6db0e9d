package numrun

import (
	"fmt"
	"time"

	"github.com/vovakirdan/numrun/internal/audio"
	"github.com/vovakirdan/numrun/internal/core"
	"github.com/vovakirdan/numrun/internal/levels"
)

// setupStage replaces the world with the given stage of the current level.
// Every timer scheduled for the previous stage is invalidated by stageGen.
func (g *Game) setupStage(stage int) error {
	def, err := g.campaign.Stage(g.level, stage)
	if err != nil {
		return err
	}

	g.stageGen++
	gen := g.stageGen
	g.stage = stage
	g.stageDef = def
	g.mode = Overworld{}
	g.bonusPending = false
	g.bonusElapsed = 0

	g.blocks = buildBlocks(def.Blocks)
	g.platforms = buildPlatforms(def.Platforms)
	g.enemies = buildEnemies(def.Enemies, g.cfg.EnemySpeed(def.EnemySpeed))
	g.rocks = nil
	g.gems = nil

	g.placePlayer(g.cfg.Player.StartX)
	g.livesAtStageStart = g.player.Lives

	g.showMessage(fmt.Sprintf("Stage %d-%d", g.level, stage), g.cfg.Timing.Banner)
	g.cue(audio.CueStageStart)
	g.emit(StageStarted{Level: g.level, Stage: stage})

	g.sched.after(g.cfg.Enemies.SpawnDelay, func() {
		if g.stageGen != gen {
			return
		}
		for i := range g.enemies {
			g.enemies[i].Spawned = true
		}
	})
	return nil
}

func (g *Game) placePlayer(x float64) {
	g.player.X = x
	g.player.Y = g.cfg.World.GroundY
	g.player.VX = 0
	g.player.VY = 0
	g.player.OnGround = true
}

// nextStage loads the following stage of the current level.
func (g *Game) nextStage() {
	if err := g.setupStage(g.stage + 1); err != nil {
		// A validated campaign always has the next stage; treat a gap as the
		// end of the level.
		g.end(OutcomeLevelComplete)
	}
}

// afterStage runs fn after d unless the stage changed meanwhile.
func (g *Game) afterStage(d time.Duration, fn func()) {
	gen := g.stageGen
	g.sched.after(d, func() {
		if g.stageGen == gen && g.outcome == OutcomeNone {
			fn()
		}
	})
}

// checkProgression evaluates bonus eligibility and goals on the committed
// position.
func (g *Game) checkProgression() {
	x := g.player.X
	switch m := g.mode.(type) {
	case Overworld:
		if m.StageComplete || g.bonusPending {
			return
		}
		if g.checkBonus() {
			return
		}
		if x >= g.cfg.World.Goal {
			g.clearStage()
		}
	case PreCastleRun:
		if x >= g.cfg.World.PreCastleGoal && !g.finalRunScheduled {
			g.finalRunScheduled = true
			g.showMessage("The final castle!", g.cfg.Timing.Banner)
			g.afterStage(g.cfg.Timing.PreCastleDelay, g.setupFinalRun)
		}
	case FinalRun:
		if !m.Entering && x >= g.cfg.World.CastleDoorX {
			g.enterCastle()
		}
	}
}

// checkBonus opens the hole when the stage's bonus rule is met. It reports
// whether the bonus path was taken this tick.
func (g *Game) checkBonus() bool {
	if !g.allBlocksCleared() {
		return false
	}
	switch g.stageDef.Bonus {
	case levels.BonusCleared:
		g.startBonusTransition()
		return true
	case levels.BonusPerfect:
		if g.player.Lives != g.livesAtStageStart {
			return false
		}
		g.bonusPending = true
		g.showMessage("Perfect score!", g.cfg.Timing.Banner)
		g.afterStage(g.cfg.Timing.PerfectBonusDelay, g.startBonusTransition)
		return true
	}
	return false
}

func (g *Game) startBonusTransition() {
	g.bonusPending = false
	g.mode = Bonus{Phase: HoleVisible}
}

// startFalling plays the fall animation and enters the underground room
// when it completes.
func (g *Game) startFalling() {
	g.mode = Bonus{Phase: Falling}
	g.player.OnGround = false
	g.cue(audio.CueBonusStart)

	gen := g.stageGen
	b := g.cfg.Bonus
	g.sched.every(b.FrameInterval, func() bool {
		m, ok := g.mode.(Bonus)
		if g.stageGen != gen || !ok || m.Phase != Falling {
			return false
		}
		m.Offset += b.OffsetStep
		if m.Offset < b.OffsetMax {
			g.mode = m
			return true
		}
		g.enterUnderground()
		return false
	})
}

func (g *Game) enterUnderground() {
	b := g.cfg.Bonus
	g.mode = Bonus{Phase: Underground, Offset: b.OffsetMax, TimeLeft: b.Duration}
	g.bonusElapsed = 0
	g.placePlayer(b.StartX)

	def, _ := g.campaign.BonusFor(g.level, g.stage)
	g.gems = buildGems(def.Gems)
	g.rocks = buildRocks(def.Rocks)
	g.instructions = true
}

// tickBonusClock counts running time underground and ends the bonus when the
// countdown reaches zero.
func (g *Game) tickBonusClock() {
	m, ok := g.mode.(Bonus)
	if !ok || m.Phase != Underground {
		return
	}
	g.bonusElapsed += g.frame
	for g.bonusElapsed >= time.Second && m.TimeLeft > 0 {
		g.bonusElapsed -= time.Second
		m.TimeLeft--
	}
	g.mode = m
	if m.TimeLeft == 0 {
		g.endBonus()
	}
}

func (g *Game) endBonus() {
	m := g.mode.(Bonus)
	m.Phase = Returning
	g.mode = m
	g.showMessage("Bonus over!", g.cfg.Timing.Banner)

	gen := g.stageGen
	b := g.cfg.Bonus
	g.sched.every(b.FrameInterval, func() bool {
		m, ok := g.mode.(Bonus)
		if g.stageGen != gen || !ok || m.Phase != Returning {
			return false
		}
		m.Offset -= b.OffsetStep
		if m.Offset > 0 {
			g.mode = m
			return true
		}
		g.returnToOverworld()
		return false
	})
}

func (g *Game) returnToOverworld() {
	g.mode = Overworld{StageComplete: true}
	g.gems = nil
	g.rocks = nil
	g.placePlayer(g.cfg.Bonus.HoleX + 2)

	if g.campaign.IsLastStage(g.level, g.stage) {
		g.finishLevel()
		return
	}
	g.afterStage(g.cfg.Timing.ReturnAdvance, g.nextStage)
}

// clearStage handles reaching the goal of a regular stage.
func (g *Game) clearStage() {
	g.mode = Overworld{StageComplete: true}
	g.cue(audio.CueVictory)

	if g.campaign.IsLastStage(g.level, g.stage) {
		g.finishLevel()
		return
	}

	g.showMessage("Stage cleared!", g.cfg.Timing.Banner)
	if g.stageDef.ExtraLife {
		g.player.Lives++
		g.addPopup(g.player.X, g.player.Y+g.cfg.Player.Height, "1UP", g.cfg.Timing.ExtraLifeBanner)
	}
	g.afterStage(g.cfg.Timing.StageAdvance, g.nextStage)
}

// finishLevel ends the level: the final level continues to the castle road,
// any other level ends the run.
func (g *Game) finishLevel() {
	if g.campaign.IsFinalLevel(g.level) {
		if g.preCastleScheduled {
			return
		}
		g.preCastleScheduled = true
		g.showMessage("Final push!", g.cfg.Timing.Banner)
		g.afterStage(g.cfg.Timing.PreCastleDelay, g.setupPreCastle)
		return
	}
	g.showMessage("Level complete!", g.cfg.Timing.LevelComplete)
	g.afterStage(g.cfg.Timing.LevelComplete, func() { g.end(OutcomeLevelComplete) })
}

func (g *Game) setupPreCastle() {
	g.stageGen++
	g.mode = PreCastleRun{}
	g.blocks = nil
	g.platforms = nil
	g.enemies = nil
	g.rocks = nil
	g.gems = preCastleGems(g.cfg.Bonus.PreCastleGems)
	g.placePlayer(g.cfg.Player.StartX)
	g.showMessage("Road to the castle!", g.cfg.Timing.Banner)
}

func (g *Game) setupFinalRun() {
	g.stageGen++
	g.mode = FinalRun{}
	g.gems = nil
	g.placePlayer(g.cfg.Player.StartX)
}

func (g *Game) enterCastle() {
	g.mode = FinalRun{Entering: true}
	g.player.VX = 0
	g.cue(audio.CueVictory)
	g.showMessage("Game complete!", g.cfg.Timing.LevelComplete)
	g.afterStage(g.cfg.Timing.CastleEnd, func() {
		g.addScore(g.cfg.Scoring.Castle)
		g.end(OutcomeGameComplete)
	})
}

// hitPlayer applies damage unless the player is invincible.
func (g *Game) hitPlayer() {
	if g.player.Invincible || g.outcome != OutcomeNone {
		return
	}
	g.cue(audio.CueIncorrectAnswer)
	g.showMessage("Ouch!", g.cfg.Timing.Message)

	p := &g.player
	p.X = core.ClampF(p.X-g.cfg.Player.Knockback, 0, g.rightBoundary())
	p.VX = 0
	p.VY = 0
	p.Lives = max(p.Lives-1, 0)
	p.Invincible = true

	g.hitGen++
	gen := g.hitGen
	g.sched.after(g.cfg.Player.Invincible, func() {
		if g.hitGen == gen {
			g.player.Invincible = false
		}
	})

	if p.Lives == 0 && !g.gameOverScheduled {
		g.gameOverScheduled = true
		g.cue(audio.CueGameOver)
		g.sched.after(g.cfg.Timing.GameOverDelay, func() { g.end(OutcomeGameOver) })
	}
}

// end finishes the run once.
func (g *Game) end(o Outcome) {
	if g.outcome != OutcomeNone {
		return
	}
	g.outcome = o
	g.emit(RunEnded{Outcome: o, Score: g.score, Level: g.level, Stage: g.stage})
}
