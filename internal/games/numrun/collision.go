package numrun

import (
	"slices"

	"github.com/vovakirdan/numrun/internal/audio"
	"github.com/vovakirdan/numrun/internal/core"
)

type ruleset int

const (
	rulesNone ruleset = iota
	rulesOverworld
	rulesUnderground
)

func (g *Game) terrainRules() ruleset {
	switch m := g.mode.(type) {
	case Overworld:
		return rulesOverworld
	case Bonus:
		if m.Phase == HoleVisible || m.Phase == Falling {
			return rulesOverworld
		}
		return rulesUnderground
	}
	return rulesNone
}

func (g *Game) enemiesActive() bool {
	switch m := g.mode.(type) {
	case Overworld:
		return true
	case Bonus:
		return m.Phase == HoleVisible
	}
	return false
}

func (g *Game) gemsActive() bool {
	switch m := g.mode.(type) {
	case PreCastleRun:
		return true
	case Bonus:
		return m.Phase == Underground || m.Phase == Returning
	}
	return false
}

// resolveTerrain corrects the tentative position (x, y) against the static
// obstacles of the current ruleset, using the committed position as the
// previous frame. It may zero velocity components and raise a block hit.
func (g *Game) resolveTerrain(x, y float64) (float64, float64, bool) {
	onGround := false
	switch g.terrainRules() {
	case rulesOverworld:
		for _, p := range g.platforms {
			x, y = g.collideSolid(g.platformRect(p), x, y, &onGround, false)
		}
		for i := range g.blocks {
			var bumped bool
			x, y, bumped = g.collideBlock(g.blockRect(g.blocks[i]), x, y, &onGround)
			if bumped && !g.blocks[i].Cleared {
				g.requestQuestion(g.blocks[i].ID)
			}
		}
	case rulesUnderground:
		for _, r := range g.rocks {
			x, y = g.collideSolid(g.rockRect(r), x, y, &onGround, true)
		}
	}
	return x, y, onGround
}

// collideSolid lands the player on top of r, optionally stops it from below,
// and blocks it from the sides.
func (g *Game) collideSolid(r core.RectF, x, y float64, onGround *bool, fromBelow bool) (float64, float64) {
	p := &g.player
	w, h := g.cfg.Player.Width, g.cfg.Player.Height
	if x+w <= r.Left() || x >= r.Right() {
		return x, y
	}

	switch {
	case p.Y >= r.Top() && y < r.Top() && p.VY < 0:
		y = r.Top()
		p.VY = 0
		*onGround = true
	case fromBelow && y+h > r.Bottom() && p.Y+h <= r.Bottom() && p.VY > 0:
		y = r.Bottom() - h
		p.VY = 0
	default:
		x = g.collideSide(r, x, y)
	}
	return x, y
}

// collideBlock is collideSolid for question blocks, where the from-below
// case is checked first and reported.
func (g *Game) collideBlock(r core.RectF, x, y float64, onGround *bool) (float64, float64, bool) {
	p := &g.player
	w, h := g.cfg.Player.Width, g.cfg.Player.Height
	if x+w <= r.Left() || x >= r.Right() {
		return x, y, false
	}

	if y+h > r.Bottom() && p.Y+h <= r.Bottom() && p.VY > 0 {
		p.VY = 0
		return x, r.Bottom() - h, true
	}
	if p.Y >= r.Top() && y < r.Top() && p.VY < 0 {
		p.VY = 0
		*onGround = true
		return x, r.Top(), false
	}
	return g.collideSide(r, x, y), y, false
}

func (g *Game) collideSide(r core.RectF, x, y float64) float64 {
	p := &g.player
	w, h := g.cfg.Player.Width, g.cfg.Player.Height
	if !(y < r.Top() && y+h > r.Bottom()) {
		return x
	}
	switch {
	case p.VX > 0 && p.X+w <= r.Left():
		p.VX = 0
		return r.Left() - w
	case p.VX < 0 && p.X >= r.Right():
		p.VX = 0
		return r.Right()
	}
	return x
}

// resolveHoleAndGround starts the bonus fall over an open hole, otherwise
// keeps the player on the ground.
func (g *Game) resolveHoleAndGround(x, y float64, onGround bool) (float64, bool) {
	ground := g.cfg.World.GroundY
	if b, ok := g.mode.(Bonus); ok && b.Phase == HoleVisible {
		hole := g.cfg.Bonus
		if x > hole.HoleX && x < hole.HoleX+hole.HoleWidth-g.cfg.Player.Width && y < ground {
			g.startFalling()
			return y, false
		}
	}
	if b, ok := g.mode.(Bonus); ok && b.Phase == Falling {
		return y, false
	}
	if y < ground {
		y = ground
		g.player.VY = 0
		onGround = true
	}
	return y, onGround
}

func (g *Game) rightBoundary() float64 {
	w := g.cfg.World
	switch g.mode.(type) {
	case Bonus:
		return w.BonusRight - g.cfg.Player.Width
	case PreCastleRun:
		return w.PreCastleGoal
	case FinalRun:
		return w.CastleDoorX + g.cfg.Player.Width
	}
	return w.Goal
}

// clampBounds keeps x within [0, right], zeroing vx at either edge.
func (g *Game) clampBounds(x float64) float64 {
	right := g.rightBoundary()
	switch {
	case x >= right:
		g.player.VX = 0
		return right
	case x <= 0:
		g.player.VX = 0
		return 0
	}
	return x
}

// updateEnemies moves spawned enemies, resolves stomps against the committed
// player position, and prunes enemies that left the screen or finished their
// defeat animation. It reports whether the player was hit.
func (g *Game) updateEnemies() bool {
	pr := g.playerRectAt(g.player.X, g.player.Y)
	falling := g.player.VY < 0
	tol := g.cfg.Enemies.StompTolerance
	hit := false

	for i := range g.enemies {
		e := &g.enemies[i]
		if !e.Spawned || e.Defeated {
			continue
		}
		e.X -= e.Speed
		er := g.enemyRect(*e)
		if !pr.Intersects(er) {
			continue
		}
		if falling && pr.Bottom() >= er.Top()-tol {
			g.stomp(e)
			continue
		}
		if !g.player.Invincible {
			hit = true
		}
	}

	now := g.sched.now
	linger := g.cfg.Enemies.DefeatedLinger
	g.enemies = slices.DeleteFunc(g.enemies, func(e Enemy) bool {
		if e.X <= -g.cfg.Enemies.Width {
			return true
		}
		return e.Defeated && now-e.DefeatedAt >= linger
	})
	return hit
}

func (g *Game) stomp(e *Enemy) {
	e.Defeated = true
	e.DefeatedAt = g.sched.now
	g.player.VY = g.cfg.Enemies.StompBounce
	g.player.OnGround = false
	g.addScore(g.cfg.Scoring.Stomp)
	g.addPopup(e.X, g.cfg.World.GroundY+g.cfg.Enemies.Height, scoreText(g.cfg.Scoring.Stomp), g.cfg.Timing.Popup)
	g.cue(audio.CueEnemyStomp)
}

// collectGems removes gems overlapping the committed player position.
func (g *Game) collectGems() {
	if !g.gemsActive() || len(g.gems) == 0 {
		return
	}
	pr := g.playerRectAt(g.player.X, g.player.Y)
	g.gems = slices.DeleteFunc(g.gems, func(gm Gem) bool {
		if !pr.Intersects(g.gemRect(gm)) {
			return false
		}
		g.addScore(g.cfg.Scoring.Gem)
		g.cue(audio.CueGemCollected)
		return true
	})
}
