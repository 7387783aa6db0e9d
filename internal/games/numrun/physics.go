package numrun

import (
	"math"

	"github.com/vovakirdan/numrun/internal/audio"
	"github.com/vovakirdan/numrun/internal/config"
	"github.com/vovakirdan/numrun/internal/core"
)

// integrate applies gravity and horizontal input to p's velocity and returns
// the tentative position. Right wins over left when both are held.
func integrate(p *Player, in core.Intent, phys config.PhysicsConfig) (x, y float64) {
	p.VY -= phys.Gravity

	switch {
	case in.Right:
		p.VX = math.Min(p.VX+phys.Acceleration, phys.MaxSpeed)
	case in.Left:
		p.VX = math.Max(p.VX-phys.Acceleration, -phys.MaxSpeed)
	default:
		p.VX *= phys.Friction
		if math.Abs(p.VX) < phys.Epsilon {
			p.VX = 0
		}
	}

	return p.X + p.VX, p.Y + p.VY
}

// canJump reports whether a jump press takes effect now.
func (g *Game) canJump() bool {
	if g.status() != Running || !g.player.OnGround {
		return false
	}
	if ow, ok := g.mode.(Overworld); ok && ow.StageComplete {
		return false
	}
	return true
}

func (g *Game) jump() {
	g.player.VY = g.cfg.Physics.JumpForce
	g.player.OnGround = false
	g.cue(audio.CueJump)
}
