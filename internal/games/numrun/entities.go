package numrun

import (
	"math"
	"time"

	"github.com/vovakirdan/numrun/internal/core"
	"github.com/vovakirdan/numrun/internal/levels"
)

// Player is the controllable character. X is percent of world width, Y is
// viewport-height units measured up from the bottom.
type Player struct {
	X, Y       float64
	VX, VY     float64
	Lives      int
	Invincible bool
	OnGround   bool
}

// Enemy is a Tortubit walking left along the ground.
type Enemy struct {
	ID         int
	X          float64
	Speed      float64
	Spawned    bool
	Defeated   bool
	DefeatedAt time.Duration
}

// Block is a question block. Bumping it from below asks a question.
type Block struct {
	ID      int
	X, Y    float64
	Cleared bool
}

// Platform is a floating platform at the configured height.
type Platform struct {
	ID int
	X  float64
}

// RockPlatform is an underground platform.
type RockPlatform struct {
	ID   int
	X, Y float64
}

// Gem is a collectible worth points.
type Gem struct {
	ID   int
	X, Y float64
}

// Popup is a floating text indicator.
type Popup struct {
	ID   uint64
	X, Y float64
	Text string
}

func (g *Game) playerRectAt(x, y float64) core.RectF {
	return core.NewRectF(x, y, g.cfg.Player.Width, g.cfg.Player.Height)
}

func (g *Game) enemyRect(e Enemy) core.RectF {
	return core.NewRectF(e.X, g.cfg.World.GroundY, g.cfg.Enemies.Width, g.cfg.Enemies.Height)
}

func (g *Game) blockRect(b Block) core.RectF {
	return core.NewRectF(b.X, b.Y, g.cfg.World.BlockWidth, g.cfg.World.BlockHeight)
}

func (g *Game) platformRect(p Platform) core.RectF {
	w := g.cfg.World
	return core.NewRectF(p.X, w.PlatformY, w.PlatformWidth, w.PlatformHeight)
}

func (g *Game) rockRect(r RockPlatform) core.RectF {
	return core.NewRectF(r.X, r.Y, g.cfg.World.RockWidth, g.cfg.World.RockHeight)
}

func (g *Game) gemRect(gm Gem) core.RectF {
	return core.NewRectF(gm.X, gm.Y, g.cfg.World.GemWidth, g.cfg.World.GemHeight)
}

func buildBlocks(pts []levels.Point) []Block {
	blocks := make([]Block, len(pts))
	for i, p := range pts {
		blocks[i] = Block{ID: i + 1, X: p.X, Y: p.Y}
	}
	return blocks
}

func buildPlatforms(xs []float64) []Platform {
	out := make([]Platform, len(xs))
	for i, x := range xs {
		out[i] = Platform{ID: i + 1, X: x}
	}
	return out
}

func buildEnemies(xs []float64, speed float64) []Enemy {
	out := make([]Enemy, len(xs))
	for i, x := range xs {
		out[i] = Enemy{ID: i + 1, X: x, Speed: speed}
	}
	return out
}

func buildRocks(pts []levels.Point) []RockPlatform {
	out := make([]RockPlatform, len(pts))
	for i, p := range pts {
		out[i] = RockPlatform{ID: i + 1, X: p.X, Y: p.Y}
	}
	return out
}

func buildGems(pts []levels.Point) []Gem {
	out := make([]Gem, len(pts))
	for i, p := range pts {
		out[i] = Gem{ID: i + 1, X: p.X, Y: p.Y}
	}
	return out
}

// preCastleGems lays n gems along a sine wave.
func preCastleGems(n int) []Gem {
	out := make([]Gem, n)
	for i := range out {
		out[i] = Gem{
			ID: i + 1,
			X:  20 + float64(i)*4,
			Y:  20 + math.Sin(float64(i)*0.5)*10,
		}
	}
	return out
}

func (g *Game) blockByID(id int) *Block {
	for i := range g.blocks {
		if g.blocks[i].ID == id {
			return &g.blocks[i]
		}
	}
	return nil
}

func (g *Game) allBlocksCleared() bool {
	if len(g.blocks) == 0 {
		return false
	}
	for _, b := range g.blocks {
		if !b.Cleared {
			return false
		}
	}
	return true
}
