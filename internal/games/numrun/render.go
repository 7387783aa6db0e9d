package numrun

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/numrun/internal/config"
	"github.com/vovakirdan/numrun/internal/core"
)

const (
	minScreenW = 40
	minScreenH = 14
	hudRows    = 1
)

// Visual characters for rendering
const (
	PlayerChar     = '█'
	EnemyChar      = '▆'
	EnemyDownChar  = '▁'
	BlockChar      = '▓'
	BlockDoneChar  = '▒'
	BlockMarkChar  = '?'
	PlatformChar   = '▀'
	RockChar       = '▓'
	GemChar        = '◆'
	GrassChar      = '▀'
	DirtChar       = '▒'
	CastleWallChar = '█'
	CastleDoorChar = '▒'
)

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	RenderSnapshot(dst, g.Snapshot(), g.cfg)
}

// viewport maps world coordinates to screen cells. The world is 100 units
// wide and 100 units tall on screen; shift moves the whole scene vertically
// during bonus transitions.
type viewport struct {
	w, h    int
	playH   int
	cameraX float64
	shift   int
}

func (v viewport) col(x float64) int {
	return int(math.Floor((x - v.cameraX) * float64(v.w) / 100))
}

func (v viewport) row(y float64) int {
	return hudRows + int(math.Floor((100-y)*float64(v.playH)/100)) + v.shift
}

// fill paints the world rectangle (x, y, w, h) with at least one cell.
func (v viewport) fill(dst *core.Screen, x, y, w, h float64, r rune, c core.Color) {
	x0, x1 := v.col(x), v.col(x+w)
	y0, y1 := v.row(y+h), v.row(y)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for row := core.Clamp(y0, hudRows, v.h); row < y1; row++ {
		for col := x0; col < x1; col++ {
			dst.SetColor(col, row, r, c)
		}
	}
}

// RenderSnapshot draws s into dst.
func RenderSnapshot(dst *core.Screen, s Snapshot, cfg config.PlatformerConfig) {
	w, h := dst.Width(), dst.Height()
	if w < minScreenW || h < minScreenH {
		dst.DrawTextCentered(h/2, "Terminal too small", core.ColorHUD)
		return
	}

	v := viewport{w: w, h: h, playH: h - hudRows, cameraX: s.CameraX}
	if b, ok := s.Mode.(Bonus); ok {
		off := int(b.Offset / cfg.Bonus.OffsetMax * float64(v.playH))
		switch b.Phase {
		case Falling:
			v.shift = -off
		case Returning:
			v.shift = v.playH - off
		}
	}

	underground := false
	if b, ok := s.Mode.(Bonus); ok && (b.Phase == Underground || b.Phase == Returning) {
		underground = true
	}

	drawGround(dst, v, s, cfg, underground)
	switch s.Mode.(type) {
	case PreCastleRun, FinalRun:
		drawCastle(dst, v, cfg)
	}

	for _, p := range s.Platforms {
		v.fill(dst, p.X, cfg.World.PlatformY, cfg.World.PlatformWidth, cfg.World.PlatformHeight, PlatformChar, core.ColorPlatform)
	}
	for _, r := range s.Rocks {
		v.fill(dst, r.X, r.Y, cfg.World.RockWidth, cfg.World.RockHeight, RockChar, core.ColorRock)
	}
	for _, b := range s.Blocks {
		drawBlock(dst, v, b, cfg)
	}
	for _, gm := range s.Gems {
		dst.SetColor(v.col(gm.X+cfg.World.GemWidth/2), v.row(gm.Y+cfg.World.GemHeight/2), GemChar, core.ColorGem)
	}
	for _, e := range s.Enemies {
		if !e.Spawned {
			continue
		}
		if e.Defeated {
			v.fill(dst, e.X, cfg.World.GroundY, cfg.Enemies.Width, 1, EnemyDownChar, core.ColorEnemyDown)
			continue
		}
		v.fill(dst, e.X, cfg.World.GroundY, cfg.Enemies.Width, cfg.Enemies.Height, EnemyChar, core.ColorEnemy)
	}

	if s.PlayerVisible {
		color := core.ColorPlayer
		if s.Player.Invincible && (s.Tick/6)%2 == 1 {
			color = core.ColorPlayerBlink
		}
		v.fill(dst, s.Player.X, s.Player.Y, cfg.Player.Width, cfg.Player.Height, PlayerChar, color)
	}

	for _, p := range s.Popups {
		dst.DrawTextColor(v.col(p.X), v.row(p.Y)-1, p.Text, core.ColorScorePopup)
	}

	drawHUD(dst, s)
	if s.Message != "" {
		dst.DrawTextCentered(hudRows+v.playH/4, s.Message, core.ColorMessage)
	}
	drawOverlays(dst, s)
}

func drawGround(dst *core.Screen, v viewport, s Snapshot, cfg config.PlatformerConfig, underground bool) {
	top := v.row(cfg.World.GroundY)
	grass, dirt := core.ColorGrass, core.ColorDirt
	if underground {
		grass, dirt = core.ColorRock, core.ColorRock
	}

	holeFrom, holeTo := -1, -1
	if b, ok := s.Mode.(Bonus); ok && (b.Phase == HoleVisible || b.Phase == Falling) {
		holeFrom, holeTo = v.col(cfg.Bonus.HoleX), v.col(cfg.Bonus.HoleX+cfg.Bonus.HoleWidth)
	}

	for row := core.Clamp(top, hudRows, v.h); row < v.h; row++ {
		if row == top {
			dst.DrawHLine(0, row, v.w, GrassChar, grass)
		} else {
			dst.DrawHLine(0, row, v.w, DirtChar, dirt)
		}
		if holeTo > holeFrom {
			dst.DrawHLine(holeFrom, row, holeTo-holeFrom, ' ', core.ColorHole)
		}
	}
}

func drawCastle(dst *core.Screen, v viewport, cfg config.PlatformerConfig) {
	w := cfg.World
	width := (w.CastleDoorX - w.CastleX) * 2
	v.fill(dst, w.CastleX, w.GroundY, width, 40, CastleWallChar, core.ColorCastle)
	v.fill(dst, w.CastleDoorX, w.GroundY, cfg.Player.Width*2, 15, CastleDoorChar, core.ColorBrown)
}

func drawBlock(dst *core.Screen, v viewport, b Block, cfg config.PlatformerConfig) {
	bw, bh := cfg.World.BlockWidth, cfg.World.BlockHeight
	if b.Cleared {
		v.fill(dst, b.X, b.Y, bw, bh, BlockDoneChar, core.ColorBlockDone)
		return
	}
	v.fill(dst, b.X, b.Y, bw, bh, BlockChar, core.ColorBlock)
	dst.SetColor(v.col(b.X+bw/2), v.row(b.Y+bh/2), BlockMarkChar, core.ColorHUD)
}

func drawHUD(dst *core.Screen, s Snapshot) {
	hud := fmt.Sprintf(" ♥ %d   SCORE %06d   LEVEL %d-%d", s.Player.Lives, s.Score, s.Level, s.Stage)
	switch m := s.Mode.(type) {
	case Bonus:
		if m.Phase == Underground {
			hud += fmt.Sprintf("   BONUS %02d", s.BonusTimeLeft)
		}
	case PreCastleRun:
		hud += "   ROAD TO THE CASTLE"
	case FinalRun:
		hud += "   CASTLE"
	}
	dst.DrawTextColor(0, 0, hud, core.ColorHUD)
	dst.DrawTextColor(dst.Width()-9, 0, "H: help ", core.ColorGray)
}

func drawOverlays(dst *core.Screen, s Snapshot) {
	switch {
	case s.Status == Ended:
		drawEnded(dst, s)
	case s.Help:
		drawPanel(dst, core.ColorHUD, helpLines()...)
	case s.Instructions:
		drawPanel(dst, core.ColorGem,
			"BONUS ROOM",
			"",
			"Collect as many gems as you can",
			"before the timer runs out.",
			"",
			"Press Enter to start")
	case s.Question != nil:
		drawQuestion(dst, s.Question)
	}
}

func helpLines() []string {
	return []string{
		"HOW TO PLAY",
		"",
		"←/→ or A/D   walk",
		"Space/W/↑    jump",
		"1 2 3        answer",
		"H            toggle help",
		"B / Esc      back to menu",
		"",
		"Bump ? blocks from below to get a question.",
		"Jump on Tortubits, avoid touching them.",
	}
}

func drawQuestion(dst *core.Screen, q *QuestionView) {
	if q.Loading {
		drawPanel(dst, core.ColorBlock, "QUESTION", "", "Thinking of a question...")
		return
	}

	width := min(dst.Width()-8, 56)
	lines := []string{"QUESTION", ""}
	lines = append(lines, strings.Split(ansi.Wordwrap(q.Text, width, ""), "\n")...)
	lines = append(lines, "")

	opts := make([]string, len(q.Options))
	for i, o := range q.Options {
		mark := " "
		if q.Answered && q.Choice == i {
			mark = ">"
		}
		opts[i] = fmt.Sprintf("%s[%d] %d", mark, i+1, o)
	}
	lines = append(lines, strings.Join(opts, "   "), "")

	switch {
	case !q.Answered:
		lines = append(lines, "Press 1, 2 or 3")
	case q.Correct:
		lines = append(lines, "Correct!")
	default:
		lines = append(lines, "Not quite...")
	}
	drawPanel(dst, core.ColorBlock, lines...)
}

func drawEnded(dst *core.Screen, s Snapshot) {
	title := "GAME OVER"
	switch s.Outcome {
	case OutcomeLevelComplete:
		title = fmt.Sprintf("LEVEL %d COMPLETE", s.Level)
	case OutcomeGameComplete:
		title = "YOU REACHED THE CASTLE!"
	}
	drawPanel(dst, core.ColorMessage,
		title,
		"",
		fmt.Sprintf("Score: %d", s.Score),
		"",
		"R: play again   B: menu")
}

// drawPanel draws a centered box holding lines.
func drawPanel(dst *core.Screen, c core.Color, lines ...string) {
	inner := 0
	for _, l := range lines {
		inner = max(inner, ansi.StringWidth(l))
	}
	bw := min(inner+4, dst.Width())
	bh := min(len(lines)+2, dst.Height())
	x := (dst.Width() - bw) / 2
	y := (dst.Height() - bh) / 2

	box := core.NewRect(x, y, bw, bh)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	for i, l := range lines {
		lx := x + (bw-ansi.StringWidth(l))/2
		dst.DrawTextColor(lx, y+1+i, l, c)
	}
}
