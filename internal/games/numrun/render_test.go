package numrun

import (
	"testing"

	"github.com/vovakirdan/numrun/internal/core"
)

func TestRenderGroundAndHole(t *testing.T) {
	g, _ := newTestGame(t, twoStageCampaign)
	scr := core.NewScreen(80, 24)
	v := viewport{w: 80, h: 24, playH: 24 - hudRows}
	top := v.row(g.cfg.World.GroundY)
	holeFrom := v.col(g.cfg.Bonus.HoleX)
	holeTo := v.col(g.cfg.Bonus.HoleX + g.cfg.Bonus.HoleWidth)

	g.Render(scr)
	for _, col := range []int{0, holeFrom, 79} {
		if got := scr.Get(col, top); got != GrassChar {
			t.Errorf("grass at column %d = %q", col, got)
		}
		if got := scr.Get(col, 23); got != DirtChar {
			t.Errorf("dirt at column %d = %q", col, got)
		}
	}

	g.mode = Bonus{Phase: HoleVisible}
	scr.Clear()
	g.Render(scr)
	for row := top; row < 24; row++ {
		for col := holeFrom; col < holeTo; col++ {
			if got := scr.Get(col, row); got != ' ' {
				t.Fatalf("hole cell (%d, %d) = %q", col, row, got)
			}
		}
	}
	if scr.Get(holeFrom-1, top) != GrassChar || scr.Get(holeTo, top) != GrassChar {
		t.Error("hole should be bounded by grass")
	}
}

func TestRenderClipsBelowHUD(t *testing.T) {
	g, _ := newTestGame(t, twoStageCampaign)
	g.player.Y = 95
	scr := core.NewScreen(80, 24)

	g.Render(scr)
	if scr.Get(8, 1) != PlayerChar {
		t.Fatalf("player missing below the HUD: %q", scr.Row(1))
	}
	for col := 0; col < 80; col++ {
		if scr.Get(col, 0) == PlayerChar {
			t.Fatal("player drawn over the HUD row")
		}
	}
}
