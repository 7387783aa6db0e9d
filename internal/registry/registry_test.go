package registry

import (
	"testing"

	"github.com/vovakirdan/numrun/internal/core"
)

type fakeGame struct {
	id string
}

func (g fakeGame) ID() string {
	return g.id
}

func (g fakeGame) Title() string {
	return "Fake " + g.id
}

func (g fakeGame) Reset(core.RuntimeConfig) {}

func (g fakeGame) Step(core.InputFrame) core.StepResult {
	return core.StepResult{}
}

func (g fakeGame) Render(*core.Screen) {}

func (g fakeGame) State() core.GameState {
	return core.GameState{}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("zeta-test", func() Game { return fakeGame{id: "zeta-test"} })
	Register("alpha-test", func() Game { return fakeGame{id: "alpha-test"} })

	if !Exists("alpha-test") || Exists("missing") {
		t.Error("Exists mismatch")
	}

	g, err := Create("zeta-test")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zeta-test" {
		t.Errorf("ID = %q", g.ID())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("expected error for unknown game")
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
		if info.ID == "alpha-test" && info.Title != "Fake alpha-test" {
			t.Errorf("title = %q", info.Title)
		}
	}
	if len(ids) < 2 {
		t.Fatalf("List() = %v", ids)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("List() not sorted: %v", ids)
		}
	}
}

func TestRegisterTwicePanics(t *testing.T) {
	Register("dup-test", func() Game { return fakeGame{id: "dup-test"} })
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Register("dup-test", func() Game { return fakeGame{id: "dup-test"} })
}
