package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-b", func() Game { return stubGame{id: "stub-b"} })
	Register("stub-a", func() Game { return stubGame{id: "stub-a"} })

	if !Exists("stub-a") || Exists("stub-z") {
		t.Error("Exists reports the wrong set")
	}

	g, err := Create("stub-b")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "stub-b" {
		t.Errorf("created %q", g.ID())
	}

	a, b := -1, -1
	for i, info := range List() {
		switch info.ID {
		case "stub-a":
			a = i
			if info.Title != "Stub stub-a" {
				t.Errorf("title = %q", info.Title)
			}
		case "stub-b":
			b = i
		}
	}
	if a < 0 || b < 0 || a > b {
		t.Errorf("List should hold both stubs sorted by ID, got positions %d, %d", a, b)
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("nope")
	if !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create(nope) error = %v, expected ErrUnknownGame", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Game { return stubGame{id: "stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub-dup", func() Game { return stubGame{id: "stub-dup"} })
}
