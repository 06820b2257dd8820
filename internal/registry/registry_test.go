package registry

import (
	"testing"

	"github.com/LandoCrissian/LAMMB-Runner/internal/core"
)

type fakeGame struct{ id string }

func (g fakeGame) ID() string                           { return g.id }
func (g fakeGame) Title() string                        { return "Fake " + g.id }
func (g fakeGame) Reset(core.RuntimeConfig)             {}
func (g fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g fakeGame) Render(*core.Screen)                  {}
func (g fakeGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-fake", func() Game { return fakeGame{id: "zz-fake"} })
	Register("aa-fake", func() Game { return fakeGame{id: "aa-fake"} })

	if !Exists("zz-fake") || Exists("missing") {
		t.Fatal("Exists reported the wrong games")
	}

	g, err := Create("aa-fake")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "aa-fake" {
		t.Errorf("ID = %q", g.ID())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("expected error for unknown game")
	}

	list := List()
	var ids []string
	for _, info := range list {
		ids = append(ids, info.ID)
		if info.ID == "zz-fake" && info.Title != "Fake zz-fake" {
			t.Errorf("Title = %q", info.Title)
		}
	}
	if len(ids) < 2 || ids[0] != "aa-fake" || ids[len(ids)-1] != "zz-fake" {
		t.Errorf("List not sorted by id: %v", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup-fake", func() Game { return fakeGame{id: "dup-fake"} })
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate id")
		}
	}()
	Register("dup-fake", func() Game { return fakeGame{id: "dup-fake"} })
}
