package tui

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatianab/step-quest/internal/game"
	"github.com/tatianab/step-quest/internal/models"
	"github.com/tatianab/step-quest/internal/rules"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  command
	}{
		{"step", command{kind: cmdStep}},
		{"  S ", command{kind: cmdStep}},
		{"a", command{kind: cmdAttack}},
		{"potion", command{kind: cmdPotion}},
		{"buy Weapon", command{kind: cmdBuy, item: rules.ShopWeapon}},
		{"b armor", command{kind: cmdBuy, item: rules.ShopArmor}},
		{"/save", command{kind: cmdSave}},
		{"load", command{kind: cmdLoad}},
		{"saves", command{kind: cmdSaves}},
		{"/quit", command{kind: cmdQuit}},
	}
	for _, tt := range tests {
		got, err := parseCommand(tt.input)
		if err != nil {
			t.Errorf("parseCommand(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseCommand(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}

	for _, bad := range []string{"", "dance", "buy"} {
		if _, err := parseCommand(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestScreenModes(t *testing.T) {
	s := NewScreen()
	s.ShowMessage("one", game.Append)
	s.ShowMessage("two", game.Append)
	if f := s.frame(); len(f.lines) != 2 {
		t.Fatalf("Expected 2 lines, got %v", f.lines)
	}
	s.ShowMessage("three", game.Replace)
	if f := s.frame(); len(f.lines) != 1 || f.lines[0] != "three" {
		t.Fatalf("Expected replace to clear the log, got %v", f.lines)
	}

	s.SetControlVisible(game.ControlShop, true)
	if f := s.frame(); !f.shop || f.attack {
		t.Errorf("Expected only shop visible, got %+v", f)
	}
}

func newTestGame(t *testing.T) (*game.Game, *Screen, SlotLister) {
	t.Helper()
	dir := t.TempDir()
	scr := NewScreen()
	g, err := game.New(rules.Default(), rand.New(rand.NewSource(1)), models.NewFileStore(dir, "player"), scr)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	slots := func(context.Context) ([]string, error) {
		return models.ListSaves(dir)
	}
	return g, scr, slots
}

func sized(t *testing.T, m model) model {
	t.Helper()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(model)
}

func TestModelNamePromptThenPlay(t *testing.T) {
	g, scr, slots := newTestGame(t)
	m := sized(t, NewModel(g, rules.Default(), scr, slots, false))
	if !strings.Contains(m.View(), "What is your name?") {
		t.Fatalf("Expected name prompt, got:\n%s", m.View())
	}

	m.textInput.SetValue("Ayla")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(model)
	if m.state != stateBusy || cmd == nil {
		t.Fatalf("Expected busy state with a pending command, got %v", m.state)
	}

	updated, _ = m.Update(m.begin("Ayla")())
	m = updated.(model)
	if m.state != statePlaying {
		t.Fatalf("Expected playing state, got %v", m.state)
	}
	if g.Player().Name != "Ayla" {
		t.Errorf("Expected player Ayla, got %q", g.Player().Name)
	}
	view := m.View()
	for _, want := range []string{"HERO", "Ayla", "HP: 100/100", "Commands: step, potion"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestModelUnknownCommand(t *testing.T) {
	g, scr, slots := newTestGame(t)
	m := NewModel(g, rules.Default(), scr, slots, true)
	m.textInput.SetValue("dance")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(model)
	if cmd != nil || m.state != statePlaying {
		t.Fatalf("Expected no action for an unknown command")
	}
	if !strings.Contains(m.status, "unknown command") {
		t.Errorf("Expected status message, got %q", m.status)
	}
}

func TestModelRunsAction(t *testing.T) {
	g, scr, slots := newTestGame(t)
	m := sized(t, NewModel(g, rules.Default(), scr, slots, true))

	updated, _ := m.Update(m.run(command{kind: cmdPotion})())
	m = updated.(model)
	if !strings.Contains(m.View(), "You don't have any health potions!") {
		t.Errorf("Expected potion refusal in log, got:\n%s", m.View())
	}
}

func TestModelListsSaves(t *testing.T) {
	g, scr, slots := newTestGame(t)
	m := sized(t, NewModel(g, rules.Default(), scr, slots, true))

	updated, _ := m.Update(m.run(command{kind: cmdSaves})())
	m = updated.(model)
	if !strings.Contains(m.View(), "There are no saved games yet.") {
		t.Fatalf("Expected empty slot list, got:\n%s", m.View())
	}

	if err := g.Begin(context.Background(), "Ayla"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	updated, _ = m.Update(m.run(command{kind: cmdSaves})())
	m = updated.(model)
	if !strings.Contains(m.View(), "Saved slots: player.") {
		t.Errorf("Expected player slot in list, got:\n%s", m.View())
	}
}

func TestModelListsSavesUnavailable(t *testing.T) {
	g, scr, _ := newTestGame(t)
	m := NewModel(g, rules.Default(), scr, nil, true)

	if msg := m.run(command{kind: cmdSaves})(); msg.(actionDoneMsg).err != nil {
		t.Fatalf("list saves: %v", msg.(actionDoneMsg).err)
	}
	if f := scr.frame(); len(f.lines) != 1 || f.lines[0] != "Save slots are not available." {
		t.Errorf("Unexpected log %v", f.lines)
	}
}
