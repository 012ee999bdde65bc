package rules

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tatianab/step-quest/internal/models"
)

func TestDefault(t *testing.T) {
	r := Default()

	if len(r.Events) != 4 {
		t.Errorf("Expected 4 events, got %v", r.Events)
	}
	if r.Monster.HP != (Range{Min: 20, Max: 59}) {
		t.Errorf("Expected monster hp [20,59], got %+v", r.Monster.HP)
	}
	if r.Loot.CommonChance != 80 {
		t.Errorf("Expected common chance 80, got %d", r.Loot.CommonChance)
	}
	if got := r.Shop[ShopWeapon]; got.Price != 50 || got.Item != models.ItemSword {
		t.Errorf("Expected weapon offer {50 sword}, got %+v", got)
	}
	if got := r.Equipment[models.ItemSword]; got.Slot != models.SlotWeapon || got.Attack != 5 {
		t.Errorf("Expected sword to grant +5 attack in weapon slot, got %+v", got)
	}
	if got := r.Equipment[models.ItemShield]; got.Slot != models.SlotArmor || got.Defense != 3 {
		t.Errorf("Expected shield to grant +3 defense in armor slot, got %+v", got)
	}
	if r.PotionHeal != 50 {
		t.Errorf("Expected potion heal 50, got %d", r.PotionHeal)
	}
}

func TestParseOverlaysDefault(t *testing.T) {
	r, err := Parse([]byte("events: [monster, treasure, nothing]\npotion_heal: 20\n"))
	if err != nil {
		t.Fatalf("parse rules: %v", err)
	}
	if len(r.Events) != 3 {
		t.Errorf("Expected shop-less event set, got %v", r.Events)
	}
	if r.PotionHeal != 20 {
		t.Errorf("Expected potion heal 20, got %d", r.PotionHeal)
	}
	if r.Monster.Name != "Goblin" {
		t.Errorf("Expected default monster to survive overlay, got %q", r.Monster.Name)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"inverted range", "treasure_coins: {min: 9, max: 3}\n", ErrInvalidRange},
		{"unknown event", "events: [monster, dragon]\n", ErrUnknownName},
		{"no events", "events: []\n", ErrEmpty},
		{"unknown loot", "loot: {common: [coins, banana]}\n", ErrUnknownName},
		{"empty rare tier", "loot: {rare: []}\n", ErrEmpty},
		{"bad slot", "equipment: {sword: {slot: hat, attack: 5}}\n", ErrUnknownName},
		{"stalemate", "player: {attack: 0}\nmonster: {attack: {min: 0, max: 0}}\ncombat: {player_bonus: {min: 0, max: 0}, monster_bonus: {min: 0, max: 0}}\n", ErrStalemate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	r, err := Load("")
	if err != nil || r.Monster.Name != "Goblin" {
		t.Fatalf("Expected built-in rules, got %+v, %v", r, err)
	}

	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("monster: {name: Orc, hp: {min: 30, max: 30}, attack: {min: 7, max: 7}, defense: {min: 2, max: 2}}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	r, err = Load(path)
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}
	if r.Monster.Name != "Orc" || r.Monster.Defense.Min != 2 {
		t.Errorf("Expected fixed Orc template, got %+v", r.Monster)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing rules file")
	}
}

func TestNewPlayer(t *testing.T) {
	p := Default().NewPlayer("Ayla")
	want := models.Player{Name: "Ayla", HP: 100, MaxHP: 100, Attack: 10, Coins: 50}
	if p != want {
		t.Errorf("Expected %+v, got %+v", want, p)
	}
	if got := Default().NewPlayer(""); got.Name != "Player" {
		t.Errorf("Expected default name, got %q", got.Name)
	}
}
