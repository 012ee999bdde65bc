// Package rules holds the balance table: every number the game resolvers use.
package rules

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/tatianab/step-quest/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultRules []byte

var (
	// ErrInvalidRange indicates a range whose min exceeds its max or is negative.
	ErrInvalidRange = errors.New("range must satisfy 0 <= min <= max")
	// ErrUnknownName indicates an event, item or slot name the game does not know.
	ErrUnknownName = errors.New("unknown name")
	// ErrEmpty indicates a required list is empty.
	ErrEmpty = errors.New("must not be empty")
	// ErrStalemate indicates a table where neither side can ever deal damage.
	ErrStalemate = errors.New("neither player nor monster can deal damage")
)

// Event names accepted in the events list.
const (
	EventMonster  = "monster"
	EventTreasure = "treasure"
	EventShop     = "shop"
	EventNothing  = "nothing"
)

// ShopItem is what the shop calls a purchasable item ("weapon", "armor", ...).
type ShopItem string

const (
	ShopPotion ShopItem = "potion"
	ShopWeapon ShopItem = "weapon"
	ShopArmor  ShopItem = "armor"
)

// Range is an inclusive integer interval.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Span is the number of distinct values in the range.
func (r Range) Span() int {
	return r.Max - r.Min + 1
}

func (r Range) validate(field string) error {
	if r.Min < 0 || r.Min > r.Max {
		return fmt.Errorf("%s [%d,%d]: %w", field, r.Min, r.Max, ErrInvalidRange)
	}
	return nil
}

type Monster struct {
	Name    string `yaml:"name"`
	HP      Range  `yaml:"hp"`
	Attack  Range  `yaml:"attack"`
	Defense Range  `yaml:"defense"`
}

type Combat struct {
	PlayerBonus  Range `yaml:"player_bonus"`
	MonsterBonus Range `yaml:"monster_bonus"`
}

type Loot struct {
	// CommonChance is the percentage of drops taken from the common tier.
	CommonChance int           `yaml:"common_chance"`
	Coins        Range         `yaml:"coins"`
	Common       []models.Item `yaml:"common"`
	Rare         []models.Item `yaml:"rare"`
}

// Gear describes the slot an item occupies and the bonus it grants while equipped.
type Gear struct {
	Slot    models.Slot `yaml:"slot"`
	Attack  int         `yaml:"attack"`
	Defense int         `yaml:"defense"`
}

type Offer struct {
	Price int         `yaml:"price"`
	Item  models.Item `yaml:"item"`
}

// Rules is the complete balance table.
type Rules struct {
	Player        models.Player        `yaml:"player"`
	Events        []string             `yaml:"events"`
	Monster       Monster              `yaml:"monster"`
	Combat        Combat               `yaml:"combat"`
	TreasureCoins Range                `yaml:"treasure_coins"`
	Loot          Loot                 `yaml:"loot"`
	Equipment     map[models.Item]Gear `yaml:"equipment"`
	Shop          map[ShopItem]Offer   `yaml:"shop"`
	PotionHeal    int                  `yaml:"potion_heal"`
}

// Default returns the built-in table.
func Default() *Rules {
	r, err := decode(defaultRules)
	if err != nil {
		panic(fmt.Sprintf("rules: embedded default is invalid: %v", err))
	}
	return r
}

// Parse decodes and validates a YAML table layered over the built-in one:
// sections missing from data keep their default values.
func Parse(data []byte) (*Rules, error) {
	return decode(defaultRules, data)
}

func decode(layers ...[]byte) (*Rules, error) {
	var r Rules
	for _, data := range layers {
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode rules: %w", err)
		}
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Load reads a rules file. An empty path yields the built-in table.
func Load(path string) (*Rules, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	return Parse(data)
}

// Validate checks the table for values the resolvers cannot work with.
func (r *Rules) Validate() error {
	if len(r.Events) == 0 {
		return fmt.Errorf("events: %w", ErrEmpty)
	}
	for _, e := range r.Events {
		switch e {
		case EventMonster, EventTreasure, EventShop, EventNothing:
		default:
			return fmt.Errorf("event %q: %w", e, ErrUnknownName)
		}
	}
	if r.Player.MaxHP <= 0 {
		return fmt.Errorf("player maxHp must be positive")
	}
	if r.Player.HP < 0 || r.Player.HP > r.Player.MaxHP {
		return fmt.Errorf("player hp %d outside [0,%d]", r.Player.HP, r.Player.MaxHP)
	}
	if r.Monster.Name == "" {
		return fmt.Errorf("monster name: %w", ErrEmpty)
	}
	if r.Monster.HP.Min < 1 {
		return fmt.Errorf("monster hp must start at 1 or more")
	}
	ranges := []struct {
		name string
		r    Range
	}{
		{"monster.hp", r.Monster.HP},
		{"monster.attack", r.Monster.Attack},
		{"monster.defense", r.Monster.Defense},
		{"combat.player_bonus", r.Combat.PlayerBonus},
		{"combat.monster_bonus", r.Combat.MonsterBonus},
		{"treasure_coins", r.TreasureCoins},
		{"loot.coins", r.Loot.Coins},
	}
	for _, rg := range ranges {
		if err := rg.r.validate(rg.name); err != nil {
			return err
		}
	}
	if r.Loot.CommonChance < 0 || r.Loot.CommonChance > 100 {
		return fmt.Errorf("loot common_chance %d outside [0,100]", r.Loot.CommonChance)
	}
	for tier, items := range map[string][]models.Item{"common": r.Loot.Common, "rare": r.Loot.Rare} {
		if len(items) == 0 {
			return fmt.Errorf("loot %s tier: %w", tier, ErrEmpty)
		}
		for _, item := range items {
			if err := r.checkItem(item); err != nil {
				return fmt.Errorf("loot %s tier: %w", tier, err)
			}
		}
	}
	for item, gear := range r.Equipment {
		if gear.Slot != models.SlotWeapon && gear.Slot != models.SlotArmor {
			return fmt.Errorf("equipment %s slot %q: %w", item, gear.Slot, ErrUnknownName)
		}
	}
	for name, offer := range r.Shop {
		if offer.Price < 0 {
			return fmt.Errorf("shop %s price must not be negative", name)
		}
		if err := r.checkItem(offer.Item); err != nil {
			return fmt.Errorf("shop %s: %w", name, err)
		}
		if offer.Item == models.ItemCoins {
			return fmt.Errorf("shop %s cannot sell coins", name)
		}
	}
	if r.PotionHeal < 0 {
		return fmt.Errorf("potion_heal must not be negative")
	}
	playerBest := r.Player.Attack + r.Combat.PlayerBonus.Max - r.Monster.Defense.Min
	monsterBest := r.Monster.Attack.Max + r.Combat.MonsterBonus.Max - r.Player.Defense
	if playerBest <= 0 && monsterBest <= 0 {
		return fmt.Errorf("combat: %w", ErrStalemate)
	}
	return nil
}

func (r *Rules) checkItem(item models.Item) error {
	switch item {
	case models.ItemCoins, models.ItemHealthPotion:
		return nil
	}
	if _, ok := r.Equipment[item]; ok {
		return nil
	}
	return fmt.Errorf("item %q: %w", item, ErrUnknownName)
}

// NewPlayer returns a fresh player with the configured starting stats.
func (r *Rules) NewPlayer(name string) models.Player {
	p := r.Player
	if name != "" {
		p.Name = name
	}
	p.Inventory = models.Inventory{}
	p.Equipment = models.Equipment{}
	return p
}
