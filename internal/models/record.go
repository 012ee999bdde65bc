package models

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrNoSave is returned by stores when no record exists for the key.
var ErrNoSave = errors.New("no saved player")

// ErrMalformedRecord marks a stored record that could not be decoded at all.
var ErrMalformedRecord = errors.New("malformed save record")

// PlayerRecord is the serialized form of a Player. Pointer fields distinguish an
// absent field from a legitimate zero so that defaults only fill what is missing.
type PlayerRecord struct {
	Name      *string          `yaml:"name,omitempty"`
	HP        *int             `yaml:"hp,omitempty"`
	MaxHP     *int             `yaml:"maxHp,omitempty"`
	Attack    *int             `yaml:"attack,omitempty"`
	Defense   *int             `yaml:"defense,omitempty"`
	Coins     *int             `yaml:"coins,omitempty"`
	Inventory *InventoryRecord `yaml:"inventory,omitempty"`
	Equipment *Equipment       `yaml:"equipment,omitempty"`
}

type InventoryRecord struct {
	HealthPotions *int `yaml:"healthPotions,omitempty"`
}

// NewRecord captures every field of p.
func NewRecord(p Player) PlayerRecord {
	equipment := p.Equipment
	return PlayerRecord{
		Name:      &p.Name,
		HP:        &p.HP,
		MaxHP:     &p.MaxHP,
		Attack:    &p.Attack,
		Defense:   &p.Defense,
		Coins:     &p.Coins,
		Inventory: &InventoryRecord{HealthPotions: &p.Inventory.HealthPotions},
		Equipment: &equipment,
	}
}

// Player rebuilds a Player, taking any absent field from defaults.
// Inventory and equipment never come from defaults: a record without them
// starts with no potions and empty slots.
func (r PlayerRecord) Player(defaults Player) Player {
	p := Player{
		Name:    pick(r.Name, defaults.Name),
		MaxHP:   pick(r.MaxHP, defaults.MaxHP),
		Attack:  pick(r.Attack, defaults.Attack),
		Defense: pick(r.Defense, defaults.Defense),
		Coins:   pick(r.Coins, defaults.Coins),
	}
	p.HP = pick(r.HP, p.MaxHP)
	if r.Inventory != nil {
		p.Inventory.HealthPotions = pick(r.Inventory.HealthPotions, 0)
	}
	if r.Equipment != nil {
		p.Equipment = *r.Equipment
	}
	if p.Name == "" {
		p.Name = defaults.Name
	}
	p.Clamp()
	return p
}

// MarshalRecord encodes a record as YAML.
func MarshalRecord(r PlayerRecord) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode player record: %w", err)
	}
	return data, nil
}

// UnmarshalRecord decodes a YAML (or JSON, which is valid YAML) record.
func UnmarshalRecord(data []byte) (PlayerRecord, error) {
	var r PlayerRecord
	if err := yaml.Unmarshal(data, &r); err != nil {
		return PlayerRecord{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return r, nil
}

func pick[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
