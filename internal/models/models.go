package models

// Item identifies something that can be looted, bought or equipped.
type Item string

const (
	ItemCoins        Item = "coins"
	ItemHealthPotion Item = "healthPotion"
	ItemSword        Item = "sword"
	ItemShield       Item = "shield"
)

// Slot is an equipment slot. Each slot holds at most one item.
type Slot string

const (
	SlotWeapon Slot = "weapon"
	SlotArmor  Slot = "armor"
)

// Inventory holds consumables.
type Inventory struct {
	HealthPotions int `yaml:"healthPotions"`
}

// Equipment holds the item occupying each slot. Empty means the slot is free.
type Equipment struct {
	Weapon Item `yaml:"weapon,omitempty"`
	Armor  Item `yaml:"armor,omitempty"`
}

// Get returns the item in slot.
func (e Equipment) Get(slot Slot) Item {
	switch slot {
	case SlotWeapon:
		return e.Weapon
	case SlotArmor:
		return e.Armor
	}
	return ""
}

// Set places item in slot.
func (e *Equipment) Set(slot Slot, item Item) {
	switch slot {
	case SlotWeapon:
		e.Weapon = item
	case SlotArmor:
		e.Armor = item
	}
}

// Player is the persistent player character.
type Player struct {
	Name      string    `yaml:"name"`
	HP        int       `yaml:"hp"`
	MaxHP     int       `yaml:"maxHp"`
	Attack    int       `yaml:"attack"`
	Defense   int       `yaml:"defense"`
	Coins     int       `yaml:"coins"`
	Inventory Inventory `yaml:"inventory"`
	Equipment Equipment `yaml:"equipment"`
}

// Clamp restores the stat invariants: hp within [0, maxHp] and no negative counters.
func (p *Player) Clamp() {
	if p.MaxHP < 0 {
		p.MaxHP = 0
	}
	p.HP = clamp(p.HP, 0, p.MaxHP)
	p.Attack = max(p.Attack, 0)
	p.Defense = max(p.Defense, 0)
	p.Coins = max(p.Coins, 0)
	p.Inventory.HealthPotions = max(p.Inventory.HealthPotions, 0)
}

// Heal adds amount hp without exceeding maxHp and returns the hp actually restored.
func (p *Player) Heal(amount int) int {
	before := p.HP
	p.HP += amount
	p.Clamp()
	return p.HP - before
}

// TakeDamage subtracts amount hp, flooring at zero.
func (p *Player) TakeDamage(amount int) {
	p.HP -= max(amount, 0)
	p.Clamp()
}

// Revive restores hp to maxHp.
func (p *Player) Revive() {
	p.HP = p.MaxHP
}

// Defeated reports whether hp has run out.
func (p Player) Defeated() bool {
	return p.HP <= 0
}

// Monster is an ephemeral opponent owned by a single combat. It is never persisted.
type Monster struct {
	Name    string
	HP      int
	Attack  int
	Defense int
}

// Alive reports whether the monster still has hp left.
func (m Monster) Alive() bool {
	return m.HP > 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
