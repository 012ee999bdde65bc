package game

import (
	"errors"
	"fmt"

	"github.com/tatianab/step-quest/internal/models"
	"github.com/tatianab/step-quest/internal/rules"
)

var (
	// ErrInsufficientFunds indicates the player cannot afford a purchase.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrEmptyInventory indicates there is no potion to drink.
	ErrEmptyInventory = errors.New("no health potions")
	// ErrAlreadyEquipped indicates the item already occupies its slot.
	ErrAlreadyEquipped = errors.New("already equipped")
	// ErrUnknownItem indicates an item the shop or equipment table does not know.
	ErrUnknownItem = errors.New("unknown item")
)

// Tier is a loot rarity bucket.
type Tier string

const (
	TierCommon Tier = "common"
	TierRare   Tier = "rare"
)

// Drop is a rolled loot result.
type Drop struct {
	Tier   Tier
	Item   models.Item
	Amount int
}

// RollLoot picks a tier (common with the configured percentage), then an item
// uniformly within it, then the coin amount when the item is coins.
func RollLoot(rng Roller, l rules.Loot) Drop {
	d := Drop{Tier: TierRare, Amount: 1}
	items := l.Rare
	if rng.Intn(100) < l.CommonChance {
		d.Tier = TierCommon
		items = l.Common
	}
	d.Item = items[rng.Intn(len(items))]
	if d.Item == models.ItemCoins {
		d.Amount = roll(rng, l.Coins)
	}
	return d
}

// Equip puts item in its slot and applies its bonus. Equipping the item that
// already occupies the slot changes nothing and returns ErrAlreadyEquipped.
// A different item in the slot is replaced and its bonus removed; the
// replaced item is returned.
func Equip(p *models.Player, item models.Item, table map[models.Item]rules.Gear) (models.Item, error) {
	gear, ok := table[item]
	if !ok {
		return "", fmt.Errorf("equip %q: %w", item, ErrUnknownItem)
	}
	current := p.Equipment.Get(gear.Slot)
	if current == item {
		return "", ErrAlreadyEquipped
	}
	if old, ok := table[current]; ok {
		p.Attack -= old.Attack
		p.Defense -= old.Defense
	}
	p.Attack += gear.Attack
	p.Defense += gear.Defense
	p.Equipment.Set(gear.Slot, item)
	p.Clamp()
	return current, nil
}

// Buy debits the offer price and hands over the item. Nothing changes on error.
func Buy(p *models.Player, what rules.ShopItem, r *rules.Rules) (rules.Offer, error) {
	offer, ok := r.Shop[what]
	if !ok {
		return rules.Offer{}, fmt.Errorf("buy %q: %w", what, ErrUnknownItem)
	}
	if p.Coins < offer.Price {
		return offer, ErrInsufficientFunds
	}
	if gear, ok := r.Equipment[offer.Item]; ok && p.Equipment.Get(gear.Slot) == offer.Item {
		return offer, ErrAlreadyEquipped
	}

	switch offer.Item {
	case models.ItemHealthPotion:
		p.Inventory.HealthPotions++
	default:
		if _, err := Equip(p, offer.Item, r.Equipment); err != nil {
			return offer, err
		}
	}
	p.Coins -= offer.Price
	return offer, nil
}

// UsePotion drinks one potion and heals up to amount, never past maxHp.
// It returns the hp actually restored.
func UsePotion(p *models.Player, amount int) (int, error) {
	if p.Inventory.HealthPotions <= 0 {
		return 0, ErrEmptyInventory
	}
	p.Inventory.HealthPotions--
	return p.Heal(amount), nil
}
