// Package game resolves steps, combat, loot and shop purchases for one player
// and keeps the presenter and the save store in sync with the result.
package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/tatianab/step-quest/internal/models"
	"github.com/tatianab/step-quest/internal/rules"
)

const narrateTimeout = 10 * time.Second

// Game owns the player state and drives every user action. It is not safe for
// concurrent use; the caller runs one action at a time.
type Game struct {
	rules    *rules.Rules
	rng      Roller
	store    Store
	view     Presenter
	narrator Narrator
	selector *Selector

	player   models.Player
	state    CombatState
	monster  models.Monster
	shopOpen bool
}

type Option func(*Game)

// WithNarrator adds flavor text to monster encounters.
func WithNarrator(n Narrator) Option {
	return func(g *Game) {
		g.narrator = n
	}
}

// New returns a game with the default player. Call Resume or Begin before
// taking actions.
func New(r *rules.Rules, rng Roller, store Store, view Presenter, opts ...Option) (*Game, error) {
	if r == nil || rng == nil || store == nil || view == nil {
		return nil, fmt.Errorf("rules, roller, store and presenter are required")
	}
	selector, err := NewSelector(r.Events, rng)
	if err != nil {
		return nil, err
	}
	g := &Game{
		rules:    r,
		rng:      rng,
		store:    store,
		view:     view,
		selector: selector,
		player:   r.NewPlayer(""),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Resume loads the saved player. It reports false when there is nothing
// usable to resume, in which case the caller should Begin a new game.
func (g *Game) Resume(ctx context.Context) (bool, error) {
	rec, err := g.store.Load(ctx)
	switch {
	case errors.Is(err, models.ErrNoSave):
		return false, nil
	case errors.Is(err, models.ErrMalformedRecord):
		log.Printf("ignoring unreadable save: %v", err)
		return false, nil
	case err != nil:
		return false, fmt.Errorf("load player: %w", err)
	}
	g.restore(*rec)
	g.view.ShowMessage(fmt.Sprintf("Welcome back, %s.", g.player.Name), Replace)
	g.refresh()
	return true, nil
}

// Begin starts a fresh player and saves it immediately.
func (g *Game) Begin(ctx context.Context, name string) error {
	g.player = g.rules.NewPlayer(name)
	g.endCombat()
	g.closeShop()
	g.view.ShowMessage(fmt.Sprintf("Welcome, %s. Take a step to begin your adventure.", g.player.Name), Replace)
	return g.commit(ctx)
}

// Player returns a copy of the current player.
func (g *Game) Player() models.Player {
	return g.player
}

// State returns the combat state.
func (g *Game) State() CombatState {
	return g.state
}

// Snapshot returns the data the presenter renders.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{Player: g.player, State: g.state, ShopOpen: g.shopOpen}
	if g.state == StateInCombat {
		m := g.monster
		s.Monster = &m
	}
	return s
}

// TakeStep draws a random event and resolves it.
func (g *Game) TakeStep(ctx context.Context) error {
	if g.state == StateInCombat {
		g.view.ShowMessage(fmt.Sprintf("The %s blocks your way!", g.monster.Name), Append)
		return nil
	}
	g.closeShop()

	kind := g.selector.Select()
	switch kind {
	case EventMonster:
		g.view.ShowMessage("You encounter a monster!", Replace)
		g.startCombat(ctx)
		g.refresh()
		return nil
	case EventTreasure:
		amount := roll(g.rng, g.rules.TreasureCoins)
		g.player.Coins += amount
		g.view.ShowMessage(fmt.Sprintf("You found treasure! You received %d coins.", amount), Append)
		return g.commit(ctx)
	case EventShop:
		g.shopOpen = true
		g.view.SetControlVisible(ControlShop, true)
		g.view.ShowMessage("You come across a travelling merchant.", Replace)
		g.refresh()
		return nil
	case EventNothing:
		g.view.ShowMessage("Nothing happens this time.", Replace)
		return g.commit(ctx)
	default:
		return fmt.Errorf("unhandled event %v", kind)
	}
}

func (g *Game) startCombat(ctx context.Context) {
	g.monster = SpawnMonster(g.rng, g.rules.Monster)
	g.state = StateInCombat
	g.view.ShowMessage(fmt.Sprintf("A wild %s appears with %d HP!", g.monster.Name, g.monster.HP), Append)
	if g.narrator != nil {
		nctx, cancel := context.WithTimeout(ctx, narrateTimeout)
		defer cancel()
		line, err := g.narrator.Describe(nctx, g.player.Name, g.monster)
		if err != nil {
			log.Printf("narrate encounter: %v", err)
		} else if line != "" {
			g.view.ShowMessage(line, Append)
		}
	}
	g.view.SetControlVisible(ControlAttack, true)
}

func (g *Game) endCombat() {
	g.state = StateIdle
	g.monster = models.Monster{}
	g.view.SetControlVisible(ControlAttack, false)
}

func (g *Game) closeShop() {
	if g.shopOpen {
		g.shopOpen = false
		g.view.SetControlVisible(ControlShop, false)
	}
}

// Attack resolves one exchange with the current monster.
func (g *Game) Attack(ctx context.Context) error {
	if g.state != StateInCombat {
		g.view.ShowMessage("There is nothing to attack.", Append)
		return nil
	}

	name := g.monster.Name
	ex := ResolveExchange(&g.player, &g.monster, g.rng, g.rules.Combat)
	g.view.ShowMessage(fmt.Sprintf("You hit the %s for %d damage. It has %d HP left.", name, ex.PlayerDamage, g.monster.HP), Append)
	if ex.Retaliated {
		g.view.ShowMessage(fmt.Sprintf("The %s hits you for %d damage. You have %d HP left.", name, ex.MonsterDamage, g.player.HP), Append)
	}

	switch ex.Outcome {
	case StateVictory:
		g.view.ShowMessage(fmt.Sprintf("You defeated the %s!", name), Append)
		g.endCombat()
		g.dropLoot()
	case StateDefeated:
		g.player.Revive()
		g.view.ShowMessage("You were defeated but your health has been fully restored!", Append)
		g.endCombat()
	}
	return g.commit(ctx)
}

func (g *Game) dropLoot() {
	drop := RollLoot(g.rng, g.rules.Loot)
	switch drop.Item {
	case models.ItemCoins:
		g.player.Coins += drop.Amount
		g.view.ShowMessage(fmt.Sprintf("You looted %d coins!", drop.Amount), Append)
	case models.ItemHealthPotion:
		g.player.Inventory.HealthPotions += drop.Amount
		g.view.ShowMessage("You looted a health potion!", Append)
	default:
		_, err := Equip(&g.player, drop.Item, g.rules.Equipment)
		switch {
		case errors.Is(err, ErrAlreadyEquipped):
			g.view.ShowMessage(fmt.Sprintf("You looted a %s, but you already have one equipped.", drop.Item), Append)
		case err != nil:
			log.Printf("equip loot: %v", err)
		default:
			g.view.ShowMessage(fmt.Sprintf("You looted a %s!", drop.Item), Append)
		}
	}
}

// UsePotion drinks a health potion.
func (g *Game) UsePotion(ctx context.Context) error {
	restored, err := UsePotion(&g.player, g.rules.PotionHeal)
	if errors.Is(err, ErrEmptyInventory) {
		g.view.ShowMessage("You don't have any health potions!", Append)
		return nil
	}
	g.view.ShowMessage(fmt.Sprintf("You used a health potion and restored %d HP!", restored), Append)
	return g.commit(ctx)
}

// Buy purchases an item from the shop.
func (g *Game) Buy(ctx context.Context, what rules.ShopItem) error {
	offer, err := Buy(&g.player, what, g.rules)
	switch {
	case errors.Is(err, ErrUnknownItem):
		g.view.ShowMessage(fmt.Sprintf("Nobody sells a %s around here.", what), Append)
		return nil
	case errors.Is(err, ErrInsufficientFunds):
		g.view.ShowMessage(fmt.Sprintf("You don't have enough coins to buy a %s.", what), Append)
		return nil
	case errors.Is(err, ErrAlreadyEquipped):
		g.view.ShowMessage(fmt.Sprintf("You already have a %s equipped.", offer.Item), Append)
		return nil
	case err != nil:
		return err
	}
	g.view.ShowMessage(fmt.Sprintf("You bought a %s for %d coins.", displayItem(offer.Item), offer.Price), Append)
	return g.commit(ctx)
}

// Save writes the player to the store.
func (g *Game) Save(ctx context.Context) error {
	if err := g.commit(ctx); err != nil {
		return err
	}
	g.view.ShowMessage("Game saved.", Append)
	return nil
}

// Load replaces the player with the saved one. Any fight in progress is dropped.
func (g *Game) Load(ctx context.Context) error {
	rec, err := g.store.Load(ctx)
	if errors.Is(err, models.ErrNoSave) {
		g.view.ShowMessage("There is no saved game.", Append)
		return nil
	}
	if err != nil {
		log.Printf("load player: %v", err)
		return fmt.Errorf("load player: %w", err)
	}
	g.restore(*rec)
	g.view.ShowMessage("Game loaded.", Replace)
	g.refresh()
	return nil
}

func (g *Game) restore(rec models.PlayerRecord) {
	g.player = rec.Player(g.rules.Player)
	g.endCombat()
	g.closeShop()
}

func (g *Game) refresh() {
	g.view.RenderStats(g.Snapshot())
}

// commit enforces the stat invariants, redraws and saves. In-memory state is
// kept when the save fails.
func (g *Game) commit(ctx context.Context) error {
	g.player.Clamp()
	g.refresh()
	if err := g.store.Save(ctx, models.NewRecord(g.player)); err != nil {
		log.Printf("save player: %v", err)
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}

func displayItem(item models.Item) string {
	if item == models.ItemHealthPotion {
		return "health potion"
	}
	return string(item)
}
