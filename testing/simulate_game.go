package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tatianab/step-quest/internal/config"
	"github.com/tatianab/step-quest/internal/game"
	"github.com/tatianab/step-quest/internal/models"
	"github.com/tatianab/step-quest/internal/narrator"
	"github.com/tatianab/step-quest/internal/random"
	"github.com/tatianab/step-quest/internal/rules"
)

const maxSteps = 50

// printer writes every message to stdout as it arrives.
type printer struct {
	attack bool
	shop   bool
}

func (p *printer) ShowMessage(text string, mode game.MessageMode) {
	if mode == game.Replace {
		fmt.Println()
	}
	fmt.Printf("  %s\n", text)
}

func (p *printer) RenderStats(game.Snapshot) {}

func (p *printer) SetControlVisible(c game.Control, visible bool) {
	switch c {
	case game.ControlAttack:
		p.attack = visible
	case game.ControlShop:
		p.shop = visible
	}
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	r, err := rules.Load(cfg.RulesPath)
	if err != nil {
		log.Fatalf("Failed to load rules: %v", err)
	}
	rng, seed, err := random.NewSource(cfg.Seed)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}
	fmt.Printf("Seed: %d\n", seed)

	dir, err := os.MkdirTemp("", "stepquest-sim")
	if err != nil {
		log.Fatalf("Failed to create save dir: %v", err)
	}
	defer os.RemoveAll(dir)

	var opts []game.Option
	if cfg.NarrationEnabled() {
		n, err := narrator.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to create narrator: %v", err)
		}
		defer n.Close()
		opts = append(opts, game.WithNarrator(n))
	}

	view := &printer{}
	g, err := game.New(r, rng, models.NewFileStore(dir, "sim"), view, opts...)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}
	if err := g.Begin(ctx, "Simulant"); err != nil {
		log.Fatalf("Failed to begin: %v", err)
	}

	for step := 1; step <= maxSteps; step++ {
		fmt.Printf("--- Step %d ---\n", step)
		if err := g.TakeStep(ctx); err != nil {
			log.Fatalf("Step failed: %v", err)
		}

		if view.shop {
			shop(ctx, g, r)
		}

		for view.attack {
			p := g.Player()
			if p.HP < 30 && p.Inventory.HealthPotions > 0 {
				if err := g.UsePotion(ctx); err != nil {
					log.Fatalf("Potion failed: %v", err)
				}
				continue
			}
			if err := g.Attack(ctx); err != nil {
				log.Fatalf("Attack failed: %v", err)
			}
		}

		p := g.Player()
		fmt.Printf("Stats: HP=%d/%d Attack=%d Defense=%d Coins=%d Potions=%d Weapon=%q Armor=%q\n\n",
			p.HP, p.MaxHP, p.Attack, p.Defense, p.Coins, p.Inventory.HealthPotions, p.Equipment.Weapon, p.Equipment.Armor)
	}
}

// shop buys gear first, then potions with what is left.
func shop(ctx context.Context, g *game.Game, r *rules.Rules) {
	for _, item := range []rules.ShopItem{rules.ShopWeapon, rules.ShopArmor, rules.ShopPotion} {
		offer, ok := r.Shop[item]
		if !ok || g.Player().Coins < offer.Price {
			continue
		}
		if gear, ok := r.Equipment[offer.Item]; ok && g.Player().Equipment.Get(gear.Slot) == offer.Item {
			continue
		}
		if err := g.Buy(ctx, item); err != nil {
			log.Fatalf("Purchase failed: %v", err)
		}
	}
}
