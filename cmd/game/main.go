package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatianab/step-quest/internal/config"
	"github.com/tatianab/step-quest/internal/game"
	"github.com/tatianab/step-quest/internal/models"
	"github.com/tatianab/step-quest/internal/narrator"
	"github.com/tatianab/step-quest/internal/random"
	"github.com/tatianab/step-quest/internal/rules"
	"github.com/tatianab/step-quest/internal/storage/sqlite"
	"github.com/tatianab/step-quest/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logFile, err := tea.LogToFile(cfg.LogFile, "stepquest")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	r, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return err
	}

	rng, seed, err := random.NewSource(cfg.Seed)
	if err != nil {
		return err
	}
	log.Printf("session seed %d", seed)

	var (
		store game.Store
		slots tui.SlotLister
	)
	switch cfg.SaveBackend {
	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return err
		}
		defer db.Close()
		store = db.Store(cfg.SaveKey)
		slots = db.Keys
	default:
		store = models.NewFileStore(cfg.SaveDir, cfg.SaveKey)
		slots = func(context.Context) ([]string, error) {
			return models.ListSaves(cfg.SaveDir)
		}
	}
	log.Printf("saving to %s backend, slot %q", cfg.SaveBackend, cfg.SaveKey)

	var opts []game.Option
	if cfg.NarrationEnabled() {
		n, err := narrator.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return fmt.Errorf("creating narrator: %w", err)
		}
		defer n.Close()
		opts = append(opts, game.WithNarrator(n))
	}

	screen := tui.NewScreen()
	g, err := game.New(r, rng, store, screen, opts...)
	if err != nil {
		return err
	}
	resumed, err := g.Resume(ctx)
	if err != nil {
		return err
	}

	return tui.Run(g, r, screen, slots, resumed)
}
