package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/tatianab/step-quest/internal/models"
)

func openTempDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "saves", "stepquest.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), "  "); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTempDB(t).Store("player")

	want := models.Player{
		Name:      "Ayla",
		HP:        12,
		MaxHP:     100,
		Attack:    15,
		Defense:   3,
		Coins:     0,
		Inventory: models.Inventory{HealthPotions: 3},
		Equipment: models.Equipment{Weapon: models.ItemSword},
	}
	if err := store.Save(ctx, models.NewRecord(want)); err != nil {
		t.Fatalf("save: %v", err)
	}
	rec, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := rec.Player(models.Player{Name: "Player", MaxHP: 100, Coins: 50}); got != want {
		t.Fatalf("player = %+v, want %+v", got, want)
	}
}

func TestStoreOverwrites(t *testing.T) {
	ctx := context.Background()
	store := openTempDB(t).Store("player")

	for _, coins := range []int{10, 20} {
		p := models.Player{Name: "Bo", HP: 100, MaxHP: 100, Coins: coins}
		if err := store.Save(ctx, models.NewRecord(p)); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	rec, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.Coins == nil || *rec.Coins != 20 {
		t.Fatalf("coins = %v, want 20", rec.Coins)
	}
}

func TestStoreMissing(t *testing.T) {
	store := openTempDB(t).Store("nobody")
	if _, err := store.Load(context.Background()); !errors.Is(err, models.ErrNoSave) {
		t.Fatalf("expected ErrNoSave, got %v", err)
	}
}

func TestKeysAndReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "stepquest.db")
	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, key := range []string{"b", "a"} {
		if err := db.Store(key).Save(ctx, models.NewRecord(models.Player{Name: key, MaxHP: 1})); err != nil {
			t.Fatalf("save %s: %v", key, err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Migrations must be idempotent across reopen.
	db, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer db.Close()
	keys, err := db.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("keys = %v, want [a b]", keys)
	}
}

func TestExtractUp(t *testing.T) {
	got := extractUp("-- +migrate Up\nCREATE TABLE x (a INT);\n-- +migrate Down\nDROP TABLE x;\n")
	if got != "\nCREATE TABLE x (a INT);\n" {
		t.Fatalf("extractUp = %q", got)
	}
	if got := extractUp("SELECT 1;"); got != "SELECT 1;" {
		t.Fatalf("extractUp without markers = %q", got)
	}
}

func TestNilStore(t *testing.T) {
	var s *Store
	if err := s.Save(context.Background(), models.PlayerRecord{}); err == nil {
		t.Fatal("expected unconfigured storage error")
	}
	var d *DB
	if err := d.Close(); err != nil {
		t.Fatalf("close nil db: %v", err)
	}
}
