package game

import (
	"context"

	"github.com/tatianab/step-quest/internal/models"
)

// MessageMode selects whether a message replaces the log or is appended to it.
type MessageMode int

const (
	Replace MessageMode = iota
	Append
)

// Control names an action surface the presenter can show or hide.
type Control string

const (
	ControlAttack Control = "attack"
	ControlShop   Control = "shop"
)

// Snapshot is what the presenter needs to draw the stats panel.
type Snapshot struct {
	Player   models.Player
	State    CombatState
	Monster  *models.Monster
	ShopOpen bool
}

// Presenter receives everything the player should see. Calls are fire-and-forget.
type Presenter interface {
	ShowMessage(text string, mode MessageMode)
	RenderStats(s Snapshot)
	SetControlVisible(c Control, visible bool)
}

// Store persists a single player record under a fixed key.
// Load returns models.ErrNoSave when nothing has been saved yet.
type Store interface {
	Load(ctx context.Context) (*models.PlayerRecord, error)
	Save(ctx context.Context, r models.PlayerRecord) error
}

// Narrator produces an optional line of flavor text for a monster encounter.
type Narrator interface {
	Describe(ctx context.Context, playerName string, m models.Monster) (string, error)
}

// Roller is the randomness source. Intn returns a value in [0, n) for n > 0.
type Roller interface {
	Intn(n int) int
}
