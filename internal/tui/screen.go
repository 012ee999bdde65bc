package tui

import (
	"sync"

	"github.com/tatianab/step-quest/internal/game"
)

// Screen is the game.Presenter behind the TUI. Actions run inside tea.Cmd
// goroutines while View reads, hence the lock.
type Screen struct {
	mu       sync.Mutex
	lines    []string
	snapshot game.Snapshot
	controls map[game.Control]bool
}

func NewScreen() *Screen {
	return &Screen{controls: make(map[game.Control]bool)}
}

func (s *Screen) ShowMessage(text string, mode game.MessageMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode == game.Replace {
		s.lines = s.lines[:0]
	}
	s.lines = append(s.lines, text)
}

func (s *Screen) RenderStats(snap game.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snap
}

func (s *Screen) SetControlVisible(c game.Control, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controls[c] = visible
}

type frame struct {
	lines    []string
	snapshot game.Snapshot
	attack   bool
	shop     bool
}

func (s *Screen) frame() frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return frame{
		lines:    append([]string(nil), s.lines...),
		snapshot: s.snapshot,
		attack:   s.controls[game.ControlAttack],
		shop:     s.controls[game.ControlShop],
	}
}
