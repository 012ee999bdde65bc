package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tatianab/step-quest/internal/models"
	"github.com/tatianab/step-quest/internal/rules"
)

// scripted returns queued values and fails loudly on an unexpected draw.
type scripted struct {
	values []int
	calls  int
}

func (s *scripted) Intn(n int) int {
	if s.calls >= len(s.values) {
		panic(fmt.Sprintf("scripted roller exhausted after %d draws (asked for Intn(%d))", s.calls, n))
	}
	v := s.values[s.calls]
	s.calls++
	if v < 0 || v >= n {
		panic(fmt.Sprintf("scripted value %d outside [0,%d) at draw %d", v, n, s.calls))
	}
	return v
}

func (s *scripted) push(values ...int) {
	s.values = append(s.values, values...)
}

func (s *scripted) drained() bool {
	return s.calls == len(s.values)
}

type message struct {
	text string
	mode MessageMode
}

type recorder struct {
	messages []message
	snapshot Snapshot
	renders  int
	controls map[Control]bool
}

func newRecorder() *recorder {
	return &recorder{controls: map[Control]bool{}}
}

func (r *recorder) ShowMessage(text string, mode MessageMode) {
	r.messages = append(r.messages, message{text, mode})
}

func (r *recorder) RenderStats(s Snapshot) {
	r.snapshot = s
	r.renders++
}

func (r *recorder) SetControlVisible(c Control, visible bool) {
	r.controls[c] = visible
}

func (r *recorder) last() string {
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1].text
}

func (r *recorder) saw(prefix string) bool {
	for _, m := range r.messages {
		if strings.HasPrefix(m.text, prefix) {
			return true
		}
	}
	return false
}

type memStore struct {
	rec   *models.PlayerRecord
	saves int
	err   error
}

func (m *memStore) Load(context.Context) (*models.PlayerRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.rec == nil {
		return nil, models.ErrNoSave
	}
	rec := *m.rec
	return &rec, nil
}

func (m *memStore) Save(_ context.Context, r models.PlayerRecord) error {
	if m.err != nil {
		return m.err
	}
	m.rec = &r
	m.saves++
	return nil
}

func (m *memStore) player(t *testing.T) models.Player {
	t.Helper()
	if m.rec == nil {
		t.Fatal("Expected a saved record")
	}
	return m.rec.Player(rules.Default().Player)
}

var errDisk = errors.New("disk full")

type harness struct {
	game  *Game
	rng   *scripted
	view  *recorder
	store *memStore
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{rng: &scripted{}, view: newRecorder(), store: &memStore{}}
	g, err := New(rules.Default(), h.rng, h.store, h.view, opts...)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	h.game = g
	return h
}

// fight puts the game into combat with a fixed monster, bypassing the step roll.
func (h *harness) fight(m models.Monster) {
	h.game.monster = m
	h.game.state = StateInCombat
}
