package game

import (
	"fmt"

	"github.com/tatianab/step-quest/internal/rules"
)

// EventKind is the outcome of a single step.
type EventKind int

const (
	EventMonster EventKind = iota
	EventTreasure
	EventShop
	EventNothing
)

func (k EventKind) String() string {
	switch k {
	case EventMonster:
		return rules.EventMonster
	case EventTreasure:
		return rules.EventTreasure
	case EventShop:
		return rules.EventShop
	case EventNothing:
		return rules.EventNothing
	default:
		return "unknown"
	}
}

// ParseEvent maps a rules event name onto its kind.
func ParseEvent(name string) (EventKind, error) {
	switch name {
	case rules.EventMonster:
		return EventMonster, nil
	case rules.EventTreasure:
		return EventTreasure, nil
	case rules.EventShop:
		return EventShop, nil
	case rules.EventNothing:
		return EventNothing, nil
	}
	return 0, fmt.Errorf("event %q: %w", name, rules.ErrUnknownName)
}

// Selector picks uniformly among the active event kinds. It keeps no state
// between calls.
type Selector struct {
	kinds []EventKind
	rng   Roller
}

// NewSelector builds a selector over the named events, in order.
func NewSelector(names []string, rng Roller) (*Selector, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("events: %w", rules.ErrEmpty)
	}
	kinds := make([]EventKind, 0, len(names))
	for _, name := range names {
		k, err := ParseEvent(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return &Selector{kinds: kinds, rng: rng}, nil
}

// Select draws the next event.
func (s *Selector) Select() EventKind {
	return s.kinds[s.rng.Intn(len(s.kinds))]
}

func roll(rng Roller, r rules.Range) int {
	return r.Min + rng.Intn(r.Span())
}
