package game

import (
	"github.com/tatianab/step-quest/internal/models"
	"github.com/tatianab/step-quest/internal/rules"
)

// CombatState tracks where the current fight is.
type CombatState int

const (
	StateIdle CombatState = iota
	StateInCombat
	StateVictory
	StateDefeated
)

func (s CombatState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateInCombat:
		return "In combat"
	case StateVictory:
		return "Victory"
	case StateDefeated:
		return "Defeated"
	default:
		return "Unknown"
	}
}

// SpawnMonster rolls a monster from the template. Rolls are drawn in the order
// hp, attack, defense.
func SpawnMonster(rng Roller, tmpl rules.Monster) models.Monster {
	return models.Monster{
		Name:    tmpl.Name,
		HP:      roll(rng, tmpl.HP),
		Attack:  roll(rng, tmpl.Attack),
		Defense: roll(rng, tmpl.Defense),
	}
}

// Exchange is the result of one player action in combat.
type Exchange struct {
	PlayerDamage  int
	MonsterDamage int
	// Retaliated is false when the player's hit ended the fight.
	Retaliated bool
	Outcome    CombatState
}

// Damage is attack plus bonus minus defense, never below zero.
func Damage(attack, bonus, defense int) int {
	return max(attack+bonus-defense, 0)
}

// ResolveExchange performs one full exchange: the player hits, then the
// monster hits back once if it survived. Hp on both sides is floored at zero.
// A defeated player is left at zero hp; reviving is up to the caller.
func ResolveExchange(p *models.Player, m *models.Monster, rng Roller, c rules.Combat) Exchange {
	var ex Exchange

	ex.PlayerDamage = Damage(p.Attack, roll(rng, c.PlayerBonus), m.Defense)
	m.HP = max(m.HP-ex.PlayerDamage, 0)
	if !m.Alive() {
		ex.Outcome = StateVictory
		return ex
	}

	ex.Retaliated = true
	ex.MonsterDamage = Damage(m.Attack, roll(rng, c.MonsterBonus), p.Defense)
	p.TakeDamage(ex.MonsterDamage)
	if p.Defeated() {
		ex.Outcome = StateDefeated
		return ex
	}

	ex.Outcome = StateInCombat
	return ex
}
