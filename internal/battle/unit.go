package battle

import (
	"math"
	"time"

	"lanewars/internal/units"
)

// Unit is one spawned combatant. Stats are copied from the archetype so the
// catalog is never mutated through an instance.
type Unit struct {
	ID    string
	Kind  units.Kind
	Name  string
	Side  Side
	X     float64
	Y     float64
	HP    float64
	MaxHP float64

	Cost           int
	Damage         float64
	Speed          float64
	Range          float64
	AttackCooldown time.Duration
	Ranged         bool
	XPReward       int
	Size           float64
	Color          string

	// TargetID is re-resolved every tick and only kept for inspection.
	TargetID   string
	lastAttack time.Time
}

func newUnit(id string, a units.Archetype, side Side, x float64) *Unit {
	return &Unit{
		ID:             id,
		Kind:           a.Kind,
		Name:           a.Name,
		Side:           side,
		X:              x,
		Y:              unitLaneY,
		HP:             a.MaxHP(),
		MaxHP:          a.MaxHP(),
		Cost:           a.Cost,
		Damage:         a.Damage,
		Speed:          a.Speed,
		Range:          a.Range,
		AttackCooldown: a.AttackCooldown,
		Ranged:         a.Ranged,
		XPReward:       a.XPReward,
		Size:           a.Size,
		Color:          a.Color,
	}
}

// Alive reports whether the unit still has health.
func (u *Unit) Alive() bool { return u.HP > 0 }

func (u *Unit) takeDamage(amount float64) {
	u.HP -= amount
	if u.HP < 0 {
		u.HP = 0
	}
}

// ready reports whether the cooldown since the last attack has elapsed.
func (u *Unit) ready(now time.Time) bool {
	return u.lastAttack.IsZero() || now.Sub(u.lastAttack) >= u.AttackCooldown
}

func (u *Unit) advance() {
	u.X += u.Speed * u.Side.Direction()
}

// findTarget scans the live set for the nearest opposing unit by horizontal
// distance. Ties go to the first one in slice order.
func (m *Match) findTarget(u *Unit) *Unit {
	var target *Unit
	minDist := math.Inf(1)
	for _, other := range m.units {
		if other.Side == u.Side || !other.Alive() {
			continue
		}
		dist := math.Abs(other.X - u.X)
		if dist < minDist {
			minDist = dist
			target = other
		}
	}
	return target
}

func (m *Match) tickUnit(u *Unit, now time.Time) {
	target := m.findTarget(u)
	if target != nil {
		u.TargetID = target.ID
		if math.Abs(target.X-u.X) <= u.Range {
			if u.ready(now) {
				m.attack(u, target)
				u.lastAttack = now
			}
		} else {
			u.advance()
		}
		return
	}

	u.TargetID = ""
	u.advance()

	base := m.base(u.Side.Opponent())
	if math.Abs(u.X-base.X) <= u.Range && u.ready(now) {
		u.lastAttack = now
		m.attackBase(u, base)
	}
}

func (m *Match) attack(u, target *Unit) {
	if target == nil || !target.Alive() {
		return
	}
	if u.Ranged {
		m.launchProjectile(u, target)
		return
	}
	target.takeDamage(u.Damage)
	m.burst(target.X, target.Y, hitColor)
	if !target.Alive() {
		m.onKill(u.Side, target)
	}
}

func (m *Match) attackBase(u *Unit, base *Base) {
	fell := base.takeDamage(u.Damage)
	m.burst(base.X, baseHitY, baseHitColor)
	if fell {
		m.endMatch(u.Side)
	}
}

// onKill credits the killer's side. Only the player side earns gold and xp
// from kills; the enemy economy grows from passive income alone.
func (m *Match) onKill(killer Side, victim *Unit) {
	m.base(killer).Kills++
	if killer == Player {
		m.player.Gold += math.Floor(float64(victim.Cost) * killRewardRatio)
		m.player.XP += victim.XPReward
	}
	if m.OnUnitKilled != nil {
		m.OnUnitKilled(killer, victim.view())
	}
}
