package battle

import (
	"math"
	"slices"
)

const (
	projectileSpeed   = 5.0
	projectileYOffset = 5.0
)

// Projectile carries a ranged unit's damage to its target. It homes on the
// target's current position for as long as the target is in the live set and
// keeps flying to the last known point after that.
type Projectile struct {
	ID        string
	X, Y      float64
	AimX      float64
	AimY      float64
	Damage    float64
	Speed     float64
	OwnerID   string
	OwnerSide Side
	TargetID  string
}

func (m *Match) launchProjectile(owner, target *Unit) {
	m.projectiles = append(m.projectiles, &Projectile{
		ID:        m.newID(),
		X:         owner.X,
		Y:         owner.Y + projectileYOffset,
		AimX:      target.X,
		AimY:      target.Y + projectileYOffset,
		Damage:    owner.Damage,
		Speed:     projectileSpeed,
		OwnerID:   owner.ID,
		OwnerSide: owner.Side,
		TargetID:  target.ID,
	})
}

func (m *Match) updateProjectiles() {
	for i := len(m.projectiles) - 1; i >= 0; i-- {
		p := m.projectiles[i]

		target := m.index[p.TargetID]
		if target != nil {
			p.AimX = target.X
			p.AimY = target.Y + projectileYOffset
		}

		dx := p.AimX - p.X
		dy := p.AimY - p.Y
		dist := math.Hypot(dx, dy)

		if dist < p.Speed {
			if target != nil && target.Alive() {
				target.takeDamage(p.Damage)
				m.burst(target.X, target.Y, hitColor)
				if !target.Alive() {
					m.onKill(p.OwnerSide, target)
				}
			}
			m.projectiles = slices.Delete(m.projectiles, i, i+1)
			continue
		}

		p.X += dx / dist * p.Speed
		p.Y += dy / dist * p.Speed
	}
	m.sweepDead()
}
