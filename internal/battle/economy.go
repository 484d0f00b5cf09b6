package battle

import (
	"time"

	"lanewars/internal/units"
)

const (
	goldInterval       = time.Second
	enemySpawnInterval = 3 * time.Second
	killRewardRatio    = 0.5
)

// KindWeight is one bucket of the weighted spawn draw.
type KindWeight struct {
	Kind   units.Kind
	Weight float64
}

// DefaultWeights is the AI's buying preference, cheapest first.
var DefaultWeights = []KindWeight{
	{units.Clubman, 0.4},
	{units.Swordsman, 0.3},
	{units.Archer, 0.2},
	{units.Knight, 0.1},
}

// WeightedKind maps a uniform draw r in [0,1) onto weights by subtracting each
// bucket in order until r falls inside one. If rounding leaves r past every
// bucket the last kind is chosen.
func WeightedKind(weights []KindWeight, r float64) units.Kind {
	for _, w := range weights {
		if r < w.Weight {
			return w.Kind
		}
		r -= w.Weight
	}
	return weights[len(weights)-1].Kind
}

// AIPolicy buys units for a computer-controlled side. Every interval it draws
// a kind and tries to buy it. The timer only restarts on a successful buy, so
// a side short on gold retries on every following tick.
type AIPolicy struct {
	side     Side
	interval time.Duration
	weights  []KindWeight
	last     time.Time
}

// NewAIPolicy returns the default policy for side.
func NewAIPolicy(side Side) *AIPolicy {
	return &AIPolicy{
		side:     side,
		interval: enemySpawnInterval,
		weights:  DefaultWeights,
	}
}

// LastSpawn is the time of the last successful buy, or of the last reset.
func (p *AIPolicy) LastSpawn() time.Time { return p.last }

func (p *AIPolicy) reset(now time.Time) { p.last = now }

func (p *AIPolicy) step(m *Match, now time.Time) {
	if now.Sub(p.last) < p.interval {
		return
	}
	kind := WeightedKind(p.weights, m.rng.Float64())
	if m.TrySpawn(p.side, kind) {
		p.last = now
	}
}

func (m *Match) accrueGold(now time.Time) {
	if now.Sub(m.lastGold) < goldInterval {
		return
	}
	m.player.Gold += m.player.GoldPerSecond
	m.enemy.Gold += m.enemy.GoldPerSecond
	m.lastGold = now
}

// TrySpawn buys a unit of kind for side. It fails without touching state when
// the match is over or the side cannot afford it. An invalid kind panics.
func (m *Match) TrySpawn(side Side, kind units.Kind) bool {
	a := units.MustGet(kind)
	if m.phase != Running {
		return false
	}
	b := m.base(side)
	if !b.CanAfford(a.Cost) {
		return false
	}
	b.Gold -= float64(a.Cost)

	u := newUnit(m.newID(), a, side, b.X+SpawnOffset*side.Direction())
	m.units = append(m.units, u)
	m.index[u.ID] = u
	return true
}
