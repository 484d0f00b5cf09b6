// Package battle is the lane battle simulation: two bases, their units,
// projectiles and particles, advanced one tick at a time.
//
// A Match is not safe for concurrent use. Hosts serialize Tick, TrySpawn and
// Restart themselves and read state through Snapshot.
package battle

import (
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Field geometry in pixels.
const (
	FieldWidth  = 1200.0
	FieldHeight = 600.0
	SpawnOffset = 60.0

	unitLaneY = FieldHeight - 120
	baseHitY  = FieldHeight - 80
)

// Phase is the match lifecycle state.
type Phase int

const (
	Running Phase = iota
	Ended
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Ended:
		return "ended"
	}
	return "unknown"
}

// Random is the source for AI draws and particle spread.
type Random interface {
	Float64() float64
}

// Result describes a finished match from the player's point of view.
type Result struct {
	Winner   Side   `json:"winner" msgpack:"winner"`
	Headline string `json:"headline" msgpack:"headline"`
	Message  string `json:"message" msgpack:"message"`
}

func resultFor(winner Side) Result {
	if winner == Player {
		return Result{Winner: winner, Headline: "VICTORY!", Message: "You have conquered the enemy base!"}
	}
	return Result{Winner: winner, Headline: "DEFEAT!", Message: "Your base has been destroyed!"}
}

// Match is the root aggregate for one game.
type Match struct {
	player *Base
	enemy  *Base

	units       []*Unit
	index       map[string]*Unit
	projectiles []*Projectile
	particles   []*Particle

	phase    Phase
	winner   Side
	tick     uint64
	lastGold time.Time

	enemyAI  *AIPolicy
	playerAI *AIPolicy

	clock Clock
	rng   Random
	newID func() string

	// OnMatchEnded fires once, inside the attack that destroys a base.
	OnMatchEnded func(Result)
	// OnUnitKilled fires for every lethal hit.
	OnUnitKilled func(killer Side, victim UnitView)
}

// Option configures a Match.
type Option func(*Match)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(m *Match) { m.clock = c }
}

// WithRandom replaces the random source.
func WithRandom(r Random) Option {
	return func(m *Match) { m.rng = r }
}

// WithSeed uses a deterministic math/rand source.
func WithSeed(seed int64) Option {
	return func(m *Match) { m.rng = rand.New(rand.NewSource(seed)) } // #nosec G404 -- gameplay only
}

// WithEnemyAI turns the enemy spawn policy on or off. It is on by default.
func WithEnemyAI(enabled bool) Option {
	return func(m *Match) {
		if enabled {
			m.enemyAI = NewAIPolicy(Enemy)
		} else {
			m.enemyAI = nil
		}
	}
}

// WithAutopilot lets the enemy policy also drive the player side.
func WithAutopilot() Option {
	return func(m *Match) { m.playerAI = NewAIPolicy(Player) }
}

// WithIDs replaces the uuid generator for entity IDs.
func WithIDs(gen func() string) Option {
	return func(m *Match) { m.newID = gen }
}

// New creates a running match.
func New(opts ...Option) *Match {
	m := &Match{
		clock:   SystemClock{},
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- gameplay only
		newID:   uuid.NewString,
		enemyAI: NewAIPolicy(Enemy),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.reset()
	return m
}

func (m *Match) reset() {
	now := m.clock.Now()
	m.player = newBase(Player)
	m.enemy = newBase(Enemy)
	m.units = nil
	m.index = make(map[string]*Unit)
	m.projectiles = nil
	m.particles = nil
	m.phase = Running
	m.winner = ""
	m.tick = 0
	m.lastGold = now
	if m.enemyAI != nil {
		m.enemyAI.reset(now)
	}
	if m.playerAI != nil {
		m.playerAI.reset(now)
	}
}

// Restart discards the current game and starts a fresh one. Hooks are kept.
func (m *Match) Restart() {
	m.reset()
}

// Tick advances the simulation by one frame. Phase order is fixed:
// economy, AI spawns, units, projectiles, particles. It does nothing once the
// match has ended.
func (m *Match) Tick() {
	if m.phase != Running {
		return
	}
	now := m.clock.Now()
	m.tick++

	m.accrueGold(now)
	if m.enemyAI != nil {
		m.enemyAI.step(m, now)
	}
	if m.playerAI != nil {
		m.playerAI.step(m, now)
	}

	m.updateUnits(now)
	if m.phase != Running {
		return
	}
	m.updateProjectiles()
	m.updateParticles()
}

// updateUnits walks the live set last to first. Units updated later see the
// positions already moved by earlier ones.
func (m *Match) updateUnits(now time.Time) {
	for i := len(m.units) - 1; i >= 0 && m.phase == Running; i-- {
		u := m.units[i]
		if u.Alive() {
			m.tickUnit(u, now)
		}
		if !u.Alive() {
			delete(m.index, u.ID)
			m.units = slices.Delete(m.units, i, i+1)
		}
	}
	m.sweepDead()
}

// sweepDead drops every unit at or below zero hp, keeping slice order.
func (m *Match) sweepDead() {
	live := m.units[:0]
	for _, u := range m.units {
		if u.Alive() {
			live = append(live, u)
		} else {
			delete(m.index, u.ID)
		}
	}
	clear(m.units[len(live):])
	m.units = live
}

func (m *Match) endMatch(winner Side) {
	if m.phase == Ended {
		return
	}
	m.phase = Ended
	m.winner = winner
	if m.OnMatchEnded != nil {
		m.OnMatchEnded(resultFor(winner))
	}
}

func (m *Match) base(side Side) *Base {
	if side == Player {
		return m.player
	}
	return m.enemy
}

// Base returns a copy of side's base.
func (m *Match) Base(side Side) Base { return *m.base(side) }

// Phase reports the lifecycle state.
func (m *Match) Phase() Phase { return m.phase }

// Running reports whether ticks still advance the simulation.
func (m *Match) Running() bool { return m.phase == Running }

// Result returns the outcome once the match has ended.
func (m *Match) Result() (Result, bool) {
	if m.phase != Ended {
		return Result{}, false
	}
	return resultFor(m.winner), true
}

// Ticks is the number of ticks advanced since the last (re)start.
func (m *Match) Ticks() uint64 { return m.tick }

// UnitCount is the size of the live set.
func (m *Match) UnitCount() int { return len(m.units) }

// EnemyLastSpawn exposes the enemy policy timer, zero when the AI is off.
func (m *Match) EnemyLastSpawn() time.Time {
	if m.enemyAI == nil {
		return time.Time{}
	}
	return m.enemyAI.LastSpawn()
}
