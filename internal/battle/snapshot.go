package battle

import "lanewars/internal/units"

// BaseView is the read-only state of a base.
type BaseView struct {
	Gold  float64 `json:"gold" msgpack:"gold"`
	HP    float64 `json:"hp" msgpack:"hp"`
	MaxHP float64 `json:"max_hp" msgpack:"max_hp"`
	XP    int     `json:"xp" msgpack:"xp"`
	Age   int     `json:"age" msgpack:"age"`
	X     float64 `json:"x" msgpack:"x"`
	Kills int     `json:"kills" msgpack:"kills"`
}

// UnitView is the read-only state of a unit.
type UnitView struct {
	ID    string     `json:"id" msgpack:"id"`
	Kind  units.Kind `json:"kind" msgpack:"kind"`
	Name  string     `json:"name" msgpack:"name"`
	Side  Side       `json:"side" msgpack:"side"`
	X     float64    `json:"x" msgpack:"x"`
	Y     float64    `json:"y" msgpack:"y"`
	HP    float64    `json:"hp" msgpack:"hp"`
	MaxHP float64    `json:"max_hp" msgpack:"max_hp"`
	Size  float64    `json:"size" msgpack:"size"`
	Color string     `json:"color" msgpack:"color"`
}

type ProjectileView struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

type ParticleView struct {
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	Life  float64 `json:"life" msgpack:"life"` // remaining fraction
	Color string  `json:"color" msgpack:"color"`
}

// Snapshot is a deep copy of match state for presentation layers. It shares
// nothing with the Match and may be read from any goroutine.
type Snapshot struct {
	Tick        uint64              `json:"tick" msgpack:"tick"`
	Running     bool                `json:"running" msgpack:"running"`
	Winner      Side                `json:"winner,omitempty" msgpack:"winner,omitempty"`
	Player      BaseView            `json:"player" msgpack:"player"`
	Enemy       BaseView            `json:"enemy" msgpack:"enemy"`
	Units       []UnitView          `json:"units" msgpack:"units"`
	Projectiles []ProjectileView    `json:"projectiles" msgpack:"projectiles"`
	Particles   []ParticleView      `json:"particles" msgpack:"particles"`
	Affordances map[units.Kind]bool `json:"affordances" msgpack:"affordances"`
}

func (b *Base) view() BaseView {
	return BaseView{
		Gold:  b.Gold,
		HP:    b.HP,
		MaxHP: b.MaxHP,
		XP:    b.XP,
		Age:   b.Age,
		X:     b.X,
		Kills: b.Kills,
	}
}

func (u *Unit) view() UnitView {
	return UnitView{
		ID:    u.ID,
		Kind:  u.Kind,
		Name:  u.Name,
		Side:  u.Side,
		X:     u.X,
		Y:     u.Y,
		HP:    u.HP,
		MaxHP: u.MaxHP,
		Size:  u.Size,
		Color: u.Color,
	}
}

// Snapshot copies the current state.
func (m *Match) Snapshot() Snapshot {
	s := Snapshot{
		Tick:        m.tick,
		Running:     m.phase == Running,
		Winner:      m.winner,
		Player:      m.player.view(),
		Enemy:       m.enemy.view(),
		Units:       make([]UnitView, 0, len(m.units)),
		Projectiles: make([]ProjectileView, 0, len(m.projectiles)),
		Particles:   make([]ParticleView, 0, len(m.particles)),
		Affordances: make(map[units.Kind]bool, 4),
	}
	for _, u := range m.units {
		s.Units = append(s.Units, u.view())
	}
	for _, p := range m.projectiles {
		s.Projectiles = append(s.Projectiles, ProjectileView{X: p.X, Y: p.Y})
	}
	for _, p := range m.particles {
		s.Particles = append(s.Particles, ParticleView{X: p.X, Y: p.Y, Life: p.LifeFraction(), Color: p.Color})
	}
	for _, a := range units.All() {
		s.Affordances[a.Kind] = s.Running && m.player.CanAfford(a.Cost)
	}
	return s
}

// Result reports the outcome carried by an ended snapshot.
func (s Snapshot) Result() (Result, bool) {
	if s.Running || s.Winner == "" {
		return Result{}, false
	}
	return resultFor(s.Winner), true
}
