package units

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind names a buyable unit archetype.
type Kind string

const (
	Clubman   Kind = "clubman"
	Swordsman Kind = "swordsman"
	Archer    Kind = "archer"
	Knight    Kind = "knight"
)

// ErrUnknownKind is returned for anything outside the fixed catalog.
var ErrUnknownKind = errors.New("unknown unit kind")

// Archetype is the read-only template a spawned unit copies its stats from.
type Archetype struct {
	Kind           Kind          `json:"kind"`
	Name           string        `json:"name"`
	Cost           int           `json:"cost"`
	HP             float64       `json:"hp"`
	Damage         float64       `json:"damage"`
	Speed          float64       `json:"speed"` // px per tick
	Range          float64       `json:"range"` // px
	AttackCooldown time.Duration `json:"-"`
	Ranged         bool          `json:"ranged"`
	XPReward       int           `json:"xp_reward"`

	// Visual only.
	Size  float64 `json:"size"`
	Color string  `json:"color"`
}

// MaxHP is the archetype's starting and maximum health.
func (a Archetype) MaxHP() float64 { return a.HP }

var order = []Kind{Clubman, Swordsman, Archer, Knight}

var catalog = map[Kind]Archetype{
	Clubman: {
		Kind: Clubman, Name: "Clubman", Cost: 50, HP: 50, Damage: 10,
		Speed: 1.5, Range: 30, AttackCooldown: 1000 * time.Millisecond,
		XPReward: 10, Size: 20, Color: "#8B4513",
	},
	Swordsman: {
		Kind: Swordsman, Name: "Swordsman", Cost: 100, HP: 80, Damage: 20,
		Speed: 1.8, Range: 35, AttackCooldown: 900 * time.Millisecond,
		XPReward: 20, Size: 22, Color: "#4169E1",
	},
	Archer: {
		Kind: Archer, Name: "Archer", Cost: 150, HP: 40, Damage: 15,
		Speed: 1.2, Range: 200, AttackCooldown: 1200 * time.Millisecond,
		Ranged: true, XPReward: 30, Size: 18, Color: "#228B22",
	},
	Knight: {
		Kind: Knight, Name: "Knight", Cost: 250, HP: 150, Damage: 35,
		Speed: 2, Range: 40, AttackCooldown: 800 * time.Millisecond,
		XPReward: 50, Size: 25, Color: "#FFD700",
	},
}

// Kinds returns every kind in catalog order.
func Kinds() []Kind {
	out := make([]Kind, len(order))
	copy(out, order)
	return out
}

// All returns every archetype in catalog order.
func All() []Archetype {
	out := make([]Archetype, 0, len(order))
	for _, k := range order {
		out = append(out, catalog[k])
	}
	return out
}

// Get looks up an archetype by kind.
func Get(kind Kind) (Archetype, error) {
	a, ok := catalog[kind]
	if !ok {
		return Archetype{}, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
	return a, nil
}

// MustGet is Get for callers holding a kind that is known to be valid.
// It panics otherwise.
func MustGet(kind Kind) Archetype {
	a, err := Get(kind)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseKind validates a kind coming from user input.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := catalog[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Valid reports whether k is in the catalog.
func (k Kind) Valid() bool {
	_, ok := catalog[k]
	return ok
}
