package battle

// Side identifies which base a unit fights for.
type Side string

const (
	Player Side = "player"
	Enemy  Side = "enemy"
)

// Direction is the sign of forward movement along the lane.
func (s Side) Direction() float64 {
	if s == Player {
		return 1
	}
	return -1
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Player {
		return Enemy
	}
	return Player
}

// Starting values applied to both bases on match start and restart.
const (
	StartingGold   = 500.0
	StartingHP     = 100.0
	StartingAge    = 1
	GoldPerSecond  = 2.0
	baseEdgeOffset = 50.0
)

// Base is one side's economy and structure.
type Base struct {
	Side          Side
	Gold          float64
	HP            float64
	MaxHP         float64
	XP            int // player only
	Age           int // reserved for progression
	GoldPerSecond float64
	X             float64
	Kills         int
}

func newBase(side Side) *Base {
	x := baseEdgeOffset
	if side == Enemy {
		x = FieldWidth - baseEdgeOffset
	}
	return &Base{
		Side:          side,
		Gold:          StartingGold,
		HP:            StartingHP,
		MaxHP:         StartingHP,
		Age:           StartingAge,
		GoldPerSecond: GoldPerSecond,
		X:             x,
	}
}

// takeDamage lowers hp, clamped at zero, and reports whether the base fell.
func (b *Base) takeDamage(amount float64) bool {
	b.HP -= amount
	if b.HP < 0 {
		b.HP = 0
	}
	return b.HP <= 0
}

// CanAfford reports whether the base holds at least cost gold.
func (b *Base) CanAfford(cost int) bool {
	return b.Gold >= float64(cost)
}
