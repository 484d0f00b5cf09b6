package render

import (
	"fmt"
	"image/color"
)

// Scene colors shared by every host that draws a match.
var (
	SkyTop      = MustHex("#87CEEB")
	SkyHorizon  = MustHex("#F0E68C")
	SkyBottom   = MustHex("#8B7355")
	Ground      = MustHex("#654321")
	PlayerBase  = MustHex("#2E8B57")
	PlayerRoof  = MustHex("#8B4513")
	EnemyBase   = MustHex("#8B0000")
	EnemyRoof   = MustHex("#4B0000")
	Projectile  = MustHex("#FFD700")
	BarTrack    = color.RGBA{0, 0, 0, 255}
	PlayerMark  = MustHex("#00FF00")
	EnemyMark   = MustHex("#FF0000")
	HUDText     = color.RGBA{255, 255, 255, 255}
	Overlay     = color.RGBA{0, 0, 0, 160}
	VictoryText = MustHex("#FFD700")
	DefeatText  = MustHex("#FF4444")
)

var (
	hpHigh = MustHex("#0F0")
	hpMid  = MustHex("#FF0")
	hpLow  = MustHex("#F00")
)

// ParseHex reads #RGB or #RRGGBB.
func ParseHex(s string) (color.RGBA, error) {
	c := color.RGBA{A: 255}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("bad length %d", len(s))
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return c, nil
}

// MustHex is ParseHex for constants.
func MustHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// HPColor is the health bar fill for the remaining fraction: green above
// half, yellow above a quarter, red below.
func HPColor(frac float64) color.RGBA {
	switch {
	case frac > 0.5:
		return hpHigh
	case frac > 0.25:
		return hpMid
	}
	return hpLow
}

// WithAlpha scales c's alpha by a in 0..1, returning a non-premultiplied color.
func WithAlpha(c color.RGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * a)}
}

// Mark is the team indicator color for side.
func Mark(player bool) color.RGBA {
	if player {
		return PlayerMark
	}
	return EnemyMark
}
