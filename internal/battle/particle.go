package battle

const (
	particlesPerBurst = 8
	particleLife      = 30 // ticks
	particleSpread    = 4.0

	hitColor     = "#FF6B6B"
	baseHitColor = "#FF0000"
)

// Particle is a cosmetic spark whose lifetime is counted in ticks.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   int
	Color  string
}

// LifeFraction is the remaining life in 0..1, used as render alpha.
func (p *Particle) LifeFraction() float64 {
	return float64(p.Life) / particleLife
}

func (m *Match) burst(x, y float64, color string) {
	for i := 0; i < particlesPerBurst; i++ {
		m.particles = append(m.particles, &Particle{
			X:     x,
			Y:     y,
			VX:    (m.rng.Float64() - 0.5) * particleSpread,
			VY:    (m.rng.Float64() - 0.5) * particleSpread,
			Life:  particleLife,
			Color: color,
		})
	}
}

func (m *Match) updateParticles() {
	live := m.particles[:0]
	for _, p := range m.particles {
		p.X += p.VX
		p.Y += p.VY
		p.Life--
		if p.Life > 0 {
			live = append(live, p)
		}
	}
	clear(m.particles[len(live):])
	m.particles = live
}
