package brawler

import "math/rand"

// Particle is a cosmetic entity: velocity, gravity and a lifetime.
type Particle struct {
	Body
	Life    int
	MaxLife int
	Gravity float64
	Color   string
	FadeOut bool
}

// Update integrates one tick and ages the particle.
func (p *Particle) Update() {
	p.VY += p.Gravity
	p.X += p.VX
	p.Y += p.VY
	p.Life--
	if p.Life <= 0 {
		p.Dead = true
	}
}

// Alpha returns the remaining life fraction, for fading renderers.
func (p *Particle) Alpha() float64 {
	if !p.FadeOut || p.MaxLife <= 0 {
		return 1
	}
	return float64(p.Life) / float64(p.MaxLife)
}

// SpawnParticleBurst creates n particles at (x, y) flying up and outward.
func SpawnParticleBurst(rng *rand.Rand, x, y float64, color string, n int) []Particle {
	if n <= 0 {
		n = 8
	}
	out := make([]Particle, n)
	for i := range out {
		size := float64(2 + rng.Intn(4))
		life := 20 + rng.Intn(20)
		out[i] = Particle{
			Body: Body{
				X: x, Y: y, W: size, H: size,
				VX: (rng.Float64() - 0.5) * 8,
				VY: -(rng.Float64()*5 + 1),
			},
			Life:    life,
			MaxLife: life,
			Gravity: 0.15,
			Color:   color,
			FadeOut: true,
		}
	}
	return out
}
