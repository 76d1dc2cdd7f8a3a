package nbody

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Body is one point mass in the simulation. Position and velocity are in
// caller-defined units; the only requirement is that G, masses and distances
// share a consistent scale.
type Body struct {
	ID       int
	Name     string
	Mass     float64
	Position r2.Vec
	Velocity r2.Vec
	Force    r2.Vec

	// Fixed freezes the body: integration skips it entirely while other
	// bodies still feel its gravity.
	Fixed bool

	Trail      []r2.Vec
	Prediction []r2.Vec
}

func NewBody(id int, name string, mass float64, position, velocity r2.Vec) *Body {
	return &Body{
		ID:       id,
		Name:     name,
		Mass:     mass,
		Position: position,
		Velocity: velocity,
	}
}

// Snapshot returns an independent copy of the body. Trail and prediction
// slices are copied, not shared.
func (b *Body) Snapshot() *Body {
	c := *b
	c.Trail = append([]r2.Vec(nil), b.Trail...)
	c.Prediction = append([]r2.Vec(nil), b.Prediction...)
	return &c
}

func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * r2.Norm2(b.Velocity)
}

func (b *Body) Speed() float64 {
	return r2.Norm(b.Velocity)
}

func (b *Body) Momentum() r2.Vec {
	return r2.Scale(b.Mass, b.Velocity)
}

// updateTrail records the current position once the body has moved more than
// threshold along either axis since the last recorded point, dropping the
// oldest entries beyond maxLen.
func (b *Body) updateTrail(threshold float64, maxLen int) {
	if maxLen <= 0 {
		return
	}
	if n := len(b.Trail); n > 0 {
		last := b.Trail[n-1]
		if math.Abs(last.X-b.Position.X) <= threshold && math.Abs(last.Y-b.Position.Y) <= threshold {
			return
		}
	}
	b.Trail = append(b.Trail, b.Position)
	if len(b.Trail) > maxLen {
		b.Trail = b.Trail[1:]
	}
}
