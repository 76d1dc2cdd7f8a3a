package nbody

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Integrator advances one body by dt from its accumulated force. Fixed-body
// filtering happens in the step driver, not here.
type Integrator interface {
	Integrate(b *Body, dt float64)
}

// SymplecticEuler updates velocity first, then position from the new
// velocity. This is the reference integration scheme.
type SymplecticEuler struct{}

func (SymplecticEuler) Integrate(b *Body, dt float64) {
	acc := r2.Scale(1/b.Mass, b.Force)
	b.Velocity = r2.Add(b.Velocity, r2.Scale(dt, acc))
	b.Position = r2.Add(b.Position, r2.Scale(dt, b.Velocity))
}

// VelocityVerlet is a second-order alternative. It shares the symplectic
// Euler's conservation behavior over long runs.
type VelocityVerlet struct{}

func (VelocityVerlet) Integrate(b *Body, dt float64) {
	acc := r2.Scale(1/b.Mass, b.Force)
	b.Position = r2.Add(b.Position, r2.Add(r2.Scale(dt, b.Velocity), r2.Scale(0.5*dt*dt, acc)))
	b.Velocity = r2.Add(b.Velocity, r2.Scale(dt, acc))
}
