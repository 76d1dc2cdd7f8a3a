package nbody

import (
	"math"
	"math/rand"
)

// SolarSystem builds an inner solar system in SI units: a fixed sun with
// Venus, Earth and Mars on circular starting orbits.
func SolarSystem(cfg Config) *System {
	s := NewSystem(cfg)

	sun, _ := s.CreateNamed("Sun", 0, 0, 1.989e30, 0, 0)
	s.SetFixed(sun, true)

	s.CreateNamed("Venus", 1.082e11, 0, 4.867e24, 0, 35020)
	s.CreateNamed("Earth", 1.496e11, 0, 5.972e24, 0, 29780)
	s.CreateNamed("Mars", 2.279e11, 0, 6.39e23, 0, 24070)

	return s
}

// BinaryPair builds two equal masses orbiting their common center.
func BinaryPair(cfg Config) *System {
	s := NewSystem(cfg)

	mass := 1e30
	separation := 1e11
	orbitalVelocity := 30000.0

	s.CreateNamed("Primary", -separation/2, 0, mass, 0, -orbitalVelocity/2)
	s.CreateNamed("Secondary", separation/2, 0, mass, 0, orbitalVelocity/2)

	return s
}

// EquilateralTriple places three equal masses at rest on the vertices of an
// equilateral triangle centered on the origin.
func EquilateralTriple(cfg Config, mass, sideLength float64) *System {
	s := NewSystem(cfg)

	circumradius := sideLength / math.Sqrt(3)
	for i := 0; i < 3; i++ {
		angle := 2 * math.Pi * float64(i) / 3
		s.Create(circumradius*math.Cos(angle), circumradius*math.Sin(angle), mass, 0, 0)
	}

	return s
}

// RandomSystem scatters n bodies uniformly over a square of the given extent
// with small random velocities. The same seed reproduces the same system.
func RandomSystem(cfg Config, n int, extent float64, seed int64) *System {
	s := NewSystem(cfg)
	rng := rand.New(rand.NewSource(seed))

	for i := 0; i < n; i++ {
		mass := rng.Float64()*1e24 + 1e20
		x := (rng.Float64() - 0.5) * extent
		y := (rng.Float64() - 0.5) * extent
		vx := (rng.Float64() - 0.5) * 1000
		vy := (rng.Float64() - 0.5) * 1000
		s.Create(x, y, mass, vx, vy)
	}

	return s
}
