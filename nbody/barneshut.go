package nbody

import (
	"math"

	"gonum.org/v1/gonum/spatial/barneshut"
	"gonum.org/v1/gonum/spatial/r2"
)

// BarnesHutForceCalculator approximates the pairwise accumulation with a
// quadtree at the configured opening angle theta. It trades bit-exactness
// against the direct calculator for O(n log n) force evaluation; symmetry and
// momentum conservation hold within tolerance.
type BarnesHutForceCalculator struct {
	cfg    Config
	direct *DirectForceCalculator
}

func NewBarnesHutForceCalculator(cfg Config) *BarnesHutForceCalculator {
	if cfg.BarnesHutTheta <= 0 {
		cfg.BarnesHutTheta = 0.5
	}
	return &BarnesHutForceCalculator{
		cfg:    cfg,
		direct: NewDirectForceCalculator(cfg),
	}
}

type bhParticle struct {
	body *Body
}

func (p bhParticle) Coord2() r2.Vec { return p.body.Position }
func (p bhParticle) Mass() float64  { return p.body.Mass }

func (c *BarnesHutForceCalculator) Accumulate(bodies []*Body) {
	particles := make([]barneshut.Particle2, len(bodies))
	for i, b := range bodies {
		particles[i] = bhParticle{body: b}
	}

	plane := barneshut.Plane{Particles: particles}
	if err := plane.Reset(); err != nil {
		// The particle bounds exceeded what the quadtree can represent;
		// fall back to the exact pairwise pass for this step.
		c.direct.Accumulate(bodies)
		return
	}

	// Same floored force law as the direct path, expressed as a gonum Force2.
	minDist := c.cfg.MinDist
	force := func(_, _ barneshut.Particle2, m1, m2 float64, v r2.Vec) r2.Vec {
		dist := math.Max(minDist, r2.Norm(v))
		return r2.Scale(m1*m2/(dist*dist*dist), v)
	}

	for i, b := range bodies {
		b.Force = r2.Scale(c.cfg.G, plane.ForceOn(particles[i], c.cfg.BarnesHutTheta, force))
	}
}
