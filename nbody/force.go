package nbody

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"
)

// ForceCalculator populates every body's force accumulator from the current
// positions. Implementations must zero the accumulators first.
type ForceCalculator interface {
	Accumulate(bodies []*Body)
}

// PairwiseForce returns the gravitational force exerted on a by b: attractive,
// directed from a toward b. Distance is floored at MinDist so coincident
// bodies yield a finite result.
func (cfg Config) PairwiseForce(a, b *Body) r2.Vec {
	d := r2.Sub(b.Position, a.Position)
	dist := math.Max(cfg.MinDist, r2.Norm(d))
	magnitude := cfg.G * a.Mass * b.Mass / (dist * dist)
	return r2.Scale(magnitude/dist, d)
}

// DirectForceCalculator is the reference O(n²) pairwise accumulation.
type DirectForceCalculator struct {
	cfg Config
}

func NewDirectForceCalculator(cfg Config) *DirectForceCalculator {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &DirectForceCalculator{cfg: cfg}
}

func (c *DirectForceCalculator) Accumulate(bodies []*Body) {
	for _, b := range bodies {
		b.Force = r2.Vec{}
	}
	if c.cfg.Workers == 1 || len(bodies) < c.cfg.Workers*2 {
		c.accumulateSequential(bodies)
		return
	}
	c.accumulateParallel(bodies)
}

// accumulateSequential visits each unordered pair once and applies the force
// and its exact negation. Accumulation order per body matches the directed
// double loop, so the results are identical to the parallel path.
func (c *DirectForceCalculator) accumulateSequential(bodies []*Body) {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			f := c.cfg.PairwiseForce(bodies[i], bodies[j])
			bodies[i].Force = r2.Add(bodies[i].Force, f)
			bodies[j].Force = r2.Sub(bodies[j].Force, f)
		}
	}
}

// accumulateParallel partitions bodies by index range. Each worker is the
// sole writer of its bodies' accumulators and runs the full directed inner
// loop, keeping the result deterministic.
func (c *DirectForceCalculator) accumulateParallel(bodies []*Body) {
	n := len(bodies)
	workers := c.cfg.Workers
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				for j := 0; j < n; j++ {
					if i == j {
						continue
					}
					bodies[i].Force = r2.Add(bodies[i].Force, c.cfg.PairwiseForce(bodies[i], bodies[j]))
				}
			}
		}(start, end)
	}
	wg.Wait()
}
