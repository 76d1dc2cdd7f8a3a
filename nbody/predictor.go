package nbody

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Predict runs a speculative copy of the simulation forward and returns the
// sampled future positions per body handle. The live bodies' position,
// velocity and mass are untouched; only each body's Prediction slice is
// replaced. Fixed bodies stay frozen in the prediction, matching their live
// state at snapshot time.
//
// Every PredictionStride-th step is recorded, so steps=N yields at most
// ceil(N/stride) points per body. This costs O(steps·n²); callers should
// throttle how often they invoke it.
func (s *System) Predict(steps int, dt float64) map[int][]r2.Vec {
	s.mu.Lock()
	defer s.mu.Unlock()

	stride := s.cfg.PredictionStride
	if stride < 1 {
		stride = 1
	}

	working := make([]*Body, len(s.bodies))
	for i, b := range s.bodies {
		w := *b
		w.Trail = nil
		w.Prediction = nil
		working[i] = &w
	}

	paths := make(map[int][]r2.Vec, len(s.bodies))
	for _, b := range s.bodies {
		b.Prediction = nil
		paths[b.ID] = nil
	}

	for step := 0; step < steps; step++ {
		s.forces.Accumulate(working)
		for _, w := range working {
			if w.Fixed {
				continue
			}
			s.integrator.Integrate(w, dt)
		}
		if step%stride == 0 {
			for i, w := range working {
				s.bodies[i].Prediction = append(s.bodies[i].Prediction, w.Position)
			}
		}
	}

	for _, b := range s.bodies {
		paths[b.ID] = append([]r2.Vec(nil), b.Prediction...)
	}
	return paths
}
