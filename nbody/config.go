package nbody

// Config holds the simulation-wide constants. It is supplied once at
// construction and never mutated afterwards.
type Config struct {
	// G is the gravitational constant in the caller's unit system.
	G float64
	// MinDist is the floor applied to inter-body distance before the force
	// law divides by it, so coincident bodies produce a finite force.
	MinDist float64
	// Workers sets the fan-out of force accumulation. 1 keeps everything on
	// the calling goroutine.
	Workers int
	// TrailThreshold is the displacement a body must cover before another
	// trail point is recorded.
	TrailThreshold float64
	// MaxTrailLength caps the trail; 0 disables trails.
	MaxTrailLength int
	// PredictionStride records every Nth step of a forward prediction.
	PredictionStride int
	// BarnesHutTheta is the opening angle used by the approximate force
	// calculator.
	BarnesHutTheta float64
}

func DefaultConfig() Config {
	return Config{
		G:                6.6743e-11,
		MinDist:          0.1,
		Workers:          1,
		TrailThreshold:   0.5,
		MaxTrailLength:   500,
		PredictionStride: 3,
		BarnesHutTheta:   0.5,
	}
}
