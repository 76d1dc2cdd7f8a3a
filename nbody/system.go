package nbody

import (
	"context"
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

const maxEnergyHistory = 1000

// BodyState is the per-body payload handed to observers.
type BodyState struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Mass     float64 `json:"mass"`
	Position r2.Vec  `json:"position"`
	Velocity r2.Vec  `json:"velocity"`
	Fixed    bool    `json:"fixed"`
}

// Frame is a value snapshot of the system after one step.
type Frame struct {
	Step            int         `json:"step"`
	Time            float64     `json:"time"`
	KineticEnergy   float64     `json:"kineticEnergy"`
	PotentialEnergy float64     `json:"potentialEnergy"`
	TotalEnergy     float64     `json:"totalEnergy"`
	Bodies          []BodyState `json:"bodies"`
}

// Observer receives a frame after every completed step. Callbacks run on the
// stepping goroutine and receive copies, never live state.
type Observer interface {
	OnStep(Frame)
}

// System drives the simulation: it owns the store, the force calculator and
// the integrator, and advances everything one tick at a time.
type System struct {
	*Store

	cfg        Config
	forces     ForceCalculator
	integrator Integrator

	currentTime   float64
	totalSteps    int
	energyHistory []float64
	observers     []Observer
}

func NewSystem(cfg Config) *System {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &System{
		Store:      NewStore(),
		cfg:        cfg,
		forces:     NewDirectForceCalculator(cfg),
		integrator: SymplecticEuler{},
	}
}

func (s *System) Config() Config { return s.cfg }

func (s *System) SetForceCalculator(fc ForceCalculator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forces = fc
}

func (s *System) SetIntegrator(in Integrator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.integrator = in
}

func (s *System) AddObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *System) RemoveObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, obs := range s.observers {
		if obs == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			break
		}
	}
}

// Step advances the simulation by one tick: accumulate forces, integrate
// every non-fixed body, record trails, then notify observers.
func (s *System) Step(dt float64) {
	s.mu.Lock()

	s.forces.Accumulate(s.bodies)
	for _, b := range s.bodies {
		if b.Fixed {
			continue
		}
		s.integrator.Integrate(b, dt)
		b.updateTrail(s.cfg.TrailThreshold, s.cfg.MaxTrailLength)
	}

	s.currentTime += dt
	s.totalSteps++

	frame := s.frameLocked()
	s.energyHistory = append(s.energyHistory, frame.TotalEnergy)
	if len(s.energyHistory) > maxEnergyHistory {
		s.energyHistory = s.energyHistory[1:]
	}

	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	for _, o := range observers {
		o.OnStep(frame)
	}
}

// Run advances the simulation by the given number of steps, honoring
// cancellation between ticks.
func (s *System) Run(ctx context.Context, steps int, dt float64) error {
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			s.Step(dt)
		}
	}
	return nil
}

// RunContinuous steps the simulation on a wall-clock interval until the
// context is cancelled.
func (s *System) RunContinuous(ctx context.Context, interval time.Duration, dt float64) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Step(dt)
		}
	}
}

func (s *System) CurrentTime() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentTime
}

func (s *System) TotalSteps() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalSteps
}

func (s *System) EnergyHistory() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]float64(nil), s.energyHistory...)
}

// Reset rewinds the clock and clears trails and accumulators, keeping the
// bodies themselves.
func (s *System) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentTime = 0
	s.totalSteps = 0
	s.energyHistory = s.energyHistory[:0]
	for _, b := range s.bodies {
		b.Trail = b.Trail[:0]
		b.Prediction = nil
		b.Force = r2.Vec{}
	}
}

// Statistics summarizes the current state of the system.
type Statistics struct {
	KineticEnergy   float64
	PotentialEnergy float64
	TotalEnergy     float64
	CenterOfMass    r2.Vec
	TotalMomentum   r2.Vec
	MaxSpeed        float64
	MinDistance     float64
	MaxDistance     float64
	MeanDistance    float64
}

func (s *System) Statistics() Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.bodies) == 0 {
		return Statistics{}
	}

	var stats Statistics
	totalMass := 0.0
	for _, b := range s.bodies {
		totalMass += b.Mass
		stats.KineticEnergy += b.KineticEnergy()
		stats.CenterOfMass = r2.Add(stats.CenterOfMass, r2.Scale(b.Mass, b.Position))
		stats.TotalMomentum = r2.Add(stats.TotalMomentum, b.Momentum())
		if speed := b.Speed(); speed > stats.MaxSpeed {
			stats.MaxSpeed = speed
		}
	}
	if totalMass > 0 {
		stats.CenterOfMass = r2.Scale(1/totalMass, stats.CenterOfMass)
	}

	minDist := math.Inf(1)
	maxDist := 0.0
	totalDist := 0.0
	pairs := 0
	for i := 0; i < len(s.bodies); i++ {
		for j := i + 1; j < len(s.bodies); j++ {
			dist := r2.Norm(r2.Sub(s.bodies[j].Position, s.bodies[i].Position))
			if dist < minDist {
				minDist = dist
			}
			if dist > maxDist {
				maxDist = dist
			}
			totalDist += dist
			pairs++
		}
	}
	if pairs > 0 {
		stats.MinDistance = minDist
		stats.MaxDistance = maxDist
		stats.MeanDistance = totalDist / float64(pairs)
	}

	stats.PotentialEnergy = s.potentialEnergyLocked()
	stats.TotalEnergy = stats.KineticEnergy + stats.PotentialEnergy
	return stats
}

// frameLocked must be called with the mutex held.
func (s *System) frameLocked() Frame {
	frame := Frame{
		Step:   s.totalSteps,
		Time:   s.currentTime,
		Bodies: make([]BodyState, len(s.bodies)),
	}
	for i, b := range s.bodies {
		frame.Bodies[i] = BodyState{
			ID:       b.ID,
			Name:     b.Name,
			Mass:     b.Mass,
			Position: b.Position,
			Velocity: b.Velocity,
			Fixed:    b.Fixed,
		}
		frame.KineticEnergy += b.KineticEnergy()
	}
	frame.PotentialEnergy = s.potentialEnergyLocked()
	frame.TotalEnergy = frame.KineticEnergy + frame.PotentialEnergy
	return frame
}

// potentialEnergyLocked must be called with the mutex held. The distance
// floor keeps the sum finite for coincident bodies.
func (s *System) potentialEnergyLocked() float64 {
	pe := 0.0
	for i := 0; i < len(s.bodies); i++ {
		for j := i + 1; j < len(s.bodies); j++ {
			dist := math.Max(s.cfg.MinDist, r2.Norm(r2.Sub(s.bodies[j].Position, s.bodies[i].Position)))
			pe -= s.cfg.G * s.bodies[i].Mass * s.bodies[j].Mass / dist
		}
	}
	return pe
}
