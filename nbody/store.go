package nbody

import (
	"errors"
	"fmt"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrInvalidBodyState is returned when a create or edit would leave a
	// body with a non-positive mass.
	ErrInvalidBodyState = errors.New("invalid body state")
	// ErrUnknownBody is returned when a handle does not name a live body.
	ErrUnknownBody = errors.New("unknown body")
)

// StateEdit is a partial overwrite of a body's editable state. Nil fields are
// left unchanged.
type StateEdit struct {
	Mass *float64
	Vx   *float64
	Vy   *float64
}

// Store owns the ordered collection of bodies. All reads copy out, so callers
// never hold references into live state.
type Store struct {
	mu     sync.RWMutex
	bodies []*Body
	nextID int
}

func NewStore() *Store {
	return &Store{}
}

// Create adds a body and returns its handle. Mass must be positive.
func (s *Store) Create(x, y, mass, vx, vy float64) (int, error) {
	return s.CreateNamed("", x, y, mass, vx, vy)
}

func (s *Store) CreateNamed(name string, x, y, mass, vx, vy float64) (int, error) {
	if mass <= 0 {
		return 0, fmt.Errorf("%w: mass %v is not positive", ErrInvalidBodyState, mass)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	if name == "" {
		name = fmt.Sprintf("Body %d", id)
	}
	s.bodies = append(s.bodies, NewBody(id, name, mass, r2.Vec{X: x, Y: y}, r2.Vec{X: vx, Y: vy}))
	return id, nil
}

// SetState overwrites the editable fields of a body directly, bypassing
// integration. A rejected edit leaves the prior state intact.
func (s *Store) SetState(id int, edit StateEdit) error {
	if edit.Mass != nil && *edit.Mass <= 0 {
		return fmt.Errorf("%w: mass %v is not positive", ErrInvalidBodyState, *edit.Mass)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.lookup(id)
	if b == nil {
		return fmt.Errorf("%w: %d", ErrUnknownBody, id)
	}
	if edit.Mass != nil {
		b.Mass = *edit.Mass
	}
	if edit.Vx != nil {
		b.Velocity.X = *edit.Vx
	}
	if edit.Vy != nil {
		b.Velocity.Y = *edit.Vy
	}
	return nil
}

// SetFixed freezes or unfreezes a body for integration purposes.
func (s *Store) SetFixed(id int, fixed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.lookup(id)
	if b == nil {
		return fmt.Errorf("%w: %d", ErrUnknownBody, id)
	}
	b.Fixed = fixed
	return nil
}

func (s *Store) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.bodies {
		if b.ID == id {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrUnknownBody, id)
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodies = nil
}

// Body returns a copy of the body with the given handle.
func (s *Store) Body(id int) (*Body, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := s.lookup(id)
	if b == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBody, id)
	}
	return b.Snapshot(), nil
}

// Bodies returns copies of all bodies in insertion order.
func (s *Store) Bodies() []*Body {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Body, len(s.bodies))
	for i, b := range s.bodies {
		out[i] = b.Snapshot()
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bodies)
}

// lookup must be called with the mutex held.
func (s *Store) lookup(id int) *Body {
	for _, b := range s.bodies {
		if b.ID == id {
			return b
		}
	}
	return nil
}
