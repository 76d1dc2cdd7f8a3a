package nbody

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestNewBody(t *testing.T) {
	position := r2.Vec{X: 1, Y: 2}
	velocity := r2.Vec{X: 3, Y: 4}

	body := NewBody(7, "Probe", 10.0, position, velocity)

	if body.ID != 7 {
		t.Errorf("Expected ID 7, got %d", body.ID)
	}
	if body.Name != "Probe" {
		t.Errorf("Expected name Probe, got %s", body.Name)
	}
	if body.Mass != 10.0 {
		t.Errorf("Expected mass 10, got %f", body.Mass)
	}
	if body.Position != position {
		t.Errorf("Expected position %v, got %v", position, body.Position)
	}
	if body.Velocity != velocity {
		t.Errorf("Expected velocity %v, got %v", velocity, body.Velocity)
	}
	if body.Fixed {
		t.Error("Expected body to not be fixed by default")
	}
	if body.Force != (r2.Vec{}) {
		t.Errorf("Expected zero force accumulator, got %v", body.Force)
	}
}

func TestBodySnapshot(t *testing.T) {
	original := NewBody(1, "A", 10.0, r2.Vec{X: 1, Y: 2}, r2.Vec{X: 3, Y: 4})
	original.Trail = append(original.Trail, r2.Vec{})

	snapshot := original.Snapshot()

	if snapshot.ID != original.ID {
		t.Error("Snapshot should keep the ID")
	}
	if len(snapshot.Trail) != len(original.Trail) {
		t.Error("Snapshot should copy the trail")
	}

	snapshot.Position.X = 999
	snapshot.Trail[0].X = 999
	if original.Position.X == 999 {
		t.Error("Modifying the snapshot should not affect the original position")
	}
	if original.Trail[0].X == 999 {
		t.Error("Modifying the snapshot should not affect the original trail")
	}
}

func TestBodyKineticEnergy(t *testing.T) {
	body := NewBody(1, "", 2.0, r2.Vec{}, r2.Vec{X: 3, Y: 4})

	expected := 0.5 * 2.0 * 25.0
	if math.Abs(body.KineticEnergy()-expected) > 1e-12 {
		t.Errorf("Expected kinetic energy %f, got %f", expected, body.KineticEnergy())
	}
}

func TestBodyMomentum(t *testing.T) {
	body := NewBody(1, "", 2.0, r2.Vec{}, r2.Vec{X: 3, Y: -4})

	expected := r2.Vec{X: 6, Y: -8}
	if body.Momentum() != expected {
		t.Errorf("Expected momentum %v, got %v", expected, body.Momentum())
	}
}

func TestBodyTrailThreshold(t *testing.T) {
	body := NewBody(1, "", 1.0, r2.Vec{}, r2.Vec{})

	body.updateTrail(0.5, 10)
	if len(body.Trail) != 1 {
		t.Fatalf("Expected first point to be recorded, got %d points", len(body.Trail))
	}

	body.Position = r2.Vec{X: 0.2, Y: 0.2}
	body.updateTrail(0.5, 10)
	if len(body.Trail) != 1 {
		t.Errorf("Expected small displacement to be skipped, got %d points", len(body.Trail))
	}

	body.Position = r2.Vec{X: 1, Y: 0}
	body.updateTrail(0.5, 10)
	if len(body.Trail) != 2 {
		t.Errorf("Expected displacement past threshold to be recorded, got %d points", len(body.Trail))
	}
}

func TestBodyTrailCap(t *testing.T) {
	body := NewBody(1, "", 1.0, r2.Vec{}, r2.Vec{})

	for i := 0; i < 10; i++ {
		body.Position = r2.Vec{X: float64(i * 2)}
		body.updateTrail(0.5, 3)
	}

	if len(body.Trail) != 3 {
		t.Fatalf("Expected trail capped at 3, got %d", len(body.Trail))
	}
	if body.Trail[2] != (r2.Vec{X: 18}) {
		t.Errorf("Expected newest point kept, got %v", body.Trail[2])
	}
	if body.Trail[0] != (r2.Vec{X: 14}) {
		t.Errorf("Expected oldest points dropped, got %v", body.Trail[0])
	}
}
