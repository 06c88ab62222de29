package systems

import (
	"testing"

	"github.com/decker502/fruitcut/pkg/components"
	"github.com/decker502/fruitcut/pkg/ecs"
	"github.com/decker502/fruitcut/pkg/types"
)

// TestMovementIntegratesBeforeGravity 位置先用本 tick 的速度积分，然后才叠加重力
func TestMovementIntegratesBeforeGravity(t *testing.T) {
	w := ecs.NewWorld()
	e := newTestEntity(types.FruitApple, 100, 500, 40)
	e.Velocity.VX = 2
	e.Velocity.VY = -10
	e.Gravity.Force = 0.5
	w.Add(e)

	s := NewMovementSystem(0.2)

	x, y, vy := 100.0, 500.0, -10.0
	for tick := 0; tick < 30; tick++ {
		s.Update(w)

		x += 2
		y += vy
		vy += 0.5

		if e.Position.X != x || e.Position.Y != y {
			t.Fatalf("tick %d position: got (%v,%v), want (%v,%v)", tick, e.Position.X, e.Position.Y, x, y)
		}
		if e.Velocity.VY != vy {
			t.Fatalf("tick %d vy: got %v, want %v", tick, e.Velocity.VY, vy)
		}
	}
}

func TestMovementDefaultGravity(t *testing.T) {
	w := ecs.NewWorld()
	e := &ecs.Entity{
		Position: &components.PositionComponent{X: 0, Y: 0},
		Velocity: &components.VelocityComponent{VX: 0, VY: -1},
	}
	w.Add(e)

	NewMovementSystem(0.25).Update(w)

	if e.Position.Y != -1 {
		t.Errorf("Y: got %v, want -1", e.Position.Y)
	}
	if e.Velocity.VY != -0.75 {
		t.Errorf("VY: got %v, want -0.75 (default gravity applied)", e.Velocity.VY)
	}
}

func TestMovementSkipsEntitiesWithoutVelocity(t *testing.T) {
	w := ecs.NewWorld()
	e := &ecs.Entity{Position: &components.PositionComponent{X: 5, Y: 5}}
	w.Add(e)

	NewMovementSystem(0.2).Update(w)

	if e.Position.X != 5 || e.Position.Y != 5 {
		t.Errorf("entity without velocity should not move, got (%v,%v)", e.Position.X, e.Position.Y)
	}
}

func TestMovementCutEntitiesKeepFalling(t *testing.T) {
	w := ecs.NewWorld()
	e := newTestEntity(types.FruitOrange, 0, 0, 30)
	e.Cut.IsCut = true
	e.Velocity.VY = 1
	e.Gravity.Force = 0.5
	w.Add(e)

	NewMovementSystem(0.2).Update(w)

	if e.Position.Y != 1 || e.Velocity.VY != 1.5 {
		t.Errorf("cut entity kinematics: y=%v vy=%v, want y=1 vy=1.5", e.Position.Y, e.Velocity.VY)
	}
}
