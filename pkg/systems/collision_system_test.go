package systems

import (
	"testing"

	"github.com/decker502/fruitcut/pkg/ecs"
	"github.com/decker502/fruitcut/pkg/input"
	"github.com/decker502/fruitcut/pkg/types"
)

func TestCollisionCutsEntityInRange(t *testing.T) {
	w := ecs.NewWorld()
	apple := newTestEntity(types.FruitApple, 100, 100, 40)
	w.Add(apple)

	events := NewCollisionSystem().Update(w, []input.Point{{X: 110, Y: 110}})

	if len(events) != 1 {
		t.Fatalf("events: got %d, want 1", len(events))
	}
	if events[0].ID != apple.ID || events[0].Kind != types.FruitApple {
		t.Errorf("event: got %+v", events[0])
	}
	if !apple.Cut.IsCut {
		t.Error("apple should be marked cut")
	}
}

func TestCollisionBoundaryIsExclusive(t *testing.T) {
	w := ecs.NewWorld()
	e := newTestEntity(types.FruitBanana, 0, 0, 30)
	w.Add(e)

	// 距离恰好等于半径不算命中
	events := NewCollisionSystem().Update(w, []input.Point{{X: 30, Y: 0}})
	if len(events) != 0 || e.Cut.IsCut {
		t.Error("point exactly on the radius should not cut")
	}
}

func TestCollisionNeverDoubleCuts(t *testing.T) {
	w := ecs.NewWorld()
	e := newTestEntity(types.FruitOrange, 50, 50, 35)
	w.Add(e)

	s := NewCollisionSystem()
	points := []input.Point{{X: 50, Y: 50}}

	if got := len(s.Update(w, points)); got != 1 {
		t.Fatalf("first pass events: got %d, want 1", got)
	}
	for i := 0; i < 5; i++ {
		if got := len(s.Update(w, points)); got != 0 {
			t.Fatalf("pass %d re-triggered cut: %d events", i+2, got)
		}
	}
}

// TestCollisionFirstPointWins 同一实体被多个点命中时只产生一个事件，记录第一个点
func TestCollisionFirstPointWins(t *testing.T) {
	w := ecs.NewWorld()
	e := newTestEntity(types.FruitWatermelon, 200, 200, 60)
	w.Add(e)

	points := []input.Point{{X: 500, Y: 500}, {X: 210, Y: 200}, {X: 200, Y: 200}}
	events := NewCollisionSystem().Update(w, points)

	if len(events) != 1 {
		t.Fatalf("events: got %d, want 1", len(events))
	}
	if events[0].Point != points[1] {
		t.Errorf("event point: got %v, want %v", events[0].Point, points[1])
	}
}

// TestCollisionOnePointCutsMany 一个点可以同时切中多个重叠实体，事件按 World 顺序
func TestCollisionOnePointCutsMany(t *testing.T) {
	w := ecs.NewWorld()
	a := newTestEntity(types.FruitApple, 100, 100, 40)
	b := newTestEntity(types.FruitBomb, 120, 100, 40)
	c := newTestEntity(types.FruitBanana, 400, 400, 30)
	w.Add(a)
	w.Add(b)
	w.Add(c)

	events := NewCollisionSystem().Update(w, []input.Point{{X: 110, Y: 100}})

	if len(events) != 2 {
		t.Fatalf("events: got %d, want 2", len(events))
	}
	if events[0].ID != a.ID || events[1].ID != b.ID {
		t.Errorf("event order: got %d,%d want %d,%d", events[0].ID, events[1].ID, a.ID, b.ID)
	}
	if c.Cut.IsCut {
		t.Error("distant entity should not be cut")
	}
}

func TestCollisionNoPoints(t *testing.T) {
	w := ecs.NewWorld()
	w.Add(newTestEntity(types.FruitApple, 0, 0, 40))

	if events := NewCollisionSystem().Update(w, nil); len(events) != 0 {
		t.Errorf("no points should produce no events, got %d", len(events))
	}
}

func TestCollisionSkipsEntitiesWithoutSize(t *testing.T) {
	w := ecs.NewWorld()
	e := newTestEntity(types.FruitApple, 0, 0, 40)
	e.Size = nil
	w.Add(e)

	if events := NewCollisionSystem().Update(w, []input.Point{{X: 0, Y: 0}}); len(events) != 0 {
		t.Error("entity without Size should not be cuttable")
	}
}
