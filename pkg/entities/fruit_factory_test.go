package entities

import (
	"math/rand"
	"testing"

	"github.com/decker502/fruitcut/pkg/config"
	"github.com/decker502/fruitcut/pkg/ecs"
	"github.com/decker502/fruitcut/pkg/types"
)

func newTestFactory(seed int64) (*FruitFactory, *config.GameConfig, *ecs.World) {
	cfg := config.DefaultGameConfig()
	world := ecs.NewWorld()
	return NewFruitFactory(cfg, world, rand.New(rand.NewSource(seed))), cfg, world
}

func TestCreateHasAllComponents(t *testing.T) {
	f, _, _ := newTestFactory(1)

	for i := 0; i < 50; i++ {
		e := f.Create(CreateOptions{})
		if e.Mask() != ecs.AllComponents {
			t.Fatalf("entity %d mask: got %b, want %b", i, e.Mask(), ecs.AllComponents)
		}
		if e.Cut.IsCut {
			t.Fatalf("entity %d should not be cut on creation", i)
		}
		if e.ID == 0 {
			t.Fatalf("entity %d has zero ID", i)
		}
	}
}

func TestCreateUniqueIDs(t *testing.T) {
	f, _, _ := newTestFactory(2)

	seen := make(map[ecs.EntityID]bool)
	for i := 0; i < 200; i++ {
		e := f.Create(CreateOptions{})
		if seen[e.ID] {
			t.Fatalf("duplicate ID %d", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestCreateLaunchRanges(t *testing.T) {
	f, cfg, _ := newTestFactory(3)

	minX := cfg.Canvas.Width * 0.15
	maxX := cfg.Canvas.Width * 0.85
	wantY := cfg.Canvas.Height + 60

	for i := 0; i < 500; i++ {
		e := f.Create(CreateOptions{})
		if e.Position.X < minX || e.Position.X > maxX {
			t.Fatalf("X out of middle 70%%: %v not in [%v, %v]", e.Position.X, minX, maxX)
		}
		if e.Position.Y != wantY {
			t.Fatalf("Y: got %v, want %v", e.Position.Y, wantY)
		}
		if e.Velocity.VY < -22 || e.Velocity.VY > -14 {
			t.Fatalf("VY out of range: %v", e.Velocity.VY)
		}
		if e.Velocity.VX < -3 || e.Velocity.VX > 3 {
			t.Fatalf("VX out of range: %v", e.Velocity.VX)
		}
	}
}

func TestCreateSpeedMultiplier(t *testing.T) {
	const mult = 1.6
	f, _, _ := newTestFactory(4)

	for i := 0; i < 200; i++ {
		e := f.Create(CreateOptions{SpeedMultiplier: mult})
		if e.Velocity.VY < -22*mult || e.Velocity.VY > -14*mult {
			t.Fatalf("VY with multiplier out of range: %v", e.Velocity.VY)
		}
		if e.Velocity.VX < -3*mult || e.Velocity.VX > 3*mult {
			t.Fatalf("VX with multiplier out of range: %v", e.Velocity.VX)
		}
	}
}

func TestCreateForceKindUsesTable(t *testing.T) {
	f, cfg, _ := newTestFactory(5)

	for _, kind := range types.AllKinds {
		kc := cfg.Kind(kind)
		for i := 0; i < 50; i++ {
			e := f.Create(CreateOptions{ForceKind: kind})
			if e.Kind.Value != kind {
				t.Fatalf("kind: got %v, want %v", e.Kind.Value, kind)
			}
			if e.Gravity.Force != kc.Gravity {
				t.Errorf("%s gravity: got %v, want %v", kind, e.Gravity.Force, kc.Gravity)
			}
			if e.Size.Radius < kc.MinRadius || e.Size.Radius > kc.MaxRadius {
				t.Errorf("%s radius %v not in [%v, %v]", kind, e.Size.Radius, kc.MinRadius, kc.MaxRadius)
			}
		}
	}
}

func TestCreateCandidates(t *testing.T) {
	f, _, _ := newTestFactory(6)

	counts := make(map[types.FruitKind]int)
	for i := 0; i < 400; i++ {
		e := f.Create(CreateOptions{Candidates: types.SafeKinds})
		if e.Kind.Value.IsBomb() {
			t.Fatal("bomb created although candidates exclude it")
		}
		counts[e.Kind.Value]++
	}
	for _, kind := range types.SafeKinds {
		if counts[kind] == 0 {
			t.Errorf("kind %s never picked in 400 draws", kind)
		}
	}
}

func TestCreateDefaultCandidatesIncludeBomb(t *testing.T) {
	f, _, _ := newTestFactory(7)

	sawBomb := false
	for i := 0; i < 400 && !sawBomb; i++ {
		sawBomb = f.Create(CreateOptions{}).Kind.Value.IsBomb()
	}
	if !sawBomb {
		t.Error("default candidate set should include bomb")
	}
}

func TestSetCanvasSize(t *testing.T) {
	f, _, _ := newTestFactory(8)
	f.SetCanvasSize(400, 300)

	for i := 0; i < 100; i++ {
		e := f.Create(CreateOptions{})
		if e.Position.X < 60 || e.Position.X > 340 {
			t.Fatalf("X out of resized spawn band: %v", e.Position.X)
		}
		if e.Position.Y != 360 {
			t.Fatalf("Y: got %v, want 360", e.Position.Y)
		}
	}
}

func TestCreateDeterministicWithSeed(t *testing.T) {
	f1, _, _ := newTestFactory(42)
	f2, _, _ := newTestFactory(42)

	for i := 0; i < 20; i++ {
		a := f1.Create(CreateOptions{})
		b := f2.Create(CreateOptions{})
		if *a.Position != *b.Position || *a.Velocity != *b.Velocity || a.Kind.Value != b.Kind.Value {
			t.Fatalf("same seed should produce same entity at %d", i)
		}
	}
}
