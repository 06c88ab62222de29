package scenes

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/decker502/fruitcut/pkg/config"
	"github.com/decker502/fruitcut/pkg/game"
	"github.com/decker502/fruitcut/pkg/input"
	"github.com/decker502/fruitcut/pkg/perception"
	"github.com/decker502/fruitcut/pkg/types"
)

// fakeHands 固定返回一帧关键点
type fakeHands struct {
	frame         perception.Frame
	width, height float64
}

func (f *fakeHands) Latest() perception.Frame { return f.frame }

func (f *fakeHands) SetCanvasSize(width, height float64) {
	f.width, f.height = width, height
}

func newTestEnv(t *testing.T, hands LandmarkSource) *Env {
	t.Helper()
	cfg := config.DefaultGameConfig()
	session, err := game.NewSession(cfg, rand.New(rand.NewSource(1)), game.Callbacks{})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return NewEnv(cfg, session, nil, nil, game.NewSceneManager(), hands)
}

func TestButtonContains(t *testing.T) {
	b := centeredButton("Start", 100, 100, 40, 20)

	tests := []struct {
		x, y float64
		want bool
	}{
		{100, 100, true},
		{80, 90, true},   // 左上角
		{120, 110, true}, // 右下角
		{79, 100, false},
		{100, 111, false},
	}
	for _, tt := range tests {
		if got := b.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestButtonTriggered(t *testing.T) {
	b := centeredButton("Start", 100, 100, 40, 20)

	if b.Triggered(frameInput{Pointer: input.Pointer{X: 100, Y: 100, Present: true}}) {
		t.Error("hovering without click should not trigger")
	}
	if !b.Triggered(frameInput{Clicked: true, ClickX: 95, ClickY: 105}) {
		t.Error("click inside should trigger")
	}
	if b.Triggered(frameInput{Clicked: true, ClickX: 0, ClickY: 0}) {
		t.Error("click outside should not trigger")
	}
	if !b.Triggered(frameInput{Pinches: []input.Point{{X: 500, Y: 500}, {X: 110, Y: 95}}}) {
		t.Error("pinch inside should trigger")
	}
}

func TestButtonHoveredByLandmark(t *testing.T) {
	b := centeredButton("Start", 100, 100, 40, 20)
	fi := frameInput{Frame: perception.Frame{Landmarks: []input.Landmark{{X: 100, Y: 100}}}}
	if !b.Hovered(fi) {
		t.Error("landmark over the button should count as hover")
	}
}

func TestApplyInputMode(t *testing.T) {
	fi := frameInput{
		Pointer: input.Pointer{X: 1, Y: 2, Present: true},
		Clicked: true,
		Frame:   perception.Frame{Landmarks: []input.Landmark{{X: 3, Y: 4}}},
	}

	pointerOnly := applyInputMode(fi, game.InputModePointer)
	if !pointerOnly.Pointer.Present || len(pointerOnly.Frame.Landmarks) != 0 {
		t.Errorf("pointer mode: got %+v", pointerOnly)
	}

	handOnly := applyInputMode(fi, game.InputModeHand)
	if handOnly.Pointer.Present || handOnly.Clicked || len(handOnly.Frame.Landmarks) != 1 {
		t.Errorf("hand mode: got %+v", handOnly)
	}

	auto := applyInputMode(fi, game.InputModeAuto)
	if !auto.Pointer.Present || len(auto.Frame.Landmarks) != 1 {
		t.Errorf("auto mode: got %+v", auto)
	}
}

func TestHandTrackerPinchPerHand(t *testing.T) {
	h := newHandTracker(30)

	open := perception.Tips{Thumb: input.Point{X: 0, Y: 0}, Index: input.Point{X: 100, Y: 0}}
	closed := perception.Tips{Thumb: input.Point{X: 200, Y: 200}, Index: input.Point{X: 210, Y: 200}}

	// 第二只手捏合
	pinches := h.update(perception.Frame{Tips: []perception.Tips{open, closed}})
	if len(pinches) != 1 || pinches[0].X != 205 || pinches[0].Y != 200 {
		t.Fatalf("first frame pinches: got %+v", pinches)
	}

	// 保持捏合不再触发
	if pinches := h.update(perception.Frame{Tips: []perception.Tips{open, closed}}); len(pinches) != 0 {
		t.Fatalf("held pinch should not trigger again, got %+v", pinches)
	}

	// 手消失后重新出现可以再次触发
	h.update(perception.Frame{})
	if pinches := h.update(perception.Frame{Tips: []perception.Tips{closed}}); len(pinches) != 1 {
		t.Errorf("pinch after hand reappears: got %+v", pinches)
	}
}

func TestCutPointsMergesAllSources(t *testing.T) {
	env := newTestEnv(t, nil)

	fi := frameInput{
		Pointer: input.Pointer{X: 10, Y: 10, Present: true},
		Frame: perception.Frame{Landmarks: []input.Landmark{
			{X: 20, Y: 20, Visibility: 0.9},
			{X: 30, Y: 30, Visibility: 0.2},
		}},
		Pinches: []input.Point{{X: 40, Y: 40}},
	}

	points := env.cutPoints(fi)
	want := []input.Point{{X: 10, Y: 10}, {X: 20, Y: 20}, {X: 40, Y: 40}}
	if len(points) != len(want) {
		t.Fatalf("points: got %+v, want %+v", points, want)
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("point %d: got %+v, want %+v", i, points[i], want[i])
		}
	}
}

func TestEnvResizePropagates(t *testing.T) {
	hands := &fakeHands{}
	env := newTestEnv(t, hands)

	env.Resize(640, 480)
	if w, h := env.Session.CanvasSize(); w != 640 || h != 480 {
		t.Errorf("session canvas: got %vx%v", w, h)
	}
	if hands.width != 640 || hands.height != 480 {
		t.Errorf("hands canvas: got %vx%v", hands.width, hands.height)
	}

	// 非法尺寸不改变已有尺寸
	env.Resize(0, 480)
	if env.width != 640 || hands.width != 640 {
		t.Error("invalid resize should keep the previous size")
	}
}

func TestSceneFactory(t *testing.T) {
	env := newTestEnv(t, nil)
	factory := NewSceneFactory(env)

	if _, ok := factory(game.SceneMenu).(*MenuScene); !ok {
		t.Error("menu id should create *MenuScene")
	}
	if _, ok := factory(game.SceneGame).(*GameScene); !ok {
		t.Error("game id should create *GameScene")
	}
	if _, ok := factory(game.SceneGameOver).(*GameOverScene); !ok {
		t.Error("gameover id should create *GameOverScene")
	}
	if factory("credits") != nil {
		t.Error("unknown id should return nil")
	}
}

func TestHUDLines(t *testing.T) {
	diff := game.DifficultySnapshot{Progress: 0.5, SpawnInterval: 675, BombChance: 0.175, FruitsPerSpawn: 2}

	lines := hudLines(12, 2, 59.6, true, diff)
	if len(lines) != 4 {
		t.Fatalf("lines: got %d, want 4", len(lines))
	}
	if lines[0] != "Score: 12" {
		t.Errorf("score line: %q", lines[0])
	}
	if lines[1] != "Lives: 2 * *" {
		t.Errorf("lives line: %q", lines[1])
	}
	if lines[2] != "FPS: 60" {
		t.Errorf("fps line: %q", lines[2])
	}
	if !strings.Contains(lines[3], "50%") || !strings.Contains(lines[3], "x2") {
		t.Errorf("difficulty line: %q", lines[3])
	}

	if got := hudLines(0, 0, 60, false, diff); len(got) != 2 || got[1] != "Lives: 0" {
		t.Errorf("without fps: got %q", got)
	}
}

func TestStyleForUnknownKind(t *testing.T) {
	if styleFor(types.FruitUnknown) == styleFor(types.FruitApple) {
		t.Error("unknown kind should use a distinct fallback style")
	}
}

func TestPulseRange(t *testing.T) {
	for ms := 0.0; ms < 2000; ms += 37 {
		if v := pulse(ms, 1600); v < 0 || v > 1 {
			t.Fatalf("pulse(%v) = %v out of [0,1]", ms, v)
		}
	}
}

func TestTitleFaceCachedPerRoundedSize(t *testing.T) {
	a := titleFace(72.4)
	if a == nil {
		t.Fatal("embedded font should load")
	}
	if b := titleFace(71.6); a != b {
		t.Error("sizes rounding to the same value should share a face")
	}
	if c := titleFace(36); c == a || c.Size != 36 {
		t.Errorf("different size should get its own face, got %+v", c)
	}
}
