package perception

import (
	"math"
	"strings"
	"testing"

	"github.com/decker502/fruitcut/pkg/input"
)

// makeHand 生成 21 个关键点，第 i 个点位于 (base + i*0.01, 0.5)
func makeHand(base float64) []RawLandmark {
	hand := make([]RawLandmark, HandLandmarkCount)
	for i := range hand {
		hand[i] = RawLandmark{X: base + float64(i)*0.01, Y: 0.5}
	}
	return hand
}

func floatPtr(v float64) *float64 { return &v }

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNormalizeSingleHand(t *testing.T) {
	hand := makeHand(0.2)
	hand[8].Visibility = floatPtr(0.3)

	frame, err := Normalize(HandsPayload{Seq: 7, Hands: [][]RawLandmark{hand}}, 1000, 800, true)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if frame.Seq != 7 {
		t.Errorf("Seq: got %d, want 7", frame.Seq)
	}
	if len(frame.Landmarks) != len(FingerLandmarkIndices) {
		t.Fatalf("landmarks: got %d, want %d", len(frame.Landmarks), len(FingerLandmarkIndices))
	}
	if len(frame.Edges) != len(HandConnections) {
		t.Errorf("edges: got %d, want %d", len(frame.Edges), len(HandConnections))
	}

	// 第一个保留的关键点是原始索引 2
	first := frame.Landmarks[0]
	if first.ID != "hand0_landmark2" {
		t.Errorf("first ID: got %q, want hand0_landmark2", first.ID)
	}
	if !almostEqual(first.X, (1-0.22)*1000) || !almostEqual(first.Y, 400) {
		t.Errorf("first position: got (%v, %v), want (780, 400)", first.X, first.Y)
	}
	if first.Visibility != 1 {
		t.Errorf("missing visibility should default to 1, got %v", first.Visibility)
	}

	// 索引 8 在保留列表中的第 5 位
	indexTip := frame.Landmarks[5]
	if indexTip.ID != "hand0_landmark8" || indexTip.Visibility != 0.3 {
		t.Errorf("index tip: got %+v", indexTip)
	}
}

func TestNormalizeWithoutMirror(t *testing.T) {
	frame, err := Normalize(HandsPayload{Hands: [][]RawLandmark{makeHand(0.2)}}, 1000, 800, false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !almostEqual(frame.Landmarks[0].X, 220) {
		t.Errorf("X without mirror: got %v, want 220", frame.Landmarks[0].X)
	}
	if !almostEqual(frame.Tips[0].Thumb.X, 240) || !almostEqual(frame.Tips[0].Index.X, 280) {
		t.Errorf("tips: got %+v", frame.Tips[0])
	}
}

func TestNormalizeKeepsReportedZeroVisibility(t *testing.T) {
	hand := makeHand(0.1)
	for i := range hand {
		hand[i].Visibility = floatPtr(0)
	}

	frame, err := Normalize(HandsPayload{Hands: [][]RawLandmark{hand}}, 100, 100, false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	for _, lm := range frame.Landmarks {
		if lm.Visibility != 0 {
			t.Fatalf("reported zero visibility should stay 0, got %v for %s", lm.Visibility, lm.ID)
		}
	}

	// 不可见的手指不产生切割点
	points := input.MergeCutPoints(input.Pointer{}, frame.Landmarks, 0.5)
	if len(points) != 0 {
		t.Errorf("invisible landmarks should not cut, got %d points", len(points))
	}
}

func TestNormalizeEdgesPerHand(t *testing.T) {
	frame, err := Normalize(HandsPayload{Hands: [][]RawLandmark{makeHand(0.1), makeHand(0.5)}}, 100, 100, false)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if len(frame.Landmarks) != 30 || len(frame.Edges) != 20 || len(frame.Tips) != 2 {
		t.Fatalf("got %d landmarks, %d edges, %d tips", len(frame.Landmarks), len(frame.Edges), len(frame.Tips))
	}

	for _, e := range frame.Edges {
		start := frame.Landmarks[e.Start].ID
		if !strings.HasPrefix(start, "hand"+string(rune('0'+e.Hand))) {
			t.Errorf("edge %+v starts at %q, which belongs to another hand", e, start)
		}
	}

	// 第二只手的第一条边是拇指 2→3，对应下标 15→16
	second := frame.Edges[len(HandConnections)]
	if second.Start != 15 || second.End != 16 || second.Hand != 1 {
		t.Errorf("second hand first edge: got %+v", second)
	}
}

func TestNormalizeSkipsShortHand(t *testing.T) {
	short := makeHand(0.1)[:10]

	frame, err := Normalize(HandsPayload{Hands: [][]RawLandmark{short, makeHand(0.5)}}, 100, 100, false)
	if err == nil {
		t.Fatal("expected error for short hand")
	}
	if len(frame.Landmarks) != len(FingerLandmarkIndices) {
		t.Errorf("valid hand should still be kept, got %d landmarks", len(frame.Landmarks))
	}
	if frame.Landmarks[0].ID != "hand1_landmark2" {
		t.Errorf("kept hand ID: got %q", frame.Landmarks[0].ID)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	frame, err := Normalize(HandsPayload{}, 100, 100, true)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !frame.Empty() || len(frame.Landmarks) != 0 {
		t.Errorf("empty payload should give empty frame, got %+v", frame)
	}
}

func TestFrameCloneIsIndependent(t *testing.T) {
	frame, _ := Normalize(HandsPayload{Hands: [][]RawLandmark{makeHand(0.1)}}, 100, 100, false)
	c := frame.clone()
	c.Landmarks[0].X = -1

	if frame.Landmarks[0].X == -1 {
		t.Error("clone should not share the landmark slice")
	}
}
