package main

import (
	"math"
	"testing"

	"github.com/decker502/fruitcut/pkg/perception"
)

func TestSyntheticHandNormalizes(t *testing.T) {
	for _, phase := range []float64{0, 1, math.Pi, 4.5} {
		hand := syntheticHand(phase, false)
		if len(hand) != perception.HandLandmarkCount {
			t.Fatalf("landmarks: got %d, want %d", len(hand), perception.HandLandmarkCount)
		}
		for i, lm := range hand {
			if lm.X < 0 || lm.X > 1 || lm.Y < 0 || lm.Y > 1 {
				t.Errorf("phase %v landmark %d out of range: %+v", phase, i, lm)
			}
		}

		frame, err := perception.Normalize(perception.HandsPayload{Hands: [][]perception.RawLandmark{hand}}, 800, 600, true)
		if err != nil {
			t.Fatalf("Normalize: %v", err)
		}
		if len(frame.Tips) != 1 {
			t.Fatalf("tips: got %d, want 1", len(frame.Tips))
		}
	}
}

func TestSyntheticHandPinch(t *testing.T) {
	open := syntheticHand(0, false)
	if open[perception.ThumbTip] == open[perception.IndexTip] {
		t.Error("open hand should have separate thumb and index tips")
	}

	closed := syntheticHand(0, true)
	if closed[perception.ThumbTip].X != closed[perception.IndexTip].X ||
		closed[perception.ThumbTip].Y != closed[perception.IndexTip].Y {
		t.Error("pinching hand should have thumb tip on index tip")
	}
}
