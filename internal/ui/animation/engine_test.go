package animation

import (
	"testing"
	"time"
)

func TestFrameAtWalksThePhases(t *testing.T) {
	config := DefaultConfig() // 4-4-6-2

	cases := []struct {
		elapsed time.Duration
		want    Phase
	}{
		{0, PhaseInhale},
		{3 * time.Second, PhaseInhale},
		{4 * time.Second, PhaseHold},
		{7 * time.Second, PhaseHold},
		{8 * time.Second, PhaseExhale},
		{13 * time.Second, PhaseExhale},
		{14 * time.Second, PhaseRest},
		{15 * time.Second, PhaseRest},
		// Next cycle wraps around.
		{16 * time.Second, PhaseInhale},
		{16*time.Second + 4*time.Second, PhaseHold},
	}
	for _, tc := range cases {
		if got := config.FrameAt(tc.elapsed).Phase; got != tc.want {
			t.Errorf("FrameAt(%v).Phase: got %v, want %v", tc.elapsed, got, tc.want)
		}
	}
}

func TestScaleGrowsOnInhaleAndShrinksOnExhale(t *testing.T) {
	config := DefaultConfig()

	startInhale := config.FrameAt(0)
	endInhale := config.FrameAt(4*time.Second - time.Millisecond)
	if !(endInhale.Scale > startInhale.Scale) {
		t.Errorf("inhale scale should grow: %v -> %v", startInhale.Scale, endInhale.Scale)
	}

	hold := config.FrameAt(5 * time.Second)
	if hold.Scale != maxScale {
		t.Errorf("hold scale: got %v, want %v", hold.Scale, maxScale)
	}

	startExhale := config.FrameAt(8 * time.Second)
	endExhale := config.FrameAt(14*time.Second - time.Millisecond)
	if !(endExhale.Scale < startExhale.Scale) {
		t.Errorf("exhale scale should shrink: %v -> %v", startExhale.Scale, endExhale.Scale)
	}

	rest := config.FrameAt(15 * time.Second)
	if rest.Scale != minScale {
		t.Errorf("rest scale: got %v, want %v", rest.Scale, minScale)
	}
}

func TestGentleConfigSkipsHold(t *testing.T) {
	config := GentleConfig()
	for elapsed := time.Duration(0); elapsed < config.CycleLength(); elapsed += 100 * time.Millisecond {
		if config.FrameAt(elapsed).Phase == PhaseHold {
			t.Fatalf("gentle cycle produced a hold phase at %v", elapsed)
		}
	}
}

func TestZeroConfigIsSafe(t *testing.T) {
	frame := Config{}.FrameAt(3 * time.Second)
	if frame.Phase != PhaseRest || frame.Scale != minScale {
		t.Errorf("zero config frame: got %+v", frame)
	}
}
