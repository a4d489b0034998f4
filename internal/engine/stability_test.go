package engine

import (
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

func TestStabilityFilter_InsufficientEvidence(t *testing.T) {
	f := NewStabilityFilter(4, 0.02)

	// Fewer than 4 samples: always unstable, however still the hand is.
	for i := 0; i < 3; i++ {
		if f.Observe("Right", detector.Point3D{X: 0.5, Y: 0.5}) {
			t.Errorf("sample %d: verdict = stable, want unstable during warm-up", i+1)
		}
	}
}

func TestStabilityFilter_StableHand(t *testing.T) {
	f := NewStabilityFilter(4, 0.02)

	// Wrist drifts well below the jitter ceiling.
	var verdict bool
	for i := 0; i < 4; i++ {
		verdict = f.Observe("Right", detector.Point3D{X: 0.5 + float64(i)*0.005, Y: 0.5})
	}
	if !verdict {
		t.Error("verdict = unstable, want stable for sub-jitter drift")
	}
}

func TestStabilityFilter_JitteryHand(t *testing.T) {
	f := NewStabilityFilter(4, 0.02)

	// One large jump between consecutive samples keeps the hand unstable.
	positions := []detector.Point3D{
		{X: 0.50, Y: 0.5},
		{X: 0.505, Y: 0.5},
		{X: 0.56, Y: 0.5}, // 0.055 jump
		{X: 0.565, Y: 0.5},
	}
	var verdict bool
	for _, p := range positions {
		verdict = f.Observe("Left", p)
	}
	if verdict {
		t.Error("verdict = stable, want unstable after a large jump")
	}
}

func TestStabilityFilter_RecoversAfterJitter(t *testing.T) {
	f := NewStabilityFilter(4, 0.02)

	f.Observe("Right", detector.Point3D{X: 0.1, Y: 0.5})
	f.Observe("Right", detector.Point3D{X: 0.9, Y: 0.5}) // violent jump

	// Four calm samples push the jump out of the window.
	var verdict bool
	for i := 0; i < 4; i++ {
		verdict = f.Observe("Right", detector.Point3D{X: 0.9, Y: 0.5})
	}
	if !verdict {
		t.Error("verdict = unstable, want stable once the jump left the window")
	}
}

func TestStabilityFilter_PerHandIsolation(t *testing.T) {
	f := NewStabilityFilter(2, 0.02)

	f.Observe("Left", detector.Point3D{X: 0.2, Y: 0.5})
	f.Observe("Left", detector.Point3D{X: 0.8, Y: 0.5}) // left hand jitters

	f.Observe("Right", detector.Point3D{X: 0.5, Y: 0.5})
	if !f.Observe("Right", detector.Point3D{X: 0.5, Y: 0.5}) {
		t.Error("right hand verdict affected by left hand jitter")
	}
}

func TestStabilityFilter_Forget(t *testing.T) {
	f := NewStabilityFilter(2, 0.02)

	f.Observe("Right", detector.Point3D{X: 0.5, Y: 0.5})
	f.Observe("Right", detector.Point3D{X: 0.5, Y: 0.5})
	f.Forget("Right")

	// Buffer restarts: single sample is insufficient evidence again.
	if f.Observe("Right", detector.Point3D{X: 0.5, Y: 0.5}) {
		t.Error("verdict = stable right after Forget, want unstable")
	}
}
