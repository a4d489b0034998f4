package engine

import (
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

func pinchFrame(handedness string, gap float64) HandFrame {
	return HandFrameFrom(detector.PinchingHandLandmarks(handedness, 0.5, 0.5, gap))
}

func spreadFrame(handedness string, span float64) HandFrame {
	return HandFrameFrom(detector.SpreadHandLandmarks(handedness, 0.5, 0.5, span))
}

func relaxedFrame(handedness string) HandFrame {
	return HandFrameFrom(detector.RelaxedHandLandmarks(handedness, 0.5, 0.5))
}

func TestClassifyHand_Pinch(t *testing.T) {
	cfg := DefaultConfig()

	g, ok := classifyHand(pinchFrame("Right", 0.03), true, cfg)
	if !ok {
		t.Fatal("expected a pinch classification")
	}
	if g.Type != GesturePinch {
		t.Errorf("type = %s, want %s", g.Type, GesturePinch)
	}
	if g.Handedness != HandRight {
		t.Errorf("handedness = %s, want %s", g.Handedness, HandRight)
	}
	if g.Base != 0.8 {
		t.Errorf("base confidence = %f, want 0.8", g.Base)
	}
	if g.Distance >= cfg.PinchThreshold {
		t.Errorf("distance = %f, want < %f", g.Distance, cfg.PinchThreshold)
	}
}

func TestClassifyHand_Spread(t *testing.T) {
	cfg := DefaultConfig()

	g, ok := classifyHand(spreadFrame("Left", 0.30), true, cfg)
	if !ok {
		t.Fatal("expected a spread classification")
	}
	if g.Type != GestureSpread {
		t.Errorf("type = %s, want %s", g.Type, GestureSpread)
	}
	if g.Base != 0.75 {
		t.Errorf("base confidence = %f, want 0.75", g.Base)
	}
}

func TestClassifyHand_NoGesture(t *testing.T) {
	cfg := DefaultConfig()

	if _, ok := classifyHand(relaxedFrame("Right"), true, cfg); ok {
		t.Error("relaxed hand should not classify")
	}
}

func TestClassifyHand_UnstableHandNeverClassifies(t *testing.T) {
	cfg := DefaultConfig()

	// Geometry satisfied, stability not: no emission.
	if _, ok := classifyHand(pinchFrame("Right", 0.03), false, cfg); ok {
		t.Error("jittery hand classified a pinch")
	}
	if _, ok := classifyHand(spreadFrame("Right", 0.30), false, cfg); ok {
		t.Error("jittery hand classified a spread")
	}
}

func TestClassifyHand_MalformedInputDropped(t *testing.T) {
	cfg := DefaultConfig()

	short := HandFrame{
		Landmarks:  make([]detector.Point3D, detector.NumLandmarks-1),
		Handedness: "Right",
	}
	if _, ok := classifyHand(short, true, cfg); ok {
		t.Error("hand with missing landmarks classified")
	}
}

func TestClassifyHand_UnknownHandedness(t *testing.T) {
	cfg := DefaultConfig()

	g, ok := classifyHand(pinchFrame("Unknown", 0.03), true, cfg)
	if !ok {
		t.Fatal("expected a pinch classification")
	}
	if g.Handedness != HandUnknown {
		t.Errorf("handedness = %s, want %s", g.Handedness, HandUnknown)
	}
}

func TestScoreConfidence(t *testing.T) {
	tests := []struct {
		name       string
		base       float64
		stable     bool
		hasHistory bool
		want       float64
	}{
		{"base only", 0.75, false, false, 0.75},
		{"stability bonus", 0.75, true, false, 0.85},
		{"history bonus", 0.75, false, true, 0.80},
		{"both bonuses capped", 0.8, true, true, 0.95},
		{"cap applies", 0.9, true, true, 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreConfidence(tt.base, tt.stable, tt.hasHistory); got != tt.want {
				t.Errorf("scoreConfidence(%f, %v, %v) = %f, want %f",
					tt.base, tt.stable, tt.hasHistory, got, tt.want)
			}
		})
	}
}
