package engine

import (
	"github.com/ayusman/mudra/internal/detector"
)

// Base confidence per single-hand gesture before scoring bonuses.
const (
	pinchBaseConfidence  = 0.8
	spreadBaseConfidence = 0.75
)

// classifyHand evaluates the single-hand geometric predicates on one hand.
// Jittery hands never classify, and only one gesture may fire per hand per
// frame: pinch takes precedence when both predicates hold. Returns false
// when no gesture is recognized.
func classifyHand(hand HandFrame, stable bool, cfg Config) (singleGesture, bool) {
	if !hand.Valid() || !stable {
		return singleGesture{}, false
	}

	handedness := handednessLabel(hand.Handedness)

	if d := hand.PinchDistance(); d < cfg.PinchThreshold {
		return singleGesture{
			Type:       GesturePinch,
			Handedness: handedness,
			Base:       pinchBaseConfidence,
			Position:   hand.PinchCenter(),
			Distance:   d,
		}, true
	}

	index := hand.Landmarks[detector.IndexTip]
	pinky := hand.Landmarks[detector.PinkyTip]
	if d := detector.Distance(index, pinky); d > cfg.SpreadThreshold {
		return singleGesture{
			Type:       GestureSpread,
			Handedness: handedness,
			Base:       spreadBaseConfidence,
			Position:   Point2D{X: (index.X + pinky.X) / 2, Y: (index.Y + pinky.Y) / 2},
			Distance:   d,
		}, true
	}

	return singleGesture{}, false
}

// handednessLabel maps a detector label to the event handedness, folding
// unrecognized labels into Unknown.
func handednessLabel(label string) Handedness {
	switch label {
	case "Left":
		return HandLeft
	case "Right":
		return HandRight
	default:
		return HandUnknown
	}
}
