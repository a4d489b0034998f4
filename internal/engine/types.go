// Package engine implements the gesture recognition engine: a stateful,
// frame-synchronous classifier that turns noisy per-frame hand landmarks
// into debounced, confidence-scored gesture events.
package engine

import (
	"github.com/ayusman/mudra/internal/detector"
)

// GestureType identifies the kind of recognized gesture.
type GestureType string

const (
	// GesturePinch is thumb tip and index tip brought together on one hand.
	GesturePinch GestureType = "PINCH"
	// GestureSpread is index tip and pinky tip pulled far apart on one hand.
	GestureSpread GestureType = "SPREAD"
	// GestureClap is both hands brought close together, palms open.
	GestureClap GestureType = "CLAP"
	// GestureStretchHorizontal is two pinching hands separating along the x axis.
	GestureStretchHorizontal GestureType = "STRETCH_HORIZONTAL"
	// GestureStretchVertical is two pinching hands separating along the y axis.
	GestureStretchVertical GestureType = "STRETCH_VERTICAL"
	// GestureShrinkHorizontal is two pinching hands converging along the x axis.
	GestureShrinkHorizontal GestureType = "SHRINK_HORIZONTAL"
	// GestureShrinkVertical is two pinching hands converging along the y axis.
	GestureShrinkVertical GestureType = "SHRINK_VERTICAL"
)

// Handedness labels which hand (or hands) produced a gesture.
type Handedness string

const (
	HandLeft    Handedness = "Left"
	HandRight   Handedness = "Right"
	HandBoth    Handedness = "Both"
	HandUnknown Handedness = "Unknown"
)

// Direction is the dominant axis of a directional two-hand gesture.
type Direction string

const (
	DirectionHorizontal Direction = "horizontal"
	DirectionVertical   Direction = "vertical"
)

// HandFrame is one detected hand for a single frame tick. Landmarks are
// normalized frame coordinates; the engine holds a HandFrame only for the
// duration of one ProcessFrame pass. A frame with fewer than
// detector.NumLandmarks points is dropped without classification.
type HandFrame struct {
	Landmarks  []detector.Point3D
	Handedness string // detector label: "Left", "Right" or "Unknown"
	Score      float64
}

// Valid reports whether the frame carries a full landmark set.
func (h HandFrame) Valid() bool {
	return len(h.Landmarks) >= detector.NumLandmarks
}

// Wrist returns the wrist landmark.
func (h HandFrame) Wrist() detector.Point3D {
	return h.Landmarks[detector.Wrist]
}

// PinchDistance is the thumb tip to index tip distance.
func (h HandFrame) PinchDistance() float64 {
	return detector.Distance(h.Landmarks[detector.ThumbTip], h.Landmarks[detector.IndexTip])
}

// PinchCenter is the midpoint between thumb tip and index tip.
func (h HandFrame) PinchCenter() Point2D {
	thumb := h.Landmarks[detector.ThumbTip]
	index := h.Landmarks[detector.IndexTip]
	return Point2D{X: (thumb.X + index.X) / 2, Y: (thumb.Y + index.Y) / 2}
}

// HandFrameFrom adapts a detector result into the engine's input form.
func HandFrameFrom(lm detector.HandLandmarks) HandFrame {
	return HandFrame{
		Landmarks:  lm.Points[:],
		Handedness: lm.Handedness,
		Score:      lm.Score,
	}
}

// FrameInput is the per-tick input from the landmark source: zero, one or
// two hands detected in the same camera frame.
type FrameInput struct {
	Hands []HandFrame
}

// FrameInputFrom adapts a full detection result into a FrameInput.
func FrameInputFrom(hands []detector.HandLandmarks) FrameInput {
	in := FrameInput{Hands: make([]HandFrame, 0, len(hands))}
	for _, h := range hands {
		in.Hands = append(in.Hands, HandFrameFrom(h))
	}
	return in
}

// Point2D is a normalized 2D position in frame space.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GestureKey identifies a gesture stream for debouncing: repeated events
// with the same key are rate limited.
type GestureKey struct {
	Type       GestureType
	Handedness Handedness
}

// GestureEvent is one recognized gesture delivered to subscribers.
// Direction, Distance and DistanceChange are populated only for the
// variants they apply to (Direction for stretch/shrink, Distance for all
// geometric gestures, DistanceChange for stretch/shrink).
type GestureEvent struct {
	Type           GestureType `json:"type"`
	Handedness     Handedness  `json:"handedness"`
	Confidence     float64     `json:"confidence"`
	Position       Point2D     `json:"position"`
	Timestamp      int64       `json:"timestamp"` // milliseconds
	Direction      Direction   `json:"direction,omitempty"`
	Distance       float64     `json:"distance,omitempty"`
	DistanceChange float64     `json:"distanceChange,omitempty"`
}

// Key returns the debounce key for this event.
func (e GestureEvent) Key() GestureKey {
	return GestureKey{Type: e.Type, Handedness: e.Handedness}
}

// singleGesture is the raw result of single-hand classification, before
// confidence scoring and debouncing.
type singleGesture struct {
	Type       GestureType
	Handedness Handedness
	Base       float64
	Position   Point2D
	Distance   float64
}

// pairGesture is the raw result of two-hand correlation. Clap results leave
// the directional fields zero; directional results set all of them.
type pairGesture struct {
	Type           GestureType
	Confidence     float64 // two-hand confidence is computed inline
	Position       Point2D
	Distance       float64
	Direction      Direction
	DistanceChange float64
}
