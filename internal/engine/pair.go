package engine

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// Two-hand confidence shaping.
const (
	clapBaseConfidence        = 0.85
	clapProximityWeight       = 0.1
	directionalBaseConfidence = 0.65
	directionalChangeWeight   = 8.0
	fullHistoryBonus          = 0.1

	// directionLookback compares the newest history entry against the
	// third-most-recent one, so a directional verdict always spans three
	// buffered samples.
	directionLookback = 2
)

// pairCorrelator pairs the two hands reported in one frame, maintains the
// separation history per pairing, and classifies clap or directional
// stretch/shrink gestures.
type pairCorrelator struct {
	history     map[string]*HistoryWindow
	historySize int
}

func newPairCorrelator(historySize int) *pairCorrelator {
	return &pairCorrelator{
		history:     make(map[string]*HistoryWindow),
		historySize: historySize,
	}
}

// classify runs the two-hand checks for one frame. The clap branch fires
// when either hand is open; the directional branch only when both hands
// pinch. Returns false when nothing classifies: not enough history,
// too-small separation change and ambiguous motion are all expected
// outcomes, not errors.
func (c *pairCorrelator) classify(a, b HandFrame, pairID string, now int64, cfg Config) (pairGesture, bool) {
	aPinching := a.PinchDistance() < cfg.PinchThreshold
	bPinching := b.PinchDistance() < cfg.PinchThreshold

	if !aPinching || !bPinching {
		return classifyClap(a, b, cfg)
	}

	centerA := a.PinchCenter()
	centerB := b.PinchCenter()

	entry := HistoryEntry{
		Timestamp:        now,
		Distance:         math.Hypot(centerA.X-centerB.X, centerA.Y-centerB.Y),
		HorizontalSpread: math.Abs(centerA.X - centerB.X),
		VerticalSpread:   math.Abs(centerA.Y - centerB.Y),
	}

	win, ok := c.history[pairID]
	if !ok {
		win = NewHistoryWindow(c.historySize)
		c.history[pairID] = win
	}
	win.Push(entry)

	// Warm up: a verdict needs three buffered samples.
	past, ok := win.Back(directionLookback)
	if !ok {
		return pairGesture{}, false
	}

	// Too short a span reacts to camera-rate noise rather than motion.
	if entry.Timestamp-past.Timestamp < cfg.MinLookbackMs {
		return pairGesture{}, false
	}

	distanceChange := entry.Distance - past.Distance
	if math.Abs(distanceChange) < cfg.MinDistanceChange {
		return pairGesture{}, false
	}

	horizontalChange := math.Abs(entry.HorizontalSpread - past.HorizontalSpread)
	verticalChange := math.Abs(entry.VerticalSpread - past.VerticalSpread)

	var direction Direction
	switch {
	case horizontalChange > verticalChange*cfg.MinDirectionRatio:
		direction = DirectionHorizontal
	case verticalChange > horizontalChange*cfg.MinDirectionRatio:
		direction = DirectionVertical
	default:
		// Neither axis dominates; ambiguous motion is suppressed.
		return pairGesture{}, false
	}

	confidence := directionalBaseConfidence + math.Abs(distanceChange)*directionalChangeWeight
	if win.Full() {
		confidence += fullHistoryBonus
	}
	if confidence > MaxConfidence {
		confidence = MaxConfidence
	}

	return pairGesture{
		Type:       directionalType(distanceChange > 0, direction),
		Confidence: confidence,
		Position: Point2D{
			X: (centerA.X + centerB.X) / 2,
			Y: (centerA.Y + centerB.Y) / 2,
		},
		Distance:       entry.Distance,
		Direction:      direction,
		DistanceChange: distanceChange,
	}, true
}

// classifyClap checks the distance between the two middle-finger MCP
// knuckles. Confidence grows as the hands get closer.
func classifyClap(a, b HandFrame, cfg Config) (pairGesture, bool) {
	mcpA := a.Landmarks[detector.MiddleMCP]
	mcpB := b.Landmarks[detector.MiddleMCP]

	dist := detector.Distance(mcpA, mcpB)
	if dist >= cfg.ClapDistance {
		return pairGesture{}, false
	}

	confidence := clapBaseConfidence + clapProximityWeight*(cfg.ClapDistance-dist)/cfg.ClapDistance
	if confidence > MaxConfidence {
		confidence = MaxConfidence
	}

	return pairGesture{
		Type:       GestureClap,
		Confidence: confidence,
		Position: Point2D{
			X: (mcpA.X + mcpB.X) / 2,
			Y: (mcpA.Y + mcpB.Y) / 2,
		},
		Distance: dist,
	}, true
}

// directionalType selects the gesture variant from the separation sign
// (stretch when the hands separate, shrink when they converge) and the
// dominant axis.
func directionalType(stretching bool, direction Direction) GestureType {
	if stretching {
		if direction == DirectionHorizontal {
			return GestureStretchHorizontal
		}
		return GestureStretchVertical
	}
	if direction == DirectionHorizontal {
		return GestureShrinkHorizontal
	}
	return GestureShrinkVertical
}

// forget drops the history window for a pairing that is no longer seen.
func (c *pairCorrelator) forget(pairID string) {
	delete(c.history, pairID)
}

// reset clears all pair histories.
func (c *pairCorrelator) reset() {
	c.history = make(map[string]*HistoryWindow)
}

// resize re-creates histories with a new window capacity. Existing
// measurements are discarded; the next frames warm the windows back up.
func (c *pairCorrelator) resize(historySize int) {
	c.historySize = historySize
	c.reset()
}
