package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results, including scripted
// per-call sequences.
type MockDetector struct {
	hands  []HandLandmarks
	script [][]HandLandmarks
	calls  int
	err    error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by every Detect call.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
	m.script = nil
}

// SetScript sets a per-call sequence of detection results. Once the
// script is exhausted, the last entry repeats.
func (m *MockDetector) SetScript(script [][]HandLandmarks) {
	m.script = script
	m.calls = 0
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.script) > 0 {
		idx := m.calls
		if idx >= len(m.script) {
			idx = len(m.script) - 1
		}
		m.calls++
		return m.script[idx], nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// RelaxedHandLandmarks returns a hand at the given position with fingers
// loosely apart: no gesture predicate is satisfied.
func RelaxedHandLandmarks(handedness string, x, y float64) HandLandmarks {
	lm := baseHand(handedness, x, y)
	lm.Points[ThumbTip] = Point3D{X: x + 0.08, Y: y - 0.10, Z: 0}
	lm.Points[IndexTip] = Point3D{X: x + 0.02, Y: y - 0.16, Z: 0}
	lm.Points[PinkyTip] = Point3D{X: x - 0.08, Y: y - 0.12, Z: 0}
	return lm
}

// PinchingHandLandmarks returns a hand whose thumb tip and index tip sit
// `gap` apart, centered near (x, y).
func PinchingHandLandmarks(handedness string, x, y, gap float64) HandLandmarks {
	lm := baseHand(handedness, x, y)
	lm.Points[ThumbTip] = Point3D{X: x - gap/2, Y: y - 0.1, Z: 0}
	lm.Points[IndexTip] = Point3D{X: x + gap/2, Y: y - 0.1, Z: 0}
	lm.Points[PinkyTip] = Point3D{X: x - 0.06, Y: y - 0.08, Z: 0}
	return lm
}

// SpreadHandLandmarks returns a hand whose index tip and pinky tip sit
// `span` apart.
func SpreadHandLandmarks(handedness string, x, y, span float64) HandLandmarks {
	lm := baseHand(handedness, x, y)
	lm.Points[ThumbTip] = Point3D{X: x + 0.10, Y: y - 0.08, Z: 0}
	lm.Points[IndexTip] = Point3D{X: x + span/2, Y: y - 0.15, Z: 0}
	lm.Points[PinkyTip] = Point3D{X: x - span/2, Y: y - 0.15, Z: 0}
	return lm
}

// ClapPairLandmarks returns two open hands whose middle-finger MCP
// knuckles sit `gap` apart, centered on (x, y).
func ClapPairLandmarks(x, y, gap float64) []HandLandmarks {
	left := RelaxedHandLandmarks("Left", x-gap/2-0.02, y)
	right := RelaxedHandLandmarks("Right", x+gap/2+0.02, y)
	left.Points[MiddleMCP] = Point3D{X: x - gap/2, Y: y - 0.05, Z: 0}
	right.Points[MiddleMCP] = Point3D{X: x + gap/2, Y: y - 0.05, Z: 0}
	return []HandLandmarks{left, right}
}

// baseHand lays out a plausible 21-point hand around a wrist at (x, y).
// Individual fixtures then move the fingertips that matter.
func baseHand(handedness string, x, y float64) HandLandmarks {
	lm := HandLandmarks{
		Handedness: handedness,
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: x, Y: y, Z: 0}

	// Thumb chain, angled out from the palm.
	lm.Points[ThumbCMC] = Point3D{X: x + 0.03, Y: y - 0.02, Z: 0}
	lm.Points[ThumbMCP] = Point3D{X: x + 0.05, Y: y - 0.05, Z: 0}
	lm.Points[ThumbIP] = Point3D{X: x + 0.07, Y: y - 0.08, Z: 0}
	lm.Points[ThumbTip] = Point3D{X: x + 0.08, Y: y - 0.11, Z: 0}

	// Four finger chains fanned across the palm.
	fingers := []struct {
		mcp, pip, dip, tip int
		dx                 float64
	}{
		{IndexMCP, IndexPIP, IndexDIP, IndexTip, 0.03},
		{MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, 0.0},
		{RingMCP, RingPIP, RingDIP, RingTip, -0.03},
		{PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip, -0.06},
	}
	for _, f := range fingers {
		lm.Points[f.mcp] = Point3D{X: x + f.dx, Y: y - 0.08, Z: 0}
		lm.Points[f.pip] = Point3D{X: x + f.dx, Y: y - 0.11, Z: 0}
		lm.Points[f.dip] = Point3D{X: x + f.dx, Y: y - 0.14, Z: 0}
		lm.Points[f.tip] = Point3D{X: x + f.dx, Y: y - 0.17, Z: 0}
	}

	return lm
}
