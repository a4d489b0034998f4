package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Presence gate constants
const (
	// DefaultPresenceThreshold is the changed-pixel percentage above which
	// someone is considered present in front of the camera.
	DefaultPresenceThreshold = 1.0
	// blurKernelSize is the Gaussian blur kernel size used to suppress
	// sensor noise before differencing.
	blurKernelSize = 21
	// pixelDiffThreshold is the binary threshold applied to the per-pixel
	// difference.
	pixelDiffThreshold = 25
)

// PresenceGate decides whether anything is moving in front of the camera by
// differencing consecutive frames. The recognition pipeline stays on its
// idle tick rate while the gate reports absence.
type PresenceGate struct {
	threshold   float64
	prevGray    gocv.Mat
	initialized bool
	mu          sync.Mutex
}

// NewPresenceGate creates a gate with the given changed-pixel percentage
// threshold. A threshold of 1.0 means 1% of pixels must change.
func NewPresenceGate(threshold float64) *PresenceGate {
	return &PresenceGate{
		threshold: threshold,
		prevGray:  gocv.NewMat(),
	}
}

// Observe compares a frame against the previous one and reports whether
// presence was detected along with the percentage of pixels that changed.
// The first frame establishes the baseline and always reports absence.
func (g *PresenceGate) Observe(frame *gocv.Mat) (bool, float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: blurKernelSize, Y: blurKernelSize}, 0, 0, gocv.BorderDefault)

	if !g.initialized {
		blurred.CopyTo(&g.prevGray)
		g.initialized = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, g.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, pixelDiffThreshold, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	totalPixels := thresh.Rows() * thresh.Cols()
	changePercent := float64(nonZero) / float64(totalPixels) * 100.0

	blurred.CopyTo(&g.prevGray)

	return changePercent > g.threshold, changePercent
}

// Reset clears the baseline so the next frame re-establishes it.
func (g *PresenceGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.prevGray.Empty() {
		g.prevGray.Close()
		g.prevGray = gocv.NewMat()
	}
	g.initialized = false
}

// Close releases resources used by the gate.
func (g *PresenceGate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.prevGray.Empty() {
		g.prevGray.Close()
		g.prevGray = gocv.NewMat()
	}
	g.initialized = false
}

// SetThreshold sets the changed-pixel percentage threshold.
// Values less than or equal to 0 are ignored.
func (g *PresenceGate) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.threshold = threshold
}
