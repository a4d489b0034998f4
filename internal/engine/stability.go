package engine

import (
	"github.com/ayusman/mudra/internal/detector"
)

// StabilityFilter tracks short-term wrist movement per hand and classifies
// each hand as stable or jittery. A hand with fewer than the configured
// number of samples is always unstable: insufficient evidence is treated
// conservatively so jittery hands never emit single-hand gestures.
type StabilityFilter struct {
	frames    int
	maxJitter float64
	buffers   map[string]*wristRing
}

// NewStabilityFilter creates a filter that requires `frames` consecutive
// wrist samples, all moving less than maxJitter between samples, before a
// hand is considered stable.
func NewStabilityFilter(frames int, maxJitter float64) *StabilityFilter {
	if frames < 2 {
		frames = 2
	}
	return &StabilityFilter{
		frames:    frames,
		maxJitter: maxJitter,
		buffers:   make(map[string]*wristRing),
	}
}

// Observe records the wrist position for a hand and returns the verdict:
// true when the hand is stable. The buffer for an unseen hand is created
// lazily.
func (f *StabilityFilter) Observe(handID string, wrist detector.Point3D) bool {
	ring, ok := f.buffers[handID]
	if !ok {
		ring = newWristRing(f.frames)
		f.buffers[handID] = ring
	}
	ring.push(wrist)

	if !ring.full() {
		return false
	}
	return ring.maxStep() < f.maxJitter
}

// Forget drops the buffer for a hand that is no longer tracked.
func (f *StabilityFilter) Forget(handID string) {
	delete(f.buffers, handID)
}

// Reset clears all per-hand buffers.
func (f *StabilityFilter) Reset() {
	f.buffers = make(map[string]*wristRing)
}

// wristRing is a fixed-capacity ring of recent wrist positions.
type wristRing struct {
	points []detector.Point3D
	head   int
	count  int
}

func newWristRing(capacity int) *wristRing {
	return &wristRing{points: make([]detector.Point3D, capacity)}
}

func (r *wristRing) push(p detector.Point3D) {
	r.points[r.head] = p
	r.head = (r.head + 1) % len(r.points)
	if r.count < len(r.points) {
		r.count++
	}
}

func (r *wristRing) full() bool {
	return r.count == len(r.points)
}

// maxStep returns the largest displacement between consecutive buffered
// positions, oldest to newest.
func (r *wristRing) maxStep() float64 {
	var max float64
	for i := 1; i < r.count; i++ {
		a := r.at(i - 1)
		b := r.at(i)
		if d := detector.Distance(a, b); d > max {
			max = d
		}
	}
	return max
}

// at returns the i-th buffered point in insertion order (0 = oldest).
func (r *wristRing) at(i int) detector.Point3D {
	start := (r.head - r.count + 2*len(r.points)) % len(r.points)
	return r.points[(start+i)%len(r.points)]
}
