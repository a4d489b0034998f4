package engine

import (
	"github.com/ayusman/mudra/internal/detector"

	"github.com/google/uuid"
)

// handTracker assigns a stable identity to every observed hand. Labeled
// hands are keyed by their handedness label; the detector's array order is
// never used as identity since it is not consistent frame to frame.
// Unlabeled hands get a synthetic track id, re-matched each frame by
// nearest wrist position.
type handTracker struct {
	maxJump float64
	wrists  map[string]detector.Point3D // synthetic id -> last wrist position
}

func newHandTracker(maxJump float64) *handTracker {
	return &handTracker{
		maxJump: maxJump,
		wrists:  make(map[string]detector.Point3D),
	}
}

// resolve returns the identity for a hand. `claimed` holds ids already
// assigned this frame so two hands never share a track within one frame.
func (t *handTracker) resolve(hand HandFrame, claimed map[string]bool) string {
	if hand.Handedness == "Left" || hand.Handedness == "Right" {
		claimed[hand.Handedness] = true
		return hand.Handedness
	}

	wrist := hand.Wrist()

	bestID := ""
	bestDist := t.maxJump
	for id, last := range t.wrists {
		if claimed[id] {
			continue
		}
		if d := detector.Distance(wrist, last); d < bestDist {
			bestID = id
			bestDist = d
		}
	}

	if bestID == "" {
		bestID = "hand-" + uuid.New().String()[:8]
	}

	claimed[bestID] = true
	t.wrists[bestID] = wrist
	return bestID
}

// forget drops a synthetic track. Labeled ids are not tracked here.
func (t *handTracker) forget(id string) {
	delete(t.wrists, id)
}

// reset clears all synthetic tracks.
func (t *handTracker) reset() {
	t.wrists = make(map[string]detector.Point3D)
}
