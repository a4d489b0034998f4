package app

import (
	"log"
	"time"

	"github.com/ayusman/mudra/internal/engine"
)

// runPipeline is the main detection loop. It manages the transitions
// between idle and active tick rates based on the presence gate.
//
// Per tick:
//  1. Read a frame from the camera.
//  2. Presence gate: idle rate until someone appears, active rate while
//     they stay, back to idle after IdleTimeoutMs of absence.
//  3. Hand detection on the frame.
//  4. Feed the landmarks to the engine as one frame-synchronous input.
//
// Frames that arrive while a tick is still processing are never queued;
// the ticker simply fires again with the next live frame.
func (a *App) runPipeline(stopCh chan struct{}) {
	defer a.done.Done()

	activeMode := false
	lastPresence := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			present, _ := a.presence.Observe(frame)

			if present {
				lastPresence = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					ticker.Reset(time.Second / time.Duration(ActiveFPS))
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastPresence) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					ticker.Reset(time.Second / time.Duration(IdleFPS))
					log.Println("Switched to idle mode")
				}
			}

			a.mu.RLock()
			d := a.detector
			a.mu.RUnlock()

			if !activeMode || d == nil {
				frame.Close()
				continue
			}

			hands, err := d.Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			// Empty frames still advance the engine clock so stale
			// hand state ages out.
			a.engine.ProcessFrame(engine.FrameInputFrom(hands), time.Now())
		}
	}
}
