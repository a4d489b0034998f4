package engine

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Engine is the gesture recognition engine. It owns all per-hand and
// per-pair buffers, the debounce state and the subscriber list; nothing
// outside the engine mutates them.
//
// ProcessFrame must not be invoked concurrently: the engine is designed
// for a single frame-driven caller that runs each pass to completion
// before the next. Callers that receive frames faster than they process
// them must drop or coalesce frames rather than overlap invocations.
// Subscribe, Unsubscribe and configuration access are safe from other
// goroutines.
type Engine struct {
	mu  sync.Mutex
	cfg Config

	stability   *StabilityFilter
	correlator  *pairCorrelator
	handHistory map[string]*HistoryWindow // pinch-distance history per hand
	debounce    *debounceGate
	tracker     *handTracker
	bus         *Bus

	frame    uint64
	handSeen map[string]uint64 // hand id -> frame last observed
	pairSeen map[string]uint64 // pair id -> frame last observed

	recent     []GestureEvent // bounded replay log for diagnostics
	recentHead int
	recentLen  int

	closed bool
}

// New creates an engine with the given tunables. Zero config fields fall
// back to the defaults.
func New(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:         cfg,
		stability:   NewStabilityFilter(cfg.StabilityFrames, cfg.MaxHandJitter),
		correlator:  newPairCorrelator(cfg.HistorySize),
		handHistory: make(map[string]*HistoryWindow),
		debounce:    newDebounceGate(),
		tracker:     newHandTracker(cfg.MaxTrackJump),
		bus:         NewBus(),
		handSeen:    make(map[string]uint64),
		pairSeen:    make(map[string]uint64),
		recent:      make([]GestureEvent, cfg.ReplayLogSize),
	}
}

// trackedHand is one validated hand within a ProcessFrame pass.
type trackedHand struct {
	frame      HandFrame
	id         string
	stable     bool
	hadHistory bool
}

// ProcessFrame ingests one landmark frame and returns the events emitted
// for it. Events are also published to subscribers, in detection order:
// the two-hand verdict first, then single-hand gestures in input order.
// Hands with incomplete landmark sets are dropped silently.
func (e *Engine) ProcessFrame(in FrameInput, now time.Time) []GestureEvent {
	e.mu.Lock()

	if e.closed {
		e.mu.Unlock()
		return nil
	}

	e.frame++
	nowMs := now.UnixMilli()

	claimed := make(map[string]bool)
	hands := make([]trackedHand, 0, 2)
	for _, h := range in.Hands {
		if !h.Valid() {
			continue
		}
		id := e.tracker.resolve(h, claimed)
		stable := e.stability.Observe(id, h.Wrist())
		e.handSeen[id] = e.frame

		win, ok := e.handHistory[id]
		if !ok {
			win = NewHistoryWindow(e.cfg.HistorySize)
			e.handHistory[id] = win
		}
		hadHistory := win.Len() > 0
		win.Push(HistoryEntry{Timestamp: nowMs, Distance: h.PinchDistance()})

		hands = append(hands, trackedHand{frame: h, id: id, stable: stable, hadHistory: hadHistory})
	}

	e.evictStale()

	var emitted []GestureEvent

	// Two-hand correlation runs before single-hand classification so clap
	// and directional events precede pinch/spread within a frame.
	if len(hands) == 2 && pairAllowed(hands[0].frame, hands[1].frame) {
		pairID := pairKey(hands[0].id, hands[1].id)
		e.pairSeen[pairID] = e.frame
		if g, ok := e.correlator.classify(hands[0].frame, hands[1].frame, pairID, nowMs, e.cfg); ok {
			ev := GestureEvent{
				Type:           g.Type,
				Handedness:     HandBoth,
				Confidence:     g.Confidence,
				Position:       g.Position,
				Timestamp:      nowMs,
				Direction:      g.Direction,
				Distance:       g.Distance,
				DistanceChange: g.DistanceChange,
			}
			if e.accept(ev) {
				emitted = append(emitted, ev)
			}
		}
	}

	for _, h := range hands {
		g, ok := classifyHand(h.frame, h.stable, e.cfg)
		if !ok {
			continue
		}
		// Only the pinch path earns the history bonus: the per-hand
		// window records pinch distance.
		hasHistory := g.Type == GesturePinch && h.hadHistory
		ev := GestureEvent{
			Type:       g.Type,
			Handedness: g.Handedness,
			Confidence: scoreConfidence(g.Base, h.stable, hasHistory),
			Position:   g.Position,
			Timestamp:  nowMs,
			Distance:   g.Distance,
		}
		if e.accept(ev) {
			emitted = append(emitted, ev)
		}
	}

	e.mu.Unlock()

	// Publish outside the engine lock so subscribers may call back into
	// the engine without deadlocking.
	for _, ev := range emitted {
		e.bus.Publish(ev)
	}

	return emitted
}

// accept runs the confidence filter and the debounce gate, recording the
// event in the replay log when it passes. Caller holds e.mu.
func (e *Engine) accept(ev GestureEvent) bool {
	if ev.Confidence < e.cfg.MinConfidence {
		return false
	}
	if !e.debounce.admit(ev.Key(), ev.Timestamp, e.cfg) {
		return false
	}
	e.record(ev)
	return true
}

// record appends an event to the bounded replay log.
func (e *Engine) record(ev GestureEvent) {
	if len(e.recent) == 0 {
		return
	}
	e.recent[e.recentHead] = ev
	e.recentHead = (e.recentHead + 1) % len(e.recent)
	if e.recentLen < len(e.recent) {
		e.recentLen++
	}
}

// evictStale drops buffers for hands and pairings that have not been
// reported for StaleAfterFrames frames. Debounce state is not evicted: its
// key space is bounded by the gesture type and handedness vocabulary.
// Caller holds e.mu.
func (e *Engine) evictStale() {
	stale := uint64(e.cfg.StaleAfterFrames)
	for id, seen := range e.handSeen {
		if e.frame-seen > stale {
			delete(e.handSeen, id)
			delete(e.handHistory, id)
			e.stability.Forget(id)
			e.tracker.forget(id)
		}
	}
	for id, seen := range e.pairSeen {
		if e.frame-seen > stale {
			delete(e.pairSeen, id)
			e.correlator.forget(id)
		}
	}
}

// pairAllowed rejects two-hand correlation when the detector reports the
// same handedness label for both hands. Two unlabeled hands are allowed:
// they carry distinct synthetic tracks.
func pairAllowed(a, b HandFrame) bool {
	if a.Handedness == "Unknown" || b.Handedness == "Unknown" {
		return true
	}
	return a.Handedness != b.Handedness
}

// pairKey builds an order-independent identity for a hand pairing.
func pairKey(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, "|")
}

// Subscribe registers a gesture event callback and returns the token to
// pass to Unsubscribe.
func (e *Engine) Subscribe(fn Subscriber) string {
	return e.bus.Subscribe(fn)
}

// Unsubscribe removes a subscription by token.
func (e *Engine) Unsubscribe(token string) {
	e.bus.Unsubscribe(token)
}

// Config returns the current tunables.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// SetConfig replaces the tunables. Buffers whose capacity depends on the
// config (stability window, history windows) are rebuilt and warm back up
// over the following frames.
func (e *Engine) SetConfig(cfg Config) {
	cfg = cfg.withDefaults()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	if cfg.StabilityFrames != e.cfg.StabilityFrames || cfg.MaxHandJitter != e.cfg.MaxHandJitter {
		e.stability = NewStabilityFilter(cfg.StabilityFrames, cfg.MaxHandJitter)
	}
	if cfg.HistorySize != e.cfg.HistorySize {
		e.correlator.resize(cfg.HistorySize)
		e.handHistory = make(map[string]*HistoryWindow)
	}
	if cfg.MaxTrackJump != e.cfg.MaxTrackJump {
		e.tracker = newHandTracker(cfg.MaxTrackJump)
	}
	if cfg.ReplayLogSize != e.cfg.ReplayLogSize {
		e.recent = make([]GestureEvent, cfg.ReplayLogSize)
		e.recentHead = 0
		e.recentLen = 0
	}
	e.cfg = cfg
}

// Recent returns the replay log of recently emitted events, oldest first.
func (e *Engine) Recent() []GestureEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]GestureEvent, 0, e.recentLen)
	start := (e.recentHead - e.recentLen + 2*len(e.recent)) % max(len(e.recent), 1)
	for i := 0; i < e.recentLen; i++ {
		out = append(out, e.recent[(start+i)%len(e.recent)])
	}
	return out
}

// Close clears all buffers, debounce state and subscribers. No event is
// published after Close returns.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.stability.Reset()
	e.correlator.reset()
	e.tracker.reset()
	e.debounce.reset()
	e.handHistory = make(map[string]*HistoryWindow)
	e.handSeen = make(map[string]uint64)
	e.pairSeen = make(map[string]uint64)
	e.recentLen = 0
	e.recentHead = 0
	e.mu.Unlock()

	e.bus.Close()
}
