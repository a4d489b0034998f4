package engine

// debounceGate enforces the minimum re-emission interval per gesture key.
// It is the sole guard against duplicate emissions: no two events sharing
// (type, handedness) pass the gate closer together than the window
// configured for that gesture type.
type debounceGate struct {
	last map[GestureKey]int64
}

func newDebounceGate() *debounceGate {
	return &debounceGate{last: make(map[GestureKey]int64)}
}

// admit reports whether an event with the given key may be emitted at
// `now`, and records the emission time when it may. Rejected events leave
// the recorded time untouched.
func (g *debounceGate) admit(key GestureKey, now int64, cfg Config) bool {
	if last, ok := g.last[key]; ok && now-last < debounceWindow(key.Type, cfg) {
		return false
	}
	g.last[key] = now
	return true
}

// reset clears all recorded emission times.
func (g *debounceGate) reset() {
	g.last = make(map[GestureKey]int64)
}

// debounceWindow returns the configured interval for a gesture type:
// two-hand gestures use the longer pair window.
func debounceWindow(t GestureType, cfg Config) int64 {
	switch t {
	case GesturePinch, GestureSpread:
		return cfg.DebounceMs
	default:
		return cfg.PairDebounceMs
	}
}
