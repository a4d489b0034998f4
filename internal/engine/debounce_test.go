package engine

import "testing"

func TestDebounceGate_AdmitAndSuppress(t *testing.T) {
	g := newDebounceGate()
	cfg := DefaultConfig()
	key := GestureKey{Type: GesturePinch, Handedness: HandRight}

	if !g.admit(key, 1000, cfg) {
		t.Fatal("first emission should be admitted")
	}
	if g.admit(key, 1150, cfg) {
		t.Error("emission 150ms after the first should be suppressed")
	}
	if !g.admit(key, 1400, cfg) {
		t.Error("emission at the debounce boundary should be admitted")
	}
}

func TestDebounceGate_RejectionKeepsWindowAnchor(t *testing.T) {
	g := newDebounceGate()
	cfg := DefaultConfig()
	key := GestureKey{Type: GestureSpread, Handedness: HandLeft}

	g.admit(key, 0, cfg)

	// Rejected attempts must not slide the window forward.
	for _, now := range []int64{100, 200, 300} {
		if g.admit(key, now, cfg) {
			t.Fatalf("emission at %dms admitted inside the window", now)
		}
	}
	if !g.admit(key, 400, cfg) {
		t.Error("emission at 400ms should be admitted despite rejected attempts")
	}
}

func TestDebounceGate_KeysAreIndependent(t *testing.T) {
	g := newDebounceGate()
	cfg := DefaultConfig()

	if !g.admit(GestureKey{Type: GesturePinch, Handedness: HandRight}, 0, cfg) {
		t.Fatal("first right pinch should be admitted")
	}
	// Same type, other hand: separate key.
	if !g.admit(GestureKey{Type: GesturePinch, Handedness: HandLeft}, 10, cfg) {
		t.Error("left pinch suppressed by right pinch")
	}
	// Same hand, other type: separate key.
	if !g.admit(GestureKey{Type: GestureSpread, Handedness: HandRight}, 20, cfg) {
		t.Error("right spread suppressed by right pinch")
	}
}

func TestDebounceGate_PairGesturesUseLongerWindow(t *testing.T) {
	g := newDebounceGate()
	cfg := DefaultConfig()
	key := GestureKey{Type: GestureClap, Handedness: HandBoth}

	g.admit(key, 0, cfg)

	if g.admit(key, 500, cfg) {
		t.Error("clap re-admitted after 500ms, want the 800ms pair window")
	}
	if !g.admit(key, 800, cfg) {
		t.Error("clap should be re-admitted after 800ms")
	}
}

func TestDebounceGate_WindowIsTunable(t *testing.T) {
	g := newDebounceGate()
	cfg := DefaultConfig()
	cfg.DebounceMs = 100
	key := GestureKey{Type: GesturePinch, Handedness: HandRight}

	g.admit(key, 0, cfg)
	if !g.admit(key, 100, cfg) {
		t.Error("shortened window not honored")
	}
}
