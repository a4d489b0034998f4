package engine

import "testing"

func TestHistoryWindow_PushAndBack(t *testing.T) {
	w := NewHistoryWindow(3)

	if w.Len() != 0 {
		t.Errorf("Len() = %d, want 0", w.Len())
	}
	if _, ok := w.Back(0); ok {
		t.Error("Back(0) on empty window should report false")
	}

	w.Push(HistoryEntry{Timestamp: 10, Distance: 0.1})
	w.Push(HistoryEntry{Timestamp: 20, Distance: 0.2})

	if w.Full() {
		t.Error("window should not be full at 2 of 3")
	}

	latest, ok := w.Back(0)
	if !ok || latest.Distance != 0.2 {
		t.Errorf("Back(0) = %+v, %v; want latest entry", latest, ok)
	}

	oldest, ok := w.Back(1)
	if !ok || oldest.Distance != 0.1 {
		t.Errorf("Back(1) = %+v, %v; want oldest entry", oldest, ok)
	}

	if _, ok := w.Back(2); ok {
		t.Error("Back(2) with 2 entries should report false")
	}
}

func TestHistoryWindow_EvictsOldest(t *testing.T) {
	w := NewHistoryWindow(3)
	for i := 1; i <= 5; i++ {
		w.Push(HistoryEntry{Timestamp: int64(i * 10), Distance: float64(i)})
	}

	if !w.Full() {
		t.Error("window should be full")
	}
	if w.Len() != 3 {
		t.Errorf("Len() = %d, want 3", w.Len())
	}

	// Remaining entries are the last three pushed.
	for n, want := range []float64{5, 4, 3} {
		e, ok := w.Back(n)
		if !ok || e.Distance != want {
			t.Errorf("Back(%d).Distance = %f, want %f", n, e.Distance, want)
		}
	}
}

func TestHistoryWindow_RejectsNonMonotonicTimestamps(t *testing.T) {
	w := NewHistoryWindow(4)
	w.Push(HistoryEntry{Timestamp: 100})
	w.Push(HistoryEntry{Timestamp: 50}) // out of order, dropped

	if w.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after dropping stale entry", w.Len())
	}

	// Equal timestamps are allowed.
	w.Push(HistoryEntry{Timestamp: 100, Distance: 1})
	if w.Len() != 2 {
		t.Errorf("Len() = %d, want 2", w.Len())
	}
}
