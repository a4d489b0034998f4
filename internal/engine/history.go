package engine

// HistoryEntry is one timestamped measurement derived from one or two
// hands. Single-hand histories record only Distance (the pinch distance);
// pair histories record the pinch-center separation and its axis spreads.
type HistoryEntry struct {
	Timestamp        int64 // milliseconds
	Distance         float64
	HorizontalSpread float64
	VerticalSpread   float64
}

// HistoryWindow is a fixed-capacity ring buffer of HistoryEntry. Entries
// are timestamp-monotonic; the oldest entry is evicted once the window is
// full. The fixed backing array keeps the frame-rate path allocation free
// after construction.
type HistoryWindow struct {
	entries []HistoryEntry
	head    int // next write slot
	count   int
}

// NewHistoryWindow creates a window with the given capacity.
func NewHistoryWindow(capacity int) *HistoryWindow {
	if capacity < 1 {
		capacity = 1
	}
	return &HistoryWindow{entries: make([]HistoryEntry, capacity)}
}

// Push appends an entry, evicting the oldest when the window is full.
// Entries that would break timestamp monotonicity are dropped.
func (w *HistoryWindow) Push(e HistoryEntry) {
	if latest, ok := w.Back(0); ok && e.Timestamp < latest.Timestamp {
		return
	}
	w.entries[w.head] = e
	w.head = (w.head + 1) % len(w.entries)
	if w.count < len(w.entries) {
		w.count++
	}
}

// Len returns the number of buffered entries.
func (w *HistoryWindow) Len() int {
	return w.count
}

// Full reports whether the window is at capacity.
func (w *HistoryWindow) Full() bool {
	return w.count == len(w.entries)
}

// Back returns the entry n positions behind the most recent one; Back(0)
// is the latest entry. The second return value is false when fewer than
// n+1 entries are buffered.
func (w *HistoryWindow) Back(n int) (HistoryEntry, bool) {
	if n < 0 || n >= w.count {
		return HistoryEntry{}, false
	}
	idx := (w.head - 1 - n + 2*len(w.entries)) % len(w.entries)
	return w.entries[idx], true
}
