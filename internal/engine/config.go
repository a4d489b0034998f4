package engine

// Default tuning values. All of these are externally tunable through Config;
// the defaults match the thresholds the recognizer was calibrated with.
const (
	DefaultPinchThreshold    = 0.05
	DefaultSpreadThreshold   = 0.25
	DefaultMinDistanceChange = 0.045
	DefaultMinDirectionRatio = 2.0
	DefaultClapDistance      = 0.12
	DefaultDebounceMs        = 400
	DefaultPairDebounceMs    = 800
	DefaultMinConfidence     = 0.75
	DefaultStabilityFrames   = 4
	DefaultMaxHandJitter     = 0.02
	DefaultHistorySize       = 7
	DefaultMinLookbackMs     = 400
	DefaultStaleAfterFrames  = 60
	DefaultMaxTrackJump      = 0.2
	DefaultReplayLogSize     = 64

	// MaxConfidence caps every emitted confidence score.
	MaxConfidence = 0.95
)

// Config holds all recognizer tunables. Zero values are replaced by the
// defaults when the engine is constructed.
type Config struct {
	// PinchThreshold is the thumb-index distance below which a hand counts
	// as pinching.
	PinchThreshold float64 `json:"pinchThreshold"`

	// SpreadThreshold is the index-pinky distance above which a hand counts
	// as spread.
	SpreadThreshold float64 `json:"spreadThreshold"`

	// MinDistanceChange is the minimum pinch-center separation change for a
	// directional gesture.
	MinDistanceChange float64 `json:"minDistanceChange"`

	// MinDirectionRatio is how dominant one axis must be over the other
	// before a directional gesture is classified.
	MinDirectionRatio float64 `json:"minDirectionRatio"`

	// ClapDistance is the middle-MCP distance below which two open hands
	// count as a clap.
	ClapDistance float64 `json:"clapDistance"`

	// DebounceMs is the minimum re-emission interval for single-hand
	// gesture keys, PairDebounceMs for two-hand keys.
	DebounceMs     int64 `json:"debounceMs"`
	PairDebounceMs int64 `json:"pairDebounceMs"`

	// MinConfidence discards any gesture scoring below it.
	MinConfidence float64 `json:"minConfidence"`

	// StabilityFrames and MaxHandJitter control the per-hand jitter filter.
	StabilityFrames int     `json:"stabilityFrames"`
	MaxHandJitter   float64 `json:"maxHandJitter"`

	// HistorySize is the ring-buffer capacity for measurement history.
	HistorySize int `json:"historySize"`

	// MinLookbackMs is the minimum time span between the compared history
	// entries in directional classification.
	MinLookbackMs int64 `json:"minLookbackMs"`

	// StaleAfterFrames is the number of frames a hand or pair may go
	// unreported before its buffers are evicted.
	StaleAfterFrames int `json:"staleAfterFrames"`

	// MaxTrackJump is the wrist travel radius within which an unlabeled
	// hand is matched to an existing synthetic track.
	MaxTrackJump float64 `json:"maxTrackJump"`

	// ReplayLogSize bounds the diagnostics log of recent events.
	ReplayLogSize int `json:"replayLogSize"`
}

// DefaultConfig returns the calibrated default tunables.
func DefaultConfig() Config {
	return Config{
		PinchThreshold:    DefaultPinchThreshold,
		SpreadThreshold:   DefaultSpreadThreshold,
		MinDistanceChange: DefaultMinDistanceChange,
		MinDirectionRatio: DefaultMinDirectionRatio,
		ClapDistance:      DefaultClapDistance,
		DebounceMs:        DefaultDebounceMs,
		PairDebounceMs:    DefaultPairDebounceMs,
		MinConfidence:     DefaultMinConfidence,
		StabilityFrames:   DefaultStabilityFrames,
		MaxHandJitter:     DefaultMaxHandJitter,
		HistorySize:       DefaultHistorySize,
		MinLookbackMs:     DefaultMinLookbackMs,
		StaleAfterFrames:  DefaultStaleAfterFrames,
		MaxTrackJump:      DefaultMaxTrackJump,
		ReplayLogSize:     DefaultReplayLogSize,
	}
}

// withDefaults fills any zero field with its default value so a partially
// populated Config (for example one loaded from persisted settings) is
// always usable.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PinchThreshold <= 0 {
		c.PinchThreshold = d.PinchThreshold
	}
	if c.SpreadThreshold <= 0 {
		c.SpreadThreshold = d.SpreadThreshold
	}
	if c.MinDistanceChange <= 0 {
		c.MinDistanceChange = d.MinDistanceChange
	}
	if c.MinDirectionRatio <= 0 {
		c.MinDirectionRatio = d.MinDirectionRatio
	}
	if c.ClapDistance <= 0 {
		c.ClapDistance = d.ClapDistance
	}
	if c.DebounceMs <= 0 {
		c.DebounceMs = d.DebounceMs
	}
	if c.PairDebounceMs <= 0 {
		c.PairDebounceMs = d.PairDebounceMs
	}
	if c.MinConfidence <= 0 {
		c.MinConfidence = d.MinConfidence
	}
	if c.StabilityFrames <= 0 {
		c.StabilityFrames = d.StabilityFrames
	}
	if c.MaxHandJitter <= 0 {
		c.MaxHandJitter = d.MaxHandJitter
	}
	if c.HistorySize <= 0 {
		c.HistorySize = d.HistorySize
	}
	if c.MinLookbackMs <= 0 {
		c.MinLookbackMs = d.MinLookbackMs
	}
	if c.StaleAfterFrames <= 0 {
		c.StaleAfterFrames = d.StaleAfterFrames
	}
	if c.MaxTrackJump <= 0 {
		c.MaxTrackJump = d.MaxTrackJump
	}
	if c.ReplayLogSize <= 0 {
		c.ReplayLogSize = d.ReplayLogSize
	}
	return c
}
