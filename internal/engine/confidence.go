package engine

// Scoring bonuses for the single-hand path. The two-hand correlator
// computes its confidence inline from the measured distance change.
const (
	stabilityBonus = 0.1
	historyBonus   = 0.05
)

// scoreConfidence composes a base confidence with stability and history
// bonuses, capped at MaxConfidence.
func scoreConfidence(base float64, stable, hasHistory bool) float64 {
	score := base
	if stable {
		score += stabilityBonus
	}
	if hasHistory {
		score += historyBonus
	}
	if score > MaxConfidence {
		score = MaxConfidence
	}
	return score
}
