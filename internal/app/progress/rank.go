// Package progress implements rank derivation and the reward multiplier
// pipeline. Everything here is pure: no state mutation, no failure modes.
package progress

// RankLabels are the eight tiers in ascending order.
var RankLabels = []string{"E", "D", "C", "B", "A", "S", "SS", "SSS"}

// DefaultRankStep is the spacing between consecutive rank thresholds.
const DefaultRankStep = 85.0

// RankTable maps attribute values onto the fixed ascending rank ladder.
type RankTable struct {
	step float64
}

// NewRankTable builds a ladder with evenly spaced thresholds. A step of
// zero or less falls back to the default.
func NewRankTable(step float64) RankTable {
	if step <= 0 {
		step = DefaultRankStep
	}
	return RankTable{step: step}
}

// DefaultRankTable returns the standard E…SSS ladder (step 85).
func DefaultRankTable() RankTable {
	return NewRankTable(DefaultRankStep)
}

// Threshold returns the lower bound of the given tier index.
func (t RankTable) Threshold(i int) float64 {
	return float64(i) * t.step
}

// Calculate returns the current rank, the next rank, and the fractional
// progress toward it, clamped to [0,1]. At the top tier next == current
// and progress is 1.0.
func (t RankTable) Calculate(value float64) (current, next string, progress float64) {
	idx := 0
	for i := range RankLabels {
		if value >= t.Threshold(i) {
			idx = i
		}
	}

	current = RankLabels[idx]
	if idx == len(RankLabels)-1 {
		return current, current, 1.0
	}

	next = RankLabels[idx+1]
	span := t.Threshold(idx+1) - t.Threshold(idx)
	progress = (value - t.Threshold(idx)) / span
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	return current, next, progress
}

// RankFor returns just the current rank label for a value.
func (t RankTable) RankFor(value float64) string {
	current, _, _ := t.Calculate(value)
	return current
}

// RankIndex returns the 1-based ladder position of a rank label,
// or 0 for an unknown label.
func RankIndex(label string) int {
	for i, l := range RankLabels {
		if l == label {
			return i + 1
		}
	}
	return 0
}
