package scheduler

// Default scoring weights
const (
	// DefaultMorningWeight is added to every morning slot
	DefaultMorningWeight = 5.0

	// DefaultDistributionPenalty is subtracted per morning slot already used on the same day
	DefaultDistributionPenalty = 2.0

	// DefaultLabBlockBonus rewards lab slots whose following period is also free
	DefaultLabBlockBonus = 3.0
)

// ScoreWeights holds the tunables of the slot scorer
type ScoreWeights struct {
	MorningWeight       float64
	DistributionPenalty float64
	LabBlockBonus       float64
}

// DefaultScoreWeights returns the weights with the given morning weight and the
// standard penalty and lab bonus
func DefaultScoreWeights(morningWeight float64) ScoreWeights {
	return ScoreWeights{
		MorningWeight:       morningWeight,
		DistributionPenalty: DefaultDistributionPenalty,
		LabBlockBonus:       DefaultLabBlockBonus,
	}
}

// Score computes how desirable a valid slot is for the subject. Higher is better; only the
// relative order of scores matters.
//
//   - morning slots get MorningWeight
//   - morning slots lose DistributionPenalty for each morning already used that day
//   - lab subjects gain LabBlockBonus when the next period in the same room is also valid
func Score(subject Subject, slot Slot, state *ScheduleState, weights ScoreWeights) float64 {
	score := 0.0

	if IsMorning(slot.Time) {
		score += weights.MorningWeight
		score -= weights.DistributionPenalty * float64(state.MorningUsage[slot.Day])
	}

	if subject.IsLab() && IsValid(subject, slot.Next(), state) {
		score += weights.LabBlockBonus
	}

	return score
}
