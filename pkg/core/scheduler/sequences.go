package scheduler

import "github.com/undiescoverd/stomp-scheduler/pkg/core/model"

// consecutive reports whether two show ordinals count as consecutive
// appearances: their start instants are at most maxConsecutiveGap apart.
func (t *Timeline) consecutive(earlier, later int) bool {
	gap := t.StartTime(later).Sub(t.StartTime(earlier))
	return gap >= 0 && gap <= maxConsecutiveGap
}

// BuildSequences walks a performer's sorted show ordinals and groups them
// into consecutive runs. A run breaks when the gap between two adjacent
// appearances exceeds two calendar days.
func BuildSequences(timeline *Timeline, ordinals []int) []model.ConsecutiveSequence {
	if len(ordinals) == 0 {
		return nil
	}

	var sequences []model.ConsecutiveSequence
	start := 0
	for i := 1; i <= len(ordinals); i++ {
		if i < len(ordinals) && timeline.consecutive(ordinals[i-1], ordinals[i]) {
			continue
		}
		sequences = append(sequences, model.ConsecutiveSequence{
			StartIndex: ordinals[start],
			EndIndex:   ordinals[i-1],
			Count:      i - start,
			StartDate:  timeline.ShowAt(ordinals[start]).Date,
			EndDate:    timeline.ShowAt(ordinals[i-1]).Date,
		})
		start = i
	}
	return sequences
}

// longestRun returns the length of the longest consecutive run in the
// performer's sorted show ordinals.
func longestRun(timeline *Timeline, ordinals []int) int {
	longest := 0
	for _, seq := range BuildSequences(timeline, ordinals) {
		if seq.Count > longest {
			longest = seq.Count
		}
	}
	return longest
}
