package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
)

func TestBuildSequences_GapOverTwoDaysBreaksRun(t *testing.T) {
	// Monday, Tuesday, then Friday: 72h from Tuesday breaks the run.
	timeline := NewTimeline([]model.Show{
		perfShow("mon", "2026-03-02", "19:30"),
		perfShow("tue", "2026-03-03", "19:30"),
		perfShow("fri", "2026-03-06", "19:30"),
	})

	sequences := BuildSequences(timeline, []int{0, 1, 2})

	require.Len(t, sequences, 2)
	assert.Equal(t, 2, sequences[0].Count)
	assert.Equal(t, "2026-03-02", sequences[0].StartDate)
	assert.Equal(t, "2026-03-03", sequences[0].EndDate)
	assert.Equal(t, 1, sequences[1].Count)
	assert.Equal(t, "2026-03-06", sequences[1].StartDate)
}

func TestBuildSequences_ExactFortyEightHourGapKeepsRun(t *testing.T) {
	// Tuesday 19:30 to Thursday 19:30 is exactly 48h, still consecutive.
	timeline := NewTimeline([]model.Show{
		perfShow("tue", "2026-03-03", "19:30"),
		perfShow("thu", "2026-03-05", "19:30"),
	})

	sequences := BuildSequences(timeline, []int{0, 1})

	require.Len(t, sequences, 1)
	assert.Equal(t, 2, sequences[0].Count)
}

func TestBuildSequences_SameDayDoubleCountsTwice(t *testing.T) {
	timeline := NewTimeline([]model.Show{
		perfShow("mat", "2026-03-07", "14:30"),
		perfShow("eve", "2026-03-07", "19:30"),
	})

	sequences := BuildSequences(timeline, []int{0, 1})

	require.Len(t, sequences, 1)
	assert.Equal(t, 2, sequences[0].Count)
	assert.Equal(t, "2026-03-07", sequences[0].StartDate)
	assert.Equal(t, "2026-03-07", sequences[0].EndDate)
}

func TestBuildSequences_Empty(t *testing.T) {
	timeline := NewTimeline(dailyWeek(3))
	assert.Nil(t, BuildSequences(timeline, nil))
}

func TestLongestRun(t *testing.T) {
	timeline := NewTimeline(dailyWeek(7))

	assert.Equal(t, 0, longestRun(timeline, nil))
	assert.Equal(t, 3, longestRun(timeline, []int{0, 1, 2}))
	// 0-1 consecutive, then the jump to 4 breaks, 4-5-6 is the longest.
	assert.Equal(t, 3, longestRun(timeline, []int{0, 1, 4, 5, 6}))
}
