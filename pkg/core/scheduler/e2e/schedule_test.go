package e2e

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undiescoverd/stomp-scheduler/internal/config"
	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
	"github.com/undiescoverd/stomp-scheduler/pkg/core/scheduler"
)

// touringWeek is a typical company week: Monday dark, single shows
// Tuesday through Saturday.
func touringWeek() []model.Show {
	shows := []model.Show{
		{ID: "mon-off", Date: "2026-03-02", Time: "00:00", CallTime: model.CallTimeTBC, Status: model.StatusDayOff},
	}
	dates := []string{"2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06", "2026-03-07"}
	for i, date := range dates {
		shows = append(shows, model.Show{
			ID:       fmt.Sprintf("perf-%d", i+1),
			Date:     date,
			Time:     "19:30",
			CallTime: "18:00",
			Status:   model.StatusPerformance,
		})
	}
	return shows
}

func TestScheduleWeek_EndToEnd(t *testing.T) {
	shows := touringWeek()
	cast := (&config.Config{}).FallbackRoster()

	outcome := scheduler.Generate(scheduler.GenerationConfig{
		Shows: shows,
		Cast:  cast,
		Rand:  rand.New(rand.NewSource(99)),
	})
	require.True(t, outcome.Success, "generation failed: %v", outcome.Errors)

	// Five performances, eight roles each, and an OFF row for everyone
	// not performing.
	roleRows := 0
	offRowsPerShow := make(map[string]int)
	for _, a := range outcome.Assignments {
		if a.Role == model.RoleOff {
			offRowsPerShow[a.ShowID]++
		} else {
			roleRows++
		}
	}
	assert.Equal(t, 40, roleRows)
	for showID, count := range offRowsPerShow {
		assert.Equal(t, len(cast)-8, count, "unexpected OFF rows in %s", showID)
	}

	// The generated schedule survives independent re-validation.
	basic := scheduler.Validate(shows, outcome.Assignments, cast)
	assert.True(t, basic.IsValid, "errors: %v", basic.Errors)
	assert.Empty(t, basic.Errors)

	report := scheduler.ValidateComprehensive(shows, outcome.Assignments, cast)
	assert.True(t, report.IsValid)
	assert.False(t, report.HasCritical())
	assert.GreaterOrEqual(t, report.OverallScore, 80)

	for _, rc := range report.RoleCompleteness {
		assert.Equal(t, 8, rc.FilledRoles, "incomplete show %s", rc.ShowID)
	}
}

func TestScheduleWeek_FatigueLimitsHold(t *testing.T) {
	shows := touringWeek()
	cast := (&config.Config{}).FallbackRoster()

	outcome := scheduler.Generate(scheduler.GenerationConfig{
		Shows: shows,
		Cast:  cast,
		Rand:  rand.New(rand.NewSource(100)),
	})
	require.True(t, outcome.Success, "generation failed: %v", outcome.Errors)

	perPerformer := make(map[string]int)
	for _, a := range outcome.Assignments {
		if a.Role != model.RoleOff {
			perPerformer[a.Performer]++
		}
	}
	for name, count := range perPerformer {
		assert.LessOrEqual(t, count, 6, "%s is over the weekly cap", name)
	}
}

func TestScheduleWeek_RedDayRules(t *testing.T) {
	shows := touringWeek()
	cast := (&config.Config{}).FallbackRoster()

	outcome := scheduler.Generate(scheduler.GenerationConfig{
		Shows: shows,
		Cast:  cast,
		Rand:  rand.New(rand.NewSource(101)),
	})
	require.True(t, outcome.Success, "generation failed: %v", outcome.Errors)

	showDates := make(map[string]string)
	for _, show := range shows {
		showDates[show.ID] = show.Date
	}

	redDates := make(map[string]map[string]bool)
	redPerDate := make(map[string]int)
	for _, a := range outcome.Assignments {
		if !a.IsRedDay {
			continue
		}
		// RED is a flavor of OFF, never attached to a performing row.
		require.Equal(t, model.RoleOff, a.Role)
		if redDates[a.Performer] == nil {
			redDates[a.Performer] = make(map[string]bool)
		}
		date := showDates[a.ShowID]
		if !redDates[a.Performer][date] {
			redPerDate[date]++
		}
		redDates[a.Performer][date] = true
	}

	for name, dates := range redDates {
		assert.Len(t, dates, 1, "%s holds more than one RED day", name)
	}
	for date, count := range redPerDate {
		assert.LessOrEqual(t, count, 3, "too many RED performers on %s", date)
	}
}
