package scheduler

import (
	"sort"

	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
)

// AllocateOffDays post-processes a filled (or partially filled) grid: every
// cast member not performing in a show gets an OFF assignment, and a subset
// of OFF performers per date is flagged RED (fully unavailable, not
// callable for emergency cover).
//
// RED allocation rules:
//   - At most RedLimitSingleShowDay RED performers on a single-show date
//   - At most RedLimitDoubleShowDay on a double-show date
//   - At most one RED day per performer for the whole run
//   - A performer must be OFF for every show on the date to qualify
//
// Single-show dates are processed first so that double-show dates appearing
// earlier in the week cannot starve RED allocation.
func AllocateOffDays(timeline *Timeline, cast []model.CastMember, grid *Grid) []model.Assignment {
	assignments := grid.Assignments()
	if timeline.Len() == 0 {
		return assignments
	}

	showsByDate := make(map[string][]int)
	for ordinal := 0; ordinal < timeline.Len(); ordinal++ {
		date := timeline.ShowAt(ordinal).Date
		showsByDate[date] = append(showsByDate[date], ordinal)
	}

	dates := make([]string, 0, len(showsByDate))
	for date := range showsByDate {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool {
		singleI := len(showsByDate[dates[i]]) == 1
		singleJ := len(showsByDate[dates[j]]) == 1
		if singleI != singleJ {
			return singleI
		}
		return dates[i] < dates[j]
	})

	redDates := make(map[string]string) // normalized name -> date of their RED day
	for _, date := range dates {
		limit := RedLimitSingleShowDay
		if len(showsByDate[date]) > 1 {
			limit = RedLimitDoubleShowDay
		}

		granted := 0
		for _, member := range cast {
			if granted >= limit {
				break
			}
			name := model.NormalizeName(member.Name)
			if _, has := redDates[name]; has {
				continue
			}
			if !offAllDay(grid, timeline, showsByDate[date], member.Name) {
				continue
			}
			redDates[name] = date
			granted++
		}
	}

	for ordinal := 0; ordinal < timeline.Len(); ordinal++ {
		show := timeline.ShowAt(ordinal)
		for _, member := range cast {
			if grid.HasPerformer(show.ID, member.Name) {
				continue
			}
			assignments = append(assignments, model.Assignment{
				ShowID:    show.ID,
				Role:      model.RoleOff,
				Performer: member.Name,
				IsRedDay:  redDates[model.NormalizeName(member.Name)] == show.Date,
			})
		}
	}

	return assignments
}

// offAllDay reports whether the performer is OFF in every show on the date.
func offAllDay(grid *Grid, timeline *Timeline, ordinals []int, performer string) bool {
	for _, ordinal := range ordinals {
		if grid.HasPerformer(timeline.ShowAt(ordinal).ID, performer) {
			return false
		}
	}
	return true
}
