package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
)

// Checker evaluates the assignment constraints as pure predicates over the
// current grid plus a candidate (performer, show) pair. It never mutates
// the grid.
type Checker struct {
	timeline *Timeline
}

// NewChecker creates a checker over the given timeline.
func NewChecker(timeline *Timeline) *Checker {
	return &Checker{timeline: timeline}
}

// CanAssign runs every constraint for assigning the cast member to the role
// in the show. The checks are conjunctive: the assignment is legal only if
// all pass. On failure the second return names the violated constraint.
func (c *Checker) CanAssign(grid *Grid, member model.CastMember, role model.Role, showID string) (bool, string) {
	if !member.IsEligible(role) {
		return false, fmt.Sprintf("%s is not eligible for %s", member.Name, role)
	}

	if grid.HasPerformer(showID, member.Name) {
		return false, fmt.Sprintf("%s already holds a role in this show", member.Name)
	}

	if grid.ShowCount(member.Name) >= MaxShowsPerWeek {
		return false, fmt.Sprintf("%s is already booked for %d shows this week", member.Name, MaxShowsPerWeek)
	}

	ordinals := c.withCandidate(grid, member.Name, showID)

	if run := longestRun(c.timeline, ordinals); run > MaxConsecutiveShows {
		return false, fmt.Sprintf("%s would reach %d consecutive shows (ceiling %d)", member.Name, run, MaxConsecutiveShows)
	}

	if c.createsWeekendDoubleDouble(ordinals) {
		return false, fmt.Sprintf("%s would play a double-show Saturday into a double-show Sunday", member.Name)
	}

	return true, ""
}

// withCandidate merges the candidate show's ordinal into the performer's
// existing sorted ordinals.
func (c *Checker) withCandidate(grid *Grid, performer, showID string) []int {
	ordinals := grid.Ordinals(performer)
	candidate, ok := c.timeline.Ordinal(showID)
	if !ok {
		return ordinals
	}
	for _, o := range ordinals {
		if o == candidate {
			return ordinals
		}
	}
	ordinals = append(ordinals, candidate)
	sort.Ints(ordinals)
	return ordinals
}

// createsWeekendDoubleDouble reports whether the performer's shows contain a
// double-show Saturday immediately followed by a double-show Sunday. The
// rule is deliberately day-of-week based rather than "any adjacent double
// days": back-to-back two-show days are only rejected across a weekend.
func (c *Checker) createsWeekendDoubleDouble(ordinals []int) bool {
	perDate := make(map[string]int)
	for _, o := range ordinals {
		perDate[c.timeline.ShowAt(o).Date]++
	}

	for date, count := range perDate {
		if count < 2 {
			continue
		}
		day, err := time.Parse("2006-01-02", date)
		if err != nil || day.Weekday() != time.Saturday {
			continue
		}
		sunday := day.AddDate(0, 0, 1).Format("2006-01-02")
		if perDate[sunday] >= 2 {
			return true
		}
	}
	return false
}
