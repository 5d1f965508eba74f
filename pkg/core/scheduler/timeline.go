package scheduler

import (
	"sort"
	"time"

	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
)

// Timeline indexes the performance subset of a schedule week. It holds the
// performance shows sorted by (date, time) and a showID to ordinal map.
// A Timeline is a cache over the show list: rebuild it whenever the shows
// change, never mutate it in place.
type Timeline struct {
	shows    []model.Show
	ordinals map[string]int
}

// NewTimeline builds a timeline from the full show list. Non-performance
// entries (travel, day off) are excluded. Sorting is stable, so shows that
// share a date and time keep their input order.
func NewTimeline(all []model.Show) *Timeline {
	t := &Timeline{
		shows:    make([]model.Show, 0, len(all)),
		ordinals: make(map[string]int),
	}

	for _, show := range all {
		if show.IsPerformance() {
			t.shows = append(t.shows, show)
		}
	}

	// Lexicographic comparison works because dates are 2006-01-02 and
	// times are zero-padded 15:04.
	sort.SliceStable(t.shows, func(i, j int) bool {
		if t.shows[i].Date != t.shows[j].Date {
			return t.shows[i].Date < t.shows[j].Date
		}
		return t.shows[i].Time < t.shows[j].Time
	})

	for i, show := range t.shows {
		t.ordinals[show.ID] = i
	}

	return t
}

// Len returns the number of performance shows.
func (t *Timeline) Len() int {
	return len(t.shows)
}

// Shows returns the sorted performance shows.
func (t *Timeline) Shows() []model.Show {
	return t.shows
}

// ShowAt returns the performance show at the given ordinal.
func (t *Timeline) ShowAt(ordinal int) model.Show {
	return t.shows[ordinal]
}

// Ordinal returns the 0-based position of a show in the sorted performance
// sequence. The second return is false for unknown or non-performance shows.
func (t *Timeline) Ordinal(showID string) (int, bool) {
	ordinal, ok := t.ordinals[showID]
	return ordinal, ok
}

// StartTime returns the combined date+time of the show at the given ordinal.
// Shows with an unparseable time fall back to midnight on their date.
func (t *Timeline) StartTime(ordinal int) time.Time {
	return showStart(t.shows[ordinal])
}

// showStart parses a show's date and wall time into a single instant.
func showStart(show model.Show) time.Time {
	day, err := time.Parse("2006-01-02", show.Date)
	if err != nil {
		return time.Time{}
	}
	clock, err := time.Parse("15:04", show.Time)
	if err != nil {
		return day
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
}
