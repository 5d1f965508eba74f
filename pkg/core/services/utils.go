package services

import (
	"time"

	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
	"github.com/undiescoverd/stomp-scheduler/pkg/db"
)

// showsFromRecords converts database show records into engine shows
func showsFromRecords(records []db.Show) []model.Show {
	shows := make([]model.Show, len(records))
	for i, r := range records {
		shows[i] = model.Show{
			ID:       r.ID,
			Date:     r.Date,
			Time:     r.Time,
			CallTime: r.CallTime,
			Status:   model.ShowStatus(r.Status),
		}
	}
	return shows
}

// assignmentsFromRecords converts database assignment records into engine
// assignments. Unknown role names are passed through untouched so the
// validator can report them.
func assignmentsFromRecords(records []db.Assignment) []model.Assignment {
	assignments := make([]model.Assignment, len(records))
	for i, r := range records {
		role := model.Role(r.Role)
		if parsed, ok := model.ParseRole(r.Role); ok {
			role = parsed
		}
		assignments[i] = model.Assignment{
			ShowID:    r.ShowID,
			Role:      role,
			Performer: r.Performer,
			IsRedDay:  r.IsRedDay,
		}
	}
	return assignments
}

// findLatestSchedule finds the schedule with the most recent week start
func findLatestSchedule(schedules []db.Schedule) *db.Schedule {
	if len(schedules) == 0 {
		return nil
	}

	latest := &schedules[0]
	latestDate, err := time.Parse("2006-01-02", latest.WeekStart)
	if err != nil {
		return latest
	}

	for i := 1; i < len(schedules); i++ {
		currentDate, err := time.Parse("2006-01-02", schedules[i].WeekStart)
		if err != nil {
			continue
		}

		if currentDate.After(latestDate) {
			latest = &schedules[i]
			latestDate = currentDate
		}
	}

	return latest
}
