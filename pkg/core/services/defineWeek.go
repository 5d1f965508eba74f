package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/undiescoverd/stomp-scheduler/internal/config"
	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
	"github.com/undiescoverd/stomp-scheduler/pkg/db"
)

// DefineWeekResult represents the result of defining a new schedule week
type DefineWeekResult struct {
	Schedule *db.Schedule
	Shows    []db.Show
}

// DefineWeekStore defines the database operations needed for defining a week
type DefineWeekStore interface {
	GetSchedules(ctx context.Context) ([]db.Schedule, error)
	InsertSchedule(ctx context.Context, schedule *db.Schedule) error
	InsertShows(ctx context.Context, shows []db.Show) error
}

// DefineWeek creates a new schedule week. The configured recurrence rule is
// expanded into the week's performance dates; days outside the rule become
// day-off entries. If weekStart is empty the new week starts the Monday
// after the latest existing schedule, or the next Monday when there is none.
func DefineWeek(
	ctx context.Context,
	database DefineWeekStore,
	cfg *config.Config,
	logger *zap.Logger,
	weekStart string,
) (*DefineWeekResult, error) {
	start, err := resolveWeekStart(ctx, database, logger, weekStart)
	if err != nil {
		return nil, err
	}

	logger.Info("Defining new schedule week", zap.String("week_start", start.Format("2006-01-02")))

	performanceDays, err := expandPerformanceDays(cfg.PerformanceRRule, start)
	if err != nil {
		return nil, fmt.Errorf("failed to expand performance rule: %w", err)
	}

	schedule := &db.Schedule{
		ID:        uuid.New().String(),
		WeekStart: start.Format("2006-01-02"),
	}

	var shows []db.Show
	for day := 0; day < 7; day++ {
		date := start.AddDate(0, 0, day)
		dateStr := date.Format("2006-01-02")

		if !performanceDays[dateStr] {
			shows = append(shows, db.Show{
				ID:         uuid.New().String(),
				ScheduleID: schedule.ID,
				Date:       dateStr,
				Time:       "00:00",
				CallTime:   model.CallTimeTBC,
				Status:     string(model.StatusDayOff),
			})
			continue
		}

		for _, curtain := range curtainTimes(cfg, date.Weekday()) {
			shows = append(shows, db.Show{
				ID:         uuid.New().String(),
				ScheduleID: schedule.ID,
				Date:       dateStr,
				Time:       curtain,
				CallTime:   model.CallTimeTBC,
				Status:     string(model.StatusPerformance),
			})
			schedule.ShowCount++
		}
	}

	if schedule.ShowCount == 0 {
		return nil, fmt.Errorf("performance rule produced no shows for the week of %s", schedule.WeekStart)
	}

	if err := database.InsertSchedule(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to insert schedule: %w", err)
	}
	if err := database.InsertShows(ctx, shows); err != nil {
		return nil, fmt.Errorf("failed to insert shows: %w", err)
	}

	logger.Info("Schedule week created",
		zap.String("schedule_id", schedule.ID),
		zap.Int("shows", schedule.ShowCount))

	return &DefineWeekResult{
		Schedule: schedule,
		Shows:    shows,
	}, nil
}

// resolveWeekStart picks the start date for the new week: an explicit date
// if given, otherwise the Monday after the latest existing schedule, or the
// next Monday from today.
func resolveWeekStart(ctx context.Context, database DefineWeekStore, logger *zap.Logger, weekStart string) (time.Time, error) {
	if weekStart != "" {
		start, err := time.Parse("2006-01-02", weekStart)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid week start date %q: %w", weekStart, err)
		}
		return start, nil
	}

	schedules, err := database.GetSchedules(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to fetch schedules: %w", err)
	}

	latest := findLatestSchedule(schedules)
	if latest == nil {
		start := nextMonday(time.Now())
		logger.Info("No existing schedules found, starting next Monday",
			zap.String("week_start", start.Format("2006-01-02")))
		return start, nil
	}

	latestStart, err := time.Parse("2006-01-02", latest.WeekStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse latest schedule week start: %w", err)
	}
	return latestStart.AddDate(0, 0, 7), nil
}

// expandPerformanceDays evaluates the recurrence rule over one week and
// returns the set of performance dates.
func expandPerformanceDays(rule string, start time.Time) (map[string]bool, error) {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, err
	}
	opt.Dtstart = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, err
	}

	days := make(map[string]bool)
	for _, occurrence := range r.Between(opt.Dtstart, opt.Dtstart.AddDate(0, 0, 6), true) {
		days[occurrence.Format("2006-01-02")] = true
	}
	return days, nil
}

// curtainTimes returns a day's configured curtain times. Days listed with
// two times are double-show days.
func curtainTimes(cfg *config.Config, weekday time.Weekday) []string {
	if times, ok := cfg.ShowTimes[strings.ToLower(weekday.String())]; ok && len(times) > 0 {
		return times
	}
	if cfg.DefaultShowTime != "" {
		return []string{cfg.DefaultShowTime}
	}
	return []string{"19:30"}
}

// nextMonday returns the next Monday strictly after the given date.
func nextMonday(from time.Time) time.Time {
	normalized := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)

	daysUntilMonday := (int(time.Monday) - int(normalized.Weekday()) + 7) % 7
	if daysUntilMonday == 0 {
		daysUntilMonday = 7
	}
	return normalized.AddDate(0, 0, daysUntilMonday)
}
