package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/undiescoverd/stomp-scheduler/internal/config"
	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
	"github.com/undiescoverd/stomp-scheduler/pkg/db"
)

type fakeDefineStore struct {
	schedules    []db.Schedule
	schedulesErr error

	insertedSchedule *db.Schedule
	insertedShows    []db.Show
}

func (f *fakeDefineStore) GetSchedules(ctx context.Context) ([]db.Schedule, error) {
	return f.schedules, f.schedulesErr
}

func (f *fakeDefineStore) InsertSchedule(ctx context.Context, schedule *db.Schedule) error {
	f.insertedSchedule = schedule
	return nil
}

func (f *fakeDefineStore) InsertShows(ctx context.Context, shows []db.Show) error {
	f.insertedShows = shows
	return nil
}

func defineWeekConfig() *config.Config {
	return &config.Config{
		DatabaseURL:      "postgres://localhost/test",
		PerformanceRRule: "FREQ=DAILY;BYDAY=TU,WE,TH,FR,SA,SU",
		ShowTimes: map[string][]string{
			"saturday": {"14:30", "19:30"},
			"sunday":   {"13:00", "18:00"},
		},
		DefaultShowTime: "19:30",
	}
}

func TestDefineWeek_ExpandsPerformanceRule(t *testing.T) {
	store := &fakeDefineStore{}

	// 2026-03-02 is a Monday.
	result, err := DefineWeek(context.Background(), store, defineWeekConfig(), zap.NewNop(), "2026-03-02")

	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", result.Schedule.WeekStart)

	// Tue-Fri single shows, Sat and Sun doubles: 8 performances, plus the
	// Monday day-off entry.
	assert.Equal(t, 8, result.Schedule.ShowCount)
	require.Len(t, result.Shows, 9)

	monday := result.Shows[0]
	assert.Equal(t, "2026-03-02", monday.Date)
	assert.Equal(t, string(model.StatusDayOff), monday.Status)
	assert.Equal(t, "00:00", monday.Time)
	assert.Equal(t, model.CallTimeTBC, monday.CallTime)

	var saturdayTimes []string
	for _, show := range result.Shows {
		assert.Equal(t, result.Schedule.ID, show.ScheduleID)
		assert.NotEmpty(t, show.ID)
		if show.Date == "2026-03-07" {
			saturdayTimes = append(saturdayTimes, show.Time)
		}
	}
	assert.Equal(t, []string{"14:30", "19:30"}, saturdayTimes)

	assert.Equal(t, result.Schedule, store.insertedSchedule)
	assert.Equal(t, result.Shows, store.insertedShows)
}

func TestDefineWeek_DefaultCurtainTime(t *testing.T) {
	cfg := defineWeekConfig()
	cfg.ShowTimes = nil
	store := &fakeDefineStore{}

	result, err := DefineWeek(context.Background(), store, cfg, zap.NewNop(), "2026-03-02")

	require.NoError(t, err)
	for _, show := range result.Shows {
		if show.Status == string(model.StatusPerformance) {
			assert.Equal(t, "19:30", show.Time)
		}
	}
}

func TestDefineWeek_FollowsLatestSchedule(t *testing.T) {
	store := &fakeDefineStore{
		schedules: []db.Schedule{
			{ID: "old", WeekStart: "2026-02-09"},
			{ID: "latest", WeekStart: "2026-02-23"},
			{ID: "older", WeekStart: "2026-01-26"},
		},
	}

	result, err := DefineWeek(context.Background(), store, defineWeekConfig(), zap.NewNop(), "")

	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", result.Schedule.WeekStart)
}

func TestDefineWeek_InvalidStartDate(t *testing.T) {
	_, err := DefineWeek(context.Background(), &fakeDefineStore{}, defineWeekConfig(), zap.NewNop(), "next tuesday")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid week start date")
}

func TestDefineWeek_RuleProducesNoShows(t *testing.T) {
	cfg := defineWeekConfig()
	cfg.PerformanceRRule = "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25"

	_, err := DefineWeek(context.Background(), &fakeDefineStore{}, cfg, zap.NewNop(), "2026-03-02")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "produced no shows")
}

func TestDefineWeek_ScheduleFetchFails(t *testing.T) {
	store := &fakeDefineStore{schedulesErr: fmt.Errorf("boom")}

	_, err := DefineWeek(context.Background(), store, defineWeekConfig(), zap.NewNop(), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch schedules")
}

func TestFindLatestSchedule(t *testing.T) {
	assert.Nil(t, findLatestSchedule(nil))

	schedules := []db.Schedule{
		{ID: "a", WeekStart: "2026-02-09"},
		{ID: "b", WeekStart: "2026-03-02"},
		{ID: "c", WeekStart: "2026-02-23"},
	}
	latest := findLatestSchedule(schedules)
	require.NotNil(t, latest)
	assert.Equal(t, "b", latest.ID)
}

func TestNextMonday(t *testing.T) {
	// A Wednesday rolls forward to the coming Monday.
	wednesday := mustParse(t, "2026-03-04")
	assert.Equal(t, "2026-03-09", nextMonday(wednesday).Format("2006-01-02"))

	// A Monday rolls a full week, never returning itself.
	monday := mustParse(t, "2026-03-02")
	assert.Equal(t, "2026-03-09", nextMonday(monday).Format("2006-01-02"))
}

func mustParse(t *testing.T, date string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return parsed
}
