package db

import "context"

// ScheduleStore defines the interface for schedule database operations
type ScheduleStore interface {
	GetSchedules(ctx context.Context) ([]Schedule, error)
	InsertSchedule(ctx context.Context, schedule *Schedule) error
	GetShows(ctx context.Context, scheduleID string) ([]Show, error)
	InsertShows(ctx context.Context, shows []Show) error
	GetAssignments(ctx context.Context, scheduleID string) ([]Assignment, error)
	ReplaceAssignments(ctx context.Context, scheduleID string, assignments []Assignment) error
}
