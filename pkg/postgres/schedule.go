package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/undiescoverd/stomp-scheduler/pkg/db"
)

// GetSchedules retrieves all schedule records
func (d *DB) GetSchedules(ctx context.Context) ([]db.Schedule, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, week_start, show_count
		FROM schedule
		ORDER BY week_start
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var schedules []db.Schedule
	for rows.Next() {
		var s db.Schedule
		var weekStart time.Time
		if err := rows.Scan(&s.ID, &weekStart, &s.ShowCount); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		s.WeekStart = weekStart.Format("2006-01-02")
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedules: %w", err)
	}

	return schedules, nil
}

// InsertSchedule inserts a new schedule record
func (d *DB) InsertSchedule(ctx context.Context, schedule *db.Schedule) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO schedule (id, week_start, show_count)
		VALUES ($1, $2, $3)
	`, schedule.ID, schedule.WeekStart, schedule.ShowCount)
	if err != nil {
		return fmt.Errorf("failed to insert schedule: %w", err)
	}
	return nil
}

// GetShows retrieves all show records for a schedule
func (d *DB) GetShows(ctx context.Context, scheduleID string) ([]db.Show, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, schedule_id, date, time, call_time, status
		FROM show
		WHERE schedule_id = $1
		ORDER BY date, time
	`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shows: %w", err)
	}
	defer rows.Close()

	var shows []db.Show
	for rows.Next() {
		var s db.Show
		var date time.Time
		if err := rows.Scan(&s.ID, &s.ScheduleID, &date, &s.Time, &s.CallTime, &s.Status); err != nil {
			return nil, fmt.Errorf("failed to scan show: %w", err)
		}
		s.Date = date.Format("2006-01-02")
		shows = append(shows, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shows: %w", err)
	}

	return shows, nil
}

// InsertShows inserts show records
func (d *DB) InsertShows(ctx context.Context, shows []db.Show) error {
	if len(shows) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range shows {
		_, err := tx.Exec(ctx, `
			INSERT INTO show (id, schedule_id, date, time, call_time, status)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, s.ID, s.ScheduleID, s.Date, s.Time, s.CallTime, s.Status)
		if err != nil {
			return fmt.Errorf("failed to insert show: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit shows: %w", err)
	}
	return nil
}

// GetAssignments retrieves all assignment records for a schedule
func (d *DB) GetAssignments(ctx context.Context, scheduleID string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, schedule_id, show_id, role, performer, is_red_day
		FROM assignment
		WHERE schedule_id = $1
	`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		if err := rows.Scan(&a.ID, &a.ScheduleID, &a.ShowID, &a.Role, &a.Performer, &a.IsRedDay); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// ReplaceAssignments atomically replaces a schedule's assignment set
func (d *DB) ReplaceAssignments(ctx context.Context, scheduleID string, assignments []db.Assignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM assignment WHERE schedule_id = $1`, scheduleID); err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO assignment (id, schedule_id, show_id, role, performer, is_red_day)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, a.ID, a.ScheduleID, a.ShowID, a.Role, a.Performer, a.IsRedDay)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit assignments: %w", err)
	}
	return nil
}
