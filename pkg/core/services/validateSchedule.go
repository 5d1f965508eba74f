package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/undiescoverd/stomp-scheduler/internal/config"
	"github.com/undiescoverd/stomp-scheduler/pkg/core/scheduler"
	"github.com/undiescoverd/stomp-scheduler/pkg/db"
)

// ValidateScheduleResult contains both validation variants for a schedule
type ValidateScheduleResult struct {
	ScheduleID    string
	Basic         scheduler.ValidationResult
	Comprehensive *scheduler.ComprehensiveResult
}

// ValidateScheduleStore defines the database operations needed for validating a schedule
type ValidateScheduleStore interface {
	GetShows(ctx context.Context, scheduleID string) ([]db.Show, error)
	GetAssignments(ctx context.Context, scheduleID string) ([]db.Assignment, error)
}

// ValidateSchedule re-checks a stored schedule's assignments, whether they
// were generated or hand-edited. Validation itself never fails; only the
// database reads can return an error.
func ValidateSchedule(
	ctx context.Context,
	database ValidateScheduleStore,
	rosterClient RosterClient,
	cfg *config.Config,
	logger *zap.Logger,
	scheduleID string,
) (*ValidateScheduleResult, error) {
	logger.Debug("Starting validateSchedule", zap.String("schedule_id", scheduleID))

	showRecords, err := database.GetShows(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shows: %w", err)
	}

	assignmentRecords, err := database.GetAssignments(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	shows := showsFromRecords(showRecords)
	assignments := assignmentsFromRecords(assignmentRecords)
	cast, _ := fetchRoster(rosterClient, cfg, logger)

	result := &ValidateScheduleResult{
		ScheduleID:    scheduleID,
		Basic:         scheduler.Validate(shows, assignments, cast),
		Comprehensive: scheduler.ValidateComprehensive(shows, assignments, cast),
	}

	logger.Info("Schedule validated",
		zap.String("schedule_id", scheduleID),
		zap.Bool("valid", result.Basic.IsValid),
		zap.Int("errors", len(result.Basic.Errors)),
		zap.Int("warnings", len(result.Basic.Warnings)),
		zap.Int("score", result.Comprehensive.OverallScore))

	return result, nil
}
