package services

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/undiescoverd/stomp-scheduler/internal/config"
	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
	"github.com/undiescoverd/stomp-scheduler/pkg/core/scheduler"
	"github.com/undiescoverd/stomp-scheduler/pkg/db"
)

// GenerateScheduleResult contains the generation results
type GenerateScheduleResult struct {
	ScheduleID         string
	ShowCount          int
	CastSize           int
	UsedFallbackRoster bool
	Outcome            *scheduler.GenerationOutcome
	Validation         *scheduler.ComprehensiveResult
}

// GenerateScheduleStore defines the database operations needed for generating a schedule
type GenerateScheduleStore interface {
	GetShows(ctx context.Context, scheduleID string) ([]db.Show, error)
	ReplaceAssignments(ctx context.Context, scheduleID string, assignments []db.Assignment) error
}

// RosterClient fetches the company cast roster from its external source
type RosterClient interface {
	ListCast(cfg *config.Config) ([]model.CastMember, error)
}

// GenerateSchedule runs the assignment engine for a stored schedule week.
// The cast roster comes from the roster client; if the client is missing or
// fails, the configured fallback roster is used instead. If dryRun is true
// the generated assignments are not saved to the database.
func GenerateSchedule(
	ctx context.Context,
	database GenerateScheduleStore,
	rosterClient RosterClient,
	cfg *config.Config,
	logger *zap.Logger,
	scheduleID string,
	dryRun bool,
	seed int64,
) (*GenerateScheduleResult, error) {
	logger.Debug("Starting generateSchedule",
		zap.String("schedule_id", scheduleID),
		zap.Bool("dry_run", dryRun))

	// Step 1: DB query - fetch the schedule's shows
	showRecords, err := database.GetShows(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shows: %w", err)
	}
	if len(showRecords) == 0 {
		return nil, fmt.Errorf("schedule %s has no shows", scheduleID)
	}

	shows := showsFromRecords(showRecords)
	logger.Info("Loaded schedule week",
		zap.String("schedule_id", scheduleID),
		zap.Int("shows", len(shows)))

	// Step 2: Fetch the cast roster, falling back to the configured roster
	cast, usedFallback := fetchRoster(rosterClient, cfg, logger)

	// Step 3: Run the engine
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}
	outcome := scheduler.Generate(scheduler.GenerationConfig{
		Shows:       shows,
		Cast:        cast,
		MaxAttempts: cfg.MaxAttempts,
		Rand:        rng,
		Logger:      logger,
	})

	// Step 4: Validate the output independently of the engine
	validation := scheduler.ValidateComprehensive(shows, outcome.Assignments, cast)

	result := &GenerateScheduleResult{
		ScheduleID:         scheduleID,
		ShowCount:          len(shows),
		CastSize:           len(cast),
		UsedFallbackRoster: usedFallback,
		Outcome:            outcome,
		Validation:         validation,
	}

	// Step 5: Persist, unless this is a dry run or nothing was produced
	if dryRun {
		logger.Info("Dry run, assignments not saved")
		return result, nil
	}
	if !outcome.Success && !outcome.Partial {
		logger.Warn("Generation produced no assignments, nothing saved",
			zap.Strings("errors", outcome.Errors))
		return result, nil
	}

	records := assignmentRecords(scheduleID, outcome.Assignments)
	if err := database.ReplaceAssignments(ctx, scheduleID, records); err != nil {
		return nil, fmt.Errorf("failed to save assignments: %w", err)
	}

	logger.Info("Assignments saved",
		zap.String("schedule_id", scheduleID),
		zap.Int("count", len(records)),
		zap.Bool("partial", outcome.Partial))

	return result, nil
}

// fetchRoster returns the live roster when available, the fallback roster
// otherwise. The second return reports whether the fallback was used.
func fetchRoster(rosterClient RosterClient, cfg *config.Config, logger *zap.Logger) ([]model.CastMember, bool) {
	if rosterClient == nil {
		logger.Debug("No roster client configured, using fallback roster")
		return cfg.FallbackRoster(), true
	}

	cast, err := rosterClient.ListCast(cfg)
	if err != nil {
		logger.Warn("Roster fetch failed, using fallback roster", zap.Error(err))
		return cfg.FallbackRoster(), true
	}
	if len(cast) == 0 {
		logger.Warn("Roster source returned no active cast, using fallback roster")
		return cfg.FallbackRoster(), true
	}
	return cast, false
}

// assignmentRecords converts engine assignments into database records
func assignmentRecords(scheduleID string, assignments []model.Assignment) []db.Assignment {
	records := make([]db.Assignment, len(assignments))
	for i, a := range assignments {
		records[i] = db.Assignment{
			ID:         uuid.New().String(),
			ScheduleID: scheduleID,
			ShowID:     a.ShowID,
			Role:       string(a.Role),
			Performer:  a.Performer,
			IsRedDay:   a.IsRedDay,
		}
	}
	return records
}
