package scheduler

import "github.com/undiescoverd/stomp-scheduler/pkg/core/model"

// ValidationResult is the basic validation report: flat error and warning
// messages plus an overall verdict.
type ValidationResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// Validate re-checks an assignment set against the shows and roster,
// independent of how the assignments were produced. It never returns an
// error: degenerate input (empty shows, empty assignments) is simply valid
// with empty lists. Calling it twice on the same input yields identical
// results.
func Validate(shows []model.Show, assignments []model.Assignment, cast []model.CastMember) ValidationResult {
	result := ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
	}

	for _, issue := range runChecks(newCheckContext(shows, assignments, cast, false)) {
		switch issue.Severity {
		case model.SeverityError:
			result.Errors = append(result.Errors, issue.Message)
		case model.SeverityWarning:
			result.Warnings = append(result.Warnings, issue.Message)
		}
	}

	result.IsValid = len(result.Errors) == 0
	return result
}
