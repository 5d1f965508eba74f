package scheduler

import (
	"fmt"
	"sort"

	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
)

// LoadStatus is the four-tier utilization grade in the comprehensive report.
type LoadStatus string

const (
	LoadUnderutilized LoadStatus = "underutilized"
	LoadOptimal       LoadStatus = "optimal"
	LoadOverworked    LoadStatus = "overworked"
	LoadCritical      LoadStatus = "critical"
)

// LoadBalanceEntry reports one roster member's utilization against the
// company average and the expected range (average ±30%).
type LoadBalanceEntry struct {
	Performer   string
	ShowCount   int
	Average     float64
	ExpectedMin float64
	ExpectedMax float64
	Status      LoadStatus
}

// ConsecutiveAnalysis reports a performer's consecutive-show runs.
type ConsecutiveAnalysis struct {
	Performer string
	Sequences []model.ConsecutiveSequence
	Longest   int
}

// RoleCompleteness reports how completely one show's roles are filled.
type RoleCompleteness struct {
	ShowID       string
	Date         string
	FilledRoles  int
	MissingRoles []model.Role
	Completion   float64
}

// ComprehensiveResult is the extended validation report with analytics and
// an overall 0-100 score.
type ComprehensiveResult struct {
	IsValid             bool
	OverallScore        int
	Issues              []model.ValidationIssue
	LoadBalancing       []LoadBalanceEntry
	ConsecutiveAnalysis []ConsecutiveAnalysis
	RoleCompleteness    []RoleCompleteness
	Recommendations     []string
}

// HasCritical reports whether any critical-priority issue remains. The
// generator accepts an attempt only when this is false; warnings alone do
// not reject a run.
func (r *ComprehensiveResult) HasCritical() bool {
	for _, issue := range r.Issues {
		if issue.Priority == model.PriorityCritical {
			return true
		}
	}
	return false
}

// Score weights per issue priority.
const (
	penaltyCritical = 20
	penaltyHigh     = 10
	penaltyMedium   = 5
	penaltyLow      = 2
	completionBonus = 10
)

// ValidateComprehensive runs the full validation pass: every basic check in
// strict grading, plus load-balancing analytics, consecutive-run analysis,
// per-show role completeness and the overall score.
func ValidateComprehensive(shows []model.Show, assignments []model.Assignment, cast []model.CastMember) *ComprehensiveResult {
	result := &ComprehensiveResult{
		Issues:          []model.ValidationIssue{},
		Recommendations: []string{},
	}

	ctx := newCheckContext(shows, assignments, cast, true)
	if issues := runChecks(ctx); issues != nil {
		result.Issues = issues
	}

	result.LoadBalancing = buildLoadBalancing(ctx)
	result.ConsecutiveAnalysis = buildConsecutiveAnalysis(ctx)
	result.RoleCompleteness = buildRoleCompleteness(ctx)
	result.Recommendations = buildRecommendations(result)

	errors := 0
	warnings := 0
	penalty := 0
	for _, issue := range result.Issues {
		switch issue.Severity {
		case model.SeverityError:
			errors++
		case model.SeverityWarning:
			warnings++
		default:
			continue
		}
		switch issue.Priority {
		case model.PriorityCritical:
			penalty += penaltyCritical
		case model.PriorityHigh:
			penalty += penaltyHigh
		case model.PriorityMedium:
			penalty += penaltyMedium
		case model.PriorityLow:
			penalty += penaltyLow
		}
	}

	result.IsValid = errors == 0
	result.OverallScore = computeScore(penalty, completionPercent(result.RoleCompleteness), errors, warnings)
	return result
}

// computeScore applies the scoring model: start at 100, subtract the issue
// penalties, scale by slot completion, then add a bonus for a complete,
// error-free schedule. The result is clamped to [0, 100].
func computeScore(penalty int, completion float64, errors, warnings int) int {
	score := float64(100 - penalty)
	if score < 0 {
		score = 0
	}
	score = score * completion / 100

	if completion >= 100 && errors == 0 {
		bonus := completionBonus - warnings
		if bonus < 0 {
			bonus = 0
		}
		score += float64(bonus)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(score + 0.5)
}

func completionPercent(completeness []RoleCompleteness) float64 {
	if len(completeness) == 0 {
		return 100
	}
	filled := 0
	for _, rc := range completeness {
		filled += rc.FilledRoles
	}
	return float64(filled) / float64(len(completeness)*len(model.AllRoles)) * 100
}

func buildLoadBalancing(ctx *checkContext) []LoadBalanceEntry {
	if len(ctx.cast) == 0 {
		return []LoadBalanceEntry{}
	}

	total := 0
	working := 0
	for _, member := range ctx.cast {
		count := len(ctx.ordinals[model.NormalizeName(member.Name)])
		total += count
		if count > 0 {
			working++
		}
	}
	var average float64
	if working > 0 {
		average = float64(total) / float64(working)
	}

	entries := make([]LoadBalanceEntry, 0, len(ctx.cast))
	for _, member := range ctx.cast {
		count := len(ctx.ordinals[model.NormalizeName(member.Name)])
		entry := LoadBalanceEntry{
			Performer:   member.Name,
			ShowCount:   count,
			Average:     average,
			ExpectedMin: average * 0.7,
			ExpectedMax: average * 1.3,
			Status:      LoadOptimal,
		}
		switch {
		case float64(count) > average*1.5:
			entry.Status = LoadCritical
		case float64(count) > entry.ExpectedMax:
			entry.Status = LoadOverworked
		case float64(count) < entry.ExpectedMin:
			entry.Status = LoadUnderutilized
		}
		entries = append(entries, entry)
	}
	return entries
}

func buildConsecutiveAnalysis(ctx *checkContext) []ConsecutiveAnalysis {
	names := make([]string, 0, len(ctx.ordinals))
	for name := range ctx.ordinals {
		names = append(names, name)
	}
	sort.Strings(names)

	analyses := make([]ConsecutiveAnalysis, 0, len(names))
	for _, name := range names {
		display := name
		if member, ok := ctx.roster[name]; ok {
			display = member.Name
		}
		sequences := BuildSequences(ctx.timeline, ctx.ordinals[name])
		longest := 0
		for _, seq := range sequences {
			if seq.Count > longest {
				longest = seq.Count
			}
		}
		analyses = append(analyses, ConsecutiveAnalysis{
			Performer: display,
			Sequences: sequences,
			Longest:   longest,
		})
	}
	return analyses
}

func buildRoleCompleteness(ctx *checkContext) []RoleCompleteness {
	completeness := make([]RoleCompleteness, 0, ctx.timeline.Len())
	for ordinal := 0; ordinal < ctx.timeline.Len(); ordinal++ {
		show := ctx.timeline.ShowAt(ordinal)
		holders := ctx.roleHolders[show.ID]

		rc := RoleCompleteness{
			ShowID:       show.ID,
			Date:         show.Date,
			MissingRoles: []model.Role{},
		}
		for _, role := range model.AllRoles {
			if len(holders[role]) > 0 {
				rc.FilledRoles++
			} else {
				rc.MissingRoles = append(rc.MissingRoles, role)
			}
		}
		rc.Completion = float64(rc.FilledRoles) / float64(len(model.AllRoles)) * 100
		completeness = append(completeness, rc)
	}
	return completeness
}

func buildRecommendations(result *ComprehensiveResult) []string {
	recommendations := []string{}
	if result.HasCritical() {
		recommendations = append(recommendations, "resolve critical issues before publishing the schedule")
	}

	seen := make(map[string]bool)
	for _, issue := range result.Issues {
		if issue.Suggestion == "" || seen[issue.Suggestion] {
			continue
		}
		seen[issue.Suggestion] = true
		recommendations = append(recommendations, issue.Suggestion)
	}

	for _, entry := range result.LoadBalancing {
		if entry.Status == LoadCritical {
			recommendations = append(recommendations,
				fmt.Sprintf("%s is carrying %d shows, well above the cast average of %.1f", entry.Performer, entry.ShowCount, entry.Average))
		}
	}
	return recommendations
}
