package scheduler

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
)

// GenerationConfig contains the inputs for one generation run.
type GenerationConfig struct {
	// Shows is the full calendar week; only performance entries are assigned.
	Shows []model.Show

	// Cast is the read-only roster for the run.
	Cast []model.CastMember

	// MaxAttempts bounds the randomized retry loop. Zero means
	// MaxGenerationAttempts.
	MaxAttempts int

	// Rand is the randomness source for shuffling and tie-breaking. Pass a
	// seeded source in tests to make attempts reproducible. Nil means a
	// time-seeded source.
	Rand *rand.Rand

	// Logger receives per-attempt progress. Nil means no logging.
	Logger *zap.Logger
}

// GenerationOutcome is the result of a generation run.
type GenerationOutcome struct {
	// Success is true only for a full schedule: every role in every
	// performance show filled and the acceptance validation passed.
	Success bool

	// Partial is true when the fallback pass produced at least one
	// assignment after every full attempt failed.
	Partial bool

	// Assignments holds the role assignments plus one OFF row per
	// non-performing cast member per show, with RED days flagged.
	Assignments []model.Assignment

	// Errors carries the failure explanation: one message per slot the
	// partial pass could not fill, or a single top-level message.
	Errors []string

	// Attempts is the number of full attempts consumed.
	Attempts int
}

// Generate runs the randomized greedy assigner: shuffle the show order,
// fill roles hardest-first, retry on dead ends, and fall back to a partial
// schedule when every attempt fails. It never panics; internal failures are
// reported as a single error in the outcome.
func Generate(cfg GenerationConfig) (outcome *GenerationOutcome) {
	outcome = &GenerationOutcome{
		Assignments: []model.Assignment{},
		Errors:      []string{},
	}

	defer func() {
		if r := recover(); r != nil {
			outcome.Success = false
			outcome.Partial = false
			outcome.Assignments = []model.Assignment{}
			outcome.Errors = []string{fmt.Sprintf("schedule generation failed: %v", r)}
		}
	}()

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = MaxGenerationAttempts
	}

	if len(cfg.Cast) == 0 {
		outcome.Errors = append(outcome.Errors, "no cast members available for scheduling")
		return outcome
	}

	timeline := NewTimeline(cfg.Shows)
	if timeline.Len() == 0 {
		outcome.Success = true
		return outcome
	}

	grid := NewGrid(timeline)
	checker := NewChecker(timeline)
	eligible := eligibleCounts(cfg.Cast)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		outcome.Attempts = attempt
		if !fillAttempt(rng, timeline, grid, checker, cfg.Cast, eligible) {
			continue
		}

		assignments := grid.Assignments()
		acceptance := ValidateComprehensive(cfg.Shows, assignments, cfg.Cast)
		if acceptance.HasCritical() {
			logger.Debug("attempt rejected by acceptance validation",
				zap.Int("attempt", attempt),
				zap.Int("issues", len(acceptance.Issues)))
			continue
		}

		logger.Info("schedule generated",
			zap.Int("attempt", attempt),
			zap.Int("role_assignments", len(assignments)),
			zap.Int("score", acceptance.OverallScore))

		outcome.Success = true
		outcome.Assignments = AllocateOffDays(timeline, cfg.Cast, grid)
		return outcome
	}

	logger.Warn("all attempts failed, building partial schedule",
		zap.Int("attempts", maxAttempts))
	partialPass(rng, timeline, grid, cfg.Cast, eligible, outcome)
	return outcome
}

// fillAttempt runs one complete shuffle-and-fill pass over a cleared grid.
// It returns false as soon as any role has no legal candidate; nothing is
// committed for the failing show beyond the roles already placed.
func fillAttempt(rng *rand.Rand, timeline *Timeline, grid *Grid, checker *Checker, cast []model.CastMember, eligible map[model.Role]int) bool {
	grid.Clear()

	// Shuffled show order prevents systematic bias toward early-week
	// performers.
	order := rng.Perm(timeline.Len())

	for _, ordinal := range order {
		show := timeline.ShowAt(ordinal)
		for _, role := range difficultyOrder(rng, eligible) {
			var candidates []model.CastMember
			for _, member := range cast {
				if ok, _ := checker.CanAssign(grid, member, role, show.ID); ok {
					candidates = append(candidates, member)
				}
			}
			if len(candidates) == 0 {
				return false
			}
			grid.Set(show.ID, role, pickBalanced(rng, grid, candidates).Name)
		}
	}
	return true
}

// partialPass is the best-effort fallback: shows in timeline order, roles
// still hardest-first, but only eligibility, same-show exclusivity and the
// weekly cap are enforced. The fatigue constraints (consecutive ceiling,
// weekend double-double) are relaxed. Every slot that still cannot be
// filled is recorded as a message instead of aborting.
func partialPass(rng *rand.Rand, timeline *Timeline, grid *Grid, cast []model.CastMember, eligible map[model.Role]int, outcome *GenerationOutcome) {
	grid.Clear()

	for ordinal := 0; ordinal < timeline.Len(); ordinal++ {
		show := timeline.ShowAt(ordinal)
		for _, role := range difficultyOrder(rng, eligible) {
			var candidates []model.CastMember
			for _, member := range cast {
				if !member.IsEligible(role) {
					continue
				}
				if grid.HasPerformer(show.ID, member.Name) {
					continue
				}
				if grid.ShowCount(member.Name) >= MaxShowsPerWeek {
					continue
				}
				candidates = append(candidates, member)
			}
			if len(candidates) == 0 {
				outcome.Errors = append(outcome.Errors,
					fmt.Sprintf("no eligible performer available for %s in show %s on %s", role, show.ID, show.Date))
				continue
			}
			grid.Set(show.ID, role, pickBalanced(rng, grid, candidates).Name)
		}
	}

	assignments := grid.Assignments()
	outcome.Partial = len(assignments) > 0
	outcome.Success = outcome.Partial && len(outcome.Errors) == 0
	outcome.Assignments = AllocateOffDays(timeline, cast, grid)
}

// difficultyOrder returns the roles sorted by ascending eligible-performer
// count. The role list is shuffled before the stable sort, so equally
// difficult roles break ties unpredictably across attempts.
func difficultyOrder(rng *rand.Rand, eligible map[model.Role]int) []model.Role {
	roles := make([]model.Role, len(model.AllRoles))
	copy(roles, model.AllRoles)
	rng.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})
	sort.SliceStable(roles, func(i, j int) bool {
		return eligible[roles[i]] < eligible[roles[j]]
	})
	return roles
}

// pickBalanced chooses among candidates by ascending current show count.
// Candidates within one show of the lightest load are near-ties and one of
// them is picked at random, so retries do not converge on the same names.
func pickBalanced(rng *rand.Rand, grid *Grid, candidates []model.CastMember) model.CastMember {
	counts := make([]int, len(candidates))
	lightest := -1
	for i, member := range candidates {
		counts[i] = grid.ShowCount(member.Name)
		if lightest < 0 || counts[i] < lightest {
			lightest = counts[i]
		}
	}

	var near []model.CastMember
	for i, member := range candidates {
		if counts[i]-lightest <= 1 {
			near = append(near, member)
		}
	}
	return near[rng.Intn(len(near))]
}

// eligibleCounts tallies how many roster members can cover each role.
func eligibleCounts(cast []model.CastMember) map[model.Role]int {
	counts := make(map[model.Role]int, len(model.AllRoles))
	for _, role := range model.AllRoles {
		for _, member := range cast {
			if member.IsEligible(role) {
				counts[role]++
			}
		}
	}
	return counts
}
