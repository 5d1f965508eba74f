package scheduler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
)

func TestGenerate_FullWeekSucceeds(t *testing.T) {
	shows := dailyWeek(5)
	cast := companyRoster()

	outcome := Generate(GenerationConfig{
		Shows: shows,
		Cast:  cast,
		Rand:  rand.New(rand.NewSource(1)),
	})

	require.True(t, outcome.Success, "errors: %v", outcome.Errors)
	assert.False(t, outcome.Partial)
	assert.Empty(t, outcome.Errors)
	assert.GreaterOrEqual(t, outcome.Attempts, 1)

	// 8 roles per show plus one OFF row per non-performing member.
	roleRows := 0
	offRows := 0
	for _, a := range outcome.Assignments {
		if a.Role == model.RoleOff {
			offRows++
		} else {
			roleRows++
		}
	}
	assert.Equal(t, 5*len(model.AllRoles), roleRows)
	assert.Equal(t, 5*(len(cast)-len(model.AllRoles)), offRows)

	// JOSH is the only Who cover, so every Who slot must be his.
	for _, a := range outcome.Assignments {
		if a.Role == model.RoleWho {
			assert.Equal(t, "JOSH", a.Performer)
		}
	}
}

func TestGenerate_EveryShowGetsEightDistinctPerformers(t *testing.T) {
	shows := dailyWeek(5)

	outcome := Generate(GenerationConfig{
		Shows: shows,
		Cast:  companyRoster(),
		Rand:  rand.New(rand.NewSource(2)),
	})
	require.True(t, outcome.Success, "errors: %v", outcome.Errors)

	perShow := make(map[string]map[string]bool)
	for _, a := range outcome.Assignments {
		if a.Role == model.RoleOff {
			continue
		}
		if perShow[a.ShowID] == nil {
			perShow[a.ShowID] = make(map[string]bool)
		}
		assert.False(t, perShow[a.ShowID][a.Performer],
			"%s appears twice in %s", a.Performer, a.ShowID)
		perShow[a.ShowID][a.Performer] = true
	}
	for _, show := range shows {
		assert.Len(t, perShow[show.ID], len(model.AllRoles))
	}
}

func TestGenerate_SameSeedSameSchedule(t *testing.T) {
	shows := dailyWeek(5)

	first := Generate(GenerationConfig{
		Shows: shows,
		Cast:  companyRoster(),
		Rand:  rand.New(rand.NewSource(42)),
	})
	second := Generate(GenerationConfig{
		Shows: shows,
		Cast:  companyRoster(),
		Rand:  rand.New(rand.NewSource(42)),
	})

	assert.Equal(t, first.Assignments, second.Assignments)
	assert.Equal(t, first.Attempts, second.Attempts)
}

func TestGenerate_InsufficientRosterFallsBackToPartial(t *testing.T) {
	shows := dailyWeek(2)
	cast := []model.CastMember{
		{Name: "PHIL", EligibleRoles: []model.Role{model.RoleSarge}},
		{Name: "CALLUM", EligibleRoles: []model.Role{model.RolePotato}},
	}

	outcome := Generate(GenerationConfig{
		Shows:       shows,
		Cast:        cast,
		MaxAttempts: 5,
		Rand:        rand.New(rand.NewSource(3)),
	})

	assert.False(t, outcome.Success)
	assert.True(t, outcome.Partial)
	assert.Equal(t, 5, outcome.Attempts)

	// Six roles per show have no cover at all.
	require.Len(t, outcome.Errors, 2*6)
	for _, msg := range outcome.Errors {
		assert.Contains(t, msg, "no eligible performer available")
	}

	roleRows := 0
	for _, a := range outcome.Assignments {
		if a.Role != model.RoleOff {
			roleRows++
		}
	}
	assert.Equal(t, 4, roleRows)
}

func TestGenerate_EmptyCast(t *testing.T) {
	outcome := Generate(GenerationConfig{
		Shows: dailyWeek(3),
		Cast:  nil,
	})

	assert.False(t, outcome.Success)
	assert.False(t, outcome.Partial)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], "no cast members available")
}

func TestGenerate_NoPerformanceShows(t *testing.T) {
	shows := []model.Show{
		{ID: "t1", Date: "2026-03-02", Time: "00:00", Status: model.StatusTravel},
		{ID: "d1", Date: "2026-03-03", Time: "00:00", Status: model.StatusDayOff},
	}

	outcome := Generate(GenerationConfig{
		Shows: shows,
		Cast:  companyRoster(),
	})

	assert.True(t, outcome.Success)
	assert.Empty(t, outcome.Assignments)
	assert.Empty(t, outcome.Errors)
}

func TestGenerate_OutputPassesValidation(t *testing.T) {
	shows := dailyWeek(5)
	cast := companyRoster()

	outcome := Generate(GenerationConfig{
		Shows: shows,
		Cast:  cast,
		Rand:  rand.New(rand.NewSource(4)),
	})
	require.True(t, outcome.Success, "errors: %v", outcome.Errors)

	result := Validate(shows, outcome.Assignments, cast)
	assert.True(t, result.IsValid, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
}

func TestDifficultyOrder_HardestRolesFirst(t *testing.T) {
	eligible := eligibleCounts(companyRoster())
	rng := rand.New(rand.NewSource(5))

	order := difficultyOrder(rng, eligible)

	require.Len(t, order, len(model.AllRoles))
	// Who has a single cover, so it always sorts first.
	assert.Equal(t, model.RoleWho, order[0])
	for i := 1; i < len(order); i++ {
		assert.GreaterOrEqual(t, eligible[order[i]], eligible[order[i-1]])
	}
}

func TestPickBalanced_PrefersLightestLoad(t *testing.T) {
	timeline := NewTimeline(dailyWeek(4))
	grid := NewGrid(timeline)
	rng := rand.New(rand.NewSource(6))

	// MOLLY already has three shows, JASMINE has none: not a near-tie.
	grid.Set("show-1", model.RoleBin, "MOLLY")
	grid.Set("show-2", model.RoleBin, "MOLLY")
	grid.Set("show-3", model.RoleBin, "MOLLY")

	candidates := []model.CastMember{
		{Name: "MOLLY", EligibleRoles: []model.Role{model.RoleBin}},
		{Name: "JASMINE", EligibleRoles: []model.Role{model.RoleBin}},
	}

	for i := 0; i < 20; i++ {
		picked := pickBalanced(rng, grid, candidates)
		assert.Equal(t, "JASMINE", picked.Name)
	}
}

func TestEligibleCounts(t *testing.T) {
	counts := eligibleCounts(companyRoster())

	assert.Equal(t, 1, counts[model.RoleWho])
	assert.Equal(t, 2, counts[model.RoleSarge])
	assert.Equal(t, 4, counts[model.RoleBin])
}
