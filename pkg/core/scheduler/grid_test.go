package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
)

func TestGrid_SetAndGet(t *testing.T) {
	grid := NewGrid(NewTimeline(dailyWeek(2)))

	grid.Set("show-1", model.RoleSarge, "PHIL")

	assert.Equal(t, "PHIL", grid.Get("show-1", model.RoleSarge))
	assert.Equal(t, "", grid.Get("show-2", model.RoleSarge))
	assert.Equal(t, "", grid.Get("show-1", model.RolePotato))
}

func TestGrid_IgnoresUnknownShowAndRole(t *testing.T) {
	grid := NewGrid(NewTimeline(dailyWeek(1)))

	grid.Set("nope", model.RoleSarge, "PHIL")
	grid.Set("show-1", model.RoleOff, "PHIL")

	assert.Equal(t, "", grid.Get("nope", model.RoleSarge))
	assert.Empty(t, grid.Assignments())
}

func TestGrid_HasPerformerIsCaseNormalized(t *testing.T) {
	grid := NewGrid(NewTimeline(dailyWeek(1)))
	grid.Set("show-1", model.RoleSarge, "Phil")

	assert.True(t, grid.HasPerformer("show-1", "PHIL"))
	assert.True(t, grid.HasPerformer("show-1", " phil "))
	assert.False(t, grid.HasPerformer("show-1", "CALLUM"))
}

func TestGrid_OrdinalsAndShowCount(t *testing.T) {
	grid := NewGrid(NewTimeline(dailyWeek(4)))
	grid.Set("show-1", model.RoleSarge, "PHIL")
	grid.Set("show-3", model.RoleSarge, "PHIL")
	grid.Set("show-3", model.RolePotato, "CALLUM")

	assert.Equal(t, []int{0, 2}, grid.Ordinals("PHIL"))
	assert.Equal(t, 2, grid.ShowCount("PHIL"))
	assert.Equal(t, 1, grid.ShowCount("CALLUM"))
	assert.Equal(t, 0, grid.ShowCount("JOSH"))
}

func TestGrid_Clear(t *testing.T) {
	grid := NewGrid(NewTimeline(dailyWeek(2)))
	grid.Set("show-1", model.RoleSarge, "PHIL")
	grid.Set("show-2", model.RoleWho, "JOSH")

	grid.Clear()

	assert.Empty(t, grid.Assignments())
	assert.Equal(t, 0, grid.ShowCount("PHIL"))
}

func TestGrid_AssignmentsFollowTimelineThenRoleOrder(t *testing.T) {
	grid := NewGrid(NewTimeline(dailyWeek(2)))
	grid.Set("show-2", model.RoleSarge, "PHIL")
	grid.Set("show-1", model.RoleWho, "JOSH")
	grid.Set("show-1", model.RoleSarge, "CALLUM")

	assignments := grid.Assignments()

	require.Len(t, assignments, 3)
	assert.Equal(t, model.Assignment{ShowID: "show-1", Role: model.RoleSarge, Performer: "CALLUM"}, assignments[0])
	assert.Equal(t, model.Assignment{ShowID: "show-1", Role: model.RoleWho, Performer: "JOSH"}, assignments[1])
	assert.Equal(t, model.Assignment{ShowID: "show-2", Role: model.RoleSarge, Performer: "PHIL"}, assignments[2])
}
