package scheduler

import (
	"fmt"

	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
)

// perfShow builds a performance show for tests.
func perfShow(id, date, curtain string) model.Show {
	return model.Show{
		ID:       id,
		Date:     date,
		Time:     curtain,
		CallTime: "18:00",
		Status:   model.StatusPerformance,
	}
}

// dailyWeek builds n single-show days starting Monday 2026-03-02.
func dailyWeek(n int) []model.Show {
	dates := []string{
		"2026-03-02", // Monday
		"2026-03-03",
		"2026-03-04",
		"2026-03-05",
		"2026-03-06",
		"2026-03-07", // Saturday
		"2026-03-08", // Sunday
	}
	shows := make([]model.Show, 0, n)
	for i := 0; i < n; i++ {
		shows = append(shows, perfShow(fmt.Sprintf("show-%d", i+1), dates[i], "19:30"))
	}
	return shows
}

// companyRoster is a full twelve-member roster that can field all eight
// roles in any single show. JOSH is the only Who cover.
func companyRoster() []model.CastMember {
	return []model.CastMember{
		{Name: "PHIL", EligibleRoles: []model.Role{model.RoleSarge}},
		{Name: "CALLUM", EligibleRoles: []model.Role{model.RoleSarge, model.RolePotato}},
		{Name: "DONNY", EligibleRoles: []model.Role{model.RolePotato, model.RoleRingo}},
		{Name: "HENRY", EligibleRoles: []model.Role{model.RolePotato, model.RoleParticle}},
		{Name: "IRIS", EligibleRoles: []model.Role{model.RoleMozzie, model.RoleParticle}},
		{Name: "KIKO", EligibleRoles: []model.Role{model.RoleMozzie}},
		{Name: "TILLY", EligibleRoles: []model.Role{model.RoleMozzie}},
		{Name: "LENNOX", EligibleRoles: []model.Role{model.RoleRingo, model.RoleCornish}},
		{Name: "JOSH", EligibleRoles: []model.Role{model.RoleParticle, model.RoleBin, model.RoleWho}},
		{Name: "MOLLY", EligibleRoles: []model.Role{model.RoleBin, model.RoleCornish}},
		{Name: "JASMINE", EligibleRoles: []model.Role{model.RoleBin, model.RoleCornish}},
		{Name: "SERENA", EligibleRoles: []model.Role{model.RoleBin, model.RoleCornish}},
	}
}

// miscastAssignments gives every role in every show to a companyRoster
// member who cannot play it, and double-books KIKO on Potato, producing
// eligibility, duplicate-holder and exclusivity issues in bulk.
func miscastAssignments(shows []model.Show) []model.Assignment {
	lineup := []string{"KIKO", "TILLY", "LENNOX", "JOSH", "MOLLY", "PHIL", "DONNY", "IRIS"}
	var assignments []model.Assignment
	for _, show := range shows {
		for i, role := range model.AllRoles {
			assignments = append(assignments, model.Assignment{
				ShowID: show.ID, Role: role, Performer: lineup[i],
			})
		}
		assignments = append(assignments, model.Assignment{
			ShowID: show.ID, Role: model.RolePotato, Performer: "KIKO",
		})
	}
	return assignments
}

// fullShowAssignments assigns all eight roles in one show to a fixed
// eligible lineup from companyRoster.
func fullShowAssignments(showID string) []model.Assignment {
	return []model.Assignment{
		{ShowID: showID, Role: model.RoleSarge, Performer: "PHIL"},
		{ShowID: showID, Role: model.RolePotato, Performer: "CALLUM"},
		{ShowID: showID, Role: model.RoleMozzie, Performer: "KIKO"},
		{ShowID: showID, Role: model.RoleRingo, Performer: "DONNY"},
		{ShowID: showID, Role: model.RoleParticle, Performer: "HENRY"},
		{ShowID: showID, Role: model.RoleBin, Performer: "MOLLY"},
		{ShowID: showID, Role: model.RoleCornish, Performer: "LENNOX"},
		{ShowID: showID, Role: model.RoleWho, Performer: "JOSH"},
	}
}
