package scheduler

import (
	"sort"

	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
)

// Grid is the mutable per-show, per-role assignment store the generator
// fills. It performs no validation of its own; constraint checks live in
// Checker. Cells are allocated once and reused across retry attempts via
// Clear, so each generation run owns exactly one Grid.
type Grid struct {
	timeline  *Timeline
	roleIndex map[model.Role]int
	cells     [][]string // [show ordinal][role index] -> performer name
}

// NewGrid allocates an empty grid over the timeline's performance shows.
func NewGrid(timeline *Timeline) *Grid {
	g := &Grid{
		timeline:  timeline,
		roleIndex: make(map[model.Role]int, len(model.AllRoles)),
		cells:     make([][]string, timeline.Len()),
	}
	for i, role := range model.AllRoles {
		g.roleIndex[role] = i
	}
	for i := range g.cells {
		g.cells[i] = make([]string, len(model.AllRoles))
	}
	return g
}

// Clear resets every show to all-roles-empty without reallocating.
func (g *Grid) Clear() {
	for _, row := range g.cells {
		for i := range row {
			row[i] = ""
		}
	}
}

// Set records a performer for a role in a show. Unknown shows and roles are
// ignored; the grid only covers performance shows and performing roles.
func (g *Grid) Set(showID string, role model.Role, performer string) {
	ordinal, ok := g.timeline.Ordinal(showID)
	if !ok {
		return
	}
	idx, ok := g.roleIndex[role]
	if !ok {
		return
	}
	g.cells[ordinal][idx] = performer
}

// Get returns the performer holding a role in a show, or empty.
func (g *Grid) Get(showID string, role model.Role) string {
	ordinal, ok := g.timeline.Ordinal(showID)
	if !ok {
		return ""
	}
	idx, ok := g.roleIndex[role]
	if !ok {
		return ""
	}
	return g.cells[ordinal][idx]
}

// HasPerformer reports whether the performer already holds any role in the
// show. Name comparison is case-normalized.
func (g *Grid) HasPerformer(showID, performer string) bool {
	ordinal, ok := g.timeline.Ordinal(showID)
	if !ok {
		return false
	}
	want := model.NormalizeName(performer)
	for _, name := range g.cells[ordinal] {
		if name != "" && model.NormalizeName(name) == want {
			return true
		}
	}
	return false
}

// Ordinals returns the sorted show ordinals where the performer appears.
func (g *Grid) Ordinals(performer string) []int {
	want := model.NormalizeName(performer)
	var ordinals []int
	for ordinal, row := range g.cells {
		for _, name := range row {
			if name != "" && model.NormalizeName(name) == want {
				ordinals = append(ordinals, ordinal)
				break
			}
		}
	}
	sort.Ints(ordinals)
	return ordinals
}

// ShowCount returns the number of distinct shows the performer appears in.
func (g *Grid) ShowCount(performer string) int {
	return len(g.Ordinals(performer))
}

// Assignments flattens the non-empty cells into Assignment records, in
// timeline order then role order.
func (g *Grid) Assignments() []model.Assignment {
	assignments := make([]model.Assignment, 0, len(g.cells)*len(model.AllRoles))
	for ordinal, row := range g.cells {
		showID := g.timeline.ShowAt(ordinal).ID
		for idx, name := range row {
			if name == "" {
				continue
			}
			assignments = append(assignments, model.Assignment{
				ShowID:    showID,
				Role:      model.AllRoles[idx],
				Performer: name,
			})
		}
	}
	return assignments
}
