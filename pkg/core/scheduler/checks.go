package scheduler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
)

// checkContext carries the per-pass caches shared by the validation checks:
// the sorted timeline, the show and roster lookups, and the assignments
// grouped by show and by performer. It is rebuilt on every validation call.
type checkContext struct {
	timeline  *Timeline
	showsByID map[string]model.Show
	roster    map[string]model.CastMember // keyed by normalized name
	cast      []model.CastMember

	// roleHolders maps showID -> role -> performers holding it (normally one)
	roleHolders map[string]map[model.Role][]string
	// performerRoles maps showID -> normalized name -> roles held in that show
	performerRoles map[string]map[string][]model.Role
	// ordinals maps normalized name -> sorted distinct performance ordinals
	ordinals map[string][]int

	// strict applies the comprehensive scorer's harder grading (cardinality
	// shortfalls become errors scaled by how incomplete the show is).
	strict bool

	assignments []model.Assignment
	issues      []model.ValidationIssue
}

func newCheckContext(shows []model.Show, assignments []model.Assignment, cast []model.CastMember, strict bool) *checkContext {
	ctx := &checkContext{
		timeline:       NewTimeline(shows),
		showsByID:      make(map[string]model.Show, len(shows)),
		roster:         make(map[string]model.CastMember, len(cast)),
		cast:           cast,
		roleHolders:    make(map[string]map[model.Role][]string),
		performerRoles: make(map[string]map[string][]model.Role),
		ordinals:       make(map[string][]int),
		strict:         strict,
		assignments:    assignments,
	}

	for _, show := range shows {
		ctx.showsByID[show.ID] = show
	}
	for _, member := range cast {
		ctx.roster[model.NormalizeName(member.Name)] = member
	}

	for _, a := range assignments {
		if a.Role == model.RoleOff {
			continue
		}
		if _, ok := ctx.roleHolders[a.ShowID]; !ok {
			ctx.roleHolders[a.ShowID] = make(map[model.Role][]string)
			ctx.performerRoles[a.ShowID] = make(map[string][]model.Role)
		}
		ctx.roleHolders[a.ShowID][a.Role] = append(ctx.roleHolders[a.ShowID][a.Role], a.Performer)
		name := model.NormalizeName(a.Performer)
		ctx.performerRoles[a.ShowID][name] = append(ctx.performerRoles[a.ShowID][name], a.Role)

		if ordinal, ok := ctx.timeline.Ordinal(a.ShowID); ok {
			ctx.ordinals[name] = appendOrdinal(ctx.ordinals[name], ordinal)
		}
	}

	return ctx
}

func appendOrdinal(ordinals []int, ordinal int) []int {
	for _, o := range ordinals {
		if o == ordinal {
			return ordinals
		}
	}
	ordinals = append(ordinals, ordinal)
	sort.Ints(ordinals)
	return ordinals
}

func (ctx *checkContext) add(issue model.ValidationIssue) {
	ctx.issues = append(ctx.issues, issue)
}

// orderedShowIDs returns the shows that carry role assignments in a stable
// order: timeline order first, then any shows outside the timeline (unknown
// or non-performance references) sorted by id. Checks walk this instead of
// ranging over the holder maps so repeated validation of the same input
// emits issues in the same order.
func (ctx *checkContext) orderedShowIDs() []string {
	ids := make([]string, 0, len(ctx.roleHolders))
	for ordinal := 0; ordinal < ctx.timeline.Len(); ordinal++ {
		id := ctx.timeline.ShowAt(ordinal).ID
		if _, ok := ctx.roleHolders[id]; ok {
			ids = append(ids, id)
		}
	}
	var rest []string
	for id := range ctx.roleHolders {
		if _, ok := ctx.timeline.Ordinal(id); !ok {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(ids, rest...)
}

// orderedRoles returns a show's assigned roles in casting order, with any
// role names outside the standard eight appended alphabetically.
func orderedRoles(holders map[model.Role][]string) []model.Role {
	roles := make([]model.Role, 0, len(holders))
	for _, role := range model.AllRoles {
		if _, ok := holders[role]; ok {
			roles = append(roles, role)
		}
	}
	var rest []model.Role
	for role := range holders {
		if !knownRole(role) {
			rest = append(rest, role)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(roles, rest...)
}

func knownRole(role model.Role) bool {
	for _, r := range model.AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

func sortedPerformerNames(byPerformer map[string][]model.Role) []string {
	names := make([]string, 0, len(byPerformer))
	for name := range byPerformer {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// runChecks re-derives every validation issue from scratch for the
// context's input. It never returns an error: degenerate input (no shows,
// no assignments) simply yields no issues.
func runChecks(ctx *checkContext) []model.ValidationIssue {
	ctx.checkReferences(ctx.assignments)
	ctx.checkSpecialDays(ctx.assignments)

	// With no role assignments at all there is nothing further to grade.
	if len(ctx.roleHolders) > 0 {
		ctx.checkCardinality()
		ctx.checkEligibility()
		ctx.checkExclusivity()
		ctx.checkConsecutiveRuns()
		ctx.checkLoadBalance()
	}

	return ctx.issues
}

// checkReferences flags assignments pointing at unknown shows or performers
// missing from the roster. These are input errors, never panics.
func (ctx *checkContext) checkReferences(assignments []model.Assignment) {
	for _, a := range assignments {
		if _, ok := ctx.showsByID[a.ShowID]; !ok {
			ctx.add(model.ValidationIssue{
				Severity: model.SeverityError,
				Priority: model.PriorityHigh,
				Category: model.CategoryCardinality,
				Message:  fmt.Sprintf("assignment for %s references unknown show %q", a.Performer, a.ShowID),
				ShowID:   a.ShowID,
				Role:     a.Role,
			})
			continue
		}
		if a.Role == model.RoleOff {
			continue
		}
		if _, ok := ctx.roster[model.NormalizeName(a.Performer)]; !ok {
			ctx.add(model.ValidationIssue{
				Severity:   model.SeverityError,
				Priority:   model.PriorityHigh,
				Category:   model.CategoryEligibility,
				Message:    fmt.Sprintf("%s is assigned to %s but is not on the roster", a.Performer, a.Role),
				Performer:  a.Performer,
				ShowID:     a.ShowID,
				Role:       a.Role,
				Suggestion: ctx.suggestAlternatives(a.ShowID, a.Role, a.Performer),
			})
		}
	}
}

// checkSpecialDays rejects role assignments on travel and day-off entries
// and records an informational note about how many non-performance days the
// week carries.
func (ctx *checkContext) checkSpecialDays(assignments []model.Assignment) {
	for _, a := range assignments {
		show, ok := ctx.showsByID[a.ShowID]
		if !ok || show.IsPerformance() || a.Role == model.RoleOff {
			continue
		}
		ctx.add(model.ValidationIssue{
			Severity:  model.SeverityError,
			Priority:  model.PriorityHigh,
			Category:  model.CategorySpecialDay,
			Message:   fmt.Sprintf("%s is assigned to %s on %s, which is a %s day, not a performance", a.Performer, a.Role, show.Date, show.Status),
			Performer: a.Performer,
			ShowID:    a.ShowID,
			Role:      a.Role,
		})
	}

	special := 0
	for _, show := range ctx.showsByID {
		if !show.IsPerformance() {
			special++
		}
	}
	if special > 0 {
		ctx.add(model.ValidationIssue{
			Severity: model.SeverityInfo,
			Priority: model.PriorityLow,
			Category: model.CategorySpecialDay,
			Message:  fmt.Sprintf("week contains %d non-performance day(s); they are excluded from all load and fatigue counts", special),
		})
	}
}

// checkCardinality verifies each performance show fills all eight roles
// with eight distinct performers.
func (ctx *checkContext) checkCardinality() {
	for ordinal := 0; ordinal < ctx.timeline.Len(); ordinal++ {
		show := ctx.timeline.ShowAt(ordinal)
		holders := ctx.roleHolders[show.ID]

		var missing []model.Role
		for _, role := range model.AllRoles {
			names := holders[role]
			if len(names) == 0 {
				missing = append(missing, role)
			} else if len(names) > 1 {
				ctx.add(model.ValidationIssue{
					Severity: model.SeverityError,
					Priority: model.PriorityCritical,
					Category: model.CategoryCardinality,
					Message:  fmt.Sprintf("show %s on %s has %d performers recorded for %s (%s)", show.ID, show.Date, len(names), role, strings.Join(names, ", ")),
					ShowID:   show.ID,
					Role:     role,
				})
			}
		}

		if len(missing) > 0 {
			severity := model.SeverityWarning
			priority := model.PriorityMedium
			if ctx.strict {
				severity = model.SeverityError
				if len(missing) >= 4 {
					priority = model.PriorityHigh
				}
			}
			ctx.add(model.ValidationIssue{
				Severity:   severity,
				Priority:   priority,
				Category:   model.CategoryCardinality,
				Message:    fmt.Sprintf("show %s on %s has %d of %d roles filled", show.ID, show.Date, len(model.AllRoles)-len(missing), len(model.AllRoles)),
				ShowID:     show.ID,
				Suggestion: fmt.Sprintf("fill the open roles: %s", joinRoles(missing)),
			})
		}

		// More than eight distinct performers can only happen with duplicate
		// role rows, but it is still checked here on its own.
		if len(ctx.performerRoles[show.ID]) > len(model.AllRoles) {
			ctx.add(model.ValidationIssue{
				Severity: model.SeverityError,
				Priority: model.PriorityCritical,
				Category: model.CategoryCardinality,
				Message:  fmt.Sprintf("show %s on %s has %d distinct performers for %d roles", show.ID, show.Date, len(ctx.performerRoles[show.ID]), len(model.AllRoles)),
				ShowID:   show.ID,
			})
		}
	}
}

// checkEligibility verifies every role assignment goes to a roster member
// who can cover that role, suggesting alternatives when one cannot.
func (ctx *checkContext) checkEligibility() {
	for _, showID := range ctx.orderedShowIDs() {
		holders := ctx.roleHolders[showID]
		for _, role := range orderedRoles(holders) {
			for _, name := range holders[role] {
				member, ok := ctx.roster[model.NormalizeName(name)]
				if !ok {
					continue // reported by checkReferences
				}
				if member.IsEligible(role) {
					continue
				}
				ctx.add(model.ValidationIssue{
					Severity:   model.SeverityError,
					Priority:   model.PriorityHigh,
					Category:   model.CategoryEligibility,
					Message:    fmt.Sprintf("%s is not eligible for %s in show %s", name, role, showID),
					Performer:  name,
					ShowID:     showID,
					Role:       role,
					Suggestion: ctx.suggestAlternatives(showID, role, name),
				})
			}
		}
	}
}

// checkExclusivity flags performers holding more than one role in a single
// show.
func (ctx *checkContext) checkExclusivity() {
	for _, showID := range ctx.orderedShowIDs() {
		byPerformer := ctx.performerRoles[showID]
		for _, name := range sortedPerformerNames(byPerformer) {
			roles := byPerformer[name]
			if len(roles) < 2 {
				continue
			}
			display := name
			if member, ok := ctx.roster[name]; ok {
				display = member.Name
			}
			surplus := roles[1]
			ctx.add(model.ValidationIssue{
				Severity:   model.SeverityError,
				Priority:   model.PriorityCritical,
				Category:   model.CategoryExclusivity,
				Message:    fmt.Sprintf("%s holds %d roles in show %s (%s)", display, len(roles), showID, joinRoles(roles)),
				Performer:  display,
				ShowID:     showID,
				Role:       surplus,
				Suggestion: ctx.suggestAlternatives(showID, surplus, display),
			})
		}
	}
}

// checkConsecutiveRuns recomputes each performer's consecutive-show
// sequences and flags runs at or past the fatigue thresholds.
func (ctx *checkContext) checkConsecutiveRuns() {
	names := make([]string, 0, len(ctx.ordinals))
	for name := range ctx.ordinals {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		member, onRoster := ctx.roster[name]
		display := name
		if onRoster {
			display = member.Name
		}
		for _, seq := range BuildSequences(ctx.timeline, ctx.ordinals[name]) {
			if seq.Count < ConsecutiveWarning {
				continue
			}
			severity := model.SeverityWarning
			priority := model.PriorityMedium
			message := fmt.Sprintf("%s has %d consecutive shows from %s to %s", display, seq.Count, seq.StartDate, seq.EndDate)
			if seq.Count >= MaxConsecutiveShows {
				severity = model.SeverityError
				priority = model.PriorityCritical
				message += " - burnout risk"
			}
			ctx.add(model.ValidationIssue{
				Severity:   severity,
				Priority:   priority,
				Category:   model.CategoryConsecutive,
				Message:    message,
				Performer:  display,
				Suggestion: ctx.suggestMidpointSwap(display, seq),
			})
		}
	}
}

// checkLoadBalance compares each roster member's distinct-show count
// against the company average. The average counts only members who perform
// at least once this week; idle members are graded against it, not folded
// into it.
func (ctx *checkContext) checkLoadBalance() {
	activeShows := len(ctx.roleHolders)
	if activeShows == 0 {
		return
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
	if working == 0 {
		return
	}
	average := float64(total) / float64(working)

	for _, member := range ctx.cast {
		count := len(ctx.ordinals[model.NormalizeName(member.Name)])
		if count < 2 && activeShows >= 4 {
			ctx.add(model.ValidationIssue{
				Severity:   model.SeverityWarning,
				Priority:   model.PriorityLow,
				Category:   model.CategoryLoadBalance,
				Message:    fmt.Sprintf("%s is underutilized with %d show(s) out of %d", member.Name, count, activeShows),
				Performer:  member.Name,
				Suggestion: fmt.Sprintf("consider moving one of the busier performers' shows to %s", member.Name),
			})
		}
		if activeShows > 4 && float64(count) > 1.5*average {
			ctx.add(model.ValidationIssue{
				Severity:   model.SeverityWarning,
				Priority:   model.PriorityMedium,
				Category:   model.CategoryLoadBalance,
				Message:    fmt.Sprintf("%s is overworked with %d shows against a cast average of %.1f", member.Name, count, average),
				Performer:  member.Name,
				Suggestion: "rebalance toward performers with fewer shows",
			})
		}
	}
}

// suggestAlternatives names eligible roster members for the role who are
// not already booked in the show.
func (ctx *checkContext) suggestAlternatives(showID string, role model.Role, exclude string) string {
	booked := ctx.performerRoles[showID]
	var names []string
	for _, member := range ctx.cast {
		name := model.NormalizeName(member.Name)
		if name == model.NormalizeName(exclude) {
			continue
		}
		if _, busy := booked[name]; busy {
			continue
		}
		if member.IsEligible(role) {
			names = append(names, member.Name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	if len(names) > 3 {
		names = names[:3]
	}
	return fmt.Sprintf("try %s for %s", strings.Join(names, ", "), role)
}

// suggestMidpointSwap proposes a concrete swap at the midpoint of a
// consecutive run.
func (ctx *checkContext) suggestMidpointSwap(performer string, seq model.ConsecutiveSequence) string {
	mid := -1
	seen := 0
	target := seq.Count / 2
	for _, ordinal := range ctx.ordinals[model.NormalizeName(performer)] {
		if ordinal < seq.StartIndex || ordinal > seq.EndIndex {
			continue
		}
		if seen == target {
			mid = ordinal
			break
		}
		seen++
	}
	if mid < 0 {
		return ""
	}

	show := ctx.timeline.ShowAt(mid)
	roles := ctx.performerRoles[show.ID][model.NormalizeName(performer)]
	if len(roles) == 0 {
		return ""
	}
	alternative := ctx.suggestAlternatives(show.ID, roles[0], performer)
	if alternative == "" {
		return fmt.Sprintf("give %s the show on %s off to break the run", performer, show.Date)
	}
	return fmt.Sprintf("swap %s out of the %s show on %s: %s", performer, show.Time, show.Date, alternative)
}

func joinRoles(roles []model.Role) string {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	return strings.Join(names, ", ")
}
