package model

import "strings"

// Role is one of the eight fixed on-stage roles in the show.
type Role string

const (
	RoleSarge    Role = "Sarge"
	RolePotato   Role = "Potato"
	RoleMozzie   Role = "Mozzie"
	RoleRingo    Role = "Ringo"
	RoleParticle Role = "Particle"
	RoleBin      Role = "Bin"
	RoleCornish  Role = "Cornish"
	RoleWho      Role = "Who"

	// RoleOff marks a cast member who is not performing in a show.
	RoleOff Role = "OFF"
)

// AllRoles lists every performing role in cast-sheet order.
var AllRoles = []Role{
	RoleSarge,
	RolePotato,
	RoleMozzie,
	RoleRingo,
	RoleParticle,
	RoleBin,
	RoleCornish,
	RoleWho,
}

func (r Role) IsValid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return r == RoleOff
}

// IsPerforming reports whether the role is an on-stage role (not OFF).
func (r Role) IsPerforming() bool {
	return r != RoleOff && r.IsValid()
}

// ParseRole converts a string into a Role, matching case-insensitively.
func ParseRole(s string) (Role, bool) {
	for _, role := range AllRoles {
		if strings.EqualFold(string(role), s) {
			return role, true
		}
	}
	if strings.EqualFold(string(RoleOff), s) {
		return RoleOff, true
	}
	return "", false
}

// CastMember represents a performer on the company roster.
// The engine treats roster data as read-only during a run.
type CastMember struct {
	Name          string
	EligibleRoles []Role
}

// IsEligible reports whether the cast member can cover the given role.
func (c CastMember) IsEligible(role Role) bool {
	for _, r := range c.EligibleRoles {
		if r == role {
			return true
		}
	}
	return false
}

// NormalizeName canonicalizes a performer name for identity comparisons.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// ShowStatus classifies a calendar entry.
type ShowStatus string

const (
	StatusPerformance ShowStatus = "performance"
	StatusTravel      ShowStatus = "travel"
	StatusDayOff      ShowStatus = "dayOff"
)

// CallTimeTBC is the placeholder used when a show's call time is not yet confirmed.
const CallTimeTBC = "TBC"

// Show represents a single calendar entry in a schedule week. Only entries
// with StatusPerformance are assigned; travel and day-off entries are
// passthrough context.
type Show struct {
	ID       string
	Date     string // 2006-01-02
	Time     string // 15:04
	CallTime string // 15:04 or CallTimeTBC
	Status   ShowStatus
}

// IsPerformance reports whether this show participates in assignment.
func (s Show) IsPerformance() bool {
	return s.Status == StatusPerformance
}

// Assignment binds a performer to a role (or OFF) for one show.
type Assignment struct {
	ShowID    string
	Role      Role
	Performer string
	IsRedDay  bool
}

// ConsecutiveSequence describes a run of performance-day indices during
// which a performer appears, tolerating gaps of up to two calendar days
// between consecutive appearances. Derived during validation, never stored.
type ConsecutiveSequence struct {
	StartIndex int
	EndIndex   int
	Count      int
	StartDate  string
	EndDate    string
}
