package model

// IssueSeverity classifies how a validation issue is reported.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
	SeverityInfo    IssueSeverity = "info"
)

// IssuePriority grades an issue for scoring purposes.
type IssuePriority string

const (
	PriorityCritical IssuePriority = "critical"
	PriorityHigh     IssuePriority = "high"
	PriorityMedium   IssuePriority = "medium"
	PriorityLow      IssuePriority = "low"
)

// IssueCategory groups validation issues by the rule that produced them.
type IssueCategory string

const (
	CategoryCardinality IssueCategory = "cardinality"
	CategoryEligibility IssueCategory = "eligibility"
	CategoryExclusivity IssueCategory = "exclusivity"
	CategoryConsecutive IssueCategory = "consecutive"
	CategoryLoadBalance IssueCategory = "load_balance"
	CategorySpecialDay  IssueCategory = "special_day"
)

// ValidationIssue describes a single problem (or observation) found while
// validating a schedule. Messages are written to be actionable: they name
// the offending entity and, where feasible, a concrete substitute.
type ValidationIssue struct {
	Severity   IssueSeverity
	Priority   IssuePriority
	Category   IssueCategory
	Message    string
	Performer  string
	ShowID     string
	Role       Role
	Suggestion string
}
