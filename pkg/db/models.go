package db

// Schedule represents a database schedule record: one week of shows.
type Schedule struct {
	ID        string
	WeekStart string // date format
	ShowCount int
}

// Show represents a database calendar entry record.
type Show struct {
	ID         string
	ScheduleID string
	Date       string // date format
	Time       string // wall time
	CallTime   string // wall time or TBC
	Status     string // performance, travel or dayOff
}

// Assignment represents a database assignment record.
type Assignment struct {
	ID         string
	ScheduleID string
	ShowID     string
	Role       string // role name or OFF
	Performer  string
	IsRedDay   bool
}
