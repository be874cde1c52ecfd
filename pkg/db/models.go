package db

import "time"

// Person represents a database roster record
type Person struct {
	ID             string
	OrganizationID string
	Name           string
	Capabilities   []string
}

// RoleRequirement represents one role demand row on an event
type RoleRequirement struct {
	EventID   string
	Role      string
	HeadCount int
	Position  int
}

// Event represents a database event record. Requirements are loaded with
// the event; an event without requirements is invalid input to the solver.
type Event struct {
	ID             string
	OrganizationID string
	Name           string
	StartsAt       time.Time
	EndsAt         time.Time
	Requirements   []RoleRequirement
}

// TimeOff represents a database time-off record with inclusive dates
type TimeOff struct {
	ID        string
	PersonID  string
	StartDate time.Time
	EndDate   time.Time
}

// Solution represents a database solution header record
type Solution struct {
	ID                string
	OrganizationID    string
	CreatedAt         time.Time
	AssignmentCount   int
	UnfilledSlotCount int
	FairnessSpread    int
	Incomplete        bool
}

// Assignment represents one committed assignment row of a solution
type Assignment struct {
	ID         string
	SolutionID string
	EventID    string
	Role       string
	PersonID   string
	Rank       int
	Cost       float64
}

// UnfilledSlot represents one unfilled-slot diagnostic row of a solution
type UnfilledSlot struct {
	ID         string
	SolutionID string
	EventID    string
	Role       string
	Reason     string
}

// AssignmentHistoryRow is one prior assignment joined with its event start,
// the raw material for the solver's fairness history
type AssignmentHistoryRow struct {
	PersonID   string
	EventStart time.Time
}
