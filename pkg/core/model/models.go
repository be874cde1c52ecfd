package model

import (
	"slices"
	"time"
)

// Role names a capability a person can hold and an event can require,
// e.g. "Greeter" or "Usher". Roles are free-form per organization.
type Role string

// Person represents a member of an organization's serving roster
type Person struct {
	ID             string
	Name           string
	OrganizationID string
	Capabilities   []Role
}

// HasCapability returns true if the person can serve in the given role
func (p Person) HasCapability(role Role) bool {
	return slices.Contains(p.Capabilities, role)
}

// RoleRequirement is one unit of demand on an event: a role and how many
// people it needs. Requirements are a mandatory part of every Event.
type RoleRequirement struct {
	Role  Role
	Count int
}

// Event represents a single dated occurrence that needs roles filled
type Event struct {
	ID             string
	OrganizationID string
	Name           string
	Start          time.Time
	End            time.Time
	Requirements   []RoleRequirement
}

// TotalSlots returns the number of role-slots this event contributes
func (e Event) TotalSlots() int {
	total := 0
	for _, req := range e.Requirements {
		total += req.Count
	}
	return total
}

// TimeOffPeriod blocks a person from any event overlapping the period.
// Start and End are inclusive dates.
type TimeOffPeriod struct {
	PersonID string
	Start    time.Time
	End      time.Time
}

// Assignment is one committed (event, role, person) triple produced by the
// solver. Rank is the position the person held in the candidate ordering for
// the slot, Cost the fairness cost at commit time.
type Assignment struct {
	EventID  string
	Role     Role
	PersonID string
	Rank     int
	Cost     float64
}

// UnfilledReason explains why a role-slot could not be filled
type UnfilledReason string

const (
	// ReasonNoEligiblePerson means nobody on the roster has the capability,
	// or everyone who does is on time off for the event window.
	ReasonNoEligiblePerson UnfilledReason = "no eligible person"

	// ReasonAllEligibleConflict means at least one person was eligible on
	// capability and time off, but all of them were already committed to an
	// overlapping event.
	ReasonAllEligibleConflict UnfilledReason = "all eligible people conflict"
)

// UnfilledSlot records one role-slot the solver could not fill
type UnfilledSlot struct {
	EventID string
	Role    Role
	Reason  UnfilledReason
}

// Solution is one complete, immutable output of a solver run. Older
// Solutions are retained unmodified; a new run always produces a new one.
type Solution struct {
	ID             string
	OrganizationID string
	CreatedAt      time.Time
	Assignments    []Assignment
	Unfilled       []UnfilledSlot

	AssignmentCount   int
	UnfilledSlotCount int
	// FairnessSpread is max load minus min load across people who received
	// at least one assignment in this solution, including their history.
	FairnessSpread int

	// Incomplete is set when the backtracking strategy ran out of budget and
	// the solution was finished with the greedy fallback.
	Incomplete bool
}
