package db

import (
	"context"
	"time"
)

// RosterStore defines roster database operations
type RosterStore interface {
	GetPeople(ctx context.Context, organizationID string) ([]Person, error)
}

// EventStore defines event database operations
type EventStore interface {
	GetEvents(ctx context.Context, organizationID string, from, until time.Time) ([]Event, error)
	GetEventsByIDs(ctx context.Context, ids []string) ([]Event, error)
	InsertEvents(ctx context.Context, events []Event) error
}

// TimeOffStore defines time-off database operations
type TimeOffStore interface {
	GetTimeOff(ctx context.Context, organizationID string, from, until time.Time) ([]TimeOff, error)
}

// SolutionStore defines solution database operations. Solutions are
// append-only: there are no update or delete operations by design.
type SolutionStore interface {
	GetSolutions(ctx context.Context, organizationID string) ([]Solution, error)
	GetAssignments(ctx context.Context, solutionID string) ([]Assignment, error)
	GetUnfilledSlots(ctx context.Context, solutionID string) ([]UnfilledSlot, error)
	GetAssignmentHistory(ctx context.Context, organizationID string, since time.Time) ([]AssignmentHistoryRow, error)
	InsertSolution(ctx context.Context, solution Solution, assignments []Assignment, unfilled []UnfilledSlot) error
}
