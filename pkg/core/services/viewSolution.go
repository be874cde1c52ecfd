package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stbarnabas/serveteam/pkg/db"
)

// ViewSolutionStore defines the database operations needed to view a solution
type ViewSolutionStore interface {
	GetSolutions(ctx context.Context, organizationID string) ([]db.Solution, error)
	GetAssignments(ctx context.Context, solutionID string) ([]db.Assignment, error)
	GetUnfilledSlots(ctx context.Context, solutionID string) ([]db.UnfilledSlot, error)
	GetEventsByIDs(ctx context.Context, ids []string) ([]db.Event, error)
	GetPeople(ctx context.Context, organizationID string) ([]db.Person, error)
}

// SolutionView is a solution resolved against its events and people for
// display and export
type SolutionView struct {
	Solution    db.Solution
	Assignments []db.Assignment
	Unfilled    []db.UnfilledSlot

	// Events and People index the rows referenced by the solution by ID
	Events map[string]db.Event
	People map[string]db.Person
}

// ViewSolution loads a solution with its assignments and unfilled slots,
// resolving referenced events and people. An empty solutionID selects the
// organization's most recent solution.
func ViewSolution(
	ctx context.Context,
	database ViewSolutionStore,
	organizationID string,
	solutionID string,
	logger *zap.Logger,
) (*SolutionView, error) {
	logger.Debug("Fetching solutions", zap.String("organization_id", organizationID))
	solutions, err := database.GetSolutions(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch solutions: %w", err)
	}

	if len(solutions) == 0 {
		return nil, fmt.Errorf("no solutions found for organization %s - run solve first", organizationID)
	}

	var solution *db.Solution
	if solutionID == "" {
		// Solutions come back newest first
		solution = &solutions[0]
		logger.Debug("Using latest solution", zap.String("solution_id", solution.ID))
	} else {
		for i := range solutions {
			if solutions[i].ID == solutionID {
				solution = &solutions[i]
				break
			}
		}
		if solution == nil {
			return nil, fmt.Errorf("solution %s not found for organization %s", solutionID, organizationID)
		}
	}

	assignments, err := database.GetAssignments(ctx, solution.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	unfilled, err := database.GetUnfilledSlots(ctx, solution.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unfilled slots: %w", err)
	}

	eventIDs := collectEventIDs(assignments, unfilled)
	events, err := database.GetEventsByIDs(ctx, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	eventsByID := make(map[string]db.Event, len(events))
	for _, e := range events {
		eventsByID[e.ID] = e
	}

	people, err := database.GetPeople(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}

	peopleByID := make(map[string]db.Person, len(people))
	for _, p := range people {
		peopleByID[p.ID] = p
	}

	logger.Debug("Resolved solution",
		zap.String("solution_id", solution.ID),
		zap.Int("assignments", len(assignments)),
		zap.Int("unfilled_slots", len(unfilled)),
		zap.Int("events", len(events)))

	return &SolutionView{
		Solution:    *solution,
		Assignments: assignments,
		Unfilled:    unfilled,
		Events:      eventsByID,
		People:      peopleByID,
	}, nil
}

// collectEventIDs gathers the distinct event IDs referenced by a solution,
// preserving first-seen order
func collectEventIDs(assignments []db.Assignment, unfilled []db.UnfilledSlot) []string {
	seen := make(map[string]bool)
	var ids []string

	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, a := range assignments {
		add(a.EventID)
	}
	for _, u := range unfilled {
		add(u.EventID)
	}

	return ids
}
