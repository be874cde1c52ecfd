package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stbarnabas/serveteam/internal/config"
	"github.com/stbarnabas/serveteam/pkg/core/model"
	"github.com/stbarnabas/serveteam/pkg/core/solver"
	"github.com/stbarnabas/serveteam/pkg/db"
)

// VerifySolutionStore defines the database operations needed to audit a
// stored solution
type VerifySolutionStore interface {
	ViewSolutionStore
	GetTimeOff(ctx context.Context, organizationID string, from, until time.Time) ([]db.TimeOff, error)
}

// VerifySolutionResult contains the audited solution and any violations found
type VerifySolutionResult struct {
	SolutionID string
	Violations []solver.Violation
}

// VerifySolution re-checks a stored solution against the current roster,
// events, and time off. An empty solutionID selects the most recent solution.
// Violations mean either the solution was tampered with or the underlying
// data changed after it was generated.
func VerifySolution(
	ctx context.Context,
	database VerifySolutionStore,
	cfg *config.Config,
	logger *zap.Logger,
	solutionID string,
) (*VerifySolutionResult, error) {
	view, err := ViewSolution(ctx, database, cfg.OrganizationID, solutionID, logger)
	if err != nil {
		return nil, err
	}

	events := make([]db.Event, 0, len(view.Events))
	for _, e := range view.Events {
		events = append(events, e)
	}

	from, until := eventWindow(events)
	var timeOff []db.TimeOff
	if !from.IsZero() {
		timeOff, err = database.GetTimeOff(ctx, cfg.OrganizationID, from, until)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch time off: %w", err)
		}
	}

	people := make([]db.Person, 0, len(view.People))
	for _, p := range view.People {
		people = append(people, p)
	}

	snapshot := solver.Snapshot{
		OrganizationID: cfg.OrganizationID,
		People:         peopleToModel(people),
		Events:         eventsToModel(events),
		TimeOff:        timeOffToModel(timeOff),
	}

	solution := solutionFromDB(view.Solution, view.Assignments, view.Unfilled)
	violations := solver.Verify(snapshot, cfg.SolverConfig(), solution)

	for _, v := range violations {
		logger.Warn("Violation",
			zap.String("event_id", v.EventID),
			zap.String("role", string(v.Role)),
			zap.String("person_id", v.PersonID),
			zap.String("description", v.Description))
	}

	logger.Info("Verification completed",
		zap.String("solution_id", view.Solution.ID),
		zap.Int("violations", len(violations)))

	return &VerifySolutionResult{
		SolutionID: view.Solution.ID,
		Violations: violations,
	}, nil
}

// solutionFromDB rebuilds a solver solution from its database records
func solutionFromDB(header db.Solution, assignments []db.Assignment, unfilled []db.UnfilledSlot) model.Solution {
	solution := model.Solution{
		ID:                header.ID,
		OrganizationID:    header.OrganizationID,
		CreatedAt:         header.CreatedAt,
		Assignments:       make([]model.Assignment, len(assignments)),
		Unfilled:          make([]model.UnfilledSlot, len(unfilled)),
		AssignmentCount:   header.AssignmentCount,
		UnfilledSlotCount: header.UnfilledSlotCount,
		FairnessSpread:    header.FairnessSpread,
		Incomplete:        header.Incomplete,
	}

	for i, a := range assignments {
		solution.Assignments[i] = model.Assignment{
			EventID:  a.EventID,
			Role:     model.Role(a.Role),
			PersonID: a.PersonID,
			Rank:     a.Rank,
			Cost:     a.Cost,
		}
	}
	for i, u := range unfilled {
		solution.Unfilled[i] = model.UnfilledSlot{
			EventID: u.EventID,
			Role:    model.Role(u.Role),
			Reason:  model.UnfilledReason(u.Reason),
		}
	}

	return solution
}

// eventWindow returns the earliest start and latest end across events
func eventWindow(events []db.Event) (time.Time, time.Time) {
	var from, until time.Time
	for _, e := range events {
		if from.IsZero() || e.StartsAt.Before(from) {
			from = e.StartsAt
		}
		if until.IsZero() || e.EndsAt.After(until) {
			until = e.EndsAt
		}
	}
	return from, until
}
