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

// GenerateSolutionStore defines the database operations needed for a solve
type GenerateSolutionStore interface {
	GetPeople(ctx context.Context, organizationID string) ([]db.Person, error)
	GetEvents(ctx context.Context, organizationID string, from, until time.Time) ([]db.Event, error)
	GetTimeOff(ctx context.Context, organizationID string, from, until time.Time) ([]db.TimeOff, error)
	GetAssignmentHistory(ctx context.Context, organizationID string, since time.Time) ([]db.AssignmentHistoryRow, error)
	InsertSolution(ctx context.Context, solution db.Solution, assignments []db.Assignment, unfilled []db.UnfilledSlot) error
}

// GenerateOptions controls one solver run
type GenerateOptions struct {
	// From and Until bound the event window being solved
	From  time.Time
	Until time.Time

	// DryRun solves without persisting the resulting solution
	DryRun bool
}

// GenerateSolutionResult contains the solver output and whether it was saved
type GenerateSolutionResult struct {
	Solution  model.Solution
	Persisted bool
}

// GenerateSolution loads the roster, events, time off, and assignment history
// for the configured organization, runs the solver over the window, and saves
// the resulting solution unless dryRun is set. Solutions are append-only: a
// re-run produces a new solution and leaves earlier ones untouched.
func GenerateSolution(
	ctx context.Context,
	database GenerateSolutionStore,
	cfg *config.Config,
	logger *zap.Logger,
	opts GenerateOptions,
) (*GenerateSolutionResult, error) {
	logger.Debug("Starting generateSolution",
		zap.Time("from", opts.From),
		zap.Time("until", opts.Until),
		zap.Bool("dry_run", opts.DryRun))

	if opts.Until.Before(opts.From) {
		return nil, fmt.Errorf("window ends before it starts: %s to %s",
			opts.From.Format("2006-01-02"), opts.Until.Format("2006-01-02"))
	}

	logger.Debug("Fetching people")
	people, err := database.GetPeople(ctx, cfg.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}
	logger.Debug("Found people", zap.Int("count", len(people)))

	if len(people) == 0 {
		return nil, fmt.Errorf("no people found for organization %s", cfg.OrganizationID)
	}

	logger.Debug("Fetching events")
	events, err := database.GetEvents(ctx, cfg.OrganizationID, opts.From, opts.Until)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	logger.Debug("Found events", zap.Int("count", len(events)))

	if len(events) == 0 {
		return nil, fmt.Errorf("no events found between %s and %s - seed events first",
			opts.From.Format("2006-01-02"), opts.Until.Format("2006-01-02"))
	}

	logger.Debug("Fetching time off")
	timeOff, err := database.GetTimeOff(ctx, cfg.OrganizationID, opts.From, opts.Until)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time off: %w", err)
	}
	logger.Debug("Found time off periods", zap.Int("count", len(timeOff)))

	asOf := time.Now().UTC()
	since := asOf.AddDate(0, 0, -cfg.HistoryWindow())
	logger.Debug("Fetching assignment history", zap.Time("since", since))
	historyRows, err := database.GetAssignmentHistory(ctx, cfg.OrganizationID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment history: %w", err)
	}
	logger.Debug("Found prior assignments", zap.Int("count", len(historyRows)))

	snapshot := solver.Snapshot{
		OrganizationID: cfg.OrganizationID,
		People:         peopleToModel(people),
		Events:         eventsToModel(events),
		TimeOff:        timeOffToModel(timeOff),
		History:        BuildHistory(historyRows, asOf),
	}
	solverCfg := cfg.SolverConfig()

	logger.Info("Running solver",
		zap.String("strategy", solverCfg.Strategy),
		zap.Int("people", len(snapshot.People)),
		zap.Int("events", len(snapshot.Events)))

	solution, err := solver.Solve(snapshot, solverCfg)
	if err != nil {
		return nil, fmt.Errorf("solve failed: %w", err)
	}

	logger.Info("Solve completed",
		zap.String("solution_id", solution.ID),
		zap.Int("assignments", solution.AssignmentCount),
		zap.Int("unfilled_slots", solution.UnfilledSlotCount),
		zap.Int("fairness_spread", solution.FairnessSpread),
		zap.Bool("incomplete", solution.Incomplete))

	for _, slot := range solution.Unfilled {
		logger.Warn("Unfilled slot",
			zap.String("event_id", slot.EventID),
			zap.String("role", string(slot.Role)),
			zap.String("reason", string(slot.Reason)))
	}

	if opts.DryRun {
		logger.Info("Dry run mode - solution not saved")
		return &GenerateSolutionResult{Solution: solution}, nil
	}

	header, assignments, unfilled := solutionToDB(solution)
	if err := database.InsertSolution(ctx, header, assignments, unfilled); err != nil {
		return nil, fmt.Errorf("failed to save solution: %w", err)
	}
	logger.Info("Solution saved", zap.String("solution_id", solution.ID))

	return &GenerateSolutionResult{Solution: solution, Persisted: true}, nil
}
