package solver

import (
	"fmt"
	"sort"

	"github.com/stbarnabas/serveteam/pkg/core/model"
)

// Solver runs the assignment search over one immutable Snapshot. It holds no
// global state: concurrent solves for different organizations use separate
// Solver values and cannot interfere.
type Solver struct {
	cfg  Config
	snap Snapshot

	peopleByID      map[string]model.Person
	timeOffByPerson map[string][]model.TimeOffPeriod
	worklist        []RoleSlot
}

// New validates the snapshot and prepares a Solver. All structural input
// errors surface here, wrapped in ErrInvalidInput, before any assignment
// work happens.
func New(snap Snapshot, cfg Config) (*Solver, error) {
	s := &Solver{
		cfg:             cfg,
		snap:            snap,
		peopleByID:      make(map[string]model.Person, len(snap.People)),
		timeOffByPerson: make(map[string][]model.TimeOffPeriod),
	}

	if err := s.validateSnapshot(); err != nil {
		return nil, err
	}

	for _, off := range snap.TimeOff {
		s.timeOffByPerson[off.PersonID] = append(s.timeOffByPerson[off.PersonID], off)
	}

	s.worklist = buildWorklist(snap.Events)

	return s, nil
}

// Solve validates inputs, runs the configured strategy, and builds the
// Solution. It is the package entry point for one complete solver run.
func Solve(snap Snapshot, cfg Config) (model.Solution, error) {
	s, err := New(snap, cfg)
	if err != nil {
		return model.Solution{}, err
	}
	return s.Run()
}

// Run executes the configured search strategy and builds the Solution
func (s *Solver) Run() (model.Solution, error) {
	st := newState(s.worklist)

	strategy, err := s.strategy()
	if err != nil {
		return model.Solution{}, err
	}

	if err := strategy.Solve(s, st); err != nil {
		return model.Solution{}, fmt.Errorf("%s strategy failed: %w", strategy.Name(), err)
	}
	st.Phase = StateDone

	return s.buildSolution(st), nil
}

func (s *Solver) strategy() (Strategy, error) {
	switch s.cfg.Strategy {
	case "", StrategyGreedy:
		return &GreedyStrategy{}, nil
	case StrategyBacktracking:
		return &BacktrackingStrategy{Budget: s.cfg.SearchBudget}, nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidInput, s.cfg.Strategy)
	}
}

func (s *Solver) validateSnapshot() error {
	for _, person := range s.snap.People {
		if person.ID == "" {
			return fmt.Errorf("%w: person with empty id", ErrInvalidInput)
		}
		if _, dup := s.peopleByID[person.ID]; dup {
			return fmt.Errorf("%w: duplicate person id %q", ErrInvalidInput, person.ID)
		}
		s.peopleByID[person.ID] = person
	}

	eventIDs := make(map[string]bool, len(s.snap.Events))
	for _, event := range s.snap.Events {
		if event.ID == "" {
			return fmt.Errorf("%w: event with empty id", ErrInvalidInput)
		}
		if eventIDs[event.ID] {
			return fmt.Errorf("%w: duplicate event id %q", ErrInvalidInput, event.ID)
		}
		eventIDs[event.ID] = true

		if event.End.Before(event.Start) {
			return fmt.Errorf("%w: event %q ends before it starts", ErrInvalidInput, event.ID)
		}
		if len(event.Requirements) == 0 {
			return fmt.Errorf("%w: event %q has no role requirements", ErrInvalidInput, event.ID)
		}
		for _, req := range event.Requirements {
			if req.Role == "" {
				return fmt.Errorf("%w: event %q has a requirement with an empty role", ErrInvalidInput, event.ID)
			}
			if req.Count < 1 {
				return fmt.Errorf("%w: event %q requires %d of role %q", ErrInvalidInput, event.ID, req.Count, req.Role)
			}
		}
	}

	for _, off := range s.snap.TimeOff {
		if _, ok := s.peopleByID[off.PersonID]; !ok {
			return fmt.Errorf("%w: time off references unknown person %q", ErrInvalidInput, off.PersonID)
		}
		if off.End.Before(off.Start) {
			return fmt.Errorf("%w: time off for %q ends before it starts", ErrInvalidInput, off.PersonID)
		}
	}

	return nil
}

// buildWorklist expands events into one RoleSlot per headcount unit, ordered
// by event start, then event id, then role name, then ordinal. The ordering
// is part of the solver's determinism contract.
func buildWorklist(events []model.Event) []RoleSlot {
	var slots []RoleSlot
	for _, event := range events {
		for _, req := range event.Requirements {
			for ordinal := 0; ordinal < req.Count; ordinal++ {
				slots = append(slots, RoleSlot{Event: event, Role: req.Role, Ordinal: ordinal})
			}
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if !a.Event.Start.Equal(b.Event.Start) {
			return a.Event.Start.Before(b.Event.Start)
		}
		if a.Event.ID != b.Event.ID {
			return a.Event.ID < b.Event.ID
		}
		if a.Role != b.Role {
			return a.Role < b.Role
		}
		return a.Ordinal < b.Ordinal
	})

	return slots
}
