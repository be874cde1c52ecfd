package solver

import (
	"errors"
	"time"

	"github.com/stbarnabas/serveteam/pkg/core/model"
)

// BacktrackingStrategy explores alternative commitments with depth-first
// search, maximizing the number of filled slots. Unlike the greedy strategy
// it will leave a slot open when doing so frees a person to fill more slots
// elsewhere. The search is bounded by a wall-clock Budget: on expiry it
// abandons its partial exploration and finishes with the greedy strategy,
// marking the result Incomplete. It never leaves a half-committed state.
type BacktrackingStrategy struct {
	Budget time.Duration
}

func (b *BacktrackingStrategy) Name() string {
	return StrategyBacktracking
}

func (b *BacktrackingStrategy) Solve(s *Solver, st *State) error {
	st.Phase = StateBacktracking

	budget := b.Budget
	if budget <= 0 {
		budget = DefaultConfig().SearchBudget
	}

	search := &backtrackSearch{
		solver:       s,
		st:           st,
		deadline:     time.Now().Add(budget),
		bestUnfilled: len(st.Worklist) + 1,
	}

	err := search.expand(0)
	if errors.Is(err, errDeadlineExceeded) {
		// Budget exhausted: discard the partial exploration and fall back
		// to the deterministic greedy pass.
		reset := newState(st.Worklist)
		greedy := &GreedyStrategy{}
		if err := greedy.Solve(s, reset); err != nil {
			return err
		}
		*st = *reset
		st.Phase = StateBacktracking
		st.Incomplete = true
		return nil
	}
	if err != nil {
		return err
	}

	search.restoreBest()
	return nil
}

type backtrackSearch struct {
	solver   *Solver
	st       *State
	deadline time.Time

	bestCommitted     []model.Assignment
	bestUnfilledSlots []model.UnfilledSlot
	bestUnfilled      int
}

// expand fills worklist slots from index onward, recording the best complete
// labeling seen so far. Candidate order and the trailing leave-open branch
// make the exploration deterministic.
func (bs *backtrackSearch) expand(index int) error {
	if time.Now().After(bs.deadline) {
		return errDeadlineExceeded
	}

	st := bs.st

	if index == len(st.Worklist) {
		if len(st.Unfilled) < bs.bestUnfilled {
			bs.bestUnfilled = len(st.Unfilled)
			bs.bestCommitted = append([]model.Assignment(nil), st.Committed...)
			bs.bestUnfilledSlots = append([]model.UnfilledSlot(nil), st.Unfilled...)
		}
		return nil
	}

	// Bound: the current branch cannot beat the best even if every
	// remaining slot is filled.
	if len(st.Unfilled) >= bs.bestUnfilled {
		return nil
	}

	slot := st.Worklist[index]
	candidates, reason := bs.solver.CandidatesForSlot(st, slot)

	for rank, candidate := range candidates {
		st.commit(slot, candidate.Person, rank, candidate.Cost)
		if err := bs.expand(index + 1); err != nil {
			return err
		}
		st.uncommit()
		if bs.bestUnfilled == 0 {
			return nil
		}
	}

	// Leave-open branch: with candidates present this only wins when the
	// person is worth more on later overlapping slots.
	if reason == "" {
		reason = model.ReasonAllEligibleConflict
	}
	st.recordUnfilled(slot, reason)
	err := bs.expand(index + 1)
	st.Unfilled = st.Unfilled[:len(st.Unfilled)-1]
	return err
}

// restoreBest rewrites the working state with the best complete labeling
func (bs *backtrackSearch) restoreBest() {
	st := bs.st
	st.Committed = bs.bestCommitted
	st.Unfilled = bs.bestUnfilledSlots
	if st.Committed == nil {
		st.Committed = []model.Assignment{}
	}
	if st.Unfilled == nil {
		st.Unfilled = []model.UnfilledSlot{}
	}

	st.committedEvents = make(map[string][]model.Event)
	for _, a := range st.Committed {
		if event, ok := bs.solver.eventByID(a.EventID); ok {
			st.committedEvents[a.PersonID] = append(st.committedEvents[a.PersonID], event)
		}
	}
}
