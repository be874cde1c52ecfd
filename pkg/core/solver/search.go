package solver

// Strategy is a pluggable search implementation. A strategy fills the
// State's worklist, leaving every slot either committed or recorded as
// unfilled. Implementations must be deterministic for identical inputs.
type Strategy interface {
	Name() string
	Solve(s *Solver, st *State) error
}

// GreedyStrategy fills slots in worklist order, committing the
// lowest-cost candidate for each and recording a diagnostic for slots with
// no candidates. It makes one pass and never revisits a committed slot:
// the domain's constraints are loose enough that myopic fairness-ordered
// filling produces acceptable fill rates, and a full search over thousands
// of slots would cost far more than the occasional extra filled slot is
// worth. Callers needing maximal fill use BacktrackingStrategy.
type GreedyStrategy struct{}

func (g *GreedyStrategy) Name() string {
	return StrategyGreedy
}

func (g *GreedyStrategy) Solve(s *Solver, st *State) error {
	st.Phase = StatePendingSlots

	for _, slot := range st.Worklist {
		candidates, reason := s.CandidatesForSlot(st, slot)
		if len(candidates) == 0 {
			st.recordUnfilled(slot, reason)
			continue
		}
		st.commit(slot, candidates[0].Person, 0, candidates[0].Cost)
	}

	return nil
}
