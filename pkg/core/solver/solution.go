package solver

import (
	"time"

	"github.com/google/uuid"

	"github.com/stbarnabas/serveteam/pkg/core/model"
)

// buildSolution aggregates the final state into an immutable Solution value.
// Persistence is the caller's responsibility.
func (s *Solver) buildSolution(st *State) model.Solution {
	solution := model.Solution{
		ID:             uuid.New().String(),
		OrganizationID: s.snap.OrganizationID,
		CreatedAt:      time.Now().UTC(),
		Assignments:    st.Committed,
		Unfilled:       st.Unfilled,
		Incomplete:     st.Incomplete,
	}

	solution.AssignmentCount = len(solution.Assignments)
	solution.UnfilledSlotCount = len(solution.Unfilled)
	solution.FairnessSpread = fairnessSpread(solution.Assignments, s.snap.History)

	return solution
}

// fairnessSpread is max load minus min load over the people who received at
// least one assignment, counting both history and this solution's
// assignments. Zero when nobody was assigned.
func fairnessSpread(assignments []model.Assignment, history History) int {
	if len(assignments) == 0 {
		return 0
	}

	loads := make(map[string]int)
	for _, a := range assignments {
		loads[a.PersonID]++
	}

	first := true
	var minLoad, maxLoad int
	for personID, count := range loads {
		load := history.Load(personID) + count
		if first {
			minLoad, maxLoad = load, load
			first = false
			continue
		}
		if load < minLoad {
			minLoad = load
		}
		if load > maxLoad {
			maxLoad = load
		}
	}

	return maxLoad - minLoad
}
