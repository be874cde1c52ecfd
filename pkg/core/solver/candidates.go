package solver

import (
	"sort"

	"github.com/stbarnabas/serveteam/pkg/core/model"
)

// Candidate is one eligible person for a slot with their fairness cost
type Candidate struct {
	Person model.Person
	Cost   float64
}

// CandidatesForSlot returns the people eligible for the slot, ordered by
// fairness cost ascending with person id as the tie-break. An empty result
// is a normal outcome, not an error: the second return value then carries
// the diagnostic reason. ReasonNoEligiblePerson means nobody passed the
// capability and time-off checks; ReasonAllEligibleConflict means everyone
// who did was already committed to an overlapping event.
func (s *Solver) CandidatesForSlot(st *State, slot RoleSlot) ([]Candidate, model.UnfilledReason) {
	var candidates []Candidate
	hadCapable := false

	for _, person := range s.snap.People {
		if !person.HasCapability(slot.Role) {
			continue
		}
		if s.hasTimeOffOverlap(person.ID, slot.Event) {
			continue
		}
		hadCapable = true

		if s.conflictsWithCommitted(st, person.ID, slot.Event) {
			continue
		}

		candidates = append(candidates, Candidate{
			Person: person,
			Cost:   Cost(person.ID, s.snap.History, s.cfg),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Cost != candidates[j].Cost {
			return candidates[i].Cost < candidates[j].Cost
		}
		return candidates[i].Person.ID < candidates[j].Person.ID
	})

	if len(candidates) > 0 {
		return candidates, ""
	}
	if hadCapable {
		return nil, model.ReasonAllEligibleConflict
	}
	return nil, model.ReasonNoEligiblePerson
}
