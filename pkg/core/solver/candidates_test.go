package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stbarnabas/serveteam/pkg/core/model"
)

func TestCandidatesForSlot_OrderedByCost(t *testing.T) {
	people := []model.Person{
		person("heavy", "Greeter"),
		person("light", "Greeter"),
		person("fresh", "Greeter"),
	}
	events := []model.Event{event("e1", at(1, 9), at(1, 10), req("Greeter", 1))}

	snap := snapshot(people, events)
	snap.History = NewHistory(map[string]PersonHistory{
		"heavy": {TotalAssignments: 8, DaysSinceLast: 7},
		"light": {TotalAssignments: 2, DaysSinceLast: 7},
	})

	s, err := New(snap, DefaultConfig())
	require.NoError(t, err)

	st := newState(s.worklist)
	candidates, reason := s.CandidatesForSlot(st, s.worklist[0])
	require.Empty(t, reason)
	require.Len(t, candidates, 3)

	assert.Equal(t, "fresh", candidates[0].Person.ID)
	assert.Equal(t, "light", candidates[1].Person.ID)
	assert.Equal(t, "heavy", candidates[2].Person.ID)
}

func TestCandidatesForSlot_TieBreakByPersonID(t *testing.T) {
	// No history at all: every cost is identical, so ordering falls back to
	// person id
	people := []model.Person{
		person("zoe", "Greeter"),
		person("ann", "Greeter"),
		person("mia", "Greeter"),
	}
	events := []model.Event{event("e1", at(1, 9), at(1, 10), req("Greeter", 1))}

	s, err := New(snapshot(people, events), DefaultConfig())
	require.NoError(t, err)

	st := newState(s.worklist)
	candidates, _ := s.CandidatesForSlot(st, s.worklist[0])
	require.Len(t, candidates, 3)

	assert.Equal(t, "ann", candidates[0].Person.ID)
	assert.Equal(t, "mia", candidates[1].Person.ID)
	assert.Equal(t, "zoe", candidates[2].Person.ID)
}

func TestCandidatesForSlot_EmptyWithReason(t *testing.T) {
	people := []model.Person{person("ann", "Usher")}
	events := []model.Event{event("e1", at(1, 9), at(1, 10), req("Greeter", 1))}

	s, err := New(snapshot(people, events), DefaultConfig())
	require.NoError(t, err)

	st := newState(s.worklist)
	candidates, reason := s.CandidatesForSlot(st, s.worklist[0])

	assert.Empty(t, candidates)
	assert.Equal(t, model.ReasonNoEligiblePerson, reason)
}

func TestCandidatesForSlot_ConflictReason(t *testing.T) {
	people := []model.Person{person("ann", "Greeter", "Usher")}
	events := []model.Event{
		event("e1", at(1, 9), at(1, 10), req("Greeter", 1)),
		event("e2", at(1, 9), at(1, 10), req("Usher", 1)),
	}

	s, err := New(snapshot(people, events), DefaultConfig())
	require.NoError(t, err)

	st := newState(s.worklist)
	st.commit(s.worklist[0], people[0], 0, 0)

	// ann is capable of Usher and not on time off, but is committed to the
	// overlapping e1
	usherSlot := s.worklist[1]
	require.Equal(t, model.Role("Usher"), usherSlot.Role)

	candidates, reason := s.CandidatesForSlot(st, usherSlot)
	assert.Empty(t, candidates)
	assert.Equal(t, model.ReasonAllEligibleConflict, reason)
}
