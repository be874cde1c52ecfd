package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stbarnabas/serveteam/pkg/db"
)

func viewFixture() *mockStore {
	return &mockStore{
		people: []db.Person{
			testPerson("ann", "Ann", "Greeter"),
			testPerson("ben", "Ben", "Usher"),
		},
		events: []db.Event{
			testEvent("sunday", day(1, 10), day(1, 12), req("Greeter", 1), req("Usher", 1)),
			testEvent("midweek", day(4, 19), day(4, 21), req("Usher", 1)),
		},
		solutions: []db.Solution{
			{ID: "sol-2", OrganizationID: "org-1", CreatedAt: day(2, 9), AssignmentCount: 1},
			{ID: "sol-1", OrganizationID: "org-1", CreatedAt: day(1, 9), AssignmentCount: 2},
		},
		assignments: map[string][]db.Assignment{
			"sol-2": {
				{ID: "a1", SolutionID: "sol-2", EventID: "midweek", Role: "Usher", PersonID: "ben"},
			},
			"sol-1": {
				{ID: "a2", SolutionID: "sol-1", EventID: "sunday", Role: "Greeter", PersonID: "ann"},
				{ID: "a3", SolutionID: "sol-1", EventID: "sunday", Role: "Usher", PersonID: "ben"},
			},
		},
		unfilled: map[string][]db.UnfilledSlot{
			"sol-2": {
				{ID: "u1", SolutionID: "sol-2", EventID: "sunday", Role: "Greeter", Reason: "no eligible person"},
			},
		},
	}
}

func TestViewSolution_LatestByDefault(t *testing.T) {
	mock := viewFixture()

	view, err := ViewSolution(context.Background(), mock, "org-1", "", zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "sol-2", view.Solution.ID)
	require.Len(t, view.Assignments, 1)
	require.Len(t, view.Unfilled, 1)

	// Both referenced events resolved, plus the full roster
	assert.Contains(t, view.Events, "midweek")
	assert.Contains(t, view.Events, "sunday")
	assert.Contains(t, view.People, "ann")
	assert.Contains(t, view.People, "ben")
}

func TestViewSolution_ByID(t *testing.T) {
	mock := viewFixture()

	view, err := ViewSolution(context.Background(), mock, "org-1", "sol-1", zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "sol-1", view.Solution.ID)
	require.Len(t, view.Assignments, 2)
	assert.Empty(t, view.Unfilled)
	assert.Contains(t, view.Events, "sunday")
	assert.NotContains(t, view.Events, "midweek")
}

func TestViewSolution_UnknownID(t *testing.T) {
	mock := viewFixture()

	view, err := ViewSolution(context.Background(), mock, "org-1", "sol-99", zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, view)
	assert.Contains(t, err.Error(), "solution sol-99 not found")
}

func TestViewSolution_NoSolutions(t *testing.T) {
	view, err := ViewSolution(context.Background(), &mockStore{}, "org-1", "", zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, view)
	assert.Contains(t, err.Error(), "no solutions found")
}

func TestCollectEventIDs_DistinctFirstSeen(t *testing.T) {
	assignments := []db.Assignment{
		{EventID: "b"},
		{EventID: "a"},
		{EventID: "b"},
	}
	unfilled := []db.UnfilledSlot{
		{EventID: "c"},
		{EventID: "a"},
	}

	ids := collectEventIDs(assignments, unfilled)
	assert.Equal(t, []string{"b", "a", "c"}, ids)
}
