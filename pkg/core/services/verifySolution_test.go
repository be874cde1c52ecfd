package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stbarnabas/serveteam/pkg/db"
)

func verifyFixture() *mockStore {
	return &mockStore{
		people: []db.Person{
			testPerson("ann", "Ann", "Greeter"),
			testPerson("ben", "Ben", "Usher"),
		},
		events: []db.Event{
			testEvent("sunday", day(1, 10), day(1, 12), req("Greeter", 1), req("Usher", 1)),
		},
		solutions: []db.Solution{
			{ID: "sol-1", OrganizationID: "org-1", CreatedAt: day(1, 9), AssignmentCount: 2},
		},
		assignments: map[string][]db.Assignment{
			"sol-1": {
				{ID: "a1", SolutionID: "sol-1", EventID: "sunday", Role: "Greeter", PersonID: "ann"},
				{ID: "a2", SolutionID: "sol-1", EventID: "sunday", Role: "Usher", PersonID: "ben"},
			},
		},
	}
}

func TestVerifySolution_Clean(t *testing.T) {
	mock := verifyFixture()

	result, err := VerifySolution(context.Background(), mock, testConfig(), zap.NewNop(), "")
	require.NoError(t, err)

	assert.Equal(t, "sol-1", result.SolutionID)
	assert.Empty(t, result.Violations)
}

func TestVerifySolution_CapabilityLost(t *testing.T) {
	mock := verifyFixture()
	// Ann no longer holds the Greeter capability
	mock.people[0].Capabilities = nil

	result, err := VerifySolution(context.Background(), mock, testConfig(), zap.NewNop(), "")
	require.NoError(t, err)

	require.NotEmpty(t, result.Violations)
	assert.Contains(t, result.Violations[0].Description, "lacks capability")
}

func TestVerifySolution_TimeOffAddedAfterSolve(t *testing.T) {
	mock := verifyFixture()
	mock.timeOff = []db.TimeOff{
		{ID: "t1", PersonID: "ben", StartDate: day(1, 0), EndDate: day(2, 0)},
	}

	result, err := VerifySolution(context.Background(), mock, testConfig(), zap.NewNop(), "")
	require.NoError(t, err)

	require.NotEmpty(t, result.Violations)
	found := false
	for _, v := range result.Violations {
		if v.PersonID == "ben" {
			found = true
			assert.Contains(t, v.Description, "time off")
		}
	}
	assert.True(t, found)
}

func TestVerifySolution_TamperedCounts(t *testing.T) {
	mock := verifyFixture()
	mock.solutions[0].AssignmentCount = 5

	result, err := VerifySolution(context.Background(), mock, testConfig(), zap.NewNop(), "")
	require.NoError(t, err)

	require.NotEmpty(t, result.Violations)
}

func TestVerifySolution_NoSolutions(t *testing.T) {
	result, err := VerifySolution(context.Background(), &mockStore{}, testConfig(), zap.NewNop(), "")
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "no solutions found")
}
