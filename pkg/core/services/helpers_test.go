package services

import (
	"context"
	"time"

	"github.com/stbarnabas/serveteam/internal/config"
	"github.com/stbarnabas/serveteam/pkg/db"
)

// mockStore implements every service store interface as a test double
type mockStore struct {
	people      []db.Person
	events      []db.Event
	timeOff     []db.TimeOff
	historyRows []db.AssignmentHistoryRow
	solutions   []db.Solution
	assignments map[string][]db.Assignment
	unfilled    map[string][]db.UnfilledSlot

	insertedSolutions   []db.Solution
	insertedAssignments [][]db.Assignment
	insertedUnfilled    [][]db.UnfilledSlot
	insertedEvents      [][]db.Event

	getPeopleErr      error
	getEventsErr      error
	getTimeOffErr     error
	getHistoryErr     error
	getSolutionsErr   error
	insertSolutionErr error
	insertEventsErr   error
}

func (m *mockStore) GetPeople(ctx context.Context, organizationID string) ([]db.Person, error) {
	if m.getPeopleErr != nil {
		return nil, m.getPeopleErr
	}
	return m.people, nil
}

func (m *mockStore) GetEvents(ctx context.Context, organizationID string, from, until time.Time) ([]db.Event, error) {
	if m.getEventsErr != nil {
		return nil, m.getEventsErr
	}
	return m.events, nil
}

func (m *mockStore) GetEventsByIDs(ctx context.Context, ids []string) ([]db.Event, error) {
	if m.getEventsErr != nil {
		return nil, m.getEventsErr
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var events []db.Event
	for _, e := range m.events {
		if wanted[e.ID] {
			events = append(events, e)
		}
	}
	return events, nil
}

func (m *mockStore) GetTimeOff(ctx context.Context, organizationID string, from, until time.Time) ([]db.TimeOff, error) {
	if m.getTimeOffErr != nil {
		return nil, m.getTimeOffErr
	}
	return m.timeOff, nil
}

func (m *mockStore) GetAssignmentHistory(ctx context.Context, organizationID string, since time.Time) ([]db.AssignmentHistoryRow, error) {
	if m.getHistoryErr != nil {
		return nil, m.getHistoryErr
	}
	return m.historyRows, nil
}

func (m *mockStore) GetSolutions(ctx context.Context, organizationID string) ([]db.Solution, error) {
	if m.getSolutionsErr != nil {
		return nil, m.getSolutionsErr
	}
	return m.solutions, nil
}

func (m *mockStore) GetAssignments(ctx context.Context, solutionID string) ([]db.Assignment, error) {
	return m.assignments[solutionID], nil
}

func (m *mockStore) GetUnfilledSlots(ctx context.Context, solutionID string) ([]db.UnfilledSlot, error) {
	return m.unfilled[solutionID], nil
}

func (m *mockStore) InsertSolution(ctx context.Context, solution db.Solution, assignments []db.Assignment, unfilled []db.UnfilledSlot) error {
	if m.insertSolutionErr != nil {
		return m.insertSolutionErr
	}
	m.insertedSolutions = append(m.insertedSolutions, solution)
	m.insertedAssignments = append(m.insertedAssignments, assignments)
	m.insertedUnfilled = append(m.insertedUnfilled, unfilled)
	return nil
}

func (m *mockStore) InsertEvents(ctx context.Context, events []db.Event) error {
	if m.insertEventsErr != nil {
		return m.insertEventsErr
	}
	m.insertedEvents = append(m.insertedEvents, events)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		DatabaseURL:    "postgres://localhost:5432/serveteam_test",
		OrganizationID: "org-1",
	}
}

// day returns a UTC timestamp in March 2026 for readable fixtures
func day(d, hour int) time.Time {
	return time.Date(2026, time.March, d, hour, 0, 0, 0, time.UTC)
}

func testPerson(id, name string, capabilities ...string) db.Person {
	return db.Person{
		ID:             id,
		OrganizationID: "org-1",
		Name:           name,
		Capabilities:   capabilities,
	}
}

func testEvent(id string, start, end time.Time, requirements ...db.RoleRequirement) db.Event {
	for i := range requirements {
		requirements[i].EventID = id
		requirements[i].Position = i
	}
	return db.Event{
		ID:             id,
		OrganizationID: "org-1",
		Name:           "Event " + id,
		StartsAt:       start,
		EndsAt:         end,
		Requirements:   requirements,
	}
}

func req(role string, count int) db.RoleRequirement {
	return db.RoleRequirement{Role: role, HeadCount: count}
}
