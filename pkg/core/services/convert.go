package services

import (
	"github.com/google/uuid"

	"github.com/stbarnabas/serveteam/pkg/core/model"
	"github.com/stbarnabas/serveteam/pkg/db"
)

// peopleToModel converts database roster records to solver people
func peopleToModel(people []db.Person) []model.Person {
	result := make([]model.Person, len(people))
	for i, p := range people {
		capabilities := make([]model.Role, len(p.Capabilities))
		for j, c := range p.Capabilities {
			capabilities[j] = model.Role(c)
		}
		result[i] = model.Person{
			ID:             p.ID,
			Name:           p.Name,
			OrganizationID: p.OrganizationID,
			Capabilities:   capabilities,
		}
	}
	return result
}

// eventsToModel converts database event records to solver events
func eventsToModel(events []db.Event) []model.Event {
	result := make([]model.Event, len(events))
	for i, e := range events {
		requirements := make([]model.RoleRequirement, len(e.Requirements))
		for j, r := range e.Requirements {
			requirements[j] = model.RoleRequirement{
				Role:  model.Role(r.Role),
				Count: r.HeadCount,
			}
		}
		result[i] = model.Event{
			ID:             e.ID,
			OrganizationID: e.OrganizationID,
			Name:           e.Name,
			Start:          e.StartsAt,
			End:            e.EndsAt,
			Requirements:   requirements,
		}
	}
	return result
}

// timeOffToModel converts database time-off records to solver periods
func timeOffToModel(periods []db.TimeOff) []model.TimeOffPeriod {
	result := make([]model.TimeOffPeriod, len(periods))
	for i, t := range periods {
		result[i] = model.TimeOffPeriod{
			PersonID: t.PersonID,
			Start:    t.StartDate,
			End:      t.EndDate,
		}
	}
	return result
}

// solutionToDB converts a solver solution into database records, stamping
// fresh row IDs on assignments and unfilled slots
func solutionToDB(solution model.Solution) (db.Solution, []db.Assignment, []db.UnfilledSlot) {
	header := db.Solution{
		ID:                solution.ID,
		OrganizationID:    solution.OrganizationID,
		CreatedAt:         solution.CreatedAt,
		AssignmentCount:   solution.AssignmentCount,
		UnfilledSlotCount: solution.UnfilledSlotCount,
		FairnessSpread:    solution.FairnessSpread,
		Incomplete:        solution.Incomplete,
	}

	assignments := make([]db.Assignment, len(solution.Assignments))
	for i, a := range solution.Assignments {
		assignments[i] = db.Assignment{
			ID:         uuid.New().String(),
			SolutionID: solution.ID,
			EventID:    a.EventID,
			Role:       string(a.Role),
			PersonID:   a.PersonID,
			Rank:       a.Rank,
			Cost:       a.Cost,
		}
	}

	unfilled := make([]db.UnfilledSlot, len(solution.Unfilled))
	for i, u := range solution.Unfilled {
		unfilled[i] = db.UnfilledSlot{
			ID:         uuid.New().String(),
			SolutionID: solution.ID,
			EventID:    u.EventID,
			Role:       string(u.Role),
			Reason:     string(u.Reason),
		}
	}

	return header, assignments, unfilled
}
