package solver

import (
	"fmt"

	"github.com/stbarnabas/serveteam/pkg/core/model"
)

// Violation describes one broken invariant found in a Solution
type Violation struct {
	EventID     string
	Role        model.Role
	PersonID    string
	Description string
}

// Verify audits a Solution against the snapshot it was solved from. It
// checks every hard invariant: no double-booking, role capability, time off
// respected, and metric consistency with the assignment list. An empty
// result means the Solution is sound. Verify is used by tests and the CLI;
// the solver itself maintains the invariants by construction.
func Verify(snap Snapshot, cfg Config, solution model.Solution) []Violation {
	var violations []Violation

	s, err := New(snap, cfg)
	if err != nil {
		return []Violation{{Description: fmt.Sprintf("snapshot invalid: %v", err)}}
	}

	peopleByID := s.peopleByID

	// Role capability and time off
	for _, a := range solution.Assignments {
		person, ok := peopleByID[a.PersonID]
		if !ok {
			violations = append(violations, Violation{
				EventID:     a.EventID,
				Role:        a.Role,
				PersonID:    a.PersonID,
				Description: "assignment references a person not on the roster",
			})
			continue
		}

		event, ok := s.eventByID(a.EventID)
		if !ok {
			violations = append(violations, Violation{
				EventID:     a.EventID,
				Role:        a.Role,
				PersonID:    a.PersonID,
				Description: "assignment references an unknown event",
			})
			continue
		}

		if !person.HasCapability(a.Role) {
			violations = append(violations, Violation{
				EventID:     a.EventID,
				Role:        a.Role,
				PersonID:    a.PersonID,
				Description: fmt.Sprintf("person %s lacks capability %s", a.PersonID, a.Role),
			})
		}

		if s.hasTimeOffOverlap(a.PersonID, event) {
			violations = append(violations, Violation{
				EventID:     a.EventID,
				Role:        a.Role,
				PersonID:    a.PersonID,
				Description: fmt.Sprintf("person %s has time off overlapping event %s", a.PersonID, a.EventID),
			})
		}
	}

	// Double-booking: any pair of assignments sharing a person must not have
	// overlapping event windows
	for i := 0; i < len(solution.Assignments); i++ {
		for j := i + 1; j < len(solution.Assignments); j++ {
			a, b := solution.Assignments[i], solution.Assignments[j]
			if a.PersonID != b.PersonID {
				continue
			}
			eventA, okA := s.eventByID(a.EventID)
			eventB, okB := s.eventByID(b.EventID)
			if !okA || !okB {
				continue
			}
			if overlaps(eventA.Start, eventA.End, eventB.Start, eventB.End, cfg.AllowBackToBack) {
				violations = append(violations, Violation{
					EventID:     b.EventID,
					Role:        b.Role,
					PersonID:    b.PersonID,
					Description: fmt.Sprintf("person %s double-booked across events %s and %s", a.PersonID, a.EventID, b.EventID),
				})
			}
		}
	}

	// Metric consistency: unfilled count must equal total demand minus fills
	totalSlots := 0
	for _, event := range snap.Events {
		totalSlots += event.TotalSlots()
	}
	if solution.AssignmentCount != len(solution.Assignments) {
		violations = append(violations, Violation{
			Description: fmt.Sprintf("assignment_count %d does not match assignment list length %d",
				solution.AssignmentCount, len(solution.Assignments)),
		})
	}
	if solution.UnfilledSlotCount != len(solution.Unfilled) {
		violations = append(violations, Violation{
			Description: fmt.Sprintf("unfilled_slot_count %d does not match unfilled list length %d",
				solution.UnfilledSlotCount, len(solution.Unfilled)),
		})
	}
	if solution.AssignmentCount+solution.UnfilledSlotCount != totalSlots {
		violations = append(violations, Violation{
			Description: fmt.Sprintf("assignments (%d) plus unfilled (%d) do not account for all %d role-slots",
				solution.AssignmentCount, solution.UnfilledSlotCount, totalSlots),
		})
	}

	return violations
}
