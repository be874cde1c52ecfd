package solver

import (
	"time"

	"github.com/stbarnabas/serveteam/pkg/core/model"
)

// overlaps reports whether the windows [aStart, aEnd] and [bStart, bEnd]
// intersect. With allowTouch false the intervals are closed: windows sharing
// only a boundary instant still overlap, so back-to-back assignments are
// disallowed. With allowTouch true the comparison is half-open and shared
// endpoints do not conflict. Zero-duration windows overlap a window they fall
// inside, and each other only at the exact same instant.
func overlaps(aStart, aEnd, bStart, bEnd time.Time, allowTouch bool) bool {
	if allowTouch {
		if aStart.Equal(aEnd) || bStart.Equal(bEnd) {
			// Half-open logic would make zero-duration windows overlap
			// nothing; fall back to the closed test for them.
			return !aStart.After(bEnd) && !bStart.After(aEnd)
		}
		return aStart.Before(bEnd) && bStart.Before(aEnd)
	}
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// IsEligible decides hard feasibility of assigning person to role on event,
// given the assignments already committed in this solve. All checks must
// pass: role capability, no overlapping time off, no double-booking. Pure
// and deterministic; returns false for any failed check, never an error.
func (s *Solver) IsEligible(person model.Person, event model.Event, role model.Role, committed []model.Assignment) bool {
	if !person.HasCapability(role) {
		return false
	}
	if s.hasTimeOffOverlap(person.ID, event) {
		return false
	}

	for _, a := range committed {
		if a.PersonID != person.ID {
			continue
		}
		other, ok := s.eventByID(a.EventID)
		if !ok {
			continue
		}
		if overlaps(event.Start, event.End, other.Start, other.End, s.cfg.AllowBackToBack) {
			return false
		}
	}

	return true
}

// hasTimeOffOverlap reports whether any of the person's time-off periods
// cover the event window. Time-off dates are inclusive, so a period runs to
// the end of its End day.
func (s *Solver) hasTimeOffOverlap(personID string, event model.Event) bool {
	for _, off := range s.timeOffByPerson[personID] {
		offEnd := off.End.AddDate(0, 0, 1)
		if event.Start.Before(offEnd) && !event.End.Before(off.Start) {
			return true
		}
	}
	return false
}

// conflictsWithCommitted reports whether the person already holds an
// assignment whose event window overlaps the given event. Faster than
// IsEligible's committed scan: it reads the per-person index on State.
func (s *Solver) conflictsWithCommitted(st *State, personID string, event model.Event) bool {
	for _, other := range st.committedEvents[personID] {
		if overlaps(event.Start, event.End, other.Start, other.End, s.cfg.AllowBackToBack) {
			return true
		}
	}
	return false
}

func (s *Solver) eventByID(id string) (model.Event, bool) {
	for _, event := range s.snap.Events {
		if event.ID == id {
			return event, true
		}
	}
	return model.Event{}, false
}
