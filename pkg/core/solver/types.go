package solver

import (
	"time"

	"github.com/stbarnabas/serveteam/pkg/core/model"
)

// Strategy names for Config.Strategy
const (
	StrategyGreedy       = "greedy"
	StrategyBacktracking = "backtracking"
)

// Config contains the tunable parameters for a solve
type Config struct {
	// WeightTotalLoad scales the normalized historical load term of the
	// fairness cost. Higher values push work toward lightly-loaded people.
	WeightTotalLoad float64

	// WeightRecency scales the days-since-last-assignment term. Higher
	// values push work toward people who have not served recently.
	WeightRecency float64

	// AllowBackToBack permits assignments whose event windows share only a
	// boundary instant. Off by default: touching windows count as overlap.
	AllowBackToBack bool

	// Strategy selects the search implementation (greedy by default)
	Strategy string

	// SearchBudget is the wall-clock budget for the backtracking strategy.
	// When exceeded, the solve falls back to the greedy result and the
	// Solution is marked Incomplete. Ignored by the greedy strategy.
	SearchBudget time.Duration
}

// DefaultConfig returns the default solver configuration
func DefaultConfig() Config {
	return Config{
		WeightTotalLoad: 1.0,
		WeightRecency:   0.1,
		Strategy:        StrategyGreedy,
		SearchBudget:    5 * time.Second,
	}
}

// PersonHistory is one person's load/recency projection from prior solutions
type PersonHistory struct {
	// TotalAssignments across all prior solutions in the history window
	TotalAssignments int

	// DaysSinceLast is the number of days since the person's most recent
	// assignment
	DaysSinceLast float64
}

// neverServedRecencyDays is the recency credited to people with no recorded
// service, so they sort ahead of anyone who has served in the last year.
const neverServedRecencyDays = 365

// History is a read-only per-person load table derived from prior Solutions.
// Each solve receives its own snapshot; the solver never mutates it.
type History struct {
	byPerson map[string]PersonHistory
	maxLoad  int
}

// NewHistory builds a History from per-person entries
func NewHistory(entries map[string]PersonHistory) History {
	h := History{byPerson: make(map[string]PersonHistory, len(entries))}
	for id, entry := range entries {
		h.byPerson[id] = entry
		if entry.TotalAssignments > h.maxLoad {
			h.maxLoad = entry.TotalAssignments
		}
	}
	return h
}

// Load returns the person's total historical assignment count
func (h History) Load(personID string) int {
	return h.byPerson[personID].TotalAssignments
}

// NormalizedLoad returns the person's load scaled to [0, 1] against the
// heaviest load in the table. Zero when nobody has any history.
func (h History) NormalizedLoad(personID string) float64 {
	if h.maxLoad == 0 {
		return 0
	}
	return float64(h.byPerson[personID].TotalAssignments) / float64(h.maxLoad)
}

// DaysSinceLast returns the days since the person's most recent assignment,
// or neverServedRecencyDays if they have never served.
func (h History) DaysSinceLast(personID string) float64 {
	entry, ok := h.byPerson[personID]
	if !ok || entry.TotalAssignments == 0 {
		return neverServedRecencyDays
	}
	return entry.DaysSinceLast
}

// Snapshot is the immutable input to a single solve. Concurrent solves must
// each receive their own Snapshot; the solver does not copy defensively.
type Snapshot struct {
	OrganizationID string
	People         []model.Person
	Events         []model.Event
	TimeOff        []model.TimeOffPeriod
	History        History
}

// RoleSlot is one unit of headcount demand: an event needing 3 Greeters
// contributes 3 role-slots.
type RoleSlot struct {
	Event model.Event
	Role  model.Role

	// Ordinal distinguishes slots of the same (event, role) pair
	Ordinal int
}

// Phase is the search state machine position
type Phase int

const (
	StatePendingSlots Phase = iota
	StateBacktracking
	StateDone
)

func (p Phase) String() string {
	switch p {
	case StatePendingSlots:
		return "PENDING_SLOTS"
	case StateBacktracking:
		return "BACKTRACKING"
	case StateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// State is the mutable working state of one search run. Strategies own a
// State for the duration of Solve and must leave it internally consistent:
// Committed and Unfilled together account for every worklist slot once done.
type State struct {
	Phase Phase

	// Worklist holds all role-slots in deterministic fill order
	Worklist []RoleSlot

	Committed []model.Assignment
	Unfilled  []model.UnfilledSlot

	// Incomplete is set when the search gave up before exploring fully
	Incomplete bool

	// committedEvents tracks each person's committed event windows for the
	// double-booking check
	committedEvents map[string][]model.Event
}

func newState(worklist []RoleSlot) *State {
	return &State{
		Phase:           StatePendingSlots,
		Worklist:        worklist,
		Committed:       []model.Assignment{},
		Unfilled:        []model.UnfilledSlot{},
		committedEvents: make(map[string][]model.Event),
	}
}

// commit records an assignment of person to slot
func (st *State) commit(slot RoleSlot, person model.Person, rank int, cost float64) {
	st.Committed = append(st.Committed, model.Assignment{
		EventID:  slot.Event.ID,
		Role:     slot.Role,
		PersonID: person.ID,
		Rank:     rank,
		Cost:     cost,
	})
	st.committedEvents[person.ID] = append(st.committedEvents[person.ID], slot.Event)
}

// uncommit reverses the most recent commit. Used by backtracking search.
func (st *State) uncommit() {
	last := st.Committed[len(st.Committed)-1]
	st.Committed = st.Committed[:len(st.Committed)-1]
	events := st.committedEvents[last.PersonID]
	st.committedEvents[last.PersonID] = events[:len(events)-1]
}

// recordUnfilled marks a slot as unfillable with the given reason
func (st *State) recordUnfilled(slot RoleSlot, reason model.UnfilledReason) {
	st.Unfilled = append(st.Unfilled, model.UnfilledSlot{
		EventID: slot.Event.ID,
		Role:    slot.Role,
		Reason:  reason,
	})
}
