package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stbarnabas/serveteam/pkg/core/model"
)

func TestOverlaps_ClosedInterval(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int // hours on the same day
		want                       bool
	}{
		{"disjoint", 9, 10, 11, 12, false},
		{"contained", 9, 12, 10, 11, true},
		{"partial", 9, 11, 10, 12, true},
		{"touching boundaries conflict", 9, 10, 10, 11, true},
		{"identical", 9, 10, 9, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := overlaps(at(1, tt.aStart), at(1, tt.aEnd), at(1, tt.bStart), at(1, tt.bEnd), false)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverlaps_AllowBackToBack(t *testing.T) {
	// Half-open comparison: shared endpoints no longer conflict
	assert.False(t, overlaps(at(1, 9), at(1, 10), at(1, 10), at(1, 11), true))
	assert.True(t, overlaps(at(1, 9), at(1, 11), at(1, 10), at(1, 12), true))
}

func TestOverlaps_ZeroDuration(t *testing.T) {
	// A zero-duration window overlaps only at the exact instant
	assert.True(t, overlaps(at(1, 10), at(1, 10), at(1, 10), at(1, 10), false))
	assert.True(t, overlaps(at(1, 10), at(1, 10), at(1, 9), at(1, 11), false))
	assert.False(t, overlaps(at(1, 10), at(1, 10), at(1, 11), at(1, 11), false))

	// Half-open mode falls back to the closed test for zero-duration windows
	assert.True(t, overlaps(at(1, 10), at(1, 10), at(1, 9), at(1, 11), true))
}

func TestIsEligible_Capability(t *testing.T) {
	people := []model.Person{person("ann", "Greeter"), person("ben", "Usher")}
	events := []model.Event{event("e1", at(1, 9), at(1, 10), req("Greeter", 1))}

	s, err := New(snapshot(people, events), DefaultConfig())
	require.NoError(t, err)

	assert.True(t, s.IsEligible(people[0], events[0], "Greeter", nil))
	assert.False(t, s.IsEligible(people[1], events[0], "Greeter", nil))
}

func TestIsEligible_TimeOff(t *testing.T) {
	people := []model.Person{person("ann", "Greeter")}
	events := []model.Event{
		event("e1", at(8, 9), at(8, 10), req("Greeter", 1)),
		event("e2", at(15, 9), at(15, 10), req("Greeter", 1)),
	}

	snap := snapshot(people, events)
	// Time off covers March 7-8 inclusive, blocking e1 but not e2
	snap.TimeOff = []model.TimeOffPeriod{
		{PersonID: "ann", Start: at(7, 0), End: at(8, 0)},
	}

	s, err := New(snap, DefaultConfig())
	require.NoError(t, err)

	assert.False(t, s.IsEligible(people[0], events[0], "Greeter", nil))
	assert.True(t, s.IsEligible(people[0], events[1], "Greeter", nil))
}

func TestIsEligible_TimeOffEndDateInclusive(t *testing.T) {
	people := []model.Person{person("ann", "Greeter")}
	// Event falls late on the final day of the time-off period
	events := []model.Event{event("e1", at(8, 20), at(8, 21), req("Greeter", 1))}

	snap := snapshot(people, events)
	snap.TimeOff = []model.TimeOffPeriod{
		{PersonID: "ann", Start: at(6, 0), End: at(8, 0)},
	}

	s, err := New(snap, DefaultConfig())
	require.NoError(t, err)

	assert.False(t, s.IsEligible(people[0], events[0], "Greeter", nil))
}

func TestIsEligible_DoubleBooking(t *testing.T) {
	people := []model.Person{person("ann", "Greeter", "Usher")}
	events := []model.Event{
		event("e1", at(1, 9), at(1, 10), req("Greeter", 1)),
		event("e2", at(1, 9), at(1, 10), req("Usher", 1)),
		event("e3", at(1, 14), at(1, 15), req("Usher", 1)),
	}

	s, err := New(snapshot(people, events), DefaultConfig())
	require.NoError(t, err)

	committed := []model.Assignment{{EventID: "e1", Role: "Greeter", PersonID: "ann"}}

	// Overlapping window: blocked. Later disjoint window: allowed.
	assert.False(t, s.IsEligible(people[0], events[1], "Usher", committed))
	assert.True(t, s.IsEligible(people[0], events[2], "Usher", committed))
}

func TestIsEligible_BackToBackConfigurable(t *testing.T) {
	people := []model.Person{person("ann", "Greeter", "Usher")}
	events := []model.Event{
		event("e1", at(1, 9), at(1, 10), req("Greeter", 1)),
		event("e2", at(1, 10), at(1, 11), req("Usher", 1)),
	}
	committed := []model.Assignment{{EventID: "e1", Role: "Greeter", PersonID: "ann"}}

	s, err := New(snapshot(people, events), DefaultConfig())
	require.NoError(t, err)
	assert.False(t, s.IsEligible(people[0], events[1], "Usher", committed),
		"default config treats back-to-back windows as a conflict")

	cfg := DefaultConfig()
	cfg.AllowBackToBack = true
	s, err = New(snapshot(people, events), cfg)
	require.NoError(t, err)
	assert.True(t, s.IsEligible(people[0], events[1], "Usher", committed))
}
