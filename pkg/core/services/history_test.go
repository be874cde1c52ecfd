package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stbarnabas/serveteam/pkg/db"
)

func TestBuildHistory_CountsAndRecency(t *testing.T) {
	asOf := day(20, 0)
	rows := []db.AssignmentHistoryRow{
		{PersonID: "ann", EventStart: day(1, 10)},
		{PersonID: "ann", EventStart: day(13, 10)},
		{PersonID: "ben", EventStart: day(6, 10)},
	}

	history := BuildHistory(rows, asOf)

	assert.Equal(t, 2, history.Load("ann"))
	assert.Equal(t, 1, history.Load("ben"))

	// Ann last served on the 13th at 10:00, 6 days 14 hours before asOf
	assert.InDelta(t, 6.58, history.DaysSinceLast("ann"), 0.01)
	assert.InDelta(t, 13.58, history.DaysSinceLast("ben"), 0.01)
}

func TestBuildHistory_NormalizedLoad(t *testing.T) {
	rows := []db.AssignmentHistoryRow{
		{PersonID: "ann", EventStart: day(1, 10)},
		{PersonID: "ann", EventStart: day(8, 10)},
		{PersonID: "ben", EventStart: day(1, 10)},
	}

	history := BuildHistory(rows, day(20, 0))

	assert.Equal(t, 1.0, history.NormalizedLoad("ann"))
	assert.Equal(t, 0.5, history.NormalizedLoad("ben"))
	assert.Equal(t, 0.0, history.NormalizedLoad("zoe"))
}

func TestBuildHistory_NeverServed(t *testing.T) {
	history := BuildHistory(nil, day(20, 0))

	assert.Equal(t, 0, history.Load("ann"))
	assert.Equal(t, 365.0, history.DaysSinceLast("ann"))
}

func TestBuildHistory_FutureStartClampsToZero(t *testing.T) {
	rows := []db.AssignmentHistoryRow{
		{PersonID: "ann", EventStart: day(25, 10)},
	}

	history := BuildHistory(rows, day(20, 0))

	assert.Equal(t, 1, history.Load("ann"))
	assert.Equal(t, 0.0, history.DaysSinceLast("ann"))
}
