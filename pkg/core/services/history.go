package services

import (
	"time"

	"github.com/stbarnabas/serveteam/pkg/core/solver"
	"github.com/stbarnabas/serveteam/pkg/db"
)

// BuildHistory folds prior assignment rows into the solver's per-person load
// table. asOf anchors the recency calculation; rows with event starts after
// asOf still count towards load but contribute zero days of recency.
func BuildHistory(rows []db.AssignmentHistoryRow, asOf time.Time) solver.History {
	type tally struct {
		count int
		last  time.Time
	}

	byPerson := make(map[string]tally)
	for _, row := range rows {
		t := byPerson[row.PersonID]
		t.count++
		if row.EventStart.After(t.last) {
			t.last = row.EventStart
		}
		byPerson[row.PersonID] = t
	}

	entries := make(map[string]solver.PersonHistory, len(byPerson))
	for personID, t := range byPerson {
		days := asOf.Sub(t.last).Hours() / 24
		if days < 0 {
			days = 0
		}
		entries[personID] = solver.PersonHistory{
			TotalAssignments: t.count,
			DaysSinceLast:    days,
		}
	}

	return solver.NewHistory(entries)
}
