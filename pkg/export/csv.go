package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/stbarnabas/serveteam/pkg/core/services"
)

var csvHeaders = []string{"Date", "Start", "End", "Event", "Role", "Person", "Status"}

// WriteSolutionCSV renders a resolved solution as CSV, one row per role-slot,
// ordered by event start, then event ID, then role, then person. Unfilled
// slots appear with an empty person and the unfilled reason as status.
func WriteSolutionCSV(w io.Writer, view *services.SolutionView) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeaders); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, record := range solutionRecords(view) {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

type csvRow struct {
	eventID string
	role    string
	person  string
	record  []string
}

func solutionRecords(view *services.SolutionView) [][]string {
	rows := make([]csvRow, 0, len(view.Assignments)+len(view.Unfilled))

	for _, a := range view.Assignments {
		person := a.PersonID
		if p, ok := view.People[a.PersonID]; ok {
			person = p.Name
		}
		rows = append(rows, csvRow{
			eventID: a.EventID,
			role:    a.Role,
			person:  person,
			record:  eventColumns(view, a.EventID, a.Role, person, "assigned"),
		})
	}

	for _, u := range view.Unfilled {
		rows = append(rows, csvRow{
			eventID: u.EventID,
			role:    u.Role,
			record:  eventColumns(view, u.EventID, u.Role, "", "unfilled: "+u.Reason),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		eventA, okA := view.Events[a.eventID]
		eventB, okB := view.Events[b.eventID]
		if okA && okB && !eventA.StartsAt.Equal(eventB.StartsAt) {
			return eventA.StartsAt.Before(eventB.StartsAt)
		}
		if a.eventID != b.eventID {
			return a.eventID < b.eventID
		}
		if a.role != b.role {
			return a.role < b.role
		}
		return a.person < b.person
	})

	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = row.record
	}
	return records
}

func eventColumns(view *services.SolutionView, eventID, role, person, status string) []string {
	date, start, end, name := "", "", "", eventID
	if event, ok := view.Events[eventID]; ok {
		date = event.StartsAt.Format("2006-01-02")
		start = event.StartsAt.Format("15:04")
		end = event.EndsAt.Format("15:04")
		name = event.Name
	}
	return []string{date, start, end, name, role, person, status}
}
