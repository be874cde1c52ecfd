package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/stbarnabas/serveteam/pkg/db"
)

// GetPeople retrieves all roster records for an organization
func (d *DB) GetPeople(ctx context.Context, organizationID string) ([]db.Person, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, organization_id, name, capabilities
		FROM person
		WHERE organization_id = $1
		ORDER BY id
	`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	var people []db.Person
	for rows.Next() {
		var p db.Person
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.Name, &p.Capabilities); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating people: %w", err)
	}

	return people, nil
}

// GetTimeOff retrieves time-off records for an organization's people whose
// periods intersect [from, until]
func (d *DB) GetTimeOff(ctx context.Context, organizationID string, from, until time.Time) ([]db.TimeOff, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT t.id, t.person_id, t.start_date, t.end_date
		FROM time_off t
		JOIN person p ON p.id = t.person_id
		WHERE p.organization_id = $1
		  AND t.start_date <= $3
		  AND t.end_date >= $2
		ORDER BY t.person_id, t.start_date
	`, organizationID, from, until)
	if err != nil {
		return nil, fmt.Errorf("failed to query time off: %w", err)
	}
	defer rows.Close()

	var periods []db.TimeOff
	for rows.Next() {
		var t db.TimeOff
		if err := rows.Scan(&t.ID, &t.PersonID, &t.StartDate, &t.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan time off: %w", err)
		}
		periods = append(periods, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time off: %w", err)
	}

	return periods, nil
}
