package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/stbarnabas/serveteam/pkg/db"
)

// GetEvents retrieves an organization's events starting inside [from, until],
// with their role requirements loaded, ordered by start time
func (d *DB) GetEvents(ctx context.Context, organizationID string, from, until time.Time) ([]db.Event, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, organization_id, name, starts_at, ends_at
		FROM event
		WHERE organization_id = $1
		  AND starts_at >= $2
		  AND starts_at <= $3
		ORDER BY starts_at, id
	`, organizationID, from, until)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []db.Event
	index := make(map[string]int)
	for rows.Next() {
		var e db.Event
		if err := rows.Scan(&e.ID, &e.OrganizationID, &e.Name, &e.StartsAt, &e.EndsAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		index[e.ID] = len(events)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	rows.Close()

	if len(events) == 0 {
		return events, nil
	}

	reqRows, err := d.pool.Query(ctx, `
		SELECT r.event_id, r.role, r.head_count, r.position
		FROM role_requirement r
		JOIN event e ON e.id = r.event_id
		WHERE e.organization_id = $1
		  AND e.starts_at >= $2
		  AND e.starts_at <= $3
		ORDER BY r.event_id, r.position
	`, organizationID, from, until)
	if err != nil {
		return nil, fmt.Errorf("failed to query role requirements: %w", err)
	}
	defer reqRows.Close()

	for reqRows.Next() {
		var r db.RoleRequirement
		if err := reqRows.Scan(&r.EventID, &r.Role, &r.HeadCount, &r.Position); err != nil {
			return nil, fmt.Errorf("failed to scan role requirement: %w", err)
		}
		if i, ok := index[r.EventID]; ok {
			events[i].Requirements = append(events[i].Requirements, r)
		}
	}
	if err := reqRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role requirements: %w", err)
	}

	return events, nil
}

// GetEventsByIDs retrieves the named events with their role requirements
func (d *DB) GetEventsByIDs(ctx context.Context, ids []string) ([]db.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := d.pool.Query(ctx, `
		SELECT id, organization_id, name, starts_at, ends_at
		FROM event
		WHERE id = ANY($1)
		ORDER BY starts_at, id
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query events by id: %w", err)
	}
	defer rows.Close()

	var events []db.Event
	index := make(map[string]int)
	for rows.Next() {
		var e db.Event
		if err := rows.Scan(&e.ID, &e.OrganizationID, &e.Name, &e.StartsAt, &e.EndsAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		index[e.ID] = len(events)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	rows.Close()

	reqRows, err := d.pool.Query(ctx, `
		SELECT event_id, role, head_count, position
		FROM role_requirement
		WHERE event_id = ANY($1)
		ORDER BY event_id, position
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query role requirements: %w", err)
	}
	defer reqRows.Close()

	for reqRows.Next() {
		var r db.RoleRequirement
		if err := reqRows.Scan(&r.EventID, &r.Role, &r.HeadCount, &r.Position); err != nil {
			return nil, fmt.Errorf("failed to scan role requirement: %w", err)
		}
		if i, ok := index[r.EventID]; ok {
			events[i].Requirements = append(events[i].Requirements, r)
		}
	}
	if err := reqRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role requirements: %w", err)
	}

	return events, nil
}

// InsertEvents inserts event records with their role requirements in one
// transaction
func (d *DB) InsertEvents(ctx context.Context, events []db.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range events {
		_, err := tx.Exec(ctx, `
			INSERT INTO event (id, organization_id, name, starts_at, ends_at)
			VALUES ($1, $2, $3, $4, $5)
		`, e.ID, e.OrganizationID, e.Name, e.StartsAt, e.EndsAt)
		if err != nil {
			return fmt.Errorf("failed to insert event: %w", err)
		}

		for _, r := range e.Requirements {
			_, err := tx.Exec(ctx, `
				INSERT INTO role_requirement (event_id, role, head_count, position)
				VALUES ($1, $2, $3, $4)
			`, e.ID, r.Role, r.HeadCount, r.Position)
			if err != nil {
				return fmt.Errorf("failed to insert role requirement: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
