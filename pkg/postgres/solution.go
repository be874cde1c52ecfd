package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/stbarnabas/serveteam/pkg/db"
)

// GetSolutions retrieves all solution headers for an organization, newest
// first
func (d *DB) GetSolutions(ctx context.Context, organizationID string) ([]db.Solution, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, organization_id, created_at, assignment_count,
		       unfilled_slot_count, fairness_spread, incomplete
		FROM solution
		WHERE organization_id = $1
		ORDER BY created_at DESC
	`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query solutions: %w", err)
	}
	defer rows.Close()

	var solutions []db.Solution
	for rows.Next() {
		var s db.Solution
		if err := rows.Scan(&s.ID, &s.OrganizationID, &s.CreatedAt, &s.AssignmentCount,
			&s.UnfilledSlotCount, &s.FairnessSpread, &s.Incomplete); err != nil {
			return nil, fmt.Errorf("failed to scan solution: %w", err)
		}
		solutions = append(solutions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating solutions: %w", err)
	}

	return solutions, nil
}

// GetAssignments retrieves all assignment rows of a solution
func (d *DB) GetAssignments(ctx context.Context, solutionID string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, solution_id, event_id, role, person_id, rank, cost
		FROM assignment
		WHERE solution_id = $1
		ORDER BY id
	`, solutionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		if err := rows.Scan(&a.ID, &a.SolutionID, &a.EventID, &a.Role, &a.PersonID, &a.Rank, &a.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// GetUnfilledSlots retrieves all unfilled-slot diagnostic rows of a solution
func (d *DB) GetUnfilledSlots(ctx context.Context, solutionID string) ([]db.UnfilledSlot, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, solution_id, event_id, role, reason
		FROM unfilled_slot
		WHERE solution_id = $1
		ORDER BY id
	`, solutionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unfilled slots: %w", err)
	}
	defer rows.Close()

	var slots []db.UnfilledSlot
	for rows.Next() {
		var u db.UnfilledSlot
		if err := rows.Scan(&u.ID, &u.SolutionID, &u.EventID, &u.Role, &u.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan unfilled slot: %w", err)
		}
		slots = append(slots, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unfilled slots: %w", err)
	}

	return slots, nil
}

// GetAssignmentHistory retrieves (person, event start) pairs for all
// assignments in the organization's solutions whose events start on or
// after since. Feeds the fairness history of subsequent solves.
func (d *DB) GetAssignmentHistory(ctx context.Context, organizationID string, since time.Time) ([]db.AssignmentHistoryRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT a.person_id, e.starts_at
		FROM assignment a
		JOIN solution s ON s.id = a.solution_id
		JOIN event e ON e.id = a.event_id
		WHERE s.organization_id = $1
		  AND e.starts_at >= $2
		ORDER BY e.starts_at, a.person_id
	`, organizationID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment history: %w", err)
	}
	defer rows.Close()

	var history []db.AssignmentHistoryRow
	for rows.Next() {
		var row db.AssignmentHistoryRow
		if err := rows.Scan(&row.PersonID, &row.EventStart); err != nil {
			return nil, fmt.Errorf("failed to scan assignment history row: %w", err)
		}
		history = append(history, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment history: %w", err)
	}

	return history, nil
}

// InsertSolution inserts a solution header with its assignment and
// unfilled-slot rows in a single transaction. Solutions are append-only;
// there is deliberately no update or delete counterpart.
func (d *DB) InsertSolution(ctx context.Context, solution db.Solution, assignments []db.Assignment, unfilled []db.UnfilledSlot) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO solution (id, organization_id, created_at, assignment_count,
		                      unfilled_slot_count, fairness_spread, incomplete)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, solution.ID, solution.OrganizationID, solution.CreatedAt, solution.AssignmentCount,
		solution.UnfilledSlotCount, solution.FairnessSpread, solution.Incomplete)
	if err != nil {
		return fmt.Errorf("failed to insert solution: %w", err)
	}

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO assignment (id, solution_id, event_id, role, person_id, rank, cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, a.ID, a.SolutionID, a.EventID, a.Role, a.PersonID, a.Rank, a.Cost)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	for _, u := range unfilled {
		_, err := tx.Exec(ctx, `
			INSERT INTO unfilled_slot (id, solution_id, event_id, role, reason)
			VALUES ($1, $2, $3, $4, $5)
		`, u.ID, u.SolutionID, u.EventID, u.Role, u.Reason)
		if err != nil {
			return fmt.Errorf("failed to insert unfilled slot: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
