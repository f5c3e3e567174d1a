package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/brightwater-rehab/scheduler/pkg/db"
)

// GetAssignments retrieves all shift assignments for a cycle in slot order
func (d *DB) GetAssignments(ctx context.Context, cycleID string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, cycle_id, shift_date, shift_type, role, therapist_id, status
		FROM shift_assignment
		WHERE cycle_id = $1
		ORDER BY shift_date, shift_type, role
	`, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		var shiftDate time.Time
		if err := rows.Scan(&a.ID, &a.CycleID, &shiftDate, &a.Shift, &a.Role,
			&a.TherapistID, &a.Status); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Date = shiftDate.Format(dateLayout)
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// InsertAssignments inserts shift assignment records in one transaction
func (d *DB) InsertAssignments(ctx context.Context, assignments []db.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO shift_assignment
				(id, cycle_id, shift_date, shift_type, role, therapist_id, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, a.ID, a.CycleID, a.Date, a.Shift, a.Role, a.TherapistID, a.Status)
		if err != nil {
			return fmt.Errorf("failed to insert assignment for %s %s: %w", a.Date, a.Shift, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit assignments: %w", err)
	}
	return nil
}
