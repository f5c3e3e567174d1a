package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/brightwater-rehab/scheduler/pkg/db"
)

// GetOverrides retrieves all availability overrides for a cycle
func (d *DB) GetOverrides(ctx context.Context, cycleID string) ([]db.Override, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, therapist_id, cycle_id, override_date, scope, override_type,
		       source, note, created_at
		FROM availability_override
		WHERE cycle_id = $1
		ORDER BY created_at
	`, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query overrides: %w", err)
	}
	defer rows.Close()

	var overrides []db.Override
	for rows.Next() {
		var o db.Override
		var overrideDate, createdAt time.Time
		if err := rows.Scan(&o.ID, &o.TherapistID, &o.CycleID, &overrideDate,
			&o.Scope, &o.Type, &o.Source, &o.Note, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		o.Date = overrideDate.Format(dateLayout)
		o.CreatedAt = createdAt.Format(time.RFC3339)
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}

// InsertOverride inserts a new availability override record
func (d *DB) InsertOverride(ctx context.Context, override db.Override) error {
	createdAt, err := time.Parse(time.RFC3339, override.CreatedAt)
	if err != nil {
		return fmt.Errorf("invalid override created_at %q: %w", override.CreatedAt, err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO availability_override
			(id, therapist_id, cycle_id, override_date, scope, override_type, source, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, override.ID, override.TherapistID, override.CycleID, override.Date,
		override.Scope, override.Type, override.Source, override.Note, createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert override: %w", err)
	}
	return nil
}
