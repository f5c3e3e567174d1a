package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/brightwater-rehab/scheduler/pkg/db"
)

const dateLayout = "2006-01-02"

// GetCycles retrieves all schedule cycles ordered by start date
func (d *DB) GetCycles(ctx context.Context) ([]db.Cycle, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, label, start_date, end_date, published
		FROM schedule_cycle
		ORDER BY start_date
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cycles: %w", err)
	}
	defer rows.Close()

	var cycles []db.Cycle
	for rows.Next() {
		var c db.Cycle
		var start, end time.Time
		if err := rows.Scan(&c.ID, &c.Label, &start, &end, &c.Published); err != nil {
			return nil, fmt.Errorf("failed to scan cycle: %w", err)
		}
		c.StartDate = start.Format(dateLayout)
		c.EndDate = end.Format(dateLayout)
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}

// GetCycle retrieves one schedule cycle by id, nil when not found
func (d *DB) GetCycle(ctx context.Context, id string) (*db.Cycle, error) {
	var c db.Cycle
	var start, end time.Time
	err := d.pool.QueryRow(ctx, `
		SELECT id, label, start_date, end_date, published
		FROM schedule_cycle
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Label, &start, &end, &c.Published)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cycle %s: %w", id, err)
	}
	c.StartDate = start.Format(dateLayout)
	c.EndDate = end.Format(dateLayout)
	return &c, nil
}

// SetCyclePublished updates a cycle's published flag
func (d *DB) SetCyclePublished(ctx context.Context, id string, published bool) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE schedule_cycle SET published = $2 WHERE id = $1
	`, id, published)
	if err != nil {
		return fmt.Errorf("failed to update cycle %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cycle not found: %s", id)
	}
	return nil
}
