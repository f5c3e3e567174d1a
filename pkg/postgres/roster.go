package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/brightwater-rehab/scheduler/pkg/db"
)

// GetTherapists retrieves the full roster in roster (insertion) order
func (d *DB) GetTherapists(ctx context.Context) ([]db.Therapist, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, first_name, last_name, category, primary_shift,
		       lead_eligible, weekly_limit, preferred_dows, active, on_leave
		FROM therapist
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query therapists: %w", err)
	}
	defer rows.Close()

	var therapists []db.Therapist
	for rows.Next() {
		var t db.Therapist
		var weeklyLimit *int
		if err := rows.Scan(&t.ID, &t.FirstName, &t.LastName, &t.Category, &t.PrimaryShift,
			&t.LeadEligible, &weeklyLimit, &t.PreferredDows, &t.Active, &t.OnLeave); err != nil {
			return nil, fmt.Errorf("failed to scan therapist: %w", err)
		}
		if weeklyLimit != nil {
			t.WeeklyLimit = *weeklyLimit
		}
		therapists = append(therapists, t)
	}
	return therapists, rows.Err()
}

// GetWorkPatterns retrieves every therapist's recurring weekly pattern
func (d *DB) GetWorkPatterns(ctx context.Context) ([]db.WorkPattern, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT therapist_id, works_dows, offs_dows, mode, every_other_weekend, weekend_anchor
		FROM work_pattern
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query work patterns: %w", err)
	}
	defer rows.Close()

	var patterns []db.WorkPattern
	for rows.Next() {
		var p db.WorkPattern
		var anchor *time.Time
		if err := rows.Scan(&p.TherapistID, &p.WorksDows, &p.OffsDows, &p.Mode,
			&p.EveryOtherWeekend, &anchor); err != nil {
			return nil, fmt.Errorf("failed to scan work pattern: %w", err)
		}
		if anchor != nil {
			p.WeekendAnchor = anchor.Format(dateLayout)
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}
