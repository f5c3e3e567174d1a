package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/brightwater-rehab/scheduler/internal/config"
	"github.com/brightwater-rehab/scheduler/pkg/core/model"
	"github.com/brightwater-rehab/scheduler/pkg/db"
)

// cycleDataStore is the read surface shared by every cycle-scoped service
type cycleDataStore interface {
	GetCycle(ctx context.Context, id string) (*db.Cycle, error)
	GetTherapists(ctx context.Context) ([]db.Therapist, error)
	GetWorkPatterns(ctx context.Context) ([]db.WorkPattern, error)
	GetOverrides(ctx context.Context, cycleID string) ([]db.Override, error)
	GetAssignments(ctx context.Context, cycleID string) ([]db.Assignment, error)
}

// cycleData is everything the engine needs for one cycle, fully normalized
type cycleData struct {
	cycle       model.ScheduleCycle
	therapists  []model.Therapist // roster order
	patterns    map[string]*model.WorkPattern
	overrides   []model.AvailabilityOverride
	assignments []model.ShiftAssignment
}

// loadCycleData fetches and normalizes the cycle, roster, patterns,
// overrides and assignments in one batch ahead of any engine call
func loadCycleData(
	ctx context.Context,
	store cycleDataStore,
	cfg *config.Config,
	logger *zap.Logger,
	cycleID string,
) (*cycleData, error) {
	record, err := store.GetCycle(ctx, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cycle: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("cycle not found: %s", cycleID)
	}
	cycle, err := toModelCycle(*record)
	if err != nil {
		return nil, err
	}

	therapistRecords, err := store.GetTherapists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch therapists: %w", err)
	}
	therapists := make([]model.Therapist, len(therapistRecords))
	for i, t := range therapistRecords {
		therapists[i] = toModelTherapist(t, cfg.WeeklyLimitDefaults)
	}

	patternRecords, err := store.GetWorkPatterns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch work patterns: %w", err)
	}
	patterns := make(map[string]*model.WorkPattern, len(patternRecords))
	for _, p := range patternRecords {
		pattern, droppedAnchor := toModelPattern(p)
		if droppedAnchor {
			logger.Warn("Dropping weekend rotation with invalid anchor",
				zap.String("therapist_id", p.TherapistID),
				zap.String("anchor", p.WeekendAnchor))
		}
		patterns[pattern.TherapistID] = &pattern
	}

	overrideRecords, err := store.GetOverrides(ctx, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch overrides: %w", err)
	}
	overrides := make([]model.AvailabilityOverride, 0, len(overrideRecords))
	for _, o := range overrideRecords {
		override, err := toModelOverride(o)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, override)
	}

	assignmentRecords, err := store.GetAssignments(ctx, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	assignments := make([]model.ShiftAssignment, 0, len(assignmentRecords))
	for _, a := range assignmentRecords {
		assignment, err := toModelAssignment(a)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	return &cycleData{
		cycle:       cycle,
		therapists:  therapists,
		patterns:    patterns,
		overrides:   overrides,
		assignments: assignments,
	}, nil
}
