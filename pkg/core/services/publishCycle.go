package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/brightwater-rehab/scheduler/internal/config"
	"github.com/brightwater-rehab/scheduler/pkg/core/engine"
	"github.com/brightwater-rehab/scheduler/pkg/db"
)

// PublishCycleStore defines the database operations needed to publish a cycle
type PublishCycleStore interface {
	GetCycle(ctx context.Context, id string) (*db.Cycle, error)
	GetTherapists(ctx context.Context) ([]db.Therapist, error)
	GetWorkPatterns(ctx context.Context) ([]db.WorkPattern, error)
	GetOverrides(ctx context.Context, cycleID string) ([]db.Override, error)
	GetAssignments(ctx context.Context, cycleID string) ([]db.Assignment, error)
	SetCyclePublished(ctx context.Context, id string, published bool) error
}

// PublishCycleResult reports the publish gate's decision
type PublishCycleResult struct {
	CycleID    string
	CycleLabel string
	Coverage   engine.CoverageReport
	Weekly     engine.WeeklySummary
	Violations int
	Published  bool
	Forced     bool
}

// PublishCycle runs the coverage validator and the weekly summarizer as a
// publish gate. A cycle with outstanding violations is not published unless
// force is set (an explicit manager override). A blocked publish is a normal
// outcome, not an error.
func PublishCycle(
	ctx context.Context,
	store PublishCycleStore,
	cfg *config.Config,
	logger *zap.Logger,
	cycleID string,
	force bool,
) (*PublishCycleResult, error) {
	logger.Debug("Starting publishCycle",
		zap.String("cycle_id", cycleID),
		zap.Bool("force", force))

	data, err := loadCycleData(ctx, store, cfg, logger, cycleID)
	if err != nil {
		return nil, err
	}

	if data.cycle.Published {
		return nil, fmt.Errorf("cycle %s is already published", cycleID)
	}

	policy := engine.CoveragePolicy{MinPerShift: cfg.MinCoveragePerShift, MaxPerShift: cfg.MaxCoveragePerShift}
	result := &PublishCycleResult{
		CycleID:    data.cycle.ID,
		CycleLabel: data.cycle.Label,
		Coverage:   engine.ValidateCoverage(data.cycle, data.assignments, data.therapists, policy),
		Weekly:     engine.SummarizeWeeklyRules(data.cycle, activeTherapists(data.therapists), data.assignments),
	}
	result.Violations = result.Coverage.TotalViolations + result.Weekly.Violations

	if result.Violations > 0 && !force {
		logger.Warn("Publish blocked by outstanding violations",
			zap.String("cycle_id", cycleID),
			zap.Int("coverage_violations", result.Coverage.TotalViolations),
			zap.Int("weekly_violations", result.Weekly.Violations))
		return result, nil
	}

	if err := store.SetCyclePublished(ctx, cycleID, true); err != nil {
		return nil, fmt.Errorf("failed to publish cycle: %w", err)
	}

	result.Published = true
	result.Forced = force && result.Violations > 0

	logger.Info("Cycle published",
		zap.String("cycle_id", cycleID),
		zap.Bool("forced", result.Forced))

	return result, nil
}
