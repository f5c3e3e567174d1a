package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/brightwater-rehab/scheduler/internal/config"
	"github.com/brightwater-rehab/scheduler/pkg/core/engine"
)

// ValidateCycleResult carries the coverage report with cycle context
type ValidateCycleResult struct {
	CycleID    string
	CycleLabel string
	Coverage   engine.CoverageReport
}

// ValidateCycle scans every slot of the cycle against its assignments and
// reports coverage and leadership violations
func ValidateCycle(
	ctx context.Context,
	store cycleDataStore,
	cfg *config.Config,
	logger *zap.Logger,
	cycleID string,
) (*ValidateCycleResult, error) {
	logger.Debug("Starting validateCycle", zap.String("cycle_id", cycleID))

	data, err := loadCycleData(ctx, store, cfg, logger, cycleID)
	if err != nil {
		return nil, err
	}

	policy := engine.CoveragePolicy{MinPerShift: cfg.MinCoveragePerShift, MaxPerShift: cfg.MaxCoveragePerShift}
	report := engine.ValidateCoverage(data.cycle, data.assignments, data.therapists, policy)

	logger.Info("Coverage validation completed",
		zap.String("cycle_id", cycleID),
		zap.Int("violations", report.TotalViolations),
		zap.Int("slots_with_issues", len(report.Issues)))

	return &ValidateCycleResult{
		CycleID:    data.cycle.ID,
		CycleLabel: data.cycle.Label,
		Coverage:   report,
	}, nil
}
