package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/brightwater-rehab/scheduler/internal/config"
	"github.com/brightwater-rehab/scheduler/pkg/core/engine"
)

// WeeklyReportResult carries the weekly-rule summary with the therapist
// names needed for display
type WeeklyReportResult struct {
	CycleID    string
	CycleLabel string
	Summary    engine.WeeklySummary
	Names      map[string]string // therapist id -> full name
}

// WeeklyReport compares every active therapist's worked-day counts per week
// against their personal weekly limit
func WeeklyReport(
	ctx context.Context,
	store cycleDataStore,
	cfg *config.Config,
	logger *zap.Logger,
	cycleID string,
) (*WeeklyReportResult, error) {
	logger.Debug("Starting weeklyReport", zap.String("cycle_id", cycleID))

	data, err := loadCycleData(ctx, store, cfg, logger, cycleID)
	if err != nil {
		return nil, err
	}

	summary := engine.SummarizeWeeklyRules(data.cycle, activeTherapists(data.therapists), data.assignments)

	logger.Info("Weekly rule summary completed",
		zap.String("cycle_id", cycleID),
		zap.Int("under", summary.UnderCount),
		zap.Int("over", summary.OverCount))

	names := make(map[string]string, len(data.therapists))
	for _, t := range data.therapists {
		names[t.ID] = t.FullName()
	}

	return &WeeklyReportResult{
		CycleID:    data.cycle.ID,
		CycleLabel: data.cycle.Label,
		Summary:    summary,
		Names:      names,
	}, nil
}
