package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/brightwater-rehab/scheduler/internal/config"
	"github.com/brightwater-rehab/scheduler/pkg/core/model"
	"github.com/brightwater-rehab/scheduler/pkg/db"
)

// ListTherapistsStore defines the database operations needed to list the roster
type ListTherapistsStore interface {
	GetTherapists(ctx context.Context) ([]db.Therapist, error)
}

// ListTherapists returns the normalized roster in roster order
func ListTherapists(
	ctx context.Context,
	store ListTherapistsStore,
	cfg *config.Config,
	logger *zap.Logger,
) ([]model.Therapist, error) {
	records, err := store.GetTherapists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch therapists: %w", err)
	}

	therapists := make([]model.Therapist, len(records))
	for i, record := range records {
		therapists[i] = toModelTherapist(record, cfg.WeeklyLimitDefaults)
	}

	logger.Debug("Fetched roster", zap.Int("count", len(therapists)))
	return therapists, nil
}
