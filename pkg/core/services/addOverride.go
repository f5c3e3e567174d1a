package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brightwater-rehab/scheduler/pkg/authz"
	"github.com/brightwater-rehab/scheduler/pkg/core/model"
	"github.com/brightwater-rehab/scheduler/pkg/db"
)

// AddOverrideStore defines the database operations needed to record an
// availability override
type AddOverrideStore interface {
	GetCycle(ctx context.Context, id string) (*db.Cycle, error)
	GetOverrides(ctx context.Context, cycleID string) ([]db.Override, error)
	InsertOverride(ctx context.Context, override db.Override) error
}

// AddOverrideInput is the raw override request from the CLI or an upstream
// form. Unlike reads, the write path validates strictly instead of
// normalizing: bad enum values are rejected.
type AddOverrideInput struct {
	CycleID     string
	TherapistID string
	Date        string // ISO date
	Scope       string
	Type        string
	Source      string
	Note        string

	// ActorTherapistID identifies the therapist performing the change, empty
	// when a manager is acting
	ActorTherapistID string
}

// AddOverride validates and persists one availability override. Therapists
// cannot stack their own override on a date/scope a manager has already
// pinned.
func AddOverride(
	ctx context.Context,
	store AddOverrideStore,
	logger *zap.Logger,
	input AddOverrideInput,
) (*model.AvailabilityOverride, error) {
	logger.Debug("Starting addOverride",
		zap.String("cycle_id", input.CycleID),
		zap.String("therapist_id", input.TherapistID))

	scope := model.OverrideScope(input.Scope)
	if !scope.IsValid() {
		return nil, fmt.Errorf("invalid scope %q: must be day, night or both", input.Scope)
	}
	overrideType := model.OverrideType(input.Type)
	if !overrideType.IsValid() {
		return nil, fmt.Errorf("invalid type %q: must be force_on or force_off", input.Type)
	}
	source := model.OverrideSource(input.Source)
	if !source.IsValid() {
		return nil, fmt.Errorf("invalid source %q: must be manager or therapist", input.Source)
	}
	overrideDate, err := parseDate(input.Date)
	if err != nil {
		return nil, err
	}

	cycleRecord, err := store.GetCycle(ctx, input.CycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cycle: %w", err)
	}
	if cycleRecord == nil {
		return nil, fmt.Errorf("cycle not found: %s", input.CycleID)
	}
	cycle, err := toModelCycle(*cycleRecord)
	if err != nil {
		return nil, err
	}
	if !cycle.Contains(overrideDate) {
		return nil, fmt.Errorf("date %s is outside cycle %s (%s..%s)",
			input.Date, cycle.ID, cycle.StartDate.Format(dateLayout), cycle.EndDate.Format(dateLayout))
	}

	// A therapist-entered override may not displace an existing
	// manager-entered one for the same date and an overlapping scope
	if input.ActorTherapistID != "" {
		existingRecords, err := store.GetOverrides(ctx, input.CycleID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch overrides: %w", err)
		}
		for _, record := range existingRecords {
			existing, err := toModelOverride(record)
			if err != nil {
				return nil, err
			}
			if existing.TherapistID != input.TherapistID ||
				existing.Date.Format(dateLayout) != input.Date ||
				!scopesOverlap(existing.Scope, scope) {
				continue
			}
			if !authz.CanTherapistMutateOverride(existing, input.ActorTherapistID) {
				logger.Warn("Override rejected by capability check",
					zap.String("existing_id", existing.ID),
					zap.String("actor", input.ActorTherapistID))
				return nil, fmt.Errorf("override %s was entered by a manager and cannot be changed by a therapist", existing.ID)
			}
		}
	}

	override := model.AvailabilityOverride{
		ID:          uuid.New().String(),
		TherapistID: input.TherapistID,
		CycleID:     input.CycleID,
		Date:        overrideDate,
		Scope:       scope,
		Type:        overrideType,
		Source:      source,
		Note:        input.Note,
		CreatedAt:   time.Now().UTC(),
	}

	record := db.Override{
		ID:          override.ID,
		TherapistID: override.TherapistID,
		CycleID:     override.CycleID,
		Date:        override.Date.Format(dateLayout),
		Scope:       string(override.Scope),
		Type:        string(override.Type),
		Source:      string(override.Source),
		Note:        override.Note,
		CreatedAt:   override.CreatedAt.Format(time.RFC3339),
	}
	if err := store.InsertOverride(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save override: %w", err)
	}

	logger.Info("Override saved",
		zap.String("id", override.ID),
		zap.String("therapist_id", override.TherapistID),
		zap.String("date", input.Date),
		zap.String("type", string(override.Type)))

	return &override, nil
}

// scopesOverlap reports whether two override scopes cover at least one
// common shift type
func scopesOverlap(a, b model.OverrideScope) bool {
	if a == model.ScopeBoth || b == model.ScopeBoth {
		return true
	}
	return a == b
}
