package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brightwater-rehab/scheduler/internal/config"
	"github.com/brightwater-rehab/scheduler/pkg/core/engine"
	"github.com/brightwater-rehab/scheduler/pkg/core/model"
	"github.com/brightwater-rehab/scheduler/pkg/db"
)

// GenerateScheduleStore defines the database operations needed to generate
// a schedule
type GenerateScheduleStore interface {
	GetCycle(ctx context.Context, id string) (*db.Cycle, error)
	GetTherapists(ctx context.Context) ([]db.Therapist, error)
	GetWorkPatterns(ctx context.Context) ([]db.WorkPattern, error)
	GetOverrides(ctx context.Context, cycleID string) ([]db.Override, error)
	GetAssignments(ctx context.Context, cycleID string) ([]db.Assignment, error)
	InsertAssignments(ctx context.Context, assignments []db.Assignment) error
}

// GenerateScheduleResult reports the outcome of one generation run
type GenerateScheduleResult struct {
	CycleID        string
	CycleLabel     string
	NewAssignments []model.ShiftAssignment
	UnfilledSlots  []string // slot keys that could not reach minimum coverage
	Coverage       engine.CoverageReport
	Weekly         engine.WeeklySummary
	Saved          bool
}

// GenerateSchedule fills every under-covered slot of the cycle by rotating
// through the roster with the assignment selector. Existing assignments are
// kept and counted; only the new ones are persisted.
// If dryRun is true, nothing is saved. If forceCommit is true, assignments
// are saved even when the validators still report violations.
func GenerateSchedule(
	ctx context.Context,
	store GenerateScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	cycleID string,
	dryRun bool,
	forceCommit bool,
) (*GenerateScheduleResult, error) {
	logger.Debug("Starting generateSchedule",
		zap.String("cycle_id", cycleID),
		zap.Bool("dry_run", dryRun),
		zap.Bool("force_commit", forceCommit))

	data, err := loadCycleData(ctx, store, cfg, logger, cycleID)
	if err != nil {
		return nil, err
	}
	cycle := data.cycle

	logger.Debug("Loaded cycle data",
		zap.String("label", cycle.Label),
		zap.Int("therapists", len(data.therapists)),
		zap.Int("overrides", len(data.overrides)),
		zap.Int("existing_assignments", len(data.assignments)))

	if cycle.Published {
		return nil, fmt.Errorf("cycle %s is already published", cycleID)
	}

	blocked, err := cfg.ClosureDates(cycle.StartDate, cycle.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to expand closure rules: %w", err)
	}
	logger.Debug("Expanded closure rules", zap.Int("blocked_dates", len(blocked)))

	// Precompute per-shift candidate lists and per-therapist unavailable
	// date sets; the selector then only consults set membership
	candidates := make(map[model.ShiftType][]model.Therapist)
	unavailable := make(map[model.ShiftType]map[string]map[string]bool)
	for _, shift := range model.ShiftTypes {
		unavailable[shift] = make(map[string]map[string]bool)
	}

	for _, t := range data.therapists {
		if !t.Active {
			continue
		}
		candidates[t.PrimaryShift] = append(candidates[t.PrimaryShift], t)

		for _, shift := range model.ShiftTypes {
			dates := make(map[string]bool)
			for _, d := range cycle.Dates() {
				if blocked[engine.DayKey(d)] {
					dates[engine.DayKey(d)] = true
					continue
				}
				avail := engine.ResolveAvailability(t, data.patterns[t.ID], data.overrides, d, shift)
				if !avail.Allowed {
					dates[engine.DayKey(d)] = true
				}
			}
			unavailable[shift][t.ID] = dates
		}
	}

	// Seed working state from existing coverage-counting assignments
	assignedByDate := make(map[string]map[string]bool)
	worked := make(map[engine.WeekKey]map[string]bool)
	slotState := make(map[string]*slotTally)

	for _, a := range data.assignments {
		key := engine.SlotKey(a.Date, a.Shift)
		if slotState[key] == nil {
			slotState[key] = &slotTally{}
		}
		if a.Role == model.RoleLead {
			slotState[key].hasLead = true
		}
		if !a.CountsTowardCoverage() {
			continue
		}
		slotState[key].active++

		dateKey := engine.DayKey(a.Date)
		if assignedByDate[dateKey] == nil {
			assignedByDate[dateKey] = make(map[string]bool)
		}
		assignedByDate[dateKey][a.TherapistID] = true

		wk := engine.NewWeekKey(a.TherapistID, a.Date)
		if worked[wk] == nil {
			worked[wk] = make(map[string]bool)
		}
		worked[wk][dateKey] = true
	}

	result := &GenerateScheduleResult{CycleID: cycle.ID, CycleLabel: cycle.Label}
	cursors := make(map[model.ShiftType]int)

	for _, d := range cycle.Dates() {
		dateKey := engine.DayKey(d)
		if assignedByDate[dateKey] == nil {
			assignedByDate[dateKey] = make(map[string]bool)
		}

		for _, shift := range model.ShiftTypes {
			key := engine.SlotKey(d, shift)
			tally := slotState[key]
			if tally == nil {
				tally = &slotTally{}
				slotState[key] = tally
			}

			for tally.active < cfg.MinCoveragePerShift {
				selection := engine.SelectNext(engine.SelectionInput{
					Candidates:       candidates[shift],
					Cursor:           cursors[shift],
					Date:             d,
					AssignedToday:    assignedByDate[dateKey],
					UnavailableDates: unavailable[shift],
					WorkedDates:      worked,
				})
				cursors[shift] = selection.NextCursor

				if selection.Therapist == nil {
					result.UnfilledSlots = append(result.UnfilledSlots, key)
					logger.Debug("No eligible therapist for slot", zap.String("slot", key))
					break
				}

				chosen := *selection.Therapist
				role := model.RoleStaff
				if !tally.hasLead && chosen.LeadEligible {
					role = model.RoleLead
					tally.hasLead = true
				}

				assignment := model.ShiftAssignment{
					ID:          uuid.New().String(),
					CycleID:     cycle.ID,
					Date:        d,
					Shift:       shift,
					Role:        role,
					TherapistID: chosen.ID,
					Status:      model.StatusScheduled,
				}
				result.NewAssignments = append(result.NewAssignments, assignment)

				tally.active++
				assignedByDate[dateKey][chosen.ID] = true
				wk := engine.NewWeekKey(chosen.ID, d)
				if worked[wk] == nil {
					worked[wk] = make(map[string]bool)
				}
				worked[wk][dateKey] = true
			}
		}
	}

	logger.Info("Generation completed",
		zap.Int("new_assignments", len(result.NewAssignments)),
		zap.Int("unfilled_slots", len(result.UnfilledSlots)))

	// Validate the combined outcome
	all := append(append([]model.ShiftAssignment{}, data.assignments...), result.NewAssignments...)
	policy := engine.CoveragePolicy{MinPerShift: cfg.MinCoveragePerShift, MaxPerShift: cfg.MaxCoveragePerShift}
	result.Coverage = engine.ValidateCoverage(cycle, all, data.therapists, policy)
	result.Weekly = engine.SummarizeWeeklyRules(cycle, activeTherapists(data.therapists), all)

	logger.Info("Validation completed",
		zap.Int("coverage_violations", result.Coverage.TotalViolations),
		zap.Int("weekly_violations", result.Weekly.Violations))

	clean := result.Coverage.TotalViolations == 0 && result.Weekly.Violations == 0
	shouldSave := !dryRun && (clean || forceCommit) && len(result.NewAssignments) > 0

	if shouldSave {
		records := make([]db.Assignment, len(result.NewAssignments))
		for i, a := range result.NewAssignments {
			records[i] = toDBAssignment(a)
		}
		if err := store.InsertAssignments(ctx, records); err != nil {
			return nil, fmt.Errorf("failed to save assignments: %w", err)
		}
		result.Saved = true
		logger.Info("Assignments saved", zap.Int("count", len(records)))
	} else if dryRun {
		logger.Info("Dry run mode - assignments not saved")
	} else if !clean {
		logger.Warn("Validation reported violations - not saving (use forceCommit to save anyway)")
	}

	return result, nil
}

// slotTally tracks one slot's running state during generation
type slotTally struct {
	active  int
	hasLead bool
}

func activeTherapists(therapists []model.Therapist) []model.Therapist {
	active := make([]model.Therapist, 0, len(therapists))
	for _, t := range therapists {
		if t.Active && !t.OnLeave {
			active = append(active, t)
		}
	}
	return active
}
