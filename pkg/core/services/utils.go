package services

import (
	"fmt"
	"time"

	"github.com/brightwater-rehab/scheduler/internal/config"
	"github.com/brightwater-rehab/scheduler/pkg/core/model"
	"github.com/brightwater-rehab/scheduler/pkg/db"
)

const dateLayout = "2006-01-02"

// parseDate parses an ISO date string from a store record
func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// toModelCycle converts a cycle record to the engine's typed cycle
func toModelCycle(c db.Cycle) (model.ScheduleCycle, error) {
	start, err := parseDate(c.StartDate)
	if err != nil {
		return model.ScheduleCycle{}, fmt.Errorf("cycle %s start: %w", c.ID, err)
	}
	end, err := parseDate(c.EndDate)
	if err != nil {
		return model.ScheduleCycle{}, fmt.Errorf("cycle %s end: %w", c.ID, err)
	}
	if end.Before(start) {
		return model.ScheduleCycle{}, fmt.Errorf("cycle %s ends before it starts", c.ID)
	}
	return model.ScheduleCycle{
		ID:        c.ID,
		Label:     c.Label,
		StartDate: start,
		EndDate:   end,
		Published: c.Published,
	}, nil
}

// toModelTherapist normalizes a roster record into a typed therapist. The
// configured weekly-limit defaults apply when the record carries no personal
// limit.
func toModelTherapist(t db.Therapist, defaults config.WeeklyLimitDefaults) model.Therapist {
	category := model.ParseCategory(t.Category)

	limit := t.WeeklyLimit
	if limit <= 0 {
		switch category {
		case model.CategoryFullTime:
			limit = defaults.FullTime
		case model.CategoryPartTime:
			limit = defaults.PartTime
		default:
			limit = defaults.PerDiem
		}
	}

	return model.NormalizeTherapist(model.Therapist{
		ID:            t.ID,
		FirstName:     t.FirstName,
		LastName:      t.LastName,
		Category:      category,
		PrimaryShift:  model.ParseShiftType(t.PrimaryShift),
		LeadEligible:  t.LeadEligible,
		WeeklyLimit:   limit,
		PreferredDows: int32sToInts(t.PreferredDows),
		Active:        t.Active,
		OnLeave:       t.OnLeave,
	})
}

// toModelPattern normalizes a work-pattern record. A rotation whose anchor
// is missing or not a Saturday is disabled; the second return value reports
// that a bad anchor was dropped so the caller can log it.
func toModelPattern(p db.WorkPattern) (model.WorkPattern, bool) {
	pattern := model.NormalizePattern(model.WorkPattern{
		TherapistID: p.TherapistID,
		WorksDows:   int32sToInts(p.WorksDows),
		OffsDows:    int32sToInts(p.OffsDows),
		Mode:        model.ParsePatternMode(p.Mode),
	})

	if !p.EveryOtherWeekend {
		return pattern, false
	}

	anchor, err := time.Parse(dateLayout, p.WeekendAnchor)
	if err != nil || anchor.Weekday() != time.Saturday {
		return pattern, true
	}

	pattern.EveryOtherWeekend = true
	pattern.WeekendAnchor = anchor
	return pattern, false
}

// toModelOverride converts an override record, dropping nothing: malformed
// enum values are normalized at the write path, so reads trust the store
func toModelOverride(o db.Override) (model.AvailabilityOverride, error) {
	d, err := parseDate(o.Date)
	if err != nil {
		return model.AvailabilityOverride{}, fmt.Errorf("override %s: %w", o.ID, err)
	}
	createdAt, err := time.Parse(time.RFC3339, o.CreatedAt)
	if err != nil {
		// A missing timestamp only weakens same-scope tie-breaking
		createdAt = time.Time{}
	}
	return model.AvailabilityOverride{
		ID:          o.ID,
		TherapistID: o.TherapistID,
		CycleID:     o.CycleID,
		Date:        d,
		Scope:       model.OverrideScope(o.Scope),
		Type:        model.OverrideType(o.Type),
		Source:      model.OverrideSource(o.Source),
		Note:        o.Note,
		CreatedAt:   createdAt,
	}, nil
}

// toModelAssignment converts an assignment record to the engine's shape
func toModelAssignment(a db.Assignment) (model.ShiftAssignment, error) {
	d, err := parseDate(a.Date)
	if err != nil {
		return model.ShiftAssignment{}, fmt.Errorf("assignment %s: %w", a.ID, err)
	}
	return model.ShiftAssignment{
		ID:          a.ID,
		CycleID:     a.CycleID,
		Date:        d,
		Shift:       model.ParseShiftType(a.Shift),
		Role:        model.AssignmentRole(a.Role),
		TherapistID: a.TherapistID,
		Status:      model.ParseStatus(a.Status),
	}, nil
}

// toDBAssignment converts a typed assignment back to its store record
func toDBAssignment(a model.ShiftAssignment) db.Assignment {
	return db.Assignment{
		ID:          a.ID,
		CycleID:     a.CycleID,
		Date:        a.Date.Format(dateLayout),
		Shift:       string(a.Shift),
		Role:        string(a.Role),
		TherapistID: a.TherapistID,
		Status:      string(a.Status),
	}
}

func int32sToInts(in []int32) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}
