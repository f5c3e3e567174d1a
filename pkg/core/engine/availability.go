package engine

import (
	"time"

	"github.com/brightwater-rehab/scheduler/pkg/core/model"
)

// Availability is the final allow/deny decision for one therapist, date and
// shift type
type Availability struct {
	Allowed bool
	Reason  Reason
	Penalty float64
	Note    string // note from the matched override, if any
}

// ResolveAvailability layers employment status, explicit date overrides and
// the recurring work pattern into one decision. The pattern may be nil,
// meaning no recurring constraint. The shift type is a concrete shift, never
// a "both" scope.
//
// Short-circuit order: inactive, on leave, matching override (authoritative
// in both directions), then the pattern. Pure function; callable once per
// (therapist, date, shift) triple with no memory of prior calls.
func ResolveAvailability(
	t model.Therapist,
	pattern *model.WorkPattern,
	overrides []model.AvailabilityOverride,
	date time.Time,
	shift model.ShiftType,
) Availability {
	if !t.Active {
		return Availability{Allowed: false, Reason: ReasonInactive}
	}
	if t.OnLeave {
		return Availability{Allowed: false, Reason: ReasonOnFMLA}
	}

	if ov := matchOverride(overrides, t.ID, date, shift); ov != nil {
		if ov.Type == model.OverrideForceOff {
			return Availability{Allowed: false, Reason: ReasonOverrideForceOff, Note: ov.Note}
		}
		// force_on bypasses the work pattern entirely
		return Availability{Allowed: true, Reason: ReasonOverrideForceOn, Note: ov.Note}
	}

	if pattern == nil {
		return Availability{Allowed: true, Reason: ReasonAllowed}
	}

	verdict := EvaluatePattern(*pattern, date)
	return Availability{Allowed: verdict.Allowed, Reason: verdict.Reason, Penalty: verdict.Penalty}
}

// matchOverride finds the override governing the date and shift type. An
// override scoped exactly to the shift type beats a both-scoped one; within
// the same scope the most recently created entry wins.
func matchOverride(overrides []model.AvailabilityOverride, therapistID string, date time.Time, shift model.ShiftType) *model.AvailabilityOverride {
	var exact, both *model.AvailabilityOverride

	for i := range overrides {
		ov := &overrides[i]
		if ov.TherapistID != therapistID || !sameDate(ov.Date, date) || !ov.Scope.Matches(shift) {
			continue
		}
		if ov.Scope == model.ScopeBoth {
			if both == nil || ov.CreatedAt.After(both.CreatedAt) {
				both = ov
			}
		} else {
			if exact == nil || ov.CreatedAt.After(exact.CreatedAt) {
				exact = ov
			}
		}
	}

	if exact != nil {
		return exact
	}
	return both
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
