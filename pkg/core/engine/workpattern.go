package engine

import (
	"slices"
	"time"

	"github.com/brightwater-rehab/scheduler/pkg/core/model"
)

// Reason is a machine-readable availability decision code
type Reason string

const (
	ReasonAllowed                    Reason = "allowed"
	ReasonBlockedOffsDow             Reason = "blocked_offs_dow"
	ReasonBlockedEveryOtherWeekend   Reason = "blocked_every_other_weekend"
	ReasonBlockedOutsideWorksDowHard Reason = "blocked_outside_works_dow_hard"
	ReasonSoftOutsideWorksDow        Reason = "soft_outside_works_dow"
	ReasonInactive                   Reason = "inactive"
	ReasonOnFMLA                     Reason = "on_fmla"
	ReasonOverrideForceOff           Reason = "override_force_off"
	ReasonOverrideForceOn            Reason = "override_force_on"
)

// PatternVerdict is the outcome of evaluating a work pattern for one date
type PatternVerdict struct {
	Allowed bool
	Reason  Reason
	Penalty float64
}

// EvaluatePattern decides whether a therapist's recurring weekly pattern
// permits working the given date. Pure function; the caller has already
// validated that a rotation anchor, if set, is a Saturday.
//
// Precedence: off days are absolute, then the every-other-weekend rotation,
// then work-day membership under the pattern's mode.
func EvaluatePattern(p model.WorkPattern, date time.Time) PatternVerdict {
	dow := int(date.Weekday())

	if slices.Contains(p.OffsDows, dow) {
		return PatternVerdict{Allowed: false, Reason: ReasonBlockedOffsDow}
	}

	if p.EveryOtherWeekend && isWeekend(date) {
		weeks := wholeWeeksBetween(WeekendSaturday(p.WeekendAnchor), WeekendSaturday(date))
		if parity(weeks) != 0 {
			return PatternVerdict{Allowed: false, Reason: ReasonBlockedEveryOtherWeekend}
		}
	}

	if !slices.Contains(p.WorksDows, dow) {
		if p.Mode == model.ModeSoft {
			return PatternVerdict{Allowed: true, Reason: ReasonSoftOutsideWorksDow, Penalty: SoftPatternPenalty}
		}
		return PatternVerdict{Allowed: false, Reason: ReasonBlockedOutsideWorksDowHard}
	}

	return PatternVerdict{Allowed: true, Reason: ReasonAllowed}
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// parity maps a possibly-negative week offset to 0 (anchor-side weekend,
// working) or 1 (alternate weekend, off)
func parity(weeks int) int {
	return ((weeks % 2) + 2) % 2
}
