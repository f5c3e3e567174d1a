package engine

import (
	"slices"
	"time"

	"github.com/brightwater-rehab/scheduler/pkg/core/model"
)

// SelectionInput carries everything the selector needs to fill one slot.
// The selector never mutates any of it; the caller owns the loop and updates
// its working sets after recording each successful assignment.
type SelectionInput struct {
	// Candidates is the rotation list, in roster order
	Candidates []model.Therapist

	// Cursor is the rotation position to start scanning from, threaded by
	// the caller across calls within one generation run
	Cursor int

	// Date is the slot's calendar date
	Date time.Time

	// AssignedToday holds therapist IDs already assigned on Date, any shift
	AssignedToday map[string]bool

	// UnavailableDates maps therapist ID to the set of ISO dates the
	// availability resolver denied, precomputed for the whole cycle
	UnavailableDates map[string]map[string]bool

	// WorkedDates maps a therapist week to the set of ISO dates already
	// worked in that week
	WorkedDates map[WeekKey]map[string]bool
}

// SelectionResult is the selector's decision for one slot
type SelectionResult struct {
	// Therapist is the chosen candidate, nil when nobody qualifies
	Therapist *model.Therapist

	// NextCursor is the rotation position for the following call: the index
	// after the chosen candidate, wrapped, or the input cursor unchanged
	// when nothing was chosen
	NextCursor int
}

// SelectNext picks the next suitable therapist for one (date, shift) slot.
// It scans the candidate list from the cursor, wrapping so every candidate
// is visited exactly once, then ranks the eligible ones by weekday
// preference match, lower running weekly load, and scan order. Deterministic
// for identical inputs.
func SelectNext(in SelectionInput) SelectionResult {
	if len(in.Candidates) == 0 {
		return SelectionResult{NextCursor: in.Cursor}
	}

	dateKey := DayKey(in.Date)
	dow := int(in.Date.Weekday())

	type scored struct {
		index     int // index into Candidates
		scanPos   int // distance from the cursor, final tie-break
		prefMatch bool
		weekLoad  int
	}
	var best *scored

	n := len(in.Candidates)
	cursor := in.Cursor % n
	if cursor < 0 {
		cursor += n
	}

	for scanPos := 0; scanPos < n; scanPos++ {
		idx := (cursor + scanPos) % n
		cand := in.Candidates[idx]

		if in.AssignedToday[cand.ID] {
			continue
		}
		if in.UnavailableDates[cand.ID][dateKey] {
			continue
		}

		// Per-diem therapists opt in by weekday rather than being balanced
		// heuristically
		if cand.Category == model.CategoryPerDiem && len(cand.PreferredDows) > 0 &&
			!slices.Contains(cand.PreferredDows, dow) {
			continue
		}

		worked := in.WorkedDates[NewWeekKey(cand.ID, in.Date)]
		// A date already worked this week never re-counts against the limit
		if !worked[dateKey] && len(worked) >= cand.WeeklyLimit {
			continue
		}

		s := scored{
			index:     idx,
			scanPos:   scanPos,
			prefMatch: slices.Contains(cand.PreferredDows, dow),
			weekLoad:  len(worked),
		}
		if best == nil || better(s.prefMatch, s.weekLoad, s.scanPos, best.prefMatch, best.weekLoad, best.scanPos) {
			best = &s
		}
	}

	if best == nil {
		return SelectionResult{NextCursor: cursor}
	}

	chosen := in.Candidates[best.index]
	return SelectionResult{
		Therapist:  &chosen,
		NextCursor: (best.index + 1) % n,
	}
}

// better orders eligible candidates: weekday-preference match first, then
// lower weekly load, then closeness to the cursor
func better(aPref bool, aLoad, aPos int, bPref bool, bLoad, bPos int) bool {
	if aPref != bPref {
		return aPref
	}
	if aLoad != bLoad {
		return aLoad < bLoad
	}
	return aPos < bPos
}
