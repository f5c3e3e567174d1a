package engine

import (
	"time"

	"github.com/brightwater-rehab/scheduler/pkg/core/model"
)

// WeeklyDetail reports one therapist-week that missed its required count
type WeeklyDetail struct {
	TherapistID string
	WeekStart   time.Time
	Required    int
	Worked      int
}

// WeeklySummary aggregates weekly-limit compliance for a cycle. Used as a
// publish-time gate by the workflow layer.
type WeeklySummary struct {
	UnderCount int // therapist-weeks below the required count
	OverCount  int // therapist-weeks above the required count
	Violations int // UnderCount + OverCount

	// Details lists only the violating therapist-weeks, therapist by
	// therapist in cycle-week order
	Details []WeeklyDetail
}

// SummarizeWeeklyRules compares each therapist's worked-day count per
// Sunday-Saturday week against min(personal weekly limit, days of that week
// inside the cycle). The required count shrinks near cycle boundaries where
// a week is only partially covered.
func SummarizeWeeklyRules(
	cycle model.ScheduleCycle,
	therapists []model.Therapist,
	assignments []model.ShiftAssignment,
) WeeklySummary {
	// Distinct coverage-counting worked dates per therapist-week. Two
	// assignments on the same date (day and night) count as one worked day.
	workedDates := make(map[WeekKey]map[string]bool)
	for _, a := range assignments {
		if !a.CountsTowardCoverage() {
			continue
		}
		wk := NewWeekKey(a.TherapistID, a.Date)
		if workedDates[wk] == nil {
			workedDates[wk] = make(map[string]bool)
		}
		workedDates[wk][DayKey(a.Date)] = true
	}

	summary := WeeklySummary{}

	for _, t := range therapists {
		for ws := WeekStart(cycle.StartDate); !ws.After(cycle.EndDate); ws = ws.AddDate(0, 0, 7) {
			inCycle := daysInsideCycle(ws, cycle)
			required := min(t.WeeklyLimit, inCycle)
			worked := len(workedDates[WeekKey{TherapistID: t.ID, WeekStart: DayKey(ws)}])

			if worked == required {
				continue
			}
			if worked < required {
				summary.UnderCount++
			} else {
				summary.OverCount++
			}
			summary.Details = append(summary.Details, WeeklyDetail{
				TherapistID: t.ID,
				WeekStart:   ws,
				Required:    required,
				Worked:      worked,
			})
		}
	}

	summary.Violations = summary.UnderCount + summary.OverCount
	return summary
}

// daysInsideCycle counts how many of the week's seven days fall inside the
// cycle range
func daysInsideCycle(weekStart time.Time, cycle model.ScheduleCycle) int {
	count := 0
	for i := 0; i < 7; i++ {
		if cycle.Contains(weekStart.AddDate(0, 0, i)) {
			count++
		}
	}
	return count
}
