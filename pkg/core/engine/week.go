package engine

import (
	"time"

	"github.com/brightwater-rehab/scheduler/pkg/core/model"
)

const dateLayout = "2006-01-02"

// WeekStart returns the Sunday on or before the given date, truncated to
// midnight. Weeks are fixed Sunday-Saturday regardless of cycle boundaries.
func WeekStart(date time.Time) time.Time {
	d := midnight(date)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// WeekendSaturday returns the Saturday of the weekend the date belongs to:
// the date itself for a Saturday, the preceding day for a Sunday. Both days
// of a weekend therefore always map to the same Saturday.
func WeekendSaturday(date time.Time) time.Time {
	d := midnight(date)
	if d.Weekday() == time.Sunday {
		return d.AddDate(0, 0, -1)
	}
	return d
}

// SlotKey builds the stable "<ISO-date>:<day|night>" key external callers
// parse by splitting on ":". Do not change the format.
func SlotKey(date time.Time, shift model.ShiftType) string {
	return date.Format(dateLayout) + ":" + string(shift)
}

// DayKey formats a date the way slot and week maps key it
func DayKey(date time.Time) string {
	return date.Format(dateLayout)
}

// WeekKey identifies one therapist's Sunday-Saturday week
type WeekKey struct {
	TherapistID string
	WeekStart   string // ISO date of the week's Sunday
}

// NewWeekKey builds the week key for a therapist and any date in the week
func NewWeekKey(therapistID string, date time.Time) WeekKey {
	return WeekKey{TherapistID: therapistID, WeekStart: DayKey(WeekStart(date))}
}

// wholeWeeksBetween returns the number of whole weeks from a to b, negative
// when b precedes a. Both are truncated to midnight first so wall-clock
// offsets never skew the count.
func wholeWeeksBetween(a, b time.Time) int {
	days := int(midnight(b).Sub(midnight(a)).Hours() / 24)
	return days / 7
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
