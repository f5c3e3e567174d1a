package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brightwater-rehab/scheduler/pkg/core/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEvaluatePattern_OffsDowAlwaysWins(t *testing.T) {
	// Monday is in both WorksDows and OffsDows; offs must win regardless of mode
	for _, mode := range []model.PatternMode{model.ModeHard, model.ModeSoft} {
		p := model.WorkPattern{
			WorksDows: []int{1, 2, 3},
			OffsDows:  []int{1},
			Mode:      mode,
		}

		verdict := EvaluatePattern(p, date(2026, time.March, 2)) // a Monday
		assert.False(t, verdict.Allowed, "mode %s", mode)
		assert.Equal(t, ReasonBlockedOffsDow, verdict.Reason)
		assert.Zero(t, verdict.Penalty)
	}
}

func TestEvaluatePattern_HardModeBlocksOutsideWorksDows(t *testing.T) {
	p := model.WorkPattern{
		WorksDows: []int{1, 2, 3, 4, 5},
		Mode:      model.ModeHard,
	}

	verdict := EvaluatePattern(p, date(2026, time.March, 7)) // a Saturday
	assert.False(t, verdict.Allowed)
	assert.Equal(t, ReasonBlockedOutsideWorksDowHard, verdict.Reason)
}

func TestEvaluatePattern_SoftModePermitsWithPenalty(t *testing.T) {
	p := model.WorkPattern{
		WorksDows: []int{1, 2, 3, 4, 5},
		Mode:      model.ModeSoft,
	}

	verdict := EvaluatePattern(p, date(2026, time.March, 7)) // a Saturday
	assert.True(t, verdict.Allowed)
	assert.Equal(t, ReasonSoftOutsideWorksDow, verdict.Reason)
	assert.Greater(t, verdict.Penalty, 0.0)
}

func TestEvaluatePattern_InsideWorksDows(t *testing.T) {
	p := model.WorkPattern{
		WorksDows: []int{1, 2, 3, 4, 5},
		Mode:      model.ModeHard,
	}

	verdict := EvaluatePattern(p, date(2026, time.March, 2)) // a Monday
	assert.True(t, verdict.Allowed)
	assert.Equal(t, ReasonAllowed, verdict.Reason)
	assert.Zero(t, verdict.Penalty)
}

func TestEvaluatePattern_EveryOtherWeekendParity(t *testing.T) {
	anchor := date(2026, time.February, 21) // a Saturday
	p := model.WorkPattern{
		WorksDows:         []int{0, 1, 2, 3, 4, 5, 6},
		Mode:              model.ModeHard,
		EveryOtherWeekend: true,
		WeekendAnchor:     anchor,
	}

	// Anchor weekend and the weekend two weeks out are working weekends
	for _, d := range []time.Time{
		date(2026, time.February, 21),
		date(2026, time.February, 22),
		date(2026, time.March, 7),
		date(2026, time.March, 8),
	} {
		verdict := EvaluatePattern(p, d)
		assert.True(t, verdict.Allowed, "expected %s to be a working weekend day", d.Format("2006-01-02"))
	}

	// The weekend in between is off
	for _, d := range []time.Time{
		date(2026, time.February, 28),
		date(2026, time.March, 1),
	} {
		verdict := EvaluatePattern(p, d)
		assert.False(t, verdict.Allowed, "expected %s to be an off weekend day", d.Format("2006-01-02"))
		assert.Equal(t, ReasonBlockedEveryOtherWeekend, verdict.Reason)
	}
}

func TestEvaluatePattern_RotationIgnoresWeekdays(t *testing.T) {
	p := model.WorkPattern{
		WorksDows:         []int{1, 2, 3},
		Mode:              model.ModeHard,
		EveryOtherWeekend: true,
		WeekendAnchor:     date(2026, time.February, 21),
	}

	// A Tuesday inside WorksDows is unaffected by the weekend rotation
	verdict := EvaluatePattern(p, date(2026, time.February, 24))
	assert.True(t, verdict.Allowed)
	assert.Equal(t, ReasonAllowed, verdict.Reason)
}

func TestEvaluatePattern_RotationBeforeAnchor(t *testing.T) {
	p := model.WorkPattern{
		WorksDows:         []int{0, 6},
		Mode:              model.ModeHard,
		EveryOtherWeekend: true,
		WeekendAnchor:     date(2026, time.February, 21),
	}

	// One weekend before the anchor is an off weekend; two before is working
	assert.False(t, EvaluatePattern(p, date(2026, time.February, 14)).Allowed)
	assert.True(t, EvaluatePattern(p, date(2026, time.February, 7)).Allowed)
	assert.True(t, EvaluatePattern(p, date(2026, time.February, 8)).Allowed)
}

func TestWeekendSaturday_SundayMapsBack(t *testing.T) {
	sat := date(2026, time.March, 7)
	sun := date(2026, time.March, 8)
	assert.Equal(t, sat, WeekendSaturday(sat))
	assert.Equal(t, sat, WeekendSaturday(sun))
}

func TestWeekStart(t *testing.T) {
	sunday := date(2026, time.March, 1)
	assert.Equal(t, sunday, WeekStart(sunday))
	assert.Equal(t, sunday, WeekStart(date(2026, time.March, 4)))
	assert.Equal(t, sunday, WeekStart(date(2026, time.March, 7)))
	assert.Equal(t, date(2026, time.March, 8), WeekStart(date(2026, time.March, 8)))
}

func TestSlotKey_StableFormat(t *testing.T) {
	assert.Equal(t, "2026-03-01:day", SlotKey(date(2026, time.March, 1), model.ShiftDay))
	assert.Equal(t, "2026-03-14:night", SlotKey(date(2026, time.March, 14), model.ShiftNight))
}
