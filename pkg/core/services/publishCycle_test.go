package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brightwater-rehab/scheduler/pkg/db"
)

// fullWeekAssignments covers every slot of weekCycle at the capacity split
// the roster allows
func fullWeekAssignments() []db.Assignment {
	dayIDs := []string{"ana", "ben", "ana", "ben", "ana", "ben", "ana"}
	dates := []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06", "2026-03-07"}

	var out []db.Assignment
	for i, date := range dates {
		out = append(out,
			db.Assignment{ID: date + "-d", CycleID: "cycle-1", Date: date, Shift: "day", Role: "lead", TherapistID: dayIDs[i], Status: "scheduled"},
			db.Assignment{ID: date + "-n", CycleID: "cycle-1", Date: date, Shift: "night", Role: "lead", TherapistID: "cora", Status: "scheduled"},
		)
	}
	return out
}

func TestPublishCycleClean(t *testing.T) {
	store := newFakeStore()
	store.cycles["cycle-1"] = weekCycle()
	store.therapists = weekRoster()
	store.assignments = fullWeekAssignments()

	result, err := PublishCycle(context.Background(), store, testConfig(), zap.NewNop(), "cycle-1", false)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Violations)
	assert.True(t, result.Published)
	assert.False(t, result.Forced)
	assert.Equal(t, []string{"cycle-1"}, store.publishedCycles)
	assert.True(t, store.cycles["cycle-1"].Published)
}

func TestPublishCycleBlockedByViolations(t *testing.T) {
	store := newFakeStore()
	store.cycles["cycle-1"] = weekCycle()
	store.therapists = weekRoster()
	// No assignments at all: every slot is under-covered

	result, err := PublishCycle(context.Background(), store, testConfig(), zap.NewNop(), "cycle-1", false)
	require.NoError(t, err)

	assert.Greater(t, result.Violations, 0)
	assert.False(t, result.Published)
	assert.Empty(t, store.publishedCycles)
}

func TestPublishCycleForced(t *testing.T) {
	store := newFakeStore()
	store.cycles["cycle-1"] = weekCycle()
	store.therapists = weekRoster()

	result, err := PublishCycle(context.Background(), store, testConfig(), zap.NewNop(), "cycle-1", true)
	require.NoError(t, err)

	assert.Greater(t, result.Violations, 0)
	assert.True(t, result.Published)
	assert.True(t, result.Forced)
	assert.Equal(t, []string{"cycle-1"}, store.publishedCycles)
}

func TestPublishCycleAlreadyPublished(t *testing.T) {
	store := newFakeStore()
	cycle := weekCycle()
	cycle.Published = true
	store.cycles["cycle-1"] = cycle
	store.therapists = weekRoster()

	_, err := PublishCycle(context.Background(), store, testConfig(), zap.NewNop(), "cycle-1", false)
	assert.ErrorContains(t, err, "already published")
}

func TestValidateCycleReportsIssues(t *testing.T) {
	store := newFakeStore()
	store.cycles["cycle-1"] = weekCycle()
	store.therapists = weekRoster()
	store.assignments = []db.Assignment{
		{ID: "a1", CycleID: "cycle-1", Date: "2026-03-01", Shift: "day", Role: "lead", TherapistID: "ana", Status: "scheduled"},
	}

	result, err := ValidateCycle(context.Background(), store, testConfig(), zap.NewNop(), "cycle-1")
	require.NoError(t, err)

	assert.Equal(t, "Early March", result.CycleLabel)
	// 13 of the 14 slots are empty: under-covered and without a lead
	assert.Equal(t, 13, result.Coverage.UnderCoverage)
	assert.Equal(t, 13, result.Coverage.MissingLead)
}

func TestWeeklyReportNamesAndViolations(t *testing.T) {
	store := newFakeStore()
	store.cycles["cycle-1"] = weekCycle()
	store.therapists = weekRoster()
	store.assignments = fullWeekAssignments()

	result, err := WeeklyReport(context.Background(), store, testConfig(), zap.NewNop(), "cycle-1")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Summary.Violations)
	assert.Equal(t, "Ana Reyes", result.Names["ana"])
	assert.Equal(t, "Cora Lindqvist", result.Names["cora"])
}
