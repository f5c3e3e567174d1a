package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightwater-rehab/scheduler/pkg/core/model"
)

func oneDayCycle(d time.Time) model.ScheduleCycle {
	return model.ScheduleCycle{ID: "c1", StartDate: d, EndDate: d}
}

func assignment(therapistID string, d time.Time, shift model.ShiftType, role model.AssignmentRole, status model.AssignmentStatus) model.ShiftAssignment {
	return model.ShiftAssignment{
		CycleID:     "c1",
		Date:        d,
		Shift:       shift,
		Role:        role,
		TherapistID: therapistID,
		Status:      status,
	}
}

func leadEligible(id string) model.Therapist {
	t := fullTimer(id)
	t.LeadEligible = true
	return t
}

func TestValidateCoverage_EmptySlotFlagsUnderAndMissingLead(t *testing.T) {
	d := date(2026, time.March, 2)
	report := ValidateCoverage(oneDayCycle(d), nil, nil, CoveragePolicy{MinPerShift: 2, MaxPerShift: 6})

	// Both the day and night slot are empty
	require.Len(t, report.Issues, 2)
	assert.Equal(t, 2, report.UnderCoverage)
	assert.Equal(t, 2, report.MissingLead)
	assert.Equal(t, 4, report.TotalViolations)

	first := report.Issues[0]
	assert.Equal(t, "2026-03-02:day", first.SlotKey)
	assert.ElementsMatch(t, []ViolationReason{ViolationUnderCoverage, ViolationMissingLead}, first.Reasons)
	assert.Empty(t, first.LeadName)
}

func TestValidateCoverage_CleanSlotProducesNoIssue(t *testing.T) {
	d := date(2026, time.March, 2)
	therapists := []model.Therapist{leadEligible("lead"), fullTimer("staff")}
	assignments := []model.ShiftAssignment{
		assignment("lead", d, model.ShiftDay, model.RoleLead, model.StatusScheduled),
		assignment("staff", d, model.ShiftDay, model.RoleStaff, model.StatusScheduled),
		// night slot also valid, using the same pair
		assignment("lead", d, model.ShiftNight, model.RoleLead, model.StatusScheduled),
		assignment("staff", d, model.ShiftNight, model.RoleStaff, model.StatusOnCall),
	}

	report := ValidateCoverage(oneDayCycle(d), assignments, therapists, CoveragePolicy{MinPerShift: 2, MaxPerShift: 6})
	assert.Empty(t, report.Issues)
	assert.Zero(t, report.TotalViolations)
}

func TestValidateCoverage_SickAndCalledOffDoNotCount(t *testing.T) {
	d := date(2026, time.March, 2)
	therapists := []model.Therapist{leadEligible("lead"), fullTimer("s1"), fullTimer("s2")}
	assignments := []model.ShiftAssignment{
		assignment("lead", d, model.ShiftDay, model.RoleLead, model.StatusScheduled),
		assignment("s1", d, model.ShiftDay, model.RoleStaff, model.StatusSick),
		assignment("s2", d, model.ShiftDay, model.RoleStaff, model.StatusCalledOff),
	}

	report := ValidateCoverage(oneDayCycle(d), assignments, therapists, CoveragePolicy{MinPerShift: 2, MaxPerShift: 6})

	var dayIssue *SlotIssue
	for i := range report.Issues {
		if report.Issues[i].SlotKey == "2026-03-02:day" {
			dayIssue = &report.Issues[i]
		}
	}
	require.NotNil(t, dayIssue)
	assert.Contains(t, dayIssue.Reasons, ViolationUnderCoverage)
}

func TestValidateCoverage_OverCoverage(t *testing.T) {
	d := date(2026, time.March, 2)
	therapists := []model.Therapist{leadEligible("lead"), fullTimer("s1"), fullTimer("s2"), fullTimer("s3")}
	assignments := []model.ShiftAssignment{
		assignment("lead", d, model.ShiftDay, model.RoleLead, model.StatusScheduled),
		assignment("s1", d, model.ShiftDay, model.RoleStaff, model.StatusScheduled),
		assignment("s2", d, model.ShiftDay, model.RoleStaff, model.StatusScheduled),
		assignment("s3", d, model.ShiftDay, model.RoleStaff, model.StatusOnCall),
	}

	report := ValidateCoverage(oneDayCycle(d), assignments, therapists, CoveragePolicy{MinPerShift: 1, MaxPerShift: 3})
	assert.Equal(t, 1, report.OverCoverage)
}

func TestValidateCoverage_MultipleLeads(t *testing.T) {
	d := date(2026, time.March, 2)
	therapists := []model.Therapist{leadEligible("l1"), leadEligible("l2")}
	assignments := []model.ShiftAssignment{
		assignment("l1", d, model.ShiftDay, model.RoleLead, model.StatusScheduled),
		assignment("l2", d, model.ShiftDay, model.RoleLead, model.StatusScheduled),
	}

	report := ValidateCoverage(oneDayCycle(d), assignments, therapists, CoveragePolicy{MinPerShift: 1, MaxPerShift: 6})
	assert.Equal(t, 1, report.MultipleLeads)

	var dayIssue *SlotIssue
	for i := range report.Issues {
		if report.Issues[i].SlotKey == "2026-03-02:day" {
			dayIssue = &report.Issues[i]
		}
	}
	require.NotNil(t, dayIssue)
	assert.Equal(t, "l1", therapists[0].ID)
	assert.NotEmpty(t, dayIssue.LeadName)
}

func TestValidateCoverage_IneligibleLeadDoubleFlags(t *testing.T) {
	// A slot whose only lead is not lead-eligible reports both missing_lead
	// (nobody qualified is covering) and ineligible_lead (an unqualified
	// person holds the role)
	d := date(2026, time.March, 2)
	therapists := []model.Therapist{fullTimer("staffer"), fullTimer("other")}
	assignments := []model.ShiftAssignment{
		assignment("staffer", d, model.ShiftDay, model.RoleLead, model.StatusScheduled),
		assignment("other", d, model.ShiftDay, model.RoleStaff, model.StatusScheduled),
	}

	report := ValidateCoverage(oneDayCycle(d), assignments, therapists, CoveragePolicy{MinPerShift: 1, MaxPerShift: 6})

	var dayIssue *SlotIssue
	for i := range report.Issues {
		if report.Issues[i].SlotKey == "2026-03-02:day" {
			dayIssue = &report.Issues[i]
		}
	}
	require.NotNil(t, dayIssue)
	assert.Contains(t, dayIssue.Reasons, ViolationMissingLead)
	assert.Contains(t, dayIssue.Reasons, ViolationIneligibleLead)
	assert.Equal(t, 1, report.MissingLead)
	assert.Equal(t, 1, report.IneligibleLead)
}

func TestValidateCoverage_LeadEligibleStafferSatisfiesLeadPresence(t *testing.T) {
	// A lead-role row from an ineligible therapist plus an eligible staffer:
	// missing_lead does not fire because someone covering could lead, but
	// ineligible_lead still does
	d := date(2026, time.March, 2)
	therapists := []model.Therapist{fullTimer("wrong-lead"), leadEligible("eligible")}
	assignments := []model.ShiftAssignment{
		assignment("wrong-lead", d, model.ShiftDay, model.RoleLead, model.StatusScheduled),
		assignment("eligible", d, model.ShiftDay, model.RoleStaff, model.StatusScheduled),
	}

	report := ValidateCoverage(oneDayCycle(d), assignments, therapists, CoveragePolicy{MinPerShift: 1, MaxPerShift: 6})

	var dayIssue *SlotIssue
	for i := range report.Issues {
		if report.Issues[i].SlotKey == "2026-03-02:day" {
			dayIssue = &report.Issues[i]
		}
	}
	require.NotNil(t, dayIssue)
	assert.NotContains(t, dayIssue.Reasons, ViolationMissingLead)
	assert.Contains(t, dayIssue.Reasons, ViolationIneligibleLead)
}

func TestValidateCoverage_IssuesInCycleOrder(t *testing.T) {
	cycle := model.ScheduleCycle{
		ID:        "c1",
		StartDate: date(2026, time.March, 1),
		EndDate:   date(2026, time.March, 2),
	}

	report := ValidateCoverage(cycle, nil, nil, CoveragePolicy{MinPerShift: 1, MaxPerShift: 6})
	require.Len(t, report.Issues, 4)
	assert.Equal(t, "2026-03-01:day", report.Issues[0].SlotKey)
	assert.Equal(t, "2026-03-01:night", report.Issues[1].SlotKey)
	assert.Equal(t, "2026-03-02:day", report.Issues[2].SlotKey)
	assert.Equal(t, "2026-03-02:night", report.Issues[3].SlotKey)
}
