package engine

import (
	"time"

	"github.com/brightwater-rehab/scheduler/pkg/core/model"
)

// ViolationReason classifies one coverage or leadership rule violation
type ViolationReason string

const (
	ViolationUnderCoverage  ViolationReason = "under_coverage"
	ViolationOverCoverage   ViolationReason = "over_coverage"
	ViolationMissingLead    ViolationReason = "missing_lead"
	ViolationMultipleLeads  ViolationReason = "multiple_leads"
	ViolationIneligibleLead ViolationReason = "ineligible_lead"
)

// SlotIssue reports every violation found in one (date, shift) slot.
// SlotKey is the stable "<ISO-date>:<day|night>" navigation key.
type SlotIssue struct {
	SlotKey  string
	Date     time.Time
	Shift    model.ShiftType
	Reasons  []ViolationReason
	LeadName string // name of the current lead assignment's therapist, if any
}

// CoverageReport aggregates the validator's findings for a whole cycle
type CoverageReport struct {
	UnderCoverage  int
	OverCoverage   int
	MissingLead    int
	MultipleLeads  int
	IneligibleLead int

	// TotalViolations sums all flags across all slots; a slot with two
	// flags counts twice
	TotalViolations int

	// Issues lists only slots with at least one violation, in cycle order
	Issues []SlotIssue
}

// ValidateCoverage scans every slot of the cycle's date range against the
// given assignments and reports coverage and leadership violations at both
// per-slot and aggregate granularity.
func ValidateCoverage(
	cycle model.ScheduleCycle,
	assignments []model.ShiftAssignment,
	therapists []model.Therapist,
	policy CoveragePolicy,
) CoverageReport {
	byID := make(map[string]model.Therapist, len(therapists))
	for _, t := range therapists {
		byID[t.ID] = t
	}

	bySlot := make(map[string][]model.ShiftAssignment)
	for _, a := range assignments {
		key := SlotKey(a.Date, a.Shift)
		bySlot[key] = append(bySlot[key], a)
	}

	report := CoverageReport{}

	for _, date := range cycle.Dates() {
		for _, shift := range model.ShiftTypes {
			key := SlotKey(date, shift)
			issue := validateSlot(key, date, shift, bySlot[key], byID, policy)
			if len(issue.Reasons) == 0 {
				continue
			}

			for _, r := range issue.Reasons {
				switch r {
				case ViolationUnderCoverage:
					report.UnderCoverage++
				case ViolationOverCoverage:
					report.OverCoverage++
				case ViolationMissingLead:
					report.MissingLead++
				case ViolationMultipleLeads:
					report.MultipleLeads++
				case ViolationIneligibleLead:
					report.IneligibleLead++
				}
				report.TotalViolations++
			}
			report.Issues = append(report.Issues, issue)
		}
	}

	return report
}

func validateSlot(
	key string,
	date time.Time,
	shift model.ShiftType,
	slotAssignments []model.ShiftAssignment,
	therapists map[string]model.Therapist,
	policy CoveragePolicy,
) SlotIssue {
	issue := SlotIssue{SlotKey: key, Date: date, Shift: shift}

	activeCoverage := 0
	leadCount := 0
	ineligibleLead := false
	activeLeadEligible := false

	for _, a := range slotAssignments {
		if a.CountsTowardCoverage() {
			activeCoverage++
			if therapists[a.TherapistID].LeadEligible {
				activeLeadEligible = true
			}
		}
		if a.Role == model.RoleLead {
			leadCount++
			t, known := therapists[a.TherapistID]
			if issue.LeadName == "" && known {
				issue.LeadName = t.FullName()
			}
			if !t.LeadEligible {
				ineligibleLead = true
			}
		}
	}

	if activeCoverage < policy.MinPerShift {
		issue.Reasons = append(issue.Reasons, ViolationUnderCoverage)
	}
	if activeCoverage > policy.MaxPerShift {
		issue.Reasons = append(issue.Reasons, ViolationOverCoverage)
	}

	// missing_lead fires both when no lead role is assigned and when nobody
	// actively covering the slot could hold it; a slot whose only lead is
	// ineligible gets flagged for both problems
	if leadCount == 0 || !activeLeadEligible {
		issue.Reasons = append(issue.Reasons, ViolationMissingLead)
	}
	if leadCount > 1 {
		issue.Reasons = append(issue.Reasons, ViolationMultipleLeads)
	}
	if ineligibleLead {
		issue.Reasons = append(issue.Reasons, ViolationIneligibleLead)
	}

	return issue
}
