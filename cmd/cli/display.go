package main

import (
	"fmt"
	"strings"

	"github.com/brightwater-rehab/scheduler/pkg/core/engine"
)

// printCoverage renders the coverage report as a table of slot issues
func printCoverage(totalViolations int, issues []engine.SlotIssue) {
	fmt.Printf("\nCoverage violations: %d\n", totalViolations)
	if len(issues) == 0 {
		return
	}

	fmt.Printf("\n%-16s  %-8s  %-45s  %s\n", "Date", "Shift", "Reasons", "Lead")
	fmt.Println("----------------  --------  ---------------------------------------------  --------------------")
	for _, issue := range issues {
		reasons := make([]string, len(issue.Reasons))
		for i, r := range issue.Reasons {
			reasons[i] = string(r)
		}
		lead := issue.LeadName
		if lead == "" {
			lead = "-"
		}
		fmt.Printf("%-16s  %-8s  %-45s  %s\n",
			issue.Date.Format("2006-01-02"),
			issue.Shift,
			strings.Join(reasons, ", "),
			lead,
		)
	}
}

// printWeekly renders the weekly summary; names may be nil, in which case
// raw therapist IDs are shown
func printWeekly(summary engine.WeeklySummary, names map[string]string) {
	fmt.Printf("\nWeekly limit violations: %d (under: %d, over: %d)\n",
		summary.Violations, summary.UnderCount, summary.OverCount)
	if len(summary.Details) == 0 {
		return
	}

	fmt.Printf("\n%-24s  %-12s  %-8s  %s\n", "Therapist", "Week of", "Worked", "Required")
	fmt.Println("------------------------  ------------  --------  --------")
	for _, d := range summary.Details {
		name := d.TherapistID
		if display, ok := names[d.TherapistID]; ok {
			name = display
		}
		fmt.Printf("%-24s  %-12s  %-8d  %d\n", name, d.WeekStart.Format("2006-01-02"), d.Worked, d.Required)
	}
}
