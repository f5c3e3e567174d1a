package model

import "time"

// EmploymentCategory classifies a therapist's employment terms
type EmploymentCategory string

const (
	CategoryFullTime EmploymentCategory = "full_time"
	CategoryPartTime EmploymentCategory = "part_time"
	CategoryPerDiem  EmploymentCategory = "per_diem"
)

func (c EmploymentCategory) IsValid() bool {
	return c == CategoryFullTime || c == CategoryPartTime || c == CategoryPerDiem
}

// ShiftType identifies which shift of the day a slot or assignment covers
type ShiftType string

const (
	ShiftDay   ShiftType = "day"
	ShiftNight ShiftType = "night"
)

func (s ShiftType) IsValid() bool {
	return s == ShiftDay || s == ShiftNight
}

// ShiftTypes lists the shift types in slot-iteration order
var ShiftTypes = []ShiftType{ShiftDay, ShiftNight}

// OverrideScope identifies which shifts an availability override applies to
type OverrideScope string

const (
	ScopeDay   OverrideScope = "day"
	ScopeNight OverrideScope = "night"
	ScopeBoth  OverrideScope = "both"
)

func (s OverrideScope) IsValid() bool {
	return s == ScopeDay || s == ScopeNight || s == ScopeBoth
}

// Matches reports whether the scope covers the given shift type
func (s OverrideScope) Matches(shift ShiftType) bool {
	return s == ScopeBoth || string(s) == string(shift)
}

// OverrideType distinguishes force-on from force-off overrides
type OverrideType string

const (
	OverrideForceOn  OverrideType = "force_on"
	OverrideForceOff OverrideType = "force_off"
)

func (t OverrideType) IsValid() bool {
	return t == OverrideForceOn || t == OverrideForceOff
}

// OverrideSource identifies who entered an override
type OverrideSource string

const (
	SourceManager   OverrideSource = "manager"
	SourceTherapist OverrideSource = "therapist"
)

func (s OverrideSource) IsValid() bool {
	return s == SourceManager || s == SourceTherapist
}

// AssignmentRole distinguishes the shift lead from ordinary staff
type AssignmentRole string

const (
	RoleLead  AssignmentRole = "lead"
	RoleStaff AssignmentRole = "staff"
)

func (r AssignmentRole) IsValid() bool {
	return r == RoleLead || r == RoleStaff
}

// AssignmentStatus is the runtime status of a shift assignment
type AssignmentStatus string

const (
	StatusScheduled AssignmentStatus = "scheduled"
	StatusOnCall    AssignmentStatus = "on_call"
	StatusSick      AssignmentStatus = "sick"
	StatusCalledOff AssignmentStatus = "called_off"
)

func (s AssignmentStatus) IsValid() bool {
	return s == StatusScheduled || s == StatusOnCall || s == StatusSick || s == StatusCalledOff
}

// PatternMode controls how days outside a work pattern are treated
type PatternMode string

const (
	// ModeHard forbids scheduling outside the pattern's work days
	ModeHard PatternMode = "hard"
	// ModeSoft permits scheduling outside the pattern's work days with a penalty
	ModeSoft PatternMode = "soft"
)

func (m PatternMode) IsValid() bool {
	return m == ModeHard || m == ModeSoft
}

// Therapist represents a shift worker on the roster
type Therapist struct {
	ID            string
	FirstName     string
	LastName      string
	Category      EmploymentCategory
	PrimaryShift  ShiftType
	LeadEligible  bool
	WeeklyLimit   int   // max coverage-counting days per Sunday-Saturday week, 1-7
	PreferredDows []int // weekdays (0=Sunday) the therapist prefers; opt-in filter for per-diem
	Active        bool
	OnLeave       bool
}

// FullName returns the therapist's display name
func (t Therapist) FullName() string {
	return t.FirstName + " " + t.LastName
}

// WorkPattern is a therapist's recurring weekly scheduling rule
type WorkPattern struct {
	TherapistID string
	WorksDows   []int // weekdays normally scheduled (0=Sunday)
	OffsDows    []int // weekdays never scheduled; always hard, wins over WorksDows and Mode
	Mode        PatternMode

	// EveryOtherWeekend enables an alternating weekend rotation anchored to
	// WeekendAnchor, which must be a Saturday. The anchor's weekend is a
	// working weekend; weekends an odd number of whole weeks away are off.
	EveryOtherWeekend bool
	WeekendAnchor     time.Time
}

// AvailabilityOverride is an explicit per-date exception to a therapist's
// work pattern, entered by a manager or by the therapist themselves
type AvailabilityOverride struct {
	ID          string
	TherapistID string
	CycleID     string
	Date        time.Time
	Scope       OverrideScope
	Type        OverrideType
	Source      OverrideSource
	Note        string
	CreatedAt   time.Time
}

// ShiftAssignment places a therapist into one slot of a cycle
type ShiftAssignment struct {
	ID          string
	CycleID     string
	Date        time.Time
	Shift       ShiftType
	Role        AssignmentRole
	TherapistID string
	Status      AssignmentStatus
}

// CountsTowardCoverage reports whether the assignment's status counts toward
// per-slot coverage and weekly worked-day totals
func (a ShiftAssignment) CountsTowardCoverage() bool {
	return a.Status == StatusScheduled || a.Status == StatusOnCall
}

// ScheduleCycle is the multi-week date range being scheduled
type ScheduleCycle struct {
	ID        string
	Label     string
	StartDate time.Time
	EndDate   time.Time // inclusive
	Published bool
}

// Dates returns every calendar date of the cycle in order
func (c ScheduleCycle) Dates() []time.Time {
	var dates []time.Time
	for d := c.StartDate; !d.After(c.EndDate); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// Contains reports whether the date falls inside the cycle range
func (c ScheduleCycle) Contains(date time.Time) bool {
	return !date.Before(c.StartDate) && !date.After(c.EndDate)
}
