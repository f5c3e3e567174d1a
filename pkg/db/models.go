package db

// Database record types. Dates are ISO "2006-01-02" strings; conversion to
// the engine's typed model happens in the services layer.

// Cycle represents a schedule cycle record
type Cycle struct {
	ID        string
	Label     string
	StartDate string
	EndDate   string // inclusive
	Published bool
}

// Therapist represents a roster record
type Therapist struct {
	ID            string
	FirstName     string
	LastName      string
	Category      string
	PrimaryShift  string
	LeadEligible  bool
	WeeklyLimit   int // 0 means unset; category default applies
	PreferredDows []int32
	Active        bool
	OnLeave       bool
}

// WorkPattern represents a therapist's recurring weekly rule record
type WorkPattern struct {
	TherapistID       string
	WorksDows         []int32
	OffsDows          []int32
	Mode              string
	EveryOtherWeekend bool
	WeekendAnchor     string // ISO date, empty when rotation is disabled
}

// Override represents an availability override record
type Override struct {
	ID          string
	TherapistID string
	CycleID     string
	Date        string
	Scope       string
	Type        string
	Source      string
	Note        string
	CreatedAt   string // RFC 3339
}

// Assignment represents a shift assignment record
type Assignment struct {
	ID          string
	CycleID     string
	Date        string
	Shift       string
	Role        string
	TherapistID string
	Status      string
}
