package engine

// Scheduling policy defaults. The service layer may widen or narrow the
// coverage band via configuration; these are the fallback values.

const (
	// MinCoveragePerShift is the minimum number of coverage-counting
	// assignments a slot needs
	MinCoveragePerShift = 2

	// MaxCoveragePerShift is the maximum number of coverage-counting
	// assignments a slot may carry
	MaxCoveragePerShift = 6

	// SoftPatternPenalty is the penalty attached to a date a soft-mode
	// pattern permits outside its work days. Callers ranking candidates by
	// penalty only rely on it being positive and stable.
	SoftPatternPenalty = 1.0
)

// CoveragePolicy bounds per-slot coverage for validation
type CoveragePolicy struct {
	MinPerShift int
	MaxPerShift int
}

// DefaultCoveragePolicy returns the built-in coverage band
func DefaultCoveragePolicy() CoveragePolicy {
	return CoveragePolicy{MinPerShift: MinCoveragePerShift, MaxPerShift: MaxCoveragePerShift}
}
