package model

import (
	"sort"
	"strings"
)

// Normalization of loosely-typed records read from external stores. All of
// these functions are total: malformed input maps to a conservative default
// rather than an error, so the engine's inputs are never partial.

// DefaultWeeklyLimits holds the default weekly work-day limit per employment
// category. An unrecognized category gets the most restrictive limit.
var DefaultWeeklyLimits = map[EmploymentCategory]int{
	CategoryFullTime: 5,
	CategoryPartTime: 3,
	CategoryPerDiem:  2,
}

// ParseCategory normalizes an employment category string. Unknown values map
// to per-diem, the most restrictive category.
func ParseCategory(s string) EmploymentCategory {
	c := EmploymentCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return CategoryPerDiem
	}
	return c
}

// ParseShiftType normalizes a shift type string, defaulting to day
func ParseShiftType(s string) ShiftType {
	t := ShiftType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return ShiftDay
	}
	return t
}

// ParsePatternMode normalizes a pattern mode string. Unknown values map to
// hard, the more restrictive mode.
func ParsePatternMode(s string) PatternMode {
	m := PatternMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return ModeHard
	}
	return m
}

// ParseStatus normalizes an assignment status string, defaulting to scheduled
func ParseStatus(s string) AssignmentStatus {
	st := AssignmentStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return StatusScheduled
	}
	return st
}

// ClampWeeklyLimit bounds a weekly limit to 1-7. Zero or negative values mean
// "unset" and fall back to the category default.
func ClampWeeklyLimit(limit int, category EmploymentCategory) int {
	if limit <= 0 {
		if def, ok := DefaultWeeklyLimits[category]; ok {
			return def
		}
		return DefaultWeeklyLimits[CategoryPerDiem]
	}
	if limit > 7 {
		return 7
	}
	return limit
}

// NormalizeDows dedupes a weekday list and drops values outside 0-6,
// returning the result in ascending order
func NormalizeDows(dows []int) []int {
	seen := make(map[int]bool)
	out := make([]int, 0, len(dows))
	for _, d := range dows {
		if d < 0 || d > 6 || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// NormalizeTherapist applies all therapist-level normalization in place and
// returns the result
func NormalizeTherapist(t Therapist) Therapist {
	if !t.Category.IsValid() {
		t.Category = CategoryPerDiem
	}
	if !t.PrimaryShift.IsValid() {
		t.PrimaryShift = ShiftDay
	}
	t.WeeklyLimit = ClampWeeklyLimit(t.WeeklyLimit, t.Category)
	t.PreferredDows = NormalizeDows(t.PreferredDows)
	return t
}

// NormalizePattern normalizes a work pattern's weekday sets and mode
func NormalizePattern(p WorkPattern) WorkPattern {
	p.WorksDows = NormalizeDows(p.WorksDows)
	p.OffsDows = NormalizeDows(p.OffsDows)
	if !p.Mode.IsValid() {
		p.Mode = ModeHard
	}
	return p
}
