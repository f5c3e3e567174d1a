// Package authz holds authorization predicates for the override write path.
// These are capability checks, not scheduling rules, so they live outside
// the engine and are consumed by the services that mutate data.
package authz

import "github.com/brightwater-rehab/scheduler/pkg/core/model"

// CanTherapistMutateOverride reports whether the given therapist may modify
// or delete the override. Manager-sourced overrides are immutable by
// therapists; a therapist may only touch their own self-entered overrides.
func CanTherapistMutateOverride(override model.AvailabilityOverride, therapistID string) bool {
	if override.Source == model.SourceManager {
		return false
	}
	return override.TherapistID == therapistID
}
