package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brightwater-rehab/scheduler/pkg/core/model"
)

func TestCanTherapistMutateOverride(t *testing.T) {
	managerEntered := model.AvailabilityOverride{TherapistID: "t1", Source: model.SourceManager}
	selfEntered := model.AvailabilityOverride{TherapistID: "t1", Source: model.SourceTherapist}

	assert.False(t, CanTherapistMutateOverride(managerEntered, "t1"), "manager-sourced overrides are locked")
	assert.True(t, CanTherapistMutateOverride(selfEntered, "t1"))
	assert.False(t, CanTherapistMutateOverride(selfEntered, "t2"), "only the owning therapist may mutate")
}
