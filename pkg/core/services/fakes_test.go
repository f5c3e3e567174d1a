package services

import (
	"context"

	"github.com/brightwater-rehab/scheduler/internal/config"
	"github.com/brightwater-rehab/scheduler/pkg/db"
)

// fakeStore is an in-memory db.Store for service tests
type fakeStore struct {
	cycles      map[string]db.Cycle
	therapists  []db.Therapist
	patterns    []db.WorkPattern
	overrides   []db.Override
	assignments []db.Assignment

	insertedAssignments []db.Assignment
	insertedOverrides   []db.Override
	publishedCycles     []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{cycles: make(map[string]db.Cycle)}
}

func (f *fakeStore) GetCycles(ctx context.Context) ([]db.Cycle, error) {
	out := make([]db.Cycle, 0, len(f.cycles))
	for _, c := range f.cycles {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) GetCycle(ctx context.Context, id string) (*db.Cycle, error) {
	c, ok := f.cycles[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeStore) SetCyclePublished(ctx context.Context, id string, published bool) error {
	c := f.cycles[id]
	c.Published = published
	f.cycles[id] = c
	f.publishedCycles = append(f.publishedCycles, id)
	return nil
}

func (f *fakeStore) GetTherapists(ctx context.Context) ([]db.Therapist, error) {
	return f.therapists, nil
}

func (f *fakeStore) GetWorkPatterns(ctx context.Context) ([]db.WorkPattern, error) {
	return f.patterns, nil
}

func (f *fakeStore) GetOverrides(ctx context.Context, cycleID string) ([]db.Override, error) {
	var out []db.Override
	for _, o := range append(append([]db.Override{}, f.overrides...), f.insertedOverrides...) {
		if o.CycleID == cycleID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertOverride(ctx context.Context, override db.Override) error {
	f.insertedOverrides = append(f.insertedOverrides, override)
	return nil
}

func (f *fakeStore) GetAssignments(ctx context.Context, cycleID string) ([]db.Assignment, error) {
	var out []db.Assignment
	for _, a := range f.assignments {
		if a.CycleID == cycleID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertAssignments(ctx context.Context, assignments []db.Assignment) error {
	f.insertedAssignments = append(f.insertedAssignments, assignments...)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		DatabaseURL:         "postgres://localhost/scheduler_test",
		MinCoveragePerShift: 1,
		MaxCoveragePerShift: 6,
		WeeklyLimitDefaults: config.WeeklyLimitDefaults{FullTime: 5, PartTime: 3, PerDiem: 2},
	}
}
