package db

import "context"

// Store is the full set of database operations the services use. Each
// service also declares the narrow interface it actually needs; this
// aggregate exists so a single postgres.DB satisfies all of them.
type Store interface {
	GetCycles(ctx context.Context) ([]Cycle, error)
	GetCycle(ctx context.Context, id string) (*Cycle, error)
	SetCyclePublished(ctx context.Context, id string, published bool) error

	GetTherapists(ctx context.Context) ([]Therapist, error)
	GetWorkPatterns(ctx context.Context) ([]WorkPattern, error)

	GetOverrides(ctx context.Context, cycleID string) ([]Override, error)
	InsertOverride(ctx context.Context, override Override) error

	GetAssignments(ctx context.Context, cycleID string) ([]Assignment, error)
	InsertAssignments(ctx context.Context, assignments []Assignment) error
}
