package repository

import (
	"context"
)

// RunRepository stores and retrieves comparison run history.
type RunRepository interface {
	// SaveRun persists a run with its rows.
	SaveRun(ctx context.Context, run *ComparisonRun) error

	// GetRunByUUID retrieves a run with its rows.
	GetRunByUUID(ctx context.Context, runUUID string) (*ComparisonRun, error)

	// ListRuns returns the most recent runs, optionally filtered by region.
	ListRuns(ctx context.Context, region string, limit int) ([]*ComparisonRun, error)

	// DeleteRun removes a run and its rows.
	DeleteRun(ctx context.Context, runUUID string) error
}
