package audit

import (
	"context"
	"time"
)

type ListFilter struct {
	Action string
	Limit  int
}

// Repository stores audit records. Rows are never updated; the only delete
// is DeleteBefore, used by retention pruning.
type Repository interface {
	Append(ctx context.Context, record *Record) error
	List(ctx context.Context, filter ListFilter) ([]*Record, error)
	CountBefore(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// RunGuard marks a job as run for a calendar day. Claim reports false when
// the day was already claimed; Release gives the day back after a failed run.
type RunGuard interface {
	Claim(ctx context.Context, job string, day string) (bool, error)
	Release(ctx context.Context, job string, day string) error
}
