package ports

import "context"

// LoginLockoutStore throttles repeated failed sign-in attempts per email.
type LoginLockoutStore interface {
	IsLocked(ctx context.Context, email string) (locked bool, retryAfterSeconds int)
	RecordFailure(ctx context.Context, email string)
	RecordSuccess(ctx context.Context, email string)
}
