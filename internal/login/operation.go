package login

import (
	"context"
	"time"
)

// DefaultDelay is how long DelayedOperation waits before completing.
const DefaultDelay = 1000 * time.Millisecond

// Operation performs the authentication call for a submit.
type Operation interface {
	Authenticate(ctx context.Context, creds Credentials) error
}

// OperationFunc adapts a function to Operation.
type OperationFunc func(ctx context.Context, creds Credentials) error

// Authenticate calls f.
func (f OperationFunc) Authenticate(ctx context.Context, creds Credentials) error {
	return f(ctx, creds)
}

// DelayedOperation stands in for a network request. It waits Delay and then
// succeeds, or fails with ErrSimulatedFailure when Fail is set. Cancelling
// ctx aborts the wait.
type DelayedOperation struct {
	Delay time.Duration
	Fail  bool
}

// Authenticate implements Operation.
func (o DelayedOperation) Authenticate(ctx context.Context, _ Credentials) error {
	delay := o.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	if o.Fail {
		return ErrSimulatedFailure
	}
	return nil
}
