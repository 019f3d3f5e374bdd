package executor

import "errors"

var (
	// ErrTimeout marks a single attempt that exceeded the node's
	// configured timeout. It feeds the same retry logic as any other
	// attempt failure.
	ErrTimeout = errors.New("timeout")

	// ErrCancelled marks a node that was in flight when the run-level
	// cancel signal arrived.
	ErrCancelled = errors.New("cancelled")

	// ErrRunNotFound is returned by the manager for unknown run ids.
	ErrRunNotFound = errors.New("run not found")
)
