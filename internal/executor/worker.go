package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skyops/flowgrid/internal/ctxlog"
	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
)

// worker is the processing loop for one concurrent slot of the pool.
func (r *run) worker(workerID int) {
	logger := ctxlog.FromContext(r.ctx).With("workerID", workerID)
	logger.Debug("Worker started.")

	for rn := range r.ready {
		if r.ctx.Err() != nil {
			// Cancelled before dispatch: the node never ran.
			r.skip(rn, "skipped: run cancelled before dispatch")
			continue
		}
		r.execute(rn)
	}
	logger.Debug("Worker finished.")
}

// execute drives one node through its attempt loop: dispatch, per-attempt
// timeout, retry with backoff, terminal settlement.
func (r *run) execute(rn *runNode) {
	logger := ctxlog.FromContext(r.ctx).With("nodeID", rn.node.ID, "type", rn.node.Type)

	handler, err := r.reg.HandlerFor(rn.node.Type)
	if err != nil {
		// Validation checks specs, not handlers, so a spec-only type
		// surfaces here as a node error rather than a fatal fault.
		now := time.Now()
		r.settle(rn, func(res *model.NodeExecutionResult) {
			res.Status = model.StatusError
			res.Error = err.Error()
			res.EndedAt = &now
		})
		return
	}

	inputs := r.assembleInputs(rn)
	maxAttempts := 1
	if rn.node.Retry != nil && rn.node.Retry.MaxAttempts > 0 {
		maxAttempts = rn.node.Retry.MaxAttempts
	}

	started := time.Now()
	logger.Info("▶️ Node started.")

	for attempt := 1; ; attempt++ {
		r.update(rn.node.ID, func(res *model.NodeExecutionResult) {
			res.Status = model.StatusRunning
			res.Attempt = attempt
			if attempt == 1 {
				res.StartedAt = started
			}
		})

		output, attemptErr := r.attempt(rn.node, handler, inputs)

		if attemptErr == nil {
			now := time.Now()
			logger.Info("✅ Node succeeded.", "attempt", attempt)
			r.settle(rn, func(res *model.NodeExecutionResult) {
				res.Status = model.StatusSuccess
				res.Output = output
				res.EndedAt = &now
				res.DurationMs = now.Sub(started).Milliseconds()
			})
			return
		}

		if errors.Is(attemptErr, ErrCancelled) {
			now := time.Now()
			logger.Warn("Node cancelled.", "attempt", attempt)
			r.settle(rn, func(res *model.NodeExecutionResult) {
				res.Status = model.StatusError
				res.Error = ErrCancelled.Error()
				res.EndedAt = &now
				res.DurationMs = now.Sub(started).Milliseconds()
			})
			return
		}

		if attempt < maxAttempts {
			logger.Warn("Node attempt failed, retrying.", "attempt", attempt, "error", attemptErr)
			r.update(rn.node.ID, func(res *model.NodeExecutionResult) {
				res.Status = model.StatusRetrying
				res.Error = attemptErr.Error()
			})

			select {
			case <-time.After(rn.node.Retry.Delay(attempt)):
				continue
			case <-r.ctx.Done():
				now := time.Now()
				r.settle(rn, func(res *model.NodeExecutionResult) {
					res.Status = model.StatusError
					res.Error = ErrCancelled.Error()
					res.EndedAt = &now
					res.DurationMs = now.Sub(started).Milliseconds()
				})
				return
			}
		}

		now := time.Now()
		logger.Error("Node failed.", "attempt", attempt, "error", attemptErr)
		r.settle(rn, func(res *model.NodeExecutionResult) {
			res.Status = model.StatusError
			res.Error = attemptErr.Error()
			res.EndedAt = &now
			res.DurationMs = now.Sub(started).Milliseconds()
		})
		return
	}
}

// attempt invokes the handler once, bounded by the node's timeout. The
// handler runs in its own goroutine so an unresponsive handler cannot
// stall the run's bookkeeping: on timeout or cancellation the attempt
// returns immediately and the handler is left to observe its context.
func (r *run) attempt(node model.Node, handler registry.HandlerFunc, inputs map[string]any) (map[string]any, error) {
	actx := r.ctx
	if timeout := node.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(r.ctx, timeout)
		defer cancel()
	}

	type outcome struct {
		output map[string]any
		err    error
	}
	results := make(chan outcome, 1)

	go func() {
		output, err := handler(actx, registry.Request{Node: node, Inputs: inputs})
		results <- outcome{output: output, err: err}
	}()

	select {
	case o := <-results:
		if o.err != nil && r.ctx.Err() != nil {
			return nil, ErrCancelled
		}
		return o.output, o.err
	case <-actx.Done():
		if r.ctx.Err() != nil {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("%w after %v", ErrTimeout, node.Timeout())
	}
}
