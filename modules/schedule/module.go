// Package schedule gates its input until a point in time: an absolute
// notBefore instant, a relative delayMs, or both. The wait observes ctx,
// so node timeouts and run cancellation cut it short.
package schedule

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(model.TypeSchedule, OnRunSchedule)
}

// OnRunSchedule is the handler for schedule nodes.
func OnRunSchedule(ctx context.Context, req registry.Request) (map[string]any, error) {
	var wait time.Duration

	if notBefore := req.Node.Config["notBefore"]; notBefore != "" {
		at, err := time.Parse(time.RFC3339, notBefore)
		if err != nil {
			return nil, fmt.Errorf("schedule node %q: invalid notBefore: %w", req.Node.ID, err)
		}
		if until := time.Until(at); until > wait {
			wait = until
		}
	}

	if delay := req.Node.Config["delayMs"]; delay != "" {
		ms, err := strconv.ParseInt(delay, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("schedule node %q: invalid delayMs: %w", req.Node.ID, err)
		}
		if d := time.Duration(ms) * time.Millisecond; d > wait {
			wait = d
		}
	}

	if wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return map[string]any{"output": req.Inputs}, nil
}
