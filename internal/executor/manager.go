package executor

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/skyops/flowgrid/internal/ctxlog"
	"github.com/skyops/flowgrid/internal/events"
	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
	"github.com/skyops/flowgrid/internal/validate"
)

// DefaultWorkers bounds per-run parallelism when the caller does not
// choose one.
const DefaultWorkers = 10

// Manager owns the set of in-flight and completed runs. A workflow that
// fails validation never starts.
type Manager struct {
	reg     *registry.Registry
	bus     *events.Bus
	workers int

	mu   sync.RWMutex
	runs map[string]*run
}

// NewManager creates a run manager dispatching through reg and publishing
// progress to bus. workers bounds per-run parallelism; zero or negative
// falls back to DefaultWorkers.
func NewManager(reg *registry.Registry, bus *events.Bus, workers int) *Manager {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Manager{
		reg:     reg,
		bus:     bus,
		workers: workers,
		runs:    make(map[string]*run),
	}
}

// Start validates the workflow, then launches an asynchronous run and
// returns its id. Structural errors are returned synchronously; per-node
// failures are reported through results and the progress stream instead.
func (m *Manager) Start(ctx context.Context, wf model.Workflow) (string, error) {
	if err := validate.Workflow(m.reg, wf); err != nil {
		return "", err
	}

	runID := uuid.NewString()
	r := newRun(runID, wf, m.reg, m.bus, m.workers)

	m.mu.Lock()
	m.runs[runID] = r
	m.mu.Unlock()

	ctxlog.FromContext(ctx).Info("🚀 Starting workflow run.", "runID", runID, "workflow", wf.ID, "nodes", len(wf.Nodes))
	r.start(ctx)
	return runID, nil
}

// IsRunning reports whether the run exists and has not finished.
func (m *Manager) IsRunning(runID string) bool {
	m.mu.RLock()
	r, ok := m.runs[runID]
	m.mu.RUnlock()
	return ok && r.running.Load()
}

// Cancel requests cooperative termination of a run. It returns true when
// the run existed and was still in flight. In-flight nodes finish as
// error/cancelled; undispatched nodes are skipped.
func (m *Manager) Cancel(runID string) bool {
	m.mu.RLock()
	r, ok := m.runs[runID]
	m.mu.RUnlock()
	if !ok || !r.running.Load() {
		return false
	}
	r.cancel()
	return true
}

// Results returns a snapshot of the run's per-node status map. Valid both
// mid-run and after completion.
func (m *Manager) Results(runID string) (map[string]model.NodeExecutionResult, error) {
	m.mu.RLock()
	r, ok := m.runs[runID]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRunNotFound, runID)
	}
	return r.snapshot(), nil
}

// Wait blocks until the run completes or ctx expires.
func (m *Manager) Wait(ctx context.Context, runID string) error {
	m.mu.RLock()
	r, ok := m.runs[runID]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrRunNotFound, runID)
	}

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
