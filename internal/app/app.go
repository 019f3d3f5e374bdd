package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/skyops/flowgrid/internal/checkpoint"
	"github.com/skyops/flowgrid/internal/ctxlog"
	"github.com/skyops/flowgrid/internal/events"
	"github.com/skyops/flowgrid/internal/executor"
	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
	"github.com/skyops/flowgrid/internal/schedule"
	"github.com/skyops/flowgrid/internal/validate"
	"github.com/skyops/flowgrid/internal/wire"
)

// App encapsulates the engine's dependencies and exposes the command
// surface the surrounding application consumes: validation, ordering,
// execution, import/export, and checkpointing.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	reg     *registry.Registry
	bus     *events.Bus
	manager *executor.Manager
	store   checkpoint.Store

	closeStore func() error
}

// NewApp constructs a fully wired engine instance: isolated logger and
// registry, handler modules registered, run manager and checkpoint store
// ready. A registry parity failure is a programmer error and panics, the
// same way a bad module build should never ship.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All handler modules registered.", "count", len(modules))

	if err := reg.ValidateRegistry(ctx); err != nil {
		panic(err)
	}

	var store checkpoint.Store
	var closeStore func() error
	if cfg.CheckpointDir != "" {
		badgerStore, err := checkpoint.OpenBadger(cfg.CheckpointDir)
		if err != nil {
			return nil, err
		}
		store = badgerStore
		closeStore = badgerStore.Close
		logger.Debug("Durable checkpoint store opened.", "dir", cfg.CheckpointDir)
	} else {
		store = checkpoint.NewMemoryStore()
	}

	bus := events.NewBus()
	return &App{
		outW:       outW,
		logger:     logger,
		reg:        reg,
		bus:        bus,
		manager:    executor.NewManager(reg, bus, cfg.WorkerCount),
		store:      store,
		closeStore: closeStore,
	}, nil
}

// Close releases the app's resources: the progress bus and, when durable,
// the checkpoint store.
func (a *App) Close() error {
	a.bus.Close()
	if a.closeStore != nil {
		return a.closeStore()
	}
	return nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry { return a.reg }

// Bus returns the progress bus so observers can subscribe to the
// workflow-progress stream.
func (a *App) Bus() *events.Bus { return a.bus }

// ValidateWorkflow checks structural well-formedness and acyclicity.
func (a *App) ValidateWorkflow(wf model.Workflow) error {
	return validate.Workflow(a.reg, wf)
}

// ExecutionOrder returns the workflow's topological execution order.
func (a *App) ExecutionOrder(wf model.Workflow) ([]string, error) {
	return schedule.Order(wf.Nodes, wf.Edges)
}

// ExecuteWorkflow starts an asynchronous run and returns its id.
func (a *App) ExecuteWorkflow(ctx context.Context, wf model.Workflow) (string, error) {
	return a.manager.Start(ctxlog.WithLogger(ctx, a.logger), wf)
}

// IsWorkflowRunning reports whether the run is still in flight.
func (a *App) IsWorkflowRunning(runID string) bool { return a.manager.IsRunning(runID) }

// CancelWorkflow requests cooperative termination of a run.
func (a *App) CancelWorkflow(runID string) bool { return a.manager.Cancel(runID) }

// RunResults returns a snapshot of a run's per-node report.
func (a *App) RunResults(runID string) (map[string]model.NodeExecutionResult, error) {
	return a.manager.Results(runID)
}

// WaitForRun blocks until a run completes or ctx expires.
func (a *App) WaitForRun(ctx context.Context, runID string) error {
	return a.manager.Wait(ctx, runID)
}

// ExportWorkflow serializes the workflow as JSON at path.
func (a *App) ExportWorkflow(wf model.Workflow, path string) error {
	return wire.Export(wf, path)
}

// ImportWorkflow reads a workflow definition (.json or .hcl) from path.
func (a *App) ImportWorkflow(path string) (model.Workflow, error) {
	return wire.Import(path)
}

// InitWorkflowCheckpoint creates the initial commit for a workflow's
// history.
func (a *App) InitWorkflowCheckpoint(ctx context.Context, workflowID string) (model.Checkpoint, error) {
	return a.store.Init(ctx, workflowID)
}

// CreateCheckpoint appends a content-addressed state snapshot.
func (a *App) CreateCheckpoint(ctx context.Context, workflowID, message string, state []byte) (model.Checkpoint, error) {
	return a.store.Create(ctx, workflowID, message, state)
}

// CheckpointHistory lists a workflow's checkpoints oldest-to-newest.
func (a *App) CheckpointHistory(ctx context.Context, workflowID string) ([]model.Checkpoint, error) {
	return a.store.History(ctx, workflowID)
}

// CheckpointState retrieves the serialized state stored under hash.
func (a *App) CheckpointState(ctx context.Context, workflowID, hash string) ([]byte, error) {
	state, err := a.store.State(ctx, workflowID, hash)
	if err != nil {
		return nil, fmt.Errorf("retrieving checkpoint state: %w", err)
	}
	return state, nil
}
