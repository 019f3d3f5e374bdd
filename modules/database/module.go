// Package database runs a configured query against a registered query
// runner. The engine ships with no driver bound; callers inject one with
// SetRunner (tests use a stub, the host application wires its own store).
package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
)

// QueryRunner executes one query with optional parameters and returns the
// resulting rows.
type QueryRunner func(ctx context.Context, query string, params any) ([]map[string]any, error)

var (
	mu     sync.RWMutex
	runner QueryRunner
)

// SetRunner installs the process-wide query runner. Passing nil removes
// it, returning database nodes to a hard failure.
func SetRunner(r QueryRunner) {
	mu.Lock()
	defer mu.Unlock()
	runner = r
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(model.TypeDatabase, OnRunDatabase)
}

// OnRunDatabase is the handler for database nodes.
func OnRunDatabase(ctx context.Context, req registry.Request) (map[string]any, error) {
	mu.RLock()
	run := runner
	mu.RUnlock()

	if run == nil {
		return nil, fmt.Errorf("database node %q: no query runner installed", req.Node.ID)
	}

	rows, err := run(ctx, req.Node.Config["query"], req.Inputs["params"])
	if err != nil {
		return nil, fmt.Errorf("database node %q: %w", req.Node.ID, err)
	}
	return map[string]any{"rows": rows}, nil
}
