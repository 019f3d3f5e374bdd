// Package aggregator combines upstream outputs. It is the canonical
// waitForAll consumer: with the flag set the engine holds dispatch until
// every producer has succeeded, so the handler sees the complete input
// set.
package aggregator

import (
	"context"

	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(model.TypeAggregator, OnRunAggregator)
}

// OnRunAggregator is the handler for aggregator nodes. Mode "collect"
// emits the values as a list; the default "merge" passes the merged
// record through.
func OnRunAggregator(ctx context.Context, req registry.Request) (map[string]any, error) {
	if req.Node.Config["mode"] == "collect" {
		items := make([]any, 0, len(req.Inputs))
		for _, v := range req.Inputs {
			items = append(items, v)
		}
		return map[string]any{"merged": items}, nil
	}
	return map[string]any{"merged": req.Inputs}, nil
}
