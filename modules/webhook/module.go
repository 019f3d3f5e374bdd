// Package webhook passes an externally-delivered payload into the graph.
// Inbound delivery itself lives outside the engine; by the time this
// handler runs, the payload sits on the node's input record (seeded by the
// caller or an upstream node), and the handler forwards it downstream.
package webhook

import (
	"context"

	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(model.TypeWebhook, OnRunWebhook)
}

// OnRunWebhook is the handler for webhook nodes.
func OnRunWebhook(ctx context.Context, req registry.Request) (map[string]any, error) {
	payload, ok := req.Inputs["payload"]
	if !ok {
		// A webhook with nothing delivered forwards an empty payload
		// rather than failing: downstream filters decide what to do.
		payload = map[string]any{}
	}
	return map[string]any{"payload": payload}, nil
}
