// Package filter gates a record on a configured key comparison. The record
// passes through on the "output" port only when it matches; "matched"
// reports the outcome either way.
package filter

import (
	"context"
	"fmt"

	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(model.TypeFilter, OnRunFilter)
}

// OnRunFilter is the handler for filter nodes. With no "equals" configured
// the filter passes on mere key presence.
func OnRunFilter(ctx context.Context, req registry.Request) (map[string]any, error) {
	key := req.Node.Config["key"]
	value, present := req.Inputs[key]

	matched := present
	if want, ok := req.Node.Config["equals"]; ok && want != "" {
		matched = present && fmt.Sprintf("%v", value) == want
	}

	output := map[string]any{"matched": matched}
	if matched {
		output["output"] = req.Inputs
	}
	return output, nil
}
