// Package transform rewrites the input record according to a small
// comma-separated expression language:
//
//	set key=value    add or overwrite a key
//	rename old=new   move a value to a new key
//	drop key         remove a key
//
// Unrecognized operations fail the node rather than passing silently.
package transform

import (
	"context"
	"fmt"
	"strings"

	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(model.TypeTransform, OnRunTransform)
}

// OnRunTransform is the handler for transform nodes.
func OnRunTransform(ctx context.Context, req registry.Request) (map[string]any, error) {
	record := make(map[string]any, len(req.Inputs))
	for k, v := range req.Inputs {
		record[k] = v
	}

	expression := req.Node.Config["expression"]
	for _, op := range strings.Split(expression, ",") {
		op = strings.TrimSpace(op)
		if op == "" {
			continue
		}

		verb, rest, _ := strings.Cut(op, " ")
		switch verb {
		case "set":
			key, value, ok := strings.Cut(rest, "=")
			if !ok {
				return nil, fmt.Errorf("transform %q: set needs key=value, got %q", req.Node.ID, op)
			}
			record[strings.TrimSpace(key)] = strings.TrimSpace(value)
		case "rename":
			from, to, ok := strings.Cut(rest, "=")
			if !ok {
				return nil, fmt.Errorf("transform %q: rename needs old=new, got %q", req.Node.ID, op)
			}
			from, to = strings.TrimSpace(from), strings.TrimSpace(to)
			if v, exists := record[from]; exists {
				record[to] = v
				delete(record, from)
			}
		case "drop":
			delete(record, strings.TrimSpace(rest))
		default:
			return nil, fmt.Errorf("transform %q: unknown operation %q", req.Node.ID, verb)
		}
	}

	return map[string]any{"output": record}, nil
}
