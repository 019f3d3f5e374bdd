// Package file_op reads, writes, appends or deletes a file at the
// configured path. Written content comes from the "content" port.
package file_op

import (
	"context"
	"fmt"
	"os"

	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(model.TypeFileOp, OnRunFileOp)
}

// OnRunFileOp is the handler for file_op nodes.
func OnRunFileOp(ctx context.Context, req registry.Request) (map[string]any, error) {
	operation := req.Node.Config["operation"]
	path := req.Node.Config["path"]

	content, _ := req.Inputs["content"].(string)

	switch operation {
	case "read":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return map[string]any{"content": string(data), "path": path}, nil

	case "write":
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		return map[string]any{"content": content, "path": path}, nil

	case "append":
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		if _, err := f.WriteString(content); err != nil {
			return nil, fmt.Errorf("appending to %s: %w", path, err)
		}
		return map[string]any{"content": content, "path": path}, nil

	case "delete":
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("deleting %s: %w", path, err)
		}
		return map[string]any{"path": path}, nil
	}

	return nil, fmt.Errorf("file_op node %q: unknown operation %q", req.Node.ID, operation)
}
