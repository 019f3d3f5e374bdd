// Package testutil holds shared helpers for engine tests: log capture and
// stub node types registered through the real registry, so executor tests
// exercise the same dispatch path production does.
package testutil

import (
	"bytes"
	"context"
	"sync"

	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// NoopType is the stub node type tests register handlers for. Its spec has
// no required configuration, so any graph shape passes validation.
const NoopType model.NodeType = "noop"

// RegisterNoop adds the noop spec and binds fn as its handler.
func RegisterNoop(r *registry.Registry, fn registry.HandlerFunc) {
	r.RegisterSpec(registry.NodeSpec{
		Type:    NoopType,
		Label:   "Noop",
		Inputs:  []registry.Port{{ID: "in", Label: "In", Type: registry.PortJSON}},
		Outputs: []registry.Port{{ID: "out", Label: "Out", Type: registry.PortJSON}},
	})
	r.RegisterHandler(NoopType, fn)
}

// Succeed returns a handler that emits the given output record.
func Succeed(output map[string]any) registry.HandlerFunc {
	return func(ctx context.Context, req registry.Request) (map[string]any, error) {
		return output, nil
	}
}

// Node builds a noop node with the given id.
func Node(id string) model.Node {
	return model.Node{ID: id, Label: id, Type: NoopType}
}

// Nodes builds noop nodes for each id.
func Nodes(ids ...string) []model.Node {
	out := make([]model.Node, len(ids))
	for i, id := range ids {
		out[i] = Node(id)
	}
	return out
}

// Edge builds an edge with a generated id from source to target.
func Edge(source, target string) model.Edge {
	return model.Edge{ID: source + "->" + target, Source: source, Target: target}
}

// Workflow assembles a workflow value around the given nodes and edges.
func Workflow(id string, nodes []model.Node, edges []model.Edge) model.Workflow {
	return model.Workflow{ID: id, Name: id, Nodes: nodes, Edges: edges}
}
