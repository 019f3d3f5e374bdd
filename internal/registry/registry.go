package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/skyops/flowgrid/internal/model"
)

// ErrUnknownNodeType is returned when a type tag has no registered spec or
// handler.
var ErrUnknownNodeType = errors.New("unknown node type")

// Request carries everything the engine hands a node handler: the node
// being executed and its assembled input record, keyed by port id. The
// handler's view of the world ends here; it knows nothing about the graph.
type Request struct {
	Node   model.Node
	Inputs map[string]any
}

// HandlerFunc executes one node. It returns an output record keyed by
// output port id, or an error. Handlers are expected to observe ctx
// cancellation promptly.
type HandlerFunc func(ctx context.Context, req Request) (map[string]any, error)

// Module is the interface handler packages implement to be compiled into
// the binary and registered at startup.
type Module interface {
	Register(r *Registry)
}

// Registry holds the node specs and handlers for a single application
// instance.
type Registry struct {
	specs    map[model.NodeType]NodeSpec
	handlers map[model.NodeType]HandlerFunc
}

// New creates a Registry pre-seeded with the built-in node spec catalogue.
// Handlers are registered separately by modules.
func New() *Registry {
	r := &Registry{
		specs:    make(map[model.NodeType]NodeSpec),
		handlers: make(map[model.NodeType]HandlerFunc),
	}
	for _, spec := range builtinSpecs {
		r.RegisterSpec(spec)
	}
	return r
}

// RegisterSpec adds a node spec to the catalogue. Duplicate registration is
// a programmer error and panics, matching handler registration.
func (r *Registry) RegisterSpec(spec NodeSpec) {
	if _, exists := r.specs[spec.Type]; exists {
		panic(fmt.Sprintf("node spec for type '%s' already registered", spec.Type))
	}
	slog.Debug("Registering node spec.", "type", spec.Type)
	r.specs[spec.Type] = spec
}

// RegisterHandler binds the handler for a node type. Registering twice for
// the same tag panics.
func (r *Registry) RegisterHandler(t model.NodeType, fn HandlerFunc) {
	if _, exists := r.handlers[t]; exists {
		panic(fmt.Sprintf("handler for node type '%s' already registered", t))
	}
	slog.Debug("Registering node handler.", "type", t)
	r.handlers[t] = fn
}

// SpecFor returns the registered spec for a type tag.
func (r *Registry) SpecFor(t model.NodeType) (NodeSpec, error) {
	spec, ok := r.specs[t]
	if !ok {
		return NodeSpec{}, fmt.Errorf("%w: %q", ErrUnknownNodeType, t)
	}
	return spec, nil
}

// HandlerFor returns the registered handler for a type tag.
func (r *Registry) HandlerFor(t model.NodeType) (HandlerFunc, error) {
	fn, ok := r.handlers[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q (no handler)", ErrUnknownNodeType, t)
	}
	return fn, nil
}

// Types returns the registered type tags in catalogue order.
func (r *Registry) Types() []model.NodeType {
	types := make([]model.NodeType, 0, len(r.specs))
	for _, spec := range builtinSpecs {
		if _, ok := r.specs[spec.Type]; ok {
			types = append(types, spec.Type)
		}
	}
	for t := range r.specs {
		if !isBuiltin(t) {
			types = append(types, t)
		}
	}
	return types
}

func isBuiltin(t model.NodeType) bool {
	for _, spec := range builtinSpecs {
		if spec.Type == t {
			return true
		}
	}
	return false
}
