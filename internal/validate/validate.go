// Package validate checks structural well-formedness of candidate workflow
// graphs: edge integrity, duplicate edges, self-loops, required
// configuration per node spec, and acyclicity.
//
// A workflow may transiently be invalid while being edited externally;
// validation is the gate in front of scheduling and execution, not a
// constraint on every mutation.
package validate

import (
	"errors"
	"fmt"

	playground "github.com/go-playground/validator/v10"

	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
	"github.com/skyops/flowgrid/internal/schedule"
)

// ValidationError is a structural diagnostic naming the offending node or
// edge. It is always surfaced before any run starts.
type ValidationError struct {
	NodeID string
	EdgeID string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.NodeID != "":
		return fmt.Sprintf("invalid workflow: node %q: %s", e.NodeID, e.Reason)
	case e.EdgeID != "":
		return fmt.Sprintf("invalid workflow: edge %q: %s", e.EdgeID, e.Reason)
	}
	return "invalid workflow: " + e.Reason
}

var structCheck = playground.New(playground.WithRequiredStructEnabled())

// CheckStructure runs field-level checks on a workflow value: required ids
// and type tags, plus node id uniqueness. Used on import, before the graph
// checks make any sense.
func CheckStructure(wf model.Workflow) error {
	if err := structCheck.Struct(wf); err != nil {
		var verrs playground.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &ValidationError{Reason: fmt.Sprintf("field %s failed %q", verrs[0].Namespace(), verrs[0].Tag())}
		}
		return err
	}

	seen := make(map[string]bool, len(wf.Nodes))
	for _, n := range wf.Nodes {
		if seen[n.ID] {
			return &ValidationError{NodeID: n.ID, Reason: "duplicate node id"}
		}
		seen[n.ID] = true
	}
	return nil
}

// Workflow validates a candidate graph against the registry's node specs.
// Checks run in order: edge integrity, duplicate edges, self-loops,
// required configuration fields, acyclicity. The first failure is returned;
// nothing is fixed up.
func Workflow(reg *registry.Registry, wf model.Workflow) error {
	if err := CheckStructure(wf); err != nil {
		return err
	}

	nodeIDs := make(map[string]bool, len(wf.Nodes))
	for _, n := range wf.Nodes {
		nodeIDs[n.ID] = true
	}

	type pair struct{ source, target string }
	seenEdges := make(map[pair]bool, len(wf.Edges))
	for _, e := range wf.Edges {
		if !nodeIDs[e.Source] {
			return &ValidationError{EdgeID: e.ID, Reason: fmt.Sprintf("source %q is not a node in this workflow", e.Source)}
		}
		if !nodeIDs[e.Target] {
			return &ValidationError{EdgeID: e.ID, Reason: fmt.Sprintf("target %q is not a node in this workflow", e.Target)}
		}
		if e.Source == e.Target {
			return &ValidationError{EdgeID: e.ID, Reason: "self-loop edges are not allowed"}
		}
		p := pair{e.Source, e.Target}
		if seenEdges[p] {
			return &ValidationError{EdgeID: e.ID, Reason: fmt.Sprintf("duplicate edge %s -> %s", e.Source, e.Target)}
		}
		seenEdges[p] = true
	}

	for _, n := range wf.Nodes {
		spec, err := reg.SpecFor(n.Type)
		if err != nil {
			return &ValidationError{NodeID: n.ID, Reason: fmt.Sprintf("unknown node type %q", n.Type)}
		}
		for _, key := range spec.RequiredConfig() {
			if n.Config[key] == "" {
				return &ValidationError{NodeID: n.ID, Reason: fmt.Sprintf("required config field %q is missing or empty", key)}
			}
		}
	}

	// Acyclicity falls out of the scheduler: a short order means residual
	// cycles.
	if _, err := schedule.Order(wf.Nodes, wf.Edges); err != nil {
		return err
	}
	return nil
}
