// Package schedule derives a safe total execution order from a validated
// workflow graph using Kahn's algorithm.
//
// Tie-break rule: nodes that are ready at the same step are emitted in
// workflow declaration order (the order of Workflow.Nodes). The queue is
// seeded in declaration order and successors are appended in edge
// declaration order, so the result is fully deterministic for a given
// workflow value.
package schedule

import (
	"fmt"
	"strings"

	"github.com/skyops/flowgrid/internal/model"
)

// CycleError reports that no total order exists. Remaining lists the node
// ids left with unsatisfied dependencies; every cycle in the graph passes
// through at least one of them.
type CycleError struct {
	Remaining []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("workflow contains a cycle involving node(s): %s", strings.Join(e.Remaining, ", "))
}

// Order returns a topological order of the node ids, or a *CycleError when
// the graph has no such order. Edges referencing unknown nodes are ignored
// here; the validator rejects them before scheduling.
func Order(nodes []model.Node, edges []model.Edge) ([]string, error) {
	indegree := make(map[string]int, len(nodes))
	for _, n := range nodes {
		indegree[n.ID] = 0
	}

	successors := make(map[string][]string, len(nodes))
	for _, e := range edges {
		if _, ok := indegree[e.Source]; !ok {
			continue
		}
		if _, ok := indegree[e.Target]; !ok {
			continue
		}
		successors[e.Source] = append(successors[e.Source], e.Target)
		indegree[e.Target]++
	}

	// Seed the FIFO queue in declaration order.
	queue := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if indegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, succ := range successors[id] {
			indegree[succ]--
			if indegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}

	if len(order) < len(nodes) {
		ordered := make(map[string]bool, len(order))
		for _, id := range order {
			ordered[id] = true
		}
		var remaining []string
		for _, n := range nodes {
			if !ordered[n.ID] {
				remaining = append(remaining, n.ID)
			}
		}
		return nil, &CycleError{Remaining: remaining}
	}

	return order, nil
}
