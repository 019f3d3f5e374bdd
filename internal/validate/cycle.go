package validate

import "github.com/skyops/flowgrid/internal/model"

// WouldCreateCycle reports whether adding candidate to the graph formed by
// nodes and edges would close a cycle. It never mutates its inputs, so the
// editor can ask before committing an edge instead of reverting after.
//
// The traversal is depth-first from the candidate's source over the edge
// set including the candidate, using an explicit stack and tri-state marks
// (unvisited / on stack / done) so arbitrarily deep graphs cannot overflow
// the call stack.
func WouldCreateCycle(nodes []model.Node, edges []model.Edge, candidate model.Edge) bool {
	if candidate.Source == candidate.Target {
		return true
	}

	successors := make(map[string][]string, len(nodes))
	for _, e := range edges {
		successors[e.Source] = append(successors[e.Source], e.Target)
	}
	successors[candidate.Source] = append(successors[candidate.Source], candidate.Target)

	const (
		unvisited = 0
		onStack   = 1
		done      = 2
	)
	marks := make(map[string]int, len(nodes))

	// Each frame tracks how far we have advanced through a node's
	// successors, simulating the recursive DFS without recursion.
	type frame struct {
		id   string
		next int
	}

	stack := []frame{{id: candidate.Source}}
	marks[candidate.Source] = onStack

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		succ := successors[top.id]

		if top.next < len(succ) {
			child := succ[top.next]
			top.next++

			switch marks[child] {
			case onStack:
				return true
			case unvisited:
				marks[child] = onStack
				stack = append(stack, frame{id: child})
			}
			continue
		}

		marks[top.id] = done
		stack = stack[:len(stack)-1]
	}

	return false
}
