package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/flowgrid/internal/model"
)

func nodes(ids ...string) []model.Node {
	out := make([]model.Node, len(ids))
	for i, id := range ids {
		out[i] = model.Node{ID: id, Type: "noop"}
	}
	return out
}

func edge(source, target string) model.Edge {
	return model.Edge{ID: source + "->" + target, Source: source, Target: target}
}

func TestOrderLinearChain(t *testing.T) {
	order, err := Order(nodes("A", "B", "C"), []model.Edge{edge("A", "B"), edge("B", "C")})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, order)
}

func TestOrderDiamond(t *testing.T) {
	order, err := Order(nodes("A", "B", "C", "D"), []model.Edge{
		edge("A", "B"), edge("A", "C"), edge("B", "D"), edge("C", "D"),
	})
	require.NoError(t, err)
	require.Len(t, order, 4)
	assert.Equal(t, "A", order[0])
	assert.Equal(t, "D", order[3])
	assert.ElementsMatch(t, []string{"B", "C"}, order[1:3])
}

func TestOrderRespectsEveryEdge(t *testing.T) {
	ns := nodes("a", "b", "c", "d", "e", "f")
	es := []model.Edge{
		edge("a", "c"), edge("b", "c"), edge("c", "d"),
		edge("c", "e"), edge("d", "f"), edge("e", "f"),
	}

	order, err := Order(ns, es)
	require.NoError(t, err)
	require.Len(t, order, len(ns))

	index := make(map[string]int, len(order))
	for i, id := range order {
		index[id] = i
	}
	for _, e := range es {
		assert.Less(t, index[e.Source], index[e.Target], "edge %s must be respected", e.ID)
	}
}

func TestOrderDeterministicTieBreak(t *testing.T) {
	// Three independent roots: declaration order decides.
	ns := nodes("z", "m", "a")
	for i := 0; i < 10; i++ {
		order, err := Order(ns, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"z", "m", "a"}, order)
	}
}

func TestOrderCycleDetected(t *testing.T) {
	t.Run("direct cycle", func(t *testing.T) {
		_, err := Order(nodes("A", "B"), []model.Edge{edge("A", "B"), edge("B", "A")})
		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.ElementsMatch(t, []string{"A", "B"}, cycleErr.Remaining)
	})

	t.Run("cycle behind a valid prefix", func(t *testing.T) {
		_, err := Order(nodes("A", "B", "C", "D"), []model.Edge{
			edge("A", "B"), edge("B", "C"), edge("C", "D"), edge("D", "B"),
		})
		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		// A orders fine; the rest sit on the cycle.
		assert.NotContains(t, cycleErr.Remaining, "A")
		assert.Contains(t, cycleErr.Remaining, "B")
	})
}

func TestOrderEmptyGraph(t *testing.T) {
	order, err := Order(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, order)
}

func TestOrderIgnoresDanglingEdges(t *testing.T) {
	// The validator rejects these before scheduling; Order itself must not
	// crash or count phantom nodes.
	order, err := Order(nodes("A"), []model.Edge{edge("A", "ghost"), edge("ghost", "A")})
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, order)
}
