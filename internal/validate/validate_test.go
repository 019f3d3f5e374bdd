package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
	"github.com/skyops/flowgrid/internal/schedule"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	r.RegisterSpec(registry.NodeSpec{Type: "noop", Label: "Noop"})
	return r
}

func workflow(nodes []model.Node, edges []model.Edge) model.Workflow {
	return model.Workflow{ID: "wf-1", Name: "test", Nodes: nodes, Edges: edges}
}

func TestWorkflowValid(t *testing.T) {
	wf := workflow(nodes("A", "B", "C"), []model.Edge{edge("A", "B"), edge("B", "C")})
	assert.NoError(t, Workflow(testRegistry(t), wf))
}

func TestWorkflowDanglingEdge(t *testing.T) {
	reg := testRegistry(t)

	t.Run("missing source", func(t *testing.T) {
		wf := workflow(nodes("A"), []model.Edge{edge("ghost", "A")})
		err := Workflow(reg, wf)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "ghost->A", verr.EdgeID)
		assert.Contains(t, err.Error(), "ghost")
	})

	t.Run("missing target", func(t *testing.T) {
		wf := workflow(nodes("A"), []model.Edge{edge("A", "ghost")})
		var verr *ValidationError
		require.ErrorAs(t, Workflow(reg, wf), &verr)
	})
}

func TestWorkflowDuplicateEdge(t *testing.T) {
	wf := workflow(nodes("A", "B"), []model.Edge{
		{ID: "e1", Source: "A", Target: "B"},
		{ID: "e2", Source: "A", Target: "B"},
	})
	err := Workflow(testRegistry(t), wf)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "e2", verr.EdgeID)
	assert.Contains(t, err.Error(), "duplicate edge")
}

func TestWorkflowSelfLoop(t *testing.T) {
	wf := workflow(nodes("A", "B"), []model.Edge{edge("A", "A")})
	err := Workflow(testRegistry(t), wf)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "self-loop")

	t.Run("independent of graph size", func(t *testing.T) {
		big := nodes("A", "B", "C", "D", "E", "F", "G")
		wf := workflow(big, []model.Edge{edge("D", "D")})
		require.ErrorAs(t, Workflow(testRegistry(t), wf), &verr)
	})
}

func TestWorkflowRequiredConfig(t *testing.T) {
	reg := registry.New()

	t.Run("missing required field", func(t *testing.T) {
		wf := workflow([]model.Node{{ID: "sh", Type: model.TypeShell}}, nil)
		err := Workflow(reg, wf)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "sh", verr.NodeID)
		assert.Contains(t, err.Error(), "command")
	})

	t.Run("empty counts as missing", func(t *testing.T) {
		wf := workflow([]model.Node{{ID: "sh", Type: model.TypeShell, Config: map[string]string{"command": ""}}}, nil)
		var verr *ValidationError
		require.ErrorAs(t, Workflow(reg, wf), &verr)
	})

	t.Run("present and non-empty passes", func(t *testing.T) {
		wf := workflow([]model.Node{{ID: "sh", Type: model.TypeShell, Config: map[string]string{"command": "true"}}}, nil)
		assert.NoError(t, Workflow(reg, wf))
	})
}

func TestWorkflowUnknownType(t *testing.T) {
	wf := workflow([]model.Node{{ID: "x", Type: "martian"}}, nil)
	err := Workflow(testRegistry(t), wf)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "martian")
}

func TestWorkflowResidualCycle(t *testing.T) {
	wf := workflow(nodes("A", "B", "C"), []model.Edge{edge("A", "B"), edge("B", "C"), edge("C", "A")})
	err := Workflow(testRegistry(t), wf)
	var cycleErr *schedule.CycleError
	require.ErrorAs(t, err, &cycleErr)
}

func TestCheckStructure(t *testing.T) {
	t.Run("duplicate node ids rejected", func(t *testing.T) {
		wf := workflow(nodes("A", "A"), nil)
		var verr *ValidationError
		require.ErrorAs(t, CheckStructure(wf), &verr)
		assert.Equal(t, "A", verr.NodeID)
	})

	t.Run("missing workflow id rejected", func(t *testing.T) {
		wf := model.Workflow{Name: "no-id", Nodes: nodes("A")}
		assert.Error(t, CheckStructure(wf))
	})

	t.Run("missing node type rejected", func(t *testing.T) {
		wf := workflow([]model.Node{{ID: "A"}}, nil)
		assert.Error(t, CheckStructure(wf))
	})
}
