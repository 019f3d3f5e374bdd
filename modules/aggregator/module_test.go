package aggregator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
)

func TestMergeMode(t *testing.T) {
	inputs := map[string]any{"left": "a", "right": "b"}
	out, err := OnRunAggregator(context.Background(), registry.Request{
		Node:   model.Node{ID: "agg", Type: model.TypeAggregator},
		Inputs: inputs,
	})
	require.NoError(t, err)
	assert.Equal(t, inputs, out["merged"])
}

func TestCollectMode(t *testing.T) {
	out, err := OnRunAggregator(context.Background(), registry.Request{
		Node:   model.Node{ID: "agg", Config: map[string]string{"mode": "collect"}},
		Inputs: map[string]any{"left": "a", "right": "b"},
	})
	require.NoError(t, err)

	items, ok := out["merged"].([]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"a", "b"}, items)
}

func TestEmptyInputs(t *testing.T) {
	out, err := OnRunAggregator(context.Background(), registry.Request{
		Node: model.Node{ID: "agg", Config: map[string]string{"mode": "collect"}},
	})
	require.NoError(t, err)
	assert.Empty(t, out["merged"])
}
