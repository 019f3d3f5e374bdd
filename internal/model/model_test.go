package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicyDelay(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, BackoffMultiplier: 2, InitialDelayMs: 100}
	assert.Equal(t, 100*time.Millisecond, p.Delay(1))
	assert.Equal(t, 200*time.Millisecond, p.Delay(2))
	assert.Equal(t, 400*time.Millisecond, p.Delay(3))

	// A zero multiplier degrades to constant backoff.
	flat := RetryPolicy{InitialDelayMs: 50}
	assert.Equal(t, 50*time.Millisecond, flat.Delay(1))
	assert.Equal(t, 50*time.Millisecond, flat.Delay(4))
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{StatusSuccess, StatusError, StatusSkipped} {
		assert.True(t, s.Terminal(), s)
	}
	for _, s := range []Status{StatusIdle, StatusRunning, StatusRetrying} {
		assert.False(t, s.Terminal(), s)
	}
}

func TestNodeTimeout(t *testing.T) {
	assert.Zero(t, Node{}.Timeout())
	assert.Equal(t, 1500*time.Millisecond, Node{TimeoutMs: 1500}.Timeout())
}

func TestWorkflowNodeLookup(t *testing.T) {
	wf := Workflow{Nodes: []Node{{ID: "A"}, {ID: "B"}}}

	n, ok := wf.NodeByID("B")
	assert.True(t, ok)
	assert.Equal(t, "B", n.ID)

	_, ok = wf.NodeByID("C")
	assert.False(t, ok)

	assert.Equal(t, []string{"A", "B"}, wf.NodeIDs())
}

func TestResultCloneIsIndependent(t *testing.T) {
	ended := time.Now()
	res := NodeExecutionResult{
		NodeID:  "A",
		Status:  StatusSuccess,
		Output:  map[string]any{"k": "v"},
		EndedAt: &ended,
	}

	clone := res.Clone()
	clone.Output["k"] = "mutated"
	*clone.EndedAt = ended.Add(time.Hour)

	assert.Equal(t, "v", res.Output["k"])
	assert.Equal(t, ended, *res.EndedAt)
}
