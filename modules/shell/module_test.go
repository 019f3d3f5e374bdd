package shell

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
)

func request(command string, inputs map[string]any) registry.Request {
	return registry.Request{
		Node:   model.Node{ID: "sh", Type: model.TypeShell, Config: map[string]string{"command": command}},
		Inputs: inputs,
	}
}

func TestCapturesStdout(t *testing.T) {
	out, err := OnRunShell(context.Background(), request("printf hello", nil))
	require.NoError(t, err)
	assert.Equal(t, "hello", out["stdout"])
	assert.Equal(t, 0, out["exitCode"])
}

func TestStdinFromUpstreamPort(t *testing.T) {
	out, err := OnRunShell(context.Background(), request("cat", map[string]any{"stdin": "piped"}))
	require.NoError(t, err)
	assert.Equal(t, "piped", out["stdout"])
}

func TestNonZeroExitFails(t *testing.T) {
	_, err := OnRunShell(context.Background(), request("echo oops >&2; exit 3", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code 3")
	assert.Contains(t, err.Error(), "oops")
}

func TestMissingCommand(t *testing.T) {
	_, err := OnRunShell(context.Background(), request("", nil))
	assert.ErrorContains(t, err, "no command configured")
}

func TestCancellationKillsProcess(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	started := time.Now()
	_, err := OnRunShell(ctx, request("sleep 30", nil))
	require.Error(t, err)
	assert.Less(t, time.Since(started), 5*time.Second)
}
