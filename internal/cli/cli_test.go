package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/flowgrid/internal/app"
	"github.com/skyops/flowgrid/internal/testutil"
)

func parse(t *testing.T, args ...string) (*app.Config, bool, error) {
	t.Helper()
	return Parse(args, &testutil.SafeBuffer{})
}

func TestParseDefaults(t *testing.T) {
	cfg, exit, err := parse(t, "workflow.json")
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, app.CommandRun, cfg.Command)
	assert.Equal(t, "workflow.json", cfg.WorkflowPath)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.WorkerCount)
	assert.Empty(t, cfg.FeedAddr)
	assert.Empty(t, cfg.CheckpointDir)
	assert.False(t, cfg.Checkpoint)
}

func TestParseExplicitCommand(t *testing.T) {
	for _, command := range []string{
		app.CommandRun, app.CommandValidate, app.CommandOrder, app.CommandHistory,
	} {
		t.Run(command, func(t *testing.T) {
			cfg, exit, err := parse(t, command, "workflow.json")
			require.NoError(t, err)
			require.False(t, exit)
			assert.Equal(t, command, cfg.Command)
			assert.Equal(t, "workflow.json", cfg.WorkflowPath)
		})
	}
}

func TestParseAllFlags(t *testing.T) {
	cfg, exit, err := parse(t,
		"-log-format", "json",
		"-log-level", "debug",
		"-workers", "4",
		"-feed-addr", ":8077",
		"-checkpoint-dir", "/tmp/cp",
		"-checkpoint",
		"run", "pipeline.hcl",
	)
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.Equal(t, ":8077", cfg.FeedAddr)
	assert.Equal(t, "/tmp/cp", cfg.CheckpointDir)
	assert.True(t, cfg.Checkpoint)
	assert.Equal(t, "pipeline.hcl", cfg.WorkflowPath)
}

func TestParseExportRequiresOutput(t *testing.T) {
	_, _, err := parse(t, "export", "workflow.json")
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "output")

	cfg, exit, err := parse(t, "-output", "out.json", "export", "workflow.json")
	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, app.CommandExport, cfg.Command)
	assert.Equal(t, "out.json", cfg.OutputPath)
}

func TestParseNoArgsPrintsUsage(t *testing.T) {
	out := &testutil.SafeBuffer{}
	cfg, exit, err := Parse(nil, out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseHelpFlag(t *testing.T) {
	out := &testutil.SafeBuffer{}
	cfg, exit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
}

func TestParseRejections(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"-bogus", "workflow.json"}, "bogus"},
		{"bad log format", []string{"-log-format", "xml", "workflow.json"}, "log-format"},
		{"bad log level", []string{"-log-level", "verbose", "workflow.json"}, "log-level"},
		{"unknown command", []string{"teleport", "workflow.json"}, "unknown command"},
		{"zero workers", []string{"-workers", "0", "workflow.json"}, "WorkerCount"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := parse(t, tc.args...)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}
