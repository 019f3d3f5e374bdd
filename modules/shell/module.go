// Package shell executes a node's configured command through the system
// shell. Stdin comes from the upstream "stdin" port; stdout and the exit
// code flow out as ports.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/skyops/flowgrid/internal/ctxlog"
	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(model.TypeShell, OnRunShell)
}

// OnRunShell is the handler for shell nodes. The command is run via
// `sh -c`, bound to ctx so timeouts and cancellation kill the process.
func OnRunShell(ctx context.Context, req registry.Request) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx).With("handler", "shell", "nodeID", req.Node.ID)

	command := req.Node.Config["command"]
	if command == "" {
		return nil, fmt.Errorf("shell node %q has no command configured", req.Node.ID)
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	if workdir := req.Node.Config["workdir"]; workdir != "" {
		cmd.Dir = workdir
	}
	if stdin, ok := req.Inputs["stdin"].(string); ok {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("Running command.", "command", command)
	err := cmd.Run()

	exitCode := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	} else if err != nil {
		return nil, fmt.Errorf("running command: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if exitCode != 0 {
		return nil, fmt.Errorf("command exited with code %d: %s", exitCode, strings.TrimSpace(stderr.String()))
	}

	return map[string]any{
		"stdout":   stdout.String(),
		"exitCode": exitCode,
	}, nil
}
