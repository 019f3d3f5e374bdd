package app

import (
	"errors"
	"fmt"
)

// Commands the CLI can ask for.
const (
	CommandRun      = "run"
	CommandValidate = "validate"
	CommandOrder    = "order"
	CommandExport   = "export"
	CommandHistory  = "history"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Command selects what to do with the workflow (run, validate, order,
	// export, history).
	Command string

	// WorkflowPath points at the .json or .hcl workflow definition.
	WorkflowPath string

	// OutputPath is the export destination for the export command.
	OutputPath string

	LogFormat string
	LogLevel  string

	// WorkerCount bounds per-run parallelism.
	WorkerCount int

	// FeedAddr, when set, serves the websocket progress feed (e.g.
	// ":8077"). Empty disables it.
	FeedAddr string

	// CheckpointDir, when set, opens a durable Badger checkpoint store
	// there. Empty keeps checkpoints in memory.
	CheckpointDir string

	// Checkpoint makes the run command commit the final run report to the
	// checkpoint store.
	Checkpoint bool
}

// NewConfig validates a candidate configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.WorkflowPath == "" {
		return nil, errors.New("WorkflowPath is a required configuration field and cannot be empty")
	}
	switch cfg.Command {
	case CommandRun, CommandValidate, CommandOrder, CommandExport, CommandHistory:
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}
	if cfg.Command == CommandExport && cfg.OutputPath == "" {
		return nil, errors.New("export requires an output path")
	}
	if cfg.WorkerCount <= 0 {
		return nil, errors.New("WorkerCount must be positive")
	}
	return &cfg, nil
}
