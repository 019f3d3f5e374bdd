// Package cli turns command-line arguments into an app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/skyops/flowgrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("flowgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
flowgrid - A workflow DAG engine: validate, order, and execute typed
processing graphs.

Usage:
  flowgrid [options] [COMMAND] WORKFLOW_PATH

Commands:
  run        Execute the workflow (default).
  validate   Check structure and acyclicity, then exit.
  order      Print the topological execution order.
  export     Re-serialize the workflow as JSON to -output.
  history    List the workflow's checkpoint log.

Arguments:
  WORKFLOW_PATH
    Path to a .json (canvas format) or .hcl workflow definition.

Options:
`)
		flagSet.PrintDefaults()
	}

	outputFlag := flagSet.String("output", "", "Destination path for the export command.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 10, "Number of concurrent workers for the executor.")
	feedAddrFlag := flagSet.String("feed-addr", "", "Address for the websocket progress feed. Empty disables it.")
	checkpointDirFlag := flagSet.String("checkpoint-dir", "", "Directory for the durable checkpoint store. Empty keeps checkpoints in memory.")
	checkpointFlag := flagSet.Bool("checkpoint", false, "Commit the final run report to the checkpoint store.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	command := app.CommandRun
	path := ""
	switch flagSet.NArg() {
	case 1:
		path = flagSet.Arg(0)
	case 2:
		command = flagSet.Arg(0)
		path = flagSet.Arg(1)
	}

	if path == "" {
		slog.Debug("No workflow path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Command:       command,
		WorkflowPath:  path,
		OutputPath:    *outputFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
		WorkerCount:   *workersFlag,
		FeedAddr:      *feedAddrFlag,
		CheckpointDir: *checkpointDirFlag,
		Checkpoint:    *checkpointFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "command", config.Command, "path", config.WorkflowPath)
	return config, false, nil
}
