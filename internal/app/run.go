package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/skyops/flowgrid/internal/ctxlog"
	"github.com/skyops/flowgrid/internal/events"
	"github.com/skyops/flowgrid/internal/model"
)

// Run executes the configured command against the configured workflow
// file. It is the single entrypoint the CLI drives.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", cfg.Command)

	wf, err := a.ImportWorkflow(cfg.WorkflowPath)
	if err != nil {
		return err
	}
	a.logger.Debug("Workflow imported.", "workflow", wf.ID, "nodes", len(wf.Nodes), "edges", len(wf.Edges))

	switch cfg.Command {
	case CommandValidate:
		if err := a.ValidateWorkflow(wf); err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "workflow %s is valid (%d nodes, %d edges)\n", wf.ID, len(wf.Nodes), len(wf.Edges))
		return nil

	case CommandOrder:
		order, err := a.ExecutionOrder(wf)
		if err != nil {
			return err
		}
		for i, id := range order {
			fmt.Fprintf(a.outW, "%3d  %s\n", i+1, id)
		}
		return nil

	case CommandExport:
		if err := a.ValidateWorkflow(wf); err != nil {
			return err
		}
		return a.ExportWorkflow(wf, cfg.OutputPath)

	case CommandHistory:
		history, err := a.CheckpointHistory(ctx, wf.ID)
		if err != nil {
			return err
		}
		for _, cp := range history {
			fmt.Fprintf(a.outW, "%s  %s  %s\n", cp.Hash[:12], cp.Timestamp.Format("2006-01-02 15:04:05"), cp.Message)
		}
		return nil

	case CommandRun:
		return a.runWorkflow(ctx, cfg, wf)
	}

	return fmt.Errorf("unknown command %q", cfg.Command)
}

// runWorkflow drives one synchronous run end to end: optional feed
// server, execution, waiting, report printing, optional checkpoint
// commit.
func (a *App) runWorkflow(ctx context.Context, cfg *Config, wf model.Workflow) error {
	if cfg.FeedAddr != "" {
		feed := events.NewFeed(a.bus)
		go func() {
			if err := feed.Serve(ctx, cfg.FeedAddr); err != nil {
				a.logger.Error("Progress feed failed.", "error", err)
			}
		}()
	}

	runID, err := a.ExecuteWorkflow(ctx, wf)
	if err != nil {
		return err
	}

	if err := a.WaitForRun(ctx, runID); err != nil {
		// ctx expired: cancel the run cooperatively and still report.
		a.CancelWorkflow(runID)
		if waitErr := a.WaitForRun(context.Background(), runID); waitErr != nil {
			return waitErr
		}
	}

	report, err := a.RunResults(runID)
	if err != nil {
		return err
	}

	// The run itself never fails as a whole; the caller gets the
	// per-node report and decides what a mixed outcome means.
	out, err := json.MarshalIndent(reportLines(wf, report), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.outW, string(out))

	if cfg.Checkpoint {
		state, err := json.Marshal(report)
		if err != nil {
			return fmt.Errorf("serializing run report: %w", err)
		}
		cp, err := a.CreateCheckpoint(ctx, wf.ID, fmt.Sprintf("run %s", runID), state)
		if err != nil {
			return err
		}
		a.logger.Info("Checkpoint committed.", "hash", cp.Hash[:12])
	}

	return nil
}

// reportLine is one row of the end-of-run report, in execution-relevant
// order rather than map order.
type reportLine struct {
	NodeID     string       `json:"nodeId"`
	Status     model.Status `json:"status"`
	Error      string       `json:"error,omitempty"`
	Attempt    int          `json:"attempts,omitempty"`
	DurationMs int64        `json:"durationMs,omitempty"`
}

func reportLines(wf model.Workflow, report map[string]model.NodeExecutionResult) []reportLine {
	lines := make([]reportLine, 0, len(report))
	for _, n := range wf.Nodes {
		res, ok := report[n.ID]
		if !ok {
			continue
		}
		lines = append(lines, reportLine{
			NodeID:     res.NodeID,
			Status:     res.Status,
			Error:      res.Error,
			Attempt:    res.Attempt,
			DurationMs: res.DurationMs,
		})
	}
	return lines
}
