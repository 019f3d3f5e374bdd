// Package trade_agent turns an upstream signal into a buy/sell/hold
// decision according to the configured strategy. The strategies are
// deliberately simple rules over the signal's "direction" field; the node
// exists so pipelines can branch on a decision port, not to trade well.
package trade_agent

import (
	"context"
	"fmt"

	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(model.TypeTradeAgent, OnRunTradeAgent)
}

// OnRunTradeAgent is the handler for trade_agent nodes.
func OnRunTradeAgent(ctx context.Context, req registry.Request) (map[string]any, error) {
	strategy := req.Node.Config["strategy"]

	direction := ""
	if signal, ok := req.Inputs["signal"].(map[string]any); ok {
		direction, _ = signal["direction"].(string)
	}

	var action string
	switch strategy {
	case "hold":
		action = "hold"
	case "momentum":
		// Follow the signal.
		switch direction {
		case "up":
			action = "buy"
		case "down":
			action = "sell"
		default:
			action = "hold"
		}
	case "contrarian":
		// Fade the signal.
		switch direction {
		case "up":
			action = "sell"
		case "down":
			action = "buy"
		default:
			action = "hold"
		}
	default:
		return nil, fmt.Errorf("trade_agent node %q: unknown strategy %q", req.Node.ID, strategy)
	}

	return map[string]any{
		"decision": map[string]any{
			"action":   action,
			"strategy": strategy,
		},
	}, nil
}
