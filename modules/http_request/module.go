// Package http_request issues one HTTP call per node execution, with the
// upstream "body" port as the request body for write methods.
package http_request

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"resty.dev/v3"

	"github.com/skyops/flowgrid/internal/ctxlog"
	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(model.TypeHTTPRequest, OnRunHTTPRequest)
}

// OnRunHTTPRequest is the handler for http_request nodes.
func OnRunHTTPRequest(ctx context.Context, req registry.Request) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx).With("handler", "http_request", "nodeID", req.Node.ID)

	url := req.Node.Config["url"]
	if url == "" {
		return nil, fmt.Errorf("http_request node %q has no url configured", req.Node.ID)
	}
	method := req.Node.Config["method"]
	if method == "" {
		method = http.MethodGet
	}

	client := resty.New()
	defer client.Close()

	r := client.R().SetContext(ctx)
	if body, ok := req.Inputs["body"]; ok && method != http.MethodGet {
		r.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	logger.Debug("Issuing request.", "method", method, "url", url)
	resp, err := r.Execute(method, url)
	if err != nil {
		return nil, fmt.Errorf("executing %s %s: %w", method, url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s %s returned %s", method, url, resp.Status())
	}

	// Prefer structured output when the response is JSON; fall back to the
	// raw body string.
	var response any = resp.String()
	var decoded any
	if err := json.Unmarshal(resp.Bytes(), &decoded); err == nil {
		response = decoded
	}

	return map[string]any{
		"response": response,
		"status":   resp.StatusCode(),
	}, nil
}
