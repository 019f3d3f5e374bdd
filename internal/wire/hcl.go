package wire

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/validate"
)

// hclRoot decodes the single top-level workflow block of a definition file.
type hclRoot struct {
	Workflow hclWorkflow `hcl:"workflow,block"`
}

type hclWorkflow struct {
	Name        string    `hcl:"name,label"`
	ID          string    `hcl:"id,optional"`
	Description string    `hcl:"description,optional"`
	Nodes       []hclNode `hcl:"node,block"`
	Edges       []hclEdge `hcl:"edge,block"`
}

type hclNode struct {
	ID             string    `hcl:"id,label"`
	Type           string    `hcl:"type"`
	Label          string    `hcl:"label,optional"`
	Config         cty.Value `hcl:"config,optional"`
	Variables      cty.Value `hcl:"variables,optional"`
	RequiredInputs int       `hcl:"required_inputs,optional"`
	WaitForAll     bool      `hcl:"wait_for_all,optional"`
	TimeoutMs      int64     `hcl:"timeout_ms,optional"`
	Retry          *hclRetry `hcl:"retry,block"`
}

type hclRetry struct {
	MaxAttempts       int     `hcl:"max_attempts"`
	BackoffMultiplier float64 `hcl:"backoff_multiplier,optional"`
	InitialDelayMs    int64   `hcl:"initial_delay_ms,optional"`
}

type hclEdge struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}

// DecodeHCLFile parses a hand-authored workflow definition. Missing
// workflow and edge ids are generated; the canvas JSON format, which
// always carries ids, is unaffected.
func DecodeHCLFile(path string) (model.Workflow, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return model.Workflow{}, fmt.Errorf("parsing %s: %w", path, diags)
	}

	var root hclRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return model.Workflow{}, fmt.Errorf("decoding %s: %w", path, diags)
	}

	return workflowFromHCL(root.Workflow)
}

func workflowFromHCL(src hclWorkflow) (model.Workflow, error) {
	wf := model.Workflow{
		ID:          src.ID,
		Name:        src.Name,
		Description: src.Description,
	}
	if wf.ID == "" {
		wf.ID = uuid.NewString()
	}

	for _, n := range src.Nodes {
		config, err := stringMap(n.Config)
		if err != nil {
			return model.Workflow{}, fmt.Errorf("node %q: config: %w", n.ID, err)
		}
		variables, err := stringMap(n.Variables)
		if err != nil {
			return model.Workflow{}, fmt.Errorf("node %q: variables: %w", n.ID, err)
		}

		node := model.Node{
			ID:             n.ID,
			Label:          n.Label,
			Type:           model.NodeType(n.Type),
			Config:         config,
			Variables:      variables,
			RequiredInputs: n.RequiredInputs,
			WaitForAll:     n.WaitForAll,
			TimeoutMs:      n.TimeoutMs,
		}
		if node.Label == "" {
			node.Label = n.ID
		}
		if n.Retry != nil {
			node.Retry = &model.RetryPolicy{
				MaxAttempts:       n.Retry.MaxAttempts,
				BackoffMultiplier: n.Retry.BackoffMultiplier,
				InitialDelayMs:    n.Retry.InitialDelayMs,
			}
		}
		wf.Nodes = append(wf.Nodes, node)
	}

	for _, e := range src.Edges {
		wf.Edges = append(wf.Edges, model.Edge{
			ID:     uuid.NewString(),
			Source: e.From,
			Target: e.To,
		})
	}

	if err := validate.CheckStructure(wf); err != nil {
		return model.Workflow{}, err
	}
	return wf, nil
}

// stringMap converts an HCL object/map value to the engine's string-keyed,
// string-valued config shape. Numbers and booleans are accepted and
// stringified, so authors can write timeout_ms = 500 without quoting.
func stringMap(v cty.Value) (map[string]string, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}
	if !v.Type().IsObjectType() && !v.Type().IsMapType() {
		return nil, fmt.Errorf("expected an object, got %s", v.Type().FriendlyName())
	}

	out := make(map[string]string)
	for it := v.ElementIterator(); it.Next(); {
		key, val := it.Element()
		str, err := convert.Convert(val, cty.String)
		if err != nil {
			return nil, fmt.Errorf("value for %s: %w", key.AsString(), err)
		}
		if str.IsNull() {
			continue
		}
		out[key.AsString()] = str.AsString()
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
