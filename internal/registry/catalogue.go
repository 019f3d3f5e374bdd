package registry

import "github.com/skyops/flowgrid/internal/model"

// builtinSpecs is the process-wide node type catalogue, seeded into every
// Registry at construction. The editor renders its port and field lists;
// the validator enforces its required fields; the executor keys dispatch on
// its type tags.
var builtinSpecs = []NodeSpec{
	{
		Type:    model.TypeShell,
		Label:   "Shell Command",
		Inputs:  []Port{{ID: "stdin", Label: "Stdin", Type: PortString}},
		Outputs: []Port{{ID: "stdout", Label: "Stdout", Type: PortString}, {ID: "exitCode", Label: "Exit Code", Type: PortNumber}},
		Config: []ConfigField{
			{Key: "command", Label: "Command", Kind: FieldTextarea, Required: true},
			{Key: "workdir", Label: "Working Directory", Kind: FieldText},
		},
	},
	{
		Type:    model.TypeAIPrompt,
		Label:   "AI Prompt",
		Inputs:  []Port{{ID: "context", Label: "Context", Type: PortString}},
		Outputs: []Port{{ID: "response", Label: "Response", Type: PortString}},
		Config: []ConfigField{
			{Key: "prompt", Label: "Prompt", Kind: FieldTextarea, Required: true},
			{Key: "model", Label: "Model", Kind: FieldText},
		},
	},
	{
		Type:    model.TypeDatabase,
		Label:   "Database Query",
		Inputs:  []Port{{ID: "params", Label: "Parameters", Type: PortJSON}},
		Outputs: []Port{{ID: "rows", Label: "Rows", Type: PortJSON}},
		Config: []ConfigField{
			{Key: "query", Label: "Query", Kind: FieldTextarea, Required: true},
		},
	},
	{
		Type:    model.TypeTradeAgent,
		Label:   "Trade Agent",
		Inputs:  []Port{{ID: "signal", Label: "Signal", Type: PortJSON}},
		Outputs: []Port{{ID: "decision", Label: "Decision", Type: PortJSON}},
		Config: []ConfigField{
			{Key: "strategy", Label: "Strategy", Kind: FieldSelect, Options: []string{"hold", "momentum", "contrarian"}, Required: true},
		},
	},
	{
		Type:    model.TypeAggregator,
		Label:   "Aggregator",
		Inputs:  []Port{{ID: "items", Label: "Items", Type: PortJSON}},
		Outputs: []Port{{ID: "merged", Label: "Merged", Type: PortJSON}},
		// Aggregators are the canonical waitForAll consumers; no required
		// configuration of their own.
		Config: []ConfigField{
			{Key: "mode", Label: "Mode", Kind: FieldSelect, Options: []string{"merge", "collect"}},
		},
	},
	{
		Type:    model.TypeTransform,
		Label:   "Transform",
		Inputs:  []Port{{ID: "input", Label: "Input", Type: PortJSON}},
		Outputs: []Port{{ID: "output", Label: "Output", Type: PortJSON}},
		Config: []ConfigField{
			{Key: "expression", Label: "Expression", Kind: FieldTextarea, Required: true},
		},
	},
	{
		Type:    model.TypeFilter,
		Label:   "Filter",
		Inputs:  []Port{{ID: "input", Label: "Input", Type: PortJSON}},
		Outputs: []Port{{ID: "output", Label: "Output", Type: PortJSON}, {ID: "matched", Label: "Matched", Type: PortBoolean}},
		Config: []ConfigField{
			{Key: "key", Label: "Key", Kind: FieldText, Required: true},
			{Key: "equals", Label: "Equals", Kind: FieldText},
		},
	},
	{
		Type:    model.TypeHTTPRequest,
		Label:   "HTTP Request",
		Inputs:  []Port{{ID: "body", Label: "Body", Type: PortJSON}},
		Outputs: []Port{{ID: "response", Label: "Response", Type: PortJSON}, {ID: "status", Label: "Status", Type: PortNumber}},
		Config: []ConfigField{
			{Key: "url", Label: "URL", Kind: FieldText, Required: true},
			{Key: "method", Label: "Method", Kind: FieldSelect, Options: []string{"GET", "POST", "PUT", "DELETE"}},
		},
	},
	{
		Type:    model.TypeEmail,
		Label:   "Email",
		Inputs:  []Port{{ID: "body", Label: "Body", Type: PortString}},
		Outputs: []Port{{ID: "sent", Label: "Sent", Type: PortBoolean}},
		Config: []ConfigField{
			{Key: "to", Label: "To", Kind: FieldText, Required: true},
			{Key: "subject", Label: "Subject", Kind: FieldText, Required: true},
			{Key: "smtpAddr", Label: "SMTP Address", Kind: FieldText},
		},
	},
	{
		Type:    model.TypeSchedule,
		Label:   "Schedule Gate",
		Inputs:  []Port{{ID: "input", Label: "Input", Type: PortJSON}},
		Outputs: []Port{{ID: "output", Label: "Output", Type: PortJSON}},
		Config: []ConfigField{
			{Key: "notBefore", Label: "Not Before (RFC 3339)", Kind: FieldText},
			{Key: "delayMs", Label: "Delay (ms)", Kind: FieldNumber},
		},
	},
	{
		Type:    model.TypeFileOp,
		Label:   "File Operation",
		Inputs:  []Port{{ID: "content", Label: "Content", Type: PortString}},
		Outputs: []Port{{ID: "content", Label: "Content", Type: PortString}, {ID: "path", Label: "Path", Type: PortString}},
		Config: []ConfigField{
			{Key: "operation", Label: "Operation", Kind: FieldSelect, Options: []string{"read", "write", "append", "delete"}, Required: true},
			{Key: "path", Label: "Path", Kind: FieldText, Required: true},
		},
	},
	{
		Type:    model.TypeWebhook,
		Label:   "Webhook",
		Inputs:  []Port{{ID: "payload", Label: "Payload", Type: PortJSON}},
		Outputs: []Port{{ID: "payload", Label: "Payload", Type: PortJSON}},
		Config: []ConfigField{
			{Key: "path", Label: "Path", Kind: FieldText},
		},
	},
}
