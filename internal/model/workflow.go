package model

import "time"

// NodeType is the closed tag enumeration for node handler dispatch. The
// registry is the single source of truth for what each tag means; the
// engine itself never branches on these values.
type NodeType string

// The built-in node type tags.
const (
	TypeShell       NodeType = "shell"
	TypeAIPrompt    NodeType = "ai_prompt"
	TypeDatabase    NodeType = "database"
	TypeTradeAgent  NodeType = "trade_agent"
	TypeAggregator  NodeType = "aggregator"
	TypeTransform   NodeType = "transform"
	TypeFilter      NodeType = "filter"
	TypeHTTPRequest NodeType = "http_request"
	TypeEmail       NodeType = "email"
	TypeSchedule    NodeType = "schedule"
	TypeFileOp      NodeType = "file_op"
	TypeWebhook     NodeType = "webhook"
)

// RetryPolicy controls re-dispatch of a failing node. MaxAttempts counts
// total attempts, so {MaxAttempts: 3} runs the handler at most three times.
type RetryPolicy struct {
	MaxAttempts       int     `json:"maxAttempts"`
	BackoffMultiplier float64 `json:"backoffMultiplier"`
	InitialDelayMs    int64   `json:"initialDelayMs"`
}

// Delay returns the wait before re-dispatching after the given failed
// attempt (1-based): InitialDelay × Multiplier^(attempt-1).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	d := float64(p.InitialDelayMs)
	mult := p.BackoffMultiplier
	if mult <= 0 {
		mult = 1
	}
	for i := 1; i < attempt; i++ {
		d *= mult
	}
	return time.Duration(d) * time.Millisecond
}

// Node is a single typed, configurable unit of work in a workflow. The
// engine treats its configuration as opaque key/value pairs validated
// against the registered spec for its type.
type Node struct {
	ID    string   `json:"id" validate:"required"`
	Label string   `json:"label"`
	Type  NodeType `json:"type" validate:"required"`

	// X and Y are canvas coordinates. They round-trip through
	// serialization but mean nothing to the engine.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	Config    map[string]string `json:"config"`
	Comments  string            `json:"comments,omitempty"`
	Variables map[string]string `json:"variables,omitempty"`

	// RequiredInputs is the minimum number of satisfied input ports before
	// the node may run. Zero means all inbound edges.
	RequiredInputs int `json:"requiredInputs,omitempty"`

	// WaitForAll requires every upstream producer to reach success before
	// dispatch. Without it the node fires as soon as RequiredInputs inputs
	// are available.
	WaitForAll bool `json:"waitForAll,omitempty"`

	// TimeoutMs bounds a single attempt. Zero means no timeout.
	TimeoutMs int64 `json:"timeout,omitempty"`

	Retry *RetryPolicy `json:"retryPolicy,omitempty"`
}

// Timeout returns the per-attempt timeout as a duration, or zero when the
// node has none configured.
func (n Node) Timeout() time.Duration {
	return time.Duration(n.TimeoutMs) * time.Millisecond
}

// Edge is a directed dependency between two nodes of the same workflow.
type Edge struct {
	ID     string `json:"id" validate:"required"`
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// Workflow is the aggregate root. The node/edge collections are sets: order
// is irrelevant to the graph, but declaration order is preserved because the
// scheduler uses it as the deterministic tie-break among ready nodes.
type Workflow struct {
	ID          string         `json:"id" validate:"required"`
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description,omitempty"`
	Nodes       []Node         `json:"nodes" validate:"dive"`
	Edges       []Edge         `json:"edges" validate:"dive"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// NodeByID returns the node with the given id, if present.
func (w Workflow) NodeByID(id string) (Node, bool) {
	for _, n := range w.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodeIDs returns the node ids in declaration order.
func (w Workflow) NodeIDs() []string {
	ids := make([]string, len(w.Nodes))
	for i, n := range w.Nodes {
		ids[i] = n.ID
	}
	return ids
}
