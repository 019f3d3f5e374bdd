package model

import "time"

// NodeExecutionResult is the per-run record for one node. The executor owns
// the live value; observers only ever see copies, one per status
// transition.
type NodeExecutionResult struct {
	NodeID string `json:"nodeId"`
	Status Status `json:"status"`

	// Output is the handler's output record, keyed by output port id.
	Output map[string]any `json:"output,omitempty"`

	// Error holds the failure reason for error outcomes, including the
	// distinguishable "timeout" and "cancelled" reasons.
	Error string `json:"error,omitempty"`

	// Attempt is the 1-based attempt number the record describes.
	Attempt int `json:"attempt,omitempty"`

	StartedAt  time.Time  `json:"startedAt,omitzero"`
	EndedAt    *time.Time `json:"endedAt,omitempty"`
	DurationMs int64      `json:"durationMs,omitempty"`
}

// Clone returns a snapshot safe to hand to observers while the executor
// keeps mutating the original.
func (r NodeExecutionResult) Clone() NodeExecutionResult {
	out := r
	if r.Output != nil {
		out.Output = make(map[string]any, len(r.Output))
		for k, v := range r.Output {
			out.Output[k] = v
		}
	}
	if r.EndedAt != nil {
		t := *r.EndedAt
		out.EndedAt = &t
	}
	return out
}
