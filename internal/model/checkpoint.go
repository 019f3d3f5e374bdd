package model

import "time"

// Checkpoint is one immutable entry in a workflow's append-only version
// history. Hash is the content address computed over the serialized state
// plus metadata; entries are ordered oldest-to-newest within a workflow.
type Checkpoint struct {
	Hash       string    `json:"hash"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	WorkflowID string    `json:"workflowId"`

	// State is the serialized workflow state captured at this point. It is
	// omitted from history listings and retrieved by hash.
	State []byte `json:"state,omitempty"`
}
