package model

// Status is the per-node execution state machine:
//
//	idle → running → {success | error}
//
// with retrying entered between failed attempts while attempts remain, and
// skipped for nodes whose required inputs can never be satisfied because an
// upstream node failed.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusSuccess  Status = "success"
	StatusError    Status = "error"
	StatusRetrying Status = "retrying"
	StatusSkipped  Status = "skipped"
)

// Terminal reports whether the status is an end state: the node will not
// transition again for the remainder of the run.
func (s Status) Terminal() bool {
	switch s {
	case StatusSuccess, StatusError, StatusSkipped:
		return true
	}
	return false
}
