// Package checkpoint is the content-addressed, append-only log of
// serialized workflow state. It gives a workflow an auditable version
// history independent of any editor-side undo stack: entries are keyed by
// a hash of their content, never mutated, and listed oldest-to-newest.
//
// Two implementations share the Store interface: an in-memory store for
// ephemeral runs and tests, and a Badger-backed store for durable
// history. The log is the only state shared across runs and both
// implementations are safe for concurrent appends.
package checkpoint

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/skyops/flowgrid/internal/model"
)

// ErrNotFound is returned when a requested checkpoint hash is absent from
// a workflow's history.
var ErrNotFound = errors.New("checkpoint not found")

// InitialMessage is the message recorded by Init's first commit.
const InitialMessage = "initial checkpoint"

// Store is the checkpoint log contract.
type Store interface {
	// Init creates the initial (empty-state) commit for a workflow. It is
	// idempotent in effect: calling it again simply appends another entry.
	Init(ctx context.Context, workflowID string) (model.Checkpoint, error)

	// Create hashes the serialized state plus metadata, appends the entry
	// to the workflow's history, and returns it.
	Create(ctx context.Context, workflowID, message string, state []byte) (model.Checkpoint, error)

	// History returns the workflow's checkpoints oldest-to-newest, without
	// state payloads.
	History(ctx context.Context, workflowID string) ([]model.Checkpoint, error)

	// State returns the serialized state stored under the given hash, or
	// ErrNotFound.
	State(ctx context.Context, workflowID, hash string) ([]byte, error)
}

// contentHash computes the content address for a checkpoint. The timestamp
// participates so that re-committing identical state still yields a new
// history entry, git-style.
func contentHash(workflowID, message string, state []byte, at time.Time) string {
	h := sha256.New()
	h.Write([]byte(workflowID))
	h.Write([]byte{0})
	h.Write([]byte(message))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(at.UnixNano(), 10)))
	h.Write([]byte{0})
	h.Write(state)
	return hex.EncodeToString(h.Sum(nil))
}

// newCheckpoint assembles a checkpoint value with its content hash.
func newCheckpoint(workflowID, message string, state []byte) model.Checkpoint {
	now := time.Now().UTC()
	return model.Checkpoint{
		Hash:       contentHash(workflowID, message, state, now),
		Message:    message,
		Timestamp:  now,
		WorkflowID: workflowID,
		State:      state,
	}
}

// stripState returns a copy of cp without the state payload, for history
// listings.
func stripState(cp model.Checkpoint) model.Checkpoint {
	cp.State = nil
	return cp
}

func notFound(workflowID, hash string) error {
	return fmt.Errorf("%w: workflow %q has no checkpoint %q", ErrNotFound, workflowID, hash)
}
