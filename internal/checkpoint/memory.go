package checkpoint

import (
	"context"
	"sync"

	"github.com/skyops/flowgrid/internal/model"
)

// MemoryStore is the ephemeral Store implementation. A plain RWMutex over
// per-workflow slices is enough here: appends are rare next to the
// executor's state churn, and history order falls straight out of the
// slice.
type MemoryStore struct {
	mu      sync.RWMutex
	history map[string][]model.Checkpoint // workflowID → entries, oldest first
	states  map[string][]byte             // workflowID+"/"+hash → state
}

// NewMemoryStore creates an empty in-memory checkpoint store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		history: make(map[string][]model.Checkpoint),
		states:  make(map[string][]byte),
	}
}

// Init implements Store.
func (s *MemoryStore) Init(ctx context.Context, workflowID string) (model.Checkpoint, error) {
	return s.Create(ctx, workflowID, InitialMessage, nil)
}

// Create implements Store.
func (s *MemoryStore) Create(_ context.Context, workflowID, message string, state []byte) (model.Checkpoint, error) {
	cp := newCheckpoint(workflowID, message, state)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[workflowID] = append(s.history[workflowID], stripState(cp))
	s.states[workflowID+"/"+cp.Hash] = append([]byte(nil), state...)
	return cp, nil
}

// History implements Store.
func (s *MemoryStore) History(_ context.Context, workflowID string) ([]model.Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.history[workflowID]
	out := make([]model.Checkpoint, len(entries))
	copy(out, entries)
	return out, nil
}

// State implements Store.
func (s *MemoryStore) State(_ context.Context, workflowID, hash string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[workflowID+"/"+hash]
	if !ok {
		return nil, notFound(workflowID, hash)
	}
	return append([]byte(nil), state...), nil
}
