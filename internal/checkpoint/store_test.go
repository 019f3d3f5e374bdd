package checkpoint

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeConformance exercises the Store contract; both implementations must
// pass it unchanged.
func storeConformance(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("init creates an empty-state commit", func(t *testing.T) {
		cp, err := s.Init(ctx, "wf-init")
		require.NoError(t, err)
		assert.Equal(t, InitialMessage, cp.Message)
		assert.Equal(t, "wf-init", cp.WorkflowID)
		assert.NotEmpty(t, cp.Hash)

		state, err := s.State(ctx, "wf-init", cp.Hash)
		require.NoError(t, err)
		assert.Empty(t, state)
	})

	t.Run("create and read back state", func(t *testing.T) {
		payload := []byte(`{"nodes":[{"id":"A"}]}`)
		cp, err := s.Create(ctx, "wf-rt", "add node A", payload)
		require.NoError(t, err)
		assert.Len(t, cp.Hash, 64)

		state, err := s.State(ctx, "wf-rt", cp.Hash)
		require.NoError(t, err)
		assert.Equal(t, payload, state)
	})

	t.Run("identical state yields distinct entries", func(t *testing.T) {
		payload := []byte(`{"v":1}`)
		first, err := s.Create(ctx, "wf-dup", "same", payload)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
		second, err := s.Create(ctx, "wf-dup", "same", payload)
		require.NoError(t, err)

		assert.NotEqual(t, first.Hash, second.Hash)

		history, err := s.History(ctx, "wf-dup")
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})

	t.Run("history is oldest first without payloads", func(t *testing.T) {
		messages := []string{"one", "two", "three"}
		for i, msg := range messages {
			_, err := s.Create(ctx, "wf-order", msg, []byte{byte(i)})
			require.NoError(t, err)
			time.Sleep(time.Millisecond)
		}

		history, err := s.History(ctx, "wf-order")
		require.NoError(t, err)
		require.Len(t, history, len(messages))
		for i, msg := range messages {
			assert.Equal(t, msg, history[i].Message)
			assert.Nil(t, history[i].State)
		}
		assert.True(t, history[0].Timestamp.Before(history[2].Timestamp))
	})

	t.Run("histories are isolated per workflow", func(t *testing.T) {
		_, err := s.Create(ctx, "wf-iso-a", "a", []byte("a"))
		require.NoError(t, err)
		_, err = s.Create(ctx, "wf-iso-b", "b", []byte("b"))
		require.NoError(t, err)

		history, err := s.History(ctx, "wf-iso-a")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "a", history[0].Message)
	})

	t.Run("unknown hash is not found", func(t *testing.T) {
		_, err := s.State(ctx, "wf-rt", "deadbeef")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty history", func(t *testing.T) {
		history, err := s.History(ctx, "wf-never-seen")
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}

func TestMemoryStore(t *testing.T) {
	storeConformance(t, NewMemoryStore())
}

func TestBadgerStore(t *testing.T) {
	s, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	storeConformance(t, s)
}

func TestContentHashInputs(t *testing.T) {
	at := time.Unix(1700000000, 0)
	base := contentHash("wf", "msg", []byte("state"), at)

	assert.Equal(t, base, contentHash("wf", "msg", []byte("state"), at))
	assert.NotEqual(t, base, contentHash("wf2", "msg", []byte("state"), at))
	assert.NotEqual(t, base, contentHash("wf", "msg2", []byte("state"), at))
	assert.NotEqual(t, base, contentHash("wf", "msg", []byte("other"), at))
	assert.NotEqual(t, base, contentHash("wf", "msg", []byte("state"), at.Add(time.Nanosecond)))

	// Field boundaries are delimited, so shifting bytes across them changes
	// the hash.
	assert.NotEqual(t,
		contentHash("ab", "c", nil, at),
		contentHash("a", "bc", nil, at))
}

func TestMemoryStoreCopiesState(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	payload := []byte("original")
	cp, err := s.Create(ctx, "wf", "mutate", payload)
	require.NoError(t, err)

	payload[0] = 'X'

	state, err := s.State(ctx, "wf", cp.Hash)
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), state)
}
