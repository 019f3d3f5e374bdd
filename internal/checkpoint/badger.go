package checkpoint

import (
	"context"
	"encoding/json"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/skyops/flowgrid/internal/model"
)

// Key layout:
//
//	h/<workflowID>/<padded unix-nano>/<hash> → checkpoint metadata (JSON)
//	s/<workflowID>/<hash>                    → raw serialized state
//
// Badger iterates keys lexicographically, so zero-padding the timestamp
// makes a prefix scan of h/<workflowID>/ return history oldest-first with
// no sort step.

// BadgerStore is the durable Store implementation over an embedded Badger
// database. Appends from concurrent runs are serialized by Badger's
// transactions; nothing is ever overwritten because keys embed the
// content hash.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (creating if needed) a Badger-backed checkpoint store
// at dir. Badger's own logger is silenced in favour of the engine's.
func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening checkpoint store at %s: %w", dir, err)
	}
	return &BadgerStore{db: db}, nil
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Init implements Store.
func (s *BadgerStore) Init(ctx context.Context, workflowID string) (model.Checkpoint, error) {
	return s.Create(ctx, workflowID, InitialMessage, nil)
}

// Create implements Store.
func (s *BadgerStore) Create(_ context.Context, workflowID, message string, state []byte) (model.Checkpoint, error) {
	cp := newCheckpoint(workflowID, message, state)

	meta, err := json.Marshal(stripState(cp))
	if err != nil {
		return model.Checkpoint{}, fmt.Errorf("serializing checkpoint: %w", err)
	}

	historyKey := fmt.Sprintf("h/%s/%020d/%s", workflowID, cp.Timestamp.UnixNano(), cp.Hash)
	stateKey := fmt.Sprintf("s/%s/%s", workflowID, cp.Hash)

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(historyKey), meta); err != nil {
			return err
		}
		return txn.Set([]byte(stateKey), state)
	})
	if err != nil {
		return model.Checkpoint{}, fmt.Errorf("appending checkpoint: %w", err)
	}
	return cp, nil
}

// History implements Store.
func (s *BadgerStore) History(_ context.Context, workflowID string) ([]model.Checkpoint, error) {
	var entries []model.Checkpoint
	prefix := []byte("h/" + workflowID + "/")

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var cp model.Checkpoint
				if err := json.Unmarshal(val, &cp); err != nil {
					return fmt.Errorf("decoding checkpoint entry: %w", err)
				}
				entries = append(entries, cp)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// State implements Store.
func (s *BadgerStore) State(_ context.Context, workflowID, hash string) ([]byte, error) {
	var state []byte
	key := []byte("s/" + workflowID + "/" + hash)

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		state, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, notFound(workflowID, hash)
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}
