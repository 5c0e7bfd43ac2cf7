// ABOUTME: BadgerDB implementation of the store row backend
// ABOUTME: Rows live under r/<kind>/<id> with a sequence for insertion order
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v3"

	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/store"
)

var seqKey = []byte("meta/seq")

// envelope is the stored value for one row.
type envelope struct {
	Seq      int64           `json:"seq"`
	ParentID string          `json:"parent_id,omitempty"`
	Data     json.RawMessage `json:"data"`
}

// Backend stores rows in a badger database.
type Backend struct {
	db  *badger.DB
	seq *badger.Sequence
}

// Open opens a badger database in dir. An empty dir opens an in-memory database.
func Open(dir string) (*Backend, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	seq, err := db.GetSequence(seqKey, 100)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open sequence: %w", err)
	}

	return &Backend{db: db, seq: seq}, nil
}

func rowKey(kind models.Kind, id string) []byte {
	return []byte("r/" + string(kind) + "/" + id)
}

func kindPrefix(kind models.Kind) []byte {
	return []byte("r/" + string(kind) + "/")
}

func (b *Backend) Insert(_ context.Context, row store.Row) error {
	next, err := b.seq.Next()
	if err != nil {
		return err
	}

	value, err := json.Marshal(envelope{Seq: int64(next) + 1, ParentID: row.ParentID, Data: row.Data})
	if err != nil {
		return err
	}

	return b.db.Update(func(txn *badger.Txn) error {
		key := rowKey(row.Kind, row.ID)
		if _, err := txn.Get(key); err == nil {
			return store.ErrAlreadyExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key, value)
	})
}

func (b *Backend) Update(_ context.Context, row store.Row) error {
	return b.db.Update(func(txn *badger.Txn) error {
		key := rowKey(row.Kind, row.ID)
		existing, err := readEnvelope(txn, key)
		if err != nil {
			return err
		}

		value, err := json.Marshal(envelope{Seq: existing.Seq, ParentID: row.ParentID, Data: row.Data})
		if err != nil {
			return err
		}
		return txn.Set(key, value)
	})
}

func (b *Backend) Get(_ context.Context, kind models.Kind, id string) (store.Row, error) {
	var row store.Row
	err := b.db.View(func(txn *badger.Txn) error {
		env, err := readEnvelope(txn, rowKey(kind, id))
		if err != nil {
			return err
		}
		row = store.Row{Kind: kind, ID: id, ParentID: env.ParentID, Data: env.Data, Seq: env.Seq}
		return nil
	})
	return row, err
}

func (b *Backend) List(_ context.Context, kind models.Kind, parentID string) ([]store.Row, error) {
	var rows []store.Row
	prefix := kindPrefix(kind)

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}

			var env envelope
			if err := json.Unmarshal(value, &env); err != nil {
				return err
			}
			if parentID != "" && env.ParentID != parentID {
				continue
			}

			id := string(item.Key()[len(prefix):])
			rows = append(rows, store.Row{Kind: kind, ID: id, ParentID: env.ParentID, Data: env.Data, Seq: env.Seq})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Seq < rows[j].Seq })
	return rows, nil
}

func (b *Backend) Delete(_ context.Context, kind models.Kind, id string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		key := rowKey(kind, id)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return store.ErrNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
}

func (b *Backend) Close() error {
	if err := b.seq.Release(); err != nil {
		_ = b.db.Close()
		return err
	}
	return b.db.Close()
}

func readEnvelope(txn *badger.Txn, key []byte) (envelope, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return envelope{}, store.ErrNotFound
	}
	if err != nil {
		return envelope{}, err
	}

	value, err := item.ValueCopy(nil)
	if err != nil {
		return envelope{}, err
	}

	var env envelope
	if err := json.Unmarshal(value, &env); err != nil {
		return envelope{}, err
	}
	return env, nil
}
