// ABOUTME: Badger KV store wrapper for local workout storage.
// ABOUTME: Provides key-prefixed JSON records and transaction scoping.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/storage"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const (
	TemplatePrefix = "template:"
	SessionPrefix  = "session:"
	ExercisePrefix = "exercise:"
	SetPrefix      = "set:"
)

// Store is a storage.Repository backed by an embedded Badger database.
// A Store created inside WithinTx routes every read and write through txn.
type Store struct {
	db  *badger.DB
	txn *badger.Txn
	log *logrus.Entry
}

// Compile-time check that Store implements Repository.
var _ storage.Repository = (*Store)(nil)

// Open opens or creates a Badger database in dir and seeds the built-in catalog.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a Badger database that lives only in memory.
func OpenInMemory() (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Store, error) {
	log := logrus.WithField("component", "storage.badger")

	db, err := badger.Open(opts.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.seedCatalog(context.Background()); err != nil {
		return nil, multierr.Append(fmt.Errorf("seed catalog: %w", err), db.Close())
	}
	return s, nil
}

// Close closes the database. It is a no-op for transaction-scoped stores.
func (s *Store) Close() error {
	if s.txn != nil {
		return nil
	}
	return s.db.Close()
}

// WithinTx runs fn inside a single Badger read-write transaction. Nested calls
// reuse the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(tx storage.SessionStore) error) error {
	if s.txn != nil {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return fn(&Store{db: s.db, txn: txn, log: s.log})
	})
}

func (s *Store) seedCatalog(ctx context.Context) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		for _, t := range models.DefaultCatalog {
			key := []byte(TemplatePrefix + t.ID)
			_, err := txn.Get(key)
			if err == nil {
				continue
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			data, err := marshalJSON(t)
			if err != nil {
				return err
			}
			if err := txn.Set(key, data); err != nil {
				return err
			}
		}
		return nil
	})
}

// update runs fn in the scoped transaction or a new read-write one.
func (s *Store) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.txn != nil {
		return fn(s.txn)
	}
	return s.db.Update(fn)
}

// view runs fn in the scoped transaction or a new read-only one.
func (s *Store) view(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.txn != nil {
		return fn(s.txn)
	}
	return s.db.View(fn)
}

// get returns the value stored at key, or storage.ErrNotFound.
func get(txn *badger.Txn, key string) ([]byte, error) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, extractID(key))
		}
		return nil, err
	}
	return item.ValueCopy(nil)
}

// mustExist returns storage.ErrNotFound unless key is present.
func mustExist(txn *badger.Txn, key string) error {
	_, err := get(txn, key)
	return err
}

// put marshals v as JSON and stores it at key.
func put(txn *badger.Txn, key string, v any) error {
	data, err := marshalJSON(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return txn.Set([]byte(key), data)
}

// remove deletes key, returning storage.ErrNotFound if it is absent.
func remove(txn *badger.Txn, key string) error {
	if err := mustExist(txn, key); err != nil {
		return err
	}
	return txn.Delete([]byte(key))
}

// listByPrefix returns all values with keys matching the given prefix. The
// iterator is closed before returning so callers may write afterwards.
func listByPrefix(txn *badger.Txn, prefix string) ([][]byte, error) {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	var results [][]byte
	p := []byte(prefix)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		val, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		results = append(results, val)
	}
	return results, nil
}

// keysByIDPrefix returns keys under typePrefix whose ID starts with idPrefix.
func keysByIDPrefix(txn *badger.Txn, typePrefix, idPrefix string) []string {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	var keys []string
	p := []byte(typePrefix + idPrefix)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		keys = append(keys, string(it.Item().KeyCopy(nil)))
	}
	return keys
}

// listDecoded decodes every record under prefix, skipping unreadable ones.
func listDecoded[T any](txn *badger.Txn, prefix string, log *logrus.Entry) ([]*T, error) {
	raw, err := listByPrefix(txn, prefix)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(raw))
	for _, data := range raw {
		v, err := unmarshalJSON[T](data)
		if err != nil {
			log.WithError(err).WithField("prefix", prefix).Warn("skipping unreadable record")
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// unmarshalJSON is a helper to unmarshal JSON data.
func unmarshalJSON[T any](data []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// marshalJSON is a helper to marshal data to JSON.
func marshalJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

// extractID extracts the ID portion from a prefixed key.
func extractID(key string) string {
	if i := strings.Index(key, ":"); i >= 0 {
		return key[i+1:]
	}
	return key
}
