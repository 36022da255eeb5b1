package pebblekv

import (
	"context"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/pkg/errors"

	"github.com/kanda123-lab/querygen/storage"
)

// Store persists entries in a pebble database.
type Store struct {
	db *pebble.DB
}

// Open opens or creates a database directory at path.
func Open(path string) (*Store, error) {
	return open(path, &pebble.Options{})
}

// OpenInMemory opens a database backed by an in-memory filesystem.
func OpenInMemory() (*Store, error) {
	return open("", &pebble.Options{FS: vfs.NewMem()})
}

func open(path string, opts *pebble.Options) (*Store, error) {
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, errors.Wrap(err, "open pebble")
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	value, closer, err := s.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, errors.Wrapf(storage.ErrNotFound, "key %q", key)
	}
	if err != nil {
		return nil, errors.Wrap(err, "pebble get")
	}
	defer closer.Close()

	return append([]byte(nil), value...), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	return errors.Wrap(s.db.Set([]byte(key), value, pebble.Sync), "pebble set")
}

// Delete fails with storage.ErrNotFound for a missing key, which pebble
// itself would accept silently.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.Get(ctx, key); err != nil {
		return err
	}
	return errors.Wrap(s.db.Delete([]byte(key), pebble.Sync), "pebble delete")
}

func (s *Store) List(_ context.Context, prefix string) ([]storage.Entry, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefix),
		UpperBound: upperBound([]byte(prefix)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "pebble iterator")
	}
	defer iter.Close()

	var entries []storage.Entry
	for iter.First(); iter.Valid(); iter.Next() {
		entries = append(entries, storage.Entry{
			Key:   string(iter.Key()),
			Value: append([]byte(nil), iter.Value()...),
		})
	}
	return entries, errors.Wrap(iter.Error(), "pebble iterate")
}

func (s *Store) Close() error {
	return errors.Wrap(s.db.Close(), "close pebble")
}

// upperBound returns the smallest key greater than every key with prefix,
// or nil when there is none.
func upperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
