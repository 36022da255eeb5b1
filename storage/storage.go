package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("storage: not found")

// StorageI is a flat key-value store for opaque blobs. Keys are ordered
// strings; List returns every entry under a prefix in key order.
type StorageI interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]Entry, error)
	Close() error
}

// Entry is one stored key and its value.
type Entry struct {
	Key   string
	Value []byte
}
