package rediskv

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/kanda123-lab/querygen/storage"
)

const scanCount = 100

// Store keeps entries as plain redis strings.
type Store struct {
	rdb *redis.Client
}

// New wraps an existing client. Close closes it.
func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Connect dials addr and checks the connection with PING.
func Connect(ctx context.Context, addr, password string, db int) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, "redis ping")
	}
	return New(rdb), nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errors.Wrapf(storage.ErrNotFound, "key %q", key)
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get")
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return errors.Wrap(s.rdb.Set(ctx, key, value, 0).Err(), "redis set")
}

func (s *Store) Delete(ctx context.Context, key string) error {
	n, err := s.rdb.Del(ctx, key).Result()
	if err != nil {
		return errors.Wrap(err, "redis del")
	}
	if n == 0 {
		return errors.Wrapf(storage.ErrNotFound, "key %q", key)
	}
	return nil
}

// List scans keys matching prefix*. Keys deleted between SCAN and MGET are
// skipped.
func (s *Store) List(ctx context.Context, prefix string) ([]storage.Entry, error) {
	var keys []string
	iter := s.rdb.Scan(ctx, 0, escapePattern(prefix)+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "redis scan")
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "redis mget")
	}

	entries := make([]storage.Entry, 0, len(keys))
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		entries = append(entries, storage.Entry{Key: keys[i], Value: []byte(str)})
	}
	return entries, nil
}

func (s *Store) Close() error {
	return errors.Wrap(s.rdb.Close(), "close redis")
}

// escapePattern escapes glob metacharacters so the prefix matches literally.
func escapePattern(prefix string) string {
	out := make([]byte, 0, len(prefix))
	for i := 0; i < len(prefix); i++ {
		switch prefix[i] {
		case '*', '?', '[', ']', '\\':
			out = append(out, '\\')
		}
		out = append(out, prefix[i])
	}
	return string(out)
}
