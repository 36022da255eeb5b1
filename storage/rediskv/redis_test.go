package rediskv

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanda123-lab/querygen/storage"
)

func TestEscapePattern(t *testing.T) {
	assert.Equal(t, "query:", escapePattern("query:"))
	assert.Equal(t, `a\*b\?\[c\]`, escapePattern("a*b?[c]"))
}

func TestStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	s, err := Connect(ctx, addr, "", 0)
	require.NoError(t, err)
	defer s.Close()

	prefix := "querygen-test:" + uuid.NewString() + ":"
	require.NoError(t, s.Set(ctx, prefix+"b", []byte("2")))
	require.NoError(t, s.Set(ctx, prefix+"a", []byte("1")))
	defer s.Delete(ctx, prefix+"b")

	value, err := s.Get(ctx, prefix+"a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), value)

	entries, err := s.List(ctx, prefix)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, prefix+"a", entries[0].Key)

	require.NoError(t, s.Delete(ctx, prefix+"a"))
	_, err = s.Get(ctx, prefix+"a")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, prefix+"a"), storage.ErrNotFound)
}
