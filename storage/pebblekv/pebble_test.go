package pebblekv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanda123-lab/querygen/storage"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, "query:2", []byte(`{"b":2}`)))
	require.NoError(t, s.Set(ctx, "query:1", []byte(`{"a":1}`)))
	require.NoError(t, s.Set(ctx, "queryz", []byte(`{}`)))

	value, err := s.Get(ctx, "query:1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(value))

	entries, err := s.List(ctx, "query:")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "query:1", entries[0].Key)
	assert.Equal(t, "query:2", entries[1].Key)

	require.NoError(t, s.Delete(ctx, "query:1"))
	_, err = s.Get(ctx, "query:1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "query:1"), storage.ErrNotFound)
}

func TestUpperBound(t *testing.T) {
	assert.Equal(t, []byte("query;"), upperBound([]byte("query:")))
	assert.Equal(t, []byte{0x02}, upperBound([]byte{0x01, 0xff}))
	assert.Nil(t, upperBound([]byte{0xff}))
	assert.Nil(t, upperBound(nil))
}
