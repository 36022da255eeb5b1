package main

import (
	"bytes"
	"context"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanda123-lab/querygen/storage/memory"
	"github.com/kanda123-lab/querygen/storage/pebblekv"
)

func TestCopyEntriesIntoPebble(t *testing.T) {
	ctx := context.Background()
	src := memory.New()
	require.NoError(t, src.Set(ctx, "query:a", []byte(`{"id":"a"}`)))
	require.NoError(t, src.Set(ctx, "query:b", []byte(`{"id":"b"}`)))
	require.NoError(t, src.Set(ctx, "other:c", []byte(`{}`)))

	dst, err := pebblekv.OpenInMemory()
	require.NoError(t, err)
	defer dst.Close()

	n, err := copyEntries(ctx, src, dst, savedQueryPrefix)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	entries, err := dst.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "query:a", entries[0].Key)
	assert.Equal(t, `{"id":"b"}`, string(entries[1].Value))
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()
	store, err := openBackend(ctx, "pebble:"+filepath.Join(t.TempDir(), "queries"), options{})
	require.NoError(t, err)
	assert.NoError(t, store.Close())

	_, err = openBackend(ctx, "pebble:", options{})
	assert.ErrorContains(t, err, "want kind:target")

	_, err = openBackend(ctx, "sqlite:queries.db", options{})
	assert.ErrorContains(t, err, `unknown kind "sqlite"`)
}

func TestRunRequiresBackends(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-from", "pebble:x"}, &stderr))
	assert.Contains(t, stderr.String(), "-from and -to are required")
}

func TestRunCopiesBetweenPebbleDirectories(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src")

	src, err := pebblekv.Open(srcPath)
	require.NoError(t, err)
	require.NoError(t, src.Set(ctx, "query:a", []byte(`{"id":"a"}`)))
	require.NoError(t, src.Close())

	dstPath := filepath.Join(dir, "dst")
	var stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-from", "pebble:" + srcPath, "-to", "pebble:" + dstPath}, &stderr), stderr.String())

	dst, err := pebblekv.Open(dstPath)
	require.NoError(t, err)
	defer dst.Close()
	value, err := dst.Get(ctx, "query:a")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"a"}`, string(value))
}

// The pebble binary must stay free of the PostgreSQL parser.
func TestBinaryOmitsPostgresParser(t *testing.T) {
	info, ok := debug.ReadBuildInfo()
	if !ok || len(info.Deps) == 0 {
		t.Skip("no module information in this binary")
	}
	for _, dep := range info.Deps {
		assert.False(t, strings.HasPrefix(dep.Path, "github.com/pganalyze/pg_query_go"), dep.Path)
	}
}
