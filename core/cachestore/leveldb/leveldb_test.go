package leveldb_test

import (
	"context"
	"path/filepath"
	"testing"

	"asset-sync/core/cachestore"
	"asset-sync/core/cachestore/leveldb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *leveldb.Store {
	s, err := leveldb.Open(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_PutMatchDelete(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	c, err := s.Open(ctx, "app-cache")
	require.NoError(t, err)

	resp := &cachestore.Response{URL: "https://a/x.js", Status: 200, Body: []byte("x")}
	resp.Header = map[string][]string{"Content-Type": {"text/javascript"}}
	require.NoError(t, c.Put(ctx, "https://a/x.js", resp))

	got, err := c.Match(ctx, "https://a/x.js")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "x", string(got.Body))
	assert.Equal(t, "text/javascript", got.Header.Get("Content-Type"))

	missing, err := c.Match(ctx, "https://a/y.js")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, c.Delete(ctx, "https://a/x.js"))
	got, _ = c.Match(ctx, "https://a/x.js")
	assert.Nil(t, got)
}

func TestStore_NamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	a, _ := s.Open(ctx, "app-cache")
	b, _ := s.Open(ctx, "app-cache-b")
	require.NoError(t, a.Put(ctx, "k1", &cachestore.Response{Status: 200}))
	require.NoError(t, b.Put(ctx, "k2", &cachestore.Response{Status: 200}))

	keys, err := a.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"k1"}, keys)

	require.NoError(t, s.Delete(ctx, "app-cache"))

	has, _ := s.Has(ctx, "app-cache")
	assert.False(t, has)
	has, _ = s.Has(ctx, "app-cache-b")
	assert.True(t, has)

	keys, _ = b.Keys(ctx)
	assert.Equal(t, []string{"k2"}, keys)
}
