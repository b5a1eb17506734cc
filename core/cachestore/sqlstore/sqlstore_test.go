package sqlstore_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"asset-sync/core/cachestore"
	"asset-sync/core/cachestore/sqlstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func openStore(t *testing.T) *sqlstore.Store {
	s, err := sqlstore.New(openDB(t))
	require.NoError(t, err)
	return s
}

func TestNew_NilDB(t *testing.T) {
	_, err := sqlstore.New(nil)
	assert.Error(t, err)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	has, err := s.Has(ctx, "app-cache")
	require.NoError(t, err)
	assert.False(t, has)

	c, err := s.Open(ctx, "app-cache")
	require.NoError(t, err)
	_, err = s.Open(ctx, "app-cache")
	require.NoError(t, err, "opening twice must not conflict")

	has, _ = s.Has(ctx, "app-cache")
	assert.True(t, has)

	stored := time.Now().UTC().Truncate(time.Second)
	resp := &cachestore.Response{
		URL:      "https://a/x.js",
		Status:   200,
		Header:   http.Header{"Content-Type": {"text/javascript"}},
		Body:     []byte("v1"),
		StoredAt: stored,
	}
	require.NoError(t, c.Put(ctx, "https://a/x.js", resp))

	resp.Body = []byte("v2")
	require.NoError(t, c.Put(ctx, "https://a/x.js", resp), "put replaces")

	got, err := c.Match(ctx, "https://a/x.js")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "v2", string(got.Body))
	assert.Equal(t, 200, got.Status)
	assert.Equal(t, "text/javascript", got.Header.Get("Content-Type"))

	require.NoError(t, c.Put(ctx, "https://a/", &cachestore.Response{Status: 200}))
	keys, err := c.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a/", "https://a/x.js"}, keys)

	require.NoError(t, c.Delete(ctx, "https://a/x.js"))
	got, err = c.Match(ctx, "https://a/x.js")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Delete(ctx, "app-cache"))
	has, _ = s.Has(ctx, "app-cache")
	assert.False(t, has)
	keys, _ = c.Keys(ctx)
	assert.Empty(t, keys)
}

func TestStore_OpenRecreatesStoreDeletedElsewhere(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	daemon, err := sqlstore.New(db)
	require.NoError(t, err)
	oneShot, err := sqlstore.New(db)
	require.NoError(t, err)

	_, err = daemon.Open(ctx, "app-manifest")
	require.NoError(t, err)
	require.NoError(t, oneShot.Delete(ctx, "app-manifest"))

	_, err = daemon.Open(ctx, "app-manifest")
	require.NoError(t, err)
	has, err := daemon.Has(ctx, "app-manifest")
	require.NoError(t, err)
	assert.True(t, has)
}
