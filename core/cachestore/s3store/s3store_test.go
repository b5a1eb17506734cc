package s3store_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"asset-sync/core/cachestore"
	"asset-sync/core/cachestore/s3store"
	"asset-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, client *mocks.Client) *s3store.Store {
	client.On("BucketExists", mock.Anything, "assets").Return(true, nil).Once()
	s, err := s3store.New(context.Background(), client, "assets", "sync")
	require.NoError(t, err)
	return s
}

func TestNew_CreatesMissingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "assets").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "assets", mock.Anything).Return(nil)

	_, err := s3store.New(context.Background(), client, "assets", "")
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestStore_OpenAndPut(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	s := newStore(t, client)

	client.On("PutObject", mock.Anything, "assets", "sync/app-cache/.store", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("PutObject", mock.Anything, "assets", "sync/app-cache/entries/https%3A%2F%2Fa%2Fx.js", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	c, err := s.Open(ctx, "app-cache")
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, "https://a/x.js", &cachestore.Response{Status: 200, Body: []byte("x")}))
	client.AssertExpectations(t)
}

func TestCache_Match(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	s := newStore(t, client)
	client.On("PutObject", mock.Anything, "assets", "sync/app-cache/.store", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil)
	c, err := s.Open(ctx, "app-cache")
	require.NoError(t, err)

	body := `{"url":"https://a/x.js","status":200,"body":"eA=="}`
	client.On("GetObject", mock.Anything, "assets", "sync/app-cache/entries/https%3A%2F%2Fa%2Fx.js", mock.Anything).
		Return(io.NopCloser(strings.NewReader(body)), nil)
	client.On("GetObject", mock.Anything, "assets", "sync/app-cache/entries/missing", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

	got, err := c.Match(ctx, "https://a/x.js")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "x", string(got.Body))

	got, err = c.Match(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_Keys(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	s := newStore(t, client)
	client.On("PutObject", mock.Anything, "assets", "sync/app-cache/.store", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil)
	c, _ := s.Open(ctx, "app-cache")

	client.On("ListObjects", mock.Anything, "assets", minio.ListObjectsOptions{Prefix: "sync/app-cache/entries/", Recursive: true}).
		Return(mocks.Objects(
			minio.ObjectInfo{Key: "sync/app-cache/entries/https%3A%2F%2Fa%2F"},
			minio.ObjectInfo{Key: "sync/app-cache/entries/https%3A%2F%2Fa%2Fx.js"},
		))

	keys, err := c.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a/", "https://a/x.js"}, keys)
}

func TestStore_Has(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	s := newStore(t, client)

	client.On("ListObjects", mock.Anything, "assets", minio.ListObjectsOptions{Prefix: "sync/app-cache/.store", MaxKeys: 1}).
		Return(mocks.Objects(minio.ObjectInfo{Key: "sync/app-cache/.store"}))
	client.On("ListObjects", mock.Anything, "assets", minio.ListObjectsOptions{Prefix: "sync/app-manifest/.store", MaxKeys: 1}).
		Return(mocks.Objects())

	has, err := s.Has(ctx, "app-cache")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = s.Has(ctx, "app-manifest")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	s := newStore(t, client)

	client.On("ListObjects", mock.Anything, "assets", minio.ListObjectsOptions{Prefix: "sync/app-cache/", Recursive: true}).
		Return(mocks.Objects(minio.ObjectInfo{Key: "sync/app-cache/.store"}))

	errCh := make(chan minio.RemoveObjectError, 1)
	errCh <- minio.RemoveObjectError{ObjectName: "sync/app-cache/.store", Err: assert.AnError}
	close(errCh)
	client.On("RemoveObjects", mock.Anything, "assets", mock.Anything, mock.Anything).
		Return((<-chan minio.RemoveObjectError)(errCh))

	err := s.Delete(ctx, "app-cache")
	assert.Error(t, err)
}

func TestStore_DeleteReportsListingError(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	s := newStore(t, client)

	client.On("ListObjects", mock.Anything, "assets", minio.ListObjectsOptions{Prefix: "sync/app-cache/", Recursive: true}).
		Return(mocks.Objects(minio.ObjectInfo{Err: assert.AnError}, minio.ObjectInfo{Key: "sync/app-cache/.store"}))
	client.On("RemoveObjects", mock.Anything, "assets", mock.Anything, mock.Anything).Return(nil)

	err := s.Delete(ctx, "app-cache")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestStore_OpenAlwaysWritesMarker(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	s := newStore(t, client)

	client.On("PutObject", mock.Anything, "assets", "sync/app-manifest/.store", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil).Twice()

	_, err := s.Open(ctx, "app-manifest")
	require.NoError(t, err)
	_, err = s.Open(ctx, "app-manifest")
	require.NoError(t, err)
	client.AssertExpectations(t)
}
