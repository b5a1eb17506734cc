// Package s3store implements cachestore.Store on an S3 compatible bucket.
//
// Each store lives under <prefix>/<store>/. A zero byte ".store" object marks
// the store as existing and entries are stored as JSON documents under
// entries/ with their key query-escaped.
package s3store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"asset-sync/core/cachestore"
	"asset-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

const markerObject = ".store"

// Store is a bucket backed cachestore.Store.
type Store struct {
	client storage.Client
	bucket string
	prefix string
}

// New ensures the bucket exists and returns the store.
func New(ctx context.Context, client storage.Client, bucket, prefix string) (*Store, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}
	return &Store{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}, nil
}

func (s *Store) root(name string) string {
	if s.prefix == "" {
		return name + "/"
	}
	return path.Join(s.prefix, name) + "/"
}

func (s *Store) Open(ctx context.Context, name string) (cachestore.Cache, error) {
	root := s.root(name)
	// Written on every Open: another process may have deleted the store.
	_, err := s.client.PutObject(ctx, s.bucket, root+markerObject, bytes.NewReader(nil), 0, minio.PutObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create store %s: %w", name, err)
	}
	return &Cache{client: s.client, bucket: s.bucket, root: root + "entries/"}, nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var listErr error
	listed := make(chan struct{})
	objectsCh := make(chan minio.ObjectInfo)
	go func() {
		defer close(listed)
		defer close(objectsCh)
		opts := minio.ListObjectsOptions{Prefix: s.root(name), Recursive: true}
		for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
			if obj.Err != nil {
				if listErr == nil {
					listErr = obj.Err
				}
				continue
			}
			select {
			case objectsCh <- obj:
			case <-ctx.Done():
				return
			}
		}
	}()

	var errs []string
	for rErr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		errs = append(errs, fmt.Sprintf("%s: %v", rErr.ObjectName, rErr.Err))
	}
	cancel()
	<-listed

	if len(errs) > 0 {
		return fmt.Errorf("failed to delete store %s: %s", name, strings.Join(errs, "; "))
	}
	if listErr != nil {
		return fmt.Errorf("failed to list store %s: %w", name, listErr)
	}
	return nil
}

func (s *Store) Has(ctx context.Context, name string) (bool, error) {
	marker := s.root(name) + markerObject
	opts := minio.ListObjectsOptions{Prefix: marker, MaxKeys: 1}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return false, obj.Err
		}
		if obj.Key == marker {
			return true, nil
		}
	}
	return false, nil
}

// Cache stores entries as objects below root.
type Cache struct {
	client storage.Client
	bucket string
	root   string
}

func (c *Cache) object(key string) string {
	return c.root + url.QueryEscape(key)
}

func (c *Cache) Match(ctx context.Context, key string) (*cachestore.Response, error) {
	obj, err := c.client.GetObject(ctx, c.bucket, c.object(key), minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return cachestore.Unmarshal(data)
}

func (c *Cache) Put(ctx context.Context, key string, resp *cachestore.Response) error {
	data, err := cachestore.Marshal(resp)
	if err != nil {
		return err
	}
	_, err = c.client.PutObject(ctx, c.bucket, c.object(key), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	return err
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.RemoveObject(ctx, c.bucket, c.object(key), minio.RemoveObjectOptions{})
}

func (c *Cache) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	opts := minio.ListObjectsOptions{Prefix: c.root, Recursive: true}
	for obj := range c.client.ListObjects(ctx, c.bucket, opts) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		key, err := url.QueryUnescape(strings.TrimPrefix(obj.Key, c.root))
		if err != nil {
			return nil, fmt.Errorf("invalid object name %s: %w", obj.Key, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NoSuchBucket"
}
