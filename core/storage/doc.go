// Package storage provides the object storage client used by the s3 cache backend.
//
// It wraps the MinIO Go client behind the Client interface so that the
// backend (core/cachestore/s3store) can be tested against core/storage/mocks.
// Both AWS S3 and self-hosted MinIO are supported.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	store, err := s3store.New(ctx, client, cfg.Storage.Bucket, cfg.Cache.Prefix)
package storage
