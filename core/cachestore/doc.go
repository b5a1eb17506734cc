// Package cachestore defines the named key/value stores that hold cached
// responses.
//
// Three stores are used per deployment: the Content Cache, the Staging Cache
// and the Manifest Store. Each is addressed by name through a Store and
// exposes a Cache handle for entry level operations.
//
// # Backends
//
//   - memory: in-process stores backed by go-cache.
//   - leveldb: a single LevelDB database, entries namespaced by store name.
//   - sql: a gorm table (MySQL or SQLite).
//   - s3: objects in a MinIO/S3 bucket.
//
// # Usage
//
//	names := cachestore.NamesFor(cfg.Prefix)
//	content, err := store.Open(ctx, names.Content)
//	resp, err := content.Match(ctx, "https://app.example.com/main.dart.js")
//
// Match returns a nil response (and no error) when the key is absent.
package cachestore
