// Package leveldb implements cachestore.Store on a single LevelDB database.
//
// Keys are laid out as:
//
//	s\x00<store>            marker for an existing store
//	e\x00<store>\x00<key>   encoded cachestore.Response
package leveldb

import (
	"context"
	"errors"
	"fmt"

	"asset-sync/core/cachestore"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

const (
	markerPrefix = "s\x00"
	entryPrefix  = "e\x00"
	separator    = "\x00"
)

// Store is a LevelDB backed cachestore.Store.
type Store struct {
	db *leveldb.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func marker(name string) []byte {
	return []byte(markerPrefix + name)
}

func entries(name string) []byte {
	return []byte(entryPrefix + name + separator)
}

func (s *Store) Open(_ context.Context, name string) (cachestore.Cache, error) {
	if err := s.db.Put(marker(name), nil, nil); err != nil {
		return nil, fmt.Errorf("failed to create store %s: %w", name, err)
	}
	return &Cache{db: s.db, prefix: entries(name)}, nil
}

func (s *Store) Delete(_ context.Context, name string) error {
	batch := new(leveldb.Batch)
	batch.Delete(marker(name))

	iter := s.db.NewIterator(ldb_util.BytesPrefix(entries(name)), nil)
	for iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return fmt.Errorf("failed to scan store %s: %w", name, err)
	}

	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("failed to delete store %s: %w", name, err)
	}
	return nil
}

func (s *Store) Has(_ context.Context, name string) (bool, error) {
	return s.db.Has(marker(name), nil)
}

// Cache is one namespaced store inside the database.
type Cache struct {
	db     *leveldb.DB
	prefix []byte
}

func (c *Cache) key(k string) []byte {
	return append(append([]byte(nil), c.prefix...), k...)
}

func (c *Cache) Match(_ context.Context, key string) (*cachestore.Response, error) {
	val, err := c.db.Get(c.key(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cachestore.Unmarshal(val)
}

func (c *Cache) Put(_ context.Context, key string, resp *cachestore.Response) error {
	val, err := cachestore.Marshal(resp)
	if err != nil {
		return err
	}
	return c.db.Put(c.key(key), val, nil)
}

func (c *Cache) Delete(_ context.Context, key string) error {
	return c.db.Delete(c.key(key), nil)
}

func (c *Cache) Keys(_ context.Context) ([]string, error) {
	var keys []string
	iter := c.db.NewIterator(ldb_util.BytesPrefix(c.prefix), nil)
	defer iter.Release()
	for iter.Next() {
		keys = append(keys, string(iter.Key()[len(c.prefix):]))
	}
	return keys, iter.Error()
}
