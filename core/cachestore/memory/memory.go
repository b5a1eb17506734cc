// Package memory implements cachestore.Store in process memory.
package memory

import (
	"context"
	"sort"
	"sync"

	"asset-sync/core/cachestore"

	gocache "github.com/patrickmn/go-cache"
)

// Store keeps every named cache in a go-cache instance.
type Store struct {
	mu     sync.Mutex
	caches map[string]*Cache
}

// New returns an empty memory store.
func New() *Store {
	return &Store{caches: make(map[string]*Cache)}
}

func (s *Store) Open(_ context.Context, name string) (cachestore.Cache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.caches[name]
	if !ok {
		c = &Cache{items: gocache.New(gocache.NoExpiration, 0)}
		s.caches[name] = c
	}
	return c, nil
}

func (s *Store) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.caches[name]; ok {
		c.items.Flush()
		delete(s.caches, name)
	}
	return nil
}

func (s *Store) Has(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.caches[name]
	return ok, nil
}

// Cache is one named memory cache.
type Cache struct {
	items *gocache.Cache
}

func (c *Cache) Match(_ context.Context, key string) (*cachestore.Response, error) {
	v, ok := c.items.Get(key)
	if !ok {
		return nil, nil
	}
	return v.(*cachestore.Response).Clone(), nil
}

func (c *Cache) Put(_ context.Context, key string, resp *cachestore.Response) error {
	c.items.Set(key, resp.Clone(), gocache.NoExpiration)
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.items.Delete(key)
	return nil
}

func (c *Cache) Keys(_ context.Context) ([]string, error) {
	items := c.items.Items()
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
