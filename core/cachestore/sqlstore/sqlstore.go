// Package sqlstore implements cachestore.Store on a relational database
// through gorm.
package sqlstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"asset-sync/core/cachestore"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is a gorm backed cachestore.Store.
type Store struct {
	db *gorm.DB
}

// New migrates the cache tables and returns the store.
func New(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if err := db.AutoMigrate(&CacheStore{}, &CacheEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate cache tables: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Open(ctx context.Context, name string) (cachestore.Cache, error) {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&CacheStore{Name: name}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create store %s: %w", name, err)
	}
	return &Cache{db: s.db, name: name}, nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store = ?", name).Delete(&CacheEntry{}).Error; err != nil {
			return fmt.Errorf("failed to delete entries of %s: %w", name, err)
		}
		if err := tx.Where("name = ?", name).Delete(&CacheStore{}).Error; err != nil {
			return fmt.Errorf("failed to delete store %s: %w", name, err)
		}
		return nil
	})
}

func (s *Store) Has(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&CacheStore{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Cache is one named store backed by rows of cache_entries.
type Cache struct {
	db   *gorm.DB
	name string
}

func (c *Cache) Match(ctx context.Context, key string) (*cachestore.Response, error) {
	var entry CacheEntry
	err := c.db.WithContext(ctx).
		Where("store = ? AND cache_key = ?", c.name, key).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	resp := &cachestore.Response{
		URL:      entry.URL,
		Status:   entry.Status,
		Body:     entry.Body,
		StoredAt: entry.StoredAt,
	}
	if entry.Header != "" {
		var h http.Header
		if err := json.Unmarshal([]byte(entry.Header), &h); err != nil {
			return nil, fmt.Errorf("failed to decode headers of %s: %w", key, err)
		}
		resp.Header = h
	}
	return resp, nil
}

func (c *Cache) Put(ctx context.Context, key string, resp *cachestore.Response) error {
	if resp == nil {
		return fmt.Errorf("cannot store a nil response")
	}
	header, err := json.Marshal(resp.Header)
	if err != nil {
		return err
	}
	entry := CacheEntry{
		Store:    c.name,
		CacheKey: key,
		URL:      resp.URL,
		Status:   resp.Status,
		Header:   string(header),
		Body:     resp.Body,
		StoredAt: resp.StoredAt,
	}
	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&entry).Error
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.db.WithContext(ctx).
		Where("store = ? AND cache_key = ?", c.name, key).
		Delete(&CacheEntry{}).Error
}

func (c *Cache) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := c.db.WithContext(ctx).
		Model(&CacheEntry{}).
		Where("store = ?", c.name).
		Order("cache_key").
		Pluck("cache_key", &keys).Error
	return keys, err
}
