package cmd

import (
	"context"
	"fmt"

	"asset-sync/core/cachestore"
	"asset-sync/core/cachestore/leveldb"
	"asset-sync/core/cachestore/memory"
	"asset-sync/core/cachestore/s3store"
	"asset-sync/core/cachestore/sqlstore"
	"asset-sync/core/config"
	"asset-sync/core/database"
	"asset-sync/core/fetch"
	"asset-sync/core/logger"
	"asset-sync/core/manifest"
	"asset-sync/core/storage"
	"asset-sync/feature/synchronizer"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles everything a command needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  cachestore.Store
	db     *gorm.DB
	sync   *synchronizer.Synchronizer
	close  func() error
}

// newApp loads the configuration, opens the cache backend and builds the
// synchronizer for the configured build manifest.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store, db, closeStore, err := openCacheStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logg = logg.With(zap.String("cache", cfg.Cache.Driver))

	build, err := manifest.Load(cfg.Sync.ManifestPath)
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	fetcher := fetch.NewClient(fetch.Config{
		TimeoutSeconds: cfg.Sync.FetchTimeoutSeconds,
		Concurrency:    cfg.Sync.Concurrency,
		UserAgent:      cfg.Sync.UserAgent,
	})

	s, err := synchronizer.New(cfg.Sync.Origin, cachestore.NamesFor(cfg.Cache.Prefix), build, store, fetcher, logg)
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: logg,
		store:  store,
		db:     db,
		sync:   s,
		close:  closeStore,
	}, nil
}

// Close releases the cache backend and flushes the logger.
func (a *app) Close() {
	if err := a.close(); err != nil {
		a.logger.Warn("Failed to close cache backend", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// openCacheStore opens the backend selected by cfg.Cache.Driver. The returned
// database is nil unless the sql backend is used.
func openCacheStore(ctx context.Context, cfg *config.Config) (cachestore.Store, *gorm.DB, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Cache.Driver {
	case "memory":
		return memory.New(), nil, noop, nil
	case "leveldb", "":
		store, err := leveldb.Open(cfg.Cache.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, nil, store.Close, nil
	case "sql":
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		store, err := sqlstore.New(db)
		if err != nil {
			_ = sqlDB.Close()
			return nil, nil, nil, err
		}
		return store, db, sqlDB.Close, nil
	case "s3":
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		store, err := s3store.New(ctx, client, cfg.Storage.Bucket, cfg.Cache.Prefix)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, nil, noop, nil
	default:
		return nil, nil, nil, fmt.Errorf("unsupported cache driver: %s", cfg.Cache.Driver)
	}
}
