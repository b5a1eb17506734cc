package synchronizer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"asset-sync/core/cachestore"
	"asset-sync/core/fetch"
	"asset-sync/core/manifest"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrUnknownMessage is returned for a message other than skipWaiting or downloadOffline.
	ErrUnknownMessage = errors.New("unknown message")
	// ErrInvalidState is returned when an operation is not allowed in the current lifecycle state.
	ErrInvalidState = errors.New("operation not allowed in current lifecycle state")
)

// ManifestKey is the single record of the Manifest Store.
const ManifestKey = "manifest"

// Synchronizer owns the three stores of one origin and runs the install,
// activate and read operations against them.
type Synchronizer struct {
	origin  string
	names   cachestore.Names
	store   cachestore.Store
	fetcher fetch.Fetcher
	logger  *zap.Logger
	life    *Lifecycle

	// cycle serializes install and activate.
	cycle sync.Mutex
	fills singleflight.Group
}

// New creates a synchronizer for build. The build is staged but not installed.
func New(origin string, names cachestore.Names, build *manifest.Build, store cachestore.Store, fetcher fetch.Fetcher, logger *zap.Logger) (*Synchronizer, error) {
	if origin == "" {
		return nil, fmt.Errorf("origin is required")
	}
	if build != nil {
		if err := build.Validate(); err != nil {
			return nil, err
		}
	}
	return &Synchronizer{
		origin:  manifest.NormalizeOrigin(origin),
		names:   names,
		store:   store,
		fetcher: fetcher,
		logger:  logger,
		life:    newLifecycle(build),
	}, nil
}

// Origin returns the normalized origin.
func (s *Synchronizer) Origin() string {
	return s.origin
}

// Names returns the store names.
func (s *Synchronizer) Names() cachestore.Names {
	return s.names
}

// Lifecycle exposes the lifecycle host.
func (s *Synchronizer) Lifecycle() *Lifecycle {
	return s.life
}

// Status returns a lifecycle snapshot.
func (s *Synchronizer) Status() Snapshot {
	return s.life.Snapshot()
}

// Build returns the controlling build, or the candidate before the first activation.
func (s *Synchronizer) Build() *manifest.Build {
	if b := s.life.Controller(); b != nil {
		return b
	}
	return s.life.Candidate()
}

// Stage replaces the candidate build. It takes effect on the next install.
func (s *Synchronizer) Stage(build *manifest.Build) error {
	if build == nil {
		return fmt.Errorf("%w: nil build", manifest.ErrInvalidBuild)
	}
	if err := build.Validate(); err != nil {
		return err
	}
	s.cycle.Lock()
	defer s.cycle.Unlock()
	s.life.stage(build)
	s.logger.Info("Staged build",
		zap.String("version", build.Version),
		zap.Int("resources", len(build.Resources)),
		zap.Int("shell", len(build.Shell)))
	return nil
}

// ContentCache opens the Content Cache.
func (s *Synchronizer) ContentCache(ctx context.Context) (cachestore.Cache, error) {
	return s.store.Open(ctx, s.names.Content)
}

// PersistedManifest reads the Persisted Manifest. It returns nil when there is no baseline.
func (s *Synchronizer) PersistedManifest(ctx context.Context) (manifest.Map, error) {
	has, err := s.store.Has(ctx, s.names.Manifest)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, nil
	}
	mc, err := s.store.Open(ctx, s.names.Manifest)
	if err != nil {
		return nil, err
	}
	b, err := loadBaseline(ctx, mc)
	if err != nil {
		return nil, err
	}
	return b.Previous, nil
}

// Fetcher returns the network collaborator.
func (s *Synchronizer) Fetcher() fetch.Fetcher {
	return s.fetcher
}

// Update runs install and, when the candidate may activate, activation.
// It returns a nil result when the installed build is left waiting.
func (s *Synchronizer) Update(ctx context.Context) (*ActivationResult, error) {
	if err := s.Install(ctx); err != nil {
		return nil, err
	}
	if !s.life.ShouldActivate() {
		s.logger.Info("Installed build is waiting for activation")
		return nil, nil
	}
	return s.Activate(ctx)
}
