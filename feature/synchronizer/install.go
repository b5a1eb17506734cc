package synchronizer

import (
	"context"
	"fmt"

	"asset-sync/core/fetch"
	"asset-sync/core/manifest"

	"go.uber.org/zap"
)

// Install fetches every shell path of the candidate build into a fresh
// Staging Cache. Nothing is staged unless every fetch succeeds.
func (s *Synchronizer) Install(ctx context.Context) error {
	s.cycle.Lock()
	defer s.cycle.Unlock()

	build, prev, err := s.life.beginInstall()
	if err != nil {
		return err
	}

	if err := s.install(ctx, build); err != nil {
		s.life.restore(prev, err)
		s.logger.Error("Install failed", zap.Error(err))
		return fmt.Errorf("install failed: %w", err)
	}

	s.life.SkipWaiting()
	s.life.installed()
	s.logger.Info("Installed build",
		zap.String("version", build.Version),
		zap.Int("shell", len(build.Shell)))
	return nil
}

func (s *Synchronizer) install(ctx context.Context, build *manifest.Build) error {
	if err := build.Validate(); err != nil {
		return err
	}

	reqs := make([]fetch.Request, len(build.Shell))
	for i, path := range build.Shell {
		reqs[i] = fetch.Request{URL: manifest.CacheURL(s.origin, path), Reload: true}
	}

	responses, err := s.fetcher.FetchAll(ctx, reqs)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, s.names.Staging); err != nil {
		return fmt.Errorf("failed to reset staging cache: %w", err)
	}
	staging, err := s.store.Open(ctx, s.names.Staging)
	if err != nil {
		return fmt.Errorf("failed to open staging cache: %w", err)
	}

	for i, resp := range responses {
		if err := staging.Put(ctx, reqs[i].URL, resp); err != nil {
			_ = s.store.Delete(ctx, s.names.Staging)
			return fmt.Errorf("failed to stage %s: %w", build.Shell[i], err)
		}
	}
	return nil
}
