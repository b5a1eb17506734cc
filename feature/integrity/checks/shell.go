package checks

import (
	"context"
	"fmt"

	"asset-sync/core/fetch"
	"asset-sync/core/manifest"
	"asset-sync/feature/synchronizer"

	"go.uber.org/zap"
)

// CheckShell returns the shell paths that have no ok entry in the Content Cache.
func CheckShell(ctx context.Context, s *synchronizer.Synchronizer) ([]string, error) {
	build := s.Build()
	if build == nil {
		return nil, fmt.Errorf("no build loaded")
	}

	content, err := s.ContentCache(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open content cache: %w", err)
	}

	missing := []string{}
	for _, key := range build.Shell {
		resp, err := content.Match(ctx, manifest.CacheURL(s.Origin(), key))
		if err != nil {
			return nil, fmt.Errorf("cache lookup failed for %s: %w", key, err)
		}
		if resp == nil || !resp.OK() {
			missing = append(missing, key)
		}
	}
	return missing, nil
}

// FixShell refetches the missing shell paths, bypassing HTTP caches, and
// stores them in the Content Cache. Nothing is written unless every fetch succeeds.
func FixShell(ctx context.Context, s *synchronizer.Synchronizer, logger *zap.Logger, missing []string) error {
	if len(missing) == 0 {
		return nil
	}

	reqs := make([]fetch.Request, len(missing))
	for i, key := range missing {
		reqs[i] = fetch.Request{URL: manifest.CacheURL(s.Origin(), key), Reload: true}
	}

	resps, err := s.Fetcher().FetchAll(ctx, reqs)
	if err != nil {
		return fmt.Errorf("failed to fetch shell resources: %w", err)
	}

	content, err := s.ContentCache(ctx)
	if err != nil {
		return fmt.Errorf("failed to open content cache: %w", err)
	}
	for i, resp := range resps {
		if err := content.Put(ctx, reqs[i].URL, resp); err != nil {
			logger.Error("Failed to store shell resource", zap.String("key", missing[i]), zap.Error(err))
			return err
		}
		logger.Info("Restored shell resource", zap.String("key", missing[i]))
	}
	return nil
}
