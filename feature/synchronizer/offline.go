package synchronizer

import (
	"context"
	"fmt"

	"asset-sync/core/fetch"
	"asset-sync/core/manifest"

	"go.uber.org/zap"
)

// MissingResources lists the Resource Map paths of build without a Content Cache entry.
func (s *Synchronizer) MissingResources(ctx context.Context, build *manifest.Build) ([]string, error) {
	content, err := s.ContentCache(ctx)
	if err != nil {
		return nil, err
	}
	keys, err := content.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list content cache: %w", err)
	}

	present := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		present[manifest.StoredKey(s.origin, k)] = struct{}{}
	}

	var missing []string
	for _, key := range build.Resources.Keys() {
		if _, ok := present[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing, nil
}

// DownloadOffline fetches every Resource Map path that is not cached yet and
// stores them only if all fetches succeed. It returns the number of stored entries.
func (s *Synchronizer) DownloadOffline(ctx context.Context) (int, error) {
	build := s.life.Controller()
	if build == nil {
		return 0, fmt.Errorf("%w: no active build", ErrInvalidState)
	}

	missing, err := s.MissingResources(ctx, build)
	if err != nil {
		return 0, err
	}
	if len(missing) == 0 {
		return 0, nil
	}

	reqs := make([]fetch.Request, len(missing))
	for i, key := range missing {
		reqs[i] = fetch.Request{URL: manifest.CacheURL(s.origin, key)}
	}

	responses, err := s.fetcher.FetchAll(ctx, reqs)
	if err != nil {
		return 0, fmt.Errorf("offline download failed: %w", err)
	}

	content, err := s.ContentCache(ctx)
	if err != nil {
		return 0, err
	}
	for i, resp := range responses {
		if err := content.Put(ctx, reqs[i].URL, resp); err != nil {
			return i, fmt.Errorf("failed to store %s: %w", missing[i], err)
		}
	}

	s.logger.Info("Downloaded resources for offline use", zap.Int("count", len(responses)))
	return len(responses), nil
}
