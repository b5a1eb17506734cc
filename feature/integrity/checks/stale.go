package checks

import (
	"context"
	"fmt"

	"asset-sync/core/reconcile"
	"asset-sync/feature/synchronizer"
)

// CheckStale dry-runs reconciliation of the Content Cache against the served
// build and returns the resulting plan. Nothing is modified.
func CheckStale(ctx context.Context, s *synchronizer.Synchronizer) (*reconcile.Plan, error) {
	build := s.Build()
	if build == nil {
		return nil, fmt.Errorf("no build loaded")
	}

	persisted, err := s.PersistedManifest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read persisted manifest: %w", err)
	}

	content, err := s.ContentCache(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open content cache: %w", err)
	}
	keys, err := content.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list content cache: %w", err)
	}

	return reconcile.BuildPlan(reconcile.Input{
		Origin:      s.Origin(),
		ContentKeys: keys,
		Current:     build.Resources,
		Previous:    persisted,
	}), nil
}
