package reconcile

import (
	"context"
	"fmt"

	"asset-sync/core/cachestore"
)

// ApplyPlan executes the plan: evictions first, then promotions from staging
// into content. Returns the number of actions executed and the first error.
// Nothing is executed when opts.DryRun is set.
func ApplyPlan(
	ctx context.Context,
	content cachestore.Cache,
	staging cachestore.Cache,
	plan *Plan,
	opts Options,
) (executed int, err error) {
	if opts.DryRun || plan == nil {
		return 0, nil
	}

	for _, action := range plan.Evictions() {
		if err := content.Delete(ctx, action.CacheKey); err != nil {
			return executed, fmt.Errorf("failed to evict %s: %w", action.Key, err)
		}
		executed++
	}

	for _, action := range plan.Promotions() {
		resp, err := staging.Match(ctx, action.CacheKey)
		if err != nil {
			return executed, fmt.Errorf("failed to read staged %s: %w", action.Key, err)
		}
		if resp == nil {
			return executed, fmt.Errorf("staged entry %s disappeared", action.Key)
		}
		if err := content.Put(ctx, action.CacheKey, resp); err != nil {
			return executed, fmt.Errorf("failed to promote %s: %w", action.Key, err)
		}
		executed++
	}

	return executed, nil
}
