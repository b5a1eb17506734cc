package synchronizer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"asset-sync/core/cachestore"
	"asset-sync/core/manifest"
	"asset-sync/core/reconcile"

	"go.uber.org/zap"
)

// BaselineState tells whether a previous sync completed.
type BaselineState string

const (
	NoBaseline  BaselineState = "no_baseline"
	HasBaseline BaselineState = "has_baseline"
)

// Baseline is the Persisted Manifest as read at the start of activation.
type Baseline struct {
	State    BaselineState
	Previous manifest.Map
}

// Outcome is the result of an activation.
type Outcome string

const (
	Committed  Outcome = "committed"
	RolledBack Outcome = "rolled_back"
)

// Branch identifies the reconciliation strategy that ran.
type Branch string

const (
	// BranchReset recreates the Content Cache from staging.
	BranchReset Branch = "reset"
	// BranchUpgrade evicts stale entries and promotes staging over survivors.
	BranchUpgrade Branch = "upgrade"
)

// ActivationResult describes a finished activation.
type ActivationResult struct {
	Outcome Outcome               `json:"outcome"`
	Branch  Branch                `json:"branch,omitempty"`
	Version string                `json:"version"`
	Summary reconcile.PlanSummary `json:"summary"`
	Error   string                `json:"error,omitempty"`
}

// Activate reconciles the Content Cache with the installed build, persists
// its Resource Map and claims reads. On failure every store is deleted and
// the result is RolledBack.
func (s *Synchronizer) Activate(ctx context.Context) (*ActivationResult, error) {
	s.cycle.Lock()
	defer s.cycle.Unlock()

	build, err := s.life.beginActivate()
	if err != nil {
		return nil, err
	}

	result, err := s.reconcile(ctx, build)
	if err != nil {
		s.logger.Error("Failed to upgrade asset cache", zap.Error(err))
		// The stores go even when ctx caused the failure.
		s.teardown(context.WithoutCancel(ctx))
		s.life.rolledBack(err)
		return &ActivationResult{
			Outcome: RolledBack,
			Branch:  result.Branch,
			Version: build.Version,
			Error:   err.Error(),
		}, fmt.Errorf("activation rolled back: %w", err)
	}

	s.life.activated(build)
	s.logger.Info("Activated build",
		zap.String("version", build.Version),
		zap.String("branch", string(result.Branch)),
		zap.Int("evicted", result.Summary.Evicted),
		zap.Int("retained", result.Summary.Retained),
		zap.Int("promoted", result.Summary.Promoted))
	return result, nil
}

// reconcile always returns a non-nil result so the caller can report the branch.
func (s *Synchronizer) reconcile(ctx context.Context, build *manifest.Build) (*ActivationResult, error) {
	result := &ActivationResult{Outcome: Committed, Version: build.Version}

	manifestCache, err := s.store.Open(ctx, s.names.Manifest)
	if err != nil {
		return result, fmt.Errorf("failed to open manifest store: %w", err)
	}

	baseline, err := loadBaseline(ctx, manifestCache)
	if err != nil {
		return result, err
	}

	var contentKeys []string
	switch baseline.State {
	case NoBaseline:
		result.Branch = BranchReset
		if err := s.store.Delete(ctx, s.names.Content); err != nil {
			return result, fmt.Errorf("failed to reset content cache: %w", err)
		}
	default:
		result.Branch = BranchUpgrade
	}

	content, err := s.store.Open(ctx, s.names.Content)
	if err != nil {
		return result, fmt.Errorf("failed to open content cache: %w", err)
	}
	if baseline.State == HasBaseline {
		if contentKeys, err = content.Keys(ctx); err != nil {
			return result, fmt.Errorf("failed to list content cache: %w", err)
		}
	}

	staging, err := s.store.Open(ctx, s.names.Staging)
	if err != nil {
		return result, fmt.Errorf("failed to open staging cache: %w", err)
	}
	stagingKeys, err := staging.Keys(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list staging cache: %w", err)
	}

	plan := reconcile.BuildPlan(reconcile.Input{
		Origin:      s.origin,
		ContentKeys: contentKeys,
		StagingKeys: stagingKeys,
		Current:     build.Resources,
		Previous:    baseline.Previous,
	})
	result.Summary = plan.Summary

	if _, err := reconcile.ApplyPlan(ctx, content, staging, plan, reconcile.Options{}); err != nil {
		return result, err
	}

	if err := s.store.Delete(ctx, s.names.Staging); err != nil {
		return result, fmt.Errorf("failed to delete staging cache: %w", err)
	}

	if err := persistManifest(ctx, manifestCache, build.Resources); err != nil {
		return result, err
	}
	return result, nil
}

// teardown deletes every store, logging but not stopping on errors.
func (s *Synchronizer) teardown(ctx context.Context) {
	for _, name := range s.names.All() {
		if err := s.store.Delete(ctx, name); err != nil {
			s.logger.Error("Failed to delete store", zap.String("store", name), zap.Error(err))
		}
	}
}

func loadBaseline(ctx context.Context, mc cachestore.Cache) (Baseline, error) {
	resp, err := mc.Match(ctx, ManifestKey)
	if err != nil {
		return Baseline{}, fmt.Errorf("failed to read persisted manifest: %w", err)
	}
	if resp == nil {
		return Baseline{State: NoBaseline}, nil
	}
	previous, err := manifest.Decode(resp.Body)
	if err != nil {
		return Baseline{}, err
	}
	return Baseline{State: HasBaseline, Previous: previous}, nil
}

func persistManifest(ctx context.Context, mc cachestore.Cache, m manifest.Map) error {
	body, err := m.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	resp := &cachestore.Response{
		URL:      ManifestKey,
		Status:   http.StatusOK,
		Header:   http.Header{"Content-Type": {"application/json"}},
		Body:     body,
		StoredAt: time.Now().UTC(),
	}
	if err := mc.Put(ctx, ManifestKey, resp); err != nil {
		return fmt.Errorf("failed to persist manifest: %w", err)
	}
	return nil
}
