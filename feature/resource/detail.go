package resource

import (
	"context"
	"fmt"
	"strings"

	"asset-sync/core/cachestore"
	"asset-sync/core/manifest"
	"asset-sync/feature/resource/models"
	"asset-sync/feature/synchronizer"

	"golang.org/x/sync/errgroup"
)

// NormalizeKey turns a user supplied path into a logical key.
func NormalizeKey(path string) string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return manifest.RootKey
	}
	return path
}

// CheckResource builds the detail report for key.
func CheckResource(ctx context.Context, s *synchronizer.Synchronizer, key string) (*models.ResourceDetailReport, error) {
	build := s.Build()
	if build == nil {
		return nil, fmt.Errorf("no build loaded")
	}

	report := &models.ResourceDetailReport{
		Key:             key,
		CacheURL:        manifest.CacheURL(s.Origin(), key),
		IntegrityStatus: models.StatusPass,
	}

	var (
		persisted manifest.Map
		cached    *cachestore.Response
	)

	// Load the Persisted Manifest and the cached entry in parallel.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		persisted, err = s.PersistedManifest(gctx)
		if err != nil {
			return fmt.Errorf("failed to read persisted manifest: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		content, err := s.ContentCache(gctx)
		if err != nil {
			return err
		}
		cached, err = content.Match(gctx, report.CacheURL)
		if err != nil {
			return fmt.Errorf("cache lookup failed: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Fingerprint, report.InManifest = build.Resources[key]
	report.InShell = build.InShell(key)
	report.PersistedFingerprint = persisted[key]

	if cached != nil {
		report.Cached = true
		report.CachedStatus = cached.Status
		report.CachedSize = len(cached.Body)
		report.ContentType = cached.Header.Get("Content-Type")
		if !cached.StoredAt.IsZero() {
			at := cached.StoredAt
			report.StoredAt = &at
		}
		report.Stale = report.InManifest && report.PersistedFingerprint != report.Fingerprint
	}

	switch {
	case !report.InManifest:
		report.Issues = append(report.Issues, "not in resource map")
		if report.Cached {
			report.Issues = append(report.Issues, "orphaned cache entry")
		}
		report.IntegrityStatus = models.StatusFail
	case report.InShell && !report.Cached:
		report.Issues = append(report.Issues, "shell resource missing from cache")
		report.IntegrityStatus = models.StatusFail
	case report.Cached && cached.Status/100 != 2:
		report.Issues = append(report.Issues, fmt.Sprintf("cached response has status %d", cached.Status))
		report.IntegrityStatus = models.StatusFail
	case !report.Cached:
		report.Issues = append(report.Issues, "not cached yet")
		report.IntegrityStatus = models.StatusWarning
	case report.Stale:
		report.Issues = append(report.Issues,
			fmt.Sprintf("fingerprint changed (persisted=%q current=%q)", report.PersistedFingerprint, report.Fingerprint))
		report.IntegrityStatus = models.StatusWarning
	}

	return report, nil
}
