package checks

import (
	"context"
	"fmt"

	"asset-sync/feature/synchronizer"
)

// ManifestReport compares the Persisted Manifest with the served build.
type ManifestReport struct {
	Present bool     `json:"present"`
	Matched bool     `json:"matched"`
	Version string   `json:"version,omitempty"`
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
	Changed []string `json:"changed"`
	Status  string   `json:"status"` // "ok", "warning", "error"
	Error   string   `json:"error,omitempty"`
}

// CheckManifest reports how far the Persisted Manifest is from the served build.
// An unreadable manifest is reported, not returned as an error.
func CheckManifest(ctx context.Context, s *synchronizer.Synchronizer) (*ManifestReport, error) {
	build := s.Build()
	if build == nil {
		return nil, fmt.Errorf("no build loaded")
	}

	report := &ManifestReport{
		Version: build.Version,
		Added:   []string{},
		Removed: []string{},
		Changed: []string{},
		Status:  "ok",
	}

	persisted, err := s.PersistedManifest(ctx)
	if err != nil {
		report.Present = true
		report.Status = "error"
		report.Error = err.Error()
		return report, nil
	}
	if persisted == nil {
		report.Status = "warning"
		report.Error = "no persisted manifest"
		return report, nil
	}
	report.Present = true

	for _, key := range build.Resources.Keys() {
		prev, ok := persisted[key]
		switch {
		case !ok:
			report.Added = append(report.Added, key)
		case prev != build.Resources[key]:
			report.Changed = append(report.Changed, key)
		}
	}
	for _, key := range persisted.Keys() {
		if !build.Resources.Has(key) {
			report.Removed = append(report.Removed, key)
		}
	}

	report.Matched = persisted.Equal(build.Resources)
	if !report.Matched {
		report.Status = "warning"
	}
	return report, nil
}
