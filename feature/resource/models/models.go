package models

import "time"

const (
	StatusPass    = "PASS"
	StatusWarning = "WARNING"
	StatusFail    = "FAIL"
)

// ResourceDetailReport contains the detailed state of a single resource.
type ResourceDetailReport struct {
	Key                  string     `json:"key"`
	CacheURL             string     `json:"cache_url"`
	Fingerprint          string     `json:"fingerprint,omitempty"`
	PersistedFingerprint string     `json:"persisted_fingerprint,omitempty"`
	InManifest           bool       `json:"in_manifest"`
	InShell              bool       `json:"in_shell"`
	Cached               bool       `json:"cached"`
	CachedStatus         int        `json:"cached_status,omitempty"`
	CachedSize           int        `json:"cached_size,omitempty"`
	ContentType          string     `json:"content_type,omitempty"`
	StoredAt             *time.Time `json:"stored_at,omitempty"`
	Stale                bool       `json:"stale"`
	IntegrityStatus      string     `json:"integrity_status"` // "PASS", "FAIL", "WARNING"
	Issues               []string   `json:"issues,omitempty"`
}
