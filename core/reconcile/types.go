package reconcile

import "asset-sync/core/manifest"

// ActionType represents the type of planned action.
type ActionType string

const (
	// ActionEvict deletes an entry from the Content Cache.
	ActionEvict ActionType = "evict"
	// ActionRetain keeps an entry in the Content Cache.
	ActionRetain ActionType = "retain"
	// ActionPromote copies a staged entry into the Content Cache.
	ActionPromote ActionType = "promote"
)

const (
	ReasonRemoved   = "removed from resource map"
	ReasonChanged   = "fingerprint changed"
	ReasonUntracked = "absent from previous manifest"
	ReasonUnchanged = "fingerprint unchanged"
	ReasonStaged    = "fresh shell copy"
)

// Action represents a planned operation on one cache entry.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the logical key of the entry.
	Key string `json:"key"`

	// CacheKey is the entry key inside the store (its canonical URL).
	CacheKey string `json:"cache_key"`

	// Reason explains the classification.
	Reason string `json:"reason"`
}

// Plan contains the classified entries and aggregate counts.
type Plan struct {
	// Actions lists evictions and retentions in key order, followed by promotions.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// TotalEntries is the number of Content Cache entries inspected.
	TotalEntries int `json:"total_entries"`

	// Retained counts entries that survive the upgrade.
	Retained int `json:"retained"`

	// Evicted counts entries that will be deleted.
	Evicted int `json:"evicted"`

	// Removed counts evictions caused by a key leaving the Resource Map.
	Removed int `json:"removed"`

	// Changed counts evictions caused by a fingerprint change.
	Changed int `json:"changed"`

	// Promoted counts staged entries copied into the Content Cache.
	Promoted int `json:"promoted"`

	// Overwritten counts promotions that replace a retained entry.
	Overwritten int `json:"overwritten"`
}

// Input bundles everything BuildPlan needs.
type Input struct {
	// Origin is used to derive logical keys from stored URLs.
	Origin string
	// ContentKeys are the keys currently in the Content Cache.
	ContentKeys []string
	// StagingKeys are the keys in the Staging Cache.
	StagingKeys []string
	// Current is the Resource Map of the build being activated.
	Current manifest.Map
	// Previous is the persisted Resource Map, nil when there is no baseline.
	Previous manifest.Map
}

// Options controls plan execution.
type Options struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool
}
