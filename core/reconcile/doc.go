// Package reconcile plans and applies the Content Cache upgrade performed
// during activation.
//
// Reconciliation is split in two steps so callers can inspect the outcome
// before anything is mutated:
//
// 1. BuildPlan: a pure function over the cached keys, the staged keys and the
// current and previous Resource Maps. Every cached entry is classified as
// retained or evicted and every staged entry becomes a promotion.
//
// 2. ApplyPlan: executes the plan against a Content Cache and a Staging
// Cache. Evictions run before promotions, so a staged shell entry always
// replaces a preserved copy of the same key.
//
// # Eviction rule
//
// An entry is evicted when its logical key is absent from the current map,
// or when its fingerprint differs between the current and previous maps.
// A key missing from the previous map counts as changed.
//
// # Usage Example
//
//	plan := reconcile.BuildPlan(reconcile.Input{
//	    Origin:      origin,
//	    ContentKeys: contentKeys,
//	    StagingKeys: stagingKeys,
//	    Current:     build.Resources,
//	    Previous:    persisted,
//	})
//	executed, err := reconcile.ApplyPlan(ctx, content, staging, plan, reconcile.Options{})
package reconcile
