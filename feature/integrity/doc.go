// Package integrity provides health checks over the synchronized stores.
//
// Unlike the 'resource' package which reports on a single path,
// this package validates the stores as a whole.
//
// # Checks Provided
//
//   - Manifest: Compares the Persisted Manifest with the served build (added, removed, changed paths).
//   - Shell: Verifies that every shell path has an ok entry in the Content Cache.
//   - Stale: Dry-runs reconciliation and lists the entries an activation would evict.
//   - Server: Validates that the sql cache schema matches the gorm models (columns, types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/manifest : Runs manifest check.
//   - GET /integrity/shell : Runs shell check (supports ?fix=true).
//   - GET /integrity/stale : Runs stale check.
//   - GET /integrity/server : Runs server schema check.
package integrity
