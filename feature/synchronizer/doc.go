// Package synchronizer keeps the local Content Cache of one web application
// in sync with its build manifest and serves intercepted reads from it.
//
// # Lifecycle
//
// A Build is staged, installed, then activated:
//
//	parsed -> installing -> installed -> activating -> activated
//	                                              \-> redundant (rolled back)
//
// Install fetches every shell path with reload semantics into the Staging
// Cache, all-or-nothing. Activate reconciles the Content Cache against the
// Persisted Manifest:
//
//   - No baseline: the Content Cache is recreated empty and filled from staging.
//   - Baseline: entries whose path left the Resource Map or whose fingerprint
//     changed are evicted, then staging is promoted over the survivors.
//
// Any activation failure deletes all three stores so the next attempt starts
// from an empty cache. Reads are intercepted only once an activation has
// committed and claimed.
//
// # Read path
//
//   - "/" is served online-first with fallback to the cached copy.
//   - Other Resource Map paths are served cache-first; concurrent misses for
//     the same key share a single fetch.
//   - Everything else passes through.
//
// # HTTP API
//
//	GET  /sync/status
//	POST /sync/install
//	POST /sync/activate
//	POST /sync/update
//	POST /sync/message {"message": "skipWaiting"|"downloadOffline"}
package synchronizer
