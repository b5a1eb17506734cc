// Package resource reports the state of a single Resource Map path.
//
// The detail report joins three sources: the build being served, the
// Persisted Manifest and the Content Cache entry. It is exposed as
// GET /resources/{path} and by the `resource` CLI command.
//
// # Status
//
//   - PASS: the path is a resource, cached with an ok status and not stale.
//   - WARNING: the path is not cached yet, or its cached copy is stale.
//   - FAIL: the path is not a resource, a shell path is missing from the
//     cache, or the cached response is not ok.
package resource
