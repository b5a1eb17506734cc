// Package fetch retrieves resources from the origin over HTTP.
//
// Fetch performs a single request and returns the response whatever its
// status. FetchAll retrieves a batch with bounded concurrency and fails as a
// whole when any request fails at the transport level or returns a non-2xx
// status, in which case no responses are returned.
//
// A Request with Reload set bypasses intermediate HTTP caches.
package fetch
