// Package gateway serves the application bundle through the synchronizer.
//
// A catch-all GET route rebuilds the absolute request URL from the configured
// origin and asks the synchronizer to intercept it. Handled requests are
// answered from the Content Cache or the network and tagged with the
// X-Asset-Sync header (hit, fill, online, offline). Everything else is
// proxied to the origin unchanged.
package gateway
