// Package manifest describes the build output that asset-sync keeps in sync.
//
// A Build pairs a Resource Map (logical path -> content fingerprint) with the
// ordered Shell: the minimal set of paths that must be cached before the
// application can start.
//
// # Logical keys
//
// Logical keys are origin-relative paths without a leading slash
// ("main.dart.js", "assets/FontManifest.json"). The document root is the
// special key "/". Two derivations exist:
//
//   - RequestKey: used on the read path. Strips the origin, drops a trailing
//     "?v=" cache-busting query and maps the bare origin, "origin/#..." and the
//     empty path to "/".
//   - StoredKey: used during reconciliation. Strips the origin and maps the
//     empty remainder to "/".
//
// CacheURL is the inverse used to address Content Cache entries.
//
// # Usage
//
//	build, err := manifest.Load("build/asset-manifest.json")
//	if err != nil {
//	    return err
//	}
//	key := manifest.RequestKey("https://app.example.com", "https://app.example.com/main.dart.js?v=42")
//	fp, ok := build.Resources[key]
package manifest
