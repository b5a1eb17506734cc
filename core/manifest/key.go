package manifest

import "strings"

// cacheBustMarker starts the query that build tooling appends to force a reload.
const cacheBustMarker = "?v="

// NormalizeOrigin trims a trailing slash so origins compare consistently.
func NormalizeOrigin(origin string) string {
	return strings.TrimSuffix(origin, "/")
}

// RequestKey derives the logical key for an intercepted request URL.
func RequestKey(origin, rawURL string) string {
	origin = NormalizeOrigin(origin)
	if rawURL == origin ||
		strings.HasPrefix(rawURL, origin+"/#") ||
		strings.HasPrefix(rawURL, origin+"#") {
		return RootKey
	}

	key := trimOrigin(origin, rawURL)
	if i := strings.Index(key, cacheBustMarker); i != -1 {
		key = key[:i]
	}
	if key == "" {
		return RootKey
	}
	return key
}

// StoredKey derives the logical key of a Content Cache entry from its URL.
func StoredKey(origin, rawURL string) string {
	key := trimOrigin(NormalizeOrigin(origin), rawURL)
	if key == "" {
		return RootKey
	}
	return key
}

// CacheURL returns the canonical Content Cache key for a logical key.
func CacheURL(origin, key string) string {
	origin = NormalizeOrigin(origin)
	if key == RootKey {
		return origin + "/"
	}
	return origin + "/" + strings.TrimPrefix(key, "/")
}

// trimOrigin strips origin and the slash that follows it. URLs of a foreign
// origin are returned unchanged so they never match a logical key.
func trimOrigin(origin, rawURL string) string {
	if rawURL == origin {
		return ""
	}
	if strings.HasPrefix(rawURL, origin+"/") {
		return rawURL[len(origin)+1:]
	}
	return rawURL
}
