package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// RootKey is the logical key of the document entry point.
const RootKey = "/"

// ErrInvalidBuild is returned when a build manifest violates its invariants.
var ErrInvalidBuild = errors.New("invalid build manifest")

// Map maps a logical path to its content fingerprint.
type Map map[string]string

// Has reports whether key is part of the map.
func (m Map) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Keys returns the map keys in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether both maps hold the same paths with the same fingerprints.
func (m Map) Equal(other Map) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Encode serializes the map into the persisted manifest format.
func (m Map) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode parses a persisted manifest body.
func Decode(data []byte) (Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("failed to decode manifest: empty document")
	}
	return m, nil
}

// Build is one compiled application bundle.
type Build struct {
	// Version is an optional label for the build (e.g. the app version).
	Version string `json:"version" yaml:"version"`
	// Resources is the Resource Map of the build.
	Resources Map `json:"resources" yaml:"resources"`
	// Shell lists the paths that must be installed before the app is usable.
	Shell []string `json:"shell" yaml:"shell"`
}

// Validate checks the build invariants: non-empty origin-relative keys,
// non-empty fingerprints and every shell path present in the Resource Map.
func (b *Build) Validate() error {
	if len(b.Resources) == 0 {
		return fmt.Errorf("%w: no resources", ErrInvalidBuild)
	}
	for k, v := range b.Resources {
		if k == "" {
			return fmt.Errorf("%w: empty resource path", ErrInvalidBuild)
		}
		// Keys are origin-relative; only the root carries a leading slash.
		if k != RootKey && strings.HasPrefix(k, "/") {
			return fmt.Errorf("%w: resource path %q must not start with /", ErrInvalidBuild, k)
		}
		if v == "" {
			return fmt.Errorf("%w: empty fingerprint for %q", ErrInvalidBuild, k)
		}
	}
	seen := make(map[string]struct{}, len(b.Shell))
	for _, p := range b.Shell {
		if !b.Resources.Has(p) {
			return fmt.Errorf("%w: shell path %q is not a resource", ErrInvalidBuild, p)
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("%w: duplicate shell path %q", ErrInvalidBuild, p)
		}
		seen[p] = struct{}{}
	}
	return nil
}

// InShell reports whether key is a shell path.
func (b *Build) InShell(key string) bool {
	for _, p := range b.Shell {
		if p == key {
			return true
		}
	}
	return false
}
