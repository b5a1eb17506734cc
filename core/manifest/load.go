package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a build manifest from disk. Files ending in .yaml or .yml are
// parsed as YAML, everything else as JSON. The build is validated before it
// is returned.
func Load(path string) (*Build, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read build manifest %s: %w", path, err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes a build manifest. ext selects the format (".yaml", ".yml" or JSON).
func Parse(data []byte, ext string) (*Build, error) {
	var b Build
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("failed to parse yaml build manifest: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("failed to parse json build manifest: %w", err)
		}
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}
