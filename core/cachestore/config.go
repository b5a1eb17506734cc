package cachestore

// Config selects and configures the cache backend.
type Config struct {
	// Driver is the backend: memory, leveldb, sql or s3.
	Driver string `mapstructure:"driver" default:"leveldb" validate:"oneof=memory leveldb sql s3"`
	// Path is the LevelDB directory.
	Path string `mapstructure:"path" default:"data/cache"`
	// Prefix namespaces store names and object keys.
	Prefix string `mapstructure:"prefix" default:"app" validate:"required"`
}

// Names holds the store names derived from a prefix.
type Names struct {
	Content  string
	Staging  string
	Manifest string
}

// NamesFor derives the three store names for prefix.
func NamesFor(prefix string) Names {
	return Names{
		Content:  prefix + "-cache",
		Staging:  prefix + "-temp-cache",
		Manifest: prefix + "-manifest",
	}
}

// All returns the names in teardown order.
func (n Names) All() []string {
	return []string{n.Content, n.Staging, n.Manifest}
}
