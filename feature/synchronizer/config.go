package synchronizer

// Config holds configuration for the synchronizer.
type Config struct {
	// Origin is the absolute origin of the application (e.g. https://app.example.com).
	Origin string `mapstructure:"origin" default:"http://localhost:8081" validate:"required,url"`
	// ManifestPath is the build manifest file (JSON or YAML).
	ManifestPath string `mapstructure:"manifest_path" default:"build/manifest.json" validate:"required"`
	// Watch reloads the build manifest and runs an update when the file changes.
	Watch bool `mapstructure:"watch" default:"false"`
	// UpdateOnStart runs install and activate when the daemon starts.
	UpdateOnStart bool `mapstructure:"update_on_start" default:"true"`
	// Concurrency limits parallel fetches during install and offline sync.
	Concurrency int `mapstructure:"concurrency" default:"8" validate:"gte=1"`
	// FetchTimeoutSeconds bounds connection setup and header wait for origin fetches.
	FetchTimeoutSeconds int `mapstructure:"fetch_timeout_seconds" default:"30" validate:"gte=1"`
	// UserAgent is sent with every origin fetch.
	UserAgent string `mapstructure:"user_agent" default:"asset-sync"`
}
