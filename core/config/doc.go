// Package config provides configuration management for asset-sync.
//
// It loads an optional .env file with godotenv and reads environment
// variables through Viper. Defaults come from the `default` struct tags,
// bound recursively by reflection, and nested keys map to variables by
// replacing dots with underscores (sync.origin -> SYNC_ORIGIN).
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, gateway toggle
//   - Sync: origin, build manifest path, watcher, fetch concurrency and timeouts
//   - Cache: backend driver (memory, leveldb, sql, s3), LevelDB path, store prefix
//   - Storage: S3/MinIO credentials and bucket for the s3 backend
//   - Database: MySQL or SQLite connection for the sql backend
//   - Log: logging level and format
//
// The loaded configuration is checked with go-playground/validator using the
// `validate` struct tags.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.Origin)
package config
