// Package config provides configuration management for the GE sync service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults live next to each field in a `default` struct tag.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: inventory database connection (mysql, postgres, sqlite)
//   - Storage: S3/MinIO bucket holding scraper snapshots
//   - Redis: optional per-location sync lock
//   - Sync: batch size, schedule, snapshot source and tenant scope
//   - Log: logging level, format and optional file
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.BatchSize)
package config
