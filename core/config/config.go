package config

import (
	"fmt"
	"reflect"
	"strings"

	"ge-sync/core/database"
	"ge-sync/core/lock"
	"ge-sync/core/logger"
	"ge-sync/core/server"
	"ge-sync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage holding exported snapshots.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the inventory database connection.
	Database database.Config `mapstructure:"database"`
	// Redis holds configuration for the optional per-location sync lock.
	Redis lock.Config `mapstructure:"redis"`
	// Sync holds configuration for the reconciliation runs.
	Sync SyncConfig `mapstructure:"sync"`
}

// SyncConfig holds settings for the GE reconciliation engine and its snapshot source.
type SyncConfig struct {
	// BatchSize is the number of rows written per storage batch.
	BatchSize int `mapstructure:"batch_size" default:"500"`
	// CompanyID scopes every run to a single tenant.
	CompanyID string `mapstructure:"company_id" default:"default"`
	// Locations is a comma separated list of locations visited by the scheduler.
	Locations string `mapstructure:"locations" default:""`
	// Schedule is a cron spec for periodic syncs. Empty disables the scheduler.
	Schedule string `mapstructure:"schedule" default:""`
	// Source selects where snapshots are fetched from (storage, http).
	Source string `mapstructure:"source" default:"storage"`
	// SnapshotPrefix is the object prefix under which the scraper writes snapshots.
	SnapshotPrefix string `mapstructure:"snapshot_prefix" default:"snapshots"`
	// HTTPBaseURL is the scraper base URL used when Source is http.
	HTTPBaseURL string `mapstructure:"http_base_url" default:"http://localhost:9090"`
	// HTTPTimeoutSeconds bounds a single snapshot request.
	HTTPTimeoutSeconds int `mapstructure:"http_timeout_seconds" default:"60"`
	// ProductCacheTTLSeconds is how long the model lookup is reused across buckets.
	ProductCacheTTLSeconds int `mapstructure:"product_cache_ttl_seconds" default:"300"`
	// SnapshotMaxAgeMinutes marks a snapshot stale in the integrity check. 0 disables it.
	SnapshotMaxAgeMinutes int `mapstructure:"snapshot_max_age_minutes" default:"1440"`
}

// LocationList returns the configured scheduler locations, trimmed and without blanks.
func (s SyncConfig) LocationList() []string {
	var out []string
	for _, loc := range strings.Split(s.Locations, ",") {
		if loc = strings.TrimSpace(loc); loc != "" {
			out = append(out, loc)
		}
	}
	return out
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SYNC_BATCH_SIZE -> sync.batch_size)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings that would let a run outlive its location lock. Locks are
// never renewed, so the TTL must cover the longest request or scheduled run.
func (c *Config) Validate() error {
	if c.Redis.Addr == "" {
		return nil
	}
	if ttl, budget := c.Redis.TTL(), c.Server.RequestTimeout(); ttl < budget {
		return fmt.Errorf("redis lock ttl %s is shorter than the request timeout %s", ttl, budget)
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
