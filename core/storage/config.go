package storage

// Config holds the object store settings. Snapshots exported by the scraper are read
// from Bucket.
type Config struct {
	// Endpoint may include a scheme; it is stripped before dialing.
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	Bucket    string `mapstructure:"bucket" default:"ge-exports"`
	Region    string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds dialing and response headers, not whole downloads.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
