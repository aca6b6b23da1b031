package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// RequestTimeoutSeconds bounds a single sync request, including every bucket of a unified run.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" default:"300"`
}

const defaultRequestTimeout = 300 * time.Second

// RequestTimeout returns the configured request budget, falling back to five minutes.
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
