package lock

import "time"

// Config holds the redis connection used for per-location sync locks.
// An empty Addr disables locking.
type Config struct {
	Addr           string `mapstructure:"addr" default:""`
	Password       string `mapstructure:"password" default:""`
	DB             int    `mapstructure:"db" default:"0"`
	LockTTLSeconds int    `mapstructure:"lock_ttl_seconds" default:"900"`
}

// TTL returns the lock expiry, falling back to 15 minutes.
func (c Config) TTL() time.Duration {
	if c.LockTTLSeconds <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.LockTTLSeconds) * time.Second
}
