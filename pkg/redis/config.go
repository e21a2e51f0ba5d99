package redis

import "time"

type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`                              // Connection URL in the form "redis://:password@host:6379/0". Empty disables Redis-backed features.
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`    // Number of connection attempts before giving up.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`   // Delay between connection attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"` // Overall budget for establishing the connection.
}

// Enabled reports whether a Redis connection is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
