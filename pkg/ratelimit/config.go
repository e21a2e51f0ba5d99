package ratelimit

import "time"

// Config carries the submission rate policy. The window matches the
// original service contract: N submissions per client per 15 minutes.
type Config struct {
	Limit  int           `env:"RATE_LIMIT_MAX" envDefault:"10"`     // Requests allowed per window.
	Window time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"` // Window length.
}
