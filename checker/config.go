package checker

import "time"

// DefaultUserAgent identifies the checker to the servers it probes.
const DefaultUserAgent = "mdlinkcheck/1.0"

// Config holds link checker configuration.
type Config struct {
	Timeout   time.Duration // Bound on each individual HTTP attempt (default 10s)
	Workers   int           // Probes in flight at once (default 16)
	UserAgent string        // Sent with every request
	RateLimit int           // Requests per second across all workers; 0 disables
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:   10 * time.Second,
		Workers:   16,
		UserAgent: DefaultUserAgent,
	}
}

// withDefaults fills zero values from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	return c
}
