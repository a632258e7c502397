package blobcache

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Cache.
type Option func(*Cache)

// WithCapacity sets the maximum number of entries before eviction kicks
// in. Defaults to DefaultCapacity.
func WithCapacity(n int) Option {
	return func(c *Cache) {
		c.capacity = n
	}
}

// WithTTL sets how long an entry stays valid after insertion.
// Defaults to DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithSweepInterval sets how often the background sweeper scans for
// expired entries. Defaults to DefaultSweepInterval.
func WithSweepInterval(interval time.Duration) Option {
	return func(c *Cache) {
		c.sweepInterval = interval
	}
}

// WithHTTPClient sets the client used to download attachments.
// Defaults to http.DefaultClient.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Cache) {
		if client != nil {
			c.client = client
		}
	}
}

// WithLogger sets the logger for cache operations. By default nothing
// is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics hook. Defaults to NopMetrics.
func WithMetrics(m Metrics) Option {
	return func(c *Cache) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithClock overrides the time source used for TTL checks.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}
