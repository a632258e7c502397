package blobcache

// Metrics receives cache events. Implementations must be safe for
// concurrent use.
type Metrics interface {
	// Hit is called when Cached or Fetch serves an existing entry.
	Hit()

	// Miss is called when a lookup finds no live entry.
	Miss()

	// Eviction is called when a full cache drops its least-used entry.
	Eviction()

	// Expiration is called when an entry is removed because its TTL
	// elapsed, whether by the sweeper or a lookup.
	Expiration()

	// FetchError is called when a download or materialization fails.
	FetchError()
}

// NopMetrics discards all events.
type NopMetrics struct{}

func (NopMetrics) Hit()        {}
func (NopMetrics) Miss()       {}
func (NopMetrics) Eviction()   {}
func (NopMetrics) Expiration() {}
func (NopMetrics) FetchError() {}

var _ Metrics = NopMetrics{}
