// Package blobcache provides a TTL-bounded attachment cache for remote
// resources such as pattern PDFs and chart images.
//
// The cache downloads a resource once, materializes the bytes as a local
// handle through a HandleStore, and serves that handle until the entry
// expires or is evicted. Lookups never fail: when a download or
// materialization goes wrong the original key is returned unchanged so
// callers can fall back to direct network access.
//
// Eviction is frequency-based. When the cache is full the entry with the
// lowest access count is dropped, regardless of how recently it was used.
// A background sweeper started with Start removes expired entries between
// lookups; Close stops the sweeper and releases every live handle.
package blobcache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/errgroup"
)

// Defaults applied by New when no option overrides them.
const (
	DefaultCapacity      = 20
	DefaultTTL           = 30 * time.Minute
	DefaultSweepInterval = 5 * time.Minute

	// PreloadLimit caps how many keys a single Preload call warms.
	PreloadLimit = 5
)

// HandleStore materializes fetched content as local handles. A handle is
// an opaque reference (file path, in-memory URL) that stays valid until
// Release is called with it.
type HandleStore interface {
	// Materialize stores content fetched for key and returns a handle
	// for it. Handles are never reused while live.
	Materialize(key string, content []byte) (string, error)

	// Release frees the resources behind a handle. Releasing an unknown
	// handle is not an error.
	Release(handle string) error
}

// Stats is a point-in-time snapshot of cache usage.
type Stats struct {
	// Size is the number of live entries.
	Size int

	// TotalAccessCount is the sum of every entry's access count.
	TotalAccessCount int64
}

type entry struct {
	handle      string
	insertedAt  time.Time
	accessCount int64
	dgst        digest.Digest
	size        int64
}

// Cache maps remote keys (URLs) to locally materialized handles.
//
// All methods are safe for concurrent use. The internal lock is never
// held across network fetches, so two goroutines missing on the same key
// may both download it; the loser releases its handle and adopts the
// winner's entry.
type Cache struct {
	store   HandleStore
	client  *http.Client
	logger  *slog.Logger
	metrics Metrics
	now     func() time.Time

	capacity      int
	ttl           time.Duration
	sweepInterval time.Duration

	mu      sync.Mutex
	entries map[string]*entry
	stop    chan struct{}
	done    chan struct{}

	preloads sync.WaitGroup
}

// New creates a cache backed by store. The sweeper is not running until
// Start is called.
func New(store HandleStore, opts ...Option) (*Cache, error) {
	if store == nil {
		return nil, errors.New("blobcache: handle store is nil")
	}

	c := &Cache{
		store:         store,
		client:        http.DefaultClient,
		metrics:       NopMetrics{},
		now:           time.Now,
		capacity:      DefaultCapacity,
		ttl:           DefaultTTL,
		sweepInterval: DefaultSweepInterval,
		entries:       make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.capacity < 1 {
		return nil, errors.New("blobcache: capacity must be at least 1")
	}
	if c.ttl <= 0 {
		return nil, errors.New("blobcache: ttl must be positive")
	}
	if c.sweepInterval <= 0 {
		return nil, errors.New("blobcache: sweep interval must be positive")
	}
	return c, nil
}

func (c *Cache) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// Start launches the background sweeper. Calling Start on a cache that
// is already running is a no-op.
func (c *Cache) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return
	}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.sweep(c.stop, c.done)
}

// Close stops the sweeper, waits for outstanding preloads, and releases
// every live handle. The cache must not be used after Close.
func (c *Cache) Close() error {
	c.mu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
	c.preloads.Wait()
	c.Clear()
	return nil
}

func (c *Cache) sweep(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.purgeExpired()
		case <-stop:
			return
		}
	}
}

func (c *Cache) purgeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if c.expiredLocked(e) {
			c.removeLocked(key, e, "expired")
			c.metrics.Expiration()
		}
	}
}

// IsCached reports whether key has a live, unexpired entry. An expired
// entry found here is removed immediately rather than waiting for the
// sweeper. The access count is not touched.
func (c *Cache) IsCached(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	if c.expiredLocked(e) {
		c.removeLocked(key, e, "expired")
		c.metrics.Expiration()
		return false
	}
	return true
}

// Cached returns the handle for key if a live entry exists, bumping its
// access count.
func (c *Cache) Cached(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		c.metrics.Miss()
		return "", false
	}
	if c.expiredLocked(e) {
		c.removeLocked(key, e, "expired")
		c.metrics.Expiration()
		c.metrics.Miss()
		return "", false
	}
	e.accessCount++
	c.metrics.Hit()
	return e.handle, true
}

// Fetch returns a local handle for key, downloading and caching the
// content on a miss. On any failure the key itself is returned so the
// caller can use the remote resource directly.
func (c *Cache) Fetch(ctx context.Context, key string) string {
	if handle, ok := c.Cached(key); ok {
		return handle
	}

	content, dgst, err := c.download(ctx, key)
	if err != nil {
		c.metrics.FetchError()
		c.log().Debug("attachment fetch failed", "key", key, "err", err)
		return key
	}

	handle, err := c.store.Materialize(key, content)
	if err != nil {
		c.metrics.FetchError()
		c.log().Warn("materialize attachment failed", "key", key, "err", err)
		return key
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[key]; ok {
		if !c.expiredLocked(existing) {
			// Lost a same-key race. Keep the first entry and drop ours.
			if err := c.store.Release(handle); err != nil {
				c.log().Warn("release attachment handle", "key", key, "err", err)
			}
			existing.accessCount++
			return existing.handle
		}
		c.removeLocked(key, existing, "expired")
		c.metrics.Expiration()
	}

	for len(c.entries) >= c.capacity {
		c.evictLocked()
	}
	c.entries[key] = &entry{
		handle:      handle,
		insertedAt:  c.now(),
		accessCount: 1,
		dgst:        dgst,
		size:        int64(len(content)),
	}
	c.log().Debug("attachment cached", "key", key, "digest", dgst, "bytes", len(content))
	return handle
}

// Invalidate removes key's entry and releases its handle, if present.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		c.removeLocked(key, e, "invalidated")
	}
}

// Clear removes every entry and releases all handles.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		c.removeLocked(key, e, "cleared")
	}
}

// Preload warms the cache with up to PreloadLimit keys. It returns
// immediately; the downloads run concurrently in the background and
// failures are discarded. Close waits for outstanding preloads.
func (c *Cache) Preload(ctx context.Context, keys []string) {
	if len(keys) > PreloadLimit {
		keys = keys[:PreloadLimit]
	}
	batch := append([]string(nil), keys...)

	c.preloads.Add(1)
	go func() {
		defer c.preloads.Done()
		g, gctx := errgroup.WithContext(ctx)
		for _, key := range batch {
			g.Go(func() error {
				c.Fetch(gctx, key)
				return nil
			})
		}
		_ = g.Wait() // warm-up is best effort
	}()
}

// Stats returns a snapshot of the current cache usage.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Stats{Size: len(c.entries)}
	for _, e := range c.entries {
		s.TotalAccessCount += e.accessCount
	}
	return s
}

func (c *Cache) expiredLocked(e *entry) bool {
	return c.now().Sub(e.insertedAt) >= c.ttl
}

// evictLocked drops the entry with the lowest access count. Ties are
// broken arbitrarily by map iteration order.
func (c *Cache) evictLocked() {
	var victim string
	var victimEntry *entry
	for key, e := range c.entries {
		if victimEntry == nil || e.accessCount < victimEntry.accessCount {
			victim, victimEntry = key, e
		}
	}
	if victimEntry == nil {
		return
	}
	c.removeLocked(victim, victimEntry, "evicted")
	c.metrics.Eviction()
}

// removeLocked releases the entry's handle before dropping it from the
// map, so a failed release is at worst a leaked handle, never a dangling
// entry.
func (c *Cache) removeLocked(key string, e *entry, reason string) {
	if err := c.store.Release(e.handle); err != nil {
		c.log().Warn("release attachment handle", "key", key, "err", err)
	}
	delete(c.entries, key)
	c.log().Debug("attachment dropped", "key", key, "reason", reason)
}

func (c *Cache) download(ctx context.Context, url string) ([]byte, digest.Digest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	return content, digest.FromBytes(content), nil
}
