// Package display drives cached attachments through a renderer,
// retrying once against the original source when the cached copy fails
// to render.
package display

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// State is where a resource sits in its render lifecycle.
type State int

const (
	StateLoading State = iota
	StateCached
	StateRetrying
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateCached:
		return "cached"
	case StateRetrying:
		return "retrying"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Renderer shows a resource to the user. ref is a local handle or a
// remote URL; renderers must accept both.
type Renderer interface {
	Render(ctx context.Context, ref string) error
}

// Cache is the slice of the attachment cache a resource needs.
type Cache interface {
	Fetch(ctx context.Context, key string) string
	Invalidate(key string)
}

// Resource renders one attachment URL.
//
// A cached copy that fails to render gets exactly one retry, straight
// from the original URL with the cache entry invalidated. The retry
// budget never refills for the lifetime of the Resource, so a bad
// source cannot loop.
type Resource struct {
	url      string
	cache    Cache
	renderer Renderer
	logger   *slog.Logger

	mu      sync.Mutex
	state   State
	retried bool
	err     error
}

// Option configures a Resource.
type Option func(*Resource)

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resource) {
		r.logger = logger
	}
}

// NewResource binds url to a cache and a renderer. cache may be nil to
// render straight from the source.
func NewResource(url string, cache Cache, renderer Renderer, opts ...Option) *Resource {
	r := &Resource{
		url:      url,
		cache:    cache,
		renderer: renderer,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resource) log() *slog.Logger {
	if r.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.logger
}

// State returns the current lifecycle state.
func (r *Resource) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Err returns the error that drove the resource to StateFailed.
func (r *Resource) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Show resolves the resource through the cache and renders it. On a
// render failure the cache entry is dropped and the original URL gets
// one direct attempt.
func (r *Resource) Show(ctx context.Context) error {
	if r.renderer == nil {
		err := errors.New("display: renderer is nil")
		r.setState(StateFailed, err)
		return err
	}

	r.setState(StateLoading, nil)
	ref := r.url
	if r.cache != nil {
		ref = r.cache.Fetch(ctx, r.url)
	}
	r.setState(StateCached, nil)

	err := r.renderer.Render(ctx, ref)
	if err == nil {
		return nil
	}

	r.mu.Lock()
	if r.retried {
		r.state = StateFailed
		r.err = err
		r.mu.Unlock()
		return err
	}
	r.retried = true
	r.state = StateRetrying
	r.mu.Unlock()
	r.log().Debug("render failed, retrying from source", "url", r.url, "err", err)

	if r.cache != nil {
		r.cache.Invalidate(r.url)
	}
	if retryErr := r.renderer.Render(ctx, r.url); retryErr != nil {
		r.setState(StateFailed, retryErr)
		return retryErr
	}
	r.setState(StateCached, nil)
	return nil
}

func (r *Resource) setState(s State, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = s
	r.err = err
}
