package crookedfinger

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/crookedfinger/crookedfinger-go/api"
	"github.com/crookedfinger/crookedfinger-go/blobcache"
	"github.com/crookedfinger/crookedfinger-go/store"
)

// Client is the high-level entry point for the Crooked Finger backend.
//
// Client owns the GraphQL API client plus two optional local
// subsystems: the attachment cache (started on construction, stopped
// on [Client.Close]) and the state file. Methods are safe for
// concurrent use.
type Client struct {
	api    *api.Client
	cache  *blobcache.Cache
	state  *store.Store
	tokens *tokenHolder
	logger *slog.Logger

	// Construction state collected by options.
	httpClient *http.Client
	userAgent  string
	statePath  string
	cacheStore blobcache.HandleStore
	cacheOpts  []blobcache.Option
}

// NewClient connects to a backend GraphQL endpoint.
//
// Without [WithStateFile] the session lives in memory only; without
// [WithAttachmentDir] or [WithAttachmentStore] attachment URLs pass
// through uncached.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	c := &Client{tokens: &tokenHolder{}}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.statePath != "" {
		st, err := store.Open(c.statePath, store.WithLogger(c.logger))
		if err != nil {
			return nil, fmt.Errorf("open state file: %w", err)
		}
		c.state = st
		c.tokens.state = st
	}

	apiOpts := []api.Option{api.WithTokenSource(c.tokens)}
	if c.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(c.httpClient))
	}
	if c.userAgent != "" {
		apiOpts = append(apiOpts, api.WithUserAgent(c.userAgent))
	}
	if c.logger != nil {
		apiOpts = append(apiOpts, api.WithLogger(c.logger))
	}

	apiClient, err := api.New(endpoint, apiOpts...)
	if err != nil {
		if c.state != nil {
			_ = c.state.Close()
		}
		return nil, err
	}
	c.api = apiClient

	if c.cacheStore != nil {
		cacheOpts := []blobcache.Option{}
		if c.httpClient != nil {
			cacheOpts = append(cacheOpts, blobcache.WithHTTPClient(c.httpClient))
		}
		if c.logger != nil {
			cacheOpts = append(cacheOpts, blobcache.WithLogger(c.logger))
		}
		cacheOpts = append(cacheOpts, c.cacheOpts...)

		cache, err := blobcache.New(c.cacheStore, cacheOpts...)
		if err != nil {
			if c.state != nil {
				_ = c.state.Close()
			}
			return nil, err
		}
		cache.Start()
		c.cache = cache
	}

	return c, nil
}

// Close stops the attachment cache, releasing every cached handle, and
// closes the state file.
func (c *Client) Close() error {
	var firstErr error
	if c.cache != nil {
		if err := c.cache.Close(); err != nil {
			firstErr = err
		}
	}
	if c.state != nil {
		if err := c.state.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// API exposes the full backend surface, including projects, usage
// dashboards, and video transcripts.
func (c *Client) API() *api.Client {
	return c.api
}

// Attachments exposes the underlying cache, or nil when no attachment
// option was set.
func (c *Client) Attachments() *blobcache.Cache {
	return c.cache
}

// Store exposes the state file, or nil when [WithStateFile] was not
// set.
func (c *Client) Store() *store.Store {
	return c.state
}

func (c *Client) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// tokenHolder resolves the session token: an explicit token first,
// then whatever the state file has. Login writes both.
type tokenHolder struct {
	mu    sync.Mutex
	token string
	state *store.Store
}

var _ api.TokenSource = (*tokenHolder)(nil)

func (h *tokenHolder) Token() (string, bool) {
	h.mu.Lock()
	token := h.token
	h.mu.Unlock()
	if token != "" {
		return token, true
	}
	if h.state != nil {
		return h.state.Token()
	}
	return "", false
}

func (h *tokenHolder) set(token string) {
	h.mu.Lock()
	h.token = token
	h.mu.Unlock()
}

func (h *tokenHolder) clear() {
	h.set("")
}
