package crookedfinger

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/crookedfinger/crookedfinger-go/blobcache"
	"github.com/crookedfinger/crookedfinger-go/blobcache/disk"
)

// Option configures a Client.
type Option func(*Client) error

// --- Transport Options ---

// WithHTTPClient sets the HTTP client used for both API calls and
// attachment downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) error {
		if client != nil {
			c.httpClient = client
		}
		return nil
	}
}

// WithUserAgent sets the User-Agent header for backend requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}

// --- Session Options ---

// WithToken installs a session token obtained elsewhere. A later Login
// replaces it.
func WithToken(token string) Option {
	return func(c *Client) error {
		c.tokens.set(token)
		return nil
	}
}

// WithStateFile persists the session and the conversation mirror to
// path. Parent directories are created as needed; an unreadable file
// is discarded rather than blocking startup.
func WithStateFile(path string) Option {
	return func(c *Client) error {
		if path == "" {
			return errors.New("state file path is empty")
		}
		c.statePath = path
		return nil
	}
}

// --- Attachment Cache Options ---

// WithAttachmentDir caches downloaded attachments as files under dir.
// Extra options tune capacity, TTL, and sweep cadence:
//
//	crookedfinger.WithAttachmentDir(dir,
//	    blobcache.WithCapacity(50),
//	    blobcache.WithTTL(time.Hour),
//	)
func WithAttachmentDir(dir string, opts ...blobcache.Option) Option {
	return func(c *Client) error {
		hs, err := disk.New(dir)
		if err != nil {
			return err
		}
		c.cacheStore = hs
		c.cacheOpts = append(c.cacheOpts, opts...)
		return nil
	}
}

// WithAttachmentStore caches attachments in a custom [blobcache.HandleStore].
// Import github.com/crookedfinger/crookedfinger-go/blobcache/memory for
// the in-memory implementation.
func WithAttachmentStore(hs blobcache.HandleStore, opts ...blobcache.Option) Option {
	return func(c *Client) error {
		if hs == nil {
			return errors.New("attachment store is nil")
		}
		c.cacheStore = hs
		c.cacheOpts = append(c.cacheOpts, opts...)
		return nil
	}
}

// WithAttachmentMetrics records cache events, e.g. with a
// blobcache/prom collector. Has no effect unless an attachment store
// is configured.
func WithAttachmentMetrics(m blobcache.Metrics) Option {
	return func(c *Client) error {
		if m != nil {
			c.cacheOpts = append(c.cacheOpts, blobcache.WithMetrics(m))
		}
		return nil
	}
}

// --- Logging ---

// WithLogger sets the logger, propagated to the API client, the
// attachment cache, and the state store. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}
