package crookedfinger

import (
	"context"

	"github.com/crookedfinger/crookedfinger-go/display"
)

// Attachment resolves url through the attachment cache, downloading on
// the first use. On any failure, or without a cache configured, the
// url comes back unchanged so it can be handed straight to whatever
// displays it.
func (c *Client) Attachment(ctx context.Context, url string) string {
	if c.cache == nil {
		return url
	}
	return c.cache.Fetch(ctx, url)
}

// IsAttachmentCached reports whether url is cached and fresh.
func (c *Client) IsAttachmentCached(url string) bool {
	if c.cache == nil {
		return false
	}
	return c.cache.IsCached(url)
}

// PreloadAttachments warms the cache with the first few urls in the
// background. Failures are dropped; Attachment settles them later.
func (c *Client) PreloadAttachments(ctx context.Context, urls []string) {
	if c.cache == nil {
		return
	}
	c.cache.Preload(ctx, urls)
}

// InvalidateAttachment drops url's cached copy.
func (c *Client) InvalidateAttachment(url string) {
	if c.cache == nil {
		return
	}
	c.cache.Invalidate(url)
}

// ClearAttachments drops every cached attachment.
func (c *Client) ClearAttachments() {
	if c.cache == nil {
		return
	}
	c.cache.Clear()
}

// AttachmentStats reports cache occupancy.
func (c *Client) AttachmentStats() Stats {
	if c.cache == nil {
		return Stats{}
	}
	return c.cache.Stats()
}

// Viewer binds url to renderer through the attachment cache. The
// returned resource renders the cached copy and retries once from the
// source if that copy cannot be displayed.
func (c *Client) Viewer(url string, renderer display.Renderer) *display.Resource {
	var opts []display.Option
	if c.logger != nil {
		opts = append(opts, display.WithLogger(c.logger))
	}
	var cache display.Cache
	if c.cache != nil {
		cache = c.cache
	}
	return display.NewResource(url, cache, renderer, opts...)
}
