package crookedfinger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crookedfinger/crookedfinger-go/blobcache/memory"
	"github.com/crookedfinger/crookedfinger-go/display"
	"github.com/crookedfinger/crookedfinger-go/internal/testutil"
)

func newAttachmentServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 " + r.URL.Path))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

type prefixFailRenderer struct {
	mu         sync.Mutex
	failPrefix string
	refs       []string
}

func (r *prefixFailRenderer) Render(_ context.Context, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refs = append(r.refs, ref)
	if r.failPrefix != "" && strings.HasPrefix(ref, r.failPrefix) {
		return errors.New("renderer: unsupported ref")
	}
	return nil
}

func (r *prefixFailRenderer) rendered() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.refs...)
}

func TestAttachment_CachesDownloads(t *testing.T) {
	t.Parallel()

	files, hits := newAttachmentServer(t)
	gql := testutil.NewGraphQLServer(t)

	c := newTestClient(t, gql.URL, WithAttachmentStore(memory.New()))

	url := files.URL + "/patterns/bear.pdf"
	handle := c.Attachment(context.Background(), url)
	require.NotEqual(t, url, handle)
	assert.True(t, strings.HasPrefix(handle, "mem://"))

	again := c.Attachment(context.Background(), url)
	assert.Equal(t, handle, again)
	assert.Equal(t, int64(1), hits.Load())
	assert.True(t, c.IsAttachmentCached(url))

	stats := c.AttachmentStats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, int64(2), stats.TotalAccessCount)

	c.InvalidateAttachment(url)
	assert.False(t, c.IsAttachmentCached(url))
}

func TestAttachment_WithoutCachePassesThrough(t *testing.T) {
	t.Parallel()

	gql := testutil.NewGraphQLServer(t)
	c := newTestClient(t, gql.URL)

	url := "https://cdn.example/p.pdf"
	assert.Equal(t, url, c.Attachment(context.Background(), url))
	assert.False(t, c.IsAttachmentCached(url))

	// All cache operations are safe no-ops.
	c.PreloadAttachments(context.Background(), []string{url})
	c.InvalidateAttachment(url)
	c.ClearAttachments()
	assert.Equal(t, Stats{}, c.AttachmentStats())
	assert.Nil(t, c.Attachments())
}

func TestPreloadAttachments_WarmsCache(t *testing.T) {
	t.Parallel()

	files, hits := newAttachmentServer(t)
	gql := testutil.NewGraphQLServer(t)

	c := newTestClient(t, gql.URL, WithAttachmentStore(memory.New()))

	c.PreloadAttachments(context.Background(), []string{
		files.URL + "/a.pdf",
		files.URL + "/b.pdf",
	})

	require.Eventually(t, func() bool {
		return c.AttachmentStats().Size == 2
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(2), hits.Load())
}

func TestViewer_RetriesFromSourceOnRenderFailure(t *testing.T) {
	t.Parallel()

	files, _ := newAttachmentServer(t)
	gql := testutil.NewGraphQLServer(t)

	c := newTestClient(t, gql.URL, WithAttachmentStore(memory.New()))

	url := files.URL + "/patterns/shawl.pdf"
	renderer := &prefixFailRenderer{failPrefix: "mem://"}
	viewer := c.Viewer(url, renderer)

	require.NoError(t, viewer.Show(context.Background()))
	assert.Equal(t, display.StateCached, viewer.State())

	refs := renderer.rendered()
	require.Len(t, refs, 2)
	assert.True(t, strings.HasPrefix(refs[0], "mem://"))
	assert.Equal(t, url, refs[1])

	// The stale copy was dropped on retry.
	assert.False(t, c.IsAttachmentCached(url))
}

func TestViewer_WithoutCacheRendersSource(t *testing.T) {
	t.Parallel()

	gql := testutil.NewGraphQLServer(t)
	c := newTestClient(t, gql.URL)

	renderer := &prefixFailRenderer{}
	viewer := c.Viewer("https://cdn.example/p.pdf", renderer)

	require.NoError(t, viewer.Show(context.Background()))
	assert.Equal(t, []string{"https://cdn.example/p.pdf"}, renderer.rendered())
}
