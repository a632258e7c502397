package crookedfinger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crookedfinger/crookedfinger-go/blobcache"
	"github.com/crookedfinger/crookedfinger-go/internal/testutil"
)

func newTestClient(t *testing.T, endpoint string, opts ...Option) *Client {
	t.Helper()

	c, err := NewClient(endpoint, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func userData(email string) map[string]any {
	return map[string]any{
		"id":         7,
		"email":      email,
		"isActive":   true,
		"isVerified": true,
		"isAdmin":    false,
		"createdAt":  "2025-03-04T10:30:00",
		"updatedAt":  "2025-03-04T10:30:00",
		"lastLogin":  nil,
	}
}

func sessionData(email, token string) map[string]any {
	return map[string]any{
		"user":        userData(email),
		"accessToken": token,
		"tokenType":   "bearer",
	}
}

func conversationData(id int, title string) map[string]any {
	return map[string]any{
		"id":           id,
		"title":        title,
		"userId":       7,
		"createdAt":    "2025-03-04T10:30:00",
		"updatedAt":    "2025-03-04T10:30:00",
		"messageCount": 2,
	}
}

func TestNewClient_RequiresEndpoint(t *testing.T) {
	t.Parallel()

	_, err := NewClient("")
	require.Error(t, err)
}

func TestWithStateFile_RejectsEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := NewClient("https://api.example.com/graphql", WithStateFile(""))
	require.Error(t, err)
}

func TestWithAttachmentStore_RejectsNil(t *testing.T) {
	t.Parallel()

	_, err := NewClient("https://api.example.com/graphql", WithAttachmentStore(nil))
	require.Error(t, err)
}

func TestNewClient_StateFileCreatesParents(t *testing.T) {
	t.Parallel()

	gql := testutil.NewGraphQLServer(t)
	path := filepath.Join(t.TempDir(), "nested", "dir", "state")

	c := newTestClient(t, gql.URL, WithStateFile(path))
	require.NotNil(t, c.Store())
	require.NoError(t, c.Store().SetToken("tok"))
	assert.FileExists(t, path)
}

func TestNewClient_WithTokenAuthorizesCalls(t *testing.T) {
	t.Parallel()

	gql := testutil.NewGraphQLServer(t)
	gql.HandleData("Conversations", map[string]any{"conversations": []any{}})

	c := newTestClient(t, gql.URL, WithToken("tok-static"))

	_, err := c.Conversations(context.Background())
	require.NoError(t, err)

	calls := gql.Calls("Conversations")
	require.Len(t, calls, 1)
	assert.Equal(t, "tok-static", calls[0].Token)
}

func TestNewClient_AttachmentDirBuildsDiskCache(t *testing.T) {
	t.Parallel()

	gql := testutil.NewGraphQLServer(t)
	files, _ := newAttachmentServer(t)

	c := newTestClient(t, gql.URL, WithAttachmentDir(t.TempDir(), blobcache.WithCapacity(5)))
	require.NotNil(t, c.Attachments())

	url := files.URL + "/squares.pdf"
	handle := c.Attachment(context.Background(), url)
	require.NotEqual(t, url, handle)
	assert.FileExists(t, handle)
}

func TestClose_ReleasesEverything(t *testing.T) {
	t.Parallel()

	gql := testutil.NewGraphQLServer(t)
	files, _ := newAttachmentServer(t)
	statePath := filepath.Join(t.TempDir(), "state")

	c, err := NewClient(gql.URL,
		WithStateFile(statePath),
		WithAttachmentDir(t.TempDir()),
	)
	require.NoError(t, err)

	handle := c.Attachment(context.Background(), files.URL+"/bear.pdf")
	require.FileExists(t, handle)
	require.NoError(t, c.Store().SetToken("tok"))

	require.NoError(t, c.Close())
	assert.NoFileExists(t, handle)
	assert.FileExists(t, statePath)
}
