package crookedfinger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crookedfinger/crookedfinger-go/internal/testutil"
)

func TestConversations_RefreshesMirror(t *testing.T) {
	t.Parallel()

	gql := testutil.NewGraphQLServer(t)
	gql.HandleData("Conversations", map[string]any{"conversations": []any{
		conversationData(1, "Granny squares"),
		conversationData(2, "Amigurumi bear"),
	}})

	c := newTestClient(t, gql.URL,
		WithToken("tok"),
		WithStateFile(filepath.Join(t.TempDir(), "state")),
	)

	list, err := c.Conversations(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	mirror := c.Store().Conversations()
	require.Len(t, mirror, 2)
	assert.Equal(t, "Granny squares", mirror[0].Title)
}

func TestConversations_FallsBackToMirror(t *testing.T) {
	t.Parallel()

	gql := testutil.NewGraphQLServer(t)
	gql.HandleData("Conversations", map[string]any{"conversations": []any{
		conversationData(1, "Granny squares"),
	}})

	c := newTestClient(t, gql.URL,
		WithToken("tok"),
		WithStateFile(filepath.Join(t.TempDir(), "state")),
	)

	first, err := c.Conversations(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	gql.HandleErrors("Conversations", "internal error")

	list, err := c.Conversations(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Granny squares", list[0].Title)
}

func TestConversations_AuthFailureNotMasked(t *testing.T) {
	t.Parallel()

	gql := testutil.NewGraphQLServer(t)
	gql.HandleData("Conversations", map[string]any{"conversations": []any{
		conversationData(1, "Granny squares"),
	}})

	c := newTestClient(t, gql.URL,
		WithToken("tok"),
		WithStateFile(filepath.Join(t.TempDir(), "state")),
	)

	_, err := c.Conversations(context.Background())
	require.NoError(t, err)

	gql.HandleErrors("Conversations", "Not authenticated")

	list, err := c.Conversations(context.Background())
	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.Nil(t, list)
}

func TestConversations_ErrorWithoutMirrorPropagates(t *testing.T) {
	t.Parallel()

	gql := testutil.NewGraphQLServer(t)
	gql.HandleErrors("Conversations", "internal error")

	// A state file exists but was never populated; there is nothing to
	// fall back to.
	c := newTestClient(t, gql.URL,
		WithToken("tok"),
		WithStateFile(filepath.Join(t.TempDir(), "state")),
	)

	_, err := c.Conversations(context.Background())
	require.Error(t, err)
}

func TestConversationMutations_KeepMirrorClose(t *testing.T) {
	t.Parallel()

	gql := testutil.NewGraphQLServer(t)
	gql.HandleData("Conversations", map[string]any{"conversations": []any{
		conversationData(1, "Granny squares"),
	}})

	c := newTestClient(t, gql.URL,
		WithToken("tok"),
		WithStateFile(filepath.Join(t.TempDir(), "state")),
	)

	_, err := c.Conversations(context.Background())
	require.NoError(t, err)

	gql.HandleData("CreateConversation", map[string]any{
		"createConversation": conversationData(2, "Amigurumi bear"),
	})
	created, err := c.CreateConversation(context.Background(), "Amigurumi bear")
	require.NoError(t, err)
	assert.Equal(t, 2, created.ID)

	mirror := c.Store().Conversations()
	require.Len(t, mirror, 2)
	assert.Equal(t, 2, mirror[0].ID)

	gql.HandleData("UpdateConversation", map[string]any{
		"updateConversation": conversationData(2, "Bear pattern"),
	})
	_, err = c.UpdateConversation(context.Background(), 2, "Bear pattern")
	require.NoError(t, err)

	mirror = c.Store().Conversations()
	require.Len(t, mirror, 2)
	assert.Equal(t, "Bear pattern", mirror[0].Title)

	gql.HandleData("DeleteConversation", map[string]any{"deleteConversation": true})
	require.NoError(t, c.DeleteConversation(context.Background(), 2))

	mirror = c.Store().Conversations()
	require.Len(t, mirror, 1)
	assert.Equal(t, 1, mirror[0].ID)
}
