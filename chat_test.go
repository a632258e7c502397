package crookedfinger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crookedfinger/crookedfinger-go/internal/testutil"
)

func TestSendMessage_BumpsMirror(t *testing.T) {
	t.Parallel()

	gql := testutil.NewGraphQLServer(t)
	gql.HandleData("Conversations", map[string]any{"conversations": []any{
		conversationData(1, "Granny squares"),
	}})
	gql.HandleData("ChatWithAssistant", map[string]any{"chatWithAssistant": map[string]any{
		"message":    "Start with 6 sc in a magic ring.",
		"diagramSvg": "",
		"diagramPng": "",
		"hasPattern": false,
	}})

	c := newTestClient(t, gql.URL,
		WithToken("tok"),
		WithStateFile(filepath.Join(t.TempDir(), "state")),
	)

	_, err := c.Conversations(context.Background())
	require.NoError(t, err)

	reply, err := c.SendMessage(context.Background(), Message{
		Text:           "How do I start?",
		ConversationID: 1,
	})
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "magic ring")

	mirror := c.Store().Conversations()
	require.Len(t, mirror, 1)
	assert.Equal(t, 3, mirror[0].MessageCount)
	assert.False(t, mirror[0].UpdatedAt.IsZero())
}

func TestTranslatePattern_PrefersBackend(t *testing.T) {
	t.Parallel()

	gql := testutil.NewGraphQLServer(t)
	gql.HandleData("TranslatePattern", map[string]any{"translatePattern": map[string]any{
		"originalPattern":        "6 sc",
		"translatedInstructions": "Make six single crochet stitches.",
		"analysis": map[string]any{
			"totalRounds":        1,
			"patternType":        "rounds",
			"estimatedSize":      "small (< 3 inches)",
			"stitchCountByRound": []any{6},
		},
	}})

	c := newTestClient(t, gql.URL, WithToken("tok"))

	tr, err := c.TranslatePattern(context.Background(), "6 sc", "")
	require.NoError(t, err)
	assert.Equal(t, "Make six single crochet stitches.", tr.TranslatedInstructions)
	assert.NotContains(t, tr.TranslatedInstructions, "Basic translation")
}

func TestTranslatePattern_FallsBackWhenAssistantDown(t *testing.T) {
	t.Parallel()

	gql := testutil.NewGraphQLServer(t)
	gql.HandleErrors("TranslatePattern", "AI service unavailable")

	c := newTestClient(t, gql.URL, WithToken("tok"))

	text := "Rnd 1: 6 sc in magic ring\nRnd 2: inc in each st around"
	tr, err := c.TranslatePattern(context.Background(), text, "")
	require.NoError(t, err)

	assert.Equal(t, text, tr.OriginalPattern)
	assert.Contains(t, tr.TranslatedInstructions, "Basic translation (AI not available)")
	assert.Contains(t, tr.TranslatedInstructions, "single crochet")
	assert.Equal(t, 2, tr.Analysis.TotalRounds)
	assert.Equal(t, "circular", tr.Analysis.PatternType)
}

func TestTranslatePattern_AuthErrorsSurface(t *testing.T) {
	t.Parallel()

	gql := testutil.NewGraphQLServer(t)
	gql.HandleErrors("TranslatePattern", "Not authenticated")

	c := newTestClient(t, gql.URL)

	tr, err := c.TranslatePattern(context.Background(), "6 sc", "")
	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.Nil(t, tr)
}
