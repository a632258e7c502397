package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crookedfinger/crookedfinger-go/internal/testutil"
)

func TestTranscript(t *testing.T) {
	t.Parallel()

	srv := testutil.NewGraphQLServer(t)
	srv.HandleData("YoutubeTranscript", map[string]any{
		"youtubeTranscript": map[string]any{
			"success":        true,
			"videoId":        "dQw4w9WgXcQ",
			"transcript":     "today we crochet a whale",
			"wordCount":      5,
			"language":       "en",
			"thumbnailUrl":   "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
			"thumbnailUrlHq": "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
			"error":          nil,
		},
	})

	c, err := New(srv.URL)
	require.NoError(t, err)

	transcript, err := c.Transcript(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.True(t, transcript.Success)
	assert.Equal(t, "dQw4w9WgXcQ", transcript.VideoID)
	assert.Equal(t, 5, transcript.WordCount)

	calls := srv.Calls("YoutubeTranscript")
	require.Len(t, calls, 1)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", calls[0].Vars["videoUrl"])

	_, err = c.Transcript(context.Background(), "")
	require.Error(t, err)
}

func TestExtractPatternFromVideo(t *testing.T) {
	t.Parallel()

	srv := testutil.NewGraphQLServer(t)
	srv.HandleData("ExtractPatternFromVideo", map[string]any{
		"extractPatternFromVideo": map[string]any{
			"success":             true,
			"patternName":         "Tiny Whale",
			"patternNotation":     "Rnd 1: 6 sc in magic ring",
			"patternInstructions": "Start with a magic ring...",
			"difficultyLevel":     "intermediate",
			"materials":           "worsted yarn, 4mm hook",
			"estimatedTime":       "3 hours",
			"videoId":             "dQw4w9WgXcQ",
			"thumbnailUrl":        "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
			"error":               nil,
		},
	})

	c, err := New(srv.URL)
	require.NoError(t, err)

	pattern, err := c.ExtractPatternFromVideo(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.True(t, pattern.Success)
	assert.Equal(t, "Tiny Whale", pattern.PatternName)
	assert.Equal(t, "intermediate", pattern.DifficultyLevel)
}
