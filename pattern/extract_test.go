package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLabeledSections(t *testing.T) {
	t.Parallel()

	text := `Great video! Here is what I found.

NAME: Tiny Whale
NOTATION: Rnd 1: 6 sc in magic ring
Rnd 2: inc around
INSTRUCTIONS: Start with a magic ring.
Work 6 single crochet into it.
DIFFICULTY: intermediate
MATERIALS: worsted yarn, 4mm hook
TIME: 3 hours`

	e, ok := Extract(text)
	require.True(t, ok)
	assert.Equal(t, "Tiny Whale", e.Name)
	assert.Equal(t, "Rnd 1: 6 sc in magic ring\nRnd 2: inc around", e.Notation)
	assert.Equal(t, "Start with a magic ring.\nWork 6 single crochet into it.", e.Instructions)
	assert.Equal(t, "intermediate", e.Difficulty)
	assert.Equal(t, "worsted yarn, 4mm hook", e.Materials)
	assert.Equal(t, "3 hours", e.Time)
}

func TestExtractMarkdownDecoration(t *testing.T) {
	t.Parallel()

	text := `**NAME:** Granny Square
**DIFFICULTY:** beginner`

	e, ok := Extract(text)
	require.True(t, ok)
	assert.Equal(t, "Granny Square", e.Name)
	assert.Equal(t, "beginner", e.Difficulty)
	assert.Empty(t, e.Notation)
}

func TestExtractLabelAtStart(t *testing.T) {
	t.Parallel()

	e, ok := Extract("NAME: Coaster")
	require.True(t, ok)
	assert.Equal(t, "Coaster", e.Name)
}

func TestExtractNothing(t *testing.T) {
	t.Parallel()

	_, ok := Extract("Sorry, I could not find a pattern in this video.")
	assert.False(t, ok)
}
