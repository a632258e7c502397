package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCircularPattern(t *testing.T) {
	t.Parallel()

	text := `Tiny sphere
Rnd 1: 6 sc in magic ring (6 sts)
Rnd 2: inc in each st around (12 sts)
Rnd 3: *sc, inc* rep 6 times (18 sts)`

	a := Analyze(text)
	assert.Equal(t, 3, a.TotalRounds)
	assert.Equal(t, "circular", a.PatternType)
	assert.Equal(t, "small (< 3 inches)", a.EstimatedSize)

	require.Len(t, a.Rounds, 3)
	assert.Equal(t, 1, a.Rounds[0].Number)
	assert.Equal(t, 3, a.Rounds[2].Number)

	// Counting walks the expressions in order: explicit "N sc" first,
	// then "(N sts)" totals, with repeat counts taking precedence over
	// parenthesized totals on the same line.
	assert.Equal(t, []int{6, 12, 6}, a.StitchCountByRound())
}

func TestAnalyzeRowPattern(t *testing.T) {
	t.Parallel()

	text := `Row 1: ch 20, dc in each ch across
Row 2: turn, dc in each dc across`

	a := Analyze(text)
	assert.Equal(t, 2, a.TotalRounds)
	assert.Equal(t, "rows", a.PatternType)
	assert.Equal(t, 20, a.Rounds[0].Stitches)

	// No numbers on the second row: fall back to counting stitch
	// tokens.
	assert.Equal(t, 2, a.Rounds[1].Stitches)
}

func TestAnalyzeSizeBuckets(t *testing.T) {
	t.Parallel()

	medium := Analyze("Round 1: 60 sc\nRound 2: 60 sc")
	assert.Equal(t, "medium (3-6 inches)", medium.EstimatedSize)
	assert.Equal(t, "rounds", medium.PatternType)

	large := Analyze("Round 1: 150 dc\nRound 2: 150 dc")
	assert.Equal(t, "large (> 6 inches)", large.EstimatedSize)
}

func TestAnalyzeEmptyText(t *testing.T) {
	t.Parallel()

	a := Analyze("just some prose about yarn")
	assert.Equal(t, 0, a.TotalRounds)
	assert.Equal(t, "unknown", a.PatternType)
	assert.Equal(t, "unknown", a.EstimatedSize)
	assert.Empty(t, a.StitchCountByRound())
}
