package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pevans/sociald/feeds"
)

// Test helper: a scored entry with the given score and source
func scoredEntry(link, source string, score float64) ScoredEntry {
	return ScoredEntry{
		Entry: feeds.Entry{Title: link, Link: link, Source: source},
		Score: score,
	}
}

// TestSelectTopK_PlainTopK verifies the selector takes the top k by score
// even when sources repeat
func TestSelectTopK_PlainTopK(t *testing.T) {
	scored := []ScoredEntry{
		scoredEntry("a", "Feed One", 3.0),
		scoredEntry("b", "Feed One", 2.5),
		scoredEntry("c", "Feed One", 2.0),
		scoredEntry("d", "Feed Two", 1.5),
		scoredEntry("e", "Feed Three", 1.0),
	}

	chosen := SelectTopK(scored, 3)

	require.Len(t, chosen, 3)
	assert.Equal(t, "a", chosen[0].Link)
	assert.Equal(t, "b", chosen[1].Link, "repeated source must not be skipped")
	assert.Equal(t, "c", chosen[2].Link)
}

// TestSelectTopK_KLargerThanInput verifies the whole list is returned when k
// exceeds the input size
func TestSelectTopK_KLargerThanInput(t *testing.T) {
	scored := []ScoredEntry{
		scoredEntry("a", "Feed One", 2.0),
		scoredEntry("b", "Feed Two", 1.0),
	}

	chosen := SelectTopK(scored, 5)

	assert.Len(t, chosen, 2)
}

// TestSelectTopK_EmptyInput verifies empty in, empty out
func TestSelectTopK_EmptyInput(t *testing.T) {
	assert.Empty(t, SelectTopK(nil, 3))
	assert.Empty(t, SelectTopK([]ScoredEntry{}, 3))
}

// TestSelectTopK_ZeroK verifies k <= 0 selects nothing
func TestSelectTopK_ZeroK(t *testing.T) {
	scored := []ScoredEntry{scoredEntry("a", "Feed One", 1.0)}

	assert.Empty(t, SelectTopK(scored, 0))
	assert.Empty(t, SelectTopK(scored, -1))
}

// TestSelectTopK_SingleSource verifies all entries from one source are kept
func TestSelectTopK_SingleSource(t *testing.T) {
	scored := []ScoredEntry{
		scoredEntry("a", "Only Feed", 3.0),
		scoredEntry("b", "Only Feed", 2.0),
		scoredEntry("c", "Only Feed", 1.0),
	}

	chosen := SelectTopK(scored, 3)

	require.Len(t, chosen, 3)
	for i, c := range chosen {
		assert.Equal(t, scored[i].Link, c.Link)
	}
}
