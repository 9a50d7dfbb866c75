package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("@mike loving the sunshine in #seattle today! http://t.co/abc123")
	require.Len(t, tokens, 6)

	assert.Equal(t, "loving", tokens[0])
	assert.Equal(t, "the", tokens[1])
	assert.Equal(t, "sunshine", tokens[2])
	assert.Equal(t, "in", tokens[3])
	assert.Equal(t, "seattle", tokens[4])
	assert.Equal(t, "today", tokens[5])
}

func TestTokenizeKeepsContractions(t *testing.T) {
	tokens := Tokenize("weren't we lucky?")
	require.Len(t, tokens, 3)
	assert.Equal(t, "weren't", tokens[0])
}

func TestFeatureProcessor(t *testing.T) {
	tokens := FeatureProcessor.Apply(Tokenize("The rain is RAINING again"))
	// "the", "is", "again" are stop words; both rain forms stem to "rain"
	require.Len(t, tokens, 2)
	assert.Equal(t, "rain", tokens[0])
	assert.Equal(t, "rain", tokens[1])
}

func TestVocabTermProcessor(t *testing.T) {
	tokens := VocabTermProcessor.Apply(Tokenize("rain rain go away"))
	require.Len(t, tokens, 3)
	assert.Equal(t, Tokens{"rain", "go", "awai"}, tokens)
}

func TestUniquify(t *testing.T) {
	tokens := Uniquify(Tokens{"a", "b", "a", "c", "b"})
	assert.Equal(t, Tokens{"a", "b", "c"}, tokens)
}
