package tfidf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usptact/BCCWords/bcc-golib/text"
)

func trainedScorer() *Scorer {
	corpus := []string{
		"storm flood",
		"storm rain",
		"storm storm",
	}
	return TrainScorer(corpus, text.Tokenize)
}

func TestScorerCorpus(t *testing.T) {
	s := trainedScorer()
	require.Len(t, s.Corpus, 3)
	assert.Equal(t, []string{"storm", "flood"}, s.Corpus[0])
	assert.Equal(t, []string{"storm", "storm"}, s.Corpus[2])
}

func TestTermScores(t *testing.T) {
	s := trainedScorer()
	scores := s.TermScores()

	// "storm" appears in every doc, so its idf weight is zero
	assert.InDelta(t, 0, scores["storm"], 1e-12)
	assert.InDelta(t, 0.5*math.Log10(3), scores["flood"], 1e-12)
	assert.InDelta(t, 0.5*math.Log10(3), scores["rain"], 1e-12)
}

func TestTopTerms(t *testing.T) {
	s := trainedScorer()

	top := s.TopTerms(0)
	require.Len(t, top, 3)
	// flood and rain tie; lexicographic order breaks it
	assert.Equal(t, "flood", top[0].Term)
	assert.Equal(t, "rain", top[1].Term)
	assert.Equal(t, "storm", top[2].Term)

	assert.Len(t, s.TopTerms(1), 1)
}

func TestDocFrequencies(t *testing.T) {
	s := trainedScorer()
	df := s.DocFrequencies()
	assert.Equal(t, 3, df["storm"])
	assert.Equal(t, 1, df["flood"])
	assert.Equal(t, 1, df["rain"])
}

func TestDocNorms(t *testing.T) {
	s := trainedScorer()
	require.Len(t, s.Norm, 3)
	assert.InDelta(t, 0.5*math.Log10(3), s.Norm[0], 1e-12)
	// every term in the last doc has zero idf weight
	assert.InDelta(t, 0, s.Norm[2], 1e-12)
}

func TestL2Normalize(t *testing.T) {
	out := L2Normalize([]float64{1, 4})
	norm := math.Sqrt(17)
	assert.InDelta(t, 1/norm, out[0], 1e-12)
	assert.InDelta(t, 4/norm, out[1], 1e-12)

	zero := []float64{0, 0}
	assert.Equal(t, zero, L2Normalize(zero))
}
