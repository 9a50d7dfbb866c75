package languagemodel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usptact/BCCWords/bcc-golib/text"
)

func TestScorerPosteriorSumsToOne(t *testing.T) {
	docs := []string{
		"loving this gorgeous sunny weather",
		"sunshine all weekend long",
		"flooded roads and thunder again",
		"thunder ruined the picnic",
	}
	classes := []int{0, 0, 1, 1}

	lms, err := TrainScorer(docs, classes, 2, text.Tokenize)
	require.NoError(t, err)

	posterior := lms.Posterior([]string{"thunder"})
	require.Len(t, posterior, 2)

	var total float64
	for _, p := range posterior {
		total += p
	}
	assert.InDelta(t, 1.0, total, 1e-9)
	assert.True(t, posterior[1] > posterior[0], "thunder should look like class 1")
}

func TestScorerClassify(t *testing.T) {
	docs := []string{
		"loving this gorgeous sunny weather",
		"sunshine all weekend long",
		"flooded roads and thunder again",
		"thunder ruined the picnic",
	}
	classes := []int{0, 0, 1, 1}

	lms, err := TrainScorer(docs, classes, 2, text.Tokenize)
	require.NoError(t, err)

	assert.Equal(t, 0, lms.Classify("what a sunny afternoon"))
	assert.Equal(t, 1, lms.Classify("more thunder and flooded streets"))
}

func TestScorerClassOutOfRange(t *testing.T) {
	_, err := TrainScorer([]string{"a doc"}, []int{3}, 2, text.Tokenize)
	require.Error(t, err)
}

func TestScorerLengthMismatch(t *testing.T) {
	_, err := TrainScorer([]string{"a doc"}, nil, 2, text.Tokenize)
	require.Error(t, err)
}

func TestLogSumExp(t *testing.T) {
	logs := []float64{math.Log(0.25), math.Log(0.5), math.Log(0.25)}
	assert.InDelta(t, 0.0, logSumExp(logs), 1e-9)
}
