package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usptact/BCCWords/bcc-go/crowd"
)

func TestTopWords(t *testing.T) {
	p := &Posterior{
		WordProb: [][]float64{
			{5, 2, 1},
			{1, 1, 6},
		},
	}
	vocab := []string{"sunni", "cloud", "flood"}

	top := p.TopWords(vocab, 2)
	require.Len(t, top, 2)
	require.Len(t, top[0], 2)

	assert.Equal(t, "sunni", top[0][0].Term)
	assert.InDelta(t, math.Log(5.0/8.0), top[0][0].LogProb, 1e-9)
	assert.Equal(t, "cloud", top[0][1].Term)

	assert.Equal(t, "flood", top[1][0].Term)
}

func TestTopWordsNilWithoutWords(t *testing.T) {
	p := &Posterior{}
	assert.Nil(t, p.TopWords(nil, 5))
}

func TestMAPAndAccuracy(t *testing.T) {
	p := &Posterior{
		TrueLabel: [][]float64{
			{0.9, 0.1},
			{0.3, 0.7},
			{0.6, 0.4},
		},
	}
	assert.Equal(t, []int{0, 1, 0}, p.MAP())

	assert.InDelta(t, 1.0, p.Accuracy([]int{0, 1, -1}), 1e-12)
	assert.InDelta(t, 0.5, p.Accuracy([]int{0, 0, -1}), 1e-12)
	assert.Equal(t, 0.0, p.Accuracy([]int{-1, -1, -1}))
}

func TestFromMapping(t *testing.T) {
	records := []crowd.Record{
		{WorkerID: "w1", TaskID: "t1", Label: 0, Text: "sunny day", Gold: -1},
		{WorkerID: "w2", TaskID: "t1", Label: 0, Text: "sunny day", Gold: -1},
		{WorkerID: "w1", TaskID: "t2", Label: 1, Text: "flooded roads", Gold: -1},
	}
	m, err := crowd.NewMapping(records, 2)
	require.NoError(t, err)
	require.NoError(t, m.AttachWords([][]int{{0}, {1}}, 2))

	d := FromMapping(m)
	assert.Equal(t, m.LabelsPerWorker, d.LabelsPerWorker)
	assert.Equal(t, []int{1, 1}, d.WordCountPerTask)
	assert.Nil(t, d.TrueLabels)

	clamped := d.Clamp([]int{0, -1})
	assert.Equal(t, []int{0, -1}, clamped.TrueLabels)
	assert.Nil(t, d.TrueLabels, "Clamp must not mutate the receiver")
}

func TestSnapshotIsACopy(t *testing.T) {
	mdl, err := New(3, 2, 0, Options{NumClasses: 2, NumIterations: 5})
	require.NoError(t, err)

	p := mustInfer(t, mdl, splitVoteData())
	before := p.TrueLabel[0][1]

	// a second run must not alias the first posterior's arrays
	_ = mustInfer(t, mdl, splitVoteData())
	assert.Equal(t, before, p.TrueLabel[0][1])
}
