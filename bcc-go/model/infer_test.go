package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usptact/BCCWords/bcc-go/crowd"
)

// three workers, two tasks: unanimous label 1 on task 0, a 2-1 split
// on task 1
func splitVoteData() Data {
	return Data{
		LabelsPerWorker:      crowd.NewRagged([][]int{{1, 1}, {1, 1}, {1, 0}}),
		TaskIndicesPerWorker: crowd.NewRagged([][]int{{0, 1}, {0, 1}, {0, 1}}),
	}
}

func mustInfer(t *testing.T, m *Model, d Data) *Posterior {
	t.Helper()
	p, err := m.Infer(d)
	require.NoError(t, err)
	return p
}

func TestInferAgreementBeatsSplit(t *testing.T) {
	m, err := New(3, 2, 0, Options{NumClasses: 2, InitialWorkerBelief: 0.7})
	require.NoError(t, err)

	p := mustInfer(t, m, splitVoteData())

	preds := p.MAP()
	assert.Equal(t, 1, preds[0])
	assert.Equal(t, 1, preds[1])
	assert.True(t, p.TrueLabel[0][1] > p.TrueLabel[1][1],
		"unanimous task should be more confident than the split task: %v vs %v",
		p.TrueLabel[0][1], p.TrueLabel[1][1])
}

func TestInferResponsibilitiesSumToOne(t *testing.T) {
	m, err := New(3, 2, 0, Options{NumClasses: 2})
	require.NoError(t, err)

	p := mustInfer(t, m, splitVoteData())

	for n, dist := range p.TrueLabel {
		var total float64
		for _, q := range dist {
			total += q
		}
		assert.InDelta(t, 1.0, total, 1e-6, "task %d", n)
	}
}

func TestInferConfusionMeansSumToOne(t *testing.T) {
	m, err := New(3, 2, 0, Options{NumClasses: 2})
	require.NoError(t, err)

	p := mustInfer(t, m, splitVoteData())

	for k := 0; k < 3; k++ {
		for c, row := range p.ConfusionMean(k) {
			var total float64
			for _, v := range row {
				total += v
			}
			assert.InDelta(t, 1.0, total, 1e-6, "worker %d row %d", k, c)
		}
	}
}

func TestInferReliableSingleWorker(t *testing.T) {
	// one worker whose labels agree with the converged true labels
	d := Data{
		LabelsPerWorker:      crowd.NewRagged([][]int{{0, 1, 0, 1}}),
		TaskIndicesPerWorker: crowd.NewRagged([][]int{{0, 1, 2, 3}}),
	}
	m, err := New(1, 4, 0, Options{NumClasses: 2, InitialWorkerBelief: 0.9})
	require.NoError(t, err)

	p := mustInfer(t, m, d)

	conf := p.ConfusionMean(0)
	for c := range conf {
		for j := range conf[c] {
			if j == c {
				assert.True(t, conf[c][j] > 0.8, "diagonal entry (%d,%d) = %v", c, j, conf[c][j])
			} else {
				assert.True(t, conf[c][j] < 0.2, "off-diagonal entry (%d,%d) = %v", c, j, conf[c][j])
			}
		}
	}
}

func TestInferAllSameLabel(t *testing.T) {
	d := Data{
		LabelsPerWorker:      crowd.NewRagged([][]int{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}),
		TaskIndicesPerWorker: crowd.NewRagged([][]int{{0, 1, 2, 3}, {0, 1, 2, 3}, {0, 1, 2, 3}}),
	}
	m, err := New(3, 4, 0, Options{NumClasses: 2})
	require.NoError(t, err)

	p := mustInfer(t, m, d)

	bg := p.BackgroundMean()
	assert.True(t, bg[0] > 0.8, "background should concentrate at class 0, got %v", bg)
	assert.Equal(t, []int{0, 0, 0, 0}, p.MAP())
}

func TestInferEvidenceMonotone(t *testing.T) {
	d := splitVoteData()
	d.WordIndicesPerTask = crowd.NewRagged([][]int{{0, 1, 0}, {2, 2}})
	d.WordCountPerTask = []int{3, 2}

	m, err := New(3, 2, 3, Options{NumClasses: 2, NumIterations: 25})
	require.NoError(t, err)

	p := mustInfer(t, m, d)
	require.Len(t, p.EvidenceTrace, 25)
	for i := 1; i < len(p.EvidenceTrace); i++ {
		assert.True(t, p.EvidenceTrace[i] >= p.EvidenceTrace[i-1]-1e-6,
			"evidence decreased at sweep %d: %v -> %v", i, p.EvidenceTrace[i-1], p.EvidenceTrace[i])
	}
	assert.Equal(t, p.EvidenceTrace[len(p.EvidenceTrace)-1], p.Evidence)
}

func TestInferWordsSharpenLabels(t *testing.T) {
	// the split task shares its words with the unanimous task, which
	// should pull it further toward label 1 than votes alone
	d := splitVoteData()
	d.WordIndicesPerTask = crowd.NewRagged([][]int{{0, 1}, {0, 1}})
	d.WordCountPerTask = []int{2, 2}

	mWords, err := New(3, 2, 2, Options{NumClasses: 2})
	require.NoError(t, err)
	mVotes, err := New(3, 2, 0, Options{NumClasses: 2})
	require.NoError(t, err)

	withWords := mustInfer(t, mWords, d)
	votesOnly := mustInfer(t, mVotes, splitVoteData())

	assert.True(t, withWords.TrueLabel[1][1] > votesOnly.TrueLabel[1][1],
		"shared words should raise the split task's label-1 mass: %v vs %v",
		withWords.TrueLabel[1][1], votesOnly.TrueLabel[1][1])
}

func TestInferZeroWordTask(t *testing.T) {
	d := splitVoteData()
	d.WordIndicesPerTask = crowd.NewRagged([][]int{{0, 1}, nil})
	d.WordCountPerTask = []int{2, 0}

	m, err := New(3, 2, 2, Options{NumClasses: 2})
	require.NoError(t, err)

	p := mustInfer(t, m, d)

	var total float64
	for _, q := range p.TrueLabel[1] {
		total += q
	}
	assert.InDelta(t, 1.0, total, 1e-6)
	assert.Equal(t, 1, p.MAP()[1], "vote pathway alone should still drive the label")
}

func TestInferClampedLabels(t *testing.T) {
	d := splitVoteData().Clamp([]int{1, -1})

	m, err := New(3, 2, 0, Options{NumClasses: 2})
	require.NoError(t, err)

	p := mustInfer(t, m, d)

	assert.Equal(t, []float64{0, 1}, p.TrueLabel[0], "clamped task stays a point mass")
	assert.True(t, p.TrueLabel[1][1] > 0.5)
}

func TestInferWordPosteriorsSumToOne(t *testing.T) {
	d := splitVoteData()
	d.WordIndicesPerTask = crowd.NewRagged([][]int{{0, 1, 1}, {2}})
	d.WordCountPerTask = []int{3, 1}

	m, err := New(3, 2, 3, Options{NumClasses: 2})
	require.NoError(t, err)

	p := mustInfer(t, m, d)

	for c, alpha := range p.WordProb {
		mean := dirichletMean(alpha)
		var total float64
		for _, v := range mean {
			total += v
		}
		assert.InDelta(t, 1.0, total, 1e-6, "class %d", c)
	}
}

func TestInferStructuralErrors(t *testing.T) {
	m, err := New(3, 2, 0, Options{NumClasses: 2})
	require.NoError(t, err)

	// task index out of range
	d := Data{
		LabelsPerWorker:      crowd.NewRagged([][]int{{1}, {1}, {0}}),
		TaskIndicesPerWorker: crowd.NewRagged([][]int{{0}, {1}, {7}}),
	}
	_, err = m.Infer(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data integrity")

	// mismatched pair lengths
	d = Data{
		LabelsPerWorker:      crowd.NewRagged([][]int{{1, 0}, {1}, {0}}),
		TaskIndicesPerWorker: crowd.NewRagged([][]int{{0}, {1}, {1}}),
	}
	_, err = m.Infer(d)
	require.Error(t, err)

	// label out of class range
	d = Data{
		LabelsPerWorker:      crowd.NewRagged([][]int{{5}, {1}, {0}}),
		TaskIndicesPerWorker: crowd.NewRagged([][]int{{0}, {1}, {1}}),
	}
	_, err = m.Infer(d)
	require.Error(t, err)
}

func TestInferWrongWorkerCount(t *testing.T) {
	m, err := New(4, 2, 0, Options{NumClasses: 2})
	require.NoError(t, err)

	_, err = m.Infer(splitVoteData())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers")
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := New(1, 1, 0, Options{NumClasses: 1})
	require.Error(t, err)

	_, err = New(1, 1, 0, Options{NumClasses: 2, InitialWorkerBelief: 1.5})
	require.Error(t, err)

	_, err = New(0, 1, 0, Options{NumClasses: 2})
	require.Error(t, err)

	_, err = New(1, 1, 0, Options{NumClasses: 2, NumIterations: -1})
	require.Error(t, err)

	// a pool with no workers would block Wait forever, so this must
	// fail at construction
	_, err = New(1, 1, 0, Options{NumClasses: 2, Parallelism: -1})
	require.Error(t, err)
}

func TestConfusionPriorDiagonal(t *testing.T) {
	m, err := New(1, 1, 0, Options{NumClasses: 5, InitialWorkerBelief: 0.9})
	require.NoError(t, err)

	// diag = b/(1-b) * (C-1) = 9 * 4 = 36
	assert.InDelta(t, 36.0, m.confusionPrior[2][2], 1e-9)
	assert.InDelta(t, 1.0, m.confusionPrior[2][3], 1e-9)
}
