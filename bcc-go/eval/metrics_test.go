package eval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usptact/BCCWords/bcc-go/crowd"
)

func TestAccuracy(t *testing.T) {
	acc, err := Accuracy([]int{0, 1, 1, 0}, []int{0, 1, 0, -1})
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, acc, 1e-12)
}

func TestAccuracyNoGold(t *testing.T) {
	_, err := Accuracy([]int{0}, []int{-1})
	require.Error(t, err)
}

func TestAccuracyLengthMismatch(t *testing.T) {
	_, err := Accuracy([]int{0}, []int{0, 1})
	require.Error(t, err)
}

func TestConfusionCounts(t *testing.T) {
	counts, err := ConfusionCounts([]int{0, 1, 1, 0}, []int{0, 1, 0, -1}, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 1}, {0, 1}}, counts)
}

func TestROC(t *testing.T) {
	scores := []float64{0.9, 0.8, 0.4, 0.2}
	gold := []int{1, 1, 0, 0}

	points, err := ROC(scores, gold)
	require.NoError(t, err)

	// perfect ranking: straight up, then across
	assert.Equal(t, ROCPoint{FPR: 0, TPR: 0}, points[0])
	assert.Equal(t, ROCPoint{FPR: 0, TPR: 1}, points[2])
	assert.Equal(t, ROCPoint{FPR: 1, TPR: 1}, points[len(points)-1])
	assert.InDelta(t, 1.0, AUC(points), 1e-12)
}

func TestROCTiedScores(t *testing.T) {
	// all scores tied: a single threshold step straight to (1, 1)
	scores := []float64{0.5, 0.5, 0.5, 0.5}
	gold := []int{1, 0, 1, 0}

	points, err := ROC(scores, gold)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, ROCPoint{FPR: 1, TPR: 1}, points[1])
	assert.InDelta(t, 0.5, AUC(points), 1e-12)
}

func TestROCNeedsBothClasses(t *testing.T) {
	_, err := ROC([]float64{0.5, 0.6}, []int{1, 1})
	require.Error(t, err)
}

func TestROCRejectsMulticlass(t *testing.T) {
	_, err := ROC([]float64{0.5, 0.6}, []int{1, 2})
	require.Error(t, err)
}

func evalMapping(t *testing.T) *crowd.Mapping {
	t.Helper()
	records := []crowd.Record{
		{WorkerID: "good", TaskID: "t1", Label: 1, Text: "a", Gold: -1},
		{WorkerID: "good", TaskID: "t2", Label: 0, Text: "b", Gold: -1},
		{WorkerID: "bad", TaskID: "t1", Label: 0, Text: "a", Gold: -1},
		{WorkerID: "bad", TaskID: "t2", Label: 1, Text: "b", Gold: -1},
	}
	m, err := crowd.NewMapping(records, 2)
	require.NoError(t, err)
	return m
}

func TestWorkerStats(t *testing.T) {
	m := evalMapping(t)

	ws, err := WorkerStats(m, []int{1, 0})
	require.NoError(t, err)
	require.Len(t, ws, 2)

	assert.Equal(t, "good", ws[0].WorkerID)
	assert.Equal(t, 2, ws[0].Labeled)
	assert.InDelta(t, 1.0, ws[0].Accuracy, 1e-12)
	assert.InDelta(t, 0.0, ws[1].Accuracy, 1e-12)

	mean, stddev := WorkerAccuracySummary(ws)
	assert.InDelta(t, 0.5, mean, 1e-12)
	assert.InDelta(t, 0.5, stddev, 1e-12)
}

func TestSaveROCPlot(t *testing.T) {
	points := []ROCPoint{{0, 0}, {0, 0.5}, {0.5, 1}, {1, 1}}
	path := filepath.Join(t.TempDir(), "roc.png")

	require.NoError(t, SaveROCPlot(points, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)
}
