// Package eval computes accuracy, confusion and ROC summaries for
// label predictions against gold labels.
package eval

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/usptact/BCCWords/bcc-go/crowd"
	"github.com/usptact/BCCWords/bcc-golib/errors"
)

// Accuracy is the fraction of gold-labeled tasks predicted correctly.
// Tasks with gold < 0 are skipped.
func Accuracy(preds, gold []int) (float64, error) {
	if len(preds) != len(gold) {
		return 0, errors.Errorf("got %d predictions but %d gold labels", len(preds), len(gold))
	}
	var correct, total int
	for n, g := range gold {
		if g < 0 {
			continue
		}
		total++
		if preds[n] == g {
			correct++
		}
	}
	if total == 0 {
		return 0, errors.Errorf("no gold labels to evaluate against")
	}
	return float64(correct) / float64(total), nil
}

// ConfusionCounts tabulates counts[gold][predicted] over gold-labeled
// tasks.
func ConfusionCounts(preds, gold []int, numClasses int) ([][]int, error) {
	if len(preds) != len(gold) {
		return nil, errors.Errorf("got %d predictions but %d gold labels", len(preds), len(gold))
	}
	counts := make([][]int, numClasses)
	for i := range counts {
		counts[i] = make([]int, numClasses)
	}
	for n, g := range gold {
		if g < 0 {
			continue
		}
		if g >= numClasses || preds[n] < 0 || preds[n] >= numClasses {
			return nil, errors.Errorf("task %d: labels (%d, %d) out of range [0, %d)", n, g, preds[n], numClasses)
		}
		counts[g][preds[n]]++
	}
	return counts, nil
}

// ROCPoint is one (false positive rate, true positive rate) pair.
type ROCPoint struct {
	FPR float64
	TPR float64
}

// ROC builds the binary ROC curve for class 1 from per-task scores
// (e.g. posterior probability of class 1) by sweeping a threshold over
// the distinct score values, descending. Tasks with gold < 0 are
// skipped.
func ROC(scores []float64, gold []int) ([]ROCPoint, error) {
	if len(scores) != len(gold) {
		return nil, errors.Errorf("got %d scores but %d gold labels", len(scores), len(gold))
	}

	type labeled struct {
		score float64
		pos   bool
	}
	var items []labeled
	var pos, neg int
	for n, g := range gold {
		switch g {
		case -1:
			continue
		case 0:
			neg++
		case 1:
			pos++
		default:
			return nil, errors.Errorf("task %d: ROC needs binary gold labels, got %d", n, g)
		}
		items = append(items, labeled{score: scores[n], pos: g == 1})
	}
	if pos == 0 || neg == 0 {
		return nil, errors.Errorf("ROC needs both positive and negative gold labels (%d pos, %d neg)", pos, neg)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].score > items[j].score })

	points := []ROCPoint{{FPR: 0, TPR: 0}}
	var tp, fp int
	for i, it := range items {
		if it.pos {
			tp++
		} else {
			fp++
		}
		// only emit a point when the threshold actually moves
		if i+1 < len(items) && items[i+1].score == it.score {
			continue
		}
		points = append(points, ROCPoint{
			FPR: float64(fp) / float64(neg),
			TPR: float64(tp) / float64(pos),
		})
	}
	return points, nil
}

// AUC integrates an ROC curve with the trapezoid rule.
func AUC(points []ROCPoint) float64 {
	var area float64
	for i := 1; i < len(points); i++ {
		dx := points[i].FPR - points[i-1].FPR
		area += dx * (points[i].TPR + points[i-1].TPR) / 2
	}
	return area
}

// WorkerStat summarizes one worker against reference labels.
type WorkerStat struct {
	WorkerID string
	Labeled  int
	Accuracy float64
}

// WorkerStats scores every worker's labels against the reference
// labels (typically the inferred MAP labels or gold).
func WorkerStats(m *crowd.Mapping, reference []int) ([]WorkerStat, error) {
	if len(reference) != m.NumTasks() {
		return nil, errors.Errorf("got %d reference labels for %d tasks", len(reference), m.NumTasks())
	}
	out := make([]WorkerStat, m.NumWorkers())
	for k := 0; k < m.NumWorkers(); k++ {
		labels := m.LabelsPerWorker.Row(k)
		tasks := m.TaskIndicesPerWorker.Row(k)
		var correct int
		for i, n := range tasks {
			if labels[i] == reference[n] {
				correct++
			}
		}
		out[k] = WorkerStat{
			WorkerID: m.WorkerIDs[k],
			Labeled:  len(labels),
			Accuracy: float64(correct) / float64(len(labels)),
		}
	}
	return out, nil
}

// WorkerAccuracySummary returns the mean and standard deviation of the
// per-worker accuracies.
func WorkerAccuracySummary(ws []WorkerStat) (mean, stddev float64) {
	accs := make([]float64, len(ws))
	for i, w := range ws {
		accs[i] = w.Accuracy
	}
	mean, _ = stats.Mean(accs)
	stddev, _ = stats.StandardDeviation(accs)
	return mean, stddev
}
