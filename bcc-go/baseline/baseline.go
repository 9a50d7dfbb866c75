// Package baseline provides the non-Bayesian reference labelers the
// inferred posteriors are compared against.
package baseline

import (
	"math/rand"

	"github.com/usptact/BCCWords/bcc-go/crowd"
)

// MajorityVote labels each task with its most voted class. Ties
// resolve to the lowest class index so the result is deterministic.
func MajorityVote(m *crowd.Mapping) []int {
	counts := make([][]int, m.NumTasks())
	for n := range counts {
		counts[n] = make([]int, m.NumClasses)
	}
	for k := 0; k < m.NumWorkers(); k++ {
		labels := m.LabelsPerWorker.Row(k)
		tasks := m.TaskIndicesPerWorker.Row(k)
		for i, n := range tasks {
			counts[n][labels[i]]++
		}
	}

	preds := make([]int, m.NumTasks())
	for n, cs := range counts {
		best := 0
		for c, count := range cs {
			if count > cs[best] {
				best = c
			}
		}
		preds[n] = best
	}
	return preds
}

// Random assigns each task a uniformly drawn class from the given
// seed.
func Random(m *crowd.Mapping, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	preds := make([]int, m.NumTasks())
	for n := range preds {
		preds[n] = rng.Intn(m.NumClasses)
	}
	return preds
}
