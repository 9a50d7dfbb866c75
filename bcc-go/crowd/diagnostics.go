package crowd

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Warning flags a degenerate but workable property of the dataset. The
// caller decides whether to proceed; inference itself is not blocked.
type Warning struct {
	Code    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// imbalance ratio above which a warning is raised
const imbalanceThreshold = 20.0

// Diagnostics scans the mapping for degenerate-data conditions: a lone
// worker or task, zero label diversity, severe class imbalance, and
// (once words are attached) tasks with an empty extracted vocabulary.
func (m *Mapping) Diagnostics() []Warning {
	var warnings []Warning

	if m.NumWorkers() == 1 {
		warnings = append(warnings, Warning{
			Code:    "single-worker",
			Message: "dataset has a single worker; confusion estimates will track that worker's bias",
		})
	}
	if m.NumTasks() == 1 {
		warnings = append(warnings, Warning{
			Code:    "single-task",
			Message: "dataset has a single task",
		})
	}

	counts := make([]float64, m.NumClasses)
	var distinct int
	for _, l := range m.LabelsPerWorker.Data {
		if counts[l] == 0 {
			distinct++
		}
		counts[l]++
	}
	if distinct == 1 {
		warnings = append(warnings, Warning{
			Code:    "no-label-diversity",
			Message: "every observed worker label is identical",
		})
	} else {
		var observed []float64
		for _, c := range counts {
			if c > 0 {
				observed = append(observed, c)
			}
		}
		max, _ := stats.Max(observed)
		min, _ := stats.Min(observed)
		if min > 0 && max/min > imbalanceThreshold {
			warnings = append(warnings, Warning{
				Code:    "class-imbalance",
				Message: fmt.Sprintf("observed label frequencies are severely imbalanced (max/min ratio %.1f)", max/min),
			})
		}
	}

	if m.WordIndicesPerTask.Len() > 0 {
		var empty int
		for n := 0; n < m.NumTasks(); n++ {
			if m.WordIndicesPerTask.RowLen(n) == 0 {
				empty++
			}
		}
		if empty > 0 {
			warnings = append(warnings, Warning{
				Code:    "empty-vocabulary-tasks",
				Message: fmt.Sprintf("%d of %d tasks have no in-vocabulary words", empty, m.NumTasks()),
			})
		}
	}

	return warnings
}

// Summary captures dataset-level counts for reporting.
type Summary struct {
	Workers          int
	Tasks            int
	Judgements       int
	GoldTasks        int
	MeanVotesPerTask float64
	AgreementRate    float64
}

// Summarize computes vote counts and the consensus rate over
// multiply-labeled tasks.
func (m *Mapping) Summarize() Summary {
	s := Summary{
		Workers:    m.NumWorkers(),
		Tasks:      m.NumTasks(),
		Judgements: len(m.LabelsPerWorker.Data),
	}
	for _, g := range m.Gold {
		if g >= 0 {
			s.GoldTasks++
		}
	}

	votes := make([][]int, m.NumTasks())
	for k := 0; k < m.NumWorkers(); k++ {
		tasks := m.TaskIndicesPerWorker.Row(k)
		labels := m.LabelsPerWorker.Row(k)
		for i, n := range tasks {
			votes[n] = append(votes[n], labels[i])
		}
	}

	var multi, agree int
	var perTask []float64
	for _, vs := range votes {
		perTask = append(perTask, float64(len(vs)))
		if len(vs) < 2 {
			continue
		}
		multi++
		allSame := true
		for _, v := range vs[1:] {
			if v != vs[0] {
				allSame = false
				break
			}
		}
		if allSame {
			agree++
		}
	}
	s.MeanVotesPerTask, _ = stats.Mean(perTask)
	if multi > 0 {
		s.AgreementRate = float64(agree) / float64(multi)
	}
	return s
}
