package model

import (
	"github.com/usptact/BCCWords/bcc-go/crowd"
	"github.com/usptact/BCCWords/bcc-golib/errors"
)

// Data is the inference input: ragged per-worker label assignments,
// ragged per-task word occurrences, and optional clamped true labels.
type Data struct {
	// LabelsPerWorker and TaskIndicesPerWorker are paired rows, one
	// row per worker.
	LabelsPerWorker      crowd.Ragged
	TaskIndicesPerWorker crowd.Ragged

	// WordIndicesPerTask holds vocabulary indices per task; leave
	// zero-valued for the words-free model variant.
	WordIndicesPerTask crowd.Ragged
	// WordCountPerTask mirrors the row lengths of WordIndicesPerTask.
	WordCountPerTask []int

	// TrueLabels clamps q(TrueLabel) to a point mass where >= 0;
	// -1 leaves the task latent. nil clamps nothing.
	TrueLabels []int
}

// FromMapping assembles inference inputs from a crowd mapping. Gold
// labels are NOT clamped; use Clamp or set TrueLabels explicitly for
// the semi-supervised mode.
func FromMapping(m *crowd.Mapping) Data {
	d := Data{
		LabelsPerWorker:      m.LabelsPerWorker,
		TaskIndicesPerWorker: m.TaskIndicesPerWorker,
	}
	if m.VocabSize > 0 {
		d.WordIndicesPerTask = m.WordIndicesPerTask
		d.WordCountPerTask = m.WordCountPerTask()
	}
	return d
}

// Clamp returns a copy of d with the given true labels clamped.
func (d Data) Clamp(trueLabels []int) Data {
	d.TrueLabels = trueLabels
	return d
}

// validateData runs the structural-integrity checks before any sweep:
// every failure here is fatal and costs no inference time.
func (m *Model) validateData(d Data) error {
	if d.LabelsPerWorker.Len() != m.numWorkers {
		return errors.Errorf("labelsPerWorker has %d rows, model declared %d workers",
			d.LabelsPerWorker.Len(), m.numWorkers)
	}
	if d.TaskIndicesPerWorker.Len() != m.numWorkers {
		return errors.Errorf("taskIndicesPerWorker has %d rows, model declared %d workers",
			d.TaskIndicesPerWorker.Len(), m.numWorkers)
	}

	for k := 0; k < m.numWorkers; k++ {
		labels := d.LabelsPerWorker.Row(k)
		tasks := d.TaskIndicesPerWorker.Row(k)
		if len(labels) != len(tasks) {
			return errors.Errorf("worker %d: %d labels but %d task indices", k, len(labels), len(tasks))
		}
		if len(labels) == 0 {
			return errors.Errorf("worker %d has no labels", k)
		}
		for i, l := range labels {
			if l < 0 || l >= m.opts.NumClasses {
				return errors.Errorf("worker %d: label %d out of range [0, %d)", k, l, m.opts.NumClasses)
			}
			if tasks[i] < 0 || tasks[i] >= m.numTasks {
				return errors.Errorf("worker %d: task index %d out of range [0, %d)", k, tasks[i], m.numTasks)
			}
		}
	}

	if m.HasWords() {
		if d.WordIndicesPerTask.Len() != m.numTasks {
			return errors.Errorf("wordIndicesPerTask has %d rows, model declared %d tasks",
				d.WordIndicesPerTask.Len(), m.numTasks)
		}
		if len(d.WordCountPerTask) != m.numTasks {
			return errors.Errorf("wordCountPerTask has %d entries, model declared %d tasks",
				len(d.WordCountPerTask), m.numTasks)
		}
		for n := 0; n < m.numTasks; n++ {
			row := d.WordIndicesPerTask.Row(n)
			if len(row) != d.WordCountPerTask[n] {
				return errors.Errorf("task %d: word count %d does not match %d word indices",
					n, d.WordCountPerTask[n], len(row))
			}
			for _, w := range row {
				if w < 0 || w >= m.vocabSize {
					return errors.Errorf("task %d: word index %d out of range [0, %d)", n, w, m.vocabSize)
				}
			}
		}
	}

	if d.TrueLabels != nil {
		if len(d.TrueLabels) != m.numTasks {
			return errors.Errorf("trueLabels has %d entries, model declared %d tasks",
				len(d.TrueLabels), m.numTasks)
		}
		for n, l := range d.TrueLabels {
			if l < -1 || l >= m.opts.NumClasses {
				return errors.Errorf("task %d: clamped label %d out of range [0, %d)", n, l, m.opts.NumClasses)
			}
		}
	}
	return nil
}
