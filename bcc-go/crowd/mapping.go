package crowd

import (
	"github.com/usptact/BCCWords/bcc-golib/errors"
)

// Mapping converts external string ids into dense 0-based index spaces
// and holds the ragged structures the model consumes. Indices are
// assigned in first-seen record order, so a given record stream always
// produces the same mapping.
type Mapping struct {
	NumClasses int

	// dense index -> external id
	WorkerIDs []string
	TaskIDs   []string

	// per-task body text and gold label (-1 when unknown)
	Texts []string
	Gold  []int

	// LabelsPerWorker and TaskIndicesPerWorker are paired rows: worker
	// k assigned LabelsPerWorker.Row(k)[i] to task
	// TaskIndicesPerWorker.Row(k)[i].
	LabelsPerWorker      Ragged
	TaskIndicesPerWorker Ragged

	// WordIndicesPerTask holds vocabulary indices per task (duplicates
	// allowed); empty until AttachWords is called.
	WordIndicesPerTask Ragged
	VocabSize          int

	workerIdx map[string]int
	taskIdx   map[string]int
}

// NewMapping builds the dense index spaces and ragged label structures
// from a flat record stream.
func NewMapping(records []Record, numClasses int) (*Mapping, error) {
	if numClasses < 2 {
		return nil, errors.Errorf("need at least 2 label classes, got %d", numClasses)
	}
	if len(records) == 0 {
		return nil, errors.Errorf("no records")
	}

	m := &Mapping{
		NumClasses: numClasses,
		workerIdx:  make(map[string]int),
		taskIdx:    make(map[string]int),
	}

	// bad records are collected rather than failing one at a time, so a
	// malformed input reports every problem in a single pass
	var errs errors.Errors
	var labelRows, taskRows [][]int
	for i, rec := range records {
		if rec.Label < 0 || rec.Label >= numClasses {
			errs = errors.Append(errs, errors.Errorf("record %d: label %d out of range [0, %d)", i, rec.Label, numClasses))
			continue
		}
		if rec.Gold < -1 || rec.Gold >= numClasses {
			errs = errors.Append(errs, errors.Errorf("record %d: gold label %d out of range [0, %d)", i, rec.Gold, numClasses))
			continue
		}

		k, seen := m.workerIdx[rec.WorkerID]
		if !seen {
			k = len(m.WorkerIDs)
			m.workerIdx[rec.WorkerID] = k
			m.WorkerIDs = append(m.WorkerIDs, rec.WorkerID)
			labelRows = append(labelRows, nil)
			taskRows = append(taskRows, nil)
		}

		n, seen := m.taskIdx[rec.TaskID]
		if !seen {
			n = len(m.TaskIDs)
			m.taskIdx[rec.TaskID] = n
			m.TaskIDs = append(m.TaskIDs, rec.TaskID)
			m.Texts = append(m.Texts, rec.Text)
			m.Gold = append(m.Gold, rec.Gold)
		} else if rec.Gold >= 0 {
			if m.Gold[n] >= 0 && m.Gold[n] != rec.Gold {
				errs = errors.Append(errs, errors.Errorf("record %d: task %s has conflicting gold labels %d and %d",
					i, rec.TaskID, m.Gold[n], rec.Gold))
				continue
			}
			m.Gold[n] = rec.Gold
		}

		labelRows[k] = append(labelRows[k], rec.Label)
		taskRows[k] = append(taskRows[k], n)
	}
	if errs != nil {
		return nil, errs
	}

	m.LabelsPerWorker = NewRagged(labelRows)
	m.TaskIndicesPerWorker = NewRagged(taskRows)
	return m, nil
}

// NumWorkers returns the number of distinct workers.
func (m *Mapping) NumWorkers() int { return len(m.WorkerIDs) }

// NumTasks returns the number of distinct tasks.
func (m *Mapping) NumTasks() int { return len(m.TaskIDs) }

// WorkerIndex returns the dense index of a worker id.
func (m *Mapping) WorkerIndex(id string) (int, bool) {
	k, ok := m.workerIdx[id]
	return k, ok
}

// TaskIndex returns the dense index of a task id.
func (m *Mapping) TaskIndex(id string) (int, bool) {
	n, ok := m.taskIdx[id]
	return n, ok
}

// AttachWords stores per-task vocabulary index lists, e.g. from
// features.WordIndices. A task may have zero words; it then takes part
// in inference through the label pathway only.
func (m *Mapping) AttachWords(wordIndices [][]int, vocabSize int) error {
	if len(wordIndices) != m.NumTasks() {
		return errors.Errorf("wordIndices has %d rows, expected one per task (%d)",
			len(wordIndices), m.NumTasks())
	}
	if vocabSize < 0 {
		return errors.Errorf("negative vocabulary size %d", vocabSize)
	}
	for n, row := range wordIndices {
		for _, w := range row {
			if w < 0 || w >= vocabSize {
				return errors.Errorf("task %d: word index %d out of range [0, %d)", n, w, vocabSize)
			}
		}
	}
	m.WordIndicesPerTask = NewRagged(wordIndices)
	m.VocabSize = vocabSize
	return nil
}

// WordCountPerTask returns the number of word occurrences per task.
func (m *Mapping) WordCountPerTask() []int {
	counts := make([]int, m.NumTasks())
	if m.WordIndicesPerTask.Len() == 0 {
		return counts
	}
	for n := range counts {
		counts[n] = m.WordIndicesPerTask.RowLen(n)
	}
	return counts
}

// HasGold reports whether any task carries a gold label.
func (m *Mapping) HasGold() bool {
	for _, g := range m.Gold {
		if g >= 0 {
			return true
		}
	}
	return false
}
