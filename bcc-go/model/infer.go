package model

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/usptact/BCCWords/bcc-go/crowd"
	"github.com/usptact/BCCWords/bcc-golib/errors"
	"github.com/usptact/BCCWords/bcc-golib/workerpool"
)

// state holds the mutable posterior parameters during a run. The
// expectation snapshots (elog*) are refreshed once per sweep and read
// only by the label phase, so the per-task jobs share no mutable data.
type state struct {
	resp [][]float64   // q(TrueLabel[n]) responsibilities, N x C
	conf [][][]float64 // confusion Dirichlet parameters, K x C x C
	word [][]float64   // word Dirichlet parameters, C x V
	bg   []float64     // background Dirichlet parameters, C

	elogBG   []float64
	elogConf [][][]float64
	elogWord [][]float64

	// votes inverted per task: voteWorkers.Row(n) and
	// voteLabels.Row(n) are paired
	voteWorkers crowd.Ragged
	voteLabels  crowd.Ragged

	clamped []int // -1 where latent
}

// Infer runs mean-field coordinate ascent for the fixed iteration
// budget and returns the posterior bundle. Each sweep updates, in
// order: task-label responsibilities, confusion matrices, word
// distributions, background probabilities; every phase consumes the
// previous phase's completed output (Gauss-Seidel), so the evidence
// lower bound is non-decreasing up to numerical noise.
func (m *Model) Infer(data Data) (*Posterior, error) {
	if err := m.validateData(data); err != nil {
		return nil, errors.Wrapf(err, "data integrity error")
	}

	st := m.newState(data)
	pool := workerpool.New(m.opts.Parallelism)
	defer pool.Stop()

	trace := make([]float64, 0, m.opts.NumIterations)
	for it := 0; it < m.opts.NumIterations; it++ {
		m.refreshExpectations(st)
		if err := m.updateLabels(st, data, pool); err != nil {
			return nil, errors.Wrapf(err, "iteration %d", it)
		}
		if err := m.updateConfusion(st, data, pool); err != nil {
			return nil, errors.Wrapf(err, "iteration %d", it)
		}
		m.updateWords(st, data)
		m.updateBackground(st)

		elbo := m.lowerBound(st, data)
		if !isFinite(elbo) {
			return nil, errors.Errorf("iteration %d: evidence lower bound is not finite", it)
		}
		trace = append(trace, elbo)
	}

	return m.snapshot(st, trace), nil
}

func (m *Model) newState(data Data) *state {
	c := m.opts.NumClasses

	st := &state{
		resp:     make([][]float64, m.numTasks),
		conf:     make([][][]float64, m.numWorkers),
		word:     make([][]float64, 0),
		bg:       make([]float64, c),
		elogBG:   make([]float64, c),
		elogConf: make([][][]float64, m.numWorkers),
		clamped:  make([]int, m.numTasks),
	}

	for n := range st.clamped {
		st.clamped[n] = -1
	}
	if data.TrueLabels != nil {
		copy(st.clamped, data.TrueLabels)
	}

	// uniform responsibilities for latent tasks, point mass for
	// clamped ones; symmetry breaks in sweep 0 through the observed
	// labels and the diagonal confusion prior
	for n := range st.resp {
		st.resp[n] = make([]float64, c)
		if l := st.clamped[n]; l >= 0 {
			st.resp[n][l] = 1
		} else {
			for i := range st.resp[n] {
				st.resp[n][i] = 1 / float64(c)
			}
		}
	}

	for k := range st.conf {
		st.conf[k] = make([][]float64, c)
		st.elogConf[k] = make([][]float64, c)
		for row := range st.conf[k] {
			st.conf[k][row] = make([]float64, c)
			st.elogConf[k][row] = make([]float64, c)
			copy(st.conf[k][row], m.confusionPrior[row])
		}
	}

	copy(st.bg, m.backgroundPrior)

	if m.HasWords() {
		st.word = make([][]float64, c)
		st.elogWord = make([][]float64, c)
		for i := range st.word {
			st.word[i] = make([]float64, m.vocabSize)
			st.elogWord[i] = make([]float64, m.vocabSize)
			for v := range st.word[i] {
				st.word[i][v] = m.wordPrior
			}
		}
	}

	st.voteWorkers, st.voteLabels = invertVotes(data, m.numTasks)
	return st
}

// invertVotes builds the per-task view of the per-worker label arrays.
func invertVotes(data Data, numTasks int) (workers, labels crowd.Ragged) {
	workerRows := make([][]int, numTasks)
	labelRows := make([][]int, numTasks)
	for k := 0; k < data.LabelsPerWorker.Len(); k++ {
		ls := data.LabelsPerWorker.Row(k)
		ts := data.TaskIndicesPerWorker.Row(k)
		for i, n := range ts {
			workerRows[n] = append(workerRows[n], k)
			labelRows[n] = append(labelRows[n], ls[i])
		}
	}
	return crowd.NewRagged(workerRows), crowd.NewRagged(labelRows)
}

// refreshExpectations snapshots the digamma expectations of all
// Dirichlet factors for the coming sweep.
func (m *Model) refreshExpectations(st *state) {
	expectedLog(st.elogBG, st.bg)
	for k := range st.conf {
		for row := range st.conf[k] {
			expectedLog(st.elogConf[k][row], st.conf[k][row])
		}
	}
	for c := range st.word {
		expectedLog(st.elogWord[c], st.word[c])
	}
}

// labelScore computes the log-unnormalized responsibility of class c
// for task n under the current expectation snapshots.
func (m *Model) labelScore(st *state, data Data, n, c int) float64 {
	s := st.elogBG[c]
	voters := st.voteWorkers.Row(n)
	votes := st.voteLabels.Row(n)
	for i, k := range voters {
		s += st.elogConf[k][c][votes[i]]
	}
	if m.HasWords() {
		for _, w := range data.WordIndicesPerTask.Row(n) {
			s += st.elogWord[c][w]
		}
	}
	return s
}

// updateLabels recomputes q(TrueLabel[n]) for every unclamped task.
// Tasks are independent given the snapshots, so they are sharded
// across the pool; each job writes only its own slice of resp.
func (m *Model) updateLabels(st *state, data Data, pool *workerpool.Pool) error {
	c := m.opts.NumClasses
	shards := splitRange(m.numTasks, m.opts.Parallelism)

	jobs := make([]workerpool.Job, 0, len(shards))
	for _, sh := range shards {
		lo, hi := sh[0], sh[1]
		jobs = append(jobs, func() error {
			scores := make([]float64, c)
			for n := lo; n < hi; n++ {
				if st.clamped[n] >= 0 {
					continue
				}
				for i := 0; i < c; i++ {
					scores[i] = m.labelScore(st, data, n, i)
				}
				norm := floats.LogSumExp(scores)
				if !isFinite(norm) {
					return errors.Errorf("task %d: label normalizer is not finite", n)
				}
				for i := 0; i < c; i++ {
					st.resp[n][i] = math.Exp(scores[i] - norm)
				}
			}
			return nil
		})
	}
	pool.Add(jobs)
	return pool.Wait()
}

// updateConfusion folds expected vote counts into each worker's
// confusion rows. Workers write disjoint slots, so they shard freely.
func (m *Model) updateConfusion(st *state, data Data, pool *workerpool.Pool) error {
	c := m.opts.NumClasses
	shards := splitRange(m.numWorkers, m.opts.Parallelism)

	jobs := make([]workerpool.Job, 0, len(shards))
	for _, sh := range shards {
		lo, hi := sh[0], sh[1]
		jobs = append(jobs, func() error {
			for k := lo; k < hi; k++ {
				for row := range st.conf[k] {
					copy(st.conf[k][row], m.confusionPrior[row])
				}
				labels := data.LabelsPerWorker.Row(k)
				tasks := data.TaskIndicesPerWorker.Row(k)
				for i, n := range tasks {
					for row := 0; row < c; row++ {
						st.conf[k][row][labels[i]] += st.resp[n][row]
					}
				}
				for row := range st.conf[k] {
					floorSlice(st.conf[k][row], m.opts.Epsilon)
				}
			}
			return nil
		})
	}
	pool.Add(jobs)
	return pool.Wait()
}

// updateWords folds expected term counts into the per-class word
// Dirichlets.
func (m *Model) updateWords(st *state, data Data) {
	if !m.HasWords() {
		return
	}
	for c := range st.word {
		for v := range st.word[c] {
			st.word[c][v] = m.wordPrior
		}
	}
	for n := 0; n < m.numTasks; n++ {
		for _, w := range data.WordIndicesPerTask.Row(n) {
			for c := range st.word {
				st.word[c][w] += st.resp[n][c]
			}
		}
	}
	for c := range st.word {
		floorSlice(st.word[c], m.opts.Epsilon)
	}
}

// updateBackground folds the responsibility mass into the shared
// background Dirichlet.
func (m *Model) updateBackground(st *state) {
	copy(st.bg, m.backgroundPrior)
	for n := range st.resp {
		for c, r := range st.resp[n] {
			st.bg[c] += r
		}
	}
	floorSlice(st.bg, m.opts.Epsilon)
}

// lowerBound evaluates the evidence lower bound under the current
// variational parameters: expected log-joint of the label/vote/word
// factors plus responsibility entropy, minus the Dirichlet KL terms.
func (m *Model) lowerBound(st *state, data Data) float64 {
	m.refreshExpectations(st)

	var elbo float64
	for n := range st.resp {
		for c, r := range st.resp[n] {
			if r <= 0 {
				continue
			}
			elbo += r*m.labelScore(st, data, n, c) - r*math.Log(r)
		}
	}

	elbo -= dirichletKLUniform(st.bg, 1)
	for k := range st.conf {
		for row := range st.conf[k] {
			elbo -= dirichletKL(st.conf[k][row], m.confusionPrior[row])
		}
	}
	for c := range st.word {
		elbo -= dirichletKLUniform(st.word[c], m.wordPrior)
	}
	return elbo
}

func floorSlice(xs []float64, eps float64) {
	for i, x := range xs {
		if x < eps {
			xs[i] = eps
		}
	}
}

// splitRange splits [0,n) into at most parts contiguous ranges.
func splitRange(n, parts int) [][2]int {
	if parts < 1 {
		parts = 1
	}
	size := (n + parts - 1) / parts
	var shards [][2]int
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		shards = append(shards, [2]int{lo, hi})
	}
	return shards
}
