// Package model implements Bayesian Classifier Combination with words
// (BCCWords): a generative model coupling per-task latent sentiment
// labels, per-worker confusion matrices and per-class word
// distributions, fitted by mean-field coordinate-ascent variational
// inference.
package model

import (
	"runtime"

	"github.com/usptact/BCCWords/bcc-golib/errors"
)

const (
	defaultIterations = 35
	defaultBelief     = 0.7
	defaultEpsilon    = 1e-10
)

// Options are the model hyperparameters.
type Options struct {
	// NumClasses is the number of sentiment classes C.
	NumClasses int
	// InitialWorkerBelief, in (0,1), is the prior probability that a
	// worker reports the true label; it sets the diagonal pseudo-count
	// weight of every confusion-matrix row prior.
	InitialWorkerBelief float64
	// NumIterations is the fixed sweep budget (default 35, no early
	// exit).
	NumIterations int
	// Epsilon floors Dirichlet parameters against underflow.
	Epsilon float64
	// Parallelism bounds the worker goroutines used inside a sweep
	// phase; defaults to GOMAXPROCS.
	Parallelism int
}

func (o Options) withDefaults() Options {
	if o.InitialWorkerBelief == 0 {
		o.InitialWorkerBelief = defaultBelief
	}
	if o.NumIterations == 0 {
		o.NumIterations = defaultIterations
	}
	if o.Epsilon == 0 {
		o.Epsilon = defaultEpsilon
	}
	if o.Parallelism == 0 {
		o.Parallelism = runtime.GOMAXPROCS(0)
	}
	return o
}

func (o Options) validate() error {
	if o.NumClasses < 2 {
		return errors.Errorf("need at least 2 classes, got %d", o.NumClasses)
	}
	if o.InitialWorkerBelief <= 0 || o.InitialWorkerBelief >= 1 {
		return errors.Errorf("initial worker belief must be in (0,1), got %g", o.InitialWorkerBelief)
	}
	if o.NumIterations < 1 {
		return errors.Errorf("need at least 1 iteration, got %d", o.NumIterations)
	}
	if o.Epsilon <= 0 {
		return errors.Errorf("epsilon must be positive, got %g", o.Epsilon)
	}
	if o.Parallelism < 0 {
		return errors.Errorf("parallelism must be positive, got %d", o.Parallelism)
	}
	return nil
}

// Model holds the generative-model shapes and prior pseudo-counts.
// Construction allocates the priors only; inference happens in Infer.
//
// Generative story:
//  1. BackgroundLabelProb ~ Dirichlet(1,...,1) over C classes.
//  2. TrueLabel[n] ~ Categorical(BackgroundLabelProb) per task.
//  3. ConfusionMatrix[k][c] ~ Dirichlet(prior row c) per worker and
//     class, with (b/(1-b))*(C-1) on the diagonal and 1 elsewhere.
//  4. WorkerLabel[k,n] ~ Categorical(ConfusionMatrix[k][TrueLabel[n]])
//     for every (worker, task) pair the worker labeled.
//  5. WordProb[c] ~ Dirichlet(1,...,1) over V terms per class.
//  6. Word[n,slot] ~ Categorical(WordProb[TrueLabel[n]]) per word
//     occurrence.
type Model struct {
	opts Options

	numWorkers int
	numTasks   int
	vocabSize  int

	backgroundPrior []float64
	confusionPrior  [][]float64 // C x C, shared by all workers
	wordPrior       float64     // symmetric
}

// New declares the model for the given data shapes. vocabSize 0 builds
// the words-free variant (labels only).
func New(numWorkers, numTasks, vocabSize int, opts Options) (*Model, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if numWorkers < 1 {
		return nil, errors.Errorf("need at least 1 worker, got %d", numWorkers)
	}
	if numTasks < 1 {
		return nil, errors.Errorf("need at least 1 task, got %d", numTasks)
	}
	if vocabSize < 0 {
		return nil, errors.Errorf("negative vocabulary size %d", vocabSize)
	}

	c := opts.NumClasses
	b := opts.InitialWorkerBelief

	m := &Model{
		opts:            opts,
		numWorkers:      numWorkers,
		numTasks:        numTasks,
		vocabSize:       vocabSize,
		backgroundPrior: make([]float64, c),
		confusionPrior:  make([][]float64, c),
		wordPrior:       1,
	}
	for i := range m.backgroundPrior {
		m.backgroundPrior[i] = 1
	}
	diag := b / (1 - b) * float64(c-1)
	for row := range m.confusionPrior {
		m.confusionPrior[row] = make([]float64, c)
		for j := range m.confusionPrior[row] {
			if j == row {
				m.confusionPrior[row][j] = diag
			} else {
				m.confusionPrior[row][j] = 1
			}
		}
	}
	return m, nil
}

// HasWords reports whether the model includes the word-emission factors.
func (m *Model) HasWords() bool { return m.vocabSize > 0 }

// NumClasses returns C.
func (m *Model) NumClasses() int { return m.opts.NumClasses }
