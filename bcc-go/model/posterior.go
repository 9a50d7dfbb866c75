package model

import (
	"math"
	"sort"
)

// Posterior is the immutable result bundle of a finished run.
type Posterior struct {
	// TrueLabel[n] is the categorical posterior over classes for task n.
	TrueLabel [][]float64
	// WorkerConfusion[k][c] is the Dirichlet parameter vector of worker
	// k's confusion row for true class c.
	WorkerConfusion [][][]float64
	// WordProb[c] is the Dirichlet parameter vector of class c's word
	// distribution; nil for the words-free variant.
	WordProb [][]float64
	// Background is the Dirichlet parameter vector of the shared label
	// prior.
	Background []float64

	// Evidence is the final evidence lower bound, the scalar used to
	// compare model variants; EvidenceTrace holds the per-sweep values.
	Evidence      float64
	EvidenceTrace []float64
}

func (m *Model) snapshot(st *state, trace []float64) *Posterior {
	p := &Posterior{
		TrueLabel:       copyMatrix(st.resp),
		WorkerConfusion: make([][][]float64, len(st.conf)),
		Background:      append([]float64(nil), st.bg...),
		EvidenceTrace:   append([]float64(nil), trace...),
	}
	for k := range st.conf {
		p.WorkerConfusion[k] = copyMatrix(st.conf[k])
	}
	if m.HasWords() {
		p.WordProb = copyMatrix(st.word)
	}
	if len(trace) > 0 {
		p.Evidence = trace[len(trace)-1]
	}
	return p
}

// MAP returns the argmax class per task.
func (p *Posterior) MAP() []int {
	preds := make([]int, len(p.TrueLabel))
	for n, dist := range p.TrueLabel {
		best := 0
		for c, q := range dist {
			if q > dist[best] {
				best = c
			}
		}
		preds[n] = best
	}
	return preds
}

// ConfusionMean returns worker k's posterior-mean confusion matrix:
// row c is the expected P(observed label | true label = c).
func (p *Posterior) ConfusionMean(k int) [][]float64 {
	rows := make([][]float64, len(p.WorkerConfusion[k]))
	for c, alpha := range p.WorkerConfusion[k] {
		rows[c] = dirichletMean(alpha)
	}
	return rows
}

// BackgroundMean returns the posterior-mean background label
// probabilities.
func (p *Posterior) BackgroundMean() []float64 {
	return dirichletMean(p.Background)
}

// WordScore is a vocabulary term with its posterior-mean log
// probability under one class.
type WordScore struct {
	Term    string
	LogProb float64
}

// TopWords returns, per class, the n most probable terms by posterior
// mean, log-scaled, descending.
func (p *Posterior) TopWords(vocab []string, n int) [][]WordScore {
	if p.WordProb == nil {
		return nil
	}
	out := make([][]WordScore, len(p.WordProb))
	for c, alpha := range p.WordProb {
		mean := dirichletMean(alpha)
		scores := make([]WordScore, 0, len(vocab))
		for v, term := range vocab {
			scores = append(scores, WordScore{Term: term, LogProb: math.Log(mean[v])})
		}
		sort.Slice(scores, func(i, j int) bool {
			if scores[i].LogProb != scores[j].LogProb {
				return scores[i].LogProb > scores[j].LogProb
			}
			return scores[i].Term < scores[j].Term
		})
		if len(scores) > n {
			scores = scores[:n]
		}
		out[c] = scores
	}
	return out
}

// Accuracy compares MAP predictions against gold labels, skipping
// tasks with gold < 0. Returns 0 when no gold labels exist.
func (p *Posterior) Accuracy(gold []int) float64 {
	preds := p.MAP()
	var correct, total int
	for n, g := range gold {
		if g < 0 || n >= len(preds) {
			continue
		}
		total++
		if preds[n] == g {
			correct++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

func copyMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i := range m {
		out[i] = append([]float64(nil), m[i]...)
	}
	return out
}
